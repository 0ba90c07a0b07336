package utils

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionCookie is the name of the cookie carrying the signed session id.
const SessionCookie = "blog_session"

const sessionKeyPrefix = "session:"

// Flash is a one-shot message shown to the user on the next rendered page.
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// Session is server-side state keyed by an opaque identifier. The client only
// ever sees the id plus an HMAC signature; UserID of zero means anonymous.
type Session struct {
	ID      string  `json:"-"`
	UserID  uint    `json:"user_id,omitempty"`
	Flashes []Flash `json:"flashes,omitempty"`
}

type memEntry struct {
	data      []byte
	expiresAt time.Time
}

// SessionStore persists sessions in Redis when available and in process
// memory otherwise. The fallback is only suitable for a single instance.
type SessionStore struct {
	secret []byte
	ttl    time.Duration
	rc     *redis.Client

	mu  sync.Mutex
	mem map[string]memEntry
}

// NewSessionStore creates a store signing cookies with secret. rc may be nil.
func NewSessionStore(secret string, ttl time.Duration, rc *redis.Client) *SessionStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &SessionStore{
		secret: []byte(secret),
		ttl:    ttl,
		rc:     rc,
		mem:    map[string]memEntry{},
	}
}

// Load resolves the request's session cookie. Returns nil when the cookie is
// absent, tampered with, or refers to an expired session.
func (st *SessionStore) Load(ctx *gin.Context) *Session {
	value, err := ctx.Cookie(SessionCookie)
	if err != nil {
		return nil
	}
	id, ok := st.verify(value)
	if !ok {
		return nil
	}
	return st.get(id)
}

// Ensure returns the request's session, creating one and setting the cookie
// when none exists yet.
func (st *SessionStore) Ensure(ctx *gin.Context) *Session {
	if s := st.Load(ctx); s != nil {
		return s
	}
	s := &Session{ID: uuid.NewString()}
	st.Save(s)
	ctx.SetCookie(SessionCookie, st.sign(s.ID), int(st.ttl.Seconds()), "/", "", false, true)
	return s
}

// Save persists the session under its TTL.
func (st *SessionStore) Save(s *Session) {
	b, err := json.Marshal(s)
	if err != nil {
		return
	}
	if st.rc != nil {
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := st.rc.Set(rctx, sessionKeyPrefix+s.ID, b, st.ttl).Err(); err == nil {
			return
		} else if Sugar != nil {
			Sugar.Warnf("session save failed, falling back to memory: %v", err)
		}
	}
	st.mu.Lock()
	st.mem[s.ID] = memEntry{data: b, expiresAt: time.Now().Add(st.ttl)}
	st.mu.Unlock()
}

// Destroy invalidates the request's session and expires the cookie. Calling
// it without a live session is a no-op.
func (st *SessionStore) Destroy(ctx *gin.Context) {
	if value, err := ctx.Cookie(SessionCookie); err == nil {
		if id, ok := st.verify(value); ok {
			st.delete(id)
		}
	}
	ctx.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// Flash queues a one-shot message on the request's session.
func (st *SessionStore) Flash(ctx *gin.Context, message, category string) {
	s := st.Ensure(ctx)
	s.Flashes = append(s.Flashes, Flash{Message: message, Category: category})
	st.Save(s)
}

// PopFlashes drains and returns any queued flash messages.
func (st *SessionStore) PopFlashes(ctx *gin.Context) []Flash {
	s := st.Load(ctx)
	if s == nil || len(s.Flashes) == 0 {
		return nil
	}
	flashes := s.Flashes
	s.Flashes = nil
	st.Save(s)
	return flashes
}

func (st *SessionStore) get(id string) *Session {
	var raw []byte
	if st.rc != nil {
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if b, err := st.rc.Get(rctx, sessionKeyPrefix+id).Bytes(); err == nil {
			raw = b
		}
	}
	if raw == nil {
		st.mu.Lock()
		entry, ok := st.mem[id]
		if ok && time.Now().After(entry.expiresAt) {
			delete(st.mem, id)
			ok = false
		}
		st.mu.Unlock()
		if !ok {
			return nil
		}
		raw = entry.data
	}
	s := &Session{}
	if err := json.Unmarshal(raw, s); err != nil {
		return nil
	}
	s.ID = id
	return s
}

func (st *SessionStore) delete(id string) {
	if st.rc != nil {
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = st.rc.Del(rctx, sessionKeyPrefix+id).Err()
	}
	st.mu.Lock()
	delete(st.mem, id)
	st.mu.Unlock()
}

// sign produces the cookie value "<id>.<hmac-sha256 hex>".
func (st *SessionStore) sign(id string) string {
	mac := hmac.New(sha256.New, st.secret)
	mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

// verify checks the signature in constant time and returns the session id.
func (st *SessionStore) verify(value string) (string, bool) {
	parts := strings.SplitN(value, ".", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", false
	}
	mac := hmac.New(sha256.New, st.secret)
	mac.Write([]byte(parts[0]))
	expected := hex.EncodeToString(mac.Sum(nil))
	if subtle.ConstantTimeCompare([]byte(expected), []byte(parts[1])) != 1 {
		return "", false
	}
	return parts[0], true
}
