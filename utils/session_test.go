package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *SessionStore {
	return NewSessionStore("test-secret", time.Hour, nil)
}

// testContext builds a gin context for an incoming request carrying the given cookies.
func testContext(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		ctx.Request.AddCookie(c)
	}
	return ctx, w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestEnsureCreatesSessionAndCookie(t *testing.T) {
	st := newStore()
	ctx, w := testContext()

	s := st.Ensure(ctx)
	require.NotNil(t, s)
	assert.NotEmpty(t, s.ID)
	assert.Zero(t, s.UserID)

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, strings.HasPrefix(cookie.Value, s.ID+"."))
}

func TestLoadResolvesSavedSession(t *testing.T) {
	st := newStore()
	ctx, w := testContext()
	s := st.Ensure(ctx)
	s.UserID = 42
	st.Save(s)

	ctx2, _ := testContext(sessionCookie(t, w))
	loaded := st.Load(ctx2)
	require.NotNil(t, loaded)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, uint(42), loaded.UserID)
}

func TestLoadRejectsTamperedCookie(t *testing.T) {
	st := newStore()
	ctx, w := testContext()
	st.Ensure(ctx)

	cookie := sessionCookie(t, w)
	tampered := &http.Cookie{Name: SessionCookie, Value: cookie.Value[:len(cookie.Value)-1] + "0"}
	ctx2, _ := testContext(tampered)
	assert.Nil(t, st.Load(ctx2))

	// swapping in a foreign id invalidates the signature too
	parts := strings.SplitN(cookie.Value, ".", 2)
	forged := &http.Cookie{Name: SessionCookie, Value: "someone-else." + parts[1]}
	ctx3, _ := testContext(forged)
	assert.Nil(t, st.Load(ctx3))
}

func TestLoadIgnoresMissingCookie(t *testing.T) {
	st := newStore()
	ctx, _ := testContext()
	assert.Nil(t, st.Load(ctx))
}

func TestDestroyIsIdempotent(t *testing.T) {
	st := newStore()
	ctx, w := testContext()
	st.Ensure(ctx)
	cookie := sessionCookie(t, w)

	ctx2, _ := testContext(cookie)
	st.Destroy(ctx2)
	ctx3, _ := testContext(cookie)
	assert.Nil(t, st.Load(ctx3))

	// destroying again, or with no session at all, is a no-op
	ctx4, _ := testContext(cookie)
	st.Destroy(ctx4)
	ctx5, _ := testContext()
	st.Destroy(ctx5)
}

func TestFlashesPopOnce(t *testing.T) {
	st := newStore()
	ctx, w := testContext()
	st.Flash(ctx, "first", "error")
	cookie := sessionCookie(t, w)

	ctx2, _ := testContext(cookie)
	st.Flash(ctx2, "second", "success")

	ctx3, _ := testContext(cookie)
	flashes := st.PopFlashes(ctx3)
	require.Len(t, flashes, 2)
	assert.Equal(t, Flash{Message: "first", Category: "error"}, flashes[0])
	assert.Equal(t, Flash{Message: "second", Category: "success"}, flashes[1])

	ctx4, _ := testContext(cookie)
	assert.Empty(t, st.PopFlashes(ctx4))
}

func TestExpiredMemorySessionIsGone(t *testing.T) {
	st := NewSessionStore("test-secret", time.Millisecond, nil)
	ctx, w := testContext()
	s := st.Ensure(ctx)
	s.UserID = 7
	st.Save(s)

	time.Sleep(5 * time.Millisecond)
	ctx2, _ := testContext(sessionCookie(t, w))
	assert.Nil(t, st.Load(ctx2))
}
