package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// AvatarURL derives a gravatar image URL from an email address. The email is
// trimmed and lowercased before hashing, so equivalent spellings map to the
// same avatar. Pure function; always returns a usable URL string.
func AvatarURL(email string, size int) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d", hex.EncodeToString(sum[:]), size)
}
