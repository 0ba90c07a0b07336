package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans user-submitted HTML before it is stored. Post bodies and
// comment text are rendered unescaped, so everything risky is stripped here.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
