package errs

import (
	"fmt"
	"strings"
)

// sanitize renders a value on a single line so error messages stay log-friendly.
func sanitize(value any) string {
	s := fmt.Sprintf("%v", value)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
