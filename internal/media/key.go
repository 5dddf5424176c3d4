package media

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SafeFileName replaces characters outside [a-zA-Z0-9._-] with "-" and trims
// leading and trailing dashes.
func SafeFileName(name string) string {
	return strings.Trim(unsafeChars.ReplaceAllString(name, "-"), "-")
}

// BuildKey returns a unique object key under projects/.
func BuildKey(fileName string) string {
	return "projects/" + uuid.NewString() + "-" + SafeFileName(fileName)
}

// PublicURL joins the media base URL and key, defaulting to /media.
func PublicURL(base, key string) string {
	base = strings.TrimRight(base, "/")
	if base == "" {
		return "/media/" + key
	}
	return base + "/" + key
}
