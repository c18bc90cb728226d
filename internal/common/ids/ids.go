package ids

import "github.com/google/uuid"

// New returns a time-ordered (UUIDv7) identifier, so ids sort by creation time.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Prefixed is New with a readable prefix, e.g. "ORDER-0190...".
func Prefixed(prefix string) string {
	return prefix + "-" + New()
}
