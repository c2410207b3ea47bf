package types

import "time"

// DateLayout is the date-key format used for storage keys, listing
// prefixes, and the local report filename.
const DateLayout = "2006-01-02"

// NowFunc resolves the current time. Components take one of these instead
// of calling time.Now directly so tests can pin the date.
type NowFunc func() time.Time

// DateKey formats t as a storage date key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}
