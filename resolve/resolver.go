// Package resolve maps business keys from source records to stable graph
// entity IDs. Resolution is a pure function of (class, normalized key), so
// re-encountering the same pair within or across runs yields the same ID.
package resolve

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyKey is returned when a raw key normalizes to nothing.
var ErrEmptyKey = errors.New("resolve: empty business key")

// Resolver produces stable entity IDs of the form "<class-slug>.<key-slug>".
type Resolver struct {
	fold transform.Transformer
}

// NewResolver creates a resolver.
func NewResolver() *Resolver {
	// NFKD decomposition followed by stripping combining marks folds
	// accented characters to their base form ("Café" -> "Cafe").
	return &Resolver{
		fold: transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
}

// Resolve returns the stable entity ID for a business key within a class.
// The raw key is trimmed, case-folded, and slugified to alnum+underscore,
// so "Jane Doe", " jane doe ", and "JANE DOE" collapse to one entity.
func (r *Resolver) Resolve(class, rawKey string) (string, error) {
	key := r.Slug(rawKey)
	if key == "" {
		return "", ErrEmptyKey
	}
	return r.Slug(class) + "." + key, nil
}

// Slug normalizes a raw value to a lowercase alnum+underscore slug.
func (r *Resolver) Slug(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if folded, _, err := transform.String(r.fold, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	lastUnderscore := false
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimRight(b.String(), "_")
}
