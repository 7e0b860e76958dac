// internal/slug/slug.go
//
// Identifier slugs for collections and content.
//
// Valid(s) reports whether s is a well-formed slug.  The repositories
// reject collection and content identifiers that fail this check.
//
// Rules
// -----
// 1. Lower-case ASCII letters, digits, and single “-” separators only.
// 2. No leading or trailing “-”, no “--”.
// 3. At most MaxLen bytes.
//
// Notes
// -----
// • No Unicode transliteration; identifiers are API keys, not display text.
package slug

// MaxLen bounds identifier length.  It also keeps the unique index below
// the InnoDB key-prefix limit.
const MaxLen = 100

// Valid reports whether s is a well-formed slug.
func Valid(s string) bool {
	if s == "" || len(s) > MaxLen {
		return false
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	prevDash := false
	for _, r := range s {
		switch {
		case isAlnum(r):
			prevDash = false
		case r == '-':
			if prevDash {
				return false
			}
			prevDash = true
		default:
			return false
		}
	}
	return true
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
