package domain

import "strings"

// Identity is the verified caller identity (a username or e-mail address)
// stamped into created_by and updated_by.  The zero value means anonymous.
type Identity string

// Valid reports whether the identity can be used for audit stamping.
func (i Identity) Valid() bool { return strings.TrimSpace(string(i)) != "" }

func (i Identity) String() string { return string(i) }
