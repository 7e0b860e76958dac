package field

import (
	"errors"

	"github.com/yanizio/adept-content/internal/domain"
)

// Error is a field validation failure.  Path locates the offending element,
// for example "fields[1].field_data[0][2].data_type".  Every *Error matches
// domain.ErrValidation under errors.Is.
type Error struct {
	Path   string
	Reason string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return e.Path + ": " + e.Reason
}

func (e *Error) Unwrap() error { return domain.ErrValidation }

// at prefixes err's path with prefix.
func at(prefix string, err error) error {
	var fe *Error
	if !errors.As(err, &fe) {
		return &Error{Path: prefix, Reason: err.Error()}
	}
	switch {
	case fe.Path == "":
		return &Error{Path: prefix, Reason: fe.Reason}
	case prefix == "":
		return fe
	case fe.Path[0] == '[':
		return &Error{Path: prefix + fe.Path, Reason: fe.Reason}
	default:
		return &Error{Path: prefix + "." + fe.Path, Reason: fe.Reason}
	}
}
