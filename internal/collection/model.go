package collection

import (
	"strings"
	"time"

	"github.com/yanizio/adept-content/internal/domain"
	"github.com/yanizio/adept-content/internal/slug"
)

// Collection is a named content type.  Its Identifier is what content rows
// carry in content_type.
type Collection struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	Identifier string    `db:"identifier"`
	CreatedBy  string    `db:"created_by"`
	UpdatedBy  string    `db:"updated_by"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Creatable is the input to Repository.Create.
type Creatable struct {
	Name       string
	Identifier string
	Actor      domain.Identity
}

// Updatable is the input to Repository.Update.  Name and Identifier are
// replaced wholesale.
type Updatable struct {
	ID         string
	Name       string
	Identifier string
	Actor      domain.Identity
}

func (c Creatable) validate() error {
	return validate(c.Name, c.Identifier, c.Actor)
}

func (u Updatable) validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return domain.Invalid("collection id is required")
	}
	return validate(u.Name, u.Identifier, u.Actor)
}

func validate(name, identifier string, actor domain.Identity) error {
	switch {
	case !actor.Valid():
		return domain.ErrUnauthenticated
	case strings.TrimSpace(name) == "":
		return domain.Invalid("collection name is required")
	case !slug.Valid(identifier):
		return domain.Invalid("collection identifier %q must be a lower-case slug of at most %d characters", identifier, slug.MaxLen)
	}
	return nil
}
