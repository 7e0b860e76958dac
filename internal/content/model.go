package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/yanizio/adept-content/internal/domain"
	"github.com/yanizio/adept-content/internal/field"
	"github.com/yanizio/adept-content/internal/slug"
)

// Content is one item of a collection.  ContentType holds the owning
// collection's identifier.
type Content struct {
	ID          string
	Name        string
	Identifier  string
	ContentType string
	Fields      []field.ContentField
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Creatable is the input to Repository.Create.  Fields are already
// validated by the field package.
type Creatable struct {
	Name        string
	Identifier  string
	ContentType string
	Fields      []field.ContentField
	Actor       domain.Identity
}

// Updatable replaces name and the whole field list.  The identifier is
// changed only through IdentifierUpdate.
type Updatable struct {
	ID          string
	ContentType string
	Name        string
	Fields      []field.ContentField
	Actor       domain.Identity
}

// IdentifierUpdate renames the slug of one content item.
type IdentifierUpdate struct {
	ID          string
	ContentType string
	Identifier  string
	Actor       domain.Identity
}

func (c Creatable) validate() error {
	switch {
	case !c.Actor.Valid():
		return domain.ErrUnauthenticated
	case strings.TrimSpace(c.ContentType) == "":
		return domain.Invalid("content_type is required")
	case strings.TrimSpace(c.Name) == "":
		return domain.Invalid("content name is required")
	case !slug.Valid(c.Identifier):
		return invalidIdentifier(c.Identifier)
	}
	return nil
}

func (u Updatable) validate() error {
	switch {
	case !u.Actor.Valid():
		return domain.ErrUnauthenticated
	case strings.TrimSpace(u.ID) == "":
		return domain.Invalid("content id is required")
	case strings.TrimSpace(u.Name) == "":
		return domain.Invalid("content name is required")
	}
	return nil
}

func (u IdentifierUpdate) validate() error {
	switch {
	case !u.Actor.Valid():
		return domain.ErrUnauthenticated
	case strings.TrimSpace(u.ID) == "":
		return domain.Invalid("content id is required")
	case !slug.Valid(u.Identifier):
		return invalidIdentifier(u.Identifier)
	}
	return nil
}

func invalidIdentifier(s string) error {
	return domain.Invalid("content identifier %q must be a lower-case slug of at most %d characters", s, slug.MaxLen)
}

/*──────────────────────────── storage row ─────────────────────────────────*/

type row struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Identifier  string    `db:"identifier"`
	ContentType string    `db:"content_type"`
	Fields      []byte    `db:"fields"`
	CreatedBy   string    `db:"created_by"`
	UpdatedBy   string    `db:"updated_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// model re-validates the stored field tree.  A row that no longer parses
// is a storage fault, not a caller error.
func (r row) model() (Content, error) {
	var raw []field.Input
	if err := json.Unmarshal(r.Fields, &raw); err != nil {
		return Content{}, fmt.Errorf("content %s: decode fields: %w (%v)", r.ID, domain.ErrStorage, err)
	}
	fields, err := field.ConvertAll(raw)
	if err != nil {
		return Content{}, fmt.Errorf("content %s: stored fields invalid: %w (%v)", r.ID, domain.ErrStorage, err)
	}
	return Content{
		ID:          r.ID,
		Name:        r.Name,
		Identifier:  r.Identifier,
		ContentType: r.ContentType,
		Fields:      fields,
		CreatedBy:   r.CreatedBy,
		UpdatedBy:   r.UpdatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

// encodeFields renders fields in the canonical wire form for the JSON
// column.  The driver must receive a string; MySQL rejects binary input
// for JSON columns.
func encodeFields(fields []field.ContentField) (string, error) {
	b, err := json.Marshal(field.EncodeAll(fields))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
