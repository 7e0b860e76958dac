// internal/service/dto.go
//
// Request and response shapes of the service layer.
//
// Context
// -------
// These are the external views.  Fields travel as field.Input (raw wire
// descriptors); the services convert them through the field package before
// anything reaches a repository.  Every response carries a boolean status,
// and list responses wrap their items under "data".
package service

import (
	"time"

	"github.com/yanizio/adept-content/internal/collection"
	"github.com/yanizio/adept-content/internal/content"
	"github.com/yanizio/adept-content/internal/domain"
	"github.com/yanizio/adept-content/internal/field"
)

/*──────────────────────────── models ──────────────────────────────────────*/

// CollectionModel is the external view of a collection.
type CollectionModel struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Identifier string    `json:"identifier"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	CreatedBy  string    `json:"created_by"`
	UpdatedBy  string    `json:"updated_by"`
}

// ContentModel is the external view of a content item.
type ContentModel struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Identifier    string        `json:"identifier"`
	ContentType   string        `json:"content_type"`
	ContentFields []field.Input `json:"content_fields"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CreatedBy     string        `json:"created_by"`
	UpdatedBy     string        `json:"updated_by"`
}

func toCollectionModel(c collection.Collection) CollectionModel {
	return CollectionModel{
		ID:         c.ID,
		Name:       c.Name,
		Identifier: c.Identifier,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		CreatedBy:  c.CreatedBy,
		UpdatedBy:  c.UpdatedBy,
	}
}

func toContentModel(c content.Content) ContentModel {
	return ContentModel{
		ID:            c.ID,
		Name:          c.Name,
		Identifier:    c.Identifier,
		ContentType:   c.ContentType,
		ContentFields: field.EncodeAll(c.Fields),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		CreatedBy:     c.CreatedBy,
		UpdatedBy:     c.UpdatedBy,
	}
}

/*──────────────────────────── collection requests ─────────────────────────*/

type StoreCollectionRequest struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

type UpdateCollectionRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

type CollectionResponse struct {
	Status bool            `json:"status"`
	Data   CollectionModel `json:"data"`
}

type CollectionAllResponse struct {
	Status bool              `json:"status"`
	Data   []CollectionModel `json:"data"`
}

/*──────────────────────────── content requests ────────────────────────────*/

type StoreContentRequest struct {
	Name          string        `json:"name"`
	Identifier    string        `json:"identifier"`
	ContentType   string        `json:"content_type"`
	ContentFields []field.Input `json:"content_fields"`
}

type UpdateContentRequest struct {
	ContentID     string        `json:"content_id"`
	ContentType   string        `json:"content_type"`
	Name          string        `json:"name"`
	ContentFields []field.Input `json:"content_fields"`
}

type PutContentIdentifierRequest struct {
	ContentID   string `json:"content_id"`
	ContentType string `json:"content_type"`
	Identifier  string `json:"identifier"`
}

type GetContentRequest struct {
	ContentID   string `json:"content_id"`
	ContentType string `json:"content_type"`
}

type DeleteContentRequest struct {
	ContentID   string `json:"content_id"`
	ContentType string `json:"content_type"`
}

// ContentPaginateRequest pages through one collection.  Page is zero-based;
// Order is "column:direction" and may be empty.
type ContentPaginateRequest struct {
	ContentType string `json:"content_type"`
	Page        int64  `json:"page"`
	Order       string `json:"order"`
}

type ContentResponse struct {
	Status bool         `json:"status"`
	Data   ContentModel `json:"data"`
}

type Pagination struct {
	Total int64 `json:"total"`
}

type ContentPaginateData struct {
	Pagination Pagination     `json:"pagination"`
	Data       []ContentModel `json:"data"`
}

type ContentPaginateResponse struct {
	Status bool                `json:"status"`
	Data   ContentPaginateData `json:"data"`
}

// DeleteResponse reports whether a row was removed.
type DeleteResponse struct {
	Status bool `json:"status"`
}

// CountResponse wraps a fresh count.
type CountResponse struct {
	Status bool              `json:"status"`
	Data   domain.ModelCount `json:"data"`
}

/*──────────────────────────── public CMS requests ─────────────────────────*/

type GetCMSContentRequest struct {
	ContentType       string `json:"content_type"`
	ContentIdentifier string `json:"content_identifier"`
}

type SentContactFormRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"max=100"`
	Email     string `json:"email"      validate:"required,email"`
	Phone     string `json:"phone"      validate:"max=40"`
	Message   string `json:"message"    validate:"required,max=5000"`
}

type SentContactFormResponse struct {
	Status bool `json:"status"`
}
