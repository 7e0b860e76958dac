// internal/service/content.go
//
// Collection and content operations for the admin API.
//
// Context
// -------
// ContentService is the thin layer between transport and repositories.
// For each call it:
//
//  1. rejects anonymous mutations with domain.ErrUnauthenticated,
//  2. converts raw field descriptors through the field package, and
//  3. calls one repository operation and wraps the result in its response
//     shape.
//
// Business validation (slugs, uniqueness, existence of the owning
// collection) stays in the repositories.  Pagination is the one place with
// fan-out: the total count and the page query run concurrently.
//
// Notes
// -----
//   - The service holds the shared pool and passes it to every repository
//     call.
//   - Errors from repositories pass through unchanged so errors.Is keeps
//     working at the transport.
package service

import (
	"context"
	"math"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/adept-content/internal/collection"
	"github.com/yanizio/adept-content/internal/content"
	"github.com/yanizio/adept-content/internal/database"
	"github.com/yanizio/adept-content/internal/domain"
	"github.com/yanizio/adept-content/internal/field"
	"github.com/yanizio/adept-content/internal/logger"
)

// CollectionStore is the collection repository as seen by the services.
type CollectionStore interface {
	All(ctx context.Context, db sqlx.QueryerContext) ([]collection.Collection, error)
	FindByID(ctx context.Context, db sqlx.QueryerContext, id string) (collection.Collection, error)
	Create(ctx context.Context, db sqlx.ExecerContext, in collection.Creatable) (collection.Collection, error)
	Update(ctx context.Context, db database.Handle, in collection.Updatable) (collection.Collection, error)
	Delete(ctx context.Context, db database.Handle, id string) (bool, error)
	CountOfIdentifier(ctx context.Context, db sqlx.QueryerContext, identifier string) (domain.ModelCount, error)
}

// ContentStore is the content repository as seen by the services.
type ContentStore interface {
	PerPage() int
	GetTotalCount(ctx context.Context, db sqlx.QueryerContext, contentType string) (domain.ModelCount, error)
	Paginate(ctx context.Context, db sqlx.QueryerContext, contentType string, start int64, orderColumn, orderDirection string) ([]content.Content, error)
	Create(ctx context.Context, db sqlx.ExecerContext, in content.Creatable) (content.Content, error)
	FindByID(ctx context.Context, db sqlx.QueryerContext, contentType, id string) (content.Content, error)
	Update(ctx context.Context, db sqlx.ExtContext, in content.Updatable) (content.Content, error)
	UpdateIdentifier(ctx context.Context, db sqlx.ExtContext, in content.IdentifierUpdate) (content.Content, error)
	Delete(ctx context.Context, db sqlx.ExecerContext, contentType, id string) (bool, error)
	CountOfIdentifier(ctx context.Context, db sqlx.QueryerContext, contentType, identifier string) (domain.ModelCount, error)
}

// ContentService serves the admin operations.
type ContentService struct {
	db          database.Handle
	collections CollectionStore
	contents    ContentStore
}

// NewContentService wires the service to a pool and its repositories.
func NewContentService(db database.Handle, collections CollectionStore, contents ContentStore) *ContentService {
	return &ContentService{db: db, collections: collections, contents: contents}
}

func requireIdentity(actor domain.Identity) error {
	if !actor.Valid() {
		return domain.ErrUnauthenticated
	}
	return nil
}

/*──────────────────────────── collections ─────────────────────────────────*/

// CollectionAll lists every collection.
func (s *ContentService) CollectionAll(ctx context.Context) (CollectionAllResponse, error) {
	rows, err := s.collections.All(ctx, s.db)
	if err != nil {
		return CollectionAllResponse{}, err
	}
	out := make([]CollectionModel, len(rows))
	for i, c := range rows {
		out[i] = toCollectionModel(c)
	}
	return CollectionAllResponse{Status: true, Data: out}, nil
}

// GetCollection returns one collection by id.
func (s *ContentService) GetCollection(ctx context.Context, id string) (CollectionResponse, error) {
	c, err := s.collections.FindByID(ctx, s.db, id)
	if err != nil {
		return CollectionResponse{}, err
	}
	return CollectionResponse{Status: true, Data: toCollectionModel(c)}, nil
}

// StoreCollection creates a collection owned by actor.
func (s *ContentService) StoreCollection(ctx context.Context, actor domain.Identity, req StoreCollectionRequest) (CollectionResponse, error) {
	if err := requireIdentity(actor); err != nil {
		return CollectionResponse{}, err
	}
	c, err := s.collections.Create(ctx, s.db, collection.Creatable{
		Name:       req.Name,
		Identifier: req.Identifier,
		Actor:      actor,
	})
	if err != nil {
		return CollectionResponse{}, err
	}
	logger.FromContext(ctx).Infow("collection stored", "id", c.ID, "identifier", c.Identifier, "by", actor)
	return CollectionResponse{Status: true, Data: toCollectionModel(c)}, nil
}

// UpdateCollection replaces a collection's name and identifier.
func (s *ContentService) UpdateCollection(ctx context.Context, actor domain.Identity, req UpdateCollectionRequest) (CollectionResponse, error) {
	if err := requireIdentity(actor); err != nil {
		return CollectionResponse{}, err
	}
	c, err := s.collections.Update(ctx, s.db, collection.Updatable{
		ID:         req.ID,
		Name:       req.Name,
		Identifier: req.Identifier,
		Actor:      actor,
	})
	if err != nil {
		return CollectionResponse{}, err
	}
	logger.FromContext(ctx).Infow("collection updated", "id", c.ID, "identifier", c.Identifier, "by", actor)
	return CollectionResponse{Status: true, Data: toCollectionModel(c)}, nil
}

// DeleteCollection removes an empty collection.
func (s *ContentService) DeleteCollection(ctx context.Context, actor domain.Identity, id string) (DeleteResponse, error) {
	if err := requireIdentity(actor); err != nil {
		return DeleteResponse{}, err
	}
	ok, err := s.collections.Delete(ctx, s.db, id)
	if err != nil {
		return DeleteResponse{}, err
	}
	if ok {
		logger.FromContext(ctx).Infow("collection deleted", "id", id, "by", actor)
	}
	return DeleteResponse{Status: ok}, nil
}

// CountOfCollection counts collections using identifier.
func (s *ContentService) CountOfCollection(ctx context.Context, identifier string) (CountResponse, error) {
	mc, err := s.collections.CountOfIdentifier(ctx, s.db, identifier)
	if err != nil {
		return CountResponse{}, err
	}
	return CountResponse{Status: true, Data: mc}, nil
}

/*──────────────────────────── content ─────────────────────────────────────*/

// ContentPaginate returns one page of a collection plus its total count.
func (s *ContentService) ContentPaginate(ctx context.Context, req ContentPaginateRequest) (ContentPaginateResponse, error) {
	perPage := int64(s.contents.PerPage())
	if req.Page < 0 || req.Page > math.MaxInt64/perPage {
		return ContentPaginateResponse{}, domain.Invalid("page %d out of range", req.Page)
	}
	start := req.Page * perPage
	order := domain.ParseOrder(req.Order)

	var (
		total domain.ModelCount
		items []content.Content
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.contents.GetTotalCount(gctx, s.db, req.ContentType)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.contents.Paginate(gctx, s.db, req.ContentType, start, order.Column, order.Direction)
		return err
	})
	if err := g.Wait(); err != nil {
		return ContentPaginateResponse{}, err
	}

	out := make([]ContentModel, len(items))
	for i, c := range items {
		out[i] = toContentModel(c)
	}
	return ContentPaginateResponse{
		Status: true,
		Data: ContentPaginateData{
			Pagination: Pagination{Total: total.Total},
			Data:       out,
		},
	}, nil
}

// StoreContent validates the field list and creates a content item.
func (s *ContentService) StoreContent(ctx context.Context, actor domain.Identity, req StoreContentRequest) (ContentResponse, error) {
	if err := requireIdentity(actor); err != nil {
		return ContentResponse{}, err
	}
	fields, err := field.ConvertAll(req.ContentFields)
	if err != nil {
		return ContentResponse{}, err
	}
	c, err := s.contents.Create(ctx, s.db, content.Creatable{
		Name:        req.Name,
		Identifier:  req.Identifier,
		ContentType: req.ContentType,
		Fields:      fields,
		Actor:       actor,
	})
	if err != nil {
		return ContentResponse{}, err
	}
	logger.FromContext(ctx).Infow("content stored", "content_type", c.ContentType, "id", c.ID, "by", actor)
	return ContentResponse{Status: true, Data: toContentModel(c)}, nil
}

// GetContent returns one item by id within its collection.
func (s *ContentService) GetContent(ctx context.Context, req GetContentRequest) (ContentResponse, error) {
	c, err := s.contents.FindByID(ctx, s.db, req.ContentType, req.ContentID)
	if err != nil {
		return ContentResponse{}, err
	}
	return ContentResponse{Status: true, Data: toContentModel(c)}, nil
}

// UpdateContent replaces name and fields of one item.
func (s *ContentService) UpdateContent(ctx context.Context, actor domain.Identity, req UpdateContentRequest) (ContentResponse, error) {
	if err := requireIdentity(actor); err != nil {
		return ContentResponse{}, err
	}
	fields, err := field.ConvertAll(req.ContentFields)
	if err != nil {
		return ContentResponse{}, err
	}
	c, err := s.contents.Update(ctx, s.db, content.Updatable{
		ID:          req.ContentID,
		ContentType: req.ContentType,
		Name:        req.Name,
		Fields:      fields,
		Actor:       actor,
	})
	if err != nil {
		return ContentResponse{}, err
	}
	logger.FromContext(ctx).Infow("content updated", "content_type", c.ContentType, "id", c.ID, "by", actor)
	return ContentResponse{Status: true, Data: toContentModel(c)}, nil
}

// PutContentIdentifier renames one item's identifier.
func (s *ContentService) PutContentIdentifier(ctx context.Context, actor domain.Identity, req PutContentIdentifierRequest) (ContentResponse, error) {
	if err := requireIdentity(actor); err != nil {
		return ContentResponse{}, err
	}
	c, err := s.contents.UpdateIdentifier(ctx, s.db, content.IdentifierUpdate{
		ID:          req.ContentID,
		ContentType: req.ContentType,
		Identifier:  req.Identifier,
		Actor:       actor,
	})
	if err != nil {
		return ContentResponse{}, err
	}
	logger.FromContext(ctx).Infow("content identifier changed", "content_type", c.ContentType, "id", c.ID, "identifier", c.Identifier, "by", actor)
	return ContentResponse{Status: true, Data: toContentModel(c)}, nil
}

// DeleteContent removes one item.  Status is false when nothing was
// deleted.
func (s *ContentService) DeleteContent(ctx context.Context, actor domain.Identity, req DeleteContentRequest) (DeleteResponse, error) {
	if err := requireIdentity(actor); err != nil {
		return DeleteResponse{}, err
	}
	ok, err := s.contents.Delete(ctx, s.db, req.ContentType, req.ContentID)
	if err != nil {
		return DeleteResponse{}, err
	}
	if ok {
		logger.FromContext(ctx).Infow("content deleted", "content_type", req.ContentType, "id", req.ContentID, "by", actor)
	}
	return DeleteResponse{Status: ok}, nil
}

// CountOfIdentifier counts items of contentType using identifier.
func (s *ContentService) CountOfIdentifier(ctx context.Context, contentType, identifier string) (CountResponse, error) {
	mc, err := s.contents.CountOfIdentifier(ctx, s.db, contentType, identifier)
	if err != nil {
		return CountResponse{}, err
	}
	return CountResponse{Status: true, Data: mc}, nil
}
