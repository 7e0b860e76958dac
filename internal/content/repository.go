// internal/content/repository.go
//
// Content persistence.
//
// Context
// -------
// Content rows belong to a collection by value: content.content_type holds
// collection.identifier.  Every read and write filters on content_type, so
// an id from one collection never resolves under another.  Uniqueness of
// (content_type, identifier) is enforced by the index, never by a
// read-then-write check.
//
// Workflow
// --------
//   - Create inserts through INSERT ... SELECT FROM collection, so the
//     existence check of the owning collection and the insert are one
//     statement.  Zero affected rows means the collection is missing.
//   - Update and UpdateIdentifier write, then re-read the row.  A missed
//     re-read is ErrNotFound.
//   - Paginate resolves the caller's order against orderColumns and never
//     interpolates caller text.
//
// Notes
// -----
//   - The fields column holds the canonical wire JSON.  Rows are decoded
//     and re-validated through the field package on every read.
//   - Page size is fixed per Repository (config `content.per_page`).
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/adept-content/internal/database"
	"github.com/yanizio/adept-content/internal/domain"
	"github.com/yanizio/adept-content/internal/metrics"
)

const entity = "content"

// DefaultPerPage is the page size when none is configured.
const DefaultPerPage = 10

const columns = `id, name, identifier, content_type, fields, created_by, updated_by, created_at, updated_at`

// orderColumns is the allow-list for Paginate.
var orderColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"identifier": "identifier",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"created_by": "created_by",
	"updated_by": "updated_by",
}

// Repository is stateless apart from its clock, id source, and page size.
type Repository struct {
	now     func() time.Time
	newID   func() string
	perPage int
}

// NewRepository returns a Repository with the given page size.  Values
// below 1 fall back to DefaultPerPage.
func NewRepository(perPage int) *Repository {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return &Repository{
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID:   domain.NewID,
		perPage: perPage,
	}
}

// PerPage reports the fixed page size.
func (r *Repository) PerPage() int { return r.perPage }

/*──────────────────────────── reads ───────────────────────────────────────*/

// GetTotalCount counts the content of one collection.
func (r *Repository) GetTotalCount(ctx context.Context, db sqlx.QueryerContext, contentType string) (mc domain.ModelCount, err error) {
	defer func(t time.Time) { metrics.ObserveStorage(entity, "count", t, err) }(time.Now())

	const q = `SELECT COUNT(*) AS total FROM content WHERE content_type = ?`
	if err := sqlx.GetContext(ctx, db, &mc, q, contentType); err != nil {
		return domain.ModelCount{}, domain.Storage("content count", err)
	}
	return mc, nil
}

// Paginate returns at most PerPage items of contentType starting at offset
// start.  orderColumn and orderDirection are checked against a fixed
// allow-list; ties are broken by id so pages never overlap.
func (r *Repository) Paginate(ctx context.Context, db sqlx.QueryerContext, contentType string, start int64, orderColumn, orderDirection string) (out []Content, err error) {
	defer func(t time.Time) { metrics.ObserveStorage(entity, "paginate", t, err) }(time.Now())

	if start < 0 {
		return nil, domain.Invalid("page start %d is negative", start)
	}
	col, dir, err := domain.Order{Column: orderColumn, Direction: orderDirection}.Resolve(orderColumns)
	if err != nil {
		return nil, err
	}
	orderBy := col + " " + dir
	if col != "id" {
		orderBy += ", id " + dir
	}

	q := fmt.Sprintf(`SELECT %s FROM content WHERE content_type = ? ORDER BY %s LIMIT ? OFFSET ?`, columns, orderBy)

	var rows []row
	if err := sqlx.SelectContext(ctx, db, &rows, q, contentType, r.perPage, start); err != nil {
		return nil, domain.Storage("content paginate", err)
	}

	out = make([]Content, 0, len(rows))
	for _, rw := range rows {
		c, err := rw.model()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// FindByID returns the item id within contentType or ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, db sqlx.QueryerContext, contentType, id string) (c Content, err error) {
	defer func(t time.Time) { metrics.ObserveStorage(entity, "find_by_id", t, err) }(time.Now())

	const q = `SELECT ` + columns + ` FROM content WHERE content_type = ? AND id = ?`
	return r.get(ctx, db, q, contentType, id)
}

// FindByIdentifier returns the item with identifier within contentType or
// ErrNotFound.
func (r *Repository) FindByIdentifier(ctx context.Context, db sqlx.QueryerContext, contentType, identifier string) (c Content, err error) {
	defer func(t time.Time) { metrics.ObserveStorage(entity, "find_by_identifier", t, err) }(time.Now())

	const q = `SELECT ` + columns + ` FROM content WHERE content_type = ? AND identifier = ?`
	return r.get(ctx, db, q, contentType, identifier)
}

// CountOfIdentifier counts items of contentType using identifier (0 or 1).
func (r *Repository) CountOfIdentifier(ctx context.Context, db sqlx.QueryerContext, contentType, identifier string) (mc domain.ModelCount, err error) {
	defer func(t time.Time) { metrics.ObserveStorage(entity, "count_identifier", t, err) }(time.Now())

	const q = `SELECT COUNT(*) AS total FROM content WHERE content_type = ? AND identifier = ?`
	if err := sqlx.GetContext(ctx, db, &mc, q, contentType, identifier); err != nil {
		return domain.ModelCount{}, domain.Storage("content count identifier", err)
	}
	return mc, nil
}

func (r *Repository) get(ctx context.Context, db sqlx.QueryerContext, q, contentType, key string) (Content, error) {
	var rw row
	err := sqlx.GetContext(ctx, db, &rw, q, contentType, key)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Content{}, domain.NotFound(contentType, key)
	case err != nil:
		return Content{}, domain.Storage("content get", err)
	}
	return rw.model()
}

/*──────────────────────────── writes ──────────────────────────────────────*/

// Create inserts a content item into an existing collection.  A missing
// collection yields ErrNotFound; a taken identifier yields ErrConflict.
func (r *Repository) Create(ctx context.Context, db sqlx.ExecerContext, in Creatable) (c Content, err error) {
	defer func(t time.Time) { metrics.ObserveStorage(entity, "create", t, err) }(time.Now())

	if err := in.validate(); err != nil {
		return Content{}, err
	}
	fields, err := encodeFields(in.Fields)
	if err != nil {
		return Content{}, domain.Storage("content encode fields", err)
	}

	now := r.now()
	c = Content{
		ID:          r.newID(),
		Name:        in.Name,
		Identifier:  in.Identifier,
		ContentType: in.ContentType,
		Fields:      in.Fields,
		CreatedBy:   in.Actor.String(),
		UpdatedBy:   in.Actor.String(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	const q = `INSERT INTO content (` + columns + `)
		SELECT ?, ?, ?, identifier, ?, ?, ?, ?, ? FROM collection WHERE identifier = ?`
	res, err := db.ExecContext(ctx, q,
		c.ID, c.Name, c.Identifier, fields, c.CreatedBy, c.UpdatedBy, c.CreatedAt, c.UpdatedAt, in.ContentType)
	switch {
	case database.IsDuplicateKey(err):
		return Content{}, domain.Conflict(in.ContentType+" identifier", in.Identifier)
	case err != nil:
		return Content{}, domain.Storage("content create", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return Content{}, domain.Storage("content create", err)
	}
	if n == 0 {
		return Content{}, domain.NotFound("collection identifier", in.ContentType)
	}
	return c, nil
}

// Update replaces name and the whole field list, stamps the updater, and
// returns the stored row.
func (r *Repository) Update(ctx context.Context, db sqlx.ExtContext, in Updatable) (c Content, err error) {
	defer func(t time.Time) { metrics.ObserveStorage(entity, "update", t, err) }(time.Now())

	if err := in.validate(); err != nil {
		return Content{}, err
	}
	fields, err := encodeFields(in.Fields)
	if err != nil {
		return Content{}, domain.Storage("content encode fields", err)
	}

	const q = `UPDATE content SET name = ?, fields = ?, updated_by = ?, updated_at = ? WHERE content_type = ? AND id = ?`
	if _, err := db.ExecContext(ctx, q, in.Name, fields, in.Actor.String(), r.now(), in.ContentType, in.ID); err != nil {
		return Content{}, domain.Storage("content update", err)
	}
	return r.FindByID(ctx, db, in.ContentType, in.ID)
}

// UpdateIdentifier changes only the identifier and the update stamp.
func (r *Repository) UpdateIdentifier(ctx context.Context, db sqlx.ExtContext, in IdentifierUpdate) (c Content, err error) {
	defer func(t time.Time) { metrics.ObserveStorage(entity, "update_identifier", t, err) }(time.Now())

	if err := in.validate(); err != nil {
		return Content{}, err
	}

	const q = `UPDATE content SET identifier = ?, updated_by = ?, updated_at = ? WHERE content_type = ? AND id = ?`
	_, err = db.ExecContext(ctx, q, in.Identifier, in.Actor.String(), r.now(), in.ContentType, in.ID)
	switch {
	case database.IsDuplicateKey(err):
		return Content{}, domain.Conflict(in.ContentType+" identifier", in.Identifier)
	case err != nil:
		return Content{}, domain.Storage("content update identifier", err)
	}
	return r.FindByID(ctx, db, in.ContentType, in.ID)
}

// Delete removes one item.  It reports whether a row was removed, so a
// repeated delete returns false rather than an error.
func (r *Repository) Delete(ctx context.Context, db sqlx.ExecerContext, contentType, id string) (deleted bool, err error) {
	defer func(t time.Time) { metrics.ObserveStorage(entity, "delete", t, err) }(time.Now())

	res, err := db.ExecContext(ctx, `DELETE FROM content WHERE content_type = ? AND id = ?`, contentType, id)
	if err != nil {
		return false, domain.Storage("content delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.Storage("content delete", err)
	}
	return n > 0, nil
}
