// internal/collection/repository.go
//
// Collection persistence.
//
// Context
// -------
// Collections define the content types.  Each row carries a globally
// unique slug identifier; content rows point at it by value through
// content.content_type.  The UNIQUE index on identifier is the only
// arbiter of uniqueness, so concurrent creates with the same identifier
// resolve to one success and one ErrConflict.
//
// Workflow
// --------
//   - Reads are single statements.
//   - Update and Delete run in a transaction that first locks the row
//     (SELECT ... FOR UPDATE).  Update re-points content_type when the
//     identifier changes; Delete refuses while content still points here.
//
// Notes
// -----
//   - Every method takes the storage handle explicitly, so callers may pass
//     the pool or an open *sqlx.Tx.
//   - Timestamps are UTC, truncated to the DATETIME(6) precision.
package collection

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

const entity = "collection"

const columns = `id, name, identifier, created_by, updated_by, created_at, updated_at`

// Repository is stateless apart from its clock and id source.
type Repository struct {
	now   func() time.Time
	newID func() string
}

// NewRepository returns a Repository using the wall clock and ULIDs.
func NewRepository() *Repository {
	return &Repository{
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID: domain.NewID,
	}
}

/*──────────────────────────── reads ───────────────────────────────────────*/

// All returns every collection ordered by id (creation order).
func (r *Repository) All(ctx context.Context, db sqlx.QueryerContext) (out []Collection, err error) {
	defer func(t time.Time) { metrics.ObserveStorage(entity, "all", t, err) }(time.Now())

	const q = `SELECT ` + columns + ` FROM collection ORDER BY id ASC`
	out = []Collection{}
	if err := sqlx.SelectContext(ctx, db, &out, q); err != nil {
		return nil, domain.Storage("collection all", err)
	}
	return out, nil
}

// FindByID returns the collection with id or ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, db sqlx.QueryerContext, id string) (c Collection, err error) {
	defer func(t time.Time) { metrics.ObserveStorage(entity, "find_by_id", t, err) }(time.Now())

	const q = `SELECT ` + columns + ` FROM collection WHERE id = ?`
	return r.get(ctx, db, q, "id", id)
}

// CountOfIdentifier counts collections using identifier (0 or 1).
func (r *Repository) CountOfIdentifier(ctx context.Context, db sqlx.QueryerContext, identifier string) (mc domain.ModelCount, err error) {
	defer func(t time.Time) { metrics.ObserveStorage(entity, "count_identifier", t, err) }(time.Now())

	const q = `SELECT COUNT(*) AS total FROM collection WHERE identifier = ?`
	if err := sqlx.GetContext(ctx, db, &mc, q, identifier); err != nil {
		return domain.ModelCount{}, domain.Storage("collection count", err)
	}
	return mc, nil
}

func (r *Repository) get(ctx context.Context, db sqlx.QueryerContext, q, key, val string) (Collection, error) {
	var c Collection
	err := sqlx.GetContext(ctx, db, &c, q, val)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Collection{}, domain.NotFound("collection "+key, val)
	case err != nil:
		return Collection{}, domain.Storage("collection get", err)
	}
	return c, nil
}

/*──────────────────────────── writes ──────────────────────────────────────*/

// Create inserts a collection stamped with the caller as creator and
// updater.  A taken identifier yields ErrConflict.
func (r *Repository) Create(ctx context.Context, db sqlx.ExecerContext, in Creatable) (c Collection, err error) {
	defer func(t time.Time) { metrics.ObserveStorage(entity, "create", t, err) }(time.Now())

	if err := in.validate(); err != nil {
		return Collection{}, err
	}

	now := r.now()
	c = Collection{
		ID:         r.newID(),
		Name:       in.Name,
		Identifier: in.Identifier,
		CreatedBy:  in.Actor.String(),
		UpdatedBy:  in.Actor.String(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	const q = `INSERT INTO collection (` + columns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = db.ExecContext(ctx, q,
		c.ID, c.Name, c.Identifier, c.CreatedBy, c.UpdatedBy, c.CreatedAt, c.UpdatedAt)
	switch {
	case database.IsDuplicateKey(err):
		return Collection{}, domain.Conflict("collection", in.Identifier)
	case err != nil:
		return Collection{}, domain.Storage("collection create", err)
	}
	return c, nil
}

// Update replaces name and identifier, stamps the updater, and returns the
// stored row.  When the identifier changes, content of the old type is
// moved to the new one in the same transaction.
func (r *Repository) Update(ctx context.Context, db database.Handle, in Updatable) (c Collection, err error) {
	defer func(t time.Time) { metrics.ObserveStorage(entity, "update", t, err) }(time.Now())

	if err := in.validate(); err != nil {
		return Collection{}, err
	}

	err = database.WithTx(ctx, db, func(tx *sqlx.Tx) error {
		old, err := lockIdentifier(ctx, tx, in.ID)
		if err != nil {
			return err
		}

		const upd = `UPDATE collection SET name = ?, identifier = ?, updated_by = ?, updated_at = ? WHERE id = ?`
		_, err = tx.ExecContext(ctx, upd, in.Name, in.Identifier, in.Actor.String(), r.now(), in.ID)
		switch {
		case database.IsDuplicateKey(err):
			return domain.Conflict("collection", in.Identifier)
		case err != nil:
			return domain.Storage("collection update", err)
		}

		if old != in.Identifier {
			const move = `UPDATE content SET content_type = ? WHERE content_type = ?`
			if _, err := tx.ExecContext(ctx, move, in.Identifier, old); err != nil {
				return domain.Storage("collection update content_type", err)
			}
		}

		const q = `SELECT ` + columns + ` FROM collection WHERE id = ?`
		c, err = r.get(ctx, tx, q, "id", in.ID)
		return err
	})
	if err != nil {
		return Collection{}, err
	}
	return c, nil
}

// Delete removes the collection with id.  It reports false when no such
// row exists and ErrConflict while content still uses the collection.
func (r *Repository) Delete(ctx context.Context, db database.Handle, id string) (deleted bool, err error) {
	defer func(t time.Time) { metrics.ObserveStorage(entity, "delete", t, err) }(time.Now())

	err = database.WithTx(ctx, db, func(tx *sqlx.Tx) error {
		ident, err := lockIdentifier(ctx, tx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var used domain.ModelCount
		const cnt = `SELECT COUNT(*) AS total FROM content WHERE content_type = ?`
		if err := tx.GetContext(ctx, &used, cnt, ident); err != nil {
			return domain.Storage("collection delete count", err)
		}
		if used.Total > 0 {
			return fmt.Errorf("collection %q still holds %d content item(s): %w", ident, used.Total, domain.ErrConflict)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM collection WHERE id = ?`, id); err != nil {
			return domain.Storage("collection delete", err)
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// lockIdentifier reads and row-locks the identifier of collection id.
func lockIdentifier(ctx context.Context, tx *sqlx.Tx, id string) (string, error) {
	var ident string
	err := tx.GetContext(ctx, &ident, `SELECT identifier FROM collection WHERE id = ? FOR UPDATE`, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", domain.NotFound("collection id", id)
	case err != nil:
		return "", domain.Storage("collection lock", err)
	}
	return ident, nil
}
