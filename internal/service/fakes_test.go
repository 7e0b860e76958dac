package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/adept-content/internal/collection"
	"github.com/yanizio/adept-content/internal/content"
	"github.com/yanizio/adept-content/internal/database"
	"github.com/yanizio/adept-content/internal/domain"
)

// memStore keeps collections and content in memory with the same
// uniqueness and existence rules as the MySQL repositories.
type memStore struct {
	mu          sync.Mutex
	seq         int
	collections map[string]collection.Collection
	contents    map[string]content.Content
	perPage     int

	lastStart int64
	lastOrder [2]string
	calls     int
}

func newMemStore() *memStore {
	return &memStore{
		collections: map[string]collection.Collection{},
		contents:    map[string]content.Content{},
		perPage:     10,
	}
}

func (m *memStore) nextID() string {
	m.seq++
	return time.Unix(int64(m.seq), 0).UTC().Format("20060102150405")
}

/*──────────────────────────── collections ─────────────────────────────────*/

type memCollections struct{ *memStore }

func (m memCollections) All(_ context.Context, _ sqlx.QueryerContext) ([]collection.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []collection.Collection{}
	for _, c := range m.collections {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memCollections) FindByID(_ context.Context, _ sqlx.QueryerContext, id string) (collection.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[id]
	if !ok {
		return collection.Collection{}, domain.NotFound("collection id", id)
	}
	return c, nil
}

func (m memCollections) Create(_ context.Context, _ sqlx.ExecerContext, in collection.Creatable) (collection.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	for _, c := range m.collections {
		if c.Identifier == in.Identifier {
			return collection.Collection{}, domain.Conflict("collection", in.Identifier)
		}
	}
	now := time.Now().UTC()
	c := collection.Collection{
		ID: m.nextID(), Name: in.Name, Identifier: in.Identifier,
		CreatedBy: in.Actor.String(), UpdatedBy: in.Actor.String(), CreatedAt: now, UpdatedAt: now,
	}
	m.collections[c.ID] = c
	return c, nil
}

func (m memCollections) Update(_ context.Context, _ database.Handle, in collection.Updatable) (collection.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[in.ID]
	if !ok {
		return collection.Collection{}, domain.NotFound("collection id", in.ID)
	}
	c.Name, c.Identifier, c.UpdatedBy, c.UpdatedAt = in.Name, in.Identifier, in.Actor.String(), time.Now().UTC()
	m.collections[c.ID] = c
	return c, nil
}

func (m memCollections) Delete(_ context.Context, _ database.Handle, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[id]; !ok {
		return false, nil
	}
	delete(m.collections, id)
	return true, nil
}

func (m memCollections) CountOfIdentifier(_ context.Context, _ sqlx.QueryerContext, identifier string) (domain.ModelCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range m.collections {
		if c.Identifier == identifier {
			n++
		}
	}
	return domain.ModelCount{Total: n}, nil
}

/*──────────────────────────── content ─────────────────────────────────────*/

type memContents struct{ *memStore }

func (m memContents) PerPage() int { return m.perPage }

func (m memContents) GetTotalCount(_ context.Context, _ sqlx.QueryerContext, contentType string) (domain.ModelCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range m.contents {
		if c.ContentType == contentType {
			n++
		}
	}
	return domain.ModelCount{Total: n}, nil
}

func (m memContents) Paginate(_ context.Context, _ sqlx.QueryerContext, contentType string, start int64, col, dir string) ([]content.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastStart, m.lastOrder = start, [2]string{col, dir}
	if _, _, err := (domain.Order{Column: col, Direction: dir}).Resolve(map[string]string{"id": "id", "name": "name"}); err != nil {
		return nil, err
	}
	out := []content.Content{}
	for _, c := range m.contents {
		if c.ContentType == contentType {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if start >= int64(len(out)) {
		return []content.Content{}, nil
	}
	end := start + int64(m.perPage)
	if end > int64(len(out)) {
		end = int64(len(out))
	}
	return out[start:end], nil
}

func (m memContents) Create(_ context.Context, _ sqlx.ExecerContext, in content.Creatable) (content.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	found := false
	for _, c := range m.collections {
		if c.Identifier == in.ContentType {
			found = true
		}
	}
	if !found {
		return content.Content{}, domain.NotFound("collection identifier", in.ContentType)
	}
	for _, c := range m.contents {
		if c.ContentType == in.ContentType && c.Identifier == in.Identifier {
			return content.Content{}, domain.Conflict(in.ContentType+" identifier", in.Identifier)
		}
	}
	now := time.Now().UTC()
	c := content.Content{
		ID: m.nextID(), Name: in.Name, Identifier: in.Identifier, ContentType: in.ContentType, Fields: in.Fields,
		CreatedBy: in.Actor.String(), UpdatedBy: in.Actor.String(), CreatedAt: now, UpdatedAt: now,
	}
	m.contents[c.ID] = c
	return c, nil
}

func (m memContents) find(contentType string, match func(content.Content) bool, key string) (content.Content, error) {
	for _, c := range m.contents {
		if c.ContentType == contentType && match(c) {
			return c, nil
		}
	}
	return content.Content{}, domain.NotFound(contentType, key)
}

func (m memContents) FindByID(_ context.Context, _ sqlx.QueryerContext, contentType, id string) (content.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(contentType, func(c content.Content) bool { return c.ID == id }, id)
}

func (m memContents) FindByIdentifier(_ context.Context, _ sqlx.QueryerContext, contentType, identifier string) (content.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(contentType, func(c content.Content) bool { return c.Identifier == identifier }, identifier)
}

func (m memContents) Update(_ context.Context, _ sqlx.ExtContext, in content.Updatable) (content.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.find(in.ContentType, func(c content.Content) bool { return c.ID == in.ID }, in.ID)
	if err != nil {
		return content.Content{}, err
	}
	c.Name, c.Fields, c.UpdatedBy, c.UpdatedAt = in.Name, in.Fields, in.Actor.String(), time.Now().UTC()
	m.contents[c.ID] = c
	return c, nil
}

func (m memContents) UpdateIdentifier(_ context.Context, _ sqlx.ExtContext, in content.IdentifierUpdate) (content.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.find(in.ContentType, func(c content.Content) bool { return c.ID == in.ID }, in.ID)
	if err != nil {
		return content.Content{}, err
	}
	for _, o := range m.contents {
		if o.ID != c.ID && o.ContentType == c.ContentType && o.Identifier == in.Identifier {
			return content.Content{}, domain.Conflict(in.ContentType+" identifier", in.Identifier)
		}
	}
	c.Identifier, c.UpdatedBy, c.UpdatedAt = in.Identifier, in.Actor.String(), time.Now().UTC()
	m.contents[c.ID] = c
	return c, nil
}

func (m memContents) Delete(_ context.Context, _ sqlx.ExecerContext, contentType, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contents[id]
	if !ok || c.ContentType != contentType {
		return false, nil
	}
	delete(m.contents, id)
	return true, nil
}

func (m memContents) CountOfIdentifier(_ context.Context, _ sqlx.QueryerContext, contentType, identifier string) (domain.ModelCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.find(contentType, func(c content.Content) bool { return c.Identifier == identifier }, identifier); err != nil {
		return domain.ModelCount{}, nil
	}
	return domain.ModelCount{Total: 1}, nil
}

func newTestService() (*ContentService, *memStore) {
	m := newMemStore()
	return NewContentService(nil, memCollections{m}, memContents{m}), m
}
