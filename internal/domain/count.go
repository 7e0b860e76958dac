package domain

// ModelCount is the result of a count query.  It is computed fresh on every
// call and never cached.
type ModelCount struct {
	Total int64 `db:"total" json:"total"`
}
