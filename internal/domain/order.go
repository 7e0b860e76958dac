// internal/domain/order.go
//
// Sort-order parsing for paginated listings.
//
// Context
// -------
// Callers send the order as one string, "column:direction".  The string is
// split on ":" and used only when it yields exactly two parts.  Anything
// else means "no override" and the listing falls back to DefaultOrder.
//
// The parsed column and direction are still raw caller text.  Repositories
// resolve them against a fixed allow-list with Resolve before any SQL is
// built, so caller text never reaches a statement.
package domain

import "strings"

// Order is an unvalidated (column, direction) pair.
type Order struct {
	Column    string
	Direction string
}

// DefaultOrder is newest first.
var DefaultOrder = Order{Column: "id", Direction: "desc"}

// ParseOrder splits raw on ":".  A missing or malformed override yields
// DefaultOrder.
func ParseOrder(raw string) Order {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return DefaultOrder
	}
	return Order{
		Column:    strings.TrimSpace(parts[0]),
		Direction: strings.TrimSpace(parts[1]),
	}
}

// Resolve maps the order onto SQL tokens.  columns maps public column names
// to their SQL expressions.  Unknown columns or directions other than
// asc/desc (any case) are validation errors.
func (o Order) Resolve(columns map[string]string) (column, direction string, err error) {
	column, ok := columns[o.Column]
	if !ok {
		return "", "", Invalid("unknown order column %q", o.Column)
	}
	switch strings.ToLower(o.Direction) {
	case "asc":
		direction = "ASC"
	case "desc":
		direction = "DESC"
	default:
		return "", "", Invalid("unknown order direction %q", o.Direction)
	}
	return column, direction, nil
}
