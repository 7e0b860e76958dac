package domain

import (
	"errors"
	"testing"
)

func TestParseOrder(t *testing.T) {
	cases := []struct {
		raw  string
		want Order
	}{
		{"", DefaultOrder},
		{"name", DefaultOrder},
		{"a:b:c", DefaultOrder},
		{"name:asc", Order{"name", "asc"}},
		{"created_at:DESC", Order{"created_at", "DESC"}},
		{" name : asc ", Order{"name", "asc"}},
	}
	for _, c := range cases {
		if got := ParseOrder(c.raw); got != c.want {
			t.Errorf("ParseOrder(%q) = %+v, want %+v", c.raw, got, c.want)
		}
	}
}

func TestOrderResolve(t *testing.T) {
	cols := map[string]string{"id": "id", "name": "name"}

	col, dir, err := Order{"name", "Asc"}.Resolve(cols)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if col != "name" || dir != "ASC" {
		t.Fatalf("got %s %s", col, dir)
	}

	for _, o := range []Order{
		{"name; DROP TABLE content", "asc"},
		{"name", "sideways"},
		{"name", ""},
		{"", "asc"},
	} {
		if _, _, err := o.Resolve(cols); !errors.Is(err, ErrValidation) {
			t.Errorf("Resolve(%+v) err = %v, want ErrValidation", o, err)
		}
	}
}

func TestKind(t *testing.T) {
	cases := map[string]error{
		"ok":         nil,
		"not_found":  NotFound("content", "x"),
		"conflict":   Conflict("collection", "pages"),
		"validation": Invalid("bad %s", "thing"),
		"storage":    Storage("select", errors.New("boom")),
		"external":   ErrExternal,
	}
	for want, err := range cases {
		if got := Kind(err); got != want {
			t.Errorf("Kind(%v) = %q, want %q", err, got, want)
		}
	}
}
