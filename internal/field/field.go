// internal/field/field.go
//
// Wire and typed representations of a content field.
//
// Context
// -------
// Input is what callers send and what the `content.fields` column stores:
// the kinds as strings and field_data as raw JSON.  ContentField is the
// validated form.  Its Data is a closed variant:
//
//   - ScalarData  when FieldContent == SCALAR
//   - GroupData   when FieldContent == COLLECTION (repeater groups)
//
// Convert turns Input into ContentField, Encode goes back.  On canonical
// input the two are inverse.
//
// field_data shapes
// -----------------
//   - SCALAR, non-ARRAY  → JSON string, e.g. "Hello", "42", "true",
//     "2024-05-01".
//   - SCALAR, ARRAY      → JSON array of strings.
//   - COLLECTION         → JSON array of groups, each group a JSON array
//     of field objects.
package field

import (
	"time"

	"github.com/goccy/go-json"
)

// Input is the external descriptor of one field.
type Input struct {
	Name         string          `json:"name"`
	Identifier   string          `json:"identifier"`
	DataType     string          `json:"data_type"`
	FieldType    string          `json:"field_type"`
	FieldContent string          `json:"field_content"`
	FieldData    json.RawMessage `json:"field_data"`
}

// ContentField is a validated field.
type ContentField struct {
	Name         string
	Identifier   string
	DataType     DataType
	FieldType    FieldType
	FieldContent FieldContent
	Data         Data
}

// Data is implemented by ScalarData and GroupData only.
type Data interface {
	content() FieldContent
}

// ScalarData holds one typed value.
type ScalarData struct {
	Value Value
}

// GroupData holds repeater groups.  Each group is an ordered field list
// whose identifiers are unique within that group.
type GroupData struct {
	Groups [][]ContentField
}

func (ScalarData) content() FieldContent { return ContentScalar }
func (GroupData) content() FieldContent  { return ContentCollection }

// Value is a typed scalar.  Only the member matching Type is meaningful.
type Value struct {
	Type  DataType
	Text  string
	Int   int64
	Float float64
	Bool  bool
	Date  time.Time
	Items []string
}

// Scalar returns the field's value when it is a scalar field.
func (f ContentField) Scalar() (Value, bool) {
	s, ok := f.Data.(ScalarData)
	return s.Value, ok
}

// Groups returns the repeater groups when it is a collection field.
func (f ContentField) Groups() ([][]ContentField, bool) {
	g, ok := f.Data.(GroupData)
	return g.Groups, ok
}
