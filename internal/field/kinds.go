// internal/field/kinds.go
//
// Closed enumerations for content fields.
//
// Context
// -------
// A content field declares three independent kinds: how its value is
// typed (DataType), which editor widget produces it (FieldType), and
// whether it holds one value or nested groups of fields (FieldContent).
// The wire spelling is the upper-case constant text.  Parse functions are
// total: every string maps to a kind or to an *Error, and nothing is
// silently coerced to a default.
//
// The compat table below is the single source of truth for which
// combinations are meaningful.
package field

import (
	"fmt"
	"strings"
)

// DataType is the declared type of a scalar value.
type DataType string

const (
	DataTypeText     DataType = "TEXT"
	DataTypeRichText DataType = "RICH_TEXT"
	DataTypeInteger  DataType = "INTEGER"
	DataTypeFloat    DataType = "FLOAT"
	DataTypeBoolean  DataType = "BOOLEAN"
	DataTypeDate     DataType = "DATE"
	DataTypeArray    DataType = "ARRAY"
)

// FieldType is the editor widget that produced the field.
type FieldType string

const (
	FieldTypeSingleLine     FieldType = "SINGLE_LINE"
	FieldTypeMultiLine      FieldType = "MULTI_LINE"
	FieldTypeRichTextEditor FieldType = "RICH_TEXT_EDITOR"
	FieldTypeNumber         FieldType = "NUMBER"
	FieldTypeSelect         FieldType = "SELECT"
	FieldTypeRadio          FieldType = "RADIO"
	FieldTypeCheckbox       FieldType = "CHECKBOX"
	FieldTypeSwitch         FieldType = "SWITCH"
	FieldTypeDatePicker     FieldType = "DATE_PICKER"
	FieldTypeRepeater       FieldType = "REPEATER"
)

// FieldContent selects the payload variant.
type FieldContent string

const (
	ContentScalar     FieldContent = "SCALAR"
	ContentCollection FieldContent = "COLLECTION"
)

// DateLayout is the wire format of DATE values.
const DateLayout = "2006-01-02"

type rule struct {
	content FieldContent
	data    []DataType
}

var compat = map[FieldType]rule{
	FieldTypeSingleLine:     {ContentScalar, []DataType{DataTypeText}},
	FieldTypeMultiLine:      {ContentScalar, []DataType{DataTypeText}},
	FieldTypeSelect:         {ContentScalar, []DataType{DataTypeText}},
	FieldTypeRadio:          {ContentScalar, []DataType{DataTypeText}},
	FieldTypeRichTextEditor: {ContentScalar, []DataType{DataTypeRichText}},
	FieldTypeNumber:         {ContentScalar, []DataType{DataTypeInteger, DataTypeFloat}},
	FieldTypeCheckbox:       {ContentScalar, []DataType{DataTypeArray}},
	FieldTypeSwitch:         {ContentScalar, []DataType{DataTypeBoolean}},
	FieldTypeDatePicker:     {ContentScalar, []DataType{DataTypeDate}},
	FieldTypeRepeater:       {ContentCollection, []DataType{DataTypeArray}},
}

var dataTypes = map[DataType]struct{}{
	DataTypeText: {}, DataTypeRichText: {}, DataTypeInteger: {}, DataTypeFloat: {},
	DataTypeBoolean: {}, DataTypeDate: {}, DataTypeArray: {},
}

/*──────────────────────────── parsing ─────────────────────────────────────*/

// ParseDataType maps the wire spelling to a DataType.
func ParseDataType(s string) (DataType, error) {
	dt := DataType(s)
	if _, ok := dataTypes[dt]; !ok {
		return "", unknown("data_type", s)
	}
	return dt, nil
}

// ParseFieldType maps the wire spelling to a FieldType.
func ParseFieldType(s string) (FieldType, error) {
	ft := FieldType(s)
	if _, ok := compat[ft]; !ok {
		return "", unknown("field_type", s)
	}
	return ft, nil
}

// ParseFieldContent maps the wire spelling to a FieldContent.
func ParseFieldContent(s string) (FieldContent, error) {
	switch fc := FieldContent(s); fc {
	case ContentScalar, ContentCollection:
		return fc, nil
	}
	return "", unknown("field_content", s)
}

// checkCompat reports whether ft may carry dt with content fc.
func checkCompat(ft FieldType, dt DataType, fc FieldContent) error {
	r := compat[ft]
	if r.content != fc {
		return &Error{Path: "field_content", Reason: fmt.Sprintf("%s fields must be %s, got %s", ft, r.content, fc)}
	}
	for _, allowed := range r.data {
		if allowed == dt {
			return nil
		}
	}
	names := make([]string, len(r.data))
	for i, d := range r.data {
		names[i] = string(d)
	}
	return &Error{Path: "data_type", Reason: fmt.Sprintf("%s fields accept %s, got %s", ft, strings.Join(names, " or "), dt)}
}

func unknown(what, s string) error {
	return &Error{Path: what, Reason: fmt.Sprintf("unknown value %q", s)}
}
