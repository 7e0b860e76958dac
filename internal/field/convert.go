package field

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// MaxDepth bounds repeater nesting.  A top-level field is depth 1.
const MaxDepth = 16

// ConvertAll validates a top-level field list.  It is all-or-nothing: the
// first failure is returned and no partial list is produced.
func ConvertAll(in []Input) ([]ContentField, error) {
	out, err := convertList(in, 1)
	if err != nil {
		return nil, at("fields", err)
	}
	return out, nil
}

// Convert validates a single descriptor.
func Convert(in Input) (ContentField, error) {
	return convertOne(in, 1)
}

func convertList(in []Input, depth int) ([]ContentField, error) {
	out := make([]ContentField, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for i, raw := range in {
		idx := fmt.Sprintf("[%d]", i)
		f, err := convertOne(raw, depth)
		if err != nil {
			return nil, at(idx, err)
		}
		if _, dup := seen[f.Identifier]; dup {
			return nil, &Error{Path: idx + ".identifier", Reason: fmt.Sprintf("duplicate identifier %q", f.Identifier)}
		}
		seen[f.Identifier] = struct{}{}
		out = append(out, f)
	}
	return out, nil
}

func convertOne(in Input, depth int) (ContentField, error) {
	if depth > MaxDepth {
		return ContentField{}, &Error{Reason: fmt.Sprintf("nested deeper than %d levels", MaxDepth)}
	}
	if strings.TrimSpace(in.Identifier) == "" {
		return ContentField{}, &Error{Path: "identifier", Reason: "must not be empty"}
	}

	dt, err := ParseDataType(in.DataType)
	if err != nil {
		return ContentField{}, err
	}
	ft, err := ParseFieldType(in.FieldType)
	if err != nil {
		return ContentField{}, err
	}
	fc, err := ParseFieldContent(in.FieldContent)
	if err != nil {
		return ContentField{}, err
	}
	if err := checkCompat(ft, dt, fc); err != nil {
		return ContentField{}, err
	}

	f := ContentField{
		Name:         in.Name,
		Identifier:   in.Identifier,
		DataType:     dt,
		FieldType:    ft,
		FieldContent: fc,
	}

	switch fc {
	case ContentScalar:
		v, err := parseScalar(dt, in.FieldData)
		if err != nil {
			return ContentField{}, at("field_data", err)
		}
		f.Data = ScalarData{Value: v}
	case ContentCollection:
		groups, err := parseGroups(in.FieldData, depth)
		if err != nil {
			return ContentField{}, at("field_data", err)
		}
		f.Data = GroupData{Groups: groups}
	}
	return f, nil
}

/*──────────────────────────── scalar values ───────────────────────────────*/

// Numbers travel as plain decimal text.  Signs other than a leading minus,
// hex, underscores, and Inf spellings are rejected so Encode reproduces
// what was accepted.
var (
	decimalInt   = regexp.MustCompile(`^-?[0-9]+$`)
	decimalFloat = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?$`)
)

func parseScalar(dt DataType, raw json.RawMessage) (Value, error) {
	v := Value{Type: dt}

	if dt == DataTypeArray {
		if !leading(raw, '[') {
			return v, &Error{Reason: "ARRAY values must be a JSON array of strings"}
		}
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return v, &Error{Reason: "ARRAY values must be a JSON array of strings"}
		}
		items := make([]string, len(elems))
		for i, e := range elems {
			if !leading(e, '"') || json.Unmarshal(e, &items[i]) != nil {
				return v, &Error{Path: fmt.Sprintf("[%d]", i), Reason: "ARRAY items must be JSON strings"}
			}
		}
		v.Items = items
		return v, nil
	}

	if !leading(raw, '"') {
		return v, &Error{Reason: fmt.Sprintf("%s values must be a JSON string", dt)}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return v, &Error{Reason: fmt.Sprintf("%s values must be a JSON string", dt)}
	}

	switch dt {
	case DataTypeText, DataTypeRichText:
		v.Text = s
	case DataTypeInteger:
		if !decimalInt.MatchString(s) {
			return v, &Error{Reason: fmt.Sprintf("%q is not an integer", s)}
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return v, &Error{Reason: fmt.Sprintf("%q is not an integer", s)}
		}
		v.Int = n
	case DataTypeFloat:
		x, err := strconv.ParseFloat(s, 64)
		if err != nil || !decimalFloat.MatchString(s) || math.IsNaN(x) || math.IsInf(x, 0) {
			return v, &Error{Reason: fmt.Sprintf("%q is not a finite number", s)}
		}
		v.Float = x
	case DataTypeBoolean:
		switch s {
		case "true":
			v.Bool = true
		case "false":
		default:
			return v, &Error{Reason: fmt.Sprintf("%q is not true or false", s)}
		}
	case DataTypeDate:
		d, err := time.Parse(DateLayout, s)
		if err != nil {
			return v, &Error{Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", s)}
		}
		v.Date = d
	}
	return v, nil
}

/*──────────────────────────── repeater groups ─────────────────────────────*/

func parseGroups(raw json.RawMessage, depth int) ([][]ContentField, error) {
	const shape = "COLLECTION values must be a JSON array of field arrays"
	if !leading(raw, '[') {
		return nil, &Error{Reason: shape}
	}
	var groups [][]Input
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil, &Error{Reason: shape}
	}

	out := make([][]ContentField, 0, len(groups))
	for gi, g := range groups {
		if g == nil {
			return nil, &Error{Path: fmt.Sprintf("[%d]", gi), Reason: "group must be an array"}
		}
		fields, err := convertList(g, depth+1)
		if err != nil {
			return nil, at(fmt.Sprintf("[%d]", gi), err)
		}
		out = append(out, fields)
	}
	return out, nil
}

// leading reports whether the first non-space byte of raw is c.  It guards
// against JSON null, which would otherwise decode into a zero value.
func leading(raw []byte, c byte) bool {
	raw = bytes.TrimLeft(raw, " \t\r\n")
	return len(raw) > 0 && raw[0] == c
}
