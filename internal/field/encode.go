package field

import (
	"strconv"

	"github.com/goccy/go-json"
)

// EncodeAll renders a validated list back to its wire form.  The result is
// what the content table stores and what responses carry.
func EncodeAll(fields []ContentField) []Input {
	out := make([]Input, len(fields))
	for i, f := range fields {
		out[i] = Encode(f)
	}
	return out
}

// Encode renders one validated field back to its wire form.
func Encode(f ContentField) Input {
	in := Input{
		Name:         f.Name,
		Identifier:   f.Identifier,
		DataType:     string(f.DataType),
		FieldType:    string(f.FieldType),
		FieldContent: string(f.FieldContent),
	}

	switch d := f.Data.(type) {
	case ScalarData:
		in.FieldData = encodeValue(d.Value)
	case GroupData:
		groups := make([][]Input, len(d.Groups))
		for i, g := range d.Groups {
			groups[i] = EncodeAll(g)
		}
		in.FieldData = mustMarshal(groups)
	}
	return in
}

// String renders a scalar in its wire text form.  ARRAY values have no
// single text form and return "".
func (v Value) String() string {
	switch v.Type {
	case DataTypeInteger:
		return strconv.FormatInt(v.Int, 10)
	case DataTypeFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case DataTypeBoolean:
		return strconv.FormatBool(v.Bool)
	case DataTypeDate:
		return v.Date.Format(DateLayout)
	case DataTypeArray:
		return ""
	default:
		return v.Text
	}
}

func encodeValue(v Value) json.RawMessage {
	if v.Type == DataTypeArray {
		items := v.Items
		if items == nil {
			items = []string{}
		}
		return mustMarshal(items)
	}
	return mustMarshal(v.String())
}

// mustMarshal only sees strings, string slices, and Input trees, none of
// which can fail to encode.
func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic("field: encode: " + err.Error())
	}
	return b
}
