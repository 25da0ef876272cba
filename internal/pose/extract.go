package pose

import (
	"bytes"
	"encoding/json"
)

// Extractor pulls the pose array out of one response shape. Extract reports
// false when the body does not have that shape.
type Extractor struct {
	Name    string
	Extract func(body []byte) ([]map[string]any, bool)
}

// Extractors lists the recognised list shapes in match order.
var Extractors = []Extractor{
	{Name: "array", Extract: directArray},
	keyed("items"),
	keyed("data"),
	keyed("poses"),
	keyed("yogaPoses"),
	keyed("results"),
	{Name: "first-array-field", Extract: firstArrayField},
}

// ExtractList applies Extractors in order and returns the first match along
// with the name of the shape that matched. An unrecognised body yields an
// empty list and false.
func ExtractList(body []byte) ([]map[string]any, string, bool) {
	for _, ex := range Extractors {
		if items, ok := ex.Extract(body); ok {
			return items, ex.Name, true
		}
	}
	return []map[string]any{}, "", false
}

// itemKeys are the wrapper fields a single pose may be nested under.
var itemKeys = []string{"data", "item", "pose"}

// ExtractItem returns the single pose object in body. A top-level object
// that looks like a pose wins over a wrapper field.
func ExtractItem(body []byte) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return nil, false
	}
	if looksLikePose(obj) {
		return obj, true
	}
	for _, key := range itemKeys {
		if nested, ok := obj[key].(map[string]any); ok {
			return nested, true
		}
	}
	return obj, true
}

func looksLikePose(obj map[string]any) bool {
	if _, ok := obj["id"]; ok {
		return true
	}
	for _, key := range nameKeys {
		if _, ok := obj[key]; ok {
			return true
		}
	}
	return false
}

func directArray(body []byte) ([]map[string]any, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	return decodeObjects(trimmed)
}

func keyed(field string) Extractor {
	return Extractor{
		Name: field,
		Extract: func(body []byte) ([]map[string]any, bool) {
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(body, &obj); err != nil {
				return nil, false
			}
			raw, ok := obj[field]
			if !ok {
				return nil, false
			}
			return decodeObjects(raw)
		},
	}
}

// firstArrayField walks the top-level object in document order, which a
// decoded map cannot preserve.
func firstArrayField(body []byte) ([]map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, false
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, false
		}
		if items, ok := decodeObjects(raw); ok {
			return items, true
		}
	}
	return nil, false
}

// decodeObjects decodes a JSON array, keeping only its object elements.
func decodeObjects(raw []byte) ([]map[string]any, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, false
	}
	out := make([]map[string]any, 0, len(elems))
	for _, elem := range elems {
		var obj map[string]any
		if err := json.Unmarshal(elem, &obj); err != nil || obj == nil {
			continue
		}
		out = append(out, obj)
	}
	return out, true
}
