package serialize

import "encoding/json"

// CanonicalJSON marshals v twice: once to a generic tree, once back
// out. encoding/json already sorts map keys alphabetically on
// marshal, so round-tripping through map[string]interface{} (applied
// recursively by the decoder) guarantees sorted object keys at every
// nesting level without hand-writing a key-sorting encoder. Output is
// compact, UTF-8, with no trailing whitespace.
func CanonicalJSON(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	return json.Marshal(generic)
}

// CanonicalJSONIndent is CanonicalJSON with two-space indentation, for
// human-facing --pretty output.
func CanonicalJSONIndent(v interface{}) ([]byte, error) {
	compact, err := CanonicalJSON(v)
	if err != nil {
		return nil, err
	}
	var buf []byte
	buf, err = indentJSON(compact)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func indentJSON(compact []byte) ([]byte, error) {
	var out interface{}
	if err := json.Unmarshal(compact, &out); err != nil {
		return nil, err
	}
	return json.MarshalIndent(out, "", "  ")
}
