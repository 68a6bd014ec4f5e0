package mysql

import "encoding/json"

// jsonOrEmpty marshals v, falling back to an empty JSON array so the
// column always holds valid JSON.
func jsonOrEmpty(v any) string {
	b, err := json.Marshal(v)
	if err != nil || v == nil {
		return "[]"
	}
	s := string(b)
	if s == "null" {
		return "[]"
	}
	return s
}

// unmarshalInto ignores empty/invalid stored JSON; missing fields stay nil
func unmarshalInto(raw string, dst any) {
	if raw == "" {
		return
	}
	_ = json.Unmarshal([]byte(raw), dst)
}
