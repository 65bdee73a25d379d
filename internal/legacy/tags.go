package legacy

import (
	"encoding/json"
	"strings"

	"github.com/aarondl/null/v8"
)

// ParseTags decodes the instruction tags column. Only the JSON-encoded string
// form is understood: a string starting with "[" is decoded as an array and its
// string elements kept. Anything else, including decode failures and values
// that are already slices, yields an empty list. It never fails.
func ParseTags(raw interface{}) []string {
	var text string
	switch v := raw.(type) {
	case string:
		text = v
	case []byte:
		text = string(v)
	case null.String:
		if !v.Valid {
			return []string{}
		}
		text = v.String
	default:
		return []string{}
	}

	if !strings.HasPrefix(text, tagsJSONPrefix) {
		return []string{}
	}

	var decoded []interface{}
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return []string{}
	}

	tags := make([]string, 0, len(decoded))
	for _, item := range decoded {
		if s, ok := item.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}
