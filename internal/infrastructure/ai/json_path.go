package ai

import (
	"fmt"
	"strconv"
	"strings"
)

// segment is one step of a response path: a field name, or an array index when index >= 0.
type segment struct {
	field string
	index int
}

// splitResponsePath turns "candidates[0].content.parts[0].text" into segments.
func splitResponsePath(path string) ([]segment, error) {
	var segs []segment
	for _, token := range strings.Split(path, ".") {
		name, rest, _ := strings.Cut(token, "[")
		if name != "" {
			segs = append(segs, segment{field: name, index: -1})
		}
		for rest != "" {
			digits, tail, ok := strings.Cut(rest, "]")
			if !ok {
				return nil, fmt.Errorf("unterminated index in %q", path)
			}
			idx, err := strconv.Atoi(digits)
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("invalid index %q in %q", digits, path)
			}
			segs = append(segs, segment{index: idx})
			rest = strings.TrimPrefix(tail, "[")
		}
	}
	return segs, nil
}

// extractJSONPath walks a decoded JSON envelope and returns the string found at path.
func extractJSONPath(data map[string]interface{}, path string) (string, error) {
	segs, err := splitResponsePath(path)
	if err != nil {
		return "", err
	}

	var node interface{} = data
	for _, seg := range segs {
		if seg.index >= 0 {
			arr, ok := node.([]interface{})
			if !ok {
				return "", fmt.Errorf("expected array before [%d]", seg.index)
			}
			if seg.index >= len(arr) {
				return "", fmt.Errorf("index %d out of bounds (len=%d)", seg.index, len(arr))
			}
			node = arr[seg.index]
			continue
		}

		obj, ok := node.(map[string]interface{})
		if !ok {
			return "", fmt.Errorf("expected object at %q", seg.field)
		}
		if node, ok = obj[seg.field]; !ok {
			return "", fmt.Errorf("field %q not found", seg.field)
		}
	}

	text, ok := node.(string)
	if !ok {
		return "", fmt.Errorf("value at %q is %T, not a string", path, node)
	}
	return text, nil
}
