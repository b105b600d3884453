package service

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// DefaultErrorMessage is used when a failed response carries no usable detail.
const DefaultErrorMessage = "an error occurred"

// DetailMessage derives the user-facing message of a failed response from its "detail" field.
//
//   - absent or falsy (null, "", 0, false): DefaultErrorMessage;
//   - array of {loc, msg}: "<loc[1]>: <msg>" per item, joined with ", "; validation is true;
//   - any other object: its compact JSON text, key order preserved;
//   - string: as-is; number or bool: its JSON text.
//
// A body that is not a JSON object has no detail.
func DetailMessage(body []byte) (message string, validation bool) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return DefaultErrorMessage, false
	}
	detail, ok := envelope["detail"]
	if !ok || isFalsy(detail) {
		return DefaultErrorMessage, false
	}

	switch firstByte(detail) {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(detail, &items); err != nil {
			return DefaultErrorMessage, false
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, validationItem(item))
		}
		return strings.Join(parts, ", "), true
	case '{':
		return compact(detail), false
	case '"':
		var s string
		_ = json.Unmarshal(detail, &s)
		return s, false
	default:
		return compact(detail), false
	}
}

// validationItem renders one {loc, msg} entry. Missing fields render as "undefined".
func validationItem(item json.RawMessage) string {
	var entry map[string]json.RawMessage
	if firstByte(item) != '{' || json.Unmarshal(item, &entry) != nil {
		return compact(item)
	}

	loc := "undefined"
	var locs []json.RawMessage
	if raw, ok := entry["loc"]; ok && json.Unmarshal(raw, &locs) == nil && len(locs) > 1 {
		loc = textOf(locs[1])
	}

	msg := "undefined"
	if raw, ok := entry["msg"]; ok {
		msg = textOf(raw)
	}
	return loc + ": " + msg
}

// textOf renders a JSON value the way string interpolation shows it.
func textOf(raw json.RawMessage) string {
	switch firstByte(raw) {
	case '"':
		var s string
		_ = json.Unmarshal(raw, &s)
		return s
	case '{':
		return "[object Object]"
	case '[':
		var items []json.RawMessage
		_ = json.Unmarshal(raw, &items)
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if firstByte(item) == 'n' {
				parts = append(parts, "")
				continue
			}
			parts = append(parts, textOf(item))
		}
		return strings.Join(parts, ",")
	default:
		return compact(raw)
	}
}

func isFalsy(raw json.RawMessage) bool {
	switch firstByte(raw) {
	case 'n', 'f':
		return true
	case '"':
		return compact(raw) == `""`
	case '[', '{', 't':
		return false
	default:
		f, err := strconv.ParseFloat(compact(raw), 64)
		return err == nil && f == 0
	}
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(bytes.TrimSpace(raw))
	}
	return buf.String()
}
