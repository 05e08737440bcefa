package migration

import (
	"bytes"
	"encoding/json"

	"fjacquet/mes-comptes/internal/currencyutils"
)

// jsonKind is the JSON type of a raw value, read from its first byte.
type jsonKind int

const (
	kindInvalid jsonKind = iota
	kindNull
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
)

func kindOf(raw json.RawMessage) jsonKind {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return kindInvalid
	}
	switch c := trimmed[0]; {
	case c == '{':
		return kindObject
	case c == '[':
		return kindArray
	case c == '"':
		return kindString
	case c == 'n':
		return kindNull
	case c == 't' || c == 'f':
		return kindBool
	case c == '-' || (c >= '0' && c <= '9'):
		return kindNumber
	default:
		return kindInvalid
	}
}

// arrayElements splits a JSON array into its elements.
func arrayElements(raw json.RawMessage) ([]json.RawMessage, bool) {
	if kindOf(raw) != kindArray {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	return elems, true
}

// objectFields splits a JSON object into its members.
func objectFields(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if kindOf(raw) != kindObject {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

// textField reads a string member. Numbers are kept as their literal text so
// that numeric ids written by older versions survive. Anything else is "".
func textField(raw json.RawMessage) string {
	switch kindOf(raw) {
	case kindString:
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case kindNumber:
		return string(bytes.TrimSpace(raw))
	}
	return ""
}

// numberField reads a numeric member. Absent and null read as 0. Strings are
// read with currencyutils.ParseAmount, so "12,50" and "1,234.50" are accepted;
// ok is false when the member holds something that is not a number.
func numberField(raw json.RawMessage) (value float64, ok bool) {
	switch kindOf(raw) {
	case kindNull:
		return 0, true
	case kindInvalid:
		return 0, len(raw) == 0
	case kindNumber:
		if err := json.Unmarshal(raw, &value); err != nil {
			return 0, false
		}
		return value, true
	case kindString:
		amount, err := currencyutils.ParseAmount(textField(raw))
		if err != nil {
			return 0, false
		}
		return amount.InexactFloat64(), true
	default:
		return 0, false
	}
}
