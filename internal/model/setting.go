package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// SettingType tags how a setting's stored text must be interpreted.
type SettingType string

const (
	SettingTypeNumber  SettingType = "number"
	SettingTypeString  SettingType = "string"
	SettingTypeBoolean SettingType = "boolean"
	SettingTypeJSON    SettingType = "json"
)

// Valid reports whether t is one of the known setting types.
func (t SettingType) Valid() bool {
	switch t {
	case SettingTypeNumber, SettingTypeString, SettingTypeBoolean, SettingTypeJSON:
		return true
	}
	return false
}

// Setting is a platform-wide key/value pair. Value holds the serialized form and
// Type says how to read it back.
type Setting struct {
	ID        string      `json:"id"`
	Key       string      `json:"key"`
	Value     string      `json:"value"`
	Type      SettingType `json:"type"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SettingValue is a typed setting value: one of NumberValue, TextValue,
// BoolValue or JSONValue.
type SettingValue interface {
	SettingType() SettingType
	isSettingValue()
}

type (
	NumberValue float64
	TextValue   string
	BoolValue   bool
	// JSONValue holds a JSON object or array.
	JSONValue json.RawMessage
)

func (NumberValue) SettingType() SettingType { return SettingTypeNumber }
func (TextValue) SettingType() SettingType   { return SettingTypeString }
func (BoolValue) SettingType() SettingType   { return SettingTypeBoolean }
func (JSONValue) SettingType() SettingType   { return SettingTypeJSON }

func (NumberValue) isSettingValue() {}
func (TextValue) isSettingValue()   {}
func (BoolValue) isSettingValue()   {}
func (JSONValue) isSettingValue()   {}

// ErrSettingValue is returned when a value does not have the shape its type requires.
var ErrSettingValue = errors.New("invalid setting value")

// DecodeSettingValue builds a SettingValue of type t from a raw JSON value.
// Numbers must arrive as JSON numbers, strings as JSON strings, booleans as JSON
// booleans and json values as objects or arrays.
func DecodeSettingValue(t SettingType, raw json.RawMessage) (SettingValue, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: value is required", ErrSettingValue)
	}
	switch t {
	case SettingTypeNumber:
		var n float64
		if json.Unmarshal(raw, &n) != nil {
			return nil, fmt.Errorf("%w: value must be a number when type is %q", ErrSettingValue, t)
		}
		return NumberValue(n), nil
	case SettingTypeString:
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return nil, fmt.Errorf("%w: value must be a string when type is %q", ErrSettingValue, t)
		}
		return TextValue(s), nil
	case SettingTypeBoolean:
		var b bool
		if json.Unmarshal(raw, &b) != nil {
			return nil, fmt.Errorf("%w: value must be a boolean when type is %q", ErrSettingValue, t)
		}
		return BoolValue(b), nil
	case SettingTypeJSON:
		if (raw[0] != '{' && raw[0] != '[') || !json.Valid(raw) {
			return nil, fmt.Errorf("%w: value must be an object or array when type is %q", ErrSettingValue, t)
		}
		return JSONValue(raw), nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrSettingValue, t)
	}
}

// EncodeSettingValue returns the stored text form of v.
func EncodeSettingValue(v SettingValue) (string, error) {
	switch val := v.(type) {
	case NumberValue:
		return strconv.FormatFloat(float64(val), 'f', -1, 64), nil
	case TextValue:
		return string(val), nil
	case BoolValue:
		return strconv.FormatBool(bool(val)), nil
	case JSONValue:
		var buf bytes.Buffer
		if err := json.Compact(&buf, val); err != nil {
			return "", fmt.Errorf("%w: %v", ErrSettingValue, err)
		}
		return buf.String(), nil
	case nil:
		return "", fmt.Errorf("%w: value is required", ErrSettingValue)
	default:
		return "", fmt.Errorf("%w: unsupported value %T", ErrSettingValue, v)
	}
}
