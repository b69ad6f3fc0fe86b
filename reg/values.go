package reg

import (
	"fmt"
	"strings"

	"github.com/joshuapare/regprov/pkg/types"
)

// payloadSlot selects the request/response field that carries a value's
// data. DWORD, QWORD and binary payloads travel in uValue; the three string
// kinds travel in sValue.
type payloadSlot int

const (
	slotNumeric payloadSlot = iota
	slotString
)

func (s payloadSlot) field() string {
	if s == slotNumeric {
		return paramNumeric
	}
	return paramString
}

// methodSpec binds a value type to its provider get/set method names and
// payload slot. The table is total over the six supported types so the
// router never builds method names at runtime.
type methodSpec struct {
	get  string
	set  string
	slot payloadSlot
}

var methodSpecs = map[types.ValueType]methodSpec{
	types.Binary:         {get: "GetBinaryValue", set: "SetBinaryValue", slot: slotNumeric},
	types.DWord:          {get: "GetDWORDValue", set: "SetDWORDValue", slot: slotNumeric},
	types.QWord:          {get: "GetQWORDValue", set: "SetQWORDValue", slot: slotNumeric},
	types.String:         {get: "GetStringValue", set: "SetStringValue", slot: slotString},
	types.ExpandedString: {get: "GetExpandedStringValue", set: "SetExpandedStringValue", slot: slotString},
	types.MultiString:    {get: "GetMultiStringValue", set: "SetMultiStringValue", slot: slotString},
}

// valueParams builds the parameter set shared by every get/set/delete-value
// call.
func valueParams(hive types.Hive, path, name string) map[string]any {
	return map[string]any{
		paramHive:      uint32(hive),
		paramSubKey:    path,
		paramValueName: name,
	}
}

// Value reads the named value as the given type. The second return reports
// whether the value exists: a provider "not found" is a normal absent
// result, never an error. The empty name addresses the key's default value.
//
// The concrete type of the returned value follows the registry type:
// []byte for REG_BINARY, uint32 for REG_DWORD, uint64 for REG_QWORD,
// string for REG_SZ and REG_EXPAND_SZ, []string for REG_MULTI_SZ.
func (c *Client) Value(hive types.Hive, path, name string, t types.ValueType) (any, bool, error) {
	spec, ok := methodSpecs[t]
	if !ok {
		return nil, false, types.ErrUnsupportedType
	}
	resp, err := c.invoke(spec.get, valueParams(hive, path, name))
	if err != nil {
		return nil, false, err
	}
	rv, err := returnCode(resp)
	if err != nil {
		return nil, false, err
	}
	if rv == returnNotFound {
		return nil, false, nil
	}
	if rv != 0 {
		return nil, false, &types.Error{
			Kind: types.ErrKindProvider,
			Msg:  fmt.Sprintf("%s failed with code %d", spec.get, rv),
		}
	}
	v, err := decodePayload(resp, spec.slot, t)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// decodePayload pulls a value out of its payload slot in the concrete shape
// its registry type dictates.
func decodePayload(resp Response, slot payloadSlot, t types.ValueType) (any, error) {
	field := slot.field()
	switch t {
	case types.Binary:
		if b, ok := resp.Bytes(field); ok {
			return b, nil
		}
		// A present-but-empty binary value may come back with no array.
		return []byte{}, nil
	case types.DWord:
		if n, ok := resp.Uint32(field); ok {
			return n, nil
		}
	case types.QWord:
		if n, ok := resp.Uint64(field); ok {
			return n, nil
		}
	case types.String, types.ExpandedString:
		if s, ok := resp.String(field); ok {
			return s, nil
		}
		return "", nil
	case types.MultiString:
		if ss, ok := resp.Strings(field); ok {
			return ss, nil
		}
		return []string{}, nil
	}
	return nil, types.ErrInvalidResponse
}

// SetValue writes the named value as the given type, creating it if absent
// and overwriting it if present. It never creates the containing key; use
// CreateKey first. The dynamic type of value must match the registry type
// (see Value for the mapping) or the call fails with ErrTypeMismatch.
func (c *Client) SetValue(hive types.Hive, path, name string, value any, t types.ValueType) error {
	spec, ok := methodSpecs[t]
	if !ok {
		return types.ErrUnsupportedType
	}
	payload, err := encodePayload(value, t)
	if err != nil {
		return err
	}
	params := valueParams(hive, path, name)
	params[spec.slot.field()] = payload
	resp, err := c.invoke(spec.set, params)
	if err != nil {
		return err
	}
	return checkReturn(spec.set, resp)
}

// encodePayload checks the dynamic type of a value against its registry
// type and returns the payload in canonical wire shape. This is the single
// place the numeric-versus-string slot distinction is enforced for writes.
func encodePayload(value any, t types.ValueType) (any, error) {
	switch t {
	case types.Binary:
		if b, ok := value.([]byte); ok {
			return b, nil
		}
	case types.DWord:
		if n, ok := value.(uint32); ok {
			return n, nil
		}
	case types.QWord:
		if n, ok := value.(uint64); ok {
			return n, nil
		}
	case types.String, types.ExpandedString:
		if s, ok := value.(string); ok {
			return s, nil
		}
	case types.MultiString:
		if ss, ok := value.([]string); ok {
			return ss, nil
		}
	default:
		return nil, types.ErrUnsupportedType
	}
	return nil, &types.Error{
		Kind: types.ErrKindType,
		Msg:  fmt.Sprintf("value of type %T does not match %s", value, t),
	}
}

// Typed read wrappers. Each returns (value, found, error) with found false
// for a provider "not found".

// BinaryValue reads a REG_BINARY value.
func (c *Client) BinaryValue(hive types.Hive, path, name string) ([]byte, bool, error) {
	v, found, err := c.Value(hive, path, name, types.Binary)
	if err != nil || !found {
		return nil, found, err
	}
	return v.([]byte), true, nil
}

// DWordValue reads a REG_DWORD value.
func (c *Client) DWordValue(hive types.Hive, path, name string) (uint32, bool, error) {
	v, found, err := c.Value(hive, path, name, types.DWord)
	if err != nil || !found {
		return 0, found, err
	}
	return v.(uint32), true, nil
}

// QWordValue reads a REG_QWORD value.
func (c *Client) QWordValue(hive types.Hive, path, name string) (uint64, bool, error) {
	v, found, err := c.Value(hive, path, name, types.QWord)
	if err != nil || !found {
		return 0, found, err
	}
	return v.(uint64), true, nil
}

// StringValue reads a REG_SZ value.
func (c *Client) StringValue(hive types.Hive, path, name string) (string, bool, error) {
	v, found, err := c.Value(hive, path, name, types.String)
	if err != nil || !found {
		return "", found, err
	}
	return v.(string), true, nil
}

// ExpandedStringValue reads a REG_EXPAND_SZ value. The returned string is
// unexpanded; environment-variable expansion is the caller's concern.
func (c *Client) ExpandedStringValue(hive types.Hive, path, name string) (string, bool, error) {
	v, found, err := c.Value(hive, path, name, types.ExpandedString)
	if err != nil || !found {
		return "", found, err
	}
	return v.(string), true, nil
}

// MultiStringValue reads a REG_MULTI_SZ value.
func (c *Client) MultiStringValue(hive types.Hive, path, name string) ([]string, bool, error) {
	v, found, err := c.Value(hive, path, name, types.MultiString)
	if err != nil || !found {
		return nil, found, err
	}
	return v.([]string), true, nil
}

// Typed write wrappers.

// SetBinaryValue writes a REG_BINARY value.
func (c *Client) SetBinaryValue(hive types.Hive, path, name string, value []byte) error {
	return c.SetValue(hive, path, name, value, types.Binary)
}

// SetDWordValue writes a REG_DWORD value.
func (c *Client) SetDWordValue(hive types.Hive, path, name string, value uint32) error {
	return c.SetValue(hive, path, name, value, types.DWord)
}

// SetQWordValue writes a REG_QWORD value.
func (c *Client) SetQWordValue(hive types.Hive, path, name string, value uint64) error {
	return c.SetValue(hive, path, name, value, types.QWord)
}

// SetStringValue writes a REG_SZ value, with no type inference.
func (c *Client) SetStringValue(hive types.Hive, path, name, value string) error {
	return c.SetValue(hive, path, name, value, types.String)
}

// SetExpandedStringValue writes a REG_EXPAND_SZ value.
func (c *Client) SetExpandedStringValue(hive types.Hive, path, name, value string) error {
	return c.SetValue(hive, path, name, value, types.ExpandedString)
}

// SetMultiStringValue writes a REG_MULTI_SZ value.
func (c *Client) SetMultiStringValue(hive types.Hive, path, name string, value []string) error {
	return c.SetValue(hive, path, name, value, types.MultiString)
}

// ClassifyString applies the string-versus-expandable-string policy used by
// SetString: a string that both starts and ends with '%' is treated as an
// environment reference and classified REG_EXPAND_SZ, anything else REG_SZ.
// This is a policy, not an inference of registry semantics: a literal value
// that merely happens to be percent-wrapped is misclassified, and no escape
// mechanism exists. Callers needing deterministic behavior should specify
// the type explicitly via SetStringValue or SetExpandedStringValue.
func ClassifyString(s string) types.ValueType {
	if len(s) >= 2 && strings.HasPrefix(s, "%") && strings.HasSuffix(s, "%") {
		return types.ExpandedString
	}
	return types.String
}

// SetString writes a string value, choosing between REG_SZ and
// REG_EXPAND_SZ via ClassifyString.
func (c *Client) SetString(hive types.Hive, path, name, value string) error {
	return c.SetValue(hive, path, name, value, ClassifyString(value))
}
