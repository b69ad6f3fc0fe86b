package reg

import (
	"fmt"

	"github.com/joshuapare/regprov/pkg/types"
)

// Provider method and parameter names. These are part of the StdRegProv
// wire contract and must be reproduced verbatim.
const (
	methodCheckAccess = "CheckAccess"
	methodEnumKey     = "EnumKey"
	methodEnumValues  = "EnumValues"
	methodCreateKey   = "CreateKey"
	methodDeleteKey   = "DeleteKey"
	methodDeleteValue = "DeleteValue"

	paramHive      = "hDefKey"
	paramSubKey    = "sSubKeyName"
	paramValueName = "sValueName"
	paramNumeric   = "uValue"
	paramString    = "sValue"
	paramRequired  = "uRequired"

	fieldReturnValue = "ReturnValue"
	fieldGranted     = "bGranted"
	fieldNames       = "sNames"
	fieldTypes       = "Types"
)

// returnNotFound is the provider return code for a missing key or value
// (ERROR_FILE_NOT_FOUND). It marks a normal absent result, not a failure.
const returnNotFound = 2

// Client executes registry operations against a provider Session. It holds
// no state of its own beyond the session reference, so independent calls
// never interfere with one another.
type Client struct {
	s Session
}

// New returns a Client driving the given session. The session must already
// be connected (or be connected by the caller) before operations are made;
// the client never connects or reconnects on its own.
func New(s Session) *Client {
	return &Client{s: s}
}

// invoke is the single choke point for provider calls: it enforces the
// connected-session invariant, runs the method, and rejects a missing
// response object as a protocol failure.
func (c *Client) invoke(method string, params map[string]any) (Response, error) {
	if !c.s.Connected() {
		return nil, types.ErrNotConnected
	}
	resp, err := c.s.Invoke(method, params)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindProvider, Msg: method + " failed", Err: err}
	}
	if resp == nil {
		return nil, types.ErrInvalidResponse
	}
	return resp, nil
}

// exec dispatches a key-level command. The command's symbolic name is the
// literal provider method name, so no mapping table is needed here. A
// non-zero required mask (used only by CheckAccess) is attached as the
// uRequired parameter; a mask of exactly zero cannot be distinguished from
// "not supplied", a known limitation of the parameter shape.
func (c *Client) exec(hive types.Hive, path, command string, required types.Access) (Response, error) {
	params := map[string]any{
		paramHive:   uint32(hive),
		paramSubKey: path,
	}
	if required != 0 {
		params[paramRequired] = uint32(required)
	}
	return c.invoke(command, params)
}

// returnCode extracts ReturnValue, treating a response without one as a
// protocol failure.
func returnCode(resp Response) (uint32, error) {
	rv, ok := resp.Uint32(fieldReturnValue)
	if !ok {
		return 0, types.ErrInvalidResponse
	}
	return rv, nil
}

// checkReturn maps a mutating command's ReturnValue to success or a
// provider error. Non-zero codes carry no further diagnostics.
func checkReturn(command string, resp Response) error {
	rv, err := returnCode(resp)
	if err != nil {
		return err
	}
	if rv != 0 {
		return &types.Error{
			Kind: types.ErrKindProvider,
			Msg:  fmt.Sprintf("%s failed with code %d", command, rv),
		}
	}
	return nil
}

// SubKeys lists the names of the direct sub-keys of the given key, in the
// order the provider returns them. A key without sub-keys yields an empty
// slice.
func (c *Client) SubKeys(hive types.Hive, path string) ([]string, error) {
	resp, err := c.exec(hive, path, methodEnumKey, 0)
	if err != nil {
		return nil, err
	}
	if err := checkReturn(methodEnumKey, resp); err != nil {
		return nil, err
	}
	names, ok := resp.Strings(fieldNames)
	if !ok {
		return []string{}, nil
	}
	return names, nil
}

// ValueNames enumerates the named values of the given key as (name, type)
// records. The provider reports names and type codes in two index-aligned
// arrays; they are zipped into ValueMeta records here at the boundary and
// the raw arrays go no further. Unknown type codes decode as REG_SZ.
// Ordering is a stable pass-through of provider order; nothing more is
// guaranteed.
func (c *Client) ValueNames(hive types.Hive, path string) ([]types.ValueMeta, error) {
	resp, err := c.exec(hive, path, methodEnumValues, 0)
	if err != nil {
		return nil, err
	}
	if err := checkReturn(methodEnumValues, resp); err != nil {
		return nil, err
	}
	names, ok := resp.Strings(fieldNames)
	if !ok {
		return []types.ValueMeta{}, nil
	}
	codes, _ := resp.Uint32s(fieldTypes)
	// Arrays are index-aligned per contract; tolerate a short Types array
	// rather than invent entries for it.
	n := len(names)
	if len(codes) < n {
		n = len(codes)
	}
	metas := make([]types.ValueMeta, n)
	for i := 0; i < n; i++ {
		metas[i] = types.ValueMeta{Name: names[i], Type: types.TypeFromCode(codes[i])}
	}
	return metas, nil
}

// CreateKey creates the key at path, including every missing intermediate
// sub-key along the way. Creating a key that already exists succeeds.
func (c *Client) CreateKey(hive types.Hive, path string) error {
	resp, err := c.exec(hive, path, methodCreateKey, 0)
	if err != nil {
		return err
	}
	return checkReturn(methodCreateKey, resp)
}

// DeleteKey removes exactly the leaf key at path. Behavior for a key with
// existing sub-keys is provider-defined; no recursion is attempted.
func (c *Client) DeleteKey(hive types.Hive, path string) error {
	resp, err := c.exec(hive, path, methodDeleteKey, 0)
	if err != nil {
		return err
	}
	return checkReturn(methodDeleteKey, resp)
}

// DeleteValue removes the named value from the given key. The empty name
// addresses the key's default value.
func (c *Client) DeleteValue(hive types.Hive, path, name string) error {
	resp, err := c.invoke(methodDeleteValue, map[string]any{
		paramHive:      uint32(hive),
		paramSubKey:    path,
		paramValueName: name,
	})
	if err != nil {
		return err
	}
	return checkReturn(methodDeleteValue, resp)
}

// CheckAccess reports whether the connected identity holds all permissions
// in the combined mask on the given key. There are no partial-grant
// semantics: the mask either is or is not fully granted.
func (c *Client) CheckAccess(hive types.Hive, path string, required types.Access) (bool, error) {
	resp, err := c.exec(hive, path, methodCheckAccess, required)
	if err != nil {
		return false, err
	}
	if err := checkReturn(methodCheckAccess, resp); err != nil {
		return false, err
	}
	granted, ok := resp.Bool(fieldGranted)
	if !ok {
		return false, types.ErrInvalidResponse
	}
	return granted, nil
}
