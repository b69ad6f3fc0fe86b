package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/regprov/pkg/types"
)

// parseValueArg converts a command-line value string into the concrete Go
// shape its registry type expects: hex for binary, decimal for dword/qword,
// comma-separated elements for multi_sz.
func parseValueArg(s string, t types.ValueType) (any, error) {
	switch t {
	case types.Binary:
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("binary value must be hex encoded: %w", err)
		}
		return b, nil
	case types.DWord:
		n, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid DWORD value %q: %w", s, err)
		}
		return uint32(n), nil
	case types.QWord:
		n, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid QWORD value %q: %w", s, err)
		}
		return n, nil
	case types.String, types.ExpandedString:
		return s, nil
	case types.MultiString:
		return strings.Split(s, ","), nil
	default:
		return nil, types.ErrUnsupportedType
	}
}

// formatValue renders a typed value for text output.
func formatValue(v any, t types.ValueType) string {
	switch t {
	case types.Binary:
		return hex.EncodeToString(v.([]byte))
	case types.DWord:
		return strconv.FormatUint(uint64(v.(uint32)), 10)
	case types.QWord:
		return strconv.FormatUint(v.(uint64), 10)
	case types.MultiString:
		return strings.Join(v.([]string), ", ")
	default:
		return v.(string)
	}
}

var accessNames = map[string]types.Access{
	"query":              types.AccessQuery,
	"set":                types.AccessSet,
	"create-sub-key":     types.AccessCreateSubKey,
	"enumerate-sub-keys": types.AccessEnumerateSubKeys,
	"notify":             types.AccessNotify,
	"create":             types.AccessCreate,
	"delete":             types.AccessDelete,
	"read-control":       types.AccessReadControl,
	"write-dac":          types.AccessWriteDAC,
	"write-owner":        types.AccessWriteOwner,
	"read":               types.AccessRead,
}

// parseAccessMask combines a comma-separated permission list into a mask.
func parseAccessMask(s string) (types.Access, error) {
	var mask types.Access
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		bit, ok := accessNames[part]
		if !ok {
			return 0, fmt.Errorf("unknown permission %q", part)
		}
		mask |= bit
	}
	return mask, nil
}
