package types

import (
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Hives
// -----------------------------------------------------------------------------

// Hive identifies a top-level registry root by its fixed numeric handle.
// (The numbers align with the Windows HKEY_* definitions and are passed
// verbatim to the provider as hDefKey.)
type Hive uint32

const (
	ClassesRoot   Hive = 0x80000000
	CurrentUser   Hive = 0x80000001
	LocalMachine  Hive = 0x80000002
	Users         Hive = 0x80000003
	CurrentConfig Hive = 0x80000005
)

// String implements the Stringer interface for Hive.
func (h Hive) String() string {
	switch h {
	case ClassesRoot:
		return "HKEY_CLASSES_ROOT"
	case CurrentUser:
		return "HKEY_CURRENT_USER"
	case LocalMachine:
		return "HKEY_LOCAL_MACHINE"
	case Users:
		return "HKEY_USERS"
	case CurrentConfig:
		return "HKEY_CURRENT_CONFIG"
	default:
		return fmt.Sprintf("UNKNOWN_HIVE_0x%08X", uint32(h))
	}
}

// ParseHive resolves a hive from its long (HKEY_LOCAL_MACHINE) or short
// (HKLM) spelling, case-insensitively.
func ParseHive(s string) (Hive, error) {
	switch strings.ToUpper(s) {
	case "HKEY_CLASSES_ROOT", "HKCR":
		return ClassesRoot, nil
	case "HKEY_CURRENT_USER", "HKCU":
		return CurrentUser, nil
	case "HKEY_LOCAL_MACHINE", "HKLM":
		return LocalMachine, nil
	case "HKEY_USERS", "HKU":
		return Users, nil
	case "HKEY_CURRENT_CONFIG", "HKCC":
		return CurrentConfig, nil
	default:
		return 0, fmt.Errorf("unknown registry hive %q", s)
	}
}

// SplitPath splits a rooted registry path ("HKLM\Software\Vendor") into its
// hive and the backslash-delimited sub-key path. An empty sub-key path
// addresses the hive root. No validation of path syntax is performed;
// malformed paths surface as provider-level failures.
func SplitPath(s string) (Hive, string, error) {
	root, rest, _ := strings.Cut(s, `\`)
	h, err := ParseHive(root)
	if err != nil {
		return 0, "", err
	}
	return h, rest, nil
}

// -----------------------------------------------------------------------------
// Value types
// -----------------------------------------------------------------------------

// ValueType enumerates the six registry value kinds the provider can carry.
// The numeric values are the provider's wire codes, as reported in the
// Types array of an EnumValues response.
type ValueType uint32

const (
	String         ValueType = 1  // REG_SZ
	ExpandedString ValueType = 2  // REG_EXPAND_SZ
	Binary         ValueType = 3  // REG_BINARY
	DWord          ValueType = 4  // REG_DWORD
	MultiString    ValueType = 7  // REG_MULTI_SZ
	QWord          ValueType = 11 // REG_QWORD
)

// String implements the Stringer interface for ValueType.
func (t ValueType) String() string {
	switch t {
	case String:
		return "REG_SZ"
	case ExpandedString:
		return "REG_EXPAND_SZ"
	case Binary:
		return "REG_BINARY"
	case DWord:
		return "REG_DWORD"
	case MultiString:
		return "REG_MULTI_SZ"
	case QWord:
		return "REG_QWORD"
	default:
		return fmt.Sprintf("UNKNOWN_TYPE_%d", uint32(t))
	}
}

// TypeFromCode maps a provider type code to a ValueType. Codes outside the
// known six (REG_NONE, REG_DWORD_BE, resource descriptors, ...) decode as
// String; this fallback is deliberate and not an error path.
func TypeFromCode(code uint32) ValueType {
	switch ValueType(code) {
	case String, ExpandedString, Binary, DWord, MultiString, QWord:
		return ValueType(code)
	default:
		return String
	}
}

// ParseValueType resolves a value type from its REG_* name or a short,
// case-insensitive alias (sz, expand_sz, binary, dword, multi_sz, qword).
func ParseValueType(s string) (ValueType, error) {
	switch strings.ToLower(s) {
	case "reg_sz", "sz", "string":
		return String, nil
	case "reg_expand_sz", "expand_sz", "expandstring":
		return ExpandedString, nil
	case "reg_binary", "binary", "bin":
		return Binary, nil
	case "reg_dword", "dword":
		return DWord, nil
	case "reg_multi_sz", "multi_sz", "multistring":
		return MultiString, nil
	case "reg_qword", "qword":
		return QWord, nil
	default:
		return 0, fmt.Errorf("unknown registry value type %q", s)
	}
}

// -----------------------------------------------------------------------------
// Access masks
// -----------------------------------------------------------------------------

// Access is a REGSAM-style permission bit set, combinable by bitwise OR and
// passed as a single numeric mask to the provider's CheckAccess method.
type Access uint32

const (
	AccessQuery            Access = 0x00001 // KEY_QUERY_VALUE
	AccessSet              Access = 0x00002 // KEY_SET_VALUE
	AccessCreateSubKey     Access = 0x00004 // KEY_CREATE_SUB_KEY
	AccessEnumerateSubKeys Access = 0x00008 // KEY_ENUMERATE_SUB_KEYS
	AccessNotify           Access = 0x00010 // KEY_NOTIFY
	AccessCreate           Access = 0x00020 // KEY_CREATE_LINK
	AccessDelete           Access = 0x10000 // DELETE
	AccessReadControl      Access = 0x20000 // READ_CONTROL
	AccessWriteDAC         Access = 0x40000 // WRITE_DAC
	AccessWriteOwner       Access = 0x80000 // WRITE_OWNER
)

// AccessRead is the conventional read mask (query, enumerate, notify,
// read-control).
const AccessRead = AccessQuery | AccessEnumerateSubKeys | AccessNotify | AccessReadControl

// -----------------------------------------------------------------------------
// Value metadata
// -----------------------------------------------------------------------------

// ValueMeta describes a named value as reported by value-name enumeration:
// the name ("" for the key's default value) and its declared type. Instances
// are created fresh per enumeration call and compared by structural equality.
type ValueMeta struct {
	Name string
	Type ValueType
}
