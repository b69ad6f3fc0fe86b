package wmi

import (
	"testing"
)

func params(hive uint32, path string, extra map[string]any) map[string]any {
	p := map[string]any{"hDefKey": hive, "sSubKeyName": path}
	for k, v := range extra {
		p[k] = v
	}
	return p
}

const hklm = 0x80000002

func connected(t *testing.T) *Fake {
	t.Helper()
	f := NewFake()
	if err := f.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return f
}

func mustReturn(t *testing.T, f *Fake, method string, p map[string]any, want uint32) {
	t.Helper()
	resp, err := f.Invoke(method, p)
	if err != nil {
		t.Fatalf("%s: %v", method, err)
	}
	rv, ok := resp.Uint32("ReturnValue")
	if !ok {
		t.Fatalf("%s: response has no ReturnValue", method)
	}
	if rv != want {
		t.Fatalf("%s ReturnValue = %d, want %d", method, rv, want)
	}
}

func TestFakeCreateKeyIntermediates(t *testing.T) {
	f := connected(t)
	mustReturn(t, f, "CreateKey", params(hklm, `A\B\C`, nil), 0)

	// Every intermediate must exist and enumerate.
	resp, err := f.Invoke("EnumKey", params(hklm, "A", nil))
	if err != nil {
		t.Fatal(err)
	}
	names, _ := resp.Strings("sNames")
	if len(names) != 1 || names[0] != "B" {
		t.Errorf("EnumKey(A) = %v, want [B]", names)
	}
}

func TestFakeDeleteKeySemantics(t *testing.T) {
	f := connected(t)
	mustReturn(t, f, "CreateKey", params(hklm, `A\B`, nil), 0)

	// Missing key.
	mustReturn(t, f, "DeleteKey", params(hklm, `A\X`, nil), 2)
	// Key with sub-keys is refused; only the leaf may go.
	mustReturn(t, f, "DeleteKey", params(hklm, "A", nil), 5)
	mustReturn(t, f, "DeleteKey", params(hklm, `A\B`, nil), 0)
	mustReturn(t, f, "DeleteKey", params(hklm, "A", nil), 0)
	// Hive roots are not deletable.
	mustReturn(t, f, "DeleteKey", params(hklm, "", nil), 5)
}

func TestFakeEnumMissingKey(t *testing.T) {
	f := connected(t)
	mustReturn(t, f, "EnumKey", params(hklm, "Nope", nil), 2)
	mustReturn(t, f, "EnumValues", params(hklm, "Nope", nil), 2)
	mustReturn(t, f, "CheckAccess", params(hklm, "Nope", nil), 2)
}

func TestFakeHiveRootAlwaysExists(t *testing.T) {
	f := connected(t)
	mustReturn(t, f, "EnumKey", params(hklm, "", nil), 0)
	mustReturn(t, f, "SetStringValue",
		params(hklm, "", map[string]any{"sValueName": "v", "sValue": "x"}), 0)
	mustReturn(t, f, "GetStringValue",
		params(hklm, "", map[string]any{"sValueName": "v"}), 0)
}

func TestFakeValueTypeMismatch(t *testing.T) {
	f := connected(t)
	mustReturn(t, f, "CreateKey", params(hklm, "K", nil), 0)
	mustReturn(t, f, "SetDWORDValue",
		params(hklm, "K", map[string]any{"sValueName": "n", "uValue": uint32(1)}), 0)
	// Reading it through the string accessor is a provider failure.
	mustReturn(t, f, "GetStringValue",
		params(hklm, "K", map[string]any{"sValueName": "n"}), 1)
}

func TestFakeCaseInsensitiveLookup(t *testing.T) {
	f := connected(t)
	mustReturn(t, f, "CreateKey", params(hklm, `Software\Vendor`, nil), 0)
	mustReturn(t, f, "SetStringValue",
		params(hklm, `SOFTWARE\VENDOR`, map[string]any{"sValueName": "Name", "sValue": "x"}), 0)
	mustReturn(t, f, "GetStringValue",
		params(hklm, `software\vendor`, map[string]any{"sValueName": "name"}), 0)
}

func TestFakeUnknownMethod(t *testing.T) {
	f := connected(t)
	if _, err := f.Invoke("GetSecurityDescriptor", params(hklm, "K", nil)); err == nil {
		t.Fatal("unknown method must be rejected with a Go error")
	}
}

func TestFakeDisconnected(t *testing.T) {
	f := NewFake()
	if _, err := f.Invoke("EnumKey", params(hklm, "", nil)); err == nil {
		t.Fatal("disconnected fake must refuse to invoke")
	}
	if len(f.Calls) != 0 {
		t.Errorf("disconnected invoke must not be recorded, got %v", f.Calls)
	}
}
