package wmi

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joshuapare/regprov/pkg/types"
	"github.com/joshuapare/regprov/reg"
)

// Fake is an in-memory simulation of the registry provider implementing
// reg.Session, for tests that need provider behavior without a Windows
// host. It reproduces the provider's observable contract: method names and
// parameter shapes, ReturnValue semantics (0 success, 2 not found),
// CreateKey intermediates, leaf-only DeleteKey, and stable insertion order
// for both sub-key and value enumeration.
type Fake struct {
	mu        sync.Mutex
	connected bool

	// Calls records every provider method actually invoked, in order.
	Calls []string

	// Granted is what CheckAccess reports for existing keys.
	Granted bool

	keys  map[string]*fakeKey
	order []string
}

type fakeKey struct {
	path   string // original-case sub-key path
	values []fakeValue
}

type fakeValue struct {
	name string
	code uint32
	data any
}

// NewFake returns a disconnected fake with empty hives that grants every
// access check.
func NewFake() *Fake {
	return &Fake{
		Granted: true,
		keys:    map[string]*fakeKey{},
	}
}

// Connect marks the fake connected.
func (f *Fake) Connect() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = true
	return nil
}

// Disconnect marks the fake disconnected, for not-connected guard tests.
func (f *Fake) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
}

// Connected reports the connection flag.
func (f *Fake) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

// keyID canonicalizes a (hive, path) pair; the registry is case-insensitive.
func keyID(hive uint32, path string) string {
	return fmt.Sprintf("%08x|%s", hive, strings.ToLower(path))
}

// Provider method → expected type code for the twelve value methods.
var fakeValueMethods = map[string]uint32{
	"GetBinaryValue":         3,
	"GetDWORDValue":          4,
	"GetQWORDValue":          11,
	"GetStringValue":         1,
	"GetExpandedStringValue": 2,
	"GetMultiStringValue":    7,
	"SetBinaryValue":         3,
	"SetDWORDValue":          4,
	"SetQWORDValue":          11,
	"SetStringValue":         1,
	"SetExpandedStringValue": 2,
	"SetMultiStringValue":    7,
}

func payloadField(code uint32) string {
	switch code {
	case 3, 4, 11:
		return "uValue"
	default:
		return "sValue"
	}
}

// Invoke dispatches a provider method against the in-memory store.
// Provider-level failures travel in ReturnValue; a Go error marks a misuse
// of the fake itself (unknown method, malformed parameter set).
func (f *Fake) Invoke(method string, params map[string]any) (reg.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.connected {
		return nil, types.ErrNotConnected
	}
	f.Calls = append(f.Calls, method)

	hive, ok := params["hDefKey"].(uint32)
	if !ok {
		return nil, fmt.Errorf("fake: %s called without hDefKey", method)
	}
	path, ok := params["sSubKeyName"].(string)
	if !ok {
		return nil, fmt.Errorf("fake: %s called without sSubKeyName", method)
	}

	switch method {
	case "CreateKey":
		return f.createKey(hive, path), nil
	case "DeleteKey":
		return f.deleteKey(hive, path), nil
	case "EnumKey":
		return f.enumKey(hive, path), nil
	case "EnumValues":
		return f.enumValues(hive, path), nil
	case "CheckAccess":
		return f.checkAccess(hive, path), nil
	case "DeleteValue":
		name, ok := params["sValueName"].(string)
		if !ok {
			return nil, fmt.Errorf("fake: DeleteValue called without sValueName")
		}
		return f.deleteValue(hive, path, name), nil
	}

	code, ok := fakeValueMethods[method]
	if !ok {
		return nil, fmt.Errorf("fake: unknown provider method %q", method)
	}
	name, okName := params["sValueName"].(string)
	if !okName {
		return nil, fmt.Errorf("fake: %s called without sValueName", method)
	}
	if strings.HasPrefix(method, "Get") {
		return f.getValue(hive, path, name, code), nil
	}
	data, okData := params[payloadField(code)]
	if !okData {
		return nil, fmt.Errorf("fake: %s called without %s", method, payloadField(code))
	}
	return f.setValue(hive, path, name, code, data), nil
}

func rc(code uint32) reg.Response {
	return reg.Response{"ReturnValue": code}
}

// keyExists treats the empty path as the hive root, which always exists.
func (f *Fake) keyExists(hive uint32, path string) bool {
	if path == "" {
		return true
	}
	_, ok := f.keys[keyID(hive, path)]
	return ok
}

func (f *Fake) createKey(hive uint32, path string) reg.Response {
	if path == "" {
		return rc(0)
	}
	segments := strings.Split(path, `\`)
	prefix := ""
	for _, seg := range segments {
		if prefix == "" {
			prefix = seg
		} else {
			prefix = prefix + `\` + seg
		}
		id := keyID(hive, prefix)
		if _, ok := f.keys[id]; !ok {
			f.keys[id] = &fakeKey{path: prefix}
			f.order = append(f.order, id)
		}
	}
	return rc(0)
}

func (f *Fake) deleteKey(hive uint32, path string) reg.Response {
	if path == "" {
		return rc(5) // hive roots are not deletable
	}
	id := keyID(hive, path)
	if _, ok := f.keys[id]; !ok {
		return rc(2)
	}
	if len(f.childIDs(hive, path)) > 0 {
		return rc(5) // leaf-only, like the real provider default
	}
	delete(f.keys, id)
	for i, o := range f.order {
		if o == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return rc(0)
}

// childIDs returns the canonical ids of the direct children of path, in
// creation order.
func (f *Fake) childIDs(hive uint32, path string) []string {
	prefix := keyID(hive, path)
	if path == "" {
		prefix = keyID(hive, "")
	} else {
		prefix += `\`
	}
	var ids []string
	for _, id := range f.order {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		rest := id[len(prefix):]
		if rest != "" && !strings.Contains(rest, `\`) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (f *Fake) enumKey(hive uint32, path string) reg.Response {
	if !f.keyExists(hive, path) {
		return rc(2)
	}
	names := []string{}
	for _, id := range f.childIDs(hive, path) {
		k := f.keys[id]
		leaf := k.path
		if i := strings.LastIndex(leaf, `\`); i >= 0 {
			leaf = leaf[i+1:]
		}
		names = append(names, leaf)
	}
	return reg.Response{"ReturnValue": uint32(0), "sNames": names}
}

func (f *Fake) enumValues(hive uint32, path string) reg.Response {
	if !f.keyExists(hive, path) {
		return rc(2)
	}
	names := []string{}
	codes := []uint32{}
	if k, ok := f.keys[keyID(hive, path)]; ok {
		for _, v := range k.values {
			names = append(names, v.name)
			codes = append(codes, v.code)
		}
	}
	return reg.Response{"ReturnValue": uint32(0), "sNames": names, "Types": codes}
}

func (f *Fake) checkAccess(hive uint32, path string) reg.Response {
	if !f.keyExists(hive, path) {
		return rc(2)
	}
	return reg.Response{"ReturnValue": uint32(0), "bGranted": f.Granted}
}

func (f *Fake) lookupValue(k *fakeKey, name string) int {
	for i, v := range k.values {
		if strings.EqualFold(v.name, name) {
			return i
		}
	}
	return -1
}

func (f *Fake) getValue(hive uint32, path, name string, code uint32) reg.Response {
	k, ok := f.keys[keyID(hive, path)]
	if !ok {
		if path != "" {
			return rc(2)
		}
		k = &fakeKey{}
	}
	i := f.lookupValue(k, name)
	if i < 0 {
		return rc(2)
	}
	v := k.values[i]
	if v.code != code {
		return rc(1) // stored type differs from the requested accessor
	}
	return reg.Response{"ReturnValue": uint32(0), payloadField(code): v.data}
}

func (f *Fake) setValue(hive uint32, path, name string, code uint32, data any) reg.Response {
	if path == "" {
		// Hive roots accept values without CreateKey; materialize the root.
		id := keyID(hive, "")
		if _, ok := f.keys[id]; !ok {
			f.keys[id] = &fakeKey{}
		}
	}
	k, ok := f.keys[keyID(hive, path)]
	if !ok {
		return rc(2) // Set never creates the containing key
	}
	if i := f.lookupValue(k, name); i >= 0 {
		k.values[i] = fakeValue{name: name, code: code, data: data}
	} else {
		k.values = append(k.values, fakeValue{name: name, code: code, data: data})
	}
	return rc(0)
}

func (f *Fake) deleteValue(hive uint32, path, name string) reg.Response {
	k, ok := f.keys[keyID(hive, path)]
	if !ok {
		return rc(2)
	}
	i := f.lookupValue(k, name)
	if i < 0 {
		return rc(2)
	}
	k.values = append(k.values[:i], k.values[i+1:]...)
	return rc(0)
}
