package reg_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regprov/pkg/types"
	"github.com/joshuapare/regprov/reg"
	"github.com/joshuapare/regprov/wmi"
)

// scriptSession is a Session stub returning a canned response, for
// exercising the dispatcher's protocol guards without fake provider
// behavior in the way.
type scriptSession struct {
	connected bool
	calls     []string
	resp      reg.Response
	err       error
}

func (s *scriptSession) Connect() error  { s.connected = true; return nil }
func (s *scriptSession) Connected() bool { return s.connected }

func (s *scriptSession) Invoke(method string, params map[string]any) (reg.Response, error) {
	s.calls = append(s.calls, method)
	return s.resp, s.err
}

func connectedFake(t *testing.T) *wmi.Fake {
	t.Helper()
	f := wmi.NewFake()
	require.NoError(t, f.Connect())
	return f
}

func TestNotConnectedGuard(t *testing.T) {
	f := wmi.NewFake() // never connected
	c := reg.New(f)

	ops := []struct {
		name string
		call func() error
	}{
		{"SubKeys", func() error { _, err := c.SubKeys(types.LocalMachine, "Software"); return err }},
		{"ValueNames", func() error { _, err := c.ValueNames(types.LocalMachine, "Software"); return err }},
		{"CreateKey", func() error { return c.CreateKey(types.LocalMachine, "Software") }},
		{"DeleteKey", func() error { return c.DeleteKey(types.LocalMachine, "Software") }},
		{"DeleteValue", func() error { return c.DeleteValue(types.LocalMachine, "Software", "v") }},
		{"CheckAccess", func() error {
			_, err := c.CheckAccess(types.LocalMachine, "Software", types.AccessQuery)
			return err
		}},
		{"Value", func() error {
			_, _, err := c.Value(types.LocalMachine, "Software", "v", types.String)
			return err
		}},
		{"SetValue", func() error {
			return c.SetValue(types.LocalMachine, "Software", "v", "x", types.String)
		}},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			err := op.call()
			assert.ErrorIs(t, err, types.ErrNotConnected)
		})
	}
	// The guard must fire before the session is touched.
	assert.Empty(t, f.Calls, "no provider call may be made while disconnected")
}

func TestMissingResponseIsFatal(t *testing.T) {
	s := &scriptSession{connected: true, resp: nil}
	c := reg.New(s)

	_, err := c.SubKeys(types.CurrentUser, "Software")
	assert.ErrorIs(t, err, types.ErrInvalidResponse)
}

func TestSessionErrorIsWrapped(t *testing.T) {
	cause := errors.New("rpc transport broke")
	s := &scriptSession{connected: true, err: cause}
	c := reg.New(s)

	err := c.CreateKey(types.CurrentUser, "Software")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	var terr *types.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, types.ErrKindProvider, terr.Kind)
}

func TestSubKeyLifecycle(t *testing.T) {
	f := connectedFake(t)
	c := reg.New(f)
	const hive = types.LocalMachine

	// CreateKey creates every missing intermediate.
	require.NoError(t, c.CreateKey(hive, `A\B\C`))

	names, err := c.SubKeys(hive, "A")
	require.NoError(t, err)
	assert.Contains(t, names, "B")

	names, err = c.SubKeys(hive, `A\B`)
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, names)

	// Deleting a key that still has sub-keys is refused by the fake
	// provider (provider-defined behavior; the client does not recurse).
	assert.Error(t, c.DeleteKey(hive, `A\B`))

	// Leaf-first deletion succeeds and EnumKey no longer reports B.
	require.NoError(t, c.DeleteKey(hive, `A\B\C`))
	require.NoError(t, c.DeleteKey(hive, `A\B`))

	names, err = c.SubKeys(hive, "A")
	require.NoError(t, err)
	assert.NotContains(t, names, "B")
}

func TestCreateKeyIdempotent(t *testing.T) {
	f := connectedFake(t)
	c := reg.New(f)

	require.NoError(t, c.CreateKey(types.CurrentUser, `Software\Vendor\App`))
	require.NoError(t, c.CreateKey(types.CurrentUser, `Software\Vendor\App`))

	names, err := c.SubKeys(types.CurrentUser, `Software\Vendor`)
	require.NoError(t, err)
	assert.Equal(t, []string{"App"}, names)
}

func TestSubKeysOfMissingKey(t *testing.T) {
	f := connectedFake(t)
	c := reg.New(f)

	_, err := c.SubKeys(types.LocalMachine, `No\Such\Key`)
	var terr *types.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, types.ErrKindProvider, terr.Kind)
}

func TestSubKeysOfEmptyKey(t *testing.T) {
	f := connectedFake(t)
	c := reg.New(f)

	require.NoError(t, c.CreateKey(types.Users, "Empty"))
	names, err := c.SubKeys(types.Users, "Empty")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestValueNamesFidelity(t *testing.T) {
	f := connectedFake(t)
	c := reg.New(f)
	const hive, path = types.LocalMachine, `Software\Fidelity`

	require.NoError(t, c.CreateKey(hive, path))
	require.NoError(t, c.SetDWordValue(hive, path, "count", 42))
	require.NoError(t, c.SetStringValue(hive, path, "label", "hello"))
	require.NoError(t, c.SetBinaryValue(hive, path, "blob", []byte{1, 2, 3}))
	require.NoError(t, c.SetQWordValue(hive, path, "big", 1<<40))
	require.NoError(t, c.SetExpandedStringValue(hive, path, "root", "%SystemRoot%"))
	require.NoError(t, c.SetMultiStringValue(hive, path, "list", []string{"a", "b"}))

	metas, err := c.ValueNames(hive, path)
	require.NoError(t, err)

	want := []types.ValueMeta{
		{Name: "count", Type: types.DWord},
		{Name: "label", Type: types.String},
		{Name: "blob", Type: types.Binary},
		{Name: "big", Type: types.QWord},
		{Name: "root", Type: types.ExpandedString},
		{Name: "list", Type: types.MultiString},
	}
	assert.Equal(t, want, metas, "records must match what was set, in provider order")
}

func TestValueNamesOfEmptyKey(t *testing.T) {
	f := connectedFake(t)
	c := reg.New(f)

	require.NoError(t, c.CreateKey(types.CurrentUser, "Bare"))
	metas, err := c.ValueNames(types.CurrentUser, "Bare")
	require.NoError(t, err)
	assert.Empty(t, metas)
}

func TestUnknownTypeCodeDecodesAsString(t *testing.T) {
	s := &scriptSession{
		connected: true,
		resp: reg.Response{
			"ReturnValue": uint32(0),
			"sNames":      []string{"mystery"},
			"Types":       []uint32{99},
		},
	}
	c := reg.New(s)

	metas, err := c.ValueNames(types.LocalMachine, "Synthetic")
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, types.ValueMeta{Name: "mystery", Type: types.String}, metas[0])
}

func TestDeleteValue(t *testing.T) {
	f := connectedFake(t)
	c := reg.New(f)
	const hive, path = types.CurrentUser, `Software\DelVal`

	require.NoError(t, c.CreateKey(hive, path))
	require.NoError(t, c.SetStringValue(hive, path, "keep", "k"))
	require.NoError(t, c.SetStringValue(hive, path, "drop", "d"))

	require.NoError(t, c.DeleteValue(hive, path, "drop"))

	_, found, err := c.StringValue(hive, path, "drop")
	require.NoError(t, err)
	assert.False(t, found)

	metas, err := c.ValueNames(hive, path)
	require.NoError(t, err)
	assert.Equal(t, []types.ValueMeta{{Name: "keep", Type: types.String}}, metas)

	// Deleting an absent value is a provider failure, not a silent pass.
	assert.Error(t, c.DeleteValue(hive, path, "drop"))
}

func TestCheckAccess(t *testing.T) {
	f := connectedFake(t)
	c := reg.New(f)
	require.NoError(t, c.CreateKey(types.LocalMachine, "Guarded"))

	granted, err := c.CheckAccess(types.LocalMachine, "Guarded",
		types.AccessQuery|types.AccessSet)
	require.NoError(t, err)
	assert.True(t, granted)

	f.Granted = false
	granted, err = c.CheckAccess(types.LocalMachine, "Guarded", types.AccessDelete)
	require.NoError(t, err)
	assert.False(t, granted)
}

// An all-zero mask means no uRequired parameter is sent at all; its truth
// value is provider-dependent, so only the shape of the result is asserted.
func TestCheckAccessZeroMask(t *testing.T) {
	f := connectedFake(t)
	c := reg.New(f)
	require.NoError(t, c.CreateKey(types.LocalMachine, "Guarded"))

	_, err := c.CheckAccess(types.LocalMachine, "Guarded", 0)
	assert.NoError(t, err)
}
