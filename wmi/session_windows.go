//go:build windows

package wmi

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/joshuapare/regprov/pkg/types"
	"github.com/joshuapare/regprov/reg"
)

// S_FALSE is returned by CoInitializeEx when COM was already initialized
// on the calling thread; it is not a failure.
const sFalse = 0x00000001

// wbemImpersonationLevelImpersonate lets the provider act as the caller.
const wbemImpersonationLevelImpersonate = 3

// Session holds a connection to the registry provider of a local or remote
// machine through the WMI automation objects. It implements reg.Session.
//
// A Session is not safe for concurrent use: the underlying automation
// objects are apartment-bound.
type Session struct {
	opts Options
	log  *slog.Logger

	locator  *ole.IDispatch
	services *ole.IDispatch
	provider *ole.IDispatch
}

// NewSession returns an unconnected session. Call Connect before use.
func NewSession(opts Options) *Session {
	return &Session{opts: opts, log: opts.logger()}
}

// Connect initializes COM, connects to the target machine's WMI namespace
// and binds the registry provider class. Calling Connect on a connected
// session is a no-op.
func (s *Session) Connect() error {
	if s.provider != nil {
		return nil
	}
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != sFalse {
			return fmt.Errorf("initialize COM: %w", err)
		}
	}
	unknown, err := oleutil.CreateObject("WbemScripting.SWbemLocator")
	if err != nil {
		return fmt.Errorf("create WbemScripting.SWbemLocator: %w", err)
	}
	locator, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		return fmt.Errorf("query IDispatch on locator: %w", err)
	}

	servicesRaw, err := oleutil.CallMethod(locator, "ConnectServer",
		s.opts.Host, s.opts.namespace(), s.opts.User, s.opts.Password)
	if err != nil {
		locator.Release()
		return fmt.Errorf("connect to %q namespace %q: %w", s.opts.Host, s.opts.namespace(), err)
	}
	services := servicesRaw.ToIDispatch()

	if err := setImpersonation(services); err != nil {
		services.Release()
		locator.Release()
		return err
	}

	providerRaw, err := oleutil.CallMethod(services, "Get", providerClass)
	if err != nil {
		services.Release()
		locator.Release()
		return fmt.Errorf("bind %s: %w", providerClass, err)
	}

	s.locator = locator
	s.services = services
	s.provider = providerRaw.ToIDispatch()
	s.log.Debug("provider session connected",
		"host", s.opts.Host, "namespace", s.opts.namespace())
	return nil
}

func setImpersonation(services *ole.IDispatch) error {
	securityRaw, err := oleutil.GetProperty(services, "Security_")
	if err != nil {
		return fmt.Errorf("get Security_: %w", err)
	}
	security := securityRaw.ToIDispatch()
	defer security.Release()
	if _, err := oleutil.PutProperty(security, "ImpersonationLevel",
		wbemImpersonationLevelImpersonate); err != nil {
		return fmt.Errorf("set impersonation level: %w", err)
	}
	return nil
}

// Connected reports whether the provider class is bound.
func (s *Session) Connected() bool {
	return s.provider != nil
}

// Close releases the automation objects. The session can be reconnected
// afterwards with Connect.
func (s *Session) Close() {
	for _, d := range []*ole.IDispatch{s.provider, s.services, s.locator} {
		if d != nil {
			d.Release()
		}
	}
	s.provider, s.services, s.locator = nil, nil, nil
	ole.CoUninitialize()
}

// Invoke executes a provider method with the given named in-parameters and
// returns its out-parameters.
func (s *Session) Invoke(method string, params map[string]any) (reg.Response, error) {
	if s.provider == nil {
		return nil, types.ErrNotConnected
	}
	s.log.Debug("invoking provider method", "method", method)

	inParams, err := s.spawnInParams(method)
	if err != nil {
		return nil, err
	}
	if inParams != nil {
		defer inParams.Release()
		for name, value := range params {
			if err := putWbemProperty(inParams, name, value); err != nil {
				return nil, fmt.Errorf("set %s parameter %s: %w", method, name, err)
			}
		}
	}

	outRaw, err := oleutil.CallMethod(s.services, "ExecMethod", providerClass, method, inParams)
	if err != nil {
		return nil, fmt.Errorf("exec %s: %w", method, err)
	}
	out := outRaw.ToIDispatch()
	if out == nil {
		return nil, nil
	}
	defer out.Release()
	return decodeOutParams(out)
}

// spawnInParams instantiates the method's in-parameter object, or nil for
// a method that declares none.
func (s *Session) spawnInParams(method string) (*ole.IDispatch, error) {
	methodsRaw, err := oleutil.GetProperty(s.provider, "Methods_")
	if err != nil {
		return nil, fmt.Errorf("get Methods_: %w", err)
	}
	methods := methodsRaw.ToIDispatch()
	defer methods.Release()

	itemRaw, err := oleutil.CallMethod(methods, "Item", method)
	if err != nil {
		return nil, fmt.Errorf("look up method %s: %w", method, err)
	}
	item := itemRaw.ToIDispatch()
	defer item.Release()

	specRaw, err := oleutil.GetProperty(item, "InParameters")
	if err != nil {
		return nil, fmt.Errorf("get %s InParameters: %w", method, err)
	}
	if specRaw.VT == ole.VT_NULL {
		return nil, nil
	}
	spec := specRaw.ToIDispatch()
	defer spec.Release()

	instRaw, err := oleutil.CallMethod(spec, "SpawnInstance_")
	if err != nil {
		return nil, fmt.Errorf("spawn %s parameters: %w", method, err)
	}
	return instRaw.ToIDispatch(), nil
}

// putWbemProperty assigns one named in-parameter. The automation layer has
// no 64-bit integer variant, so uint64 travels as its decimal string;
// uint32 travels bit-for-bit as a signed 32-bit variant (how scripting
// clients pass the 0x80000000-family hive handles).
func putWbemProperty(obj *ole.IDispatch, name string, value any) error {
	switch v := value.(type) {
	case uint64:
		value = strconv.FormatUint(v, 10)
	case uint32:
		value = int32(v)
	}

	propsRaw, err := oleutil.GetProperty(obj, "Properties_")
	if err != nil {
		return err
	}
	props := propsRaw.ToIDispatch()
	defer props.Release()

	itemRaw, err := oleutil.CallMethod(props, "Item", name)
	if err != nil {
		return err
	}
	item := itemRaw.ToIDispatch()
	defer item.Release()

	_, err = oleutil.PutProperty(item, "Value", value)
	return err
}

// decodeOutParams flattens the out-parameter object into a reg.Response,
// converting variants (and variant arrays) into plain Go values.
func decodeOutParams(out *ole.IDispatch) (reg.Response, error) {
	propsRaw, err := oleutil.GetProperty(out, "Properties_")
	if err != nil {
		return nil, fmt.Errorf("get out Properties_: %w", err)
	}
	props := propsRaw.ToIDispatch()
	defer props.Release()

	resp := reg.Response{}
	err = oleutil.ForEach(props, func(v *ole.VARIANT) error {
		item := v.ToIDispatch()
		nameRaw, err := oleutil.GetProperty(item, "Name")
		if err != nil {
			return err
		}
		name := nameRaw.ToString()
		valueRaw, err := oleutil.GetProperty(item, "Value")
		if err != nil {
			return err
		}
		resp[name] = variantValue(valueRaw)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode out parameters: %w", err)
	}
	return resp, nil
}

func variantValue(v *ole.VARIANT) any {
	if v.VT&ole.VT_ARRAY != 0 {
		arr := v.ToArray()
		if arr == nil {
			return nil
		}
		return arr.ToValueArray()
	}
	return v.Value()
}
