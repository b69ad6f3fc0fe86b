package reg

import "strconv"

// Session is the narrow capability the core needs from a provider
// connection. Implementations hold a connection to a local or remote
// management endpoint and invoke registry provider methods on it by name.
//
// Invoke returns the method's out-parameters as a Response, or a nil
// Response when the provider produced no response object at all (which the
// core treats as a fatal protocol failure). Timeouts and cancellation are a
// session/transport concern; the core adds none of its own.
type Session interface {
	Connect() error
	Connected() bool
	Invoke(method string, params map[string]any) (Response, error)
}

// Response holds the named out-parameters of a provider method call.
// Sessions store values in canonical Go shapes (uint32, uint64, bool,
// string, []string, []byte, []uint32); the accessors below tolerate the
// narrower integer shapes automation layers tend to produce, including the
// decimal-string encoding used for 64-bit integers on the wire.
type Response map[string]any

// Uint32 returns the named field as a uint32.
func (r Response) Uint32(name string) (uint32, bool) {
	switch v := r[name].(type) {
	case uint32:
		return v, true
	case int32:
		return uint32(v), true
	case int:
		return uint32(v), true
	case int64:
		return uint32(v), true
	case uint64:
		return uint32(v), true
	}
	return 0, false
}

// Uint64 returns the named field as a uint64. Decimal strings are accepted
// because the automation layer carries 64-bit integers as strings.
func (r Response) Uint64(name string) (uint64, bool) {
	switch v := r[name].(type) {
	case uint64:
		return v, true
	case uint32:
		return uint64(v), true
	case int64:
		return uint64(v), true
	case int32:
		return uint64(v), true
	case int:
		return uint64(v), true
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Bool returns the named field as a bool.
func (r Response) Bool(name string) (bool, bool) {
	v, ok := r[name].(bool)
	return v, ok
}

// String returns the named field as a string.
func (r Response) String(name string) (string, bool) {
	v, ok := r[name].(string)
	return v, ok
}

// Strings returns the named field as a string slice.
func (r Response) Strings(name string) ([]string, bool) {
	switch v := r[name].(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// Uint32s returns the named field as a uint32 slice.
func (r Response) Uint32s(name string) ([]uint32, bool) {
	switch v := r[name].(type) {
	case []uint32:
		return v, true
	case []int32:
		out := make([]uint32, len(v))
		for i, e := range v {
			out[i] = uint32(e)
		}
		return out, true
	case []any:
		out := make([]uint32, 0, len(v))
		for _, e := range v {
			switch n := e.(type) {
			case uint32:
				out = append(out, n)
			case int32:
				out = append(out, uint32(n))
			case int:
				out = append(out, uint32(n))
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

// Bytes returns the named field as a byte slice.
func (r Response) Bytes(name string) ([]byte, bool) {
	switch v := r[name].(type) {
	case []byte:
		return v, true
	case []any:
		out := make([]byte, 0, len(v))
		for _, e := range v {
			switch n := e.(type) {
			case byte:
				out = append(out, n)
			case int32:
				out = append(out, byte(n))
			case int:
				out = append(out, byte(n))
			case uint32:
				out = append(out, byte(n))
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}
