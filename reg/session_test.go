package reg

import (
	"reflect"
	"testing"
)

// The automation layer hands back narrower integer shapes, []any arrays and
// decimal strings for 64-bit integers; the Response accessors normalize all
// of them.

func TestResponse_Uint32(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected uint32
		ok       bool
	}{
		{"uint32", uint32(0), 0, true},
		{"int32", int32(2), 2, true},
		{"int", 5, 5, true},
		{"negative int32 bit pattern", int32(-2147483646), 0x80000002, true},
		{"missing", nil, 0, false},
		{"wrong type", "0", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Response{}
			if tt.value != nil {
				r["ReturnValue"] = tt.value
			}
			got, ok := r.Uint32("ReturnValue")
			if ok != tt.ok || got != tt.expected {
				t.Errorf("Uint32() = (%d, %v), want (%d, %v)", got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestResponse_Uint64(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected uint64
		ok       bool
	}{
		{"uint64", uint64(1 << 60), 1 << 60, true},
		{"decimal string", "18446744073709551615", 18446744073709551615, true},
		{"uint32", uint32(7), 7, true},
		{"bad string", "not a number", 0, false},
		{"wrong type", []string{"1"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Response{"uValue": tt.value}
			got, ok := r.Uint64("uValue")
			if ok != tt.ok || got != tt.expected {
				t.Errorf("Uint64() = (%d, %v), want (%d, %v)", got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestResponse_Strings(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected []string
		ok       bool
	}{
		{"string slice", []string{"a", "b"}, []string{"a", "b"}, true},
		{"variant array", []any{"a", "b"}, []string{"a", "b"}, true},
		{"empty", []string{}, []string{}, true},
		{"mixed variant array", []any{"a", 1}, nil, false},
		{"missing", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Response{}
			if tt.value != nil {
				r["sNames"] = tt.value
			}
			got, ok := r.Strings("sNames")
			if ok != tt.ok || !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Strings() = (%v, %v), want (%v, %v)", got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestResponse_Bytes(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected []byte
		ok       bool
	}{
		{"byte slice", []byte{1, 2}, []byte{1, 2}, true},
		{"variant array of int32", []any{int32(1), int32(255)}, []byte{1, 255}, true},
		{"variant array of int", []any{7}, []byte{7}, true},
		{"mixed", []any{int32(1), "x"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Response{"uValue": tt.value}
			got, ok := r.Bytes("uValue")
			if ok != tt.ok || !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Bytes() = (%v, %v), want (%v, %v)", got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestResponse_Uint32s(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected []uint32
		ok       bool
	}{
		{"uint32 slice", []uint32{1, 4}, []uint32{1, 4}, true},
		{"int32 slice", []int32{1, 11}, []uint32{1, 11}, true},
		{"variant array", []any{int32(7), int32(2)}, []uint32{7, 2}, true},
		{"mixed", []any{int32(1), "x"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Response{"Types": tt.value}
			got, ok := r.Uint32s("Types")
			if ok != tt.ok || !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Uint32s() = (%v, %v), want (%v, %v)", got, ok, tt.expected, tt.ok)
			}
		})
	}
}
