//go:build !windows

package wmi

import (
	"log/slog"

	"github.com/joshuapare/regprov/pkg/types"
	"github.com/joshuapare/regprov/reg"
)

// Session is a placeholder on non-Windows platforms: the WMI automation
// layer only exists on Windows, so Connect always fails. It exists so the
// library and CLI build everywhere (remote management of a Windows host
// from another OS would need a DCOM transport, which this package does not
// provide).
type Session struct {
	opts Options
	log  *slog.Logger
}

// NewSession returns an unconnected session. Connect always fails on this
// platform.
func NewSession(opts Options) *Session {
	return &Session{opts: opts, log: opts.logger()}
}

// Connect fails: no WMI automation layer on this platform.
func (s *Session) Connect() error {
	return &types.Error{
		Kind: types.ErrKindState,
		Msg:  "WMI provider sessions require Windows",
	}
}

// Connected always reports false.
func (s *Session) Connected() bool { return false }

// Close is a no-op.
func (s *Session) Close() {}

// Invoke always fails with ErrNotConnected.
func (s *Session) Invoke(method string, params map[string]any) (reg.Response, error) {
	return nil, types.ErrNotConnected
}
