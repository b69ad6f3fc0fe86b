// Package wmi provides provider sessions for package reg: a real session
// over the WMI automation layer (Windows only) and an in-memory fake
// provider for tests. Both satisfy reg.Session.
package wmi

import (
	"io"
	"log/slog"
)

// DefaultNamespace is the WMI namespace hosting the registry provider.
const DefaultNamespace = `root\default`

// providerClass is the object path of the registry provider class.
const providerClass = "StdRegProv"

// Options configures a Session. The zero value connects to the local
// machine's registry provider with the connecting identity's credentials.
type Options struct {
	// Host is the machine to manage. Empty means the local machine.
	Host string

	// Namespace overrides the WMI namespace. Empty means DefaultNamespace.
	Namespace string

	// User and Password authenticate against a remote host. Both must be
	// empty for local connections (the platform rejects explicit
	// credentials locally).
	User     string
	Password string

	// Logger receives connection and invocation diagnostics. Nil discards.
	Logger *slog.Logger
}

func (o Options) namespace() string {
	if o.Namespace == "" {
		return DefaultNamespace
	}
	return o.Namespace
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}
