// Package reg implements typed, hive-scoped registry access on top of the
// StdRegProv management provider. It maps logical operations (enumerate
// keys, enumerate value names, create/delete key, check access, get/set
// value) onto the provider's method names and parameter shapes, routes each
// of the six registry value kinds to the correct payload slot, and decodes
// enumeration responses into typed value-metadata records.
//
// The package never establishes connections itself: it drives a Session
// collaborator (see package wmi for a real one) and requires it to report
// connected before any operation. All calls are synchronous and independent;
// concurrent callers racing on the same key or value get no ordering or
// isolation guarantee beyond what the provider gives them.
package reg
