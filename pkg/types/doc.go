// Package types defines the core data model for addressing a Windows
// registry through the StdRegProv management provider: hives, value
// types, access masks, and value metadata.
//
// This package only exposes enumerations and small value objects. The
// provider dispatch logic lives in package reg; session plumbing lives
// in package wmi.
//
// Design goals:
//   - Numeric constants aligned with the provider wire contract
//     (hive handles, registry type codes, REGSAM access bits).
//   - Typed errors with stable categories (state/protocol/type/...).
//   - No dependencies beyond the standard library.
package types
