// Package handler defines the validation hook that gates operation execution.
//
// The package focuses on:
//   - A minimal IHandler interface consumed by the dispatch package
//   - Ready-made handlers for the common validation policies
//   - A registry for resolving handlers from configuration strings
//
// Key Components:
//
//   - Descriptor: The record under validation, a name plus a timeout. The
//     descriptor describes the submission, it is not the key-value payload.
//
//   - IHandler: The single-method validation interface. Handle returns nil to
//     admit a descriptor or an error wrapping ErrInvalidConfig to veto it.
//     Handlers observe, they never mutate store state.
//
//   - HandlerFunc: Function adapter in the manner of http.HandlerFunc, so
//     one-off policies do not need a named type.
//
//   - Built-in Handlers: NewDefaultHandler enforces the standard rules
//     (non-empty name, positive timeout), NewNoopHandler admits everything,
//     and NewRuleHandler enforces a caller-selected subset of rules.
//
//   - Registry: Name-to-factory mapping used by the CLI and by embedding
//     applications that select handlers at runtime.
//
// Custom handlers are expected: any type satisfying IHandler can gate a
// dispatcher, the built-ins only cover the recurring cases.
package handler
