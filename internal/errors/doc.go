// Package errors provides structured, coded error values for fax.
//
// Each well-known failure has a stable code (e.g. "E101") that maps to
// a short message, a longer explanation, and a documentation URL.
// Callers construct errors from the registry and enrich them:
//
//	err := errors.New(errors.CodeControlWithoutBackingNode).
//	    WithDetail("control %q was never mounted", id).
//	    WithSuggestion("call GenMarkup and mount the result before updating")
//
// Errors are organized into categories:
//   - runtime: catalog and lifecycle misuse
//   - markup: generation and document parse failures
//   - reconcile: update-path failures (caller ordering bugs)
//   - protocol: wire frame errors
//   - validation: lenient-by-default property and child-shape issues
//   - snapshot: stored-markup errors
//
// FaxError supports errors.Is/As via Unwrap, and Format() renders a
// terminal-friendly description for the CLI.
package errors
