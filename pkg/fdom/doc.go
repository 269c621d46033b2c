// Package fdom implements the component model at the heart of fax: tag
// components constructed from property records, deterministic markup
// generation with stable node identifiers, and in-place reconciliation
// of a mounted tree against new properties.
//
// A Control is one node in the logical tree. It is created unmounted
// (properties only), acquires its stable identifier and backing
// document node when its markup is first generated and mounted, and is
// destroyed when a parent reconciliation omits its identity from the
// new child sequence.
//
// Reconciliation is synchronous and run-to-completion: node attributes
// are diffed first (value equality, omission resets), then children are
// matched by identity key in a single left-to-right cursor scan that
// prefers moving an existing backing node over destroying and
// recreating it. Event handlers never touch the document; they live in
// a delegation registry keyed by (node identifier, event type).
//
// The package does not know how the live tree is stored. It mutates it
// through the Host interface; package document provides the in-memory
// implementation.
package fdom
