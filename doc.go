// Package thriftls is an analysis engine for Thrift IDL: it parses .thrift
// sources, tracks a multi-document workspace connected by include
// directives, and answers the structural queries an editor integration
// needs: diagnostics, semantic tokens, go-to-definition and completion.
//
// The entry point is the Analyzer:
//
//	a := thriftls.NewAnalyzer()
//	a.SyncDocument("/idl/user.thrift", text)
//	diags := a.Diagnostics()
//
// Mutations (SyncDocument, RemoveDocument) must be serialized by the host;
// queries against an unchanging analyzer are read-only and may run
// concurrently with one another. Malformed input degrades the quality of
// answers for the affected file but never fails the engine: queries return
// empty results rather than errors while a file is mid-edit.
//
// Reading include targets from outside the set of synced documents goes
// through the Resolver capability supplied at construction, so the same
// engine runs against a real filesystem or a fully virtual one.
package thriftls
