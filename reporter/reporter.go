// Package reporter collects positioned diagnostics produced while lexing,
// parsing and resolving Thrift documents.
//
// Nothing in the engine treats a diagnostic as fatal: handlers accumulate
// every report so the caller can keep serving queries on whatever structure
// survived.
package reporter

import (
	"fmt"
	"sort"

	"github.com/thriftlabs/thriftls/ast"
)

// Diagnostic is one reported problem with the source range to underline.
type Diagnostic struct {
	Range   ast.Range
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Range.Start, d.Message)
}

// Reporter observes each diagnostic as it is reported. It may be nil.
type Reporter func(Diagnostic)

// Handler accumulates diagnostics for one document pass and optionally
// forwards each to a Reporter.
type Handler struct {
	reporter Reporter
	diags    []Diagnostic
}

// NewHandler returns a handler forwarding to rep, which may be nil.
func NewHandler(rep Reporter) *Handler {
	return &Handler{reporter: rep}
}

// Errorf reports a diagnostic at rng.
func (h *Handler) Errorf(rng ast.Range, format string, args ...any) {
	d := Diagnostic{Range: rng, Message: fmt.Sprintf(format, args...)}
	h.diags = append(h.diags, d)
	if h.reporter != nil {
		h.reporter(d)
	}
}

// Diagnostics returns everything reported so far, in report order.
func (h *Handler) Diagnostics() []Diagnostic {
	return h.diags
}

// Sort orders diagnostics by their start position, preserving report order
// for ties.
func Sort(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Range.Start.Before(diags[j].Range.Start)
	})
}
