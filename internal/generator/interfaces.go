package generator

import (
	"github.com/toyz/vtwrap/internal/errors"
	"github.com/toyz/vtwrap/internal/models"
)

// RuntimeResolver describes the shared native runtime that generated wrappers call into.
// It is injected into the Generator so the core never hard-codes a runtime namespace.
type RuntimeResolver interface {
	// Namespace is the shared runtime type holding identifier constants
	Namespace() models.TypeRef
	ScopeType() models.TypeRef
	SegmentType() models.TypeRef
	AddressType() models.TypeRef

	// ImplicitScope creates a fresh lifetime scope bound to one wrapper instance
	ImplicitScope() models.Expr
	// ObjectAddress reads the base address of a memory region
	ObjectAddress(segment models.Expr) models.Expr
	// VtablePointer reads the vtable pointer stored at the interface's fixed offset
	VtablePointer(iface models.TypeRef, segment models.Expr) models.Expr
	// IdentifierConstant looks up an identifier constant by key
	IdentifierConstant(key string) models.Expr
}

// DiagnosticSink receives per-slot synthesis failures
type DiagnosticSink interface {
	ReportSlotFailure(err *errors.SlotSynthesisError)
}

// DiagnosticSinkFunc adapts a function to a DiagnosticSink
type DiagnosticSinkFunc func(err *errors.SlotSynthesisError)

// ReportSlotFailure calls f(err)
func (f DiagnosticSinkFunc) ReportSlotFailure(err *errors.SlotSynthesisError) {
	f(err)
}

type discardSink struct{}

func (discardSink) ReportSlotFailure(*errors.SlotSynthesisError) {}
