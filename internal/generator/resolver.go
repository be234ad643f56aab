package generator

import "github.com/toyz/vtwrap/internal/models"

const (
	// DefaultRuntimePackage hosts the scope, segment and address types
	DefaultRuntimePackage = "jdk.incubator.foreign"
	// DefaultNamespacePackage hosts the shared runtime namespace
	DefaultNamespacePackage = "win32.pure"
	// DefaultNamespace is the shared runtime namespace holding identifier constants
	DefaultNamespace = "Win32"

	vtablePointerAccessor = "lpVtbl$get"
	segmentAccessorSuffix = "$SEGMENT"
)

// NativeRuntime is the RuntimeResolver for jextract-style bindings: identifier
// constants are exposed as `<Namespace>.<key>$SEGMENT()` and every interface
// type carries a `lpVtbl$get(segment)` accessor for its vtable pointer.
type NativeRuntime struct {
	NamespaceName    string
	NamespacePackage string
	RuntimePackage   string
}

// NewNativeRuntime creates a resolver for the given namespace; empty
// arguments fall back to the defaults.
func NewNativeRuntime(namespace, namespacePackage, runtimePackage string) *NativeRuntime {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if namespacePackage == "" {
		namespacePackage = DefaultNamespacePackage
	}
	if runtimePackage == "" {
		runtimePackage = DefaultRuntimePackage
	}
	return &NativeRuntime{
		NamespaceName:    namespace,
		NamespacePackage: namespacePackage,
		RuntimePackage:   runtimePackage,
	}
}

func (r *NativeRuntime) Namespace() models.TypeRef {
	return models.TypeRef{Package: r.NamespacePackage, Name: r.NamespaceName}
}

func (r *NativeRuntime) ScopeType() models.TypeRef {
	return models.TypeRef{Package: r.RuntimePackage, Name: "ResourceScope"}
}

func (r *NativeRuntime) SegmentType() models.TypeRef {
	return models.TypeRef{Package: r.RuntimePackage, Name: "MemorySegment"}
}

func (r *NativeRuntime) AddressType() models.TypeRef {
	return models.TypeRef{Package: r.RuntimePackage, Name: "MemoryAddress"}
}

func (r *NativeRuntime) ImplicitScope() models.Expr {
	return &models.StaticCall{Type: r.ScopeType(), Method: "newImplicitScope"}
}

func (r *NativeRuntime) ObjectAddress(segment models.Expr) models.Expr {
	return &models.Call{Recv: segment, Method: "address"}
}

func (r *NativeRuntime) VtablePointer(iface models.TypeRef, segment models.Expr) models.Expr {
	return &models.StaticCall{Type: iface, Method: vtablePointerAccessor, Args: []models.Expr{segment}}
}

func (r *NativeRuntime) IdentifierConstant(key string) models.Expr {
	return &models.StaticCall{Type: r.Namespace(), Method: key + segmentAccessorSuffix}
}
