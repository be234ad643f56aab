package generator

import "sort"

// identityKeyBase is the key prefix of identifier constants in the runtime namespace
const identityKeyBase = "IID_"

// Exceptions lists interfaces whose identity accessor deviates from the
// `IID_<Name>` convention. Both tables are keyed by interface simple name.
type Exceptions struct {
	NoIdentity map[string]bool   // interfaces that get no identity accessor at all
	KeyPrefix  map[string]string // letters inserted in front of the IID_ key
}

// DefaultExceptions returns the known irregular interfaces.
// ID3DInclude is an include-handler callback implemented by the caller and has no
// identifier; XMLDOMDocumentEvents is a dispinterface published as DIID_.
func DefaultExceptions() Exceptions {
	return Exceptions{
		NoIdentity: map[string]bool{"ID3DInclude": true},
		KeyPrefix:  map[string]string{"XMLDOMDocumentEvents": "D"},
	}
}

// HasIdentity reports whether an identity accessor is generated for the interface
func (e Exceptions) HasIdentity(name string) bool {
	return !e.NoIdentity[name]
}

// IdentityKey returns the runtime namespace key of the interface's identifier
func (e Exceptions) IdentityKey(name string) string {
	return e.KeyPrefix[name] + identityKeyBase + name
}

// Merge returns a copy of e extended (and overridden) by other
func (e Exceptions) Merge(other Exceptions) Exceptions {
	merged := Exceptions{
		NoIdentity: make(map[string]bool, len(e.NoIdentity)+len(other.NoIdentity)),
		KeyPrefix:  make(map[string]string, len(e.KeyPrefix)+len(other.KeyPrefix)),
	}
	for _, src := range []Exceptions{e, other} {
		for k, v := range src.NoIdentity {
			merged.NoIdentity[k] = v
		}
		for k, v := range src.KeyPrefix {
			merged.KeyPrefix[k] = v
		}
	}
	return merged
}

// Names returns every interface name mentioned by the table, sorted
func (e Exceptions) Names() []string {
	seen := make(map[string]bool)
	for k := range e.NoIdentity {
		seen[k] = true
	}
	for k := range e.KeyPrefix {
		seen[k] = true
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
