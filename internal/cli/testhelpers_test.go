package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const unknownDescriptor = `
package win32.pure;

import jdk.incubator.foreign.MemoryAddress;
import jdk.incubator.foreign.MemorySegment;

interface IUnknown iid "00000000-0000-0000-c000-000000000046";

vtable IUnknownVtbl for IUnknown {
	QueryInterface(): QueryInterface;
	AddRef(): AddRef;
	Release(): Release;
	static sizeof(): long;

	type QueryInterface {
		apply(x0: MemoryAddress, x1: MemoryAddress, x2: MemoryAddress): int;
	}
	type AddRef {
		apply(x0: MemoryAddress): int;
	}
	type Release {
		apply(x0: MemoryAddress): int;
	}
}
`

// brokenDescriptor has one slot whose descriptor declares no call operation
const brokenDescriptor = `
package win32.pure;

interface ID3DInclude;

vtable ID3DIncludeVtbl for ID3DInclude {
	Open(): Open;
	Close(): Close;

	type Open {
		default describe(): String;
	}
	type Close {
		apply(x0: MemoryAddress, data: MemoryAddress): int;
	}
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
