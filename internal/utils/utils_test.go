package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	tests := []struct {
		name   string
		level  DiagnosticLevel
		stdout []string
		stderr []string
		absent []string
	}{
		{
			name:   "quiet",
			level:  DiagnosticError,
			stderr: []string{"[ERROR] broken"},
			absent: []string{"[INFO]", "[WARN]", "[VERBOSE]"},
		},
		{
			name:   "default",
			level:  DiagnosticInfo,
			stdout: []string{"[INFO] hello"},
			stderr: []string{"[ERROR] broken", "[WARN] careful"},
			absent: []string{"[VERBOSE]"},
		},
		{
			name:   "verbose",
			level:  DiagnosticVerbose,
			stdout: []string{"[INFO] hello", "[VERBOSE] details"},
			absent: []string{"[DEBUG]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			d := NewDiagnosticSystem(tt.level)
			d.SetOutput(&out, &errOut)
			d.SetShowTime(false)

			d.Error("broken")
			d.Warn("careful")
			d.Info("hello")
			d.Verbose("details")
			d.Debug("internals")

			all := out.String() + errOut.String()
			for _, s := range tt.stdout {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.stderr {
				assert.Contains(t, errOut.String(), s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, all, s)
			}
		})
	}
}

func TestDiagnosticSystem_Summary(t *testing.T) {
	var out bytes.Buffer
	d := NewDiagnosticSystem(DiagnosticInfo)
	d.SetOutput(&out, &out)

	d.Summary("Summary", []Stat{{"Classes", 2}, {"Slots skipped", 1}})
	assert.Equal(t, "\nSummary\n   Classes: 2\n   Slots skipped: 1\n\n", out.String())

	out.Reset()
	d.Indent()
	d.List("item")
	d.Unindent()
	d.Unindent()
	d.List("top")
	assert.Equal(t, "  - item\n- top\n", out.String())
}

func TestFindModule(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "internal", "com")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n\ngo 1.25\n"), 0o644))

	mod, err := FindModule(nested)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", mod.Path)
	assert.Equal(t, root, mod.Dir)

	// directories that do not exist yet still resolve
	mod, err = FindModule(filepath.Join(nested, "gen"))
	require.NoError(t, err)

	importPath, err := mod.ImportPath(filepath.Join(nested, "gen"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/app/internal/com/gen", importPath)

	importPath, err = mod.ImportPath(root)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", importPath)

	_, err = mod.ImportPath(filepath.Dir(root))
	assert.Error(t, err)

	_, err = FindModule(t.TempDir())
	assert.Error(t, err)
}

func TestFindModule_NoModuleDirective(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("go 1.25\n"), 0o644))

	_, err := FindModule(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no module declaration")
}

func TestFormatGoCode(t *testing.T) {
	src := []byte("package p\nimport (\n\"strings\"\n\"fmt\"\n)\nfunc F( ) string { return fmt.Sprint(strings.ToUpper(\"x\")) }\n")
	formatted, err := FormatGoCode("p.go", src)
	require.NoError(t, err)
	assert.Contains(t, string(formatted), "import (\n\t\"fmt\"\n\t\"strings\"\n)")
	assert.Contains(t, string(formatted), "func F() string {")

	_, err = FormatGoCode("bad.go", []byte("package p\nfunc {"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid Go syntax")
}

func TestConfigureColors(t *testing.T) {
	t.Cleanup(func() { color.NoColor = true })

	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "xterm")
	t.Setenv("FORCE_COLOR", "1")
	ConfigureColors()
	assert.False(t, color.NoColor)

	t.Setenv("NO_COLOR", "1")
	ConfigureColors()
	assert.True(t, color.NoColor)

	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("TERM", "dumb")
	color.NoColor = false
	ConfigureColors()
	assert.True(t, color.NoColor)
}
