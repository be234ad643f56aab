package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/toyz/vtwrap/internal/errors"
	"github.com/toyz/vtwrap/internal/generator"
	"github.com/toyz/vtwrap/internal/templates"
	"github.com/toyz/vtwrap/internal/utils"
)

// ConfigFileName is the project configuration file looked up by FindConfig
const ConfigFileName = "vtwrap.toml"

// Config holds the configuration for the CLI generator
type Config struct {
	Output     OutputConfig     `toml:"output"`
	Runtime    RuntimeConfig    `toml:"runtime"`
	Exceptions ExceptionsConfig `toml:"exceptions"`

	// Strict fails the run when any slot could not be synthesized
	Strict bool `toml:"strict"`

	// ModuleName overrides the go.mod module used to derive the runtime import path
	ModuleName string `toml:"module"`

	// Directories is the list of descriptor patterns to process
	Directories []string `toml:"-"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `toml:"-"`

	// Path is the file the configuration was loaded from, if any
	Path string `toml:"-"`
}

// OutputConfig controls what is generated and where it is written
type OutputConfig struct {
	Language string `toml:"language"`
	// Dir receives all generated files; empty means next to each descriptor file
	Dir         string `toml:"dir"`
	Package     string `toml:"package"`
	ClassSuffix string `toml:"class_suffix"`
}

// RuntimeConfig names the native runtime the wrappers call into
type RuntimeConfig struct {
	Namespace        string `toml:"namespace"`
	NamespacePackage string `toml:"namespace_package"`
	Package          string `toml:"package"`
	// GoImport is the Go import path of Package; derived from go.mod when empty
	GoImport string `toml:"go_import"`
	// NamespaceGoImport is the Go import path of NamespacePackage; empty keeps
	// the namespace in the output package
	NamespaceGoImport string `toml:"namespace_go_import"`
}

// ExceptionsConfig extends the built-in identity exception table
type ExceptionsConfig struct {
	NoIdentity []string          `toml:"no_identity"`
	Identity   []string          `toml:"identity"`
	KeyPrefix  map[string]string `toml:"key_prefix"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Language:    templates.LanguageJava,
			ClassSuffix: generator.DefaultClassSuffix,
		},
		Runtime: RuntimeConfig{
			Namespace:        generator.DefaultNamespace,
			NamespacePackage: generator.DefaultNamespacePackage,
			Package:          generator.DefaultRuntimePackage,
		},
	}
}

// LoadConfig reads a TOML configuration file on top of the defaults.
// Unknown keys are rejected so that typos do not silently change output.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapConfigurationError(path, "read", err)
	}

	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.WrapConfigurationError(path, "parse", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.ConfigurationError(path, fmt.Sprintf("unknown keys: %s", strings.Join(keys, ", ")))
	}

	cfg.Path = path
	return cfg, nil
}

// FindConfig walks up from startDir looking for vtwrap.toml.
// It returns an empty path when none exists.
func FindConfig(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.WrapFileSystemError("resolve", startDir, err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Validate checks the configuration and reports every problem at once
func (c *Config) Validate() error {
	errs := errors.NewMultipleErrors()
	check := func(err error) {
		if err != nil {
			errs.Add(errors.ConfigurationError(c.source(), err.Error()))
		}
	}

	check(utils.IsOneOf("output.language", templates.Languages()...)(strings.ToLower(c.Output.Language)))
	check(utils.ValidateClassSuffix("output.class_suffix")(c.Output.ClassSuffix))
	check(utils.Optional(utils.ValidateDottedPackage("output.package"))(c.Output.Package))
	check(utils.NewValidatorChain(
		utils.NotEmpty("runtime.namespace"),
		utils.MatchesRegex("runtime.namespace", `^[A-Za-z_$][A-Za-z0-9_$]*$`),
	).Validate(c.Runtime.Namespace))
	check(utils.ValidateDottedPackage("runtime.namespace_package")(c.Runtime.NamespacePackage))
	check(utils.ValidateDottedPackage("runtime.package")(c.Runtime.Package))
	check(utils.Optional(utils.ValidateImportPath("runtime.go_import"))(c.Runtime.GoImport))
	check(utils.Optional(utils.ValidateImportPath("runtime.namespace_go_import"))(c.Runtime.NamespaceGoImport))

	prefixes := make([]string, 0, len(c.Exceptions.KeyPrefix))
	for name := range c.Exceptions.KeyPrefix {
		prefixes = append(prefixes, name)
	}
	sort.Strings(prefixes)
	for _, name := range prefixes {
		check(utils.MatchesRegex("exceptions.key_prefix."+name, `^[A-Za-z_]*$`)(c.Exceptions.KeyPrefix[name]))
	}

	for _, name := range c.Exceptions.NoIdentity {
		for _, other := range c.Exceptions.Identity {
			if name == other {
				check(utils.ValidationError{
					Field:   "exceptions",
					Value:   name,
					Message: fmt.Sprintf("%s is listed in both no_identity and identity", name),
				})
			}
		}
	}

	return errs.ErrOrNil()
}

func (c *Config) source() string {
	if c.Path != "" {
		return c.Path
	}
	return "flags"
}

// ExceptionTable merges the configured exceptions over the built-in table
func (c *Config) ExceptionTable() generator.Exceptions {
	override := generator.Exceptions{
		NoIdentity: make(map[string]bool),
		KeyPrefix:  c.Exceptions.KeyPrefix,
	}
	for _, name := range c.Exceptions.NoIdentity {
		override.NoIdentity[name] = true
	}
	for _, name := range c.Exceptions.Identity {
		override.NoIdentity[name] = false
	}
	return generator.DefaultExceptions().Merge(override)
}

// NativeRuntime builds the runtime resolver described by the configuration
func (c *Config) NativeRuntime() *generator.NativeRuntime {
	return generator.NewNativeRuntime(c.Runtime.Namespace, c.Runtime.NamespacePackage, c.Runtime.Package)
}
