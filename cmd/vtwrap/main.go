package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toyz/vtwrap/internal/cli"
	"github.com/toyz/vtwrap/internal/utils"
)

func main() {
	utils.ConfigureColors()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vtwrap", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configFlag  = fs.String("config", "", "Path to "+cli.ConfigFileName+" (defaults to the nearest one above the working directory)")
		langFlag    = fs.String("lang", "", "Output language: go or java (default java)")
		outFlag     = fs.String("out", "", "Directory receiving generated files (defaults to each descriptor's directory)")
		packageFlag = fs.String("package", "", "Package of the generated classes (defaults to the interface package)")
		suffixFlag  = fs.String("suffix", "", "Suffix appended to interface names to form class names")
		moduleFlag  = fs.String("module", "", "Go module used to derive the runtime import path (defaults to go.mod module)")
		verboseFlag = fs.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = fs.Bool("quiet", false, "Only show errors and final results")
		cleanFlag   = fs.Bool("clean", false, "Delete all generated files from the specified directories")
		strictFlag  = fs.Bool("strict", false, "Fail when any vtable slot could not be wrapped")
		helpFlag    = fs.Bool("help", false, "Show help information")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: vtwrap [options] <descriptor-paths...>\n\n")
		fmt.Fprintf(stderr, "vtwrap COM Wrapper Generator\n")
		fmt.Fprintf(stderr, "Reads vtable descriptor (%s) files and generates one wrapper class per interface.\n\n", utils.DescriptorExt)
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  descriptor-paths   Directories or %s files to process\n", utils.DescriptorExt)
		fmt.Fprintf(stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  vtwrap ./...                          # Generate Java wrappers next to every descriptor\n")
		fmt.Fprintf(stderr, "  vtwrap --lang go --out ./com ./idl    # Generate Go wrappers into ./com\n")
		fmt.Fprintf(stderr, "  vtwrap --strict ./idl/...             # Fail on any skipped slot\n")
		fmt.Fprintf(stderr, "  vtwrap --clean ./...                  # Delete all generated files\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *helpFlag {
		fs.Usage()
		return 0
	}

	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintf(stderr, "Error: At least one descriptor path is required\n\n")
		fs.Usage()
		return 1
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	diagnostics.SetOutput(stdout, stderr)

	diagnostics.Header("COM Wrapper Generator")
	diagnostics.SourcePath(strings.Join(paths, ", "))

	if *cleanFlag {
		removed, err := cli.NewCleaner().CleanGeneratedFiles(paths)
		if err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			return 1
		}
		for _, file := range removed {
			diagnostics.Verbose("Removed %s", file)
		}
		diagnostics.Success("Removed %d generated files", len(removed))
		return 0
	}

	config, err := loadConfig(*configFlag)
	if err != nil {
		diagnostics.Error("%v", err)
		return 1
	}
	if config.Path != "" {
		diagnostics.Verbose("Using configuration %s", config.Path)
	}

	if *langFlag != "" {
		config.Output.Language = strings.ToLower(*langFlag)
	}
	if *outFlag != "" {
		config.Output.Dir = *outFlag
	}
	if *packageFlag != "" {
		config.Output.Package = *packageFlag
	}
	if *suffixFlag != "" {
		config.Output.ClassSuffix = *suffixFlag
	}
	if *moduleFlag != "" {
		config.ModuleName = *moduleFlag
	}
	if *strictFlag {
		config.Strict = true
	}
	config.Directories = paths
	config.Verbose = *verboseFlag

	if diagnostics.Level() >= utils.DiagnosticVerbose {
		diagnostics.Section("Configuration")
		diagnostics.Indent()
		diagnostics.List("Language: %s", config.Output.Language)
		if config.Output.Dir != "" {
			diagnostics.List("Output directory: %s", config.Output.Dir)
		}
		diagnostics.List("Runtime namespace: %s.%s", config.Runtime.NamespacePackage, config.Runtime.Namespace)
		if config.Strict {
			diagnostics.List("Strict: slot failures are fatal")
		}
		diagnostics.Unindent()
	}

	generator := cli.NewGeneratorWithDiagnostics(config.Verbose, diagnostics)
	generator.Reporter().SetOutput(stdout, stderr)

	runErr := generator.Run(config)
	summary := generator.GetSummary()
	if runErr != nil {
		generator.Reporter().ReportError(runErr)
		return 1
	}

	diagnostics.Summary("Generation Summary", []utils.Stat{
		{Label: "Descriptor files", Value: summary.DescriptorFiles},
		{Label: "Interface pairs", Value: summary.Pairs},
		{Label: "Classes generated", Value: summary.ClassesGenerated},
		{Label: "Slots generated", Value: summary.SlotsGenerated},
		{Label: "Slots skipped", Value: summary.SlotsSkipped},
	})

	if *verboseFlag {
		generator.ReportSuccess()
	}

	diagnostics.GenerationComplete()
	return 0
}

// loadConfig reads the explicit configuration file, or the nearest vtwrap.toml,
// or falls back to the defaults
func loadConfig(path string) (*cli.Config, error) {
	if path != "" {
		return cli.LoadConfig(path)
	}
	found, err := cli.FindConfig(".")
	if err != nil {
		return nil, err
	}
	if found == "" {
		return cli.DefaultConfig(), nil
	}
	return cli.LoadConfig(found)
}
