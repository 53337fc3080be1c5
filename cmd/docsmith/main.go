// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

// Command docsmith collects source files for AI documentation generation.
//
// It exposes three subcommands:
//
//   - collect:  select files under a root, read them under bounded
//     concurrency and persist a combined bundle for the analysis stage
//   - scan:     dry-run of the selection stage; lists the files collect
//     would pick up, with sizes
//   - patterns: show the compiled ignore rule set, optionally testing a
//     single path against it
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	ignoreadapter "github.com/rafaelvolkmer/docsmith/internal/adapter/ignore"
	outputadapter "github.com/rafaelvolkmer/docsmith/internal/adapter/output"
	"github.com/rafaelvolkmer/docsmith/internal/domain/model"
	"github.com/rafaelvolkmer/docsmith/internal/infrastructure"
	"github.com/rafaelvolkmer/docsmith/internal/usecase"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	// envPrefix defines the prefix used for environment variables that
	// configure the CLI. For example:
	//
	//   DOCSMITH_PATH=/some/project
	//   DOCSMITH_CONCURRENCY=8
	envPrefix = "DOCSMITH"

	defaultExtensions = "go,c,h,cpp,hpp,cs,js,ts,py,rb,rs,java,md"
	defaultBundleName = "docsmith-bundle.md"
)

// App wires configuration, shared dependencies and command handlers for the
// CLI.
//
// It is intentionally small and focused on orchestration; all heavy lifting
// (rule matching, scanning, bounded reading, persistence) is delegated to
// use cases and adapters in the internal packages.
type App struct {
	config *viper.Viper
	logger *zap.Logger
	deps   *Dependencies
}

// Dependencies groups the shared services used by the CLI commands.
//
// By constructing these objects once and reusing them, the CLI avoids
// redundant wiring and makes it easier to test and evolve the application.
type Dependencies struct {
	Loader    *ignoreadapter.Loader
	Scanner   *infrastructure.FSScanner
	Storage   *infrastructure.FileStorage
	Clock     *infrastructure.SystemClock
	Renderers *outputadapter.RendererRegistry
}

// NewApp constructs a new App instance with a configured Viper instance.
//
// Environment variables are configured with the DOCSMITH_ prefix and
// hyphens in flag names are transparently mapped to underscores. The
// logger and dependencies are built after flag parsing, once the debug
// flag is known.
func NewApp() *App {
	config := viper.New()
	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	config.AutomaticEnv()

	return &App{config: config}
}

// initLogging builds the zap logger and the shared dependencies. Debug mode
// switches to the development config with human-readable output.
func (a *App) initLogging(debug bool) error {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.InitialFields = map[string]interface{}{"app": "docsmith"}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	a.logger = logger
	a.deps = &Dependencies{
		Loader:    ignoreadapter.NewLoader(logger),
		Scanner:   infrastructure.NewFSScanner(logger),
		Storage:   infrastructure.NewFileStorage(),
		Clock:     infrastructure.NewSystemClock(),
		Renderers: newRendererRegistry(),
	}
	return nil
}

// main is the entry point for the docsmith CLI.
//
// It creates a root context, initializes the App and dispatches to the
// appropriate subcommand. All process exit codes are decided here.
func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	rootContext := context.Background()
	application := NewApp()

	command := os.Args[1]
	commandArgs := os.Args[2:]

	var err error

	switch command {
	case "collect":
		err = application.runCollect(rootContext, commandArgs)
	case "scan":
		err = application.runScan(rootContext, commandArgs)
	case "patterns":
		err = application.runPatterns(rootContext, commandArgs)
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		log.Printf("unknown command %q\n", command)
		printUsage()
		os.Exit(1)
	}

	if application.logger != nil {
		_ = application.logger.Sync()
	}
	if err != nil {
		log.Printf("error: %v", err)
		os.Exit(1)
	}
}

// printUsage prints the top-level usage text for the docsmith CLI.
//
// It is intentionally concise and delegates command-specific help text
// to the individual subcommands.
func printUsage() {
	fmt.Fprintf(os.Stderr, `docsmith - source collection for AI documentation generation

Usage:
  docsmith collect  [options] [path]
  docsmith scan     [options] [path]
  docsmith patterns [options] [path] [test-path]

Commands:
  collect   Select and read files under a root, writing a combined bundle
  scan      List the files collect would select, without reading them
  patterns  Show the compiled ignore rules, optionally testing one path

Run "docsmith <command> -h" for command-specific flags.
`)
}

// selectionFlags registers the flags shared by every subcommand that loads
// ignore rules and walks the tree.
func selectionFlags(flagSet *pflag.FlagSet) {
	flagSet.String("path", ".", "Path to project root (can also be given as positional argument)")
	flagSet.String("ignore-file", "", "Ignore file to consult (default <path>/.docsignore)")
	flagSet.StringSlice("extra-ignore", nil, "Additional ignore patterns, applied before file rules")
	flagSet.Bool("gitignore", true, "Also consult the .gitignore next to the ignore file")
	flagSet.Bool("case-sensitive", false, "Match ignore patterns case-sensitively")
	flagSet.Bool("debug", false, "Enable debug logging")
}

// runCollect handles the "collect" subcommand.
//
// Configuration precedence (highest first):
//  1. Command-line flags
//  2. Environment variables DOCSMITH_*
//  3. Built-in defaults
func (a *App) runCollect(ctx context.Context, args []string) error {
	flagSet := pflag.NewFlagSet("collect", pflag.ContinueOnError)
	flagSet.SortFlags = false

	selectionFlags(flagSet)
	flagSet.String("out", defaultBundleName, "Destination path for the combined bundle")
	flagSet.String("ext", defaultExtensions, "Comma-separated list of file extensions to include")
	flagSet.Int("concurrency", 0, "Number of files read in flight (0 = use NumCPU)")
	flagSet.Int("chunk-size", model.DefaultChunkSize, "Read buffer size in bytes")
	flagSet.Int("max-retries", model.DefaultMaxRetries, "Retries after the first failed attempt")
	flagSet.Duration("retry-delay", model.DefaultRetryDelay, "Linear backoff base delay")
	flagSet.Duration("timeout", model.DefaultTimeout, "Per-attempt read timeout")
	flagSet.Bool("skip-large-files", true, "Reject files above --max-file-size")
	flagSet.Int64("max-file-size", model.DefaultMaxFileSize, "Large-file threshold in bytes")
	flagSet.Duration("progress-interval", model.DefaultProgressInterval, "Minimum gap between progress events")
	flagSet.String("format", "text", "Summary output format (text|json)")

	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage:
  docsmith collect [options] [path]

Options:
`)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	// Bind flags into the shared Viper instance so they can be overridden
	// by environment variables and still keep a single source of truth.
	if err := a.config.BindPFlags(flagSet); err != nil {
		return fmt.Errorf("bind flags to viper: %w", err)
	}
	if err := a.initLogging(a.config.GetBool("debug")); err != nil {
		return err
	}

	rootPath := a.config.GetString("path")
	if remaining := flagSet.Args(); len(remaining) > 0 {
		rootPath = remaining[0]
	}

	options := model.ProcessingOptions{
		Concurrency:      concurrencyOrCPUs(a.config.GetInt("concurrency")),
		ChunkSize:        a.config.GetInt("chunk-size"),
		MaxRetries:       a.config.GetInt("max-retries"),
		RetryDelay:       a.config.GetDuration("retry-delay"),
		Timeout:          a.config.GetDuration("timeout"),
		SkipLargeFiles:   a.config.GetBool("skip-large-files"),
		MaxFileSize:      a.config.GetInt64("max-file-size"),
		ProgressInterval: a.config.GetDuration("progress-interval"),
	}

	collectUseCase := usecase.NewCollectFilesUseCase(
		a.deps.Loader,
		a.deps.Scanner,
		a.deps.Storage,
		a.deps.Clock,
		a.logger,
	)

	report, err := collectUseCase.Execute(ctx, usecase.CollectFilesRequest{
		RootPath:      rootPath,
		OutputPath:    a.config.GetString("out"),
		Extensions:    parseExtensions(a.config.GetString("ext")),
		IgnoreFile:    a.config.GetString("ignore-file"),
		ExtraPatterns: a.config.GetStringSlice("extra-ignore"),
		UseGitignore:  a.config.GetBool("gitignore"),
		CaseSensitive: a.config.GetBool("case-sensitive"),
		Options:       options,
	})
	if err != nil {
		return err
	}

	return a.renderReport(report, a.config.GetString("format"))
}

// runScan handles the "scan" subcommand.
//
// It runs only the selection stage and renders the would-be entries; no
// file content is read and nothing is written.
func (a *App) runScan(ctx context.Context, args []string) error {
	flagSet := pflag.NewFlagSet("scan", pflag.ContinueOnError)
	flagSet.SortFlags = false

	selectionFlags(flagSet)
	flagSet.String("ext", defaultExtensions, "Comma-separated list of file extensions to include")
	flagSet.Int("concurrency", 0, "Parallel stat calls (0 = use NumCPU)")
	flagSet.String("format", "text", "Output format (text|json)")

	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage:
  docsmith scan [options] [path]

Options:
`)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if err := a.config.BindPFlags(flagSet); err != nil {
		return fmt.Errorf("bind flags to viper: %w", err)
	}
	if err := a.initLogging(a.config.GetBool("debug")); err != nil {
		return err
	}

	rootPath := a.config.GetString("path")
	if remaining := flagSet.Args(); len(remaining) > 0 {
		rootPath = remaining[0]
	}

	scanUseCase := usecase.NewScanFilesUseCase(a.deps.Loader, a.deps.Scanner)

	entries, err := scanUseCase.Execute(ctx, usecase.ScanFilesRequest{
		RootPath:      rootPath,
		Extensions:    parseExtensions(a.config.GetString("ext")),
		IgnoreFile:    a.config.GetString("ignore-file"),
		ExtraPatterns: a.config.GetStringSlice("extra-ignore"),
		UseGitignore:  a.config.GetBool("gitignore"),
		CaseSensitive: a.config.GetBool("case-sensitive"),
		Concurrency:   a.config.GetInt("concurrency"),
	})
	if err != nil {
		return err
	}

	report := &model.CollectReport{
		RootPath:    rootPath,
		GeneratedAt: a.deps.Clock.Now().UTC(),
		Entries:     entries,
	}
	return a.renderReport(report, a.config.GetString("format"))
}

// runPatterns handles the "patterns" subcommand.
//
// It loads the ignore rule set exactly the way collect would and lists the
// rules in evaluation order. With a second positional argument, it also
// reports the verdict for that path.
func (a *App) runPatterns(ctx context.Context, args []string) error {
	flagSet := pflag.NewFlagSet("patterns", pflag.ContinueOnError)
	flagSet.SortFlags = false

	selectionFlags(flagSet)

	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage:
  docsmith patterns [options] [path] [test-path]

Lists the compiled ignore rules in evaluation order. When a test path is
given, reports whether it would be ignored.
`)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if err := a.config.BindPFlags(flagSet); err != nil {
		return fmt.Errorf("bind flags to viper: %w", err)
	}
	if err := a.initLogging(a.config.GetBool("debug")); err != nil {
		return err
	}

	rootPath := a.config.GetString("path")
	testPath := ""
	if remaining := flagSet.Args(); len(remaining) > 0 {
		rootPath = remaining[0]
		if len(remaining) > 1 {
			testPath = remaining[1]
		}
	}

	patternsUseCase := usecase.NewListPatternsUseCase(a.deps.Loader)

	report, err := patternsUseCase.Execute(ctx, usecase.ListPatternsRequest{
		RootPath:      rootPath,
		IgnoreFile:    a.config.GetString("ignore-file"),
		ExtraPatterns: a.config.GetStringSlice("extra-ignore"),
		UseGitignore:  a.config.GetBool("gitignore"),
		CaseSensitive: a.config.GetBool("case-sensitive"),
		TestPath:      testPath,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Ignore file: %s\n", report.IgnoreFile)
	if len(report.Rules) == 0 {
		fmt.Println("No rules loaded.")
	}
	for i, rule := range report.Rules {
		fmt.Printf("%3d. %s\n", i+1, rule)
	}
	if report.TestPath != "" {
		verdict := "kept"
		if report.Ignored {
			verdict = "ignored"
		}
		fmt.Printf("\n%s -> %s\n", report.TestPath, verdict)
	}
	return nil
}

// renderReport renders a collect report in the requested format.
func (a *App) renderReport(report *model.CollectReport, format string) error {
	renderer, found := a.deps.Renderers.Get(format)
	if !found {
		return fmt.Errorf("unknown format %q", format)
	}

	rendered, err := renderer.Render(report)
	if err != nil {
		return err
	}

	fmt.Println(rendered)
	return nil
}

// concurrencyOrCPUs resolves the worker count: zero or negative means one
// per CPU, never less than one.
func concurrencyOrCPUs(n int) int {
	if n > 0 {
		return n
	}
	n = runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	return n
}

// parseExtensions normalizes a comma-separated list of file extensions.
// Leading dots are accepted and stripped; matching is case-insensitive.
//
// Examples:
//
//	parseExtensions("go,c")     -> []string{"go", "c"}
//	parseExtensions(".go,.MD")  -> []string{"go", "md"}
func parseExtensions(raw string) []string {
	parts := strings.Split(raw, ",")
	var extensions []string

	for _, part := range parts {
		trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "."))
		if trimmed == "" {
			continue
		}
		extensions = append(extensions, strings.ToLower(trimmed))
	}

	return extensions
}

// newRendererRegistry constructs the default renderer registry used by the
// CLI.
func newRendererRegistry() *outputadapter.RendererRegistry {
	return outputadapter.NewRendererRegistry(
		outputadapter.NewTextRenderer(),
		outputadapter.NewJSONRenderer(),
	)
}
