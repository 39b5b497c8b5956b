package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"

	"github.com/spf13/cobra"

	"svlower/internal/diag"
	"svlower/internal/diagfmt"
	"svlower/internal/driver"
	"svlower/internal/hir"
	"svlower/internal/observ"
	"svlower/internal/source"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [flags] <bundle.json|bundle.mp>",
	Short: "Lower a parsed bundle to HIR and report diagnostics",
	Long:  `Lower every compilation unit of a parser output bundle (JSON or msgpack) to HIR and report lowering diagnostics`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLower,
}

func init() {
	lowerCmd.Flags().String("config", "", "path to svlower.toml (default: search upward from the working directory)")
	lowerCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	lowerCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	lowerCmd.Flags().Int("jobs", 0, "max parallel units (0=auto)")
	lowerCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	lowerCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	lowerCmd.Flags().Bool("disk-cache", false, "cache lowered units under $XDG_CACHE_HOME/svlower")
	lowerCmd.Flags().Bool("emit-hir", false, "print the HIR of every unit")
	lowerCmd.Flags().Bool("no-pair-ports", false, "lower non-ANSI header ports as written, without body declarations")
	lowerCmd.Flags().Bool("no-decimal-xz-warning", false, "do not warn about x/z digits in decimal literals")
}

// lowerSettings is the merged result of config file and flags.
type lowerSettings struct {
	cfg       config
	withNotes bool
	pathMode  diagfmt.PathMode
	emitHIR   bool
	timings   bool
	quiet     bool
	color     bool
}

func runLower(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	s, err := lowerSettingsFromFlags(cmd)
	if err != nil {
		return err
	}
	code, err := execLower(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], s)
	if err != nil {
		return err
	}
	if code != 0 {
		return exitError{code: code}
	}
	return nil
}

func lowerSettingsFromFlags(cmd *cobra.Command) (lowerSettings, error) {
	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	explicit, err := flags.GetString("config")
	if err != nil {
		return lowerSettings{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, _, err := resolveConfig(explicit, ".")
	if err != nil {
		return lowerSettings{}, err
	}

	// флаги перекрывают файл
	if flags.Changed("format") {
		if cfg.Diagnostics.Format, err = flags.GetString("format"); err != nil {
			return lowerSettings{}, err
		}
	}
	if root.Changed("max-diagnostics") {
		if cfg.Diagnostics.Max, err = root.GetInt("max-diagnostics"); err != nil {
			return lowerSettings{}, err
		}
	}
	if flags.Changed("warnings-as-errors") {
		if cfg.Diagnostics.WarningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
			return lowerSettings{}, err
		}
	}
	if flags.Changed("jobs") {
		if cfg.Driver.Jobs, err = flags.GetInt("jobs"); err != nil {
			return lowerSettings{}, err
		}
	}
	if flags.Changed("disk-cache") {
		if cfg.Driver.DiskCache, err = flags.GetBool("disk-cache"); err != nil {
			return lowerSettings{}, err
		}
	}
	if off, _ := flags.GetBool("no-pair-ports"); off {
		cfg.Lower.PairNonAnsiPorts = false
	}
	if off, _ := flags.GetBool("no-decimal-xz-warning"); off {
		cfg.Lower.WarnDecimalXZ = false
	}
	if err := cfg.validate(); err != nil {
		return lowerSettings{}, err
	}

	s := lowerSettings{cfg: cfg}
	if s.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return lowerSettings{}, err
	}
	if s.emitHIR, err = flags.GetBool("emit-hir"); err != nil {
		return lowerSettings{}, err
	}
	if s.timings, err = root.GetBool("timings"); err != nil {
		return lowerSettings{}, err
	}
	if s.quiet, err = root.GetBool("quiet"); err != nil {
		return lowerSettings{}, err
	}
	modeStr, err := flags.GetString("path-mode")
	if err != nil {
		return lowerSettings{}, err
	}
	mode, ok := diagfmt.ParsePathMode(modeStr)
	if !ok {
		return lowerSettings{}, fmt.Errorf("invalid --path-mode value %q", modeStr)
	}
	s.pathMode = mode
	colorMode, err := root.GetString("color")
	if err != nil {
		return lowerSettings{}, err
	}
	if s.color, err = colorEnabled(colorMode, os.Stdout); err != nil {
		return lowerSettings{}, err
	}
	if s.emitHIR && cfg.Diagnostics.Format == "json" {
		return lowerSettings{}, fmt.Errorf("--emit-hir cannot be combined with --format=json")
	}
	return s, nil
}

// execLower runs one lowering and renders its diagnostics to stdout. It
// returns the process exit status; the error is for failures that are not
// diagnostics.
func execLower(ctx context.Context, stdout, stderr io.Writer, path string, s lowerSettings) (int, error) {
	timer := observ.NewTimer()
	phase := timer.Begin("load")
	b, fs, err := driver.LoadBundle(path)
	timer.End(phase, path)
	if err != nil {
		code := diag.IODecodeError
		var pathErr *iofs.PathError
		if errors.As(err, &pathErr) {
			code = diag.IOLoadFileError
		}
		bag := diag.NewBag(1)
		bag.Add(diag.NewError(code, source.Span{}, err.Error()))
		if rerr := renderDiagnostics(stdout, bag, nil, s); rerr != nil {
			return 1, rerr
		}
		return 1, nil
	}

	opts := driver.Options{
		Lower:          s.lowerOptions(),
		MaxDiagnostics: s.cfg.Diagnostics.Max,
		Jobs:           s.cfg.Driver.Jobs,
		EmitHIR:        s.emitHIR,
		Timings:        s.timings && s.cfg.Diagnostics.Format == "json",
		Timer:          timer,
	}
	if s.cfg.Driver.DiskCache {
		cache, err := driver.OpenDiskCache("svlower")
		if err != nil {
			fmt.Fprintf(stderr, "svlower: disk cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}

	res, err := driver.Lower(ctx, b, fs, opts)
	if err != nil {
		return 1, fmt.Errorf("lowering failed: %w", err)
	}

	if s.emitHIR {
		for _, u := range res.Units {
			fmt.Fprintf(stdout, "== %s ==\n%s", u.Name, u.Dump)
		}
	}
	if err := renderDiagnostics(stdout, res.Bag, fs, s); err != nil {
		return 1, err
	}
	if s.timings && s.cfg.Diagnostics.Format != "json" {
		fmt.Fprint(stderr, timer.Summary())
	}
	if !s.quiet && s.cfg.Diagnostics.Format == "pretty" {
		fmt.Fprintln(stderr, summaryLine(res))
	}
	return exitStatus(res.Errors, res.Warnings, s.cfg.Diagnostics.WarningsAsErrors), nil
}

func renderDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, s lowerSettings) error {
	switch s.cfg.Diagnostics.Format {
	case "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     s.color,
			Context:   1,
			PathMode:  s.pathMode,
			ShowNotes: s.withNotes,
		})
		return nil
	case "short":
		return diagfmt.Short(w, bag, fs, s.withNotes)
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         s.pathMode,
			IncludeNotes:     s.withNotes,
		})
	}
	return fmt.Errorf("unknown format: %s", s.cfg.Diagnostics.Format)
}

func summaryLine(res *driver.Result) string {
	line := fmt.Sprintf("lowered %s: %s, %s",
		plural(len(res.Units), "unit"),
		plural(res.Errors, "error"),
		plural(res.Warnings, "warning"))
	if n := res.Cached(); n > 0 {
		line += fmt.Sprintf(" (%d cached)", n)
	}
	if n := res.Bag.Dropped(); n > 0 {
		line += fmt.Sprintf("; %d more not shown", n)
	}
	return line
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// exitStatus is 1 when errors were reported, or warnings with
// warningsAsErrors.
func exitStatus(nErrors, nWarnings int, warningsAsErrors bool) int {
	if nErrors > 0 || (warningsAsErrors && nWarnings > 0) {
		return 1
	}
	return 0
}

func (s lowerSettings) lowerOptions() hir.Options {
	opts := hir.DefaultOptions()
	opts.PairNonAnsiPorts = s.cfg.Lower.PairNonAnsiPorts
	opts.WarnDecimalXZ = s.cfg.Lower.WarnDecimalXZ
	return opts
}
