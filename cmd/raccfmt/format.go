package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"raccfmt/internal/config"
	"raccfmt/internal/diag"
	"raccfmt/internal/diagfmt"
	"raccfmt/internal/driver"
	"raccfmt/internal/observ"
	"raccfmt/internal/source"
)

var formatCmd = &cobra.Command{
	Use:     "format [flags] <path|-> [path...]",
	Aliases: []string{"fmt"},
	Short:   "Format Racc grammar files",
	Long: `Format Racc grammar files. Directories are walked for .y, .ry and .racc
files. With "-" the grammar is read from stdin and written to stdout.
Without --write or --check the formatted grammar is printed to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().String("config", ".raccfmt.toml", "path to the configuration file")
	formatCmd.Flags().BoolP("write", "w", false, "rewrite files in place")
	formatCmd.Flags().Bool("check", false, "report files that need formatting and exit 1 if any do")
	formatCmd.Flags().Bool("stdout", false, "print formatted grammars to stdout (default)")
	formatCmd.Flags().IntP("jobs", "j", 0, "number of files formatted in parallel (0 = GOMAXPROCS)")
	formatCmd.Flags().Bool("cache", false, "skip files recorded as formatted in the on-disk cache")
	formatCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	formatCmd.Flags().String("output", "text", "report format (text|json)")
	formatCmd.Flags().Bool("timings", false, "print per-pass timings to stderr")
}

var errChangesRequired = errors.New("format: formatting changes required")

// formatFlags is the parsed flag set of the format command.
type formatFlags struct {
	configPath string
	write      bool
	check      bool
	stdout     bool
	jobs       int
	cache      bool
	ui         uiMode
	output     string
	timings    bool
	quiet      bool
}

func readFormatFlags(cmd *cobra.Command) (formatFlags, error) {
	var ff formatFlags
	var err error
	flags := cmd.Flags()
	if ff.configPath, err = flags.GetString("config"); err != nil {
		return ff, err
	}
	if ff.write, err = flags.GetBool("write"); err != nil {
		return ff, err
	}
	if ff.check, err = flags.GetBool("check"); err != nil {
		return ff, err
	}
	if ff.stdout, err = flags.GetBool("stdout"); err != nil {
		return ff, err
	}
	if ff.jobs, err = flags.GetInt("jobs"); err != nil {
		return ff, err
	}
	if ff.cache, err = flags.GetBool("cache"); err != nil {
		return ff, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return ff, err
	}
	if ff.ui, err = readUIMode(uiValue); err != nil {
		return ff, err
	}
	if ff.output, err = flags.GetString("output"); err != nil {
		return ff, err
	}
	ff.output = strings.ToLower(strings.TrimSpace(ff.output))
	if ff.timings, err = flags.GetBool("timings"); err != nil {
		return ff, err
	}
	if ff.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return ff, err
	}
	return ff, nil
}

// resolveMode turns the mutually exclusive mode flags into a driver mode.
func resolveMode(ff formatFlags) (driver.Mode, error) {
	set := 0
	for _, on := range []bool{ff.write, ff.check, ff.stdout} {
		if on {
			set++
		}
	}
	if set > 1 {
		return 0, fmt.Errorf("format: --write, --check and --stdout are mutually exclusive")
	}
	switch {
	case ff.write:
		return driver.ModeWrite, nil
	case ff.check:
		return driver.ModeCheck, nil
	default:
		return driver.ModeStdout, nil
	}
}

func runFormat(cmd *cobra.Command, args []string) error {
	ff, err := readFormatFlags(cmd)
	if err != nil {
		return err
	}
	mode, err := resolveMode(ff)
	if err != nil {
		return err
	}
	switch ff.output {
	case "text", "json":
	default:
		return fmt.Errorf("format: unsupported output format %q", ff.output)
	}
	if mode == driver.ModeStdout && ff.output != "text" {
		return fmt.Errorf("format: --stdout is only supported with text output")
	}

	cfg, err := config.Load(ff.configPath)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) == 1 && args[0] == "-" {
		if mode != driver.ModeStdout {
			return fmt.Errorf("format: stdin input only supports --stdout")
		}
		return formatStdin(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
	}

	files, err := driver.CollectSourceFiles(ctx, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return diag.NewIO(diag.IONoSourceFiles, strings.Join(args, ", "), nil)
	}

	opts := driver.FormatOptions{Config: cfg, Mode: mode, Jobs: ff.jobs}
	if ff.cache && mode != driver.ModeStdout {
		cache, err := driver.OpenDiskCache("raccfmt")
		if err != nil {
			return err
		}
		opts.Cache = cache
	}
	if ff.timings {
		opts.Timings = observ.NewTotals()
	}

	var results []driver.FormatResult
	if mode != driver.ModeStdout && ff.output == "text" && !ff.quiet && shouldUseTUI(ff.ui) {
		results, err = runFormatWithUI(ctx, "raccfmt "+mode.String(), files, opts)
	} else {
		results, err = driver.FormatFiles(ctx, files, opts)
	}
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	switch ff.output {
	case "json":
		err = renderFormatJSON(out, results, mode, opts.Timings)
	default:
		renderFormatText(out, errOut, results, mode, ff.quiet)
		if opts.Timings != nil {
			fmt.Fprint(errOut, opts.Timings.Report().Summary())
		}
	}
	if err != nil {
		return err
	}
	return formatExitError(driver.Summarize(results), mode)
}

// formatExitError maps a run summary to the command error: failures win
// over pending changes in check mode.
func formatExitError(sum driver.Summary, mode driver.Mode) error {
	if sum.Failed > 0 {
		return fmt.Errorf("format: failed to format %d of %d files", sum.Failed, sum.Files)
	}
	if mode == driver.ModeCheck && sum.Changed > 0 {
		return errChangesRequired
	}
	return nil
}

func formatStdin(ctx context.Context, in io.Reader, out io.Writer, cfg config.Config) error {
	content, err := io.ReadAll(in)
	if err != nil {
		return diag.NewIO(diag.IOLoadFileError, "<stdin>", err)
	}
	formatted, err := driver.FormatBytes(ctx, "<stdin>", content, cfg)
	if err != nil {
		return err
	}
	_, err = out.Write(formatted)
	return err
}

func renderFormatText(out, errOut io.Writer, results []driver.FormatResult, mode driver.Mode, quiet bool) {
	fileSet := source.NewFileSet()
	for _, res := range results {
		if res.Err != nil {
			diagfmt.Pretty(errOut, res.Err, fileSet, prettyOpts())
			continue
		}
		switch mode {
		case driver.ModeStdout:
			_, _ = out.Write(res.Formatted)
		case driver.ModeCheck:
			if res.Changed && !quiet {
				fmt.Fprintln(out, res.Path)
			}
		case driver.ModeWrite:
			if res.Changed && !quiet {
				fmt.Fprintf(out, "reformatted %s\n", res.Path)
			}
		}
	}
}
