package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriscow/kutils/internal/config"
	"github.com/chriscow/kutils/internal/logging"
	"github.com/chriscow/kutils/pkg/disambig"
	"github.com/chriscow/kutils/pkg/filter"
	"github.com/chriscow/kutils/pkg/grouping"
	"github.com/chriscow/kutils/pkg/remap"
	"github.com/chriscow/kutils/pkg/report"
	"github.com/chriscow/kutils/pkg/symtab"
	"github.com/chriscow/kutils/pkg/table"
	"github.com/chriscow/kutils/pkg/version"
)

// app carries what every subcommand needs. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	store    *table.Store
	stderr   io.Writer
	logger   *slog.Logger
	reporter report.Reporter

	envFile   string
	logLevel  string
	logFormat string
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	store := table.NewStore()
	store.Stdin, store.Stdout = stdin, stdout
	return &app{store: store, stderr: stderr}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}

	a.logger = logging.New(a.stderr, cfg.LogLevel, cfg.LogFormat)
	if a.reporter == nil {
		a.reporter = report.NewSlog(a.logger)
	}
	return nil
}

// run executes fn and routes its error through the reporter.
func (a *app) run(op string, fn func() error) error {
	err := fn()
	if err != nil {
		a.reporter.Report(op, err)
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "kutils",
		Short: "Table utilities for speech recognition data directories",
		Long: `kutils transforms the whitespace-delimited text tables found in speech
recognition data and lang directories: utt2spk, spk2utt, words.txt,
phones/disambig.txt and friends. A path of "-" means stdin or stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Optional dotenv file with KU_* settings")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "console", "Log format (console, json)")

	root.AddCommand(
		newFilterCmd(a),
		newInt2SymCmd(a),
		newSpk2UttToUtt2SpkCmd(a),
		newUtt2SpkToSpk2UttCmd(a),
		newCheckSymtabCmd(a),
		newValidateDisambigCmd(a),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetVersionInfo())
		},
	}
}

func newFilterCmd(a *app) *cobra.Command {
	var (
		exclude bool
		field   int
	)
	cmd := &cobra.Command{
		Use:   "filter <id-list> [<in> [<out>]]",
		Short: "Keep (or with --exclude drop) rows whose key appears in an id list",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := ioArgs(args[1:])
			return a.run("filter", func() error {
				if field < 1 {
					return &table.Error{Kind: table.ErrInvalidArgument, Msg: fmt.Sprintf("-f must be >= 1, got %d", field)}
				}
				ids, err := a.store.Load(args[0])
				if err != nil {
					return err
				}
				rows, err := a.store.Load(in)
				if err != nil {
					return err
				}
				result, err := filter.Filter(ids, rows, exclude, field-1)
				if err != nil {
					return err
				}
				a.logger.Debug("filtered rows",
					slog.Int("input", rows.Len()),
					slog.Int("output", result.Len()),
					slog.Bool("exclude", exclude))
				return a.store.WriteFile(out, result)
			})
		},
	}
	cmd.Flags().BoolVar(&exclude, "exclude", false, "Drop matching rows instead of keeping them")
	cmd.Flags().IntVarP(&field, "field", "f", 1, "1-based field of <in> to match against the id list")
	return cmd
}

func newInt2SymCmd(a *app) *cobra.Command {
	var fields string
	cmd := &cobra.Command{
		Use:   "int2sym <symtab> [<in> [<out>]]",
		Short: "Replace integer codes with symbols from a symbol table",
		Long: `Replace integer codes in the selected fields with the symbols a two-column
symbol table ("<symbol> <code>") assigns them. -f selects 1-based fields:
"2" (one field), "2-4", "2-" (to the end) or "-3" (from the start).
":" may be used instead of "-".`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := ioArgs(args[1:])
			return a.run("int2sym", func() error {
				begin, end, err := parseFieldRange(fields)
				if err != nil {
					return err
				}
				syms, err := a.store.Load(args[0])
				if err != nil {
					return err
				}
				rows, err := a.store.Load(in)
				if err != nil {
					return err
				}
				result, err := remap.Remap(syms, rows, begin, end)
				if err != nil {
					return err
				}
				return a.store.WriteFile(out, result)
			})
		},
	}
	cmd.Flags().StringVarP(&fields, "field", "f", "-", "1-based field range to convert (default: all fields)")
	return cmd
}

func newSpk2UttToUtt2SpkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "spk2utt-to-utt2spk [<in> [<out>]]",
		Short: "Expand a grouped table (spk2utt) into a flat one (utt2spk)",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := ioArgs(args)
			return a.run("spk2utt-to-utt2spk", func() error {
				return a.convert(in, out, grouping.GroupedToFlat)
			})
		},
	}
}

func newUtt2SpkToSpk2UttCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "utt2spk-to-spk2utt [<in> [<out>]]",
		Short: "Collect a flat table (utt2spk) into a grouped one (spk2utt)",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := ioArgs(args)
			return a.run("utt2spk-to-spk2utt", func() error {
				return a.convert(in, out, grouping.FlatToGrouped)
			})
		},
	}
}

func (a *app) convert(in, out string, fn func(table.Table) (table.Table, error)) error {
	rows, err := a.store.Load(in)
	if err != nil {
		return err
	}
	result, err := fn(rows)
	if err != nil {
		return err
	}
	return a.store.WriteFile(out, result)
}

func newCheckSymtabCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check-symtab-compat <symtab-a> <symtab-b>",
		Short: "Check two symbol tables agree, ignoring disambiguation symbols",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run("check-symtab-compat", func() error {
				checker := &symtab.Checker{Store: a.store}
				if err := checker.CheckCompatible(args[0], args[1]); err != nil {
					return err
				}
				a.logger.Info("symbol tables are compatible",
					slog.String("a", args[0]),
					slog.String("b", args[1]))
				return nil
			})
		},
	}
}

func newValidateDisambigCmd(a *app) *cobra.Command {
	var allowNumeric bool
	cmd := &cobra.Command{
		Use:   "validate-disambig <disambig.txt>",
		Short: "Validate the spelling of disambiguation symbols",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run("validate-disambig", func() error {
				rows, err := a.store.Load(args[0])
				if err != nil {
					return err
				}
				if err := disambig.Validate(rows, allowNumeric); err != nil {
					return err
				}
				a.logger.Info("disambiguation symbols are valid",
					slog.String("file", args[0]),
					slog.Int("symbols", rows.Len()))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&allowNumeric, "allow-numeric", true, "Allow purely numeric symbols such as #3")
	return cmd
}

// ioArgs returns the optional input and output paths, defaulting to stdio.
func ioArgs(args []string) (in, out string) {
	in, out = table.StdioPath, table.StdioPath
	if len(args) > 0 {
		in = args[0]
	}
	if len(args) > 1 {
		out = args[1]
	}
	return in, out
}

// parseFieldRange converts a 1-based field spec ("N", "N-M", "N-", "-M" or
// "-") into zero-based bounds where remap.Open marks an open end.
func parseFieldRange(spec string) (begin, end int, err error) {
	bad := func() error {
		return &table.Error{Kind: table.ErrInvalidArgument, Msg: "bad field range", Token: spec}
	}
	spec = strings.ReplaceAll(spec, ":", "-")

	lo, hi, isRange := strings.Cut(spec, "-")
	if !isRange {
		hi = lo
	}
	bound := func(s string) (int, error) {
		if s == "" {
			return remap.Open, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return 0, bad()
		}
		return n - 1, nil
	}

	if begin, err = bound(lo); err != nil {
		return 0, 0, err
	}
	if end, err = bound(hi); err != nil {
		return 0, 0, err
	}
	if !isRange && begin == remap.Open {
		return 0, 0, bad()
	}
	return begin, end, nil
}

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := newRootCmd(a).Execute(); err != nil {
		if a.reporter == nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
