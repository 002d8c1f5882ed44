package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/oakwood-commons/assetview/internal/config"
	"github.com/oakwood-commons/assetview/internal/export"
	"github.com/oakwood-commons/assetview/internal/formatter"
	"github.com/oakwood-commons/assetview/internal/limiter"
	"github.com/oakwood-commons/assetview/internal/render"
	"github.com/oakwood-commons/assetview/internal/selector"
	"github.com/oakwood-commons/assetview/pkg/loader"
	"github.com/oakwood-commons/assetview/pkg/logger"
	"github.com/oakwood-commons/assetview/pkg/settings"
	"github.com/oakwood-commons/assetview/pkg/value"
)

// errShowHelp is returned when no input is provided and help should be shown.
var errShowHelp = errors.New("no input provided")

// outputFormats are the values accepted by --output.
var outputFormats = []string{"text", "tree", "markdown", "html", "json", "yaml", "toml", "csv"}

var (
	stdinIsPiped  = func() bool { stat, _ := os.Stdin.Stat(); return (stat.Mode() & os.ModeCharDevice) == 0 }
	stdoutIsTTY   = func(w io.Writer) bool { f, ok := w.(*os.File); return ok && term.IsTerminal(int(f.Fd())) }
	terminalWidth = formatter.TerminalWidth
)

// usageError marks errors caused by bad flags or arguments; they exit with 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// ExitCode maps an Execute error to a process exit code.
func ExitCode(err error) int {
	var uerr usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &uerr):
		return 2
	default:
		return 1
	}
}

// renderFlags are shared by the root and export commands.
type renderFlags struct {
	maxDepth        int
	maxItems        int
	maxChips        int
	stringThreshold int
	stringPreview   int
	urlThreshold    int
	decodeEmbedded  bool
	selectExpr      string
	limit           int
	offset          int
	tail            int
}

func (f *renderFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.maxDepth, "max-depth", render.DefaultMaxDepth, "deepest level rendered in full; deeper containers become placeholders")
	fs.IntVar(&f.maxItems, "max-items", render.DefaultMaxArrayItemsShown, "items shown for arrays of objects")
	fs.IntVar(&f.maxChips, "max-chips", 0, "chips shown for arrays of primitives (0 = all)")
	fs.IntVar(&f.stringThreshold, "string-threshold", render.DefaultLongStringThreshold, "characters above which a string is truncated")
	fs.IntVar(&f.stringPreview, "string-preview", 0, "characters kept from a truncated string (0 = string threshold)")
	fs.IntVar(&f.urlThreshold, "url-threshold", render.DefaultURLDisplayThreshold, "longest URL label shown untruncated")
	fs.BoolVar(&f.decodeEmbedded, "decode-embedded", false, "decode strings that hold JSON documents before rendering")
	fs.StringVarP(&f.selectExpr, "select", "s", "", "CEL expression using '_' as root, e.g. '_.findings.filter(f, f.severity == \"high\")'")
	fs.IntVar(&f.limit, "limit", 0, "limit the number of top-level records")
	fs.IntVar(&f.offset, "offset", 0, "skip the first N top-level records")
	fs.IntVar(&f.tail, "tail", 0, "show the last N top-level records (ignores --offset)")
}

// options overlays explicitly set flags on the configured render options.
func (f *renderFlags) options(fs *pflag.FlagSet, base render.Options) render.Options {
	opts := base
	changed := fs.Changed
	if changed("max-depth") {
		opts.MaxDepth = f.maxDepth
	}
	if changed("max-items") {
		opts.MaxArrayItemsShown = f.maxItems
	}
	if changed("max-chips") {
		opts.MaxPrimitiveItemsShown = f.maxChips
	}
	if changed("string-threshold") {
		opts.LongStringThreshold = f.stringThreshold
	}
	if changed("string-preview") {
		opts.LongStringPreview = f.stringPreview
	}
	if changed("url-threshold") {
		opts.URLDisplayThreshold = f.urlThreshold
	}
	return opts
}

func (f *renderFlags) limiter() limiter.Config {
	return limiter.Config{Limit: f.limit, Offset: f.offset, Tail: f.tail}
}

// prepare applies embedded decoding, selection and record limits.
func (f *renderFlags) prepare(ctx context.Context, v value.Value, log logr.Logger) (value.Value, error) {
	if f.decodeEmbedded {
		v = loader.DecodeEmbedded(v)
	}
	if expr := strings.TrimSpace(f.selectExpr); expr != "" {
		sel, err := selector.Compile(expr)
		if err != nil {
			return v, usageError{err: err}
		}
		log.V(1).Info("applying selector", "expression", expr)
		if v, err = sel.Select(ctx, v); err != nil {
			return v, err
		}
	}
	return f.limiter().Apply(v), nil
}

type rootOptions struct {
	render      renderFlags
	output      string
	configFile  string
	debug       bool
	noColor     bool
	interactive bool
	asset       string

	run *settings.Run
	cfg config.Config
	ctx context.Context
	log logr.Logger
}

// setup initialises logging and loads the config. It runs before every
// command.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	var level int8
	if o.debug {
		level = -1
	}
	lgr := logger.Get(level)
	lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
	o.log = *lgr

	o.run = settings.NewCliParams()
	o.run.MinLogLevel = level
	o.run.NoColor = o.noColor
	o.run.Interactive = o.interactive
	if o.asset != "" {
		o.run.Input.AssetName = o.asset
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, lgr)
	o.ctx = settings.IntoContext(ctx, o.run)

	path := config.ResolvePath(o.configFile)
	cfg, err := config.Load(path)
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			return usageError{err: err}
		}
		return err
	}
	if path != "" {
		o.log.V(1).Info("loaded config", "path", path)
	}
	o.cfg = cfg
	formatter.SetTheme(cfg.Theme.FormatterTheme())
	return nil
}

// NewRootCmd builds the assetview command tree.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   settings.CliBinaryName + " [file]",
		Short: "Render structured data as a readable, bounded view",
		Long: `assetview renders schema-less JSON, YAML, TOML or NDJSON as a readable nested
view: simple fields first, then lists, then nested sections. Long strings are
truncated, URLs become links and deep structures collapse into placeholders.

Input is read from the file argument or from stdin when piped.`,
		Example: `  assetview report.json
  assetview report.json --select '_.findings' --output markdown
  cat report.json | assetview -o tree --max-depth 2
  assetview report.json -i --asset audit-2024`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := o.runRoot(cmd, args)
			if errors.Is(err, errShowHelp) {
				return cmd.Help()
			}
			return err
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})
	o.render.register(cmd.Flags())
	cmd.Flags().StringVarP(&o.output, "output", "o", "text", "output format: "+strings.Join(outputFormats, "|"))
	cmd.Flags().BoolVarP(&o.interactive, "interactive", "i", false, "open the interactive viewer")

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configFile, "config-file", "", "path to a YAML config file (default $"+config.EnvConfigFile+" or $XDG_CONFIG_HOME/assetview/config.yaml)")
	pf.BoolVar(&o.debug, "debug", false, "enable debug logging on stderr")
	pf.BoolVar(&o.noColor, "no-color", false, "disable color output")
	pf.StringVar(&o.asset, "asset", "", "asset name used for exports and draft notes (default: input file name)")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(
		newExportCmd(o),
		newDraftsCmd(o),
		newConfigCmd(o),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) runRoot(cmd *cobra.Command, args []string) error {
	if !lo.Contains(outputFormats, o.output) {
		return usageErrorf("invalid --output %q (expected one of %s)", o.output, strings.Join(outputFormats, ", "))
	}
	if err := o.render.limiter().Validate(); err != nil {
		return usageErrorf("record limiting: %w", err)
	}
	opts := o.render.options(cmd.Flags(), o.cfg.Render)
	if err := opts.ValidateExplicit(); err != nil {
		return usageError{err: err}
	}

	root, err := o.loadInput(cmd, args)
	if err != nil {
		return err
	}
	root, err = o.render.prepare(o.ctx, root, o.log)
	if err != nil {
		return err
	}

	r := render.New(opts)
	if o.interactive {
		return o.runInteractive(root, r)
	}
	return o.printOutput(cmd.OutOrStdout(), root, r)
}

func (o *rootOptions) printOutput(w io.Writer, v value.Value, r *render.Renderer) error {
	var (
		out string
		err error
	)
	switch o.output {
	case "text":
		out = formatter.FormatText(r.Render(v), formatter.TextOptions{
			NoColor: o.noColor || !stdoutIsTTY(w),
			Width:   terminalWidth(),
		})
	case "tree":
		out = formatter.FormatTree(r.Render(v), formatter.TreeOptions{})
	case "markdown":
		out = export.ToMarkdown(v, r, o.run.Input.AssetName)
	case "html":
		out = export.ToHTML(v, r, o.run.Input.AssetName)
	case "json":
		out, err = export.ToJSON(v)
	case "yaml":
		out, err = formatter.FormatYAML(v, formatter.YAMLFormatOptions{Indent: 2})
	case "toml":
		out, err = export.ToTOML(v)
	case "csv":
		out, err = export.ToCSV(v)
	}
	if err != nil {
		return err
	}
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = io.WriteString(w, out)
	return err
}
