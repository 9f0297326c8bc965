package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tagcloud/tagcloud/pkg/errors"
	"github.com/tagcloud/tagcloud/pkg/output"
	"github.com/tagcloud/tagcloud/pkg/pipeline"
)

// stdin is read for the "-" input. Tests replace it.
var stdin io.Reader = os.Stdin

const (
	stdinName      = "-"
	stdinOutput    = "tagcloud"             // output base name for stdin input
	watchDebounce  = 200 * time.Millisecond // editors write files in bursts
	defaultJobs    = 4
	defaultOutMode = 0o644
)

// renderFlags holds the command-line flags for the render command. Flags
// the user did not set leave the config file value in place.
type renderFlags struct {
	output        string
	format        string
	font          string
	width         int
	height        int
	background    string
	palette       []string
	paletteSize   int
	seed          uint64
	scale         string
	minFontSize   float64
	maxFontSize   float64
	spacing       string // WxH
	center        string // X,Y
	strategy      string
	filter        string
	maxWords      int
	minLength     int
	keepStopWords bool
	stopWords     []string
	keepNumbers   bool
	noCache       bool
	refresh       bool
	watch         bool
	jobs          int
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	flags := renderFlags{jobs: defaultJobs}

	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Render text files as word cloud images",
		Long: `Render counts the words of each input file and draws them as a word cloud.

The output file defaults to the input name with the format's extension.
Use "-" to read from standard input. Several inputs render concurrently.`,
		Example: `  tagcloud render notes.txt
  tagcloud render -o cloud.jpg --width 1200 --height 800 talk.md
  cat README | tagcloud render - --palette '#264653,#2a9d8f,#e76f51'
  tagcloud render --watch draft.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			if err := flags.apply(cmd, &opts); err != nil {
				return err
			}
			if flags.output != "" && len(args) > 1 {
				return errors.New(errors.ErrCodeInvalidPath, "--output needs a single input, got %d", len(args))
			}
			if flags.watch && containsStdin(args) {
				return errors.New(errors.ErrCodeInvalidInput, "--watch cannot read from standard input")
			}
			// Surface option errors before any input is read.
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if err := c.renderAll(cmd.Context(), runner, args, flags, opts); err != nil {
				return err
			}
			if flags.watch {
				return c.watch(cmd.Context(), runner, args, flags, opts)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "output file (single input only)")
	f.StringVarP(&flags.format, "format", "f", "", "output format: png (default), jpeg, gif, bmp, tiff")
	f.StringVar(&flags.font, "font", "", "font family (see 'tagcloud fonts')")
	f.IntVar(&flags.width, "width", 0, "output width; requires --height")
	f.IntVar(&flags.height, "height", 0, "output height; requires --width")
	f.StringVar(&flags.background, "background", "", "background color: #rrggbb, a name, or transparent")
	f.StringSliceVar(&flags.palette, "palette", nil, "comma-separated #rrggbb word colors")
	f.IntVar(&flags.paletteSize, "palette-size", 0, "generate this many word colors")
	f.Uint64Var(&flags.seed, "seed", 0, "seed for generated palettes")
	f.StringVar(&flags.scale, "scale", "", "font size scale: linear (default), log")
	f.Float64Var(&flags.minFontSize, "min-font-size", 0, "smallest font size in pixels")
	f.Float64Var(&flags.maxFontSize, "max-font-size", 0, "largest font size in pixels")
	f.StringVar(&flags.spacing, "spacing", "", "placement grid step as WxH")
	f.StringVar(&flags.center, "center", "", "layout center as X,Y")
	f.StringVar(&flags.strategy, "strategy", "", "placement strategy: spiral (default)")
	f.StringVar(&flags.filter, "filter", "", "resize filter: nearest, linear (default), catmull, lanczos")
	f.IntVarP(&flags.maxWords, "max-words", "n", 0, "draw at most this many words")
	f.IntVar(&flags.minLength, "min-length", 0, "ignore words shorter than this")
	f.BoolVar(&flags.keepStopWords, "keep-stop-words", false, "keep common English words")
	f.StringSliceVar(&flags.stopWords, "stop-words", nil, "additional words to ignore")
	f.BoolVar(&flags.keepNumbers, "keep-numbers", false, "keep words made only of digits")
	f.BoolVar(&flags.noCache, "no-cache", false, "disable the local cache")
	f.BoolVar(&flags.refresh, "refresh", false, "ignore cached results")
	f.BoolVarP(&flags.watch, "watch", "w", false, "re-render when an input file changes")
	f.IntVarP(&flags.jobs, "jobs", "j", flags.jobs, "inputs rendered at once")

	return cmd
}

// apply copies every flag the user set onto opts.
func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	set := cmd.Flags().Changed

	if set("format") {
		opts.Format = f.format
	} else if f.output != "" {
		if format := output.FormatFromPath(f.output); format != "" {
			opts.Format = format
		}
	}
	if set("font") {
		opts.Font = f.font
	}
	if set("width") {
		opts.Width = f.width
	}
	if set("height") {
		opts.Height = f.height
	}
	if set("background") {
		opts.Background = f.background
	}
	if set("palette") {
		opts.Palette = f.palette
	}
	if set("palette-size") {
		opts.PaletteSize = f.paletteSize
	}
	if set("seed") {
		opts.Seed = f.seed
	}
	if set("scale") {
		opts.Scale = f.scale
	}
	if set("min-font-size") {
		opts.MinFontSize = f.minFontSize
	}
	if set("max-font-size") {
		opts.MaxFontSize = f.maxFontSize
	}
	if set("spacing") {
		w, h, err := parseSpacing(f.spacing)
		if err != nil {
			return err
		}
		opts.SpacingW, opts.SpacingH = w, h
	}
	if set("center") {
		x, y, err := parseCenter(f.center)
		if err != nil {
			return err
		}
		opts.CenterX, opts.CenterY = x, y
	}
	if set("strategy") {
		opts.Strategy = f.strategy
	}
	if set("filter") {
		opts.Filter = f.filter
	}
	if set("max-words") {
		opts.MaxWords = f.maxWords
	}
	if set("min-length") {
		opts.MinLength = pipeline.MinLengthFor(f.minLength)
	}
	if set("keep-stop-words") {
		opts.KeepStopWords = f.keepStopWords
	}
	if set("stop-words") {
		opts.ExtraStopWords = append(opts.ExtraStopWords, f.stopWords...)
	}
	if set("keep-numbers") {
		opts.KeepNumbers = f.keepNumbers
	}
	opts.Refresh = f.refresh
	if f.jobs < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "--jobs must be at least 1, got %d", f.jobs)
	}
	return nil
}

// parseSpacing parses "WxH" (or a single number used for both axes).
func parseSpacing(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		h = w
	}
	wi, err1 := strconv.Atoi(strings.TrimSpace(w))
	hi, err2 := strconv.Atoi(strings.TrimSpace(h))
	if err1 != nil || err2 != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidSpacing, "invalid spacing %q (want WxH)", s)
	}
	if err := errors.ValidateSpacing(wi, hi); err != nil {
		return 0, 0, err
	}
	return wi, hi, nil
}

// parseCenter parses "X,Y".
func parseCenter(s string) (int, int, error) {
	x, y, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidConfig, "invalid center %q (want X,Y)", s)
	}
	xi, err1 := strconv.Atoi(strings.TrimSpace(x))
	yi, err2 := strconv.Atoi(strings.TrimSpace(y))
	if err1 != nil || err2 != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidConfig, "invalid center %q (want X,Y)", s)
	}
	return xi, yi, nil
}

// outputPath derives where the artifact for input is written.
func outputPath(input, explicit, format string) string {
	if explicit != "" {
		return explicit
	}
	if input == stdinName {
		return stdinOutput + output.Extension(format)
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + output.Extension(format)
}

func containsStdin(inputs []string) bool {
	for _, in := range inputs {
		if in == stdinName {
			return true
		}
	}
	return false
}

func readInput(path string) ([]byte, error) {
	if path == stdinName {
		return io.ReadAll(stdin)
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s not found", path)
	}
	return data, err
}

// renderAll renders every input, at most flags.jobs at a time. A cancelled
// run returns context.Canceled so main can exit with status 130.
func (c *CLI) renderAll(ctx context.Context, runner *pipeline.Runner, inputs []string, flags renderFlags, opts pipeline.Options) error {
	label := inputs[0]
	if len(inputs) > 1 {
		label = fmt.Sprintf("%d files", len(inputs))
	}
	var spinner *Spinner
	if !c.verbose {
		spinner = newSpinner(ctx, "Rendering "+label+"...")
		spinner.Start()
	}

	type done struct {
		input, path string
		result      *pipeline.Result
	}
	results := make([]done, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(flags.jobs)
	for i, input := range inputs {
		g.Go(func() error {
			path := outputPath(input, flags.output, opts.Format)
			res, err := c.renderOne(gctx, runner, input, path, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i] = done{input, path, res}
			return nil
		})
	}
	err := g.Wait()
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		printWarning("Cancelled")
		return context.Canceled
	}

	for _, d := range results {
		if d.result == nil || d.result.Cancelled {
			continue
		}
		printSuccess("Rendered %s", d.input)
		printFile(d.path)
		printStats(len(d.result.Words), d.result.Stats.Width, d.result.Stats.Height, d.result.CacheInfo.ArtifactHit)
	}
	return nil
}

// renderOne runs the pipeline for one input and writes the artifact.
func (c *CLI) renderOne(ctx context.Context, runner *pipeline.Runner, input, path string, opts pipeline.Options) (*pipeline.Result, error) {
	logger := c.Logger.With("input", input, "run", uuid.NewString()[:8])
	opts.Logger = logger
	prog := newProgress(logger)

	data, err := readInput(input)
	if err != nil {
		return nil, err
	}
	res, err := runner.Execute(ctx, data, opts)
	if err != nil {
		return nil, err
	}
	if res.Cancelled {
		return res, nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, res.Artifact, defaultOutMode); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	prog.done("wrote artifact", "path", path, "bytes", len(res.Artifact))
	return res, nil
}

// watch re-renders inputs whenever they change until ctx is done. Parent
// directories are watched so that editors replacing a file by rename are
// still noticed.
func (c *CLI) watch(ctx context.Context, runner *pipeline.Runner, inputs []string, flags renderFlags, opts pipeline.Options) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	watched := make(map[string]string, len(inputs)) // absolute path -> input arg
	dirs := make(map[string]bool)
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return err
		}
		watched[abs] = in
		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := w.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}
	printInfo("Watching %d file(s), press Ctrl-C to stop", len(inputs))

	pending := make(map[string]bool)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			in, ok := watched[filepath.Clean(ev.Name)]
			if !ok || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			c.Logger.Debug("input changed", "file", in, "op", ev.Op.String())
			pending[in] = true
			timer.Reset(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "err", err)
		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for _, in := range inputs {
				if pending[in] {
					changed = append(changed, in)
				}
			}
			clear(pending)
			if err := c.renderAll(ctx, runner, changed, flags, opts); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				printError("%s", errors.UserMessage(err))
			}
		}
	}
}
