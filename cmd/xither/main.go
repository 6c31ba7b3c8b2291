// Command xither dithers images onto a fixed palette by error diffusion.
//
// Usage:
//
//	xither [flags] -in input.png -out output.png
//
// Parameters are resolved in order: library defaults, the -config YAML file,
// XITHER_* environment variables (a .env file is honored), then flags.
//
// Examples:
//
//	xither -in photo.jpg -out photo.png
//	xither -in photo.jpg -out photo.png -scale 5 -kernel atkinson
//	xither -in photo.jpg -out eink.png -palette eink7 -metric ciede2000
//	xither -in photo.jpg -out two.png -colors "#000000,#ff8800"
//	xither -in photo.jpg -out photo.png -analyze
//	xither -list
//	xither -serve -listen :8080
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/joho/godotenv"

	"github.com/cwbudde/algo-dither/internal/config"
	"github.com/cwbudde/algo-dither/internal/logging"
	"github.com/cwbudde/algo-dither/internal/server"
	"github.com/cwbudde/algo-dither/measure/spectrum"
	"github.com/cwbudde/algo-dither/measure/tone"
	"github.com/cwbudde/algo-dither/raster/colormodel"
	"github.com/cwbudde/algo-dither/raster/dither"
	"github.com/cwbudde/algo-dither/raster/kernel"
	"github.com/cwbudde/algo-dither/raster/palette"
)

const (
	envListen     = "XITHER_LISTEN"
	envLogLevel   = "XITHER_LOG_LEVEL"
	envNoColor    = "XITHER_NO_COLOR"
	defaultListen = ":8080"
	blurRadius    = 2
	highSplit     = 0.5
)

var errUsage = errors.New("usage")

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	in, out    string
	configPath string
	list       bool
	analyze    bool
	serve      bool
	listen     string
	logLevel   string
	noColor    bool
	params     config.File
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		// The flag set has already reported the problem.
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	base := logging.New(stderr, logging.Options{Level: level, NoColor: opts.noColor})
	logger := logging.For(base, logging.ComponentCLI)

	if opts.list {
		if err := printList(stdout); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	params, err := resolveParams(opts, logging.For(base, logging.ComponentConfig))
	if err != nil {
		logger.Error("invalid parameters", "err", err)
		return 2
	}

	if opts.serve {
		srv, err := server.New(params, base)
		if err != nil {
			logger.Error("server setup failed", "err", err)
			return 1
		}
		logger.Info("listening", "addr", opts.listen)
		if err := srv.Handler().Run(opts.listen); err != nil {
			logger.Error("server stopped", "err", err)
			return 1
		}
		return 0
	}

	if err := ditherFile(opts, params, stdout, logging.For(base, logging.ComponentPipeline)); err != nil {
		logger.Error("dither failed", "err", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("xither", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.in, "in", "", "input image (png, jpeg, bmp)")
	fs.StringVar(&opts.out, "out", "", "output png")
	fs.StringVar(&opts.configPath, "config", "", "YAML parameter file")
	fs.BoolVar(&opts.list, "list", false, "list kernels, palettes, models and metrics")
	fs.BoolVar(&opts.analyze, "analyze", false, "print tone and spectrum measurements of the result")
	fs.BoolVar(&opts.serve, "serve", false, "run the HTTP dither service")
	fs.StringVar(&opts.listen, "listen", config.Get(envListen, defaultListen), "listen address for -serve")
	fs.StringVar(&opts.logLevel, "log-level", config.Get(envLogLevel, "info"), "log level: debug, info, warn, error")
	fs.BoolVar(&opts.noColor, "no-color", config.GetBool(envNoColor, false), "disable colored log output")

	scale := fs.Float64("scale", 0, "decimation factor (>= 1)")
	sampling := fs.String("sampling", "", "decimation sampling: nearest, area")
	model := fs.String("model", "", "color model: rgb, accurate, average")
	kern := fs.String("kernel", "", "diffusion kernel (see -list)")
	pal := fs.String("palette", "", "named palette (see -list)")
	colors := fs.String("colors", "", "comma separated hex palette, overrides -palette")
	metric := fs.String("metric", "", "color distance: weighted, lab, ciede2000")
	strength := fs.Float64("strength", 1, "diffusion strength in [0, 1]")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: xither [flags] -in input -out output.png\n\n")
		fmt.Fprintf(stderr, "Dithers an image onto a fixed palette by error diffusion.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  xither -in photo.jpg -out photo.png -scale 5\n")
		fmt.Fprintf(stderr, "  xither -in photo.jpg -out eink.png -palette eink7\n")
		fmt.Fprintf(stderr, "  xither -list\n")
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts.params = config.File{
		Scale:    *scale,
		Sampling: *sampling,
		Model:    *model,
		Kernel:   *kern,
		Palette:  *pal,
		Metric:   *metric,
	}
	if *colors != "" {
		for _, code := range strings.Split(*colors, ",") {
			if code = strings.TrimSpace(code); code != "" {
				opts.params.Colors = append(opts.params.Colors, code)
			}
		}
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "strength" {
			s := *strength
			opts.params.Strength = &s
		}
	})

	if !opts.list && !opts.serve && (opts.in == "" || opts.out == "") {
		fs.Usage()
		return options{}, errUsage
	}

	return opts, nil
}

// resolveParams layers the config file, the environment and the flags, and
// checks that the result forms a valid configuration.
func resolveParams(opts options, logger *slog.Logger) (config.File, error) {
	var params config.File

	if opts.configPath != "" {
		f, err := config.Load(opts.configPath)
		if err != nil {
			return config.File{}, err
		}
		logger.Debug("loaded config file", "path", opts.configPath)
		params = f
	}

	params = params.Merge(config.FromEnv()).Merge(opts.params)

	if _, err := params.Config(); err != nil {
		return config.File{}, err
	}
	return params, nil
}

func ditherFile(opts options, params config.File, stdout io.Writer, logger *slog.Logger) error {
	cfg, err := params.Config()
	if err != nil {
		return err
	}

	img, err := imgio.Open(opts.in)
	if err != nil {
		return fmt.Errorf("open %s: %w", opts.in, err)
	}

	res, err := dither.Process(img, cfg)
	if err != nil {
		return err
	}

	if err := imgio.Save(opts.out, res.Image(), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("save %s: %w", opts.out, err)
	}

	logger.Info("dithered",
		"in", opts.in,
		"out", opts.out,
		"width", res.Width(),
		"height", res.Height(),
		"config", cfg.String(),
		"applied", res.Stats.Applied,
		"dropped", res.Stats.Dropped)

	if !opts.analyze {
		return nil
	}
	return printAnalysis(stdout, res, cfg.ColorModel())
}

func printAnalysis(w io.Writer, res *dither.Result, m colormodel.Model) error {
	rep, err := tone.Compare(res.Source, res.Output, m, blurRadius)
	if err != nil {
		return err
	}
	prof, err := spectrum.Radial(tone.Luminance(res.Output, m), res.Width(), res.Height())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Metric\tValue\n")
	fmt.Fprintf(tw, "------\t-----\n")
	fmt.Fprintf(tw, "source mean\t%.4f\n", rep.SourceMean)
	fmt.Fprintf(tw, "output mean\t%.4f\n", rep.OutputMean)
	fmt.Fprintf(tw, "bias\t%+.4f\n", rep.Bias)
	fmt.Fprintf(tw, "mean abs error\t%.4f\n", rep.MeanAbs)
	fmt.Fprintf(tw, "rmse\t%.4f\n", rep.RMSE)
	fmt.Fprintf(tw, "blur rmse (r=%d)\t%.4f\n", rep.Radius, rep.BlurRMSE)
	fmt.Fprintf(tw, "high frequency ratio\t%.4f\n", prof.HighFrequencyRatio(highSplit))
	for i, n := range res.Histogram() {
		fmt.Fprintf(tw, "palette[%d] %s\t%d\n", i, res.Palette.Hex()[i], n)
	}
	return tw.Flush()
}

func printList(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Kernel\tTaps\tWeight Sum\tRows\n")
	fmt.Fprintf(tw, "------\t----\t----------\t----\n")
	for _, p := range kernel.Presets() {
		k := p.Kernel()
		_, _, rows := k.Footprint()
		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%d\n", p, k.Len(), k.WeightSum(), rows)
	}

	fmt.Fprintf(tw, "\nPalette\tColors\n")
	fmt.Fprintf(tw, "-------\t------\n")
	for _, name := range palette.Names() {
		p, err := palette.Named(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, strings.Join(p.Hex(), " "))
	}

	fmt.Fprintf(tw, "\nColor Model\n")
	fmt.Fprintf(tw, "-----------\n")
	for _, m := range colormodel.Models() {
		fmt.Fprintf(tw, "%s\n", m)
	}

	fmt.Fprintf(tw, "\nMetric\n")
	fmt.Fprintf(tw, "------\n")
	for _, m := range palette.Metrics() {
		fmt.Fprintf(tw, "%s\n", m)
	}

	return tw.Flush()
}
