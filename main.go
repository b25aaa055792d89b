package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/logging"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

type flags struct {
	configPath string
	width      int
	height     int
	sceneName  string
	workers    int
	depth      int
	divide     int
	partition  string

	veryVerbose bool
	verbose     bool
	quiet       bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("raytracer failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   "raytracer [output]",
		Short: "Render a scene with a recursive Whitted ray tracer",
		Long: "Renders a built-in scene or a YAML scene file and writes the image.\n" +
			"The output format follows the file extension: .ppm, .png or .bmp.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logging.Setup(f.veryVerbose, f.verbose, f.quiet)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, &f, args)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&f.veryVerbose, "vv", false, "debug logging")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "info logging")
	pf.BoolVarP(&f.quiet, "quiet", "q", false, "only log errors")

	fl := root.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "TOML config file (default "+config.DefaultFile+" if present)")
	fl.IntVar(&f.width, "width", 0, "image width in pixels (default: the scene's)")
	fl.IntVar(&f.height, "height", 0, "image height in pixels (default: the scene's)")
	fl.StringVarP(&f.sceneName, "scene", "s", "", "built-in scene name or .yaml scene file")
	fl.IntVarP(&f.workers, "workers", "w", 0, "render goroutines (default: one per CPU)")
	fl.IntVar(&f.depth, "depth", 0, "maximum reflection and refraction depth")
	fl.IntVar(&f.divide, "divide", 0, "group subdivision threshold, negative to disable")
	fl.StringVar(&f.partition, "partition", "", "pixel assignment: striped or rows")

	root.AddCommand(newScenesCommand())
	return root
}

func newScenesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the built-in scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, info := range scene.ListScenes() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", info.ID, info.DisplayName, info.Description)
			}
			return tw.Flush()
		},
	}
}

// resolveConfig layers the config file, then any flags set on the command line, then the
// output argument
func resolveConfig(cmd *cobra.Command, f *flags, args []string) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.Load(f.configPath)
	} else {
		cfg, err = config.LoadOptional(config.DefaultFile)
	}
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("width") {
		cfg.Width = f.width
	}
	if changed("height") {
		cfg.Height = f.height
	}
	if changed("scene") {
		cfg.Scene = f.sceneName
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("depth") {
		cfg.MaxDepth = f.depth
	}
	if changed("divide") {
		cfg.DivideThreshold = f.divide
	}
	if changed("partition") {
		cfg.Partition = f.partition
	}
	if len(args) == 1 {
		cfg.Output = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func run(cfg config.Config) error {
	img, err := render(cfg)
	if err != nil {
		return err
	}
	if err := img.Save(cfg.Output); err != nil {
		return err
	}
	slog.Info("image written", "path", cfg.Output, "width", img.Width, "height", img.Height)
	return nil
}

// render builds the configured scene and traces every pixel
func render(cfg config.Config) (*canvas.Canvas, error) {
	s, err := scene.Load(cfg.Scene, scene.Options{Width: cfg.Width, Height: cfg.Height})
	if err != nil {
		return nil, err
	}
	if cfg.DivideThreshold != 0 {
		s.DivideThreshold = cfg.DivideThreshold
	}

	start := time.Now()
	prepared := s.Prepare()
	slog.Debug("scene prepared", "threshold", s.DivideThreshold, "primitives", prepared.Primitives,
		"composites", prepared.Composites, "depth", prepared.MaxDepth, "elapsed", time.Since(start))

	partition, err := renderer.ParsePartition(cfg.Partition)
	if err != nil {
		return nil, err
	}
	tracer := integrator.NewWhitted(s.World, cfg.MaxDepth)
	r := renderer.NewRenderer(s.Camera, tracer, renderer.Options{Workers: cfg.Workers, Partition: partition})

	img, stats, err := r.Render()
	if err != nil {
		return nil, errors.Wrapf(err, "render %s", s.Name)
	}
	slog.Info("render stats", "stats", stats)
	return img, nil
}
