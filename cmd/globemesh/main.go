package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	"globemesh/internal/config"
	"globemesh/internal/export"
	"globemesh/internal/mesh"
	"globemesh/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

// override is a flag value that remembers whether it was given, so config
// file values survive unless a flag replaces them.
type override[T any] struct {
	parse func(string) (T, error)
	v     T
	set   bool
}

func (o *override[T]) Set(s string) error {
	v, err := o.parse(s)
	if err != nil {
		return err
	}
	o.v, o.set = v, true
	return nil
}

func (o *override[T]) String() string { return fmt.Sprint(o.v) }

func (o *override[T]) apply(dst *T) {
	if o.set {
		*dst = o.v
	}
}

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
func parseInt64(s string) (int64, error)   { return strconv.ParseInt(s, 10, 64) }
func parseString(s string) (string, error) { return s, nil }

type cli struct {
	app *kingpin.Application

	configPath string
	verbose    bool
	wkt        string

	radius, density override[float64]
	workers         override[int]
	seed            override[int64]
	triangulator    override[string]
	colors          override[string]

	viewCmd, buildCmd, exportCmd, statsCmd *kingpin.CmdClause

	viewFile, buildFile, exportFile, statsFile string

	buildOut   string
	buildCheck bool

	exportOut    string
	exportFormat string
	exportWidth  int
	exportImgcat bool
}

func newCLI(stdout, stderr io.Writer) *cli {
	c := &cli{
		radius:       override[float64]{parse: parseFloat},
		density:      override[float64]{parse: parseFloat},
		workers:      override[int]{parse: strconv.Atoi},
		seed:         override[int64]{parse: parseInt64},
		triangulator: override[string]{parse: parseString},
		colors:       override[string]{parse: parseString},
	}
	app := kingpin.New("globemesh", "Triangulate GeoJSON polygons onto a sphere.")
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)
	app.HelpFlag.Short('h')
	c.app = app

	app.Flag("config", "YAML configuration file.").Short('c').StringVar(&c.configPath)
	app.Flag("verbose", "Log build progress to stderr.").Short('v').BoolVar(&c.verbose)
	app.Flag("wkt", "Mesh this WKT geometry instead of reading FILE.").StringVar(&c.wkt)
	app.Flag("radius", "Sphere radius.").SetValue(&c.radius)
	app.Flag("density", "Interior grid step in degrees.").SetValue(&c.density)
	app.Flag("workers", "Rings triangulated at once; 0 uses every CPU.").SetValue(&c.workers)
	app.Flag("seed", "Seed of the random colour draw.").SetValue(&c.seed)
	app.Flag("triangulator", "delaunator or bowyer-watson.").SetValue(&c.triangulator)
	app.Flag("colors", "random or cycle.").SetValue(&c.colors)

	c.viewCmd = app.Command("view", "Browse the meshes on a terminal globe.").Default()
	c.viewCmd.Arg("file", "GeoJSON or WKT file.").StringVar(&c.viewFile)

	c.buildCmd = app.Command("build", "Write the meshes as JSON.")
	c.buildCmd.Arg("file", "GeoJSON or WKT file.").StringVar(&c.buildFile)
	c.buildCmd.Flag("output", "Output file, stdout when empty.").Short('o').StringVar(&c.buildOut)
	c.buildCmd.Flag("check", "Validate every mesh before writing.").BoolVar(&c.buildCheck)

	c.exportCmd = app.Command("export", "Write the meshes as SVG, PNG or OBJ.")
	c.exportCmd.Arg("file", "GeoJSON or WKT file.").StringVar(&c.exportFile)
	c.exportCmd.Flag("format", "svg, png or obj.").Short('f').Default("svg").EnumVar(&c.exportFormat, "svg", "png", "obj")
	c.exportCmd.Flag("output", "Output file, stdout when empty.").Short('o').StringVar(&c.exportOut)
	c.exportCmd.Flag("width", "Image width in pixels.").Default(strconv.Itoa(export.DefaultWidth)).IntVar(&c.exportWidth)
	c.exportCmd.Flag("imgcat", "Show the PNG inline in the terminal.").BoolVar(&c.exportImgcat)

	c.statsCmd = app.Command("stats", "Print per-feature mesh statistics.")
	c.statsCmd.Arg("file", "GeoJSON or WKT file.").StringVar(&c.statsFile)
	return c
}

// config loads the configuration file, if any, and applies flag overrides.
func (c *cli) config() (config.Config, error) {
	cfg := config.Default()
	if c.configPath != "" {
		var err error
		if cfg, err = config.Load(c.configPath); err != nil {
			return config.Config{}, err
		}
	}
	c.radius.apply(&cfg.Radius)
	c.density.apply(&cfg.Density)
	c.workers.apply(&cfg.Workers)
	c.seed.apply(&cfg.Seed)
	c.triangulator.apply(&cfg.Triangulator)
	c.colors.apply(&cfg.Colors)
	return cfg, cfg.Validate()
}

func (c *cli) document(file string) (*mesh.Document, error) {
	switch {
	case c.wkt != "":
		return mesh.FromWKT(c.wkt)
	case file != "":
		return mesh.DecodeFile(file)
	}
	return nil, errors.New("no input: give a FILE or --wkt")
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := newCLI(stdout, stderr)
	cmd, err := c.app.Parse(args)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "globemesh: ", 0)
	if c.verbose {
		logger.SetOutput(stderr)
	}
	cfg, err := c.config()
	if err != nil {
		return err
	}
	opts, err := cfg.Options(logger)
	if err != nil {
		return err
	}

	switch cmd {
	case c.viewCmd.FullCommand():
		return c.runView(ctx, stdout, opts)
	case c.buildCmd.FullCommand():
		meshes, err := c.meshes(ctx, c.buildFile, opts)
		if err != nil {
			return err
		}
		if c.buildCheck {
			for _, m := range meshes {
				if err := m.Validate(); err != nil {
					return err
				}
			}
		}
		return writeTo(c.buildOut, stdout, func(w io.Writer) error { return mesh.WriteJSON(w, meshes) })
	case c.exportCmd.FullCommand():
		meshes, err := c.meshes(ctx, c.exportFile, opts)
		if err != nil {
			return err
		}
		return c.runExport(stdout, meshes)
	case c.statsCmd.FullCommand():
		meshes, err := c.meshes(ctx, c.statsFile, opts)
		if err != nil {
			return err
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(tui.StatsHeaders...).
			Rows(tui.Stats(meshes)...)
		_, err = fmt.Fprintln(stdout, t.String())
		return err
	}
	return errors.Errorf("unknown command %q", cmd)
}

func (c *cli) meshes(ctx context.Context, file string, opts mesh.Options) ([]*mesh.FeatureMesh, error) {
	doc, err := c.document(file)
	if err != nil {
		return nil, err
	}
	return mesh.NewBuilder(opts).Build(ctx, doc)
}

func (c *cli) runView(ctx context.Context, stdout io.Writer, opts mesh.Options) error {
	f, ok := stdout.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return errors.New("view needs a terminal; use build or export to write files")
	}
	var m tea.Model
	switch {
	case c.wkt != "":
		doc, err := mesh.FromWKT(c.wkt)
		if err != nil {
			return err
		}
		meshes, err := mesh.NewBuilder(opts).Build(ctx, doc)
		if err != nil {
			return err
		}
		m = tui.NewWithMeshes(doc, meshes, opts)
	case c.viewFile != "":
		m = tui.NewWithPath(c.viewFile, opts)
	default:
		m = tui.New(opts)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx)).Run()
	return err
}

func (c *cli) runExport(stdout io.Writer, meshes []*mesh.FeatureMesh) error {
	if c.exportImgcat {
		if c.exportFormat != "png" {
			return errors.Errorf("--imgcat needs --format png, got %s", c.exportFormat)
		}
		return imgcat.CatImage(export.RenderPNG(meshes, c.exportWidth), stdout)
	}
	return writeTo(c.exportOut, stdout, func(w io.Writer) error {
		switch c.exportFormat {
		case "png":
			return export.WritePNG(w, meshes, c.exportWidth)
		case "obj":
			return export.WriteOBJ(w, meshes)
		}
		return export.WriteSVG(w, meshes, c.exportWidth)
	})
}

// writeTo runs write against path, or stdout when path is empty.
func writeTo(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close output")
}
