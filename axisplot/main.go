package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/decibelcooper/svgaxis"
	"github.com/decibelcooper/svgaxis/render"
	"github.com/decibelcooper/svgaxis/render/svgrender"
	"github.com/decibelcooper/svgaxis/render/vgrender"
	"github.com/decibelcooper/svgaxis/scale"
)

var (
	config   = flag.String("config", "", "YAML axis document")
	scaleArg = flag.String("scale", "linear", "scale kind (linear, sqrt, pow, log, time, band, point, ordinal)")
	orient   = flag.String("orient", "bottom", "axis orientation (bottom, top, left, right)")
	width    = flag.Float64("width", 400, "container width")
	height   = flag.Float64("height", 100, "container height")
	title    = flag.String("title", "", "axis title")
	rotate   = flag.String("rotate", "auto", "label rotation (auto, on, off)")
	logLevel = flag.String("log-level", "info", "log level")
	output   = flag.String("output", "axis.svg", "output file (.svg, .png or .pdf)")
	gonum    = flag.Bool("gonum", false, "draw a gonum/plot grid using the axis ticker instead")
	prof     = flag.Bool("profile", false, "write a CPU profile")
	domain   = svgaxis.ValueFlags{Values: []interface{}{0.0, 10.0}}
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options]

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Var(&domain, "domain", "domain value, repeated for each end or category")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 0 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	if *prof {
		defer profile.Start().Stop()
	}

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)

	cfg, err := buildConfig()
	if err != nil {
		log.Fatal(err)
	}

	if *gonum {
		if err := savePlot(cfg); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := saveAxis(cfg); err != nil {
		log.Fatal(err)
	}
}

// buildConfig starts from the YAML document, if any, and applies the
// flags given on the command line over it.
func buildConfig() (svgaxis.Config, error) {
	b := svgaxis.NewBuilder()
	if *config != "" {
		f, err := os.Open(*config)
		if err != nil {
			return svgaxis.Config{}, err
		}
		defer f.Close()
		if b, err = svgaxis.DecodeYAML(f); err != nil {
			return svgaxis.Config{}, err
		}
	}
	set := func(name string) bool { return *config == "" || flag.CommandLine.Changed(name) }

	if set("scale") {
		b.ScaleName(*scaleArg)
	}
	if set("orient") {
		b.OrientName(*orient)
	}
	if set("width") || set("height") {
		b.Size(*width, *height)
	}
	if set("title") && *title != "" {
		b.Title(*title)
	}
	if set("rotate") {
		r, err := svgaxis.ParseRotation(*rotate)
		if err != nil {
			return svgaxis.Config{}, err
		}
		b.LabelRotation(r)
	}
	if set("domain") {
		b.Domain(domain.Values...)
	}
	return b.Build()
}

func saveAxis(cfg svgaxis.Config) error {
	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	defer f.Close()

	w, h := vg.Length(cfg.Width), vg.Length(cfg.Height)
	var (
		r     render.Renderer
		flush func(io.Writer) error
	)
	switch ext := strings.ToLower(filepath.Ext(*output)); ext {
	case ".svg":
		r = svgrender.New(f)
	case ".png":
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(72))
		r = vgrender.New(draw.New(c))
		flush = func(out io.Writer) error {
			_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(out)
			return err
		}
	case ".pdf":
		c := vgpdf.New(w, h)
		r = vgrender.New(draw.New(c))
		flush = func(out io.Writer) error {
			_, err := c.WriteTo(out)
			return err
		}
	default:
		return errors.Errorf("unsupported output type %q", ext)
	}

	axis := svgaxis.New(cfg, svgaxis.WithRenderer(r))
	if _, err := axis.Render(context.Background()); err != nil {
		return err
	}
	log.WithField("bounds", axis.OuterBounds()).Info("axis written to ", *output)
	if flush != nil {
		return flush(f)
	}
	return nil
}

// savePlot draws a gridded gonum/plot figure whose x axis is ticked by
// the axis layout.
func savePlot(cfg svgaxis.Config) error {
	if !cfg.Scale.Continuous() || cfg.Scale == scale.Time {
		return errors.Errorf("--gonum needs a numeric scale, got %s", cfg.Scale)
	}
	lay, err := svgaxis.Compute(cfg, nil)
	if err != nil {
		return err
	}
	s, ok := lay.Scale.(interface{ Domain() (float64, float64) })
	if !ok {
		return errors.Errorf("%s scale has no numeric domain", cfg.Scale)
	}
	d0, d1 := s.Domain()

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Min, p.X.Max = d0, d1
	p.X.Tick.Marker = svgaxis.Ticker{Config: cfg}
	if cfg.Scale == scale.Log {
		p.X.Scale = svgaxis.LogScale{}
		p.X.Tick.Marker = svgaxis.LogTicks{}
	}
	p.Add(plotter.NewGrid())

	return p.Save(vg.Length(cfg.Width), vg.Length(cfg.Height), *output)
}
