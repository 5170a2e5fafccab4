// Command gridplan plans a path on a map_server map and prints it.
//
//	gridplan -map office.yaml -start 3,4 -goal 40,22
//	gridplan -map office.yaml -world -start 0.5,1.2 -goal 6.0,3.3 -format yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/golang/geo/r2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridplan/costmap"
	"github.com/katalvlaran/gridplan/gridmap"
	"github.com/katalvlaran/gridplan/node"
	"github.com/katalvlaran/gridplan/planner"
)

func main() {
	var (
		mapFile    = flag.String("map", "", "map YAML file (map_server format)")
		configFile = flag.String("config", "", "planner YAML config (optional)")
		startArg   = flag.String("start", "", "start as x,y")
		goalArg    = flag.String("goal", "", "goal as x,y")
		world      = flag.Bool("world", false, "interpret -start and -goal as world coordinates")
		format     = flag.String("format", "text", "output format: text or yaml")
		logMode    = flag.String("log", "none", "logging: none, dev or prod")
		timeout    = flag.Duration("timeout", 0, "abort planning after this long (0 = no limit)")
	)
	flag.Parse()

	if *mapFile == "" || *startArg == "" || *goalArg == "" {
		fmt.Fprintf(os.Stderr, "Error: -map, -start and -goal are required\n")
		flag.Usage()
		os.Exit(2)
	}

	logger, err := newLogger(*logMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	req := request{
		mapFile:    *mapFile,
		configFile: *configFile,
		start:      *startArg,
		goal:       *goalArg,
		world:      *world,
		format:     *format,
	}
	if err := run(ctx, logger, req, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, planner.ErrNoPathFound) {
			os.Exit(3)
		}
		os.Exit(1)
	}
}

type request struct {
	mapFile    string
	configFile string
	start      string
	goal       string
	world      bool
	format     string
}

// output is the yaml form of a planned path.
type output struct {
	Start gridmap.Point `yaml:"start"`
	Goal  gridmap.Point `yaml:"goal"`
	Cells [][2]int      `yaml:"cells"`
	World [][2]float64  `yaml:"world"`
}

func run(ctx context.Context, logger *zap.Logger, req request, w io.Writer) error {
	if req.format != "text" && req.format != "yaml" {
		return fmt.Errorf("unknown format %q", req.format)
	}
	m, err := costmap.Load(req.mapFile)
	if err != nil {
		return err
	}
	cfg := planner.DefaultConfig()
	if req.configFile != "" {
		if cfg, err = planner.LoadConfig(req.configFile); err != nil {
			return err
		}
	}
	p, err := planner.New(append(cfg.Options(), planner.WithLogger(logger))...)
	if err != nil {
		return err
	}

	start, err := parsePoint(m.Meta, req.start, req.world)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	goal, err := parsePoint(m.Meta, req.goal, req.world)
	if err != nil {
		return fmt.Errorf("goal: %w", err)
	}

	n := node.New(p, nil, node.WithLogger(logger))
	n.SetMap(m)
	n.SetPose(start)
	began := time.Now()
	path, err := n.PlanTo(ctx, goal)
	if err != nil {
		return err
	}
	logger.Info("planned", zap.Int("cells", len(path.Cells)), zap.Duration("took", time.Since(began)))

	return write(w, req.format, path)
}

// parsePoint reads "x,y". Grid coordinates are converted to cell centres so
// every request goes through the same world-frame node API.
func parsePoint(meta costmap.Meta, s string, world bool) (r2.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return r2.Point{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err := errors.Join(errX, errY); err != nil {
		return r2.Point{}, err
	}
	if world {
		return r2.Point{X: x, Y: y}, nil
	}
	if x != float64(int(x)) || y != float64(int(y)) {
		return r2.Point{}, fmt.Errorf("grid coordinates must be integers, got %q", s)
	}
	cell := gridmap.Pt(int(x), int(y))
	if cell.X < 0 || cell.Y < 0 || cell.X >= meta.Width || cell.Y >= meta.Height {
		return r2.Point{}, fmt.Errorf("cell %v outside %d×%d map", cell, meta.Width, meta.Height)
	}

	return meta.GridToWorld(cell), nil
}

func write(w io.Writer, format string, path node.Path) error {
	if format == "yaml" {
		out := output{Start: path.Cells[0], Goal: path.Cells[len(path.Cells)-1]}
		for i, c := range path.Cells {
			out.Cells = append(out.Cells, [2]int{c.X, c.Y})
			out.World = append(out.World, [2]float64{path.Points[i].X, path.Points[i].Y})
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}

		return enc.Close()
	}

	for i, c := range path.Cells {
		if _, err := fmt.Fprintf(w, "%d %d\t%.3f %.3f\n", c.X, c.Y, path.Points[i].X, path.Points[i].Y); err != nil {
			return err
		}
	}

	return nil
}

func newLogger(mode string) (*zap.Logger, error) {
	switch mode {
	case "none", "":
		return zap.NewNop(), nil
	case "dev":
		return zap.NewDevelopment()
	case "prod":
		return zap.NewProduction()
	}

	return nil, fmt.Errorf("unknown log mode %q", mode)
}
