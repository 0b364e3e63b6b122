// scattertool is a CLI for inspecting point sets and the structures built
// from them: packed grids and level-of-detail tables.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Faultbox/scatter-gl/internal/dataset"
	"github.com/Faultbox/scatter-gl/internal/engine/capture"
	"github.com/Faultbox/scatter-gl/internal/logger"
	"github.com/Faultbox/scatter-gl/internal/tui"
	"github.com/Faultbox/scatter-gl/pkg/bounds"
	"github.com/Faultbox/scatter-gl/pkg/gridpack"
	"github.com/Faultbox/scatter-gl/pkg/lod"
)

var (
	labelStyle  = lipgloss.NewStyle().Bold(true).Width(10)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0064C8")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{Level: "warn", Console: true}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "pack":
		cmdPack(args)
	case "lod":
		cmdLOD(args)
	case "preview":
		cmdPreview(args)
	case "gen":
		cmdGen(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scattertool - point set packing and level-of-detail utility

Usage:
  scattertool <command> [options] <input>

Input is a .csv or .bin file, or a generator: gaussian:N or uniform:N.

Commands:
  info <input>                       Show point count and bounds
  pack [-size S] [-o grid.bmp] <input>
                                     Pack into an SxS grid and report occupancy
  lod [-base B] [-levels L] <input>  Print the level-of-detail table
  preview [-cluster] <input>         Interactive terminal preview
  gen [-n N] [-seed S] -o out.bin    Write gaussian points as float32 pairs

Examples:
  scattertool info cities.csv
  scattertool pack -size 256 -o grid.png gaussian:100000
  scattertool lod uniform:1000000
  scattertool preview -cluster cities.csv`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// loadInput resolves a file path or a generator such as gaussian:10000.
func loadInput(arg string, seed int64) (*dataset.Set, error) {
	name, count, ok := strings.Cut(arg, ":")
	if ok && (name == "gaussian" || name == "uniform") {
		n, err := strconv.Atoi(count)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid point count %q", count)
		}
		if name == "uniform" {
			return dataset.Uniform(n, seed, bounds.New(-10, -10, 10, 10)), nil
		}
		return dataset.Gaussian(n, seed), nil
	}
	return dataset.LoadFile(arg)
}

func mustLoad(fs *flag.FlagSet, usage string, seed int64) *dataset.Set {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scattertool "+usage)
		os.Exit(1)
	}
	set, err := loadInput(fs.Arg(0), seed)
	if err != nil {
		fail(err)
	}
	return set
}

func row(label string, value any) {
	fmt.Println(labelStyle.Render(label) + fmt.Sprint(value))
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	seed := fs.Int64("seed", 1, "Generator seed")
	fs.Parse(args)

	set := mustLoad(fs, "info <input>", *seed)

	row("Source:", set.Name)
	row("Points:", set.Len())
	row("Skipped:", set.Skipped)
	if set.Box.Valid() {
		row("Bounds:", set.Box)
		row("Extent:", fmt.Sprintf("%g x %g", set.Box.Width(), set.Box.Height()))
	}
}

func cmdPack(args []string) {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	size := fs.Int("size", 256, "Grid side (power of two)")
	out := fs.String("o", "", "Write the grid texture to a .png or .bmp file")
	heatmap := fs.Bool("heatmap", false, "Write a density heatmap instead of the raw texture")
	seed := fs.Int64("seed", 1, "Generator seed")
	fs.Parse(args)

	set := mustLoad(fs, "pack [-size S] [-o grid.bmp] <input>", *seed)

	start := time.Now()
	res, err := gridpack.Packer{Size: *size}.Pack(set.Positions, set.Box)
	if err != nil {
		fail(err)
	}
	took := time.Since(start)

	cells := res.Size * res.Size
	row("Grid:", fmt.Sprintf("%dx%d", res.Size, res.Size))
	row("Points:", set.Len())
	row("Binned:", res.Total())
	row("Occupied:", fmt.Sprintf("%d (%.1f%%)", res.Occupied(), 100*float64(res.Occupied())/float64(cells)))
	row("Max/cell:", res.MaxCount())
	row("Skipped:", res.Skipped)
	row("Took:", took.Round(time.Microsecond))

	if *out == "" {
		return
	}
	img := res.Image()
	if *heatmap {
		img = res.Heatmap()
	}
	if err := capture.WriteImage(*out, img); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote: %s\n", filepath.Clean(*out))
}

func cmdLOD(args []string) {
	fs := flag.NewFlagSet("lod", flag.ExitOnError)
	base := fs.Int("base", lod.DefaultBase, "Grid size of the coarsest level")
	levels := fs.Int("levels", lod.DefaultMaxLevels, "Maximum number of grid levels")
	seed := fs.Int64("seed", 1, "Generator seed")
	fs.Parse(args)

	set := mustLoad(fs, "lod [-base B] [-levels L] <input>", *seed)

	start := time.Now()
	l := lod.Build(set.Positions, lod.Options{Base: *base, MaxLevels: *levels})
	took := time.Since(start)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("LEVEL", "GRID", "PIXEL SIZE", "POINTS", "SHARE").
		StyleFunc(func(r, c int) lipgloss.Style {
			if r == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i, lv := range l.Levels {
		grid := "lossless"
		if lv.GridSize > 0 {
			grid = strconv.Itoa(lv.GridSize)
		}
		t.Row(
			strconv.Itoa(i),
			grid,
			fmt.Sprintf("%.3e", lv.PixelSize),
			strconv.Itoa(lv.Range.Len()),
			fmt.Sprintf("%.1f%%", 100*float64(lv.Range.Len())/float64(max(l.Count(), 1))),
		)
	}

	row("Points:", set.Len())
	row("Indexed:", l.Count())
	row("Skipped:", l.Skipped)
	row("Took:", took.Round(time.Microsecond))
	fmt.Println(t)
}

func cmdPreview(args []string) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	cluster := fs.Bool("cluster", false, "Start in packed-grid mode")
	maxGrid := fs.Int("max-grid", 1024, "Largest packed grid side")
	seed := fs.Int64("seed", 1, "Generator seed")
	fs.Parse(args)

	set := mustLoad(fs, "preview [-cluster] <input>", *seed)

	// Console logging would tear the alternate screen.
	if err := logger.Init(logger.Config{Level: "error"}); err != nil {
		fail(err)
	}

	err := tui.Run(set, tui.Options{
		Cluster:     *cluster,
		MaxGridSize: *maxGrid,
		LOD:         lod.DefaultOptions(),
	})
	if err != nil {
		fail(err)
	}
}

func cmdGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	n := fs.Int("n", 10000, "Number of points")
	seed := fs.Int64("seed", 1, "Generator seed")
	out := fs.String("o", "", "Output .bin file")
	fs.Parse(args)

	if *out == "" {
		fmt.Fprintln(os.Stderr, "Usage: scattertool gen [-n N] [-seed S] -o out.bin")
		os.Exit(1)
	}

	set := dataset.Gaussian(*n, *seed)
	f, err := os.Create(*out)
	if err != nil {
		fail(err)
	}
	if err := dataset.WriteBinary(f, set.Positions); err != nil {
		f.Close()
		fail(err)
	}
	if err := f.Close(); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %d points to %s\n", set.Len(), *out)
}
