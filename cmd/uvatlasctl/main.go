// Command uvatlasctl is a thin host example around package uvatlas: it
// loads a Wavefront OBJ, runs CreateAtlas over it, and writes the
// retextured result back out as OBJ. Mesh loading/saving lives here,
// not in uvatlas or mesh, so the core has zero knowledge of any file
// format - this program is the same kind of adapter
// unixpickle/model3d's own examples/*/main.go programs are, a plain
// flag.Parse driver around a library call, not a library itself.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/unixpickle/essentials"

	"github.com/uvatlas-go/uvatlas/meshio"
	"github.com/uvatlas-go/uvatlas/uvatlas"
)

func main() {
	inPath := flag.String("in", "", "input OBJ path (required)")
	outPath := flag.String("out", "atlas.obj", "output OBJ path")
	width := flag.Int("width", 512, "atlas pixel width")
	height := flag.Int("height", 512, "atlas pixel height")
	gutter := flag.Float64("gutter", 2.0, "minimum pixel gutter between charts")
	maxStretch := flag.Float64("max-stretch", 0.16, "per-chart average stretch target")
	maxCharts := flag.Int("max-charts", 0, "maximum chart count (0 = unlimited)")
	verbose := flag.Bool("verbose", false, "log per-stage progress")
	quality := flag.Bool("quality", false, "force the exact (iterated relaxation) geodesic engine")
	fast := flag.Bool("fast", false, "force the approximate geodesic engine")
	flag.Parse()

	if *inPath == "" {
		log.Println("-in is required")
		flag.Usage()
		os.Exit(2)
	}

	in, err := os.Open(*inPath)
	essentials.Must(err)
	positions, _, indices, err := meshio.ReadOBJ(in)
	essentials.Must(in.Close())
	essentials.Must(err)
	log.Printf("loaded %s: %d vertices, %d faces", *inPath, len(positions), len(indices))

	opts := uvatlas.CreateAtlasOptions{
		Positions:      positions,
		Indices:        indices,
		Width:          *width,
		Height:         *height,
		Gutter:         *gutter,
		MaxStretch:     *maxStretch,
		MaxChartNumber: *maxCharts,
		Flags: uvatlas.Flags{
			Verbose:         *verbose,
			GeodesicQuality: *quality,
			GeodesicFast:    *fast,
		},
		Logger: log.Default(),
	}

	result, err := uvatlas.CreateAtlas(opts)
	essentials.Must(err)
	if result.Status != uvatlas.OK {
		log.Printf("completed with status %s", result.Status)
	}
	log.Printf("atlas: %d charts, %d vertices, stretch=%.4f", result.ChartCount, len(result.Positions), result.Stretch)

	out, err := os.Create(*outPath)
	essentials.Must(err)
	err = meshio.WriteOBJ(out, result.Positions, result.UVs, result.Indices)
	essentials.Must(out.Close())
	essentials.Must(err)
	log.Printf("wrote %s", *outPath)
}
