package packer

import (
	"math"

	"github.com/uvatlas-go/uvatlas/mesh"
)

// Normalize rescales every chart's already-placed pixel-space UV into
// [0,1]^2, matching the atlas's target aspect ratio: translate the
// whole layout to the origin, scale by the longer of the two axes so
// nothing exceeds 1, then clamp away any floating-point overshoot at
// the border.
func Normalize(atlas *Atlas, opts Options) {
	if len(atlas.Charts) == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pc := range atlas.Charts {
		for _, p := range pc.Chart.UV {
			minX = math.Min(minX, p.U)
			minY = math.Min(minY, p.V)
			maxX = math.Max(maxX, p.U)
			maxY = math.Max(maxY, p.V)
		}
	}
	width := maxX - minX
	height := maxY - minY
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	aspect := opts.aspectRatio()
	var scaleX, scaleY float64
	if aspect >= 1 {
		scaleX = 1 / width
		scaleY = scaleX / aspect
		if scaleY*height > 1 {
			scaleY = 1 / height
			scaleX = scaleY * aspect
		}
	} else {
		scaleY = 1 / height
		scaleX = scaleY * aspect
		if scaleX*width > 1 {
			scaleX = 1 / width
			scaleY = scaleX / aspect
		}
	}

	for _, pc := range atlas.Charts {
		for i, p := range pc.Chart.UV {
			u := clamp01((p.U - minX) * scaleX)
			v := clamp01((p.V - minY) * scaleY)
			pc.Chart.UV[i] = mesh.Coord2{U: u, V: v}
		}
	}

	atlas.PixelWidth = width * scaleX
	atlas.PixelHeight = height * scaleY
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
