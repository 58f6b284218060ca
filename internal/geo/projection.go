package geo

import (
	"math"

	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Zoom limits and step.
const (
	MinZoom  = 0.5
	MaxZoom  = 2.0
	ZoomStep = 0.2
)

// ClampZoom clamps z to [MinZoom, MaxZoom], rounding to one decimal.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	z = math.Round(z*10) / 10
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// Projection maps coordinates onto a width x height character grid.
// Terminal cells are about twice as tall as wide, which the caller compensates for by
// choosing the grid size; the projection itself is a plain equirectangular fit.
type Projection struct {
	bound  orb.Bound
	Width  int
	Height int
}

// NewProjection fits bound to the grid, zoomed around its center.
func NewProjection(bound orb.Bound, width, height int, zoom float64) Projection {
	zoom = ClampZoom(zoom)
	center := bound.Center()
	halfW := (bound.Max[0] - bound.Min[0]) / 2 / zoom
	halfH := (bound.Max[1] - bound.Min[1]) / 2 / zoom
	return Projection{
		bound: orb.Bound{
			Min: orb.Point{center[0] - halfW, center[1] - halfH},
			Max: orb.Point{center[0] + halfW, center[1] + halfH},
		},
		Width:  max(width, 1),
		Height: max(height, 1),
	}
}

// Bound returns the visible area.
func (p Projection) Bound() orb.Bound {
	return p.bound
}

// Cell returns the grid cell for a point; ok is false when it falls outside the view.
func (p Projection) Cell(pt orb.Point) (col, row int, ok bool) {
	if !p.bound.Contains(pt) {
		return 0, 0, false
	}
	w := p.bound.Max[0] - p.bound.Min[0]
	h := p.bound.Max[1] - p.bound.Min[1]
	if w == 0 || h == 0 {
		return p.Width / 2, p.Height / 2, true
	}
	col = int((pt[0] - p.bound.Min[0]) / w * float64(p.Width))
	row = int((p.bound.Max[1] - pt[1]) / h * float64(p.Height))
	return min(col, p.Width-1), min(row, p.Height-1), true
}

// Center returns the coordinates at the center of a cell.
func (p Projection) Center(col, row int) orb.Point {
	w := p.bound.Max[0] - p.bound.Min[0]
	h := p.bound.Max[1] - p.bound.Min[1]
	return orb.Point{
		p.bound.Min[0] + (float64(col)+0.5)/float64(p.Width)*w,
		p.bound.Max[1] - (float64(row)+0.5)/float64(p.Height)*h,
	}
}

// Mask marks the cells whose centers fall inside any boundary of the overlay.
// A nil overlay yields an all-false mask.
func (p Projection) Mask(o *Overlay) [][]bool {
	mask := make([][]bool, p.Height)
	for row := range mask {
		mask[row] = make([]bool, p.Width)
	}
	if o.Len() == 0 {
		return mask
	}
	for row := 0; row < p.Height; row++ {
		for col := 0; col < p.Width; col++ {
			pt := p.Center(col, row)
			if !o.Bound.Contains(pt) {
				continue
			}
			for _, b := range o.Boundaries {
				if b.Contains(pt) {
					mask[row][col] = true
					break
				}
			}
		}
	}
	return mask
}

// Point converts region coordinates to an orb point.
func Point(c model.Coordinates) orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// RegionBound is the bound of the region markers padded by margin degrees on every side.
func RegionBound(regions []model.Region, margin float64) orb.Bound {
	if len(regions) == 0 {
		return orb.Bound{}
	}
	b := Point(regions[0].Coordinates).Bound()
	for _, r := range regions[1:] {
		b = b.Extend(Point(r.Coordinates))
	}
	return b.Pad(margin)
}

// ViewBound picks the map area: the overlay bound when present, else the padded markers.
func ViewBound(o *Overlay, regions []model.Region) orb.Bound {
	if o.Len() > 0 {
		return o.Bound
	}
	return RegionBound(regions, 0.5)
}

// Nearest returns the region closest to the coordinates by great-circle distance, with the
// distance in kilometres.
func Nearest(regions []model.Region, lat, lng float64) (model.Region, float64, bool) {
	if len(regions) == 0 {
		return model.Region{}, 0, false
	}
	target := orb.Point{lng, lat}
	best := regions[0]
	bestDist := geo.Distance(target, Point(best.Coordinates))
	for _, r := range regions[1:] {
		if d := geo.Distance(target, Point(r.Coordinates)); d < bestDist {
			best, bestDist = r, d
		}
	}
	return best, bestDist / 1000, true
}
