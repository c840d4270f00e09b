package geometry

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// DefaultBufferSteps controls circular-arc tessellation at corners when
// the caller does not specify a step count.
const DefaultBufferSteps = 64

// Buffer returns a polygon approximating the Minkowski expansion of the
// feature by radiusKm. The approximation places steps circle points
// around every input vertex and takes the convex hull, which is exact
// for convex inputs and conservative (slightly over-covering) for
// concave ones. Returns ErrGeometry when radiusKm <= 0 or the feature
// has no coordinates.
func Buffer(f Feature, radiusKm float64, steps int) (Feature, error) {
	if radiusKm <= 0 {
		return Feature{}, eris.Wrapf(ErrGeometry, "buffer: radius must be positive, got %g", radiusKm)
	}
	if steps <= 0 {
		steps = DefaultBufferSteps
	}

	verts := coords(f.Geometry)
	if len(verts) == 0 {
		return Feature{}, eris.Wrap(ErrGeometry, "buffer: feature has no coordinates")
	}

	pts := make([]geom.Coord, 0, len(verts)*steps)
	for _, v := range verts {
		// Meters-per-degree shrinks with latitude for longitude only.
		dLat := radiusKm / 111.31949
		cosLat := math.Cos(v[1] * math.Pi / 180)
		if cosLat < 1e-6 {
			cosLat = 1e-6
		}
		dLon := radiusKm / (111.31949 * cosLat)
		for i := 0; i < steps; i++ {
			theta := 2 * math.Pi * float64(i) / float64(steps)
			pts = append(pts, geom.Coord{
				v[0] + dLon*math.Cos(theta),
				v[1] + dLat*math.Sin(theta),
			})
		}
	}

	hull := convexHull(pts)
	if len(hull) < 3 {
		return Feature{}, eris.Wrap(ErrGeometry, "buffer: degenerate hull")
	}

	ring := CloseRing(hull)
	poly := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{ring})
	return Feature{Geometry: poly, Name: f.Name, Properties: f.Properties}, nil
}

// convexHull computes the convex hull of a point set with Andrew's
// monotone chain, returned counter-clockwise without the closing point.
func convexHull(pts []geom.Coord) []geom.Coord {
	if len(pts) < 3 {
		return pts
	}

	sorted := make([]geom.Coord, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i][0] != sorted[j][0] {
			return sorted[i][0] < sorted[j][0]
		}
		return sorted[i][1] < sorted[j][1]
	})

	var lower []geom.Coord
	for _, p := range sorted {
		for len(lower) >= 2 && direction(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []geom.Coord
	for i := len(sorted) - 1; i >= 0; i-- {
		p := sorted[i]
		for len(upper) >= 2 && direction(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}
