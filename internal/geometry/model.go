// Package geometry provides the canonical spatial model and the pure
// geometric operations the constraint engine is built on. Geometries are
// represented with go-geom types in lon/lat (EPSG:4326) order.
package geometry

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// ErrGeometry indicates malformed or degenerate geometry input to a
// spatial operation.
var ErrGeometry = eris.New("geometry: invalid geometry")

// ErrEmptyInput indicates an operation over zero features.
var ErrEmptyInput = eris.New("geometry: empty input")

// IsGeometryErr reports whether err wraps ErrGeometry.
func IsGeometryErr(err error) bool { return eris.Is(err, ErrGeometry) }

// IsEmptyInputErr reports whether err wraps ErrEmptyInput.
func IsEmptyInputErr(err error) bool { return eris.Is(err, ErrEmptyInput) }

// Feature wraps a geometry with a display name and free-form properties.
type Feature struct {
	Geometry   geom.T         `json:"geometry"`
	Name       string         `json:"name,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// FeatureCollection is an ordered list of features.
type FeatureCollection struct {
	Features []Feature `json:"features"`
}

// BBox is a geographic bounding box with a derived center point.
type BBox struct {
	West   float64    `json:"west"`
	South  float64    `json:"south"`
	East   float64    `json:"east"`
	North  float64    `json:"north"`
	Center geom.Coord `json:"center"` // [lon, lat]
}

// ValidCoord reports whether lon/lat fall inside the WGS84 domain.
// Coordinates failing this check are dropped at parse time and never
// reach the evaluator.
func ValidCoord(lon, lat float64) bool {
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

// CloseRing appends the first coordinate when a ring is not already
// closed. Polygon rings are implicitly closed before use everywhere in
// this package.
func CloseRing(ring []geom.Coord) []geom.Coord {
	if len(ring) < 3 {
		return ring
	}
	first, last := ring[0], ring[len(ring)-1]
	if first[0] == last[0] && first[1] == last[1] {
		return ring
	}
	out := make([]geom.Coord, 0, len(ring)+1)
	out = append(out, ring...)
	out = append(out, geom.Coord{first[0], first[1]})
	return out
}

// coords flattens any geometry into its coordinate list.
func coords(g geom.T) []geom.Coord {
	if g == nil {
		return nil
	}
	flat := g.FlatCoords()
	stride := g.Stride()
	if stride < 2 {
		return nil
	}
	out := make([]geom.Coord, 0, len(flat)/stride)
	for i := 0; i+1 < len(flat); i += stride {
		out = append(out, geom.Coord{flat[i], flat[i+1]})
	}
	return out
}

// polygons extracts the polygon members of a geometry. A Polygon yields
// itself; a MultiPolygon yields each member. Anything else yields nil.
func polygons(g geom.T) []*geom.Polygon {
	switch t := g.(type) {
	case *geom.Polygon:
		return []*geom.Polygon{t}
	case *geom.MultiPolygon:
		out := make([]*geom.Polygon, 0, t.NumPolygons())
		for i := 0; i < t.NumPolygons(); i++ {
			out = append(out, t.Polygon(i))
		}
		return out
	default:
		return nil
	}
}
