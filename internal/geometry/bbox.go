package geometry

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// BoundingBox computes the envelope of every coordinate in the
// collection. Returns ErrEmptyInput when no feature contributes a
// coordinate.
func BoundingBox(fc FeatureCollection) (BBox, error) {
	west, south := math.Inf(1), math.Inf(1)
	east, north := math.Inf(-1), math.Inf(-1)
	found := false

	for _, f := range fc.Features {
		for _, c := range coords(f.Geometry) {
			found = true
			west = math.Min(west, c[0])
			east = math.Max(east, c[0])
			south = math.Min(south, c[1])
			north = math.Max(north, c[1])
		}
	}

	if !found {
		return BBox{}, eris.Wrap(ErrEmptyInput, "bounding box")
	}

	return BBox{
		West:   west,
		South:  south,
		East:   east,
		North:  north,
		Center: geom.Coord{(west + east) / 2, (south + north) / 2},
	}, nil
}
