package geometry

import "github.com/twpayne/go-geom"

// Proximity returns the distance in meters from the boundary to the
// geometry, and whether the two intersect. Intersecting geometries are
// at distance zero.
func Proximity(boundary, g geom.T) (meters float64, intersects bool) {
	if Intersects(boundary, g) {
		return 0, true
	}
	return DistanceBetween(boundary, g), false
}
