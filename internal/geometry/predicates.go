package geometry

import (
	"math"

	"github.com/twpayne/go-geom"
)

// onSegmentEps is the tolerance, in degrees, for treating a point as
// lying on a polygon edge. Roughly a centimeter at the equator.
const onSegmentEps = 1e-7

// PointInPolygon reports whether a lon/lat point lies inside a polygon,
// holes accounted for. Points on the boundary count as inside
// (closed-region semantics).
func PointInPolygon(p geom.Coord, poly *geom.Polygon) bool {
	if poly == nil || poly.NumLinearRings() == 0 {
		return false
	}

	rings := poly.Coords()
	for _, ring := range rings {
		if pointOnRing(p, CloseRing(ring)) {
			return true
		}
	}

	if !pointInRing(p, CloseRing(rings[0])) {
		return false
	}
	// Inside a hole means outside the polygon.
	for _, hole := range rings[1:] {
		if pointInRing(p, CloseRing(hole)) {
			return false
		}
	}
	return true
}

// PointInGeometry extends PointInPolygon over MultiPolygons.
func PointInGeometry(p geom.Coord, g geom.T) bool {
	for _, poly := range polygons(g) {
		if PointInPolygon(p, poly) {
			return true
		}
	}
	return false
}

// Intersects reports whether two geometries touch or overlap. Checks
// mutual vertex containment plus edge crossings, which covers every case
// the evaluator needs short of full polygon clipping.
func Intersects(a, b geom.T) bool {
	ca, cb := coords(a), coords(b)
	for _, p := range ca {
		if PointInGeometry(p, b) {
			return true
		}
	}
	for _, p := range cb {
		if PointInGeometry(p, a) {
			return true
		}
	}
	return edgesCross(ca, cb)
}

// pointInRing is standard ray casting against a closed ring.
func pointInRing(p geom.Coord, ring []geom.Coord) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > p[1]) != (yj > p[1]) &&
			p[0] < (xj-xi)*(p[1]-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// pointOnRing reports whether p lies on any segment of the ring.
func pointOnRing(p geom.Coord, ring []geom.Coord) bool {
	for i := 0; i+1 < len(ring); i++ {
		if pointOnSegment(p, ring[i], ring[i+1]) {
			return true
		}
	}
	return false
}

func pointOnSegment(p, a, b geom.Coord) bool {
	cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
	if math.Abs(cross) > onSegmentEps {
		return false
	}
	if p[0] < math.Min(a[0], b[0])-onSegmentEps || p[0] > math.Max(a[0], b[0])+onSegmentEps {
		return false
	}
	if p[1] < math.Min(a[1], b[1])-onSegmentEps || p[1] > math.Max(a[1], b[1])+onSegmentEps {
		return false
	}
	return true
}

// edgesCross reports whether any segment of a crosses any segment of b.
func edgesCross(a, b []geom.Coord) bool {
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if segmentsIntersect(a[i], a[i+1], b[j], b[j+1]) {
				return true
			}
		}
	}
	return false
}

func segmentsIntersect(p1, p2, q1, q2 geom.Coord) bool {
	d1 := direction(q1, q2, p1)
	d2 := direction(q1, q2, p2)
	d3 := direction(p1, p2, q1)
	d4 := direction(p1, p2, q2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && pointOnSegment(p1, q1, q2)) ||
		(d2 == 0 && pointOnSegment(p2, q1, q2)) ||
		(d3 == 0 && pointOnSegment(q1, p1, p2)) ||
		(d4 == 0 && pointOnSegment(q2, p1, p2))
}

func direction(a, b, c geom.Coord) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}
