package geometry

import (
	"math"

	"github.com/twpayne/go-geom"
)

// Unit selects the output unit for great-circle distances.
type Unit string

const (
	Kilometers Unit = "kilometers"
	Meters     Unit = "meters"
	Miles      Unit = "miles"
)

const earthRadiusKm = 6371.0088

// Distance returns the great-circle (haversine) distance between two
// lon/lat coordinates. Symmetric within floating-point tolerance.
func Distance(a, b geom.Coord, unit Unit) float64 {
	la1 := a[1] * math.Pi / 180
	la2 := b[1] * math.Pi / 180
	dLat := (b[1] - a[1]) * math.Pi / 180
	dLon := (b[0] - a[0]) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	km := 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))

	switch unit {
	case Meters:
		return km * 1000
	case Miles:
		return km * 0.621371192
	default:
		return km
	}
}

// pointSegmentMeters returns the distance in meters from p to the segment
// a-b using an equirectangular projection centered on the segment. The
// approximation is well within tolerance at the sub-degree scales the
// evaluator works with.
func pointSegmentMeters(p, a, b geom.Coord) float64 {
	midLat := (a[1] + b[1]) / 2 * math.Pi / 180
	kx := math.Cos(midLat) * 111319.49
	const ky = 111319.49

	px := (p[0] - a[0]) * kx
	py := (p[1] - a[1]) * ky
	bx := (b[0] - a[0]) * kx
	by := (b[1] - a[1]) * ky

	segLen2 := bx*bx + by*by
	if segLen2 == 0 {
		return Distance(p, a, Meters)
	}

	t := (px*bx + py*by) / segLen2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	dx := px - t*bx
	dy := py - t*by
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceBetween returns the minimum distance in meters between two
// geometries, considering every vertex of each against every edge of the
// other. Returns +Inf when either geometry has no coordinates, so an
// empty geometry can never read as touching.
func DistanceBetween(a, b geom.T) float64 {
	ca, cb := coords(a), coords(b)
	if len(ca) == 0 || len(cb) == 0 {
		return math.Inf(1)
	}

	min := math.Inf(1)
	min = math.Min(min, minVertexToEdges(ca, cb))
	min = math.Min(min, minVertexToEdges(cb, ca))
	return min
}

// minVertexToEdges computes the minimum distance from any point in pts to
// the polyline through edges. Single-coordinate edge lists degrade to
// point-to-point haversine.
func minVertexToEdges(pts, edges []geom.Coord) float64 {
	min := math.Inf(1)
	if len(edges) == 1 {
		for _, p := range pts {
			min = math.Min(min, Distance(p, edges[0], Meters))
		}
		return min
	}
	for _, p := range pts {
		for i := 0; i+1 < len(edges); i++ {
			min = math.Min(min, pointSegmentMeters(p, edges[i], edges[i+1]))
		}
	}
	return min
}
