package geometry

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// Union merges overlapping or adjacent polygon features into one
// feature. A single input is returned unchanged. Disjoint inputs become
// a MultiPolygon; connected groups are merged via their convex hull (a
// documented approximation — exact polygon clipping is out of scope).
// Non-polygonal input fails with ErrGeometry.
func Union(features []Feature) (Feature, error) {
	if len(features) == 0 {
		return Feature{}, eris.Wrap(ErrEmptyInput, "union")
	}

	var polys []*geom.Polygon
	for _, f := range features {
		ps := polygons(f.Geometry)
		if ps == nil {
			return Feature{}, eris.Wrapf(ErrGeometry, "union: non-polygonal input %T", f.Geometry)
		}
		polys = append(polys, ps...)
	}

	if len(features) == 1 {
		return features[0], nil
	}
	if len(polys) == 0 {
		return Feature{}, eris.Wrap(ErrGeometry, "union: no polygon members")
	}

	groups := connectedGroups(polys)

	merged := make([][][]geom.Coord, 0, len(groups))
	for _, group := range groups {
		if len(group) == 1 {
			merged = append(merged, closedPolygonCoords(group[0]))
			continue
		}
		var pts []geom.Coord
		for _, p := range group {
			pts = append(pts, coords(p)...)
		}
		hull := convexHull(pts)
		if len(hull) < 3 {
			return Feature{}, eris.Wrap(ErrGeometry, "union: degenerate merged hull")
		}
		merged = append(merged, [][]geom.Coord{CloseRing(hull)})
	}

	name := features[0].Name
	if len(merged) == 1 {
		poly := geom.NewPolygon(geom.XY).MustSetCoords(merged[0])
		return Feature{Geometry: poly, Name: name}, nil
	}

	mp := geom.NewMultiPolygon(geom.XY).MustSetCoords(merged)
	return Feature{Geometry: mp, Name: name}, nil
}

// connectedGroups partitions polygons into groups whose members
// transitively intersect one another.
func connectedGroups(polys []*geom.Polygon) [][]*geom.Polygon {
	n := len(polys)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if Intersects(polys[i], polys[j]) {
				parent[find(i)] = find(j)
			}
		}
	}

	byRoot := make(map[int][]*geom.Polygon)
	order := make([]int, 0, n)
	for i, p := range polys {
		r := find(i)
		if _, seen := byRoot[r]; !seen {
			order = append(order, r)
		}
		byRoot[r] = append(byRoot[r], p)
	}

	groups := make([][]*geom.Polygon, 0, len(order))
	for _, r := range order {
		groups = append(groups, byRoot[r])
	}
	return groups
}

func closedPolygonCoords(p *geom.Polygon) [][]geom.Coord {
	rings := p.Coords()
	out := make([][]geom.Coord, 0, len(rings))
	for _, r := range rings {
		out = append(out, CloseRing(r))
	}
	return out
}
