package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twpayne/go-geom"
)

func squarePolygon() *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{-2.5, 53.3}, {-2.3, 53.3}, {-2.3, 53.5}, {-2.5, 53.5}, {-2.5, 53.3},
	}})
}

func TestPointInPolygon_Inside(t *testing.T) {
	assert.True(t, PointInPolygon(geom.Coord{-2.4, 53.4}, squarePolygon()))
}

func TestPointInPolygon_Outside(t *testing.T) {
	assert.False(t, PointInPolygon(geom.Coord{-2.0, 53.4}, squarePolygon()))
}

func TestPointInPolygon_BoundaryCountsAsInside(t *testing.T) {
	// Closed-region semantics: vertices and edge points are inside.
	assert.True(t, PointInPolygon(geom.Coord{-2.5, 53.3}, squarePolygon()))
	assert.True(t, PointInPolygon(geom.Coord{-2.4, 53.3}, squarePolygon()))
}

func TestPointInPolygon_Hole(t *testing.T) {
	poly := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{
		{{-2.5, 53.3}, {-2.3, 53.3}, {-2.3, 53.5}, {-2.5, 53.5}, {-2.5, 53.3}},
		{{-2.45, 53.35}, {-2.35, 53.35}, {-2.35, 53.45}, {-2.45, 53.45}, {-2.45, 53.35}},
	})

	assert.False(t, PointInPolygon(geom.Coord{-2.4, 53.4}, poly), "inside the hole")
	assert.True(t, PointInPolygon(geom.Coord{-2.32, 53.4}, poly), "between hole and outer ring")
}

func TestPointInPolygon_UnclosedRing(t *testing.T) {
	// Rings missing the closing coordinate are closed implicitly.
	poly := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{-2.5, 53.3}, {-2.3, 53.3}, {-2.3, 53.5}, {-2.5, 53.5},
	}})
	assert.True(t, PointInPolygon(geom.Coord{-2.4, 53.4}, poly))
}

func TestIntersects_OverlappingPolygons(t *testing.T) {
	a := squarePolygon()
	b := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{-2.4, 53.4}, {-2.2, 53.4}, {-2.2, 53.6}, {-2.4, 53.6}, {-2.4, 53.4},
	}})

	assert.True(t, Intersects(a, b))
	assert.True(t, Intersects(b, a))
}

func TestIntersects_Disjoint(t *testing.T) {
	a := squarePolygon()
	b := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{-1.5, 52.3}, {-1.3, 52.3}, {-1.3, 52.5}, {-1.5, 52.5}, {-1.5, 52.3},
	}})

	assert.False(t, Intersects(a, b))
}

func TestIntersects_CrossingEdgesNoContainedVertex(t *testing.T) {
	// A long thin strip crossing the square: no vertex of either lies
	// inside the other, only edges cross.
	strip := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{-2.6, 53.39}, {-2.2, 53.39}, {-2.2, 53.41}, {-2.6, 53.41}, {-2.6, 53.39},
	}})

	assert.True(t, Intersects(squarePolygon(), strip))
}

func TestPointInGeometry_MultiPolygon(t *testing.T) {
	mp := geom.NewMultiPolygon(geom.XY).MustSetCoords([][][]geom.Coord{
		{{{-2.5, 53.3}, {-2.3, 53.3}, {-2.3, 53.5}, {-2.5, 53.5}, {-2.5, 53.3}}},
		{{{-1.5, 52.3}, {-1.3, 52.3}, {-1.3, 52.5}, {-1.5, 52.5}, {-1.5, 52.3}}},
	})

	assert.True(t, PointInGeometry(geom.Coord{-1.4, 52.4}, mp))
	assert.False(t, PointInGeometry(geom.Coord{-2.0, 52.9}, mp))
}
