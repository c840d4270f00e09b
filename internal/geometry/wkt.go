package geometry

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// WKT serializes a geometry for stores that speak a spatial SQL dialect.
// Coordinates are emitted as "lon lat" pairs, comma-joined within rings,
// rings comma-joined within polygons, polygons comma-joined within
// multipolygons.
func WKT(g geom.T) (string, error) {
	switch t := g.(type) {
	case *geom.Point:
		c := t.Coords()
		return fmt.Sprintf("POINT(%s)", coordPair(c)), nil

	case *geom.LineString:
		return fmt.Sprintf("LINESTRING(%s)", coordList(t.Coords())), nil

	case *geom.Polygon:
		return fmt.Sprintf("POLYGON(%s)", ringList(closedPolygonCoords(t))), nil

	case *geom.MultiLineString:
		lines := make([][]geom.Coord, 0, t.NumLineStrings())
		for i := 0; i < t.NumLineStrings(); i++ {
			lines = append(lines, t.LineString(i).Coords())
		}
		return fmt.Sprintf("MULTILINESTRING(%s)", ringList(lines)), nil

	case *geom.MultiPolygon:
		var sb strings.Builder
		sb.WriteString("MULTIPOLYGON(")
		for i := 0; i < t.NumPolygons(); i++ {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString("(")
			sb.WriteString(ringList(closedPolygonCoords(t.Polygon(i))))
			sb.WriteString(")")
		}
		sb.WriteString(")")
		return sb.String(), nil

	default:
		return "", eris.Wrapf(ErrGeometry, "wkt: unsupported geometry %T", g)
	}
}

func coordPair(c geom.Coord) string {
	return fmt.Sprintf("%g %g", c[0], c[1])
}

func coordList(cs []geom.Coord) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, coordPair(c))
	}
	return strings.Join(parts, ",")
}

func ringList(rings [][]geom.Coord) string {
	parts := make([]string, 0, len(rings))
	for _, r := range rings {
		parts = append(parts, "("+coordList(r)+")")
	}
	return strings.Join(parts, ",")
}
