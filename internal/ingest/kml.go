package ingest

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/arden-renewables/sitescope/internal/geometry"
)

// coordinatesRe matches the content of KML <coordinates> elements.
// Real-world KML exports vary too much in namespace and nesting for a
// strict schema parse to be worth it; the coordinate blocks are the
// only part the engine needs.
var coordinatesRe = regexp.MustCompile(`(?s)<coordinates[^>]*>(.*?)</coordinates>`)

// parseKML extracts every <coordinates> block and shapes each one by
// its coordinate count: one pair is a Point, two a LineString, three or
// more a closed Polygon ring.
func parseKML(data []byte) (geometry.FeatureCollection, error) {
	var fc geometry.FeatureCollection
	var dropped int

	for _, m := range coordinatesRe.FindAllSubmatch(data, -1) {
		coords, bad := parseCoordinateBlock(string(m[1]))
		dropped += bad
		if len(coords) == 0 {
			continue
		}

		var g geom.T
		switch len(coords) {
		case 1:
			g = geom.NewPointFlat(geom.XY, []float64{coords[0][0], coords[0][1]})
		case 2:
			g = geom.NewLineStringFlat(geom.XY, flatten(coords))
		default:
			ring := geometry.CloseRing(coords)
			g = geom.NewPolygonFlat(geom.XY, flatten(ring), []int{len(ring) * 2})
		}
		fc.Features = append(fc.Features, geometry.Feature{Geometry: g})
	}

	if dropped > 0 {
		zap.L().Warn("ingest: dropped invalid KML coordinate tuples", zap.Int("dropped", dropped))
	}
	if len(fc.Features) == 0 {
		return fc, eris.Wrap(ErrParse, "kml")
	}
	return fc, nil
}

// parseCoordinateBlock splits a KML coordinate block into lon/lat
// pairs. Tuples are whitespace-separated "lon,lat[,alt]" strings;
// altitude is discarded and unparseable or out-of-range tuples are
// dropped, counted in the second return value.
func parseCoordinateBlock(block string) ([]geom.Coord, int) {
	var coords []geom.Coord
	var dropped int
	for _, tuple := range strings.Fields(block) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			dropped++
			continue
		}
		lon, errLon := strconv.ParseFloat(parts[0], 64)
		lat, errLat := strconv.ParseFloat(parts[1], 64)
		if errLon != nil || errLat != nil || !geometry.ValidCoord(lon, lat) {
			dropped++
			continue
		}
		coords = append(coords, geom.Coord{lon, lat})
	}
	return coords, dropped
}

// parseKMZ unpacks the zip container and parses the first .kml entry.
func parseKMZ(data []byte) (geometry.FeatureCollection, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return geometry.FeatureCollection{}, eris.Wrap(err, "ingest: open kmz")
	}
	for _, f := range r.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".kml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return geometry.FeatureCollection{}, eris.Wrapf(err, "ingest: open kmz entry %s", f.Name)
		}
		kml, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return geometry.FeatureCollection{}, eris.Wrapf(err, "ingest: read kmz entry %s", f.Name)
		}
		return parseKML(kml)
	}
	return geometry.FeatureCollection{}, eris.Wrap(ErrParse, "kmz: no .kml entry")
}

func flatten(coords []geom.Coord) []float64 {
	flat := make([]float64, 0, len(coords)*2)
	for _, c := range coords {
		flat = append(flat, c[0], c[1])
	}
	return flat
}
