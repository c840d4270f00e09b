package ingest

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/arden-renewables/sitescope/internal/geometry"
)

// parseGeoJSON accepts a FeatureCollection, a single Feature, or a bare
// geometry object. Features whose geometry is missing or falls outside
// the WGS84 domain are dropped.
func parseGeoJSON(data []byte) (geometry.FeatureCollection, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return geometry.FeatureCollection{}, eris.Wrap(err, "ingest: geojson")
	}

	var fc geometry.FeatureCollection
	switch probe.Type {
	case "FeatureCollection":
		if err := json.Unmarshal(data, &fc); err != nil {
			return geometry.FeatureCollection{}, eris.Wrap(err, "ingest: geojson collection")
		}
	case "Feature":
		var f geometry.Feature
		if err := json.Unmarshal(data, &f); err != nil {
			return geometry.FeatureCollection{}, eris.Wrap(err, "ingest: geojson feature")
		}
		fc.Features = []geometry.Feature{f}
	default:
		var g geom.T
		if err := geojson.Unmarshal(data, &g); err != nil {
			return geometry.FeatureCollection{}, eris.Wrap(err, "ingest: geojson geometry")
		}
		fc.Features = []geometry.Feature{{Geometry: g}}
	}

	kept := fc.Features[:0]
	var dropped int
	for _, f := range fc.Features {
		if f.Geometry == nil || !allCoordsValid(f.Geometry) {
			dropped++
			continue
		}
		kept = append(kept, f)
	}
	fc.Features = kept

	if dropped > 0 {
		zap.L().Warn("ingest: dropped invalid GeoJSON features", zap.Int("dropped", dropped))
	}
	if len(fc.Features) == 0 {
		return fc, eris.Wrap(ErrParse, "geojson")
	}
	return fc, nil
}

func allCoordsValid(g geom.T) bool {
	flat := g.FlatCoords()
	stride := g.Stride()
	if stride < 2 || len(flat) == 0 {
		return false
	}
	for i := 0; i+1 < len(flat); i += stride {
		if !geometry.ValidCoord(flat[i], flat[i+1]) {
			return false
		}
	}
	return true
}
