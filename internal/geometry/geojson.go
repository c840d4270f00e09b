package geometry

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// MarshalJSON renders the feature as a standard GeoJSON Feature. The
// display name travels in properties under "name".
func (f Feature) MarshalJSON() ([]byte, error) {
	props := make(map[string]any, len(f.Properties)+1)
	for k, v := range f.Properties {
		props[k] = v
	}
	if f.Name != "" {
		props["name"] = f.Name
	}
	gf := geojson.Feature{Geometry: f.Geometry, Properties: props}
	return gf.MarshalJSON()
}

// UnmarshalJSON parses a GeoJSON Feature, lifting properties["name"]
// into the Name field.
func (f *Feature) UnmarshalJSON(data []byte) error {
	var gf geojson.Feature
	if err := gf.UnmarshalJSON(data); err != nil {
		return eris.Wrap(err, "geometry: unmarshal feature")
	}
	f.Geometry = gf.Geometry
	f.Properties = gf.Properties
	if name, ok := gf.Properties["name"].(string); ok {
		f.Name = name
	}
	return nil
}

// MarshalJSON renders the collection as a GeoJSON FeatureCollection.
func (fc FeatureCollection) MarshalJSON() ([]byte, error) {
	features := make([]json.RawMessage, 0, len(fc.Features))
	for _, f := range fc.Features {
		b, err := f.MarshalJSON()
		if err != nil {
			return nil, err
		}
		features = append(features, b)
	}
	return json.Marshal(map[string]any{
		"type":     "FeatureCollection",
		"features": features,
	})
}

// UnmarshalJSON parses a GeoJSON FeatureCollection.
func (fc *FeatureCollection) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return eris.Wrap(err, "geometry: unmarshal collection")
	}
	fc.Features = make([]Feature, 0, len(raw.Features))
	for _, rf := range raw.Features {
		var f Feature
		if err := f.UnmarshalJSON(rf); err != nil {
			return err
		}
		fc.Features = append(fc.Features, f)
	}
	return nil
}
