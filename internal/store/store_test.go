package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestConstraintFeature_Validate(t *testing.T) {
	valid := ConstraintFeature{
		Type: "sssi", Name: "Moss Fen",
		Geometry: geom.NewPointFlat(geom.XY, []float64{-2.4, 53.4}),
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		feature ConstraintFeature
		wantErr string
	}{
		{
			name:    "missing type",
			feature: ConstraintFeature{Name: "Moss Fen", Geometry: valid.Geometry},
			wantErr: "missing type",
		},
		{
			name:    "nil geometry",
			feature: ConstraintFeature{Type: "sssi", Name: "Moss Fen"},
			wantErr: "has no geometry",
		},
		{
			// Decoding empty WKB or GeoJSON yields a non-nil geometry
			// with zero coordinates; it is as unusable as a nil one.
			name:    "empty polygon geometry",
			feature: ConstraintFeature{Type: "sssi", Name: "Moss Fen", Geometry: geom.NewPolygon(geom.XY)},
			wantErr: "empty geometry",
		},
		{
			name:    "empty linestring geometry",
			feature: ConstraintFeature{Type: "sssi", Name: "Moss Fen", Geometry: geom.NewLineString(geom.XY)},
			wantErr: "empty geometry",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.feature.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
