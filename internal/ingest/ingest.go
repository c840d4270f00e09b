// Package ingest parses uploaded geometry files (KML, KMZ, GeoJSON,
// zipped shapefiles) into the canonical feature model. Bad records are
// dropped, not fatal: a file fails to parse only when it yields zero
// valid geometries.
package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/arden-renewables/sitescope/internal/geometry"
)

// ErrUnsupportedFormat indicates a file extension no parser handles.
var ErrUnsupportedFormat = eris.New("ingest: unsupported file format")

// ErrParse indicates a recognized format that produced no valid
// geometry. Deliberately distinct from ErrUnsupportedFormat so upload
// responses can tell the user which problem they have.
var ErrParse = eris.New("ingest: no valid geometry found")

// IsUnsupportedFormat reports whether err wraps ErrUnsupportedFormat.
func IsUnsupportedFormat(err error) bool { return eris.Is(err, ErrUnsupportedFormat) }

// IsParseErr reports whether err wraps ErrParse.
func IsParseErr(err error) bool { return eris.Is(err, ErrParse) }

// Parse dispatches on the file extension of name, case-insensitively.
// The data is the full file content; name is only consulted for its
// extension.
func Parse(name string, data []byte) (geometry.FeatureCollection, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".kml":
		return parseKML(data)
	case ".kmz":
		return parseKMZ(data)
	case ".geojson", ".json":
		return parseGeoJSON(data)
	case ".zip":
		return parseShapefileZip(data)
	case ".shp":
		return parseShapefileBytes(data)
	default:
		return geometry.FeatureCollection{}, eris.Wrapf(ErrUnsupportedFormat, "%s", filepath.Ext(name))
	}
}

// ParseFile reads and parses a geometry file from disk.
func ParseFile(path string) (geometry.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return geometry.FeatureCollection{}, eris.Wrapf(err, "ingest: read %s", path)
	}
	return Parse(filepath.Base(path), data)
}
