package ingest

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

const siteKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark>
      <name>Holford Park</name>
      <Polygon><outerBoundaryIs><LinearRing>
        <coordinates>
          -2.5,53.3 -2.3,53.3 -2.3,53.5 -2.5,53.5 -2.5,53.3
        </coordinates>
      </LinearRing></outerBoundaryIs></Polygon>
    </Placemark>
  </Document>
</kml>`

func TestParse_KMLPolygon(t *testing.T) {
	fc, err := Parse("site.kml", []byte(siteKML))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	poly, ok := fc.Features[0].Geometry.(*geom.Polygon)
	require.True(t, ok, "expected a polygon, got %T", fc.Features[0].Geometry)

	ring := poly.Coords()[0]
	assert.Len(t, ring, 5)
	assert.Equal(t, ring[0], ring[len(ring)-1], "ring must be closed")
	assert.Equal(t, geom.Coord{-2.5, 53.3}, ring[0])
}

func TestParse_KMLClosesOpenRing(t *testing.T) {
	kml := `<kml><coordinates>-2.5,53.3 -2.3,53.3 -2.3,53.5</coordinates></kml>`
	fc, err := Parse("open.kml", []byte(kml))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	poly := fc.Features[0].Geometry.(*geom.Polygon)
	ring := poly.Coords()[0]
	assert.Len(t, ring, 4)
	assert.Equal(t, ring[0], ring[len(ring)-1])
}

func TestParse_KMLShapeByCount(t *testing.T) {
	kml := `<kml>
	<coordinates>-2.4,53.4</coordinates>
	<coordinates>-2.4,53.4 -2.3,53.5</coordinates>
	</kml>`
	fc, err := Parse("mixed.kml", []byte(kml))
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	assert.IsType(t, &geom.Point{}, fc.Features[0].Geometry)
	assert.IsType(t, &geom.LineString{}, fc.Features[1].Geometry)
}

func TestParse_KMLDropsBadTuples(t *testing.T) {
	kml := `<kml><coordinates>
		-2.5,53.3 garbage -2.3,notanumber 400.0,53.3 -2.3,53.5 -2.4,53.2
	</coordinates></kml>`
	fc, err := Parse("dirty.kml", []byte(kml))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	poly := fc.Features[0].Geometry.(*geom.Polygon)
	// Three valid tuples survive, plus the closing coordinate.
	assert.Len(t, poly.Coords()[0], 4)
}

func TestParse_KMLNoValidGeometry(t *testing.T) {
	_, err := Parse("empty.kml", []byte(`<kml><coordinates>junk</coordinates></kml>`))
	require.Error(t, err)
	assert.True(t, IsParseErr(err))
	assert.False(t, IsUnsupportedFormat(err))
}

func TestParse_UnsupportedExtension(t *testing.T) {
	_, err := Parse("site.docx", []byte("not geometry"))
	require.Error(t, err)
	assert.True(t, IsUnsupportedFormat(err))
	assert.False(t, IsParseErr(err))
}

func TestParse_ExtensionCaseInsensitive(t *testing.T) {
	fc, err := Parse("SITE.KML", []byte(siteKML))
	require.NoError(t, err)
	assert.Len(t, fc.Features, 1)
}

func TestParse_KMZ(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("doc.kml")
	require.NoError(t, err)
	_, err = w.Write([]byte(siteKML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	fc, err := Parse("site.kmz", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.IsType(t, &geom.Polygon{}, fc.Features[0].Geometry)
}

func TestParse_GeoJSONFeatureCollection(t *testing.T) {
	data := []byte(`{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {"name": "Holford Park"},
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[-2.5,53.3],[-2.3,53.3],[-2.3,53.5],[-2.5,53.5],[-2.5,53.3]]]
			}
		}]
	}`)
	fc, err := Parse("site.geojson", data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "Holford Park", fc.Features[0].Name)
	assert.IsType(t, &geom.Polygon{}, fc.Features[0].Geometry)
}

func TestParse_GeoJSONBareGeometry(t *testing.T) {
	data := []byte(`{"type": "Point", "coordinates": [-2.4, 53.4]}`)
	fc, err := Parse("point.json", data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.IsType(t, &geom.Point{}, fc.Features[0].Geometry)
}

func TestParse_GeoJSONOutOfRangeCoordsRejected(t *testing.T) {
	data := []byte(`{"type": "Point", "coordinates": [-2.4, 95.0]}`)
	_, err := Parse("bad.json", data)
	require.Error(t, err)
	assert.True(t, IsParseErr(err))
}

func TestParse_GeoJSONMalformed(t *testing.T) {
	_, err := Parse("broken.json", []byte(`{"type": "FeatureCollection", "features": [`))
	require.Error(t, err)
}

func writePointShapefile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "substations.shp")
	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	w.Write(&shp.Point{X: -2.35, Y: 53.41})
	w.Write(&shp.Point{X: -2.45, Y: 53.32})
	w.Close()
	return path
}

func TestParseFile_Shapefile(t *testing.T) {
	path := writePointShapefile(t, t.TempDir())

	fc, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	pt := fc.Features[0].Geometry.(*geom.Point)
	assert.InDelta(t, -2.35, pt.X(), 1e-9)
	assert.InDelta(t, 53.41, pt.Y(), 1e-9)
}

func TestParse_ShapefileZip(t *testing.T) {
	dir := t.TempDir()
	writePointShapefile(t, dir)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		w, err := zw.Create(e.Name())
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	fc, err := Parse("substations.zip", buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, fc.Features, 2)
}

func TestParse_ZipWithoutShapefile(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("nothing spatial here"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Parse("upload.zip", buf.Bytes())
	require.Error(t, err)
	assert.True(t, IsParseErr(err))
}
