package ingest

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/arden-renewables/sitescope/internal/geometry"
)

// parseShapefileZip extracts a shapefile archive to a temp directory
// and parses the first .shp it contains. The sidecar .dbf and .shx
// files land next to it so attribute lookup works.
func parseShapefileZip(data []byte) (geometry.FeatureCollection, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return geometry.FeatureCollection{}, eris.Wrap(err, "ingest: open shapefile zip")
	}

	dir, err := os.MkdirTemp("", "sitescope-shp-*")
	if err != nil {
		return geometry.FeatureCollection{}, eris.Wrap(err, "ingest: temp dir")
	}
	defer os.RemoveAll(dir)

	var shpPath string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(f.Name)
		dest := filepath.Join(dir, name)
		if err := extractZipEntry(f, dest); err != nil {
			return geometry.FeatureCollection{}, err
		}
		if strings.HasSuffix(strings.ToLower(name), ".shp") && shpPath == "" {
			shpPath = dest
		}
	}
	if shpPath == "" {
		return geometry.FeatureCollection{}, eris.Wrap(ErrParse, "zip: no .shp entry")
	}
	return parseShapefilePath(shpPath)
}

// parseShapefileBytes handles a bare .shp upload with no sidecars.
// Geometry still parses; attributes are simply absent.
func parseShapefileBytes(data []byte) (geometry.FeatureCollection, error) {
	dir, err := os.MkdirTemp("", "sitescope-shp-*")
	if err != nil {
		return geometry.FeatureCollection{}, eris.Wrap(err, "ingest: temp dir")
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "upload.shp")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return geometry.FeatureCollection{}, eris.Wrap(err, "ingest: write temp shapefile")
	}
	return parseShapefilePath(path)
}

func parseShapefilePath(path string) (geometry.FeatureCollection, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return geometry.FeatureCollection{}, eris.Wrapf(err, "ingest: open shapefile %s", filepath.Base(path))
	}
	defer func() { _ = reader.Close() }()

	nameIdx := -1
	for i, f := range reader.Fields() {
		field := strings.ToLower(strings.TrimRight(f.String(), "\x00"))
		if field == "name" {
			nameIdx = i
			break
		}
	}

	var fc geometry.FeatureCollection
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()
		g := shapeToGeom(shape)
		if g == nil {
			skipped++
			continue
		}

		var name string
		if nameIdx >= 0 {
			name = strings.TrimSpace(strings.TrimRight(reader.Attribute(nameIdx), "\x00"))
		}
		fc.Features = append(fc.Features, geometry.Feature{Geometry: g, Name: name})
	}

	if skipped > 0 {
		zap.L().Warn("ingest: skipped shapefile records", zap.Int("skipped", skipped))
	}
	if len(fc.Features) == 0 {
		return fc, eris.Wrap(ErrParse, "shapefile")
	}
	return fc, nil
}

// shapeToGeom converts a go-shp shape to go-geom. Unsupported shape
// types map to nil and are skipped by the caller.
func shapeToGeom(shape shp.Shape) geom.T {
	switch s := shape.(type) {
	case *shp.Point:
		return geom.NewPointFlat(geom.XY, []float64{s.X, s.Y})
	case *shp.Polygon:
		return polygonToMultiPolygon(s)
	case *shp.PolyLine:
		return polyLineToMultiLineString(s)
	default:
		return nil
	}
}

func polyLineToMultiLineString(pl *shp.PolyLine) geom.T {
	if pl == nil || pl.NumParts == 0 || len(pl.Points) == 0 {
		return nil
	}
	mls := geom.NewMultiLineString(geom.XY)
	for i := int32(0); i < pl.NumParts; i++ {
		flat := partCoords(pl.Parts, pl.Points, i, pl.NumParts)
		if len(flat) < 4 {
			continue
		}
		if err := mls.Push(geom.NewLineStringFlat(geom.XY, flat)); err != nil {
			continue
		}
	}
	if mls.NumLineStrings() == 0 {
		return nil
	}
	return mls
}

func polygonToMultiPolygon(p *shp.Polygon) geom.T {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}
	mp := geom.NewMultiPolygon(geom.XY)
	for i := int32(0); i < p.NumParts; i++ {
		flat := partCoords(p.Parts, p.Points, i, p.NumParts)
		if len(flat) < 8 {
			continue
		}
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			continue
		}
		if err := mp.Push(poly); err != nil {
			continue
		}
	}
	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

// partCoords flattens one part of a multi-part shapefile record.
func partCoords(parts []int32, points []shp.Point, i, numParts int32) []float64 {
	start := parts[i]
	end := int32(len(points))
	if i+1 < numParts {
		end = parts[i+1]
	}
	flat := make([]float64, 0, (end-start)*2)
	for j := start; j < end; j++ {
		flat = append(flat, points[j].X, points[j].Y)
	}
	return flat
}

func extractZipEntry(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return eris.Wrapf(err, "ingest: open zip entry %s", f.Name)
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(dest)
	if err != nil {
		return eris.Wrapf(err, "ingest: create %s", dest)
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, rc); err != nil {
		return eris.Wrapf(err, "ingest: extract %s", f.Name)
	}
	return nil
}
