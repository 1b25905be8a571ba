// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package load reads a GeoJSON feature collection into FeatureRecords.
// A file that cannot be read, or that is not a FeatureCollection, is fatal
// for the whole run. Each feature is decoded on its own, so one broken
// feature becomes a record carrying its decode error and the rest load.
package load

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/pdiddy/geomesh/pkg/types"
)

// ErrMalformedCollection wraps every parse failure of the input document.
var ErrMalformedCollection = errors.New("malformed feature collection")

const (
	featureCollectionType = "FeatureCollection"
	nameProperty          = "name"
	fallbackNameFormat    = "Feature_%d"
)

// Load reads the file at path and decodes it with Decode.
func Load(path string) ([]types.FeatureRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", path, err)
	}
	records, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return records, nil
}

// collectionDoc is the outer document. Features stay raw so each one is
// decoded independently.
type collectionDoc struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

// featureShell is the lenient view of a feature orb rejected: enough to name
// it and to retry its geometry on its own.
type featureShell struct {
	Properties geojson.Properties `json:"properties"`
	Geometry   json.RawMessage    `json:"geometry"`
}

// Decode parses a GeoJSON FeatureCollection. Records keep the order of the
// features array; Index is the zero-based position in it. Only a document
// that is not a FeatureCollection returns an error.
func Decode(data []byte) ([]types.FeatureRecord, error) {
	var doc collectionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCollection, err)
	}
	if doc.Type != featureCollectionType {
		return nil, fmt.Errorf("%w: top-level type is %q, want %q",
			ErrMalformedCollection, doc.Type, featureCollectionType)
	}

	records := make([]types.FeatureRecord, len(doc.Features))
	for i, raw := range doc.Features {
		f, err := geojson.UnmarshalFeature(raw)
		if err != nil {
			records[i] = brokenRecord(i, raw, err)
			continue
		}
		records[i] = newRecord(i, f)
	}
	return records, nil
}

// brokenRecord keeps what can still be read from a feature orb could not
// decode. When only the Feature wrapper is off (a missing "type", say) and
// the geometry decodes, the record is usable. Otherwise DecodeError is set
// and the pipeline reports the feature instead of extruding it.
func brokenRecord(index int, raw json.RawMessage, ferr error) types.FeatureRecord {
	rec := types.FeatureRecord{
		Index:       index,
		Name:        fallbackName(index),
		DecodeError: ferr.Error(),
	}
	var shell featureShell
	if json.Unmarshal(raw, &shell) != nil {
		return rec
	}
	rec.Name = FeatureName(shell.Properties, index)
	if len(shell.Geometry) == 0 || string(shell.Geometry) == "null" {
		return rec
	}

	g, err := geojson.UnmarshalGeometry(shell.Geometry)
	if err != nil {
		var declared struct {
			Type string `json:"type"`
		}
		_ = json.Unmarshal(shell.Geometry, &declared)
		rec.GeometryType = declared.Type
		rec.DecodeError = err.Error()
		return rec
	}
	rec.DecodeError = ""
	setGeometry(&rec, g.Geometry())
	return rec
}

func newRecord(index int, f *geojson.Feature) types.FeatureRecord {
	rec := types.FeatureRecord{Index: index}
	rec.Name = FeatureName(f.Properties, index)
	if f.Geometry != nil {
		setGeometry(&rec, f.Geometry)
	}
	return rec
}

func setGeometry(rec *types.FeatureRecord, g orb.Geometry) {
	if g == nil {
		return
	}
	rec.GeometryType = g.GeoJSONType()
	if poly, ok := g.(orb.Polygon); ok && len(poly) > 0 {
		// Copy so the record does not alias the decoder's slice.
		rec.Ring = append([]orb.Point(nil), poly[0]...)
	}
}

// FeatureName resolves the record name: properties.name when it is a
// non-empty string, otherwise Feature_<index>.
func FeatureName(props geojson.Properties, index int) string {
	if name, ok := PropertyString(props, nameProperty); ok && name != "" {
		return name
	}
	return fallbackName(index)
}

// PropertyString returns the string value stored under key. The second
// result is false when props is nil, the key is absent, or the value is not
// a string.
func PropertyString(props geojson.Properties, key string) (string, bool) {
	if props == nil {
		return "", false
	}
	v, ok := props[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func fallbackName(index int) string {
	return fmt.Sprintf(fallbackNameFormat, index)
}
