// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package load

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCollection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Runway 5L"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [
          [[-79.94, 36.105], [-79.93, 36.105], [-79.93, 36.106], [-79.94, 36.106], [-79.94, 36.105]],
          [[-79.938, 36.1052], [-79.937, 36.1052], [-79.937, 36.1054], [-79.938, 36.1052]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {"ref": "A1"},
      "geometry": {"type": "Point", "coordinates": [-79.94, 36.105]}
    },
    {
      "type": "Feature",
      "properties": null,
      "geometry": null
    },
    {
      "type": "Feature",
      "properties": {"name": 42},
      "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]}
    }
  ]
}`

func TestDecode(t *testing.T) {
	records, err := Decode([]byte(sampleCollection))
	require.NoError(t, err)
	require.Len(t, records, 4)

	for i, r := range records {
		assert.Equal(t, i, r.Index, "records keep collection order")
	}

	assert.Equal(t, "Runway 5L", records[0].Name)
	assert.True(t, records[0].IsPolygon())
	assert.Len(t, records[0].Ring, 5, "only the exterior ring is kept")
	assert.Equal(t, orb.Point{-79.94, 36.105}, records[0].Ring[0])

	assert.Equal(t, "Feature_1", records[1].Name)
	assert.Equal(t, "Point", records[1].GeometryType)
	assert.Empty(t, records[1].Ring)

	assert.Equal(t, "Feature_2", records[2].Name)
	assert.Equal(t, "", records[2].GeometryType)
	assert.False(t, records[2].IsPolygon())

	assert.Equal(t, "Feature_3", records[3].Name, "non-string names fall back to the index")
	assert.True(t, records[3].IsPolygon())
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: `{"type": "FeatureCollection", "features": [`},
		{name: "single feature", input: `{"type": "Feature", "geometry": null, "properties": {}}`},
		{name: "features not an array", input: `{"type": "FeatureCollection", "features": {"a": 1}}`},
		{name: "wrong top-level type", input: `{"type": "GeometryCollection", "features": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Decode([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedCollection), "got %v", err)
			assert.Nil(t, records)
		})
	}
}

func TestDecode_BrokenFeatures(t *testing.T) {
	const input = `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"name": "Empty Geometry"}, "geometry": {}},
		{"type": "Feature", "properties": {"name": "Helipad"}, "geometry": {"type": "Circle", "coordinates": [0, 0]}},
		{"properties": {"name": "No Type"},
		 "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]}},
		{"type": "Feature", "properties": {"name": "Bad Numbers"},
		 "geometry": {"type": "Polygon", "coordinates": [[["a", 0], [1, 0], [1, 1]]]}},
		null,
		"not an object",
		{"type": "Feature", "properties": {"name": "Apron"},
		 "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [2, 0], [2, 2], [0, 2], [0, 0]]]}}
	]}`

	records, err := Decode([]byte(input))
	require.NoError(t, err, "broken features never fail the collection")
	require.Len(t, records, 7)

	tests := []struct {
		index       int
		wantName    string
		wantType    string
		wantRing    int
		wantDecoded bool
	}{
		{index: 0, wantName: "Empty Geometry", wantType: ""},
		{index: 1, wantName: "Helipad", wantType: "Circle"},
		{index: 2, wantName: "No Type", wantType: "Polygon", wantRing: 4, wantDecoded: true},
		{index: 3, wantName: "Bad Numbers", wantType: "Polygon"},
		{index: 4, wantName: "Feature_4", wantType: "", wantDecoded: true},
		{index: 5, wantName: "Feature_5", wantType: ""},
		{index: 6, wantName: "Apron", wantType: "Polygon", wantRing: 5, wantDecoded: true},
	}
	for _, tt := range tests {
		r := records[tt.index]
		assert.Equal(t, tt.index, r.Index)
		assert.Equal(t, tt.wantName, r.Name, "record %d", tt.index)
		assert.Equal(t, tt.wantType, r.GeometryType, "record %d", tt.index)
		assert.Len(t, r.Ring, tt.wantRing, "record %d", tt.index)
		assert.Equal(t, tt.wantDecoded, r.DecodeError == "", "record %d: %q", tt.index, r.DecodeError)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "airport.geojson")
	require.NoError(t, os.WriteFile(path, []byte(sampleCollection), 0o644))

	records, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.geojson"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFeatureName(t *testing.T) {
	tests := []struct {
		name  string
		props geojson.Properties
		index int
		want  string
	}{
		{name: "name present", props: geojson.Properties{"name": "Taxiway B"}, index: 3, want: "Taxiway B"},
		{name: "nil properties", props: nil, index: 7, want: "Feature_7"},
		{name: "name missing", props: geojson.Properties{"ref": "B"}, index: 0, want: "Feature_0"},
		{name: "empty name", props: geojson.Properties{"name": ""}, index: 2, want: "Feature_2"},
		{name: "name not a string", props: geojson.Properties{"name": 12.5}, index: 4, want: "Feature_4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FeatureName(tt.props, tt.index))
		})
	}
}

func TestPropertyString(t *testing.T) {
	props := geojson.Properties{"name": "Apron", "lanes": 2}

	v, ok := PropertyString(props, "name")
	assert.True(t, ok)
	assert.Equal(t, "Apron", v)

	_, ok = PropertyString(props, "lanes")
	assert.False(t, ok)

	_, ok = PropertyString(props, "surface")
	assert.False(t, ok)
}
