package maprender

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/petakode/petakode/internal/config"
	"github.com/petakode/petakode/internal/geospatial"
)

func testMapConfig() config.MapConfig {
	return config.MapConfig{
		CenterLat:   -2.5489,
		CenterLng:   118.0149,
		Zoom:        5,
		TileURL:     "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "&copy; OpenStreetMap contributors",
	}
}

func polygonGroup(prefix string) geospatial.Group {
	return geospatial.Group{
		Prefix:       prefix,
		VillageCount: 8,
		CenterLat:    5.55,
		CenterLng:    95.33,
		Color:        geospatial.ColorFor(prefix),
		Boundary: geom.NewPolygonFlat(geom.XY, []float64{
			95.0, 5.0,
			95.0, 6.0,
			96.0, 6.0,
			95.0, 5.0,
		}, []int{8}).SetSRID(4326),
	}
}

func markerGroup(prefix string) geospatial.Group {
	return geospatial.Group{
		Prefix:       prefix,
		VillageCount: 2,
		CenterLat:    5.40,
		CenterLng:    95.60,
		Color:        geospatial.ColorFor(prefix),
		Boundary:     geom.NewPointFlat(geom.XY, []float64{95.60, 5.40}).SetSRID(4326),
	}
}

func TestToFeatureCollection(t *testing.T) {
	fc := ToFeatureCollection([]geospatial.Group{polygonGroup("237"), markerGroup("238")})
	require.Len(t, fc.Features, 2)

	assert.Equal(t, "237", fc.Features[0].ID)
	assert.Equal(t, "237", fc.Features[0].Properties["prefix"])
	assert.Equal(t, 8, fc.Features[0].Properties["villages"])
	assert.Equal(t, false, fc.Features[0].Properties["marker"])
	assert.Equal(t, true, fc.Features[1].Properties["marker"])

	raw, err := json.Marshal(fc)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "FeatureCollection", decoded["type"])
	assert.Len(t, decoded["features"], 2)
}

func TestRender(t *testing.T) {
	r := New(testMapConfig())

	html, err := r.Render([]geospatial.Group{polygonGroup("237"), markerGroup("238")}, 3)
	require.NoError(t, err)
	page := string(html)

	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "leaflet@1.9.4/dist/leaflet.js")
	assert.Contains(t, page, "-2.5489")
	assert.Contains(t, page, "118.0149")
	assert.Contains(t, page, `"237"`)
	assert.Contains(t, page, `"238"`)
	assert.Contains(t, page, geospatial.ColorFor("237"))
	// Slider preset to the requested prefix length.
	assert.Contains(t, page, `value="3"`)
	assert.Contains(t, page, "Postal Code Zoom Level")
}

func TestRender_EmptyGroups(t *testing.T) {
	r := New(testMapConfig())

	html, err := r.Render(nil, 1)
	require.NoError(t, err)
	page := string(html)

	assert.Contains(t, page, "L.map(")
	assert.Contains(t, page, `"features":[]`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(page), "</html>"))
}

func TestRender_Deterministic(t *testing.T) {
	r := New(testMapConfig())
	groups := []geospatial.Group{polygonGroup("237")}

	first, err := r.Render(groups, 3)
	require.NoError(t, err)
	second, err := r.Render(groups, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
