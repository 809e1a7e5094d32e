// Package maprender produces the self-contained Leaflet HTML document for a
// set of aggregated postal code groups.
package maprender

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/rotisserie/eris"

	"github.com/petakode/petakode/internal/config"
	"github.com/petakode/petakode/internal/geospatial"
)

// Renderer builds map pages for a fixed base-map configuration.
type Renderer struct {
	cfg  config.MapConfig
	tmpl *template.Template
}

// New creates a Renderer.
func New(cfg config.MapConfig) *Renderer {
	return &Renderer{
		cfg:  cfg,
		tmpl: template.Must(template.New("map").Parse(pageTemplate)),
	}
}

type pageData struct {
	CenterLat   float64
	CenterLng   float64
	Zoom        int
	TileURL     string
	Attribution string
	ZoomLevel   int
	GeoJSON     template.JS
}

// Render produces the complete HTML document for the given groups.
// zoomLevel is only used to preset the prefix-length slider; the groups are
// rendered as-is. An empty group set yields a valid base map with no
// overlays.
func (r *Renderer) Render(groups []geospatial.Group, zoomLevel int) ([]byte, error) {
	fc := ToFeatureCollection(groups)
	raw, err := json.Marshal(fc)
	if err != nil {
		return nil, eris.Wrap(err, "maprender: encode geojson")
	}

	var buf bytes.Buffer
	data := pageData{
		CenterLat:   r.cfg.CenterLat,
		CenterLng:   r.cfg.CenterLng,
		Zoom:        r.cfg.Zoom,
		TileURL:     r.cfg.TileURL,
		Attribution: r.cfg.Attribution,
		ZoomLevel:   zoomLevel,
		GeoJSON:     template.JS(raw),
	}
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, eris.Wrap(err, "maprender: execute template")
	}
	return buf.Bytes(), nil
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Indonesia Post Code Map</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
html, body, #map { height: 100%; margin: 0; }
.control-panel {
  position: fixed; top: 20px; right: 20px; background: white;
  padding: 10px; border-radius: 5px;
  box-shadow: 0 2px 5px rgba(0,0,0,0.2); z-index: 1000;
}
.control-panel h3 { margin: 0 0 10px 0; }
.control-panel input { width: 200px; }
.control-panel button { display: block; margin-top: 10px; padding: 5px 10px; }
</style>
</head>
<body>
<div id="map"></div>
<div class="control-panel">
  <h3>Postal Code Zoom Level</h3>
  <input type="range" id="zoomLevel" min="1" max="5" value="{{.ZoomLevel}}">
  <span id="zoomValue">{{.ZoomLevel}}</span>
  <button onclick="updateMap()">Update Map</button>
</div>
<script>
const map = L.map('map').setView([{{.CenterLat}}, {{.CenterLng}}], {{.Zoom}});
L.tileLayer('{{.TileURL}}', {attribution: '{{.Attribution}}'}).addTo(map);

const regions = {{.GeoJSON}};
L.geoJSON(regions, {
  style: function (f) {
    return {color: f.properties.color, weight: 2, fillOpacity: 0.4};
  },
  pointToLayer: function (f, latlng) {
    return L.circleMarker(latlng, {color: f.properties.color, fill: true, fillOpacity: 0.7, radius: 8});
  },
  onEachFeature: function (f, layer) {
    layer.bindPopup('Postal Code Prefix: ' + f.properties.prefix + '<br>Villages: ' + f.properties.villages);
  }
}).addTo(map);

const slider = document.getElementById('zoomLevel');
const output = document.getElementById('zoomValue');
output.innerHTML = slider.value;
slider.oninput = function () { output.innerHTML = this.value; };
function updateMap() {
  window.location.href = '/?zoom_level=' + slider.value;
}
</script>
</body>
</html>
`
