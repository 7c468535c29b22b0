package grid

import "testing"

func TestParseGeoJSON_Point(t *testing.T) {
	data := []byte(`{"type":"Point","coordinates":[120.5,31.1]}`)
	geom, err := ParseGeoJSON(data)
	if err != nil {
		t.Fatalf("ParseGeoJSON: %v", err)
	}
	p, ok := geom.(Point)
	if !ok {
		t.Fatalf("got %T, want Point", geom)
	}
	if p.Lon != 120.5 || p.Lat != 31.1 {
		t.Errorf("got %+v, want Lon=120.5 Lat=31.1", p)
	}
}

func TestParseGeoJSON_LineString(t *testing.T) {
	data := []byte(`{"type":"LineString","coordinates":[[0,0],[1,1],[2,2]]}`)
	geom, err := ParseGeoJSON(data)
	if err != nil {
		t.Fatalf("ParseGeoJSON: %v", err)
	}
	ls, ok := geom.(LineString)
	if !ok {
		t.Fatalf("got %T, want LineString", geom)
	}
	if len(ls.Points) != 3 {
		t.Fatalf("got %d points, want 3", len(ls.Points))
	}
}

func TestParseGeoJSON_Polygon(t *testing.T) {
	data := []byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`)
	geom, err := ParseGeoJSON(data)
	if err != nil {
		t.Fatalf("ParseGeoJSON: %v", err)
	}
	pg, ok := geom.(Polygon)
	if !ok {
		t.Fatalf("got %T, want Polygon", geom)
	}
	if len(pg.Ring) != 5 {
		t.Fatalf("got %d ring points, want 5", len(pg.Ring))
	}
}

func TestParseGeoJSON_PolygonWithNoRingsIsInvalidArgument(t *testing.T) {
	data := []byte(`{"type":"Polygon","coordinates":[]}`)
	if _, err := ParseGeoJSON(data); err == nil {
		t.Fatal("expected an error for a ringless polygon")
	}
}

func TestParseGeoJSON_MultiPolygon(t *testing.T) {
	data := []byte(`{"type":"MultiPolygon","coordinates":[
		[[[0,0],[1,0],[1,1],[0,1],[0,0]]],
		[[[10,10],[11,10],[11,11],[10,11],[10,10]]]
	]}`)
	geom, err := ParseGeoJSON(data)
	if err != nil {
		t.Fatalf("ParseGeoJSON: %v", err)
	}
	mp, ok := geom.(MultiPolygon)
	if !ok {
		t.Fatalf("got %T, want MultiPolygon", geom)
	}
	if len(mp.Polygons) != 2 {
		t.Fatalf("got %d polygons, want 2", len(mp.Polygons))
	}
}

func TestParseGeoJSON_UnsupportedTypeIsInvalidArgument(t *testing.T) {
	data := []byte(`{"type":"GeometryCollection","geometries":[]}`)
	if _, err := ParseGeoJSON(data); err == nil {
		t.Fatal("expected an error for an unsupported geometry type")
	}
}

func TestParseGeoJSON_MalformedJSONIsInvalidArgument(t *testing.T) {
	if _, err := ParseGeoJSON([]byte(`not json`)); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
