package grid

import "testing"

func TestPoint_IntersectsRect(t *testing.T) {
	r := Rect{MinLon: 0, MinLat: 0, MaxLon: 10, MaxLat: 10}
	cases := []struct {
		p    Point
		want bool
	}{
		{Point{Lon: 5, Lat: 5}, true},
		{Point{Lon: 0, Lat: 0}, true},      // inclusive south-west corner
		{Point{Lon: 10, Lat: 10}, false},   // exclusive north-east corner
		{Point{Lon: -1, Lat: 5}, false},
	}
	for _, c := range cases {
		if got := c.p.IntersectsRect(r); got != c.want {
			t.Errorf("%+v.IntersectsRect(%+v) = %v, want %v", c.p, r, got, c.want)
		}
	}
}

func TestLineString_IntersectsRect_CrossingAndMissing(t *testing.T) {
	r := Rect{MinLon: 0, MinLat: 0, MaxLon: 10, MaxLat: 10}

	crossing := LineString{Points: []Point{{Lon: -5, Lat: 5}, {Lon: 15, Lat: 5}}}
	if !crossing.IntersectsRect(r) {
		t.Error("line crossing the rect through its interior should intersect")
	}

	missing := LineString{Points: []Point{{Lon: 20, Lat: 20}, {Lon: 30, Lat: 30}}}
	if missing.IntersectsRect(r) {
		t.Error("line entirely outside the rect should not intersect")
	}
}

func TestPolygon_IntersectsRect_ContainingAndDisjoint(t *testing.T) {
	// A square ring around the origin, larger than the test rect: the rect
	// sits entirely inside the polygon.
	ring := []Point{{-20, -20}, {20, -20}, {20, 20}, {-20, 20}, {-20, -20}}
	pg := Polygon{Ring: ring}
	r := Rect{MinLon: -1, MinLat: -1, MaxLon: 1, MaxLat: 1}
	if !pg.IntersectsRect(r) {
		t.Error("rect fully inside the polygon should intersect")
	}

	far := Rect{MinLon: 100, MinLat: 100, MaxLon: 101, MaxLat: 101}
	if pg.IntersectsRect(far) {
		t.Error("rect far outside the polygon should not intersect")
	}
}

func TestPolygon_Bounds(t *testing.T) {
	pg := Polygon{Ring: []Point{{-5, -3}, {5, -3}, {5, 7}, {-5, 7}}}
	got := pg.Bounds()
	want := Rect{MinLon: -5, MinLat: -3, MaxLon: 5, MaxLat: 7}
	if got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestMultiPolygon_IntersectsRect_AnyMemberIsEnough(t *testing.T) {
	near := Polygon{Ring: []Point{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}}
	far := Polygon{Ring: []Point{{50, 50}, {51, 50}, {51, 51}, {50, 51}}}
	mp := MultiPolygon{Polygons: []Polygon{far, near}}
	if !mp.IntersectsRect(Rect{MinLon: -0.5, MinLat: -0.5, MaxLon: 0.5, MaxLat: 0.5}) {
		t.Error("rect overlapping one member polygon should intersect the collection")
	}
	if mp.IntersectsRect(Rect{MinLon: 200, MinLat: 200, MaxLon: 201, MaxLat: 201}) {
		t.Error("rect overlapping no member polygon should not intersect the collection")
	}
}

func TestPointInPolygon_SquareRing(t *testing.T) {
	ring := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if !pointInPolygon(Point{5, 5}, ring) {
		t.Error("centre point should be inside the square")
	}
	if pointInPolygon(Point{20, 20}, ring) {
		t.Error("point far outside the square should not be inside")
	}
}
