package grid

// Rect is an axis-aligned longitude/latitude bounding box, south-west corner
// inclusive, north-east corner exclusive — the shape of a single grid cell.
type Rect struct {
	MinLon, MinLat float64
	MaxLon, MaxLat float64
}

// Geometry is the subset of GeoJSON geometry types a range query can test
// against a cell rectangle (§4.7).
type Geometry interface {
	IntersectsRect(r Rect) bool
	Bounds() Rect
}

// Point is a single coordinate.
type Point struct{ Lon, Lat float64 }

func (p Point) IntersectsRect(r Rect) bool {
	return pointInRect(p.Lon, p.Lat, r)
}

func (p Point) Bounds() Rect {
	return Rect{MinLon: p.Lon, MaxLon: p.Lon, MinLat: p.Lat, MaxLat: p.Lat}
}

// LineString is an ordered sequence of vertices.
type LineString struct{ Points []Point }

func (ls LineString) IntersectsRect(r Rect) bool {
	for i := 0; i+1 < len(ls.Points); i++ {
		if segmentIntersectsRect(ls.Points[i], ls.Points[i+1], r) {
			return true
		}
	}
	return false
}

func (ls LineString) Bounds() Rect { return boundsOf(ls.Points) }

// Polygon is a single ring (outer boundary only — holes are not modelled,
// matching the original's range-query geometry support).
type Polygon struct{ Ring []Point }

func (pg Polygon) IntersectsRect(r Rect) bool {
	return polygonIntersectsRect(pg.Ring, r)
}

func (pg Polygon) Bounds() Rect { return boundsOf(pg.Ring) }

// MultiPolygon is a collection of independent polygons; any one intersecting
// is enough (§12 supplemented-features, range query over layer geometries).
type MultiPolygon struct{ Polygons []Polygon }

func (mp MultiPolygon) IntersectsRect(r Rect) bool {
	for _, pg := range mp.Polygons {
		if pg.IntersectsRect(r) {
			return true
		}
	}
	return false
}

func (mp MultiPolygon) Bounds() Rect {
	var all []Point
	for _, pg := range mp.Polygons {
		all = append(all, pg.Ring...)
	}
	return boundsOf(all)
}

func boundsOf(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{MinLon: points[0].Lon, MaxLon: points[0].Lon, MinLat: points[0].Lat, MaxLat: points[0].Lat}
	for _, p := range points[1:] {
		if p.Lon < r.MinLon {
			r.MinLon = p.Lon
		}
		if p.Lon > r.MaxLon {
			r.MaxLon = p.Lon
		}
		if p.Lat < r.MinLat {
			r.MinLat = p.Lat
		}
		if p.Lat > r.MaxLat {
			r.MaxLat = p.Lat
		}
	}
	return r
}

func pointInRect(lon, lat float64, r Rect) bool {
	return lon >= r.MinLon && lon < r.MaxLon && lat >= r.MinLat && lat < r.MaxLat
}

// segmentIntersectsRect is a Cohen-Sutherland clip test: it only needs to
// answer intersects-or-not, not produce the clipped segment (grounded on
// BeiDouGrid2DRangeQuery.isLineIntersectsRectangleMath's computeOutCode).
func segmentIntersectsRect(a, b Point, r Rect) bool {
	const (
		inside = 0
		left   = 1
		right  = 2
		bottom = 4
		top    = 8
	)
	outCode := func(p Point) int {
		code := inside
		switch {
		case p.Lon < r.MinLon:
			code |= left
		case p.Lon > r.MaxLon:
			code |= right
		}
		switch {
		case p.Lat < r.MinLat:
			code |= bottom
		case p.Lat > r.MaxLat:
			code |= top
		}
		return code
	}

	x0, y0, x1, y1 := a.Lon, a.Lat, b.Lon, b.Lat
	c0, c1 := outCode(Point{x0, y0}), outCode(Point{x1, y1})

	for {
		if c0 == 0 || c1 == 0 {
			return true
		}
		if c0&c1 != 0 {
			return false
		}
		outside := c0
		if outside == 0 {
			outside = c1
		}
		var x, y float64
		switch {
		case outside&top != 0:
			x = x0 + (x1-x0)*(r.MaxLat-y0)/(y1-y0)
			y = r.MaxLat
		case outside&bottom != 0:
			x = x0 + (x1-x0)*(r.MinLat-y0)/(y1-y0)
			y = r.MinLat
		case outside&right != 0:
			y = y0 + (y1-y0)*(r.MaxLon-x0)/(x1-x0)
			x = r.MaxLon
		case outside&left != 0:
			y = y0 + (y1-y0)*(r.MinLon-x0)/(x1-x0)
			x = r.MinLon
		}
		if outside == c0 {
			x0, y0 = x, y
			c0 = outCode(Point{x0, y0})
		} else {
			x1, y1 = x, y
			c1 = outCode(Point{x1, y1})
		}
	}
}

// polygonIntersectsRect combines three tests, as
// BeiDouGrid2DRangeQuery.isPolygonIntersectsRectangleMath does: any polygon
// vertex inside the rect, any rect corner inside the polygon, or any
// polygon edge crossing a rect edge.
func polygonIntersectsRect(ring []Point, r Rect) bool {
	for _, v := range ring {
		if pointInRect(v.Lon, v.Lat, r) {
			return true
		}
	}
	corners := [4]Point{
		{r.MinLon, r.MinLat}, {r.MaxLon, r.MinLat},
		{r.MaxLon, r.MaxLat}, {r.MinLon, r.MaxLat},
	}
	for _, c := range corners {
		if pointInPolygon(c, ring) {
			return true
		}
	}
	for i := 0; i+1 < len(ring); i++ {
		if segmentIntersectsRect(ring[i], ring[i+1], r) {
			return true
		}
	}
	return false
}

// pointInPolygon is a standard even-odd ray-casting test.
func pointInPolygon(p Point, ring []Point) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi.Lat > p.Lat) != (pj.Lat > p.Lat) {
			xIntersect := pi.Lon + (p.Lat-pi.Lat)/(pj.Lat-pi.Lat)*(pj.Lon-pi.Lon)
			if p.Lon < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}
