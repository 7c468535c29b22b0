// Package router wires the grid codec and range-query operations to HTTP
// handlers, matching the teacher's chi-based internal/core/router shape.
package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mohammed-shakir/h3-spatial-cache/internal/cache/rangecache"
	"github.com/mohammed-shakir/h3-spatial-cache/internal/core/observability"
	"github.com/mohammed-shakir/h3-spatial-cache/internal/grid"
	"github.com/mohammed-shakir/h3-spatial-cache/internal/griderrors"
)

// Router holds the dependencies every handler needs: the range-query cache
// and the default refinement level used when a request omits one.
type Router struct {
	cache        *rangecache.Cache
	defaultLevel int
}

func New(cache *rangecache.Cache, defaultLevel int) *Router {
	return &Router{cache: cache, defaultLevel: defaultLevel}
}

func (rt *Router) level(requested int) grid.Level {
	if requested <= 0 {
		return grid.Level(rt.defaultLevel)
	}
	return grid.Level(requested)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a griderrors.Kind to an HTTP status, matching the
// taxonomy's CLI-exit-code-free classification contract.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch griderrors.Of(err) {
	case griderrors.KindInvalidArgument, griderrors.KindInvalidCode:
		status = http.StatusBadRequest
	case griderrors.KindUnsupportedPolar:
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return griderrors.InvalidArgumentf("malformed request body: %v", err)
	}
	return nil
}

type encode2DRequest struct {
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Level int     `json:"level"`
}

func (rt *Router) Encode2D(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req encode2DRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	code, err := grid.Encode2D(grid.GeoPoint{Longitude: req.Lon, Latitude: req.Lat}, rt.level(req.Level))
	observability.ObserveCodecOp("encode2d", err, time.Since(start).Seconds())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"code": code})
}

type decode2DRequest struct {
	Code string `json:"code"`
}

func (rt *Router) Decode2D(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req decode2DRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, _, err := grid.Decode2D(req.Code)
	observability.ObserveCodecOp("decode2d", err, time.Since(start).Seconds())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"lon": p.Longitude, "lat": p.Latitude})
}

type encode3DRequest struct {
	Lon    float64 `json:"lon"`
	Lat    float64 `json:"lat"`
	Height float64 `json:"height"`
	Level  int     `json:"level"`
}

func (rt *Router) Encode3D(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req encode3DRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p := grid.GeoPoint{Longitude: req.Lon, Latitude: req.Lat, Height: req.Height}
	code, err := grid.Encode3D(p, rt.level(req.Level))
	observability.ObserveCodecOp("encode3d", err, time.Since(start).Seconds())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"code": code})
}

func (rt *Router) Decode3D(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req decode2DRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, _, err := grid.Decode3D(req.Code)
	observability.ObserveCodecOp("decode3d", err, time.Since(start).Seconds())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"lon": p.Longitude, "lat": p.Latitude, "height": p.Height})
}

func (rt *Router) Children(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, griderrors.InvalidArgument("query parameter \"code\" is required"))
		return
	}
	codes, err := grid.Children(code)
	observability.ObserveCodecOp("children", err, time.Since(start).Seconds())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"codes": codes})
}

type intersectRequest struct {
	GeoJSON json.RawMessage `json:"geojson"`
	Level   int             `json:"level"`
	HMin    *float64        `json:"hMin,omitempty"`
	HMax    *float64        `json:"hMax,omitempty"`
}

// Intersect answers a range query: every grid cell at the requested level
// that intersects the posted geometry, optionally restricted to a height
// band. Result sets are memoized in the range cache, keyed on the
// geometry bytes, level and band (§11.1).
func (rt *Router) Intersect(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req intersectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	level := rt.level(req.Level)

	band := ""
	if req.HMin != nil && req.HMax != nil {
		band = fmt.Sprintf("%g:%g", *req.HMin, *req.HMax)
	}
	key := rangecache.RangeKey(req.GeoJSON, int(level), band)

	ctx := r.Context()
	if rt.cache != nil {
		if codes, ok, err := rt.cache.Get(ctx, key); err == nil && ok {
			observability.ObserveRangeQuery("cache", len(codes), time.Since(start).Seconds())
			writeJSON(w, http.StatusOK, map[string][]string{"codes": codes})
			return
		}
	}

	geom, err := grid.ParseGeoJSON(req.GeoJSON)
	if err != nil {
		writeError(w, err)
		return
	}

	var codes []string
	if req.HMin != nil && req.HMax != nil {
		codes, err = grid.Find3D(geom, level, grid.HeightBand{Min: *req.HMin, Max: *req.HMax}, grid.StrategyRefine)
	} else {
		codes, err = grid.Find2D(geom, level, grid.StrategyRefine)
	}
	observability.ObserveRangeQuery("refine", len(codes), time.Since(start).Seconds())
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.cache != nil {
		_ = rt.cache.Put(ctx, key, "", codes)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"codes": codes})
}
