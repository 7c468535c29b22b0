package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/docopt/docopt-go"

	"github.com/mohammed-shakir/h3-spatial-cache/internal/grid"
)

const usage = `gridcodec: GB/T 39409-2020 BeiDou grid codec, offline/batch use.

Usage:
	gridcodec encode2d --lon=LON --lat=LAT --level=LEVEL
	gridcodec decode2d CODE
	gridcodec encode3d --lon=LON --lat=LAT --height=H --level=LEVEL
	gridcodec decode3d CODE
	gridcodec children CODE
	gridcodec intersect --geojson=FILE --level=LEVEL [--hmin=HMIN] [--hmax=HMAX]
	gridcodec -h | --help

Options:
	-h --help           show this screen.
	--lon=LON           longitude, decimal degrees.
	--lat=LAT           latitude, decimal degrees.
	--height=H          ellipsoidal height, metres.
	--level=LEVEL       refinement depth, 1-10.
	--geojson=FILE       path to a GeoJSON geometry file.
	--hmin=HMIN          height band lower bound, metres.
	--hmax=HMAX          height band upper bound, metres.
`

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], "gridcodec 1.0")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(opts docopt.Opts) error {
	switch {
	case boolArg(opts, "encode2d"):
		return cmdEncode2D(opts)
	case boolArg(opts, "decode2d"):
		return cmdDecode2D(opts)
	case boolArg(opts, "encode3d"):
		return cmdEncode3D(opts)
	case boolArg(opts, "decode3d"):
		return cmdDecode3D(opts)
	case boolArg(opts, "children"):
		return cmdChildren(opts)
	case boolArg(opts, "intersect"):
		return cmdIntersect(opts)
	default:
		return fmt.Errorf("no command selected")
	}
}

func boolArg(opts docopt.Opts, key string) bool {
	v, ok := opts[key].(bool)
	return ok && v
}

func stringArg(opts docopt.Opts, key string) (string, error) {
	v, ok := opts[key]
	if !ok || v == nil {
		return "", fmt.Errorf("missing required argument %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %s is not a string", key)
	}
	return s, nil
}

func floatArg(opts docopt.Opts, key string) (float64, error) {
	s, err := stringArg(opts, key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("argument %s: %w", key, err)
	}
	return f, nil
}

func optionalFloatArg(opts docopt.Opts, key string) (*float64, error) {
	v, ok := opts[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("argument %s is not a string", key)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("argument %s: %w", key, err)
	}
	return &f, nil
}

func levelArg(opts docopt.Opts) (grid.Level, error) {
	s, err := stringArg(opts, "--level")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("argument --level: %w", err)
	}
	return grid.Level(n), nil
}

func cmdEncode2D(opts docopt.Opts) error {
	lon, err := floatArg(opts, "--lon")
	if err != nil {
		return err
	}
	lat, err := floatArg(opts, "--lat")
	if err != nil {
		return err
	}
	level, err := levelArg(opts)
	if err != nil {
		return err
	}
	code, err := grid.Encode2D(grid.GeoPoint{Longitude: lon, Latitude: lat}, level)
	if err != nil {
		return err
	}
	fmt.Println(code)
	return nil
}

func cmdDecode2D(opts docopt.Opts) error {
	code, err := stringArg(opts, "CODE")
	if err != nil {
		return err
	}
	p, level, err := grid.Decode2D(code)
	if err != nil {
		return err
	}
	fmt.Printf("level=%d lon=%v lat=%v\n", level, p.Longitude, p.Latitude)
	return nil
}

func cmdEncode3D(opts docopt.Opts) error {
	lon, err := floatArg(opts, "--lon")
	if err != nil {
		return err
	}
	lat, err := floatArg(opts, "--lat")
	if err != nil {
		return err
	}
	height, err := floatArg(opts, "--height")
	if err != nil {
		return err
	}
	level, err := levelArg(opts)
	if err != nil {
		return err
	}
	code, err := grid.Encode3D(grid.GeoPoint{Longitude: lon, Latitude: lat, Height: height}, level)
	if err != nil {
		return err
	}
	fmt.Println(code)
	return nil
}

func cmdDecode3D(opts docopt.Opts) error {
	code, err := stringArg(opts, "CODE")
	if err != nil {
		return err
	}
	p, level, err := grid.Decode3D(code)
	if err != nil {
		return err
	}
	fmt.Printf("level=%d lon=%v lat=%v height=%v\n", level, p.Longitude, p.Latitude, p.Height)
	return nil
}

func cmdChildren(opts docopt.Opts) error {
	code, err := stringArg(opts, "CODE")
	if err != nil {
		return err
	}
	codes, err := grid.Children(code)
	if err != nil {
		return err
	}
	for _, c := range codes {
		fmt.Println(c)
	}
	return nil
}

func cmdIntersect(opts docopt.Opts) error {
	path, err := stringArg(opts, "--geojson")
	if err != nil {
		return err
	}
	level, err := levelArg(opts)
	if err != nil {
		return err
	}
	hMin, err := optionalFloatArg(opts, "--hmin")
	if err != nil {
		return err
	}
	hMax, err := optionalFloatArg(opts, "--hmax")
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read geojson file: %w", err)
	}
	geom, err := grid.ParseGeoJSON(data)
	if err != nil {
		return err
	}

	var codes []string
	if hMin != nil && hMax != nil {
		codes, err = grid.Find3D(geom, level, grid.HeightBand{Min: *hMin, Max: *hMax}, grid.StrategyRefine)
	} else {
		codes, err = grid.Find2D(geom, level, grid.StrategyRefine)
	}
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(codes)
}
