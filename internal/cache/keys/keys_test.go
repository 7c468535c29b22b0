package keys

import (
	"regexp"
	"testing"
)

func TestRangeKey_Determinism(t *testing.T) {
	g := []byte(`{"type":"Point","coordinates":[120.58,31.14]}`)
	k1 := RangeKey(g, 5, "")
	k2 := RangeKey(g, 5, "")
	if k1 != k2 {
		t.Fatalf("determinism failed:\n k1=%s\n k2=%s", k1, k2)
	}
}

func TestRangeKey_DifferentGeometryDifferentKey(t *testing.T) {
	g1 := []byte(`{"type":"Point","coordinates":[120.58,31.14]}`)
	g2 := []byte(`{"type":"Point","coordinates":[120.59,31.14]}`)
	k1 := RangeKey(g1, 5, "")
	k2 := RangeKey(g2, 5, "")
	if k1 == k2 {
		t.Fatalf("different geometries must produce different keys")
	}
}

func TestRangeKey_DifferentLevelDifferentKey(t *testing.T) {
	g := []byte(`{"type":"Point","coordinates":[120.58,31.14]}`)
	k1 := RangeKey(g, 5, "")
	k2 := RangeKey(g, 6, "")
	if k1 == k2 {
		t.Fatalf("different levels must produce different keys")
	}
}

func TestRangeKey_HeightBandSuffix(t *testing.T) {
	g := []byte(`{"type":"Point","coordinates":[120.58,31.14]}`)
	k := RangeKey(g, 5, "0-100")
	if !regexp.MustCompile(`:band=0-100$`).MatchString(k) {
		t.Fatalf("missing band suffix: %s", k)
	}
}

func TestLayerKey_Determinism(t *testing.T) {
	k1 := LayerKey("demo:places", 8)
	k2 := LayerKey("demo:places", 8)
	if k1 != k2 {
		t.Fatalf("determinism failed:\n k1=%s\n k2=%s", k1, k2)
	}
}
