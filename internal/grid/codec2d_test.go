package grid

import "testing"

var roundTripPoints = []GeoPoint{
	{Longitude: 120.5830508, Latitude: 31.1415575},
	{Longitude: -73.9854, Latitude: 40.7580},
	{Longitude: 151.2099, Latitude: -33.8651},
	{Longitude: -58.3816, Latitude: -34.6037},
	{Longitude: 0.5, Latitude: 0.5},
	{Longitude: 179.9, Latitude: 87.9},
	{Longitude: -179.9, Latitude: -87.9},
}

func TestEncode2D_Decode2D_CodeIsStableUnderReEncoding(t *testing.T) {
	for _, p := range roundTripPoints {
		for l := MinLevel; l <= MaxLevel; l++ {
			code, err := Encode2D(p, l)
			if err != nil {
				t.Fatalf("Encode2D(%+v, %d): %v", p, l, err)
			}

			wantLen, _ := CodeLength2D(l)
			if len(code) != wantLen {
				t.Fatalf("Encode2D(%+v, %d) = %q, length %d, want %d", p, l, code, len(code), wantLen)
			}

			decoded, decodedLevel, err := Decode2D(code)
			if err != nil {
				t.Fatalf("Decode2D(%q): %v", code, err)
			}
			if decodedLevel != l {
				t.Fatalf("Decode2D(%q) level = %d, want %d", code, decodedLevel, l)
			}

			reEncoded, err := Encode2D(decoded, l)
			if err != nil {
				t.Fatalf("re-encode %+v at level %d: %v", decoded, l, err)
			}
			if reEncoded != code {
				t.Errorf("round trip mismatch at level %d: %q -> %+v -> %q", l, code, decoded, reEncoded)
			}
		}
	}
}

func TestEncode2D_LeadingCharacterMatchesLatitudeHemisphere(t *testing.T) {
	cases := []struct {
		p        GeoPoint
		wantChar byte
	}{
		{GeoPoint{Longitude: 10, Latitude: 10}, 'N'},
		{GeoPoint{Longitude: 10, Latitude: -10}, 'S'},
		{GeoPoint{Longitude: 0, Latitude: 0}, 'N'},
	}
	for _, c := range cases {
		code, err := Encode2D(c.p, 5)
		if err != nil {
			t.Fatalf("%+v: %v", c.p, err)
		}
		if code[0] != c.wantChar {
			t.Errorf("Encode2D(%+v) = %q, leading char %c, want %c", c.p, code, code[0], c.wantChar)
		}
	}
}

func TestEncode2D_RejectsInvalidLevel(t *testing.T) {
	if _, err := Encode2D(GeoPoint{Longitude: 1, Latitude: 1}, 0); err == nil {
		t.Fatal("expected an error for level 0")
	}
	if _, err := Encode2D(GeoPoint{Longitude: 1, Latitude: 1}, 11); err == nil {
		t.Fatal("expected an error for level 11")
	}
}

func TestEncode2D_RejectsPolarLatitude(t *testing.T) {
	_, err := Encode2D(GeoPoint{Longitude: 1, Latitude: 88}, 5)
	if err == nil {
		t.Fatal("expected an UnsupportedPolar error")
	}
}

func TestEncode2D_RejectsOutOfRangeCoordinates(t *testing.T) {
	if _, err := Encode2D(GeoPoint{Longitude: 181, Latitude: 1}, 5); err == nil {
		t.Fatal("expected an error for longitude out of range")
	}
	if _, err := Encode2D(GeoPoint{Longitude: 1, Latitude: 91}, 5); err == nil {
		t.Fatal("expected an error for latitude out of range")
	}
}

// Scenario 3 of the testable-properties table: a code whose level-1 digits
// sit exactly on the hemisphere boundary decodes to the origin.
func TestDecode2D_OriginCode(t *testing.T) {
	p, level, err := Decode2D("N31A")
	if err != nil {
		t.Fatalf("Decode2D(N31A): %v", err)
	}
	if level != 1 {
		t.Errorf("level = %d, want 1", level)
	}
	if p.Longitude != 0 || p.Latitude != 0 {
		t.Errorf("Decode2D(N31A) = %+v, want (0,0)", p)
	}
}

func TestDecode2D_RejectsWrongLength(t *testing.T) {
	if _, _, err := Decode2D("N31"); err == nil {
		t.Fatal("expected an error for a length no level has")
	}
}

func TestDecode2D_RejectsUnparsableHemisphere(t *testing.T) {
	if _, _, err := Decode2D("NXXA"); err == nil {
		t.Fatal("expected an error for a non-decimal longitude field")
	}
}

func TestDecode2D_RejectsReservedPolarLongitudeIndex(t *testing.T) {
	if _, _, err := Decode2D("N00A"); err == nil {
		t.Fatal("expected an UnsupportedPolar error for level-1 longitude index 0")
	}
}

func TestDecode2D_RejectsMalformedLaterLevelFragment(t *testing.T) {
	// Level-3 fragment must be a single hex digit naming one of the tabled
	// Z-order values; 'G' is not a hex digit at all.
	if _, _, err := Decode2D("N31A00G"); err == nil {
		t.Fatal("expected an error for an unparsable level-3 fragment")
	}
}

// Level 4's own fan-out is 15x10 (gridDivisions[4]), which would put its
// hemisphere-adjustment bound at maxLat=9; the standard instead fixes it at
// (14,14), same as level 5. A round trip alone can't catch a drift here
// since encode and decode would apply the same wrong bound consistently —
// this pins the actual wire-format hex pair.
func TestEncodeFragment2D_Level4UsesFixedBoundNotItsOwnFanOut(t *testing.T) {
	frag, err := encodeFragment2D(4, SW, 3, 2)
	if err != nil {
		t.Fatalf("encodeFragment2D: %v", err)
	}
	if frag != "BC" {
		t.Fatalf("encodeFragment2D(level4, SW, 3, 2) = %q, want BC ((14-3,14-2)=(11,12)=0xBC)", frag)
	}

	lng, lat, err := decodeFragment2D(4, SW, "BC")
	if err != nil {
		t.Fatalf("decodeFragment2D: %v", err)
	}
	if lng != 3 || lat != 2 {
		t.Fatalf("decodeFragment2D(level4, SW, %q) = (%d,%d), want (3,2)", frag, lng, lat)
	}
}

func TestChildren_TileTheParentAndShareItsLevel(t *testing.T) {
	parent, parentLevel, err := Decode2D("N31A")
	if err != nil {
		t.Fatalf("Decode2D: %v", err)
	}
	parentCode, err := Encode2D(parent, parentLevel)
	if err != nil {
		t.Fatalf("Encode2D: %v", err)
	}

	children, err := Children(parentCode)
	if err != nil {
		t.Fatalf("Children(%q): %v", parentCode, err)
	}
	fanLng, fanLat, err := FanOut(parentLevel + 1)
	if err != nil {
		t.Fatalf("FanOut: %v", err)
	}
	if len(children) != fanLng*fanLat {
		t.Fatalf("got %d children, want %d", len(children), fanLng*fanLat)
	}

	wantLen, _ := CodeLength2D(parentLevel + 1)
	seen := map[string]bool{}
	for _, c := range children {
		if len(c) != wantLen {
			t.Errorf("child %q has length %d, want %d", c, len(c), wantLen)
		}
		if seen[c] {
			t.Errorf("duplicate child code %q", c)
		}
		seen[c] = true
	}
}

func TestChildren_RejectsMaxLevelParent(t *testing.T) {
	code, err := Encode2D(GeoPoint{Longitude: 10, Latitude: 10}, MaxLevel)
	if err != nil {
		t.Fatalf("Encode2D: %v", err)
	}
	if _, err := Children(code); err == nil {
		t.Fatal("expected an error enumerating children of a max-level code")
	}
}
