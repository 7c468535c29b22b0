package grid

import "github.com/mohammed-shakir/h3-spatial-cache/internal/griderrors"

// zTable3 and zTable6 are the standard-defined Z-order enumerations at
// levels 3 and 6, mirrored per hemisphere rather than flipping coordinates
// at the input (§9 "Hemisphere-aware Z-order"). Built once at init as plain
// literals — small and fixed, so a lazily memoized map buys nothing over a
// package-level array (§12 supplemented-features).
var zTable3 = map[Hemisphere][3][2]int{
	NE: {{0, 1}, {2, 3}, {4, 5}},
	NW: {{1, 0}, {3, 2}, {5, 4}},
	SW: {{5, 4}, {3, 2}, {1, 0}},
	SE: {{4, 5}, {2, 3}, {0, 1}},
}

var zTable6 = map[Hemisphere][2][2]int{
	NE: {{0, 1}, {2, 3}},
	NW: {{1, 0}, {3, 2}},
	SW: {{3, 2}, {1, 0}},
	SE: {{2, 3}, {0, 1}},
}

func encodeZ3(h Hemisphere, lng, lat int) (int, error) {
	if lat < 0 || lat > 2 || lng < 0 || lng > 1 {
		return 0, griderrors.InvalidArgumentf("level-3 indices out of range: lng=%d lat=%d", lng, lat)
	}
	return zTable3[h][lat][lng], nil
}

func encodeZ6(h Hemisphere, lng, lat int) (int, error) {
	if lat < 0 || lat > 1 || lng < 0 || lng > 1 {
		return 0, griderrors.InvalidArgumentf("level-6 indices out of range: lng=%d lat=%d", lng, lat)
	}
	return zTable6[h][lat][lng], nil
}

func decodeZ3(h Hemisphere, n int) (lng, lat int, err error) {
	table := zTable3[h]
	for i := range table {
		for j := range table[i] {
			if table[i][j] == n {
				return j, i, nil
			}
		}
	}
	return 0, 0, griderrors.InvalidCodef("invalid level-3 Z-order value: %d", n)
}

func decodeZ6(h Hemisphere, n int) (lng, lat int, err error) {
	table := zTable6[h]
	for i := range table {
		for j := range table[i] {
			if table[i][j] == n {
				return j, i, nil
			}
		}
	}
	return 0, 0, griderrors.InvalidCodef("invalid level-6 Z-order value: %d", n)
}
