package terrain

// FirstHill returns the first index i, scanning left to right, where the
// ground starts to fall (heights[i+1] < heights[i]). It reports false when
// the terrain never falls, i.e. it is flat or non-decreasing.
func (t *Terrain) FirstHill() (int, bool) {
	for i := 0; i < len(t.heights)-1; i++ {
		if t.heights[i+1] < t.heights[i] {
			return i, true
		}
	}

	return 0, false
}

// LastHill returns the first index i, scanning right to left, where the
// ground falls towards the interior (heights[i-1] < heights[i]). It reports
// false when the terrain is non-increasing.
func (t *Terrain) LastHill() (int, bool) {
	for i := len(t.heights) - 1; i > 0; i-- {
		if t.heights[i-1] < t.heights[i] {
			return i, true
		}
	}

	return 0, false
}
