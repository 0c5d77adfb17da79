package viz

import "math"

// Scale maps values of a populated range onto [0, 1] for color ramps.
type Scale struct {
	Min float64
	Max float64
}

// Normalize returns v's position in the range, clamped to [0, 1]. A flat
// range maps everything to 0.
func (s Scale) Normalize(v float64) float64 {
	if s.Max <= s.Min || math.IsNaN(v) {
		return 0
	}
	t := (v - s.Min) / (s.Max - s.Min)
	return math.Max(0, math.Min(1, t))
}
