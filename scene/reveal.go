package scene

import "math"

// RevealCount is how many of total decals are visible after seconds. The
// count eases from none to all and back over a 40 second cycle.
func RevealCount(total int, seconds float64) int {
	if total <= 0 {
		return 0
	}
	f := math.Cos(math.Pi+seconds*math.Pi*0.05)*0.5 + 0.5
	n := int(float64(total) * f)
	if n < 0 {
		return 0
	}
	if n > total {
		return total
	}
	return n
}
