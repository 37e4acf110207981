package value

import (
	"math"
	"strconv"
)

// formatFloat renders a float64 using the shortest round-tripping
// representation (strconv.FormatFloat with 'g' and -1 precision),
// except NaN/Inf get named forms since Lavendish scripts may rely on
// exact spelling.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
