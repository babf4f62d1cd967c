package timeman

import "math"

// Skew-logistic fit of "how many games are still undecided after n half-moves",
// extracted from large game databases. Calibration data; do not re-derive.
const (
	plyScale = 7.64
	plyShift = 58.4
	skew     = 0.183

	// Beyond this ply the curve is effectively flat in ratio terms, and only
	// ratios of importances matter downstream, so capping avoids precision
	// loss without changing behavior.
	plyCeiling = 200
)

// Importance weighs how much a move at the given half-move index still matters
// for the game outcome. The result is always in (0, 1] and non-increasing once
// ply passes the shift point, so it is safe as a divisor.
func Importance(ply int) float64 {
	if ply > plyCeiling {
		ply = plyCeiling
	}
	return math.Pow(1+math.Exp((float64(ply)-plyShift)/plyScale), -skew)
}
