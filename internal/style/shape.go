package style

// ShapeRadii maps the single bradius shape parameter onto a pair of corner
// radius percentages (br1 for the first diagonal, br2 for the second).
// [0,100] runs from rectangle to pill. Past either end the second diagonal
// shrinks again by the distance beyond the pill extreme: -50 gives (0,50) and
// 150 gives (100,50).
func ShapeRadii(bradius float64) (br1, br2 float64) {
	switch {
	case bradius < 0:
		return 0, -bradius
	case bradius > 100:
		return 100, 200 - bradius
	default:
		return bradius, bradius
	}
}

// CornerRadius converts a radius percentage to pixels for a box of the given
// height: 100% is half the height.
func CornerRadius(pct, height float64) float64 {
	if height <= 0 || pct <= 0 {
		return 0
	}
	return pct * height / 2 / 100
}

// Translation returns the offset of a box inside its monitor for a [-50,50]
// percentage position on one axis.
func Translation(pct float64, monitor, box float64) float64 {
	return pct * (monitor - box) / 100
}
