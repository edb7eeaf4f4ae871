package common

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MoveToward steps v toward target by at most maxDelta, without overshoot.
func MoveToward(v, target, maxDelta float64) float64 {
	d := target - v
	if d > maxDelta {
		return v + maxDelta
	}
	if d < -maxDelta {
		return v - maxDelta
	}
	return target
}

func Sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
