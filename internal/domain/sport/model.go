package sport

// Sport is static reference data: a measurable activity with a linear
// points conversion factor.
type Sport struct {
	ID            string
	Name          string
	Unit          string
	PointsPerUnit float64
	Description   string
}

// ComputePoints converts a raw performance value into points. The
// result is exact; rounding is a presentation concern.
func ComputePoints(pointsPerUnit, value float64) float64 {
	return value * pointsPerUnit
}
