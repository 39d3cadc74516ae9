package grade

// NoGrade is how an absent percentage is rendered.
const NoGrade = "--"

var pointsScale = []struct {
	min    float64
	points float64
}{
	{97, 4.0},
	{93, 3.7},
	{90, 3.3},
	{87, 3.0},
	{83, 2.7},
	{80, 2.3},
	{77, 2.0},
	{73, 1.7},
	{70, 1.3},
	{67, 1.0},
	{65, 0.7},
}

var letterScale = []struct {
	min    float64
	letter string
}{
	{90, "A"},
	{80, "B"},
	{70, "C"},
	{60, "D"},
}

// GradePoints maps a percentage to grade points in [0.0, 4.0]. Lower bounds are inclusive.
func GradePoints(pct float64) float64 {
	for _, step := range pointsScale {
		if pct >= step.min {
			return step.points
		}
	}
	return 0.0
}

// LetterGrade maps a percentage to A, B, C, D or F. Lower bounds are inclusive.
func LetterGrade(pct float64) string {
	for _, step := range letterScale {
		if pct >= step.min {
			return step.letter
		}
	}
	return "F"
}
