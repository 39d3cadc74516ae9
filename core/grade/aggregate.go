package grade

import (
	"strconv"

	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
)

// CourseGrade computes a course percentage from its assignments: 100 * earned / max over the
// completed assignments having a grade. nil means "no grade" (nothing graded, or no max points).
func CourseGrade(asgs []assignment.Assignment) *float64 {
	var earned, max float64
	var graded int
	for _, a := range asgs {
		if !a.IsGraded() {
			continue
		}
		graded++
		earned += *a.Grade
		if a.MaxPoints != nil {
			max += *a.MaxPoints
		}
	}
	if graded == 0 || max == 0 {
		return nil
	}
	pct := 100 * earned / max
	return &pct
}

// GPA is the credit-weighted mean of the grade points of every course having a current grade.
// It is 0 when no course is graded. Assignments are accepted for parity with callers that
// recompute on assignment changes; they do not enter the computation.
func GPA(courses []course.Course, _ []assignment.Assignment) float64 {
	var totalPoints float64
	var totalCredits int
	for _, c := range courses {
		if !c.HasGrade() {
			continue
		}
		totalPoints += GradePoints(*c.CurrentGrade) * float64(c.Credits)
		totalCredits += c.Credits
	}
	if totalCredits <= 0 {
		return 0
	}
	return totalPoints / float64(totalCredits)
}

// FormatPercent renders a percentage with one decimal, or "--" when absent.
func FormatPercent(pct *float64) string {
	if pct == nil {
		return NoGrade
	}
	return strconv.FormatFloat(*pct, 'f', 1, 64) + "%"
}

type CourseSummary struct {
	CourseID int      `json:"course_id"`
	Name     string   `json:"name"`
	Credits  int      `json:"credits"`
	Percent  *float64 `json:"percent"`
	Display  string   `json:"display"`
	Letter   string   `json:"letter,omitempty"`
	Points   *float64 `json:"points"`
	Graded   int      `json:"graded"`
	Total    int      `json:"total"`
}

type Summary struct {
	GPA     float64         `json:"gpa"`
	Courses []CourseSummary `json:"courses"`
}

// Summarize computes the GPA and each course's live percentage from its assignments.
func Summarize(courses []course.Course, asgs []assignment.Assignment) Summary {
	byCourse := make(map[int][]assignment.Assignment, len(courses))
	for _, a := range asgs {
		byCourse[a.CourseID] = append(byCourse[a.CourseID], a)
	}

	summ := Summary{
		GPA:     GPA(courses, asgs),
		Courses: make([]CourseSummary, 0, len(courses)),
	}
	for _, c := range courses {
		cs := CourseSummary{
			CourseID: c.ID,
			Name:     c.Name,
			Credits:  c.Credits,
			Percent:  CourseGrade(byCourse[c.ID]),
			Total:    len(byCourse[c.ID]),
		}
		for _, a := range byCourse[c.ID] {
			if a.IsGraded() {
				cs.Graded++
			}
		}
		cs.Display = FormatPercent(cs.Percent)
		if cs.Percent != nil {
			pts := GradePoints(*cs.Percent)
			cs.Points = &pts
			cs.Letter = LetterGrade(*cs.Percent)
		}
		summ.Courses = append(summ.Courses, cs)
	}
	return summ
}
