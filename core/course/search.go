package course

import "strings"

// Search filters courses by a case-insensitive substring match on name or instructor.
// An empty term returns every course.
func Search(courses []Course, term string) []Course {
	term = strings.ToLower(strings.TrimSpace(term))
	found := make([]Course, 0, len(courses))
	for _, c := range courses {
		if term == "" ||
			strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Instructor), term) {
			found = append(found, c)
		}
	}
	return found
}
