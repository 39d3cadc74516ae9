package assignment

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Status string

// Status filters
const (
	StatusAll       Status = "all"
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
)

type SortKey string

// Sort keys
const (
	SortByDueDate  SortKey = "due_date"
	SortByPriority SortKey = "priority"
	SortByCourse   SortKey = "course"
)

// Filter combines its active predicates with AND. Zero values disable a predicate.
type Filter struct {
	Search   string   `query:"search"`
	CourseID int      `query:"course"`
	Priority Priority `query:"priority"`
	Status   Status   `query:"status"`
}

func (f *Filter) IsEmpty() bool {
	return f.Search == "" && f.CourseID == 0 && f.Priority == "" && (f.Status == "" || f.Status == StatusAll)
}

func (f *Filter) Clean() {
	f.Search = strings.TrimSpace(f.Search)
	f.Priority = Priority(strings.ToLower(strings.TrimSpace(string(f.Priority))))
	f.Status = Status(strings.ToLower(strings.TrimSpace(string(f.Status))))
}

// Match reports whether a satisfies every active predicate of f.
// An unrecognized status matches nothing.
func (f *Filter) Match(a Assignment) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Title), term) && !strings.Contains(strings.ToLower(a.Description), term) {
			return false
		}
	}
	if f.CourseID != 0 && a.CourseID != f.CourseID {
		return false
	}
	if f.Priority != "" && a.Priority != f.Priority {
		return false
	}
	switch f.Status {
	case "", StatusAll:
		return true
	case StatusCompleted:
		return a.Completed
	case StatusPending:
		return !a.Completed
	default:
		return false
	}
}

// Apply filters asgs with f then stable-sorts the result by key.
// courseNames resolves course IDs for SortByCourse; unresolved IDs sort as "".
// The input slice is left untouched.
func Apply(asgs []Assignment, courseNames map[int]string, f Filter, key SortKey) []Assignment {
	result := make([]Assignment, 0, len(asgs))
	if f.IsEmpty() {
		result = append(result, asgs...)
	} else {
		for _, a := range asgs {
			if f.Match(a) {
				result = append(result, a)
			}
		}
	}
	Sort(result, courseNames, key)
	return result
}

// Sort stable-sorts asgs in place. Unknown keys keep the current order.
func Sort(asgs []Assignment, courseNames map[int]string, key SortKey) {
	switch key {
	case SortByDueDate:
		sort.SliceStable(asgs, func(i, j int) bool { return asgs[i].DueDate.Before(asgs[j].DueDate) })
	case SortByPriority:
		sort.SliceStable(asgs, func(i, j int) bool { return asgs[i].Priority.Rank() > asgs[j].Priority.Rank() })
	case SortByCourse:
		coll := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(asgs, func(i, j int) bool {
			return coll.CompareString(courseNames[asgs[i].CourseID], courseNames[asgs[j].CourseID]) < 0
		})
	}
}
