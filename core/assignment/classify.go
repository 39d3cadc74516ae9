package assignment

import (
	"math"
	"sort"
	"time"

	"github.com/trezcool/studysync/core"
)

// Due date labels
const (
	LabelDueToday    = "Due Today"
	LabelDueTomorrow = "Due Tomorrow"
	LabelOverdue     = "Overdue"

	dueLabelLayout = "Jan 02"
)

// Display variants
const (
	VariantError   = "error"
	VariantWarning = "warning"
	VariantAccent  = "accent"
	VariantDefault = "default"
)

// dueAt returns midnight of the due date in now's location.
func (a Assignment) dueAt(now time.Time) time.Time {
	return a.DueDate.In(now.Location())
}

// IsOverdue reports whether the assignment is not completed and its due date is strictly before now.
func IsOverdue(a Assignment, now time.Time) bool {
	return !a.Completed && a.dueAt(now).Before(now)
}

func IsDueToday(a Assignment, now time.Time) bool {
	return a.DueDate == core.DateOf(now)
}

func IsDueTomorrow(a Assignment, now time.Time) bool {
	return a.DueDate == core.DateOf(now).AddDays(1)
}

// DueLabel: Due Today > Due Tomorrow > Overdue > "Jan 02".
func DueLabel(a Assignment, now time.Time) string {
	switch {
	case IsDueToday(a, now):
		return LabelDueToday
	case IsDueTomorrow(a, now):
		return LabelDueTomorrow
	case IsOverdue(a, now):
		return LabelOverdue
	default:
		return a.DueDate.Format(dueLabelLayout)
	}
}

// DueVariant is the badge variant of the due date label: overdue > today > tomorrow.
func DueVariant(a Assignment, now time.Time) string {
	switch {
	case IsOverdue(a, now):
		return VariantError
	case IsDueToday(a, now):
		return VariantWarning
	case IsDueTomorrow(a, now):
		return VariantAccent
	default:
		return VariantDefault
	}
}

// PriorityLabel passes known priorities through; anything else is "default".
func PriorityLabel(p Priority) string {
	if p.IsValid() {
		return string(p)
	}
	return VariantDefault
}

// Classification bundles every derived label of an Assignment at a given time.
type Classification struct {
	Overdue       bool   `json:"overdue"`
	DueToday      bool   `json:"due_today"`
	DueTomorrow   bool   `json:"due_tomorrow"`
	DueLabel      string `json:"due_label"`
	DueVariant    string `json:"due_variant"`
	PriorityLabel string `json:"priority_label"`
}

func Classify(a Assignment, now time.Time) Classification {
	return Classification{
		Overdue:       IsOverdue(a, now),
		DueToday:      IsDueToday(a, now),
		DueTomorrow:   IsDueTomorrow(a, now),
		DueLabel:      DueLabel(a, now),
		DueVariant:    DueVariant(a, now),
		PriorityLabel: PriorityLabel(a.Priority),
	}
}

type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completion_rate"` // rounded percentage
}

// ComputeStats partitions the whole collection; nothing is maintained incrementally.
func ComputeStats(asgs []Assignment, now time.Time) Stats {
	var st Stats
	st.Total = len(asgs)
	for _, a := range asgs {
		if a.Completed {
			st.Completed++
			continue
		}
		st.Pending++
		if IsOverdue(a, now) {
			st.Overdue++
		}
	}
	if st.Total > 0 {
		st.CompletionRate = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}

// Upcoming returns at most limit pending assignments due up to `days` days from now, earliest first.
// Overdue assignments are included. limit <= 0 means no limit.
func Upcoming(asgs []Assignment, now time.Time, days, limit int) []Assignment {
	horizon := now.AddDate(0, 0, days)
	upcoming := make([]Assignment, 0)
	for _, a := range asgs {
		if !a.Completed && !a.dueAt(now).After(horizon) {
			upcoming = append(upcoming, a)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].DueDate.Before(upcoming[j].DueDate) })
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}
