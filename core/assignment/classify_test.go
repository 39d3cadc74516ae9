package assignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/studysync/core"
)

var (
	// Wed, Mar 13 2024 at 10:30
	now      = time.Date(2024, time.March, 13, 10, 30, 0, 0, time.UTC)
	today    = core.NewDate(2024, time.March, 13)
	tomorrow = today.AddDays(1)
	past     = today.AddDays(-2)
	later    = today.AddDays(5)
)

func asg(due core.Date, completed bool) Assignment {
	return Assignment{DueDate: due, Completed: completed, Priority: PriorityMedium}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		a    Assignment
		want Classification
	}{
		{
			name: "due today",
			a:    asg(today, false),
			want: Classification{Overdue: true, DueToday: true, DueLabel: LabelDueToday, DueVariant: VariantError, PriorityLabel: "medium"},
		},
		{
			name: "due today, completed",
			a:    asg(today, true),
			want: Classification{DueToday: true, DueLabel: LabelDueToday, DueVariant: VariantWarning, PriorityLabel: "medium"},
		},
		{
			name: "due tomorrow",
			a:    asg(tomorrow, false),
			want: Classification{DueTomorrow: true, DueLabel: LabelDueTomorrow, DueVariant: VariantAccent, PriorityLabel: "medium"},
		},
		{
			name: "overdue",
			a:    asg(past, false),
			want: Classification{Overdue: true, DueLabel: LabelOverdue, DueVariant: VariantError, PriorityLabel: "medium"},
		},
		{
			name: "past but completed",
			a:    asg(past, true),
			want: Classification{DueLabel: "Mar 11", DueVariant: VariantDefault, PriorityLabel: "medium"},
		},
		{
			name: "later",
			a:    asg(later, false),
			want: Classification{DueLabel: "Mar 18", DueVariant: VariantDefault, PriorityLabel: "medium"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.a, now))
		})
	}
}

func TestIsOverdue_midnight(t *testing.T) {
	midnight := today.In(time.UTC)
	assert.False(t, IsOverdue(asg(today, false), midnight), "due exactly now is not overdue")
	assert.True(t, IsOverdue(asg(today, false), midnight.Add(time.Nanosecond)))

	// the due date is read in now's location
	loc := time.FixedZone("UTC+9", 9*3600)
	assert.False(t, IsOverdue(asg(today, false), time.Date(2024, time.March, 12, 23, 0, 0, 0, loc)))
}

func TestPriorityLabel(t *testing.T) {
	assert.Equal(t, "high", PriorityLabel(PriorityHigh))
	assert.Equal(t, "medium", PriorityLabel(PriorityMedium))
	assert.Equal(t, "low", PriorityLabel(PriorityLow))
	assert.Equal(t, "default", PriorityLabel("urgent"))
	assert.Equal(t, "default", PriorityLabel(""))
}

func TestComputeStats(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(nil, now))

	asgs := []Assignment{
		asg(past, false),  // overdue
		asg(past, true),   // done
		asg(later, false), // pending
		asg(today, true),  // done
	}
	assert.Equal(t, Stats{Total: 4, Completed: 2, Pending: 2, Overdue: 1, CompletionRate: 50}, ComputeStats(asgs, now))

	asgs = []Assignment{asg(later, true), asg(later, false), asg(later, false)}
	assert.Equal(t, 33, ComputeStats(asgs, now).CompletionRate)
}

func TestUpcoming(t *testing.T) {
	asgs := []Assignment{
		{ID: 1, DueDate: later},
		{ID: 2, DueDate: tomorrow},
		{ID: 3, DueDate: past},
		{ID: 4, DueDate: today, Completed: true},
		{ID: 5, DueDate: today.AddDays(8)},
		{ID: 6, DueDate: tomorrow},
	}
	ids := func(asgs []Assignment) []int {
		out := make([]int, 0, len(asgs))
		for _, a := range asgs {
			out = append(out, a.ID)
		}
		return out
	}

	assert.Equal(t, []int{3, 2, 6, 1}, ids(Upcoming(asgs, now, 7, 0)))
	assert.Equal(t, []int{3, 2}, ids(Upcoming(asgs, now, 7, 2)))
	assert.Equal(t, []int{3, 2, 6}, ids(Upcoming(asgs, now, 1, 5)))
	assert.NotNil(t, Upcoming(nil, now, 7, 5))
}
