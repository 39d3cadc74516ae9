package digest_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/digest"
	emailsvc "github.com/trezcool/studysync/services/email"
	inmemdb "github.com/trezcool/studysync/storage/database/inmem"
	"github.com/trezcool/studysync/tests"
)

// Mon, Mar 11 2024
var monday = time.Date(2024, time.March, 11, 8, 0, 0, 0, time.UTC)

func newService(t *testing.T, days int) (*digest.Service, *emailsvc.ConsoleService, *bytes.Buffer) {
	testutil.ParseTemplates(t)
	db := inmemdb.Open(testutil.Fixtures(t))
	asgSvc := assignment.NewService(inmemdb.NewAssignmentRepository(db))
	courseSvc := course.NewService(inmemdb.NewCourseRepository(db), asgSvc)

	var out bytes.Buffer
	mailer := emailsvc.NewConsoleService(testutil.NewConfig(), testutil.NewLogger(), &out)
	return digest.NewService(courseSvc, asgSvc, mailer, days), mailer, &out
}

func TestService_Build(t *testing.T) {
	tests := []struct {
		name      string
		days      int
		now       time.Time
		wantUntil string
		wantItems []digest.Item
	}{
		{
			name:      "a week ahead",
			days:      7,
			now:       monday,
			wantUntil: "Mon, Mar 18",
			wantItems: []digest.Item{
				{Label: "Mar 15", Title: "Midterm Review", Course: "Calculus II", Priority: "medium", DueDate: core.NewDate(2024, time.March, 15)},
				{Label: "Mar 18", Title: "Reaction Mechanisms Worksheet", Course: "Organic Chemistry", Priority: "low", DueDate: core.NewDate(2024, time.March, 18)},
			},
		},
		{
			name:      "default horizon",
			days:      0,
			now:       monday,
			wantUntil: "Mon, Mar 18",
			wantItems: []digest.Item{
				{Label: "Mar 15", Title: "Midterm Review", Course: "Calculus II", Priority: "medium", DueDate: core.NewDate(2024, time.March, 15)},
				{Label: "Mar 18", Title: "Reaction Mechanisms Worksheet", Course: "Organic Chemistry", Priority: "low", DueDate: core.NewDate(2024, time.March, 18)},
			},
		},
		{
			name:      "overdue work is kept",
			days:      1,
			now:       time.Date(2024, time.March, 19, 9, 0, 0, 0, time.UTC),
			wantUntil: "Wed, Mar 20",
			wantItems: []digest.Item{
				{Label: "Overdue", Title: "Midterm Review", Course: "Calculus II", Priority: "medium", DueDate: core.NewDate(2024, time.March, 15)},
				{Label: "Overdue", Title: "Reaction Mechanisms Worksheet", Course: "Organic Chemistry", Priority: "low", DueDate: core.NewDate(2024, time.March, 18)},
				{Label: "Due Tomorrow", Title: "Essay: The Great Gatsby", Course: "American Literature", Priority: "medium", DueDate: core.NewDate(2024, time.March, 20)},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newService(t, tt.days)
			data, err := svc.Build(testutil.Ctx(), tt.now)
			require.NoError(t, err)

			assert.Equal(t, tt.wantUntil, data.Until)
			assert.Equal(t, tt.wantItems, data.Items)
			assert.Equal(t, 6, data.Stats.Total)
			assert.InDelta(t, (4*3.0+4*3.3+3*2.0)/11, data.GPA, 1e-9)
		})
	}
}

func TestService_Send(t *testing.T) {
	t.Run("recipients", func(t *testing.T) {
		svc, mailer, _ := newService(t, 7)

		_, err := svc.Send(testutil.Ctx(), monday, nil)
		assert.Equal(t, digest.ErrNoRecipients, err)

		_, err = svc.Send(testutil.Ctx(), monday, []string{"kim@example.com", "nope"})
		assert.EqualError(t, err, `parsing recipient "nope": mail: missing '@' or angle-addr`)
		assert.Empty(t, mailer.Sent())
	})

	t.Run("sent", func(t *testing.T) {
		svc, mailer, out := newService(t, 7)

		data, err := svc.Send(testutil.Ctx(), monday, []string{"Kim <kim@example.com>"})
		require.NoError(t, err)
		assert.Len(t, data.Items, 2)

		sent := mailer.Sent()
		require.Len(t, sent, 1)
		msg := sent[0]
		assert.Equal(t, "Your week ahead", msg.Subject)
		assert.Equal(t, "kim@example.com", msg.To[0].Address)
		assert.Contains(t, msg.TextContent, "until Mon, Mar 18")
		assert.Contains(t, msg.TextContent, "- [Mar 15] Midterm Review (Calculus II) - priority medium")
		assert.NotContains(t, msg.TextContent, "Nothing due")
		assert.Contains(t, msg.HTMLContent, "Reaction Mechanisms Worksheet")
		assert.Contains(t, out.String(), "Subject: [StudySync] Your week ahead")
	})
}

func TestJob_Run(t *testing.T) {
	svc, mailer, _ := newService(t, 7)

	var logs bytes.Buffer
	digest.Job{Service: svc, Logger: testutil.NewLogger(&logs)}.Run()

	assert.Empty(t, mailer.Sent())
	assert.Contains(t, logs.String(), "ERROR: digest job: digest has no recipients")
}
