// Package digest builds and mails the summary of upcoming assignments.
package digest

import (
	"context"
	"net/mail"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/grade"
)

const (
	TemplateName = "digest"
	untilLayout  = "Mon, Jan 02"
)

var ErrNoRecipients = errors.New("digest has no recipients")

type (
	Item struct {
		Label    string    `json:"label"`
		Title    string    `json:"title"`
		Course   string    `json:"course"`
		Priority string    `json:"priority"`
		DueDate  core.Date `json:"due_date"`
	}

	Data struct {
		Until string           `json:"until"`
		GPA   float64          `json:"gpa"`
		Stats assignment.Stats `json:"stats"`
		Items []Item           `json:"items"`
	}

	Service struct {
		courseSvc *course.Service
		asgSvc    *assignment.Service
		mailer    core.EmailService
		days      int
	}
)

func NewService(courseSvc *course.Service, asgSvc *assignment.Service, mailer core.EmailService, days int) *Service {
	if days <= 0 {
		days = 7
	}
	return &Service{courseSvc: courseSvc, asgSvc: asgSvc, mailer: mailer, days: days}
}

// Build lists every pending assignment due within the horizon (overdue ones included), earliest first.
func (svc *Service) Build(ctx context.Context, now time.Time) (Data, error) {
	var courses []course.Course
	var asgs []assignment.Assignment

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		courses, err = svc.courseSvc.Query(gctx)
		return errors.Wrap(err, "querying courses")
	})
	g.Go(func() (err error) {
		asgs, err = svc.asgSvc.Query(gctx)
		return errors.Wrap(err, "querying assignments")
	})
	if err := g.Wait(); err != nil {
		return Data{}, err
	}

	names := course.Names(courses)
	data := Data{
		Until: now.AddDate(0, 0, svc.days).Format(untilLayout),
		GPA:   grade.GPA(courses, asgs),
		Stats: assignment.ComputeStats(asgs, now),
		Items: make([]Item, 0),
	}
	for _, a := range assignment.Upcoming(asgs, now, svc.days, 0) {
		data.Items = append(data.Items, Item{
			Label:    assignment.DueLabel(a, now),
			Title:    a.Title,
			Course:   names[a.CourseID],
			Priority: assignment.PriorityLabel(a.Priority),
			DueDate:  a.DueDate,
		})
	}
	return data, nil
}

// Send builds the digest and mails it to recipients, synchronously.
func (svc *Service) Send(ctx context.Context, now time.Time, recipients []string) (Data, error) {
	to, err := parseRecipients(recipients)
	if err != nil {
		return Data{}, err
	}
	data, err := svc.Build(ctx, now)
	if err != nil {
		return Data{}, err
	}

	msg := &core.EmailMessage{
		To:           to,
		Subject:      "Your week ahead",
		TemplateName: TemplateName,
		TemplateData: data,
	}
	if err = svc.mailer.Send(msg); err != nil {
		return Data{}, errors.Wrap(err, "sending digest")
	}
	return data, nil
}

func parseRecipients(recipients []string) ([]mail.Address, error) {
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}
	to := make([]mail.Address, 0, len(recipients))
	for _, r := range recipients {
		addr, err := mail.ParseAddress(r)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing recipient %q", r)
		}
		to = append(to, *addr)
	}
	return to, nil
}

// Job runs the digest from a scheduler (robfig/cron calls Run).
type Job struct {
	Service    *Service
	Recipients []string
	Logger     core.Logger
	Timeout    time.Duration
}

func (j Job) Run() {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	data, err := j.Service.Send(ctx, time.Now(), j.Recipients)
	if err != nil {
		j.Logger.Error("digest job: "+err.Error(), err)
		return
	}
	j.Logger.Info("digest job: sent", map[string]interface{}{"items": len(data.Items), "recipients": len(j.Recipients)})
}
