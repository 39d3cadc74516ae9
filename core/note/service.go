package note

import (
	"context"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound = core.NewNotFoundError("note")
)

type (
	Repository interface {
		QueryNotes(ctx context.Context) ([]Note, error)
		QueryNotesByCourse(ctx context.Context, courseID int) ([]Note, error)
		GetNote(ctx context.Context, id int) (Note, error)
		CreateNote(ctx context.Context, n Note) (Note, error)
		UpdateNote(ctx context.Context, n Note) (Note, error)
		DeleteNote(ctx context.Context, id int) error
		DeleteNotesByCourse(ctx context.Context, courseID int) (int, error)
	}

	Service struct {
		repo   Repository
		policy *bluemonday.Policy
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, policy: bluemonday.UGCPolicy()}
}

// Sanitize strips scripts, event handlers and any markup outside the user generated content subset.
func (svc *Service) Sanitize(content string) string {
	return svc.policy.Sanitize(content)
}

func (svc *Service) Create(ctx context.Context, nn NewNote) (Note, error) {
	now := NowFunc().UTC()
	n := Note{
		CourseID:  nn.CourseID,
		Title:     core.CleanString(nn.Title),
		Content:   svc.Sanitize(nn.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	n, err := svc.repo.CreateNote(ctx, n)
	if err != nil {
		return Note{}, errors.Wrap(err, "creating note")
	}
	return n, nil
}

func (svc *Service) Query(ctx context.Context) ([]Note, error) {
	return svc.repo.QueryNotes(ctx)
}

func (svc *Service) QueryByCourse(ctx context.Context, courseID int) ([]Note, error) {
	return svc.repo.QueryNotesByCourse(ctx, courseID)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Note, error) {
	return svc.repo.GetNote(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, un UpdateNote) (Note, error) {
	n, err := svc.repo.GetNote(ctx, id)
	if err != nil {
		return Note{}, err
	}
	if un.CourseID != nil {
		n.CourseID = *un.CourseID
	}
	if un.Title != nil {
		n.Title = core.CleanString(*un.Title)
	}
	if un.Content != nil {
		n.Content = svc.Sanitize(*un.Content)
	}
	n.UpdatedAt = NowFunc().UTC()
	return svc.repo.UpdateNote(ctx, n)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteNote(ctx, id)
}

func (svc *Service) DeleteByCourse(ctx context.Context, courseID int) (int, error) {
	return svc.repo.DeleteNotesByCourse(ctx, courseID)
}
