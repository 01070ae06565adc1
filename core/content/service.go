package content

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("content not found")

type (
	Repository interface {
		QueryAllPapers(ctx context.Context) ([]Paper, error)
		// FilterPapers matches the exact category string; empty matches all.
		FilterPapers(ctx context.Context, category string) ([]Paper, error)
		GetPaperByID(ctx context.Context, id int) (Paper, error)
		CreatePaper(ctx context.Context, paper Paper) (Paper, error)
		UpdatePaper(ctx context.Context, paper Paper) (Paper, error)
		DeletePapersByID(ctx context.Context, ids ...int) error

		QueryAllResources(ctx context.Context) ([]Resource, error)
		FilterResources(ctx context.Context, kind string) ([]Resource, error)
		GetResourceByID(ctx context.Context, id int) (Resource, error)
		CreateResource(ctx context.Context, res Resource) (Resource, error)
		UpdateResource(ctx context.Context, res Resource) (Resource, error)
		DeleteResourcesByID(ctx context.Context, ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryPapers(ctx context.Context, category string) ([]Paper, error) {
	if category == "" {
		return svc.repo.QueryAllPapers(ctx)
	}
	return svc.repo.FilterPapers(ctx, category)
}

func (svc *Service) GetPaper(ctx context.Context, id int) (Paper, error) {
	return svc.repo.GetPaperByID(ctx, id)
}

func (svc *Service) CreatePaper(ctx context.Context, np NewPaper) (Paper, error) {
	now := time.Now().UTC()
	paper := Paper{
		Title:     np.Title,
		Authors:   np.Authors,
		Year:      np.Year,
		Category:  np.Category,
		Link:      np.Link,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreatePaper(ctx, paper)
}

// UpdatePaper replaces every editable field of the paper with the given data.
func (svc *Service) UpdatePaper(ctx context.Context, id int, np NewPaper) (Paper, error) {
	paper, err := svc.repo.GetPaperByID(ctx, id)
	if err != nil {
		return Paper{}, err
	}
	paper.Title = np.Title
	paper.Authors = np.Authors
	paper.Year = np.Year
	paper.Category = np.Category
	paper.Link = np.Link
	paper.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdatePaper(ctx, paper)
}

func (svc *Service) DeletePapers(ctx context.Context, ids ...int) error {
	return svc.repo.DeletePapersByID(ctx, ids...)
}

func (svc *Service) QueryResources(ctx context.Context, kind string) ([]Resource, error) {
	if kind == "" {
		return svc.repo.QueryAllResources(ctx)
	}
	return svc.repo.FilterResources(ctx, kind)
}

func (svc *Service) GetResource(ctx context.Context, id int) (Resource, error) {
	return svc.repo.GetResourceByID(ctx, id)
}

func (svc *Service) CreateResource(ctx context.Context, nr NewResource) (Resource, error) {
	now := time.Now().UTC()
	res := Resource{
		Title:       nr.Title,
		Kind:        nr.Kind,
		Description: nr.Description,
		Link:        nr.Link,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateResource(ctx, res)
}

// UpdateResource replaces every editable field of the resource with the given data.
func (svc *Service) UpdateResource(ctx context.Context, id int, nr NewResource) (Resource, error) {
	res, err := svc.repo.GetResourceByID(ctx, id)
	if err != nil {
		return Resource{}, err
	}
	res.Title = nr.Title
	res.Kind = nr.Kind
	res.Description = nr.Description
	res.Link = nr.Link
	res.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateResource(ctx, res)
}

func (svc *Service) DeleteResources(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteResourcesByID(ctx, ids...)
}
