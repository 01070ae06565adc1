package inmemdb

import (
	"context"
	"sort"

	"github.com/ewanblake/aihub/core/content"
)

type contentRepository struct {
	papers    *paperTable
	resources *resourceTable
}

var _ content.Repository = (*contentRepository)(nil) // interface compliance check

func NewContentRepository(db *DB) content.Repository {
	return &contentRepository{papers: db.papers, resources: db.resources}
}

func (repo *contentRepository) queryPapers() []content.Paper {
	papers := make([]content.Paper, 0, len(repo.papers.table))
	for _, p := range repo.papers.table {
		papers = append(papers, *p)
	}
	sort.Slice(papers, func(i, j int) bool { return papers[i].ID < papers[j].ID })
	return papers
}

func (repo *contentRepository) QueryAllPapers(_ context.Context) ([]content.Paper, error) {
	repo.papers.RLock()
	defer repo.papers.RUnlock()
	return repo.queryPapers(), nil
}

func (repo *contentRepository) FilterPapers(_ context.Context, category string) ([]content.Paper, error) {
	repo.papers.RLock()
	defer repo.papers.RUnlock()

	papers := make([]content.Paper, 0)
	for _, p := range repo.queryPapers() {
		if p.Category == category {
			papers = append(papers, p)
		}
	}
	return papers, nil
}

func (repo *contentRepository) GetPaperByID(_ context.Context, id int) (content.Paper, error) {
	repo.papers.RLock()
	defer repo.papers.RUnlock()

	if p, ok := repo.papers.table[id]; ok {
		return *p, nil
	}
	return content.Paper{}, content.ErrNotFound
}

func (repo *contentRepository) CreatePaper(_ context.Context, paper content.Paper) (content.Paper, error) {
	repo.papers.Lock()
	defer repo.papers.Unlock()

	repo.papers.pkCount++
	paper.ID = repo.papers.pkCount
	repo.papers.table[paper.ID] = &paper
	return paper, nil
}

func (repo *contentRepository) UpdatePaper(_ context.Context, paper content.Paper) (content.Paper, error) {
	repo.papers.Lock()
	defer repo.papers.Unlock()

	if _, ok := repo.papers.table[paper.ID]; !ok {
		return content.Paper{}, content.ErrNotFound
	}
	repo.papers.table[paper.ID] = &paper
	return paper, nil
}

func (repo *contentRepository) DeletePapersByID(_ context.Context, ids ...int) error {
	repo.papers.Lock()
	defer repo.papers.Unlock()

	for _, id := range ids {
		delete(repo.papers.table, id)
	}
	return nil
}

func (repo *contentRepository) queryResources() []content.Resource {
	resources := make([]content.Resource, 0, len(repo.resources.table))
	for _, r := range repo.resources.table {
		resources = append(resources, *r)
	}
	sort.Slice(resources, func(i, j int) bool { return resources[i].ID < resources[j].ID })
	return resources
}

func (repo *contentRepository) QueryAllResources(_ context.Context) ([]content.Resource, error) {
	repo.resources.RLock()
	defer repo.resources.RUnlock()
	return repo.queryResources(), nil
}

func (repo *contentRepository) FilterResources(_ context.Context, kind string) ([]content.Resource, error) {
	repo.resources.RLock()
	defer repo.resources.RUnlock()

	resources := make([]content.Resource, 0)
	for _, r := range repo.queryResources() {
		if r.Kind == kind {
			resources = append(resources, r)
		}
	}
	return resources, nil
}

func (repo *contentRepository) GetResourceByID(_ context.Context, id int) (content.Resource, error) {
	repo.resources.RLock()
	defer repo.resources.RUnlock()

	if r, ok := repo.resources.table[id]; ok {
		return *r, nil
	}
	return content.Resource{}, content.ErrNotFound
}

func (repo *contentRepository) CreateResource(_ context.Context, res content.Resource) (content.Resource, error) {
	repo.resources.Lock()
	defer repo.resources.Unlock()

	repo.resources.pkCount++
	res.ID = repo.resources.pkCount
	repo.resources.table[res.ID] = &res
	return res, nil
}

func (repo *contentRepository) UpdateResource(_ context.Context, res content.Resource) (content.Resource, error) {
	repo.resources.Lock()
	defer repo.resources.Unlock()

	if _, ok := repo.resources.table[res.ID]; !ok {
		return content.Resource{}, content.ErrNotFound
	}
	repo.resources.table[res.ID] = &res
	return res, nil
}

func (repo *contentRepository) DeleteResourcesByID(_ context.Context, ids ...int) error {
	repo.resources.Lock()
	defer repo.resources.Unlock()

	for _, id := range ids {
		delete(repo.resources.table, id)
	}
	return nil
}
