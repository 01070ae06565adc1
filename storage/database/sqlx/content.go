package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ewanblake/aihub/core/content"
)

type contentRepository struct {
	db *sqlx.DB
}

var _ content.Repository = (*contentRepository)(nil)

func NewContentRepository(db *sql.DB) content.Repository {
	return &contentRepository{db: sqlx.NewDb(db, "postgres")}
}

type paperRow struct {
	ID        int         `db:"id"`
	Title     string      `db:"title"`
	Authors   null.String `db:"authors"`
	Year      int         `db:"year"`
	Category  string      `db:"category"`
	Link      string      `db:"link"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

func (r paperRow) paper() content.Paper {
	return content.Paper{
		ID:        r.ID,
		Title:     r.Title,
		Authors:   r.Authors.String,
		Year:      r.Year,
		Category:  r.Category,
		Link:      r.Link,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

type resourceRow struct {
	ID          int         `db:"id"`
	Title       string      `db:"title"`
	Kind        string      `db:"kind"`
	Description null.String `db:"description"`
	Link        string      `db:"link"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (r resourceRow) resource() content.Resource {
	return content.Resource{
		ID:          r.ID,
		Title:       r.Title,
		Kind:        r.Kind,
		Description: r.Description.String,
		Link:        r.Link,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

func (repo *contentRepository) queryPapers(ctx context.Context, query string, args ...interface{}) ([]content.Paper, error) {
	var rows []paperRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying papers")
	}
	papers := make([]content.Paper, 0, len(rows))
	for _, r := range rows {
		papers = append(papers, r.paper())
	}
	return papers, nil
}

func (repo *contentRepository) QueryAllPapers(ctx context.Context) ([]content.Paper, error) {
	return repo.queryPapers(ctx, `SELECT * FROM paper ORDER BY category, year DESC, id`)
}

func (repo *contentRepository) FilterPapers(ctx context.Context, category string) ([]content.Paper, error) {
	return repo.queryPapers(ctx, `SELECT * FROM paper WHERE category = $1 ORDER BY year DESC, id`, category)
}

func (repo *contentRepository) GetPaperByID(ctx context.Context, id int) (content.Paper, error) {
	var row paperRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM paper WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return content.Paper{}, content.ErrNotFound
		}
		return content.Paper{}, errors.Wrap(err, "getting paper")
	}
	return row.paper(), nil
}

func (repo *contentRepository) CreatePaper(ctx context.Context, paper content.Paper) (content.Paper, error) {
	row := paperRow{
		Title:     paper.Title,
		Authors:   null.NewString(paper.Authors, paper.Authors != ""),
		Year:      paper.Year,
		Category:  paper.Category,
		Link:      paper.Link,
		CreatedAt: paper.CreatedAt,
		UpdatedAt: paper.UpdatedAt,
	}
	query := `INSERT INTO paper (title, authors, year, category, link, created_at, updated_at)
		VALUES (:title, :authors, :year, :category, :link, :created_at, :updated_at) RETURNING id`
	stmt, err := repo.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return content.Paper{}, errors.Wrap(err, "preparing paper insert")
	}
	defer func() { _ = stmt.Close() }()

	if err = stmt.GetContext(ctx, &paper.ID, row); err != nil {
		return content.Paper{}, errors.Wrap(err, "creating paper")
	}
	return paper, nil
}

func (repo *contentRepository) UpdatePaper(ctx context.Context, paper content.Paper) (content.Paper, error) {
	row := paperRow{
		ID:        paper.ID,
		Title:     paper.Title,
		Authors:   null.NewString(paper.Authors, paper.Authors != ""),
		Year:      paper.Year,
		Category:  paper.Category,
		Link:      paper.Link,
		UpdatedAt: paper.UpdatedAt,
	}
	query := `UPDATE paper SET title = :title, authors = :authors, year = :year,
		category = :category, link = :link, updated_at = :updated_at WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return content.Paper{}, errors.Wrap(err, "updating paper")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return content.Paper{}, content.ErrNotFound
	}
	return paper, nil
}

func (repo *contentRepository) DeletePapersByID(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM paper WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building paper delete")
	}
	_, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...)
	return errors.Wrap(err, "deleting papers")
}

func (repo *contentRepository) queryResources(ctx context.Context, query string, args ...interface{}) ([]content.Resource, error) {
	var rows []resourceRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying resources")
	}
	resources := make([]content.Resource, 0, len(rows))
	for _, r := range rows {
		resources = append(resources, r.resource())
	}
	return resources, nil
}

func (repo *contentRepository) QueryAllResources(ctx context.Context) ([]content.Resource, error) {
	return repo.queryResources(ctx, `SELECT * FROM resource ORDER BY kind, id`)
}

func (repo *contentRepository) FilterResources(ctx context.Context, kind string) ([]content.Resource, error) {
	return repo.queryResources(ctx, `SELECT * FROM resource WHERE kind = $1 ORDER BY id`, kind)
}

func (repo *contentRepository) GetResourceByID(ctx context.Context, id int) (content.Resource, error) {
	var row resourceRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM resource WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return content.Resource{}, content.ErrNotFound
		}
		return content.Resource{}, errors.Wrap(err, "getting resource")
	}
	return row.resource(), nil
}

func (repo *contentRepository) CreateResource(ctx context.Context, res content.Resource) (content.Resource, error) {
	row := resourceRow{
		Title:       res.Title,
		Kind:        res.Kind,
		Description: null.NewString(res.Description, res.Description != ""),
		Link:        res.Link,
		CreatedAt:   res.CreatedAt,
		UpdatedAt:   res.UpdatedAt,
	}
	query := `INSERT INTO resource (title, kind, description, link, created_at, updated_at)
		VALUES (:title, :kind, :description, :link, :created_at, :updated_at) RETURNING id`
	stmt, err := repo.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return content.Resource{}, errors.Wrap(err, "preparing resource insert")
	}
	defer func() { _ = stmt.Close() }()

	if err = stmt.GetContext(ctx, &res.ID, row); err != nil {
		return content.Resource{}, errors.Wrap(err, "creating resource")
	}
	return res, nil
}

func (repo *contentRepository) UpdateResource(ctx context.Context, res content.Resource) (content.Resource, error) {
	row := resourceRow{
		ID:          res.ID,
		Title:       res.Title,
		Kind:        res.Kind,
		Description: null.NewString(res.Description, res.Description != ""),
		Link:        res.Link,
		UpdatedAt:   res.UpdatedAt,
	}
	query := `UPDATE resource SET title = :title, kind = :kind, description = :description,
		link = :link, updated_at = :updated_at WHERE id = :id`
	result, err := repo.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return content.Resource{}, errors.Wrap(err, "updating resource")
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return content.Resource{}, content.ErrNotFound
	}
	return res, nil
}

func (repo *contentRepository) DeleteResourcesByID(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM resource WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building resource delete")
	}
	_, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...)
	return errors.Wrap(err, "deleting resources")
}
