package content_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ewanblake/aihub/core"
	"github.com/ewanblake/aihub/core/content"
	inmemdb "github.com/ewanblake/aihub/storage/database/inmem"
)

func setup(t *testing.T) *content.Service {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup(): %v", err)
	}
	return content.NewService(inmemdb.NewContentRepository(db))
}

func createPaper(t *testing.T, svc *content.Service, title, category string, year int) content.Paper {
	t.Helper()
	paper, err := svc.CreatePaper(context.Background(), content.NewPaper{
		Title:    title,
		Authors:  "A. Author",
		Year:     year,
		Category: category,
		Link:     "https://example.com/" + title,
	})
	if err != nil {
		t.Fatalf("createPaper(): %v", err)
	}
	return paper
}

func Test_Service_QueryPapers(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	p1 := createPaper(t, svc, "ML Basics", content.CategoryMachineLearning, 2022)
	p2 := createPaper(t, svc, "DL Review", content.CategoryDeepLearning, 2021)
	p3 := createPaper(t, svc, "ML Directions", content.CategoryMachineLearning, 2021)

	all, err := svc.QueryPapers(ctx, "")
	if err != nil {
		t.Fatalf("QueryPapers(): %v", err)
	}
	assert.Len(t, all, 3)

	ml, err := svc.QueryPapers(ctx, content.CategoryMachineLearning)
	if err != nil {
		t.Fatalf("QueryPapers(ml): %v", err)
	}
	if assert.Len(t, ml, 2) {
		assert.Equal(t, p1.ID, ml[0].ID)
		assert.Equal(t, p3.ID, ml[1].ID)
	}

	got, err := svc.GetPaper(ctx, p2.ID)
	if err != nil {
		t.Fatalf("GetPaper(): %v", err)
	}
	assert.Equal(t, "DL Review", got.Title)
}

func Test_Service_UpdatePaper(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	paper := createPaper(t, svc, "ML Basics", content.CategoryMachineLearning, 2022)

	updated, err := svc.UpdatePaper(ctx, paper.ID, content.NewPaper{
		Title:    "ML Basics, 2nd ed.",
		Authors:  "A. Author",
		Year:     2023,
		Category: content.CategoryMachineLearning,
		Link:     "https://example.com/ml-basics-2e",
	})
	if err != nil {
		t.Fatalf("UpdatePaper(): %v", err)
	}
	assert.Equal(t, paper.ID, updated.ID)
	assert.Equal(t, "ML Basics, 2nd ed.", updated.Title)
	assert.Equal(t, 2023, updated.Year)
	assert.True(t, updated.UpdatedAt.After(paper.UpdatedAt) || updated.UpdatedAt.Equal(paper.UpdatedAt))

	got, err := svc.GetPaper(ctx, paper.ID)
	if err != nil {
		t.Fatalf("GetPaper(): %v", err)
	}
	assert.Equal(t, "ML Basics, 2nd ed.", got.Title)

	if _, err = svc.UpdatePaper(ctx, 999, content.NewPaper{}); err != content.ErrNotFound {
		t.Errorf("UpdatePaper(unknown) err = %v; want ErrNotFound", err)
	}
}

func Test_Service_DeletePapers(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	p1 := createPaper(t, svc, "One", content.CategoryAI, 2020)
	p2 := createPaper(t, svc, "Two", content.CategoryAI, 2021)

	if err := svc.DeletePapers(ctx, p1.ID); err != nil {
		t.Fatalf("DeletePapers(): %v", err)
	}
	if _, err := svc.GetPaper(ctx, p1.ID); err != content.ErrNotFound {
		t.Errorf("GetPaper(deleted) err = %v; want ErrNotFound", err)
	}
	if _, err := svc.GetPaper(ctx, p2.ID); err != nil {
		t.Errorf("GetPaper(kept) err = %v; want nil", err)
	}
}

func Test_Service_Resources(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	res, err := svc.CreateResource(ctx, content.NewResource{
		Title:       "Intro to AI",
		Kind:        content.KindCourse,
		Description: "Learn the basics.",
		Link:        "https://example.com/intro",
	})
	if err != nil {
		t.Fatalf("CreateResource(): %v", err)
	}
	if _, err = svc.CreateResource(ctx, content.NewResource{
		Title:       "ML Applications",
		Kind:        content.KindVideo,
		Description: "Everyday ML.",
		Link:        "https://example.com/video",
	}); err != nil {
		t.Fatalf("CreateResource(): %v", err)
	}

	videos, err := svc.QueryResources(ctx, content.KindVideo)
	if err != nil {
		t.Fatalf("QueryResources(): %v", err)
	}
	if assert.Len(t, videos, 1) {
		assert.Equal(t, "ML Applications", videos[0].Title)
	}

	if err = svc.DeleteResources(ctx, res.ID); err != nil {
		t.Fatalf("DeleteResources(): %v", err)
	}
	if _, err = svc.GetResource(ctx, res.ID); err != content.ErrNotFound {
		t.Errorf("GetResource(deleted) err = %v; want ErrNotFound", err)
	}
}

func Test_NewPaper_Validate(t *testing.T) {
	validate, translator := core.NewValidator()
	content.InitValidators(validate, translator)

	valid := func() content.NewPaper {
		return content.NewPaper{
			Title:    "Machine Learning: The Basics",
			Authors:  "A. Jung",
			Year:     2022,
			Category: content.CategoryMachineLearning,
			Link:     "https://link.springer.com/book/10.1007/978-981-16-8193-6",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*content.NewPaper)
		wantErr bool
	}{
		{"valid", func(np *content.NewPaper) {}, false},
		{"missing title", func(np *content.NewPaper) { np.Title = "" }, true},
		{"bad category", func(np *content.NewPaper) { np.Category = "Robotics" }, true},
		{"bad link", func(np *content.NewPaper) { np.Link = "not a url" }, true},
		{"year too early", func(np *content.NewPaper) { np.Year = 1900 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			np := valid()
			tt.mutate(&np)
			err := np.Validate(validate)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}
