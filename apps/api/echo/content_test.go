package echoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ewanblake/aihub/core/content"
)

func seedPaper(t *testing.T, svc *content.Service, category string) content.Paper {
	t.Helper()
	paper, err := svc.CreatePaper(context.Background(), content.NewPaper{
		Title:    "Attention Is All You Need",
		Authors:  "Vaswani et al.",
		Year:     2017,
		Category: category,
		Link:     "https://arxiv.org/abs/1706.03762",
	})
	if err != nil {
		t.Fatalf("seedPaper(): %v", err)
	}
	return paper
}

func seedResource(t *testing.T, svc *content.Service, kind string) content.Resource {
	t.Helper()
	res, err := svc.CreateResource(context.Background(), content.NewResource{
		Title:       "Machine Learning Crash Course",
		Kind:        kind,
		Description: "A self-study guide with video lectures and exercises.",
		Link:        "https://developers.google.com/machine-learning/crash-course",
	})
	if err != nil {
		t.Fatalf("seedResource(): %v", err)
	}
	return res
}

func Test_contentApi_queryPapers(t *testing.T) {
	app, svc := setup(t, nil)
	p1 := seedPaper(t, svc, content.CategoryDeepLearning)
	p2 := seedPaper(t, svc, content.CategoryMachineLearning)

	req, rec := newRequest(http.MethodGet, "/v1/papers")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var papers []content.Paper
	if err := json.Unmarshal(rec.Body.Bytes(), &papers); err != nil {
		t.Fatalf("unmarshalling papers: %v", err)
	}
	assert.Len(t, papers, 2)

	// filtered by category
	req, rec = newRequest(http.MethodGet, "/v1/papers?category=Machine+Learning")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	papers = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &papers); err != nil {
		t.Fatalf("unmarshalling papers: %v", err)
	}
	if assert.Len(t, papers, 1) {
		assert.Equal(t, p2.ID, papers[0].ID)
		assert.NotEqual(t, p1.ID, papers[0].ID)
	}
}

func Test_contentApi_retrievePaper(t *testing.T) {
	app, svc := setup(t, nil)
	paper := seedPaper(t, svc, content.CategoryAI)

	req, rec := newRequest(http.MethodGet, fmt.Sprintf("/v1/papers/%d", paper.ID))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got content.Paper
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshalling paper: %v", err)
	}
	assert.Equal(t, paper.Title, got.Title)

	req, rec = newRequest(http.MethodGet, "/v1/papers/999")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_contentApi_queryResources(t *testing.T) {
	app, svc := setup(t, nil)
	seedResource(t, svc, content.KindCourse)
	seedResource(t, svc, content.KindVideo)

	req, rec := newRequest(http.MethodGet, "/v1/resources?kind=video")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resources []content.Resource
	if err := json.Unmarshal(rec.Body.Bytes(), &resources); err != nil {
		t.Fatalf("unmarshalling resources: %v", err)
	}
	if assert.Len(t, resources, 1) {
		assert.Equal(t, content.KindVideo, resources[0].Kind)
	}
}

func Test_contentApi_createPaper(t *testing.T) {
	app, _ := setup(t, nil)
	token := getToken(t, app)

	data := marchallObj(t, content.NewPaper{
		Title:    "Deep Residual Learning for Image Recognition",
		Authors:  "He et al.",
		Year:     2015,
		Category: content.CategoryDeepLearning,
		Link:     "https://arxiv.org/abs/1512.03385",
	})

	// no token
	req, rec := newRequest(http.MethodPost, "/v1/admin/papers", data)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req, rec = newAuthRequest(http.MethodPost, "/v1/admin/papers", token, data)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var paper content.Paper
	if err := json.Unmarshal(rec.Body.Bytes(), &paper); err != nil {
		t.Fatalf("unmarshalling paper: %v", err)
	}
	assert.NotZero(t, paper.ID)
	assert.Equal(t, "Deep Residual Learning for Image Recognition", paper.Title)
}

func Test_contentApi_createPaperValidation(t *testing.T) {
	app, _ := setup(t, nil)
	token := getToken(t, app)

	tests := []httpTest{
		{
			name: "unknown category",
			body: marchallObj(t, content.NewPaper{
				Title:    "ImageNet Classification",
				Authors:  "Krizhevsky et al.",
				Year:     2012,
				Category: "Robotics",
				Link:     "https://example.com/paper",
			}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "year too old",
			body: marchallObj(t, content.NewPaper{
				Title:    "On Computable Numbers",
				Authors:  "Turing",
				Year:     1936,
				Category: content.CategoryAI,
				Link:     "https://example.com/paper",
			}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "missing link",
			body: marchallObj(t, content.NewPaper{
				Title:    "ImageNet Classification",
				Authors:  "Krizhevsky et al.",
				Year:     2012,
				Category: content.CategoryAI,
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"link": "this field is required"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/admin/papers", token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_contentApi_updatePaper(t *testing.T) {
	app, svc := setup(t, nil)
	token := getToken(t, app)
	paper := seedPaper(t, svc, content.CategoryAI)

	data := marchallObj(t, content.NewPaper{
		Title:    "Attention Is All You Need (annotated)",
		Authors:  "Vaswani et al.",
		Year:     2017,
		Category: content.CategoryDeepLearning,
		Link:     "https://arxiv.org/abs/1706.03762",
	})

	req, rec := newAuthRequest(http.MethodPut, fmt.Sprintf("/v1/admin/papers/%d", paper.ID), token, data)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got content.Paper
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshalling paper: %v", err)
	}
	assert.Equal(t, paper.ID, got.ID)
	assert.Equal(t, "Attention Is All You Need (annotated)", got.Title)
	assert.Equal(t, content.CategoryDeepLearning, got.Category)

	req, rec = newAuthRequest(http.MethodPut, "/v1/admin/papers/999", token, data)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_contentApi_destroyPapers(t *testing.T) {
	app, svc := setup(t, nil)
	token := getToken(t, app)
	p1 := seedPaper(t, svc, content.CategoryAI)
	p2 := seedPaper(t, svc, content.CategoryAI)

	// ids are required
	req, rec := newAuthRequest(http.MethodDelete, "/v1/admin/papers", token)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req, rec = newAuthRequest(http.MethodDelete, fmt.Sprintf("/v1/admin/papers?id=%d&id=%d", p1.ID, p2.ID), token)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	papers, err := svc.QueryPapers(context.Background(), "")
	assert.NoError(t, err)
	assert.Empty(t, papers)
}

func Test_contentApi_createResource(t *testing.T) {
	app, _ := setup(t, nil)
	token := getToken(t, app)

	data := marchallObj(t, content.NewResource{
		Title:       "Intro to Deep Learning",
		Kind:        content.KindCourse,
		Description: "Semester-long lectures with assignments.",
		Link:        "https://example.com/course",
	})
	req, rec := newAuthRequest(http.MethodPost, "/v1/admin/resources", token, data)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var res content.Resource
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshalling resource: %v", err)
	}
	assert.NotZero(t, res.ID)

	// and tear it down
	req, rec = newAuthRequest(http.MethodDelete, fmt.Sprintf("/v1/admin/resources?id=%d", res.ID), token)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
