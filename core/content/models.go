package content

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ewanblake/aihub/core"
)

// Paper categories as shown on the academic-papers page.
const (
	CategoryAI              = "Artificial Intelligence"
	CategoryMachineLearning = "Machine Learning"
	CategoryDeepLearning    = "Deep Learning"
)

var Categories = []string{CategoryAI, CategoryMachineLearning, CategoryDeepLearning}

// Resource kinds
const (
	KindVideo   = "video"
	KindArticle = "article"
	KindCourse  = "course"
)

var Kinds = []string{KindVideo, KindArticle, KindCourse}

type Paper struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Authors   string    `json:"authors"`
	Year      int       `json:"year"`
	Category  string    `json:"category"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type Resource struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// NewPaper contains information needed to list a new Paper.
type NewPaper struct {
	Title    string `json:"title" validate:"required"`
	Authors  string `json:"authors" validate:"required"`
	Year     int    `json:"year" validate:"required,min=1950"`
	Category string `json:"category" validate:"required,category"`
	Link     string `json:"link" validate:"required,url"`
}

func (np *NewPaper) Validate(validate *validator.Validate) error {
	np.Title = core.CleanString(np.Title)
	np.Authors = core.CleanString(np.Authors)
	np.Category = core.CleanString(np.Category)
	np.Link = core.CleanString(np.Link)
	return validate.Struct(np)
}

// NewResource contains information needed to list a new Resource.
type NewResource struct {
	Title       string `json:"title" validate:"required"`
	Kind        string `json:"kind" validate:"required,resourcekind"`
	Description string `json:"description" validate:"required"`
	Link        string `json:"link" validate:"required,url"`
}

func (nr *NewResource) Validate(validate *validator.Validate) error {
	nr.Title = core.CleanString(nr.Title)
	nr.Kind = core.CleanString(nr.Kind, true /* lower */)
	nr.Description = core.CleanString(nr.Description)
	nr.Link = core.CleanString(nr.Link)
	return validate.Struct(nr)
}
