package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ewanblake/aihub/core/suggestion"
)

type suggestionApi struct {
	svc      *suggestion.Service
	validate *validator.Validate
}

func registerSuggestionAPI(g *echo.Group, svc *suggestion.Service, validate *validator.Validate) {
	api := suggestionApi{svc: svc, validate: validate}

	g.POST("/suggestions", api.create)
}

// create dispatches one suggestion email. The dispatch outcome is surfaced in
// the response status field, not as an HTTP error; the attempt is never
// retried here.
func (api *suggestionApi) create(ctx echo.Context) error {
	var data suggestion.NewSuggestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSuggestion")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub := api.svc.Submit(data)
	return ctx.JSON(http.StatusOK, sub)
}
