package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ewanblake/aihub/core"
	"github.com/ewanblake/aihub/core/content"
)

type contentApi struct {
	svc      *content.Service
	validate *validator.Validate
}

func registerContentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *content.Service, validate *validator.Validate) {
	api := contentApi{svc: svc, validate: validate}

	// public listings
	g.GET("/papers", api.queryPapers)
	g.GET("/papers/:id", api.retrievePaper)
	g.GET("/resources", api.queryResources)
	g.GET("/resources/:id", api.retrieveResource)

	// admin-only mutations
	ag := g.Group("/admin", jwt)
	ag.POST("/papers", api.createPaper)
	ag.PUT("/papers/:id", api.updatePaper)
	ag.DELETE("/papers", api.destroyPapers)
	ag.POST("/resources", api.createResource)
	ag.PUT("/resources/:id", api.updateResource)
	ag.DELETE("/resources", api.destroyResources)
}

// Handlers

func (api *contentApi) queryPapers(ctx echo.Context) error {
	papers, err := api.svc.QueryPapers(ctx.Request().Context(), ctx.QueryParam("category"))
	if err != nil {
		return errors.Wrap(err, "querying papers")
	}
	return ctx.JSON(http.StatusOK, papers)
}

func (api *contentApi) retrievePaper(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	paper, err := api.svc.GetPaper(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting paper")
	}
	return ctx.JSON(http.StatusOK, paper)
}

func (api *contentApi) createPaper(ctx echo.Context) error {
	var data content.NewPaper
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPaper")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	paper, err := api.svc.CreatePaper(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating paper")
	}
	return ctx.JSON(http.StatusCreated, paper)
}

func (api *contentApi) updatePaper(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	var data content.NewPaper
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPaper")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	paper, err := api.svc.UpdatePaper(ctx.Request().Context(), id, data)
	if err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating paper")
	}
	return ctx.JSON(http.StatusOK, paper)
}

func (api *contentApi) destroyPapers(ctx echo.Context) error {
	ids, err := bindIDs(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.DeletePapers(ctx.Request().Context(), ids...); err != nil {
		return errors.Wrap(err, "deleting papers")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *contentApi) queryResources(ctx echo.Context) error {
	resources, err := api.svc.QueryResources(ctx.Request().Context(), ctx.QueryParam("kind"))
	if err != nil {
		return errors.Wrap(err, "querying resources")
	}
	return ctx.JSON(http.StatusOK, resources)
}

func (api *contentApi) retrieveResource(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	res, err := api.svc.GetResource(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting resource")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *contentApi) createResource(ctx echo.Context) error {
	var data content.NewResource
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewResource")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.CreateResource(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating resource")
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *contentApi) updateResource(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	var data content.NewResource
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewResource")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.UpdateResource(ctx.Request().Context(), id, data)
	if err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating resource")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *contentApi) destroyResources(ctx echo.Context) error {
	ids, err := bindIDs(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.DeleteResources(ctx.Request().Context(), ids...); err != nil {
		return errors.Wrap(err, "deleting resources")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// bindIDs parses the repeated `id` query param.
func bindIDs(ctx echo.Context) ([]int, error) {
	vals, ok := ctx.QueryParams()["id"]
	if !ok || len(vals) == 0 {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "id", Error: "at least one id is required"})
	}
	ids := make([]int, 0, len(vals))
	for _, v := range vals {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, core.NewValidationError(nil, core.FieldError{Field: "id", Error: "ids must be integers"})
		}
		ids = append(ids, id)
	}
	return ids, nil
}
