package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ewanblake/aihub/core"
	"github.com/ewanblake/aihub/core/quiz"
)

// ResultsPath is where the frontend takes the user after a submit.
const ResultsPath = "/resources/educational-resources/result"

type quizApi struct {
	svc *quiz.Service
}

func registerQuizAPI(g *echo.Group, svc *quiz.Service) {
	api := quizApi{svc: svc}

	qg := g.Group("/quiz")
	qg.GET("", api.retrieveQuiz)

	sg := qg.Group("/sessions")
	sg.POST("", api.startSession)

	dg := sg.Group("/:id")
	dg.GET("", api.retrieveSession)
	dg.PUT("/answers/:index", api.setAnswer)
	dg.POST("/reset", api.resetSession)
	dg.POST("/submit", api.submitSession)
	dg.GET("/results", api.sessionResults)
	dg.DELETE("", api.endSession)
}

type (
	SessionResponse struct {
		ID        string   `json:"id"`
		Answers   []string `json:"answers"`
		Submitted bool     `json:"submitted"`
	}

	SetAnswerRequest struct {
		Answer string `json:"answer"`
	}

	SubmitResponse struct {
		Score        int    `json:"score"`
		PercentScore string `json:"percent_score"`
		Redirect     string `json:"redirect"`
	}

	ResultsResponse struct {
		Score        int               `json:"score"`
		PercentScore string            `json:"percent_score"`
		Results      []quiz.SlotResult `json:"results"`
	}
)

func sessionResponse(sess *quiz.Session) SessionResponse {
	return SessionResponse{
		ID:        sess.ID,
		Answers:   sess.Answers(),
		Submitted: sess.Submitted(),
	}
}

// Handlers

// retrieveQuiz returns the question set; the answer key never leaves the server.
func (api *quizApi) retrieveQuiz(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Quiz())
}

func (api *quizApi) startSession(ctx echo.Context) error {
	sess := api.svc.StartSession()
	return ctx.JSON(http.StatusCreated, sessionResponse(sess))
}

func (api *quizApi) retrieveSession(ctx echo.Context) error {
	sess, err := api.getSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sessionResponse(sess))
}

func (api *quizApi) setAnswer(ctx echo.Context) error {
	sess, err := api.getSession(ctx)
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "index", Error: "must be an integer"})
	}

	var data SetAnswerRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SetAnswerRequest")
	}

	if err = sess.SetAnswer(index, data.Answer); err != nil {
		if errors.Cause(err) == quiz.ErrSlotOutOfRange {
			return core.NewValidationError(nil, core.FieldError{Field: "index", Error: err.Error()})
		}
		return errors.Wrap(err, "setting answer")
	}
	return ctx.JSON(http.StatusOK, sessionResponse(sess))
}

func (api *quizApi) resetSession(ctx echo.Context) error {
	sess, err := api.getSession(ctx)
	if err != nil {
		return err
	}
	sess.Reset()
	return ctx.JSON(http.StatusOK, sessionResponse(sess))
}

func (api *quizApi) submitSession(ctx echo.Context) error {
	sess, err := api.getSession(ctx)
	if err != nil {
		return err
	}

	score := sess.Submit()
	return ctx.JSON(http.StatusOK, SubmitResponse{
		Score:        score,
		PercentScore: sess.PercentScore(),
		Redirect:     ResultsPath,
	})
}

// sessionResults serves the results view from the same session that was scored.
func (api *quizApi) sessionResults(ctx echo.Context) error {
	sess, err := api.getSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ResultsResponse{
		Score:        sess.Score(),
		PercentScore: sess.PercentScore(),
		Results:      sess.Results(),
	})
}

func (api *quizApi) endSession(ctx echo.Context) error {
	if err := api.svc.EndSession(ctx.Param("id")); err != nil {
		if errors.Cause(err) == quiz.ErrSessionNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "ending session")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *quizApi) getSession(ctx echo.Context) (*quiz.Session, error) {
	sess, err := api.svc.GetSession(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == quiz.ErrSessionNotFound {
			return nil, errHttpNotFound
		}
		return nil, errors.Wrap(err, "getting session")
	}
	return sess, nil
}
