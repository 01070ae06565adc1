package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/ewanblake/aihub/core"
)

type Claims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

func appJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		Claims:     &Claims{},
		SigningKey: []byte(conf.SecretKey),
	}
}

// GetAdminClaims returns the claims encoded into admin tokens.
func GetAdminClaims(conf *core.Config) Claims {
	now := time.Now()
	return Claims{
		Username: conf.Admin.Username,
		StandardClaims: jwt.StandardClaims{
			Subject:   conf.Admin.Username,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(conf.JWTExpirationDelta).Unix(),
		},
	}
}

func GenerateToken(conf *core.Config, claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(conf.SecretKey))
	return signed, errors.Wrap(err, "signing token")
}

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	return validate.Struct(lr)
}

type authApi struct {
	conf     *core.Config
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, conf *core.Config, validate *validator.Validate) {
	api := authApi{conf: conf, validate: validate}

	ag := g.Group("/admin")
	ag.POST("/login", api.login)
}

// login authenticates the configured admin account and issues a token.
func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if data.Username != api.conf.Admin.Username {
		return errAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(api.conf.Admin.PasswordHash), []byte(data.Password)); err != nil {
		return errAuthenticationFailed
	}

	token, err := GenerateToken(api.conf, GetAdminClaims(api.conf))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}
