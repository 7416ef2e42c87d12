package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/gateway/inmem"
)

func registerAuthAPI(g *echo.Group, opts *Options) {
	api := authAPI{store: opts.Store}
	g.POST("/auth/login", api.login)
	g.GET("/auth/me", api.me, requireAuth(opts))
}

type authAPI struct {
	store *inmem.Store
}

// login accepts the form-encoded credential pair and returns a bearer token.
func (api authAPI) login(ctx echo.Context) error {
	username := ctx.FormValue("username")
	password := ctx.FormValue("password")
	if username == "" || password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Credenciales incompletas")
	}
	tok, err := api.store.Authenticate(ctx.Request().Context(), username, password)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"access_token": tok, "token_type": "bearer"})
}

func (api authAPI) me(ctx echo.Context) error {
	usr, err := api.store.Me(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

// requireAuth validates the bearer token and pins the store's caller
// identity for the request. The store serves one developer at a time.
func requireAuth(opts *Options) echo.MiddlewareFunc {
	secret := []byte(opts.Conf.SecretKey)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return errUnauthorized
			}
			token := strings.TrimPrefix(header, "Bearer ")
			claims, err := session.ParseClaims(token, secret)
			if err != nil {
				return errUnauthorized
			}
			opts.Store.SetToken(token)
			ctx.Set("claims", claims)
			return next(ctx)
		}
	}
}
