package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/gateway/inmem"
)

var (
	errUnauthorized  = echo.NewHTTPError(http.StatusUnauthorized, "No autenticado")
	errHTTPNotFound  = echo.NewHTTPError(http.StatusNotFound, "Recurso no encontrado")
	errHTTPForbidden = echo.NewHTTPError(http.StatusForbidden, "No autorizado")
)

// statusFor maps store errors onto the backend's status codes.
func statusFor(err error) int {
	switch errors.Cause(err) {
	case inmem.ErrNotFound:
		return http.StatusNotFound
	case inmem.ErrForbidden:
		return http.StatusForbidden
	case inmem.ErrBadCredentials:
		return http.StatusUnauthorized
	case inmem.ErrRideFull, inmem.ErrStudentNoGroup, inmem.ErrDuplicateJoin, inmem.ErrConversationDup, inmem.ErrFriendshipDup:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// newHTTPErrorHandler wraps every failure in the backend's
// {"detail": ...} envelope: a plain string for simple failures, a list of
// {"msg": ...} objects for field validation.
func newHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var detail interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			detail = origErr.Message
		case validator.ValidationErrors:
			msgs := make([]echo.Map, 0, len(origErr))
			for _, vErr := range origErr {
				msgs = append(msgs, echo.Map{"msg": vErr.Translate(core.Translator)})
			}
			code = http.StatusBadRequest
			detail = msgs
		case *core.ValidationError:
			msgs := make([]echo.Map, 0, len(origErr.Fields))
			for _, fErr := range origErr.Fields {
				msgs = append(msgs, echo.Map{"msg": fErr.Error})
			}
			code = http.StatusBadRequest
			detail = msgs
		default:
			code = statusFor(err)
			detail = origErr.Error()
			if code == http.StatusInternalServerError {
				detail = http.StatusText(code)
				logger.Error("unhandled api error", errors.Wrap(err, "stub server"))
			}
		}

		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, echo.Map{"detail": detail})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
