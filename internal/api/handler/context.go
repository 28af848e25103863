package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the principal injected by the Auth middleware.
// A missing id means the middleware did not run or the token carried no
// identity; either way the request is unauthenticated.
func ctxUserID(c echo.Context) (int64, error) {
	id, ok := c.Get("user_id").(int64)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
