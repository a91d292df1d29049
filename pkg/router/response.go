package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sponsornet/backend/pkg/errorx"
	"github.com/sponsornet/backend/pkg/xcontext"
)

type response struct {
	Code  errorx.Code `json:"code"`
	Error string      `json:"error,omitempty"`
	Data  any         `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{Code: 0, Data: data}
}

func newErrorResponse(err error) (int, response) {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return errx.Code.HTTPStatus(), response{Code: errx.Code, Error: errx.Message}
	}

	return http.StatusInternalServerError, response{
		Code:  errorx.Unknown.Code,
		Error: errorx.Unknown.Message,
	}
}

func writeResponse(ctx context.Context, c *gin.Context) {
	if err := xcontext.Error(ctx); err != nil {
		status, resp := newErrorResponse(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, newResponse(xcontext.Response(ctx)))
}
