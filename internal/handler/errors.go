package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/wildlife-bi-go/internal/mesh"
	"github.com/jengzang/wildlife-bi-go/internal/region"
	"github.com/jengzang/wildlife-bi-go/internal/spatial"
	"github.com/jengzang/wildlife-bi-go/pkg/response"
)

// StatusFor maps service errors onto HTTP status codes
func StatusFor(err error) int {
	switch {
	case errors.Is(err, spatial.ErrConfiguration),
		errors.Is(err, region.ErrUnknownRegion),
		errors.Is(err, mesh.ErrTooManyCells),
		errors.Is(err, mesh.ErrInvalidSize):
		return http.StatusBadRequest
	case errors.Is(err, spatial.ErrProjection):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, message string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		response.InternalError(c, message, err)
		return
	}
	response.Error(c, status, message, err)
}
