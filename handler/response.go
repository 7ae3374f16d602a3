package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/mindmap-be/types"
)

func writeOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, types.DataResponse{
		Status: true,
		Data:   data,
	})
}

func writeBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, types.DataResponse{
		Status:  false,
		Message: message,
	})
}

// writeError maps domain errors onto status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, types.DataResponse{
		Status:  false,
		Message: err.Error(),
	})
}
