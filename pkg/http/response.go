package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DataResponse sends a successful response with data.
func DataResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// SuccessResponse sends a successful response with a message.
func SuccessResponse(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
	})
}

// BadRequestResponse sends a 400 error response.
func BadRequestResponse(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Error:   message,
	})
}

// NotFoundResponse sends a 404 error response.
func NotFoundResponse(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, APIResponse{
		Success: false,
		Error:   message,
	})
}

// InternalServerErrorResponse sends a 500 error response.
func InternalServerErrorResponse(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, APIResponse{
		Success: false,
		Error:   message,
	})
}

// AppErrorResponse maps an AppError to the matching response.
func AppErrorResponse(c echo.Context, err *AppError) error {
	status := err.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, APIResponse{
		Success: false,
		Error:   err.Message,
	})
}

// ValidationErrorResponse sends a 400 response with field errors.
func ValidationErrorResponse(c echo.Context, errs []ValidationError) error {
	return c.JSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Error:   "validation failed",
		Details: errs,
	})
}
