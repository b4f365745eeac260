package response

import "github.com/gin-gonic/gin"

// Status values of the envelope
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     StatusSuccess,
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     StatusError,
		StatusCode: statusCode,
		Error:      err,
	}
}

// JSON writes data wrapped in a success envelope
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Success(statusCode, data))
}

// Abort stops the handler chain with an error envelope
func Abort(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Error(statusCode, message))
}
