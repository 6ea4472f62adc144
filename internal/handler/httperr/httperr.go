// Package httperr defines the error body every endpoint returns and a
// helper for aborting a request with one.
package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the wire shape of an error reply. Status is carried for
// the error middleware but never serialized.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// NewResponse builds a Response with the given status and message.
func NewResponse(status int, msg string) Response {
	resp := Response{Status: status}
	resp.Error.Message = msg
	return resp
}

// AbortWithError writes the error body and stops the handler chain. The
// underlying err is attached to the gin context so the logging
// middleware can report the cause without leaking it to the client.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("httperr: AbortWithError requires a non-nil error")
	}

	resp := NewResponse(status, msg)
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
