package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`

	// SuggestedStartTime é o próximo início válido em minutos desde a
	// meia-noite, presente apenas em rejeições por margem.
	SuggestedStartTime *int `json:"suggested_start_time,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

// Unprocessable cobre as violações de margem: o horário não se
// sobrepõe a ninguém, mas fere a regra de preparo. Quando houver,
// suggestedStart (em minutos) vai junto para o cliente reagir.
func Unprocessable(c *gin.Context, code, message string, suggestedStart *int) {
	c.JSON(http.StatusUnprocessableEntity, HTTPError{
		Code:               code,
		Message:            message,
		SuggestedStartTime: suggestedStart,
	})
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}
