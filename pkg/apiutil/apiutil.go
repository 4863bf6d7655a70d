// Package apiutil содержит общие помощники для формирования API-ответов:
// согласование формата (json|xml), тела ответов и структурированные ошибки.
package apiutil

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Format обозначает формат сериализации ответа
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ключ контекста, через который маршруты передают формат из расширения пути
const formatContextKey = "response_format"

// APIError — структурированное тело ошибки
type APIError struct {
	XMLName xml.Name `json:"-" xml:"error"`
	Code    int      `json:"code" xml:"code"`
	Message string   `json:"message" xml:"message"`
}

// SetFormat фиксирует формат ответа, извлеченный из расширения пути
func SetFormat(c *gin.Context, format Format) {
	c.Set(formatContextKey, format)
}

// GetFormat определяет формат ответа: сначала расширение пути,
// затем заголовок Accept, по умолчанию JSON
func GetFormat(c *gin.Context) Format {
	if v, ok := c.Get(formatContextKey); ok {
		if f, ok := v.(Format); ok {
			return f
		}
	}

	accept := c.GetHeader("Accept")
	if strings.Contains(accept, "application/xml") || strings.Contains(accept, "text/xml") {
		return FormatXML
	}

	return FormatJSON
}

// APIResponse отправляет ответ в согласованном формате.
// payload == nil означает ответ без тела (HEAD, 204).
func APIResponse(c *gin.Context, status int, payload interface{}, format Format, headers map[string]string) {
	for k, v := range headers {
		c.Header(k, v)
	}

	if payload == nil {
		c.Status(status)
		return
	}

	if format == FormatXML {
		c.XML(status, payload)
		return
	}

	c.JSON(status, payload)
}

// ErrorMessage отправляет структурированную ошибку {code, message}.
// Пустое message заменяется стандартным текстом статуса.
func ErrorMessage(c *gin.Context, status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}

	body := APIError{Code: status, Message: message}
	APIResponse(c, status, body, GetFormat(c), nil)
}
