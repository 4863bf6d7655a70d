package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OlgaArenas22/phpMiW/internal/middleware"
	"github.com/OlgaArenas22/phpMiW/internal/service"
	"github.com/OlgaArenas22/phpMiW/pkg/apiutil"
	"github.com/OlgaArenas22/phpMiW/pkg/etag"
)

// Нестандартный статус «содержимое возвращено после обновления».
// Его ожидают существующие клиенты API, менять на 200 нельзя.
const statusContentReturned = 209

// ResultCommandHandler обрабатывает команды над результатами:
// создание, обновление и удаление
type ResultCommandHandler struct {
	resultService *service.ResultService
}

// NewResultCommandHandler создает новый обработчик команд
func NewResultCommandHandler(resultService *service.ResultService) *ResultCommandHandler {
	return &ResultCommandHandler{resultService: resultService}
}

// decodePayload разбирает тело запроса, сохраняя сырые поля.
// Нечитаемое тело эквивалентно пустому: дальнейшая валидация
// сама решит, какой ошибкой это обернется.
func decodePayload(c *gin.Context) service.ResultPayload {
	var payload service.ResultPayload
	if err := json.NewDecoder(c.Request.Body).Decode(&payload); err != nil {
		return service.ResultPayload{}
	}
	return payload
}

// Post создает новый результат, владельцем становится вызывающий
func (h *ResultCommandHandler) Post(c *gin.Context) {
	caller := middleware.CallerFromContext(c)
	payload := decodePayload(c)

	result, err := h.resultService.Create(c.Request.Context(), caller, payload)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}

	headers := map[string]string{
		"Location": fmt.Sprintf("%s://%s%s/%d", scheme, c.Request.Host, resultsBasePath, result.ID),
	}

	apiutil.APIResponse(c, http.StatusCreated, resultEnvelope{Result: result}, apiutil.GetFormat(c), headers)
}

// Put применяет частичное обновление под защитой If-Match
// и возвращает обновленное представление со статусом 209
func (h *ResultCommandHandler) Put(c *gin.Context) {
	kind, id, format, hasFormat := parseItemKey(c.Param("key"))
	if hasFormat {
		apiutil.SetFormat(c, format)
	}
	if kind != kindID {
		apiutil.ErrorMessage(c, http.StatusNotFound, "")
		return
	}

	caller := middleware.CallerFromContext(c)
	payload := decodePayload(c)
	ifMatch := c.GetHeader(headerIfMatch)

	result, err := h.resultService.Update(c.Request.Context(), caller, id, payload, ifMatch)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	// Стампуем свежий отпечаток, чтобы клиент мог продолжить
	// цепочку условных запросов без лишнего GET
	tag, err := etag.Fingerprint(result)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	headers := map[string]string{
		headerCacheControl: "private",
		headerETag:         tag,
	}

	apiutil.APIResponse(c, statusContentReturned, resultEnvelope{Result: result}, apiutil.GetFormat(c), headers)
}

// Delete физически удаляет результат и возвращает 204 без тела
func (h *ResultCommandHandler) Delete(c *gin.Context) {
	kind, id, format, hasFormat := parseItemKey(c.Param("key"))
	if hasFormat {
		apiutil.SetFormat(c, format)
	}
	if kind != kindID {
		apiutil.ErrorMessage(c, http.StatusNotFound, "")
		return
	}

	caller := middleware.CallerFromContext(c)

	if err := h.resultService.Delete(c.Request.Context(), caller, id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
