package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/OlgaArenas22/phpMiW/internal/middleware"
	"github.com/OlgaArenas22/phpMiW/internal/service"
	"github.com/OlgaArenas22/phpMiW/pkg/apiutil"
	"github.com/OlgaArenas22/phpMiW/pkg/etag"
)

// ResultQueryHandler обрабатывает запросы чтения результатов:
// коллекция, одиночный ресурс, топ, статистика и OPTIONS
type ResultQueryHandler struct {
	resultService *service.ResultService
}

// NewResultQueryHandler создает новый обработчик запросов чтения
func NewResultQueryHandler(resultService *service.ResultService) *ResultQueryHandler {
	return &ResultQueryHandler{resultService: resultService}
}

// respondCached отправляет ответ с валидаторами кеша: при совпадении
// If-None-Match — 304 без тела, иначе 200 с ETag и Cache-Control: private.
// fingerprinted — представление, от которого считается отпечаток;
// payload — конверт тела ответа.
func (h *ResultQueryHandler) respondCached(c *gin.Context, fingerprinted interface{}, payload interface{}) {
	tag, err := etag.Fingerprint(fingerprinted)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if etag.Match(c.GetHeader(headerIfNoneMatch), tag) {
		c.Status(http.StatusNotModified)
		return
	}

	headers := map[string]string{
		headerCacheControl: "private",
		headerETag:         tag,
	}

	// HEAD повторяет статус и валидаторы GET, но без тела
	if c.Request.Method == http.MethodHead {
		payload = nil
	}

	apiutil.APIResponse(c, http.StatusOK, payload, apiutil.GetFormat(c), headers)
}

// CGet возвращает коллекцию результатов в области видимости вызывающего.
// Параметр sort ограничен списком id|value|time; неизвестное значение
// молча заменяется на id.
func (h *ResultQueryHandler) CGet(c *gin.Context) {
	caller := middleware.CallerFromContext(c)

	sort := c.Param("sort")
	if sort == "" {
		sort = "id"
	}

	results, err := h.resultService.List(c.Request.Context(), caller, sort)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.respondCached(c, results, wrapCollection(results))
}

// GetItem обрабатывает GET/HEAD /results/{key}: одиночный ресурс по id,
// топ-выборку или статистику в зависимости от сегмента пути
func (h *ResultQueryHandler) GetItem(c *gin.Context) {
	kind, id, format, hasFormat := parseItemKey(c.Param("key"))
	if hasFormat {
		apiutil.SetFormat(c, format)
	}

	switch kind {
	case kindTop:
		h.top(c)
	case kindStats:
		h.stats(c)
	case kindID:
		h.getByID(c, id)
	default:
		apiutil.ErrorMessage(c, http.StatusNotFound, "")
	}
}

func (h *ResultQueryHandler) getByID(c *gin.Context, id uint) {
	caller := middleware.CallerFromContext(c)

	result, err := h.resultService.Get(c.Request.Context(), caller, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.respondCached(c, result, resultEnvelope{Result: result})
}

// parseOwnerID строго разбирает необязательный параметр ownerId
func parseOwnerID(c *gin.Context) (*uint, error) {
	raw := c.Query("ownerId")
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, service.ErrInvalidOwnerID
	}

	owner := uint(id)
	return &owner, nil
}

func (h *ResultQueryHandler) top(c *gin.Context) {
	caller := middleware.CallerFromContext(c)

	limit := service.TopLimitDefault
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			handleServiceError(c, service.ErrInvalidLimit)
			return
		}
		limit = parsed
	}

	owner, err := parseOwnerID(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	results, err := h.resultService.Top(c.Request.Context(), caller, owner, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.respondCached(c, results, wrapCollection(results))
}

func (h *ResultQueryHandler) stats(c *gin.Context) {
	caller := middleware.CallerFromContext(c)

	owner, err := parseOwnerID(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	stats, err := h.resultService.Stats(c.Request.Context(), caller, owner)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.respondCached(c, stats, statsEnvelope{Stats: stats})
}

// OptionsCollection возвращает поддерживаемые методы коллекции.
// Аутентификация не требуется, ответ кешируется публично.
func (h *ResultQueryHandler) OptionsCollection(c *gin.Context) {
	h.options(c, []string{http.MethodGet, http.MethodPost, http.MethodOptions})
}

// OptionsItem возвращает поддерживаемые методы для /results/{key}:
// одиночного ресурса, топ-выборки или статистики
func (h *ResultQueryHandler) OptionsItem(c *gin.Context) {
	kind, _, _, _ := parseItemKey(c.Param("key"))

	switch kind {
	case kindTop, kindStats:
		h.options(c, []string{http.MethodGet, http.MethodHead, http.MethodOptions})
	case kindID:
		h.options(c, []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions})
	default:
		apiutil.ErrorMessage(c, http.StatusNotFound, "")
	}
}

func (h *ResultQueryHandler) options(c *gin.Context, methods []string) {
	c.Header(headerAllow, strings.Join(methods, ","))
	c.Header(headerCacheControl, "public, immutable")
	c.Status(http.StatusNoContent)
}
