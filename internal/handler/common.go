package handler

import (
	"encoding/xml"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/OlgaArenas22/phpMiW/internal/domain/entity"
	"github.com/OlgaArenas22/phpMiW/internal/service"
	"github.com/OlgaArenas22/phpMiW/pkg/apiutil"
)

// Базовый путь ресурса результатов (используется в Location)
const resultsBasePath = "/api/v1/results"

const (
	headerCacheControl = "Cache-Control"
	headerETag         = "ETag"
	headerAllow        = "Allow"
	headerIfMatch      = "If-Match"
	headerIfNoneMatch  = "If-None-Match"
)

// Конверты ответов: одиночный ресурс, коллекция, статистика

type resultEnvelope struct {
	XMLName xml.Name       `json:"-" xml:"result"`
	Result  *entity.Result `json:"result" xml:"result"`
}

type resultItem struct {
	Result *entity.Result `json:"result" xml:"result"`
}

type resultsEnvelope struct {
	XMLName xml.Name     `json:"-" xml:"results"`
	Results []resultItem `json:"results" xml:"item"`
}

type statsEnvelope struct {
	XMLName xml.Name            `json:"-" xml:"stats"`
	Stats   *entity.ResultStats `json:"stats" xml:"stats"`
}

func wrapCollection(results []entity.Result) resultsEnvelope {
	items := make([]resultItem, 0, len(results))
	for i := range results {
		items = append(items, resultItem{Result: &results[i]})
	}
	return resultsEnvelope{Results: items}
}

// Вид элемента пути под /results/{key}
type itemKind int

const (
	kindUnknown itemKind = iota
	kindID
	kindTop
	kindStats
)

// parseItemKey разбирает сегмент пути вида "42", "42.json", "top.xml",
// "stats". Возвращает вид, идентификатор (для kindID) и явный формат,
// если он задан расширением.
func parseItemKey(key string) (itemKind, uint, apiutil.Format, bool) {
	base := key
	format := apiutil.FormatJSON
	hasFormat := false

	if strings.HasSuffix(key, ".json") {
		base = strings.TrimSuffix(key, ".json")
		format = apiutil.FormatJSON
		hasFormat = true
	} else if strings.HasSuffix(key, ".xml") {
		base = strings.TrimSuffix(key, ".xml")
		format = apiutil.FormatXML
		hasFormat = true
	}

	switch base {
	case "top":
		return kindTop, 0, format, hasFormat
	case "stats":
		return kindStats, 0, format, hasFormat
	}

	id, err := strconv.ParseUint(base, 10, 32)
	if err != nil {
		return kindUnknown, 0, format, hasFormat
	}

	return kindID, uint(id), format, hasFormat
}

// handleServiceError преобразует ошибку сервиса в HTTP-ответ.
// Все ошибки валидации и авторизации — штатные исходы протокола;
// прочее считается непредвиденной ошибкой сервера.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		apiutil.ErrorMessage(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		apiutil.ErrorMessage(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		apiutil.ErrorMessage(c, http.StatusNotFound, "")
	case errors.Is(err, service.ErrMissingValue):
		apiutil.ErrorMessage(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidValue),
		errors.Is(err, service.ErrInvalidTime),
		errors.Is(err, service.ErrNothingToUpdate),
		errors.Is(err, service.ErrInvalidLimit),
		errors.Is(err, service.ErrInvalidOwnerID),
		errors.Is(err, service.ErrEmailTaken):
		apiutil.ErrorMessage(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPreconditionFailed):
		apiutil.ErrorMessage(c, http.StatusPreconditionFailed, err.Error())
	default:
		log.Printf("[Handler] Внутренняя ошибка: %v", err)
		apiutil.ErrorMessage(c, http.StatusInternalServerError, "Internal server error")
	}
}

// withFormat фиксирует формат ответа, заданный расширением маршрута
func withFormat(format apiutil.Format, fn gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiutil.SetFormat(c, format)
		fn(c)
	}
}
