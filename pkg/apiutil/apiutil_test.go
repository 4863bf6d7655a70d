package apiutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestGetFormatDefaultsToJSON(t *testing.T) {
	c, _ := testContext(t)
	assert.Equal(t, FormatJSON, GetFormat(c))
}

func TestGetFormatFromAcceptHeader(t *testing.T) {
	c, _ := testContext(t)
	c.Request.Header.Set("Accept", "application/xml")
	assert.Equal(t, FormatXML, GetFormat(c))

	c2, _ := testContext(t)
	c2.Request.Header.Set("Accept", "text/xml")
	assert.Equal(t, FormatXML, GetFormat(c2))
}

func TestGetFormatFromPathExtensionWins(t *testing.T) {
	c, _ := testContext(t)
	c.Request.Header.Set("Accept", "application/xml")
	SetFormat(c, FormatJSON)
	assert.Equal(t, FormatJSON, GetFormat(c))
}

func TestAPIResponseWithoutBody(t *testing.T) {
	c, w := testContext(t)
	APIResponse(c, http.StatusOK, nil, FormatJSON, map[string]string{"ETag": "abc"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", w.Header().Get("ETag"))
	assert.Empty(t, w.Body.String())
}

func TestErrorMessageBody(t *testing.T) {
	c, w := testContext(t)
	ErrorMessage(c, http.StatusNotFound, "")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Code)
	assert.Equal(t, http.StatusText(http.StatusNotFound), body.Message)
}
