package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
	"github.com/noah-isme/legal-intake-api/pkg/middleware/requestid"
)

func serve(handler gin.HandlerFunc, header string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestid.Middleware())
	r.GET("/", handler)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("X-Request-ID", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorEchoesRequestID(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Error(c, appErrors.Clone(appErrors.ErrNotFound, "case not found"))
	}, "req-7")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, appErrors.ErrNotFound.Code, body.Error.Code)
	assert.Equal(t, "case not found", body.Error.Message)
	assert.Equal(t, "req-7", body.Meta["request_id"])
}

func TestErrorRecordsServerFailures(t *testing.T) {
	var recorded int
	w := serve(func(c *gin.Context) {
		Error(c, errors.New("connection reset"))
		recorded = len(c.Errors)
	}, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, recorded)
}

func TestAttachmentSanitizesFilename(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Attachment(c, "case-\"1\"/trail.csv", "text/csv", []byte("a,b\n"))
	}, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="case-_1__trail.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "a,b\n", w.Body.String())
}
