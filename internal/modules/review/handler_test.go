package review

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func call(t *testing.T, f *fixture, userID int64, role, method, target string, body any) (int, map[string]any) {
	t.Helper()
	r := gin.New()
	group := r.Group("/api/v1", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
	})
	NewHandler(f.svc).RegisterRoutes(group)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out
}

func TestHandler_CreateAndEdit(t *testing.T) {
	f := newFixture(t)

	code, body := call(t, f, f.author.ID, "guest", http.MethodPost, "/api/v1/rooms/sea-view/reviews", gin.H{"rating": 5, "comment": "Great"})
	require.Equal(t, http.StatusCreated, code)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["review_count"])
	assert.Equal(t, float64(5), data["rating"])
	assert.Len(t, data["rating_breakdown"], 5)
	id := int64(data["review"].(map[string]any)["id"].(float64))
	target := "/api/v1/reviews/" + strconv.FormatInt(id, 10)

	code, _ = call(t, f, f.other.ID, "guest", http.MethodPut, target, gin.H{"rating": 1, "comment": "Hijack"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = call(t, f, f.admin.ID, "admin", http.MethodDelete, target, nil)
	assert.Equal(t, http.StatusOK, code)

	code, body = call(t, f, f.author.ID, "guest", http.MethodGet, target, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", body["error"].(map[string]any)["code"])
}

func TestHandler_Validation(t *testing.T) {
	f := newFixture(t)

	code, body := call(t, f, f.author.ID, "guest", http.MethodPost, "/api/v1/rooms/sea-view/reviews", gin.H{"rating": 0, "comment": ""})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", body["error"].(map[string]any)["code"])

	code, _ = call(t, f, f.author.ID, "guest", http.MethodPost, "/api/v1/rooms/nope/reviews", gin.H{"rating": 3, "comment": "ok"})
	assert.Equal(t, http.StatusNotFound, code)
}
