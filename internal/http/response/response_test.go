package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorWritesBusinessCodeAsHTTPStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		code   int
		status int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeTooManyRequests, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Error(c, tc.code, "failed")
		if w.Code != tc.status {
			t.Fatalf("code %d: expected http %d, got %d", tc.code, tc.status, w.Code)
		}
		var body Response
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body failed: %v", err)
		}
		if body.StatusCode != tc.code {
			t.Fatalf("expected status_code %d, got %d", tc.code, body.StatusCode)
		}
	}
}

func TestErrorWithDataAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	ErrorWithData(c, CodeTooManyRequests, "too soon", gin.H{"status": "checked_in"})

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.Data["request_id"] != "req-1" || body.Data["status"] != "checked_in" {
		t.Fatalf("unexpected data: %+v", body.Data)
	}
}

func TestHTTPStatusUnknownCodeFallsBackToOK(t *testing.T) {
	if HTTPStatus(12) != http.StatusOK {
		t.Fatalf("non-http business code should map to 200")
	}
}
