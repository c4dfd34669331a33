package message

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/ayush/social-media-api/internal/models"
)

func newTestRouter(fs *fakeStore) *chi.Mux {
	h := NewHandler(NewService(fs))
	r := chi.NewRouter()
	r.Post("/messages", h.Create)
	r.Get("/messages", h.ListAll)
	r.Get("/messages/{message_id}", h.GetByID)
	r.Delete("/messages/{message_id}", h.Delete)
	r.Patch("/messages/{message_id}", h.Update)
	r.Get("/accounts/{account_id}/messages", h.ListByAccount)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestMessageLifecycle(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(newFakeStore(1))

	rec := do(t, r, http.MethodPost, "/messages",
		`{"posted_by":1,"message_text":"hi","time_posted_epoch":1000}`)
	req.Equal(http.StatusOK, rec.Code)

	var created models.Message
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	req.Equal(1, created.ID)
	req.Equal("hi", created.Text)

	// The account's listing contains exactly that message.
	rec = do(t, r, http.MethodGet, "/accounts/1/messages", "")
	req.Equal(http.StatusOK, rec.Code)

	var listed []models.Message
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &listed))
	req.Len(listed, 1)
	req.Equal(created, listed[0])

	// A blank update is rejected and the original text survives.
	rec = do(t, r, http.MethodPatch, "/messages/1", `{"message_text":""}`)
	req.Equal(http.StatusBadRequest, rec.Code)
	req.Empty(rec.Body.String())

	rec = do(t, r, http.MethodGet, "/messages/1", "")
	req.Equal(http.StatusOK, rec.Code)

	var fetched models.Message
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &fetched))
	req.Equal("hi", fetched.Text)

	rec = do(t, r, http.MethodPatch, "/messages/1", `{"message_text":"hello"}`)
	req.Equal(http.StatusOK, rec.Code)

	var updated models.Message
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	req.Equal("hello", updated.Text)

	rec = do(t, r, http.MethodDelete, "/messages/1", "")
	req.Equal(http.StatusOK, rec.Code)

	var deleted models.Message
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &deleted))
	req.Equal("hello", deleted.Text)

	// Gone now: 200 with an empty body.
	rec = do(t, r, http.MethodGet, "/messages/1", "")
	req.Equal(http.StatusOK, rec.Code)
	req.Empty(rec.Body.String())
}

func TestCreateRejections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"blank text", `{"posted_by":1,"message_text":"  ","time_posted_epoch":1000}`},
		{"text too long", `{"posted_by":1,"message_text":"` + strings.Repeat("a", 255) + `","time_posted_epoch":1000}`},
		{"unknown account", `{"posted_by":9,"message_text":"hi","time_posted_epoch":1000}`},
		{"malformed json", `{"posted_by":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			r := newTestRouter(newFakeStore(1))

			rec := do(t, r, http.MethodPost, "/messages", tt.body)
			req.Equal(http.StatusBadRequest, rec.Code)
			req.Empty(rec.Body.String())
		})
	}
}

func TestEmptyAndAbsentResults(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(newFakeStore(1))

	// No messages yet: an empty array, not null.
	rec := do(t, r, http.MethodGet, "/messages", "")
	req.Equal(http.StatusOK, rec.Code)
	req.JSONEq(`[]`, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/accounts/9/messages", "")
	req.Equal(http.StatusOK, rec.Code)
	req.JSONEq(`[]`, rec.Body.String())

	// Deleting a nonexistent message is a 200 with an empty body.
	rec = do(t, r, http.MethodDelete, "/messages/5", "")
	req.Equal(http.StatusOK, rec.Code)
	req.Empty(rec.Body.String())
}

func TestNonNumericPathParams(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(newFakeStore(1))

	for _, path := range []string{"/messages/abc", "/accounts/abc/messages"} {
		rec := do(t, r, http.MethodGet, path, "")
		req.Equal(http.StatusBadRequest, rec.Code, path)
		req.Empty(rec.Body.String())
	}

	rec := do(t, r, http.MethodDelete, "/messages/abc", "")
	req.Equal(http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPatch, "/messages/abc", `{"message_text":"hi"}`)
	req.Equal(http.StatusBadRequest, rec.Code)
}
