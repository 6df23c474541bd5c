package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"loadscout/internal/service"
)

func TestUserIdMiddleware(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	jobs := &mockJobs{}
	r := newTestRouter(&service.Service{Authorization: auth, Jobs: jobs})

	cases := []struct {
		name     string
		header   string
		parseErr error
		want     int
	}{
		{"missing header", "", nil, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized},
		{"no token", "Bearer", nil, http.StatusUnauthorized},
		{"invalid token", "Bearer bad", errors.New("bad token"), http.StatusUnauthorized},
		{"valid token", "Bearer good", nil, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth.parseErr = tc.parseErr
			req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.want, w.Body.String())
			}
		})
	}

	if auth.lastParseToken != "good" {
		t.Fatalf("expected token to reach ParseToken, got %q", auth.lastParseToken)
	}
}
