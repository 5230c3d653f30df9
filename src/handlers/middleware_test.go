package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/username/fintrack/backend/src/logger"
)

func init() {
	logger.InitLogger("error")
}

func TestUserScopeMiddleware(t *testing.T) {
	var gotUserID string
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := UserScopeMiddleware(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUserID string
	}{
		{"bearer token", "Bearer user-123", http.StatusOK, "user-123"},
		{"raw token", "user-123", http.StatusOK, "user-123"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"blank token", "Bearer   ", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID, gotOK = "", false
			req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if !gotOK || gotUserID != tt.wantUserID {
					t.Errorf("userID = %q (ok=%v), want %q", gotUserID, gotOK, tt.wantUserID)
				}
			}
		})
	}
}

func TestGetUserIDFromContextMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := GetUserIDFromContext(req.Context()); ok {
		t.Error("expected no user in bare context")
	}
}
