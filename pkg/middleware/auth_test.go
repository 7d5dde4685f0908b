package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prebook/pkg/utils"

	"go.uber.org/zap"
)

func TestStaffAuth(t *testing.T) {
	const secret = "test-secret"

	valid, _, err := utils.NewStaffToken(secret, "staff", time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	expired, _, err := utils.NewStaffToken(secret, "staff", -time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	foreign, _, err := utils.NewStaffToken("other-secret", "staff", time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "signed with another secret", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var subject string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				subject, _ = utils.GetStaffSubjectFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/admin/reservations", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			StaffAuth(secret, zap.NewNop())(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusOK && subject != "staff" {
				t.Errorf("expected staff subject in context, got %q", subject)
			}
		})
	}
}

func TestRecover(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	Recover(zap.NewNop())(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON body, got content type %q", ct)
	}
}
