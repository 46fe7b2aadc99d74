package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func tenantEcho(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Tenant())
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tenant": TenantFrom(c), "user": UserFrom(c)})
	})
	return r
}

func TestTenant_DerivedFromEmail(t *testing.T) {
	r := tenantEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-Email", "FrontDesk@happypaws.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := w.Body.String(); !contains(body, `"tenant":"frontdesk"`) {
		t.Fatalf("body = %s", body)
	}
}

func TestTenant_ExplicitOverrideWins(t *testing.T) {
	r := tenantEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-Email", "frontdesk@happypaws.example")
	req.Header.Set("X-Tenant-ID", "CityCats")
	req.Header.Set("X-User-ID", "op-7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body := w.Body.String()
	if !contains(body, `"tenant":"citycats"`) || !contains(body, `"user":"op-7"`) {
		t.Fatalf("body = %s", body)
	}
}

func TestTenant_UserFallsBackToEmail(t *testing.T) {
	r := tenantEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-Email", "vet@happypaws.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if body := w.Body.String(); !contains(body, `"user":"vet@happypaws.example"`) {
		t.Fatalf("body = %s", body)
	}
}

func TestTenant_MissingIdentityRejected(t *testing.T) {
	r := tenantEcho(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !contains(w.Body.String(), `"code":"unauthorized"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestTenantFrom_Unset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if TenantFrom(c) != "" || UserFrom(c) != "" {
		t.Fatal("unset context must yield empty identities")
	}
}

func contains(s, sub string) bool { return strings.Contains(s, sub) }
