package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func limitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := NewRateLimiter(rps, burst, KeyByTenantOrIP())
	r.Use(rl.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	r := limitedRouter(0, 3) // no refill: exactly burst requests pass

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("Retry-After header missing")
	}
	if !strings.Contains(w.Body.String(), `"code":"rate_limited"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestRateLimiter_BucketsAreIndependentPerTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := NewRateLimiter(0, 1, KeyByTenantOrIP())
	// Tenant() normally runs first; set the identity directly here.
	r.Use(func(c *gin.Context) {
		c.Set(ctxKeyTenantID, c.GetHeader("X-Tenant-ID"))
	}, rl.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(tenant string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Tenant-ID", tenant)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if hit("happypaws") != http.StatusOK {
		t.Fatal("first happypaws request should pass")
	}
	if hit("happypaws") != http.StatusTooManyRequests {
		t.Fatal("second happypaws request should be limited")
	}
	// A different tenant still has a full bucket.
	if hit("citycats") != http.StatusOK {
		t.Fatal("citycats must not share happypaws' bucket")
	}
}

func TestNewRateLimiter_CoercesBurst(t *testing.T) {
	rl := NewRateLimiter(1, 0, KeyByTenantOrIP())
	if rl.burst != 1 {
		t.Fatalf("burst = %d, want 1", rl.burst)
	}
}

func TestKeyByTenantOrIP_FallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	key := KeyByTenantOrIP()(c)
	if !strings.HasPrefix(key, "ip:") {
		t.Fatalf("key = %q, want ip: prefix", key)
	}

	c.Set(ctxKeyTenantID, "happypaws")
	if key := KeyByTenantOrIP()(c); key != "tenant:happypaws" {
		t.Fatalf("key = %q", key)
	}
}
