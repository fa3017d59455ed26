package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// 令牌桶在突发额度用尽后应拒绝请求
func TestTokenBucketRefusesAfterBurst(t *testing.T) {
	bucket := NewTokenBucket(0.001, 3)

	for i := 0; i < 3; i++ {
		if !bucket.Allow() {
			t.Fatalf("第 %d 次请求应在突发额度内被放行", i+1)
		}
	}
	if bucket.Allow() {
		t.Error("突发额度用尽后应拒绝请求")
	}
}

// 令牌随时间回填后应重新放行
func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(100, 1)

	if !bucket.Allow() {
		t.Fatal("首个请求应被放行")
	}
	if bucket.Allow() {
		t.Fatal("桶空时应拒绝请求")
	}

	time.Sleep(30 * time.Millisecond)
	if !bucket.Allow() {
		t.Error("令牌回填后应重新放行")
	}
}

func newLimitedRouter(cfg RateLimiterConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimiter(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func doRequest(r *gin.Engine, remoteAddr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	r.ServeHTTP(w, req)
	return w.Code
}

// 同一IP超过突发额度后返回429，其他IP不受影响
func TestRateLimiterPerIP(t *testing.T) {
	r := newLimitedRouter(RateLimiterConfig{
		Rate:       0.001,
		Burst:      2,
		ExpiryTime: time.Minute,
	})

	for i := 0; i < 2; i++ {
		if got := doRequest(r, "203.0.113.10:50000"); got != http.StatusOK {
			t.Fatalf("第 %d 次请求状态码 = %d, 期望 %d", i+1, got, http.StatusOK)
		}
	}
	if got := doRequest(r, "203.0.113.10:50000"); got != http.StatusTooManyRequests {
		t.Errorf("超额请求状态码 = %d, 期望 %d", got, http.StatusTooManyRequests)
	}

	if got := doRequest(r, "203.0.113.99:50000"); got != http.StatusOK {
		t.Errorf("其他IP的请求状态码 = %d, 期望 %d", got, http.StatusOK)
	}
}
