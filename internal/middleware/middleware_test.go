package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-empledger/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestContextLogger(t *testing.T) {
	t.Run("propagates incoming request id", func(t *testing.T) {
		r := setupRouter()
		r.Use(ContextLogger(zap.NewNop()))
		var seen string
		r.GET("/ping", func(c *gin.Context) {
			seen = contextutil.GetRequestID(c.Request.Context())
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(HeaderRequestID, "REQ-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "REQ-1", seen)
		assert.Equal(t, "REQ-1", w.Header().Get(HeaderRequestID))
	})

	t.Run("generates request id when absent", func(t *testing.T) {
		r := setupRouter()
		r.Use(ContextLogger(zap.NewNop()))
		r.GET("/ping", func(c *gin.Context) {
			assert.NotNil(t, contextutil.GetLogger(c.Request.Context(), nil))
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	})
}

func TestRequestTimeout(t *testing.T) {
	r := setupRouter()
	r.Use(RequestTimeout(50 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitByIP(t *testing.T) {
	r := setupRouter()
	r.Use(RateLimitByIP(1, 2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// another client has its own bucket
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIdempotency(t *testing.T) {
	const path = "/api/add-employee"
	cacheKey := IdempotencyKey(path, "key-1")
	lockKey := cacheKey + ":lock"

	newRouter := func(calls *int) (*gin.Engine, redismock.ClientMock) {
		rdb, mock := redismock.NewClientMock()
		r := setupRouter()
		r.POST(path, Idempotency(rdb), func(c *gin.Context) {
			*calls++
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		})
		return r, mock
	}

	t.Run("first request is executed and stored", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)

		payload, _ := json.Marshal(cachedResponse{
			Status:      http.StatusCreated,
			ContentType: "application/json; charset=utf-8",
			Body:        []byte(`{"ok":true}`),
		})
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(true)
		mock.ExpectSet(cacheKey, payload, idempotencyResultTTL).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set(HeaderIdempotencyKey, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat is replayed without running the handler", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)

		payload, _ := json.Marshal(cachedResponse{
			Status:      http.StatusCreated,
			ContentType: "application/json; charset=utf-8",
			Body:        []byte(`{"ok":true,"data":"first"}`),
		})
		mock.ExpectGet(cacheKey).SetVal(string(payload))

		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set(HeaderIdempotencyKey, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 0, calls)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.JSONEq(t, `{"ok":true,"data":"first"}`, w.Body.String())
	})

	t.Run("concurrent repeat is rejected", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set(HeaderIdempotencyKey, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, calls)
		assert.Contains(t, w.Body.String(), "PROCESSING")
	})

	t.Run("requests without a key pass through", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMetrics(t *testing.T) {
	r := setupRouter()
	r.Use(Metrics())
	r.GET("/metrics-probe/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-probe/:id", "204"))
	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics-probe/"+id, nil))
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-probe/:id", "204"))

	assert.Equal(t, float64(2), after-before)
}
