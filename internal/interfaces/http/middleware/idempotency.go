package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/internal/interfaces/http/response"
	"moto-club.backend/pkg/logger"
	"moto-club.backend/pkg/redis"
)

const (
	IdempotencyHeader    = "Idempotency-Key"
	IdempotencyHitHeader = "X-Idempotency-Hit"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response for a repeated Idempotency-Key.
// Keys are scoped to the caller and route; only 2xx responses are kept, for retention.
func IdempotencyMiddleware(retention time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID, _ := GetUserID(c)
		storageKey := fmt.Sprintf("moto:idempotency:%s:%s:%s:%s", userID, c.Request.Method, c.FullPath(), key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil:
			if val == processingMarker {
				response.Error(c, domainerrors.Conflict("A request with this Idempotency-Key is already in progress."))
				c.Abort()
				return
			}
			var cached cachedResponse
			if json.Unmarshal([]byte(val), &cached) == nil && cached.Status != 0 {
				c.Header(IdempotencyHitHeader, "true")
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
			// unreadable entry: drop it and process normally
			_ = redisDel(ctx, storageKey)
		case !redis.IsNil(err):
			logger.Warn(ctx, "Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}

		locked, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !locked {
			response.Error(c, domainerrors.Conflict("A request with this Idempotency-Key is already in progress."))
			c.Abort()
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusOK && status < http.StatusMultipleChoices && json.Valid(w.body.Bytes()) {
			payload, _ := json.Marshal(cachedResponse{Status: status, Body: w.body.Bytes()})
			if err := redisSet(ctx, storageKey, payload, retention); err != nil {
				logger.Warn(ctx, "Failed to store idempotent response", zap.Error(err))
			}
			return
		}
		// failed attempts may be retried with the same key
		_ = redisDel(ctx, storageKey)
	}
}
