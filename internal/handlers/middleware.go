package handlers

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/msgs"
	"nodeBoard/internal/utils"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func (rh *RestHandler) MustAuthenticateMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		jwtToken := utils.ExtractBearerToken(ctx.GetHeader("Authorization"))
		if jwtToken == "" {
			abortWithStatus(ctx, http.StatusUnauthorized, msgs.MsgYouMustLoginFirst, errs.ErrUnauthorized)
			return
		}

		claims, err := utils.VerifyToken(jwtToken, rh.jwtKey)
		if err != nil || claims.ID == 0 {
			abortWithStatus(ctx, http.StatusUnauthorized, msgs.MsgYouMustLoginFirst, errs.ErrUnauthorized)
			return
		}

		ctx.Set("user_id", claims.ID)
		ctx.Set("user_email", claims.Email)
		ctx.Set("user_first_name", claims.FirstName)
		ctx.Set("user_last_name", claims.LastName)
		ctx.Set("authenticated", true)
		ctx.Next()
	}
}

// RateLimitMiddleware throttles per authenticated user. A limiter failure
// lets the request through rather than taking the endpoint down with redis.
func (rh *RestHandler) RateLimitMiddleware(name string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if rh.limiter == nil {
			ctx.Next()
			return
		}
		key := fmt.Sprintf("%s:%d", name, utils.GetUserIdFromContext(ctx))
		allowed, retryAfter, err := rh.limiter.Allow(ctx.Request.Context(), key)
		if err != nil {
			slog.Warn("rate limiter unavailable", "key", key, "error", err)
			ctx.Next()
			return
		}
		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			ctx.Header("Retry-After", strconv.Itoa(seconds))
			abortWithStatus(ctx, http.StatusTooManyRequests, msgs.MsgTooManyRequests, errs.ErrTooManyRequests)
			return
		}
		ctx.Next()
	}
}

func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		attrs := []any{
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"latency", time.Since(start),
		}
		if userID := utils.GetUserIdFromContext(ctx); userID != 0 {
			attrs = append(attrs, "user_id", userID)
		}
		if ctx.Writer.Status() >= http.StatusInternalServerError {
			slog.Error("request", attrs...)
			return
		}
		slog.Info("request", attrs...)
	}
}
