package middleware

import (
	"net/http"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const RateGeneral = "1000-M"

// NewLimiter builds an in-process limiter from a formatted rate ("20-M").
// An empty rate yields a nil limiter, which RateLimit treats as unlimited.
func NewLimiter(formatted string) (*limiter.Limiter, error) {
	if formatted == "" {
		return nil, nil
	}
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit rejects a client IP once it exceeds the limiter's rate.
func RateLimit(l *limiter.Limiter, msg string) gin.HandlerFunc {
	if l == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		ip := c.ClientIP()
		ctx, err := l.Get(c.Request.Context(), ip)
		if err != nil {
			log.Error().Err(err).Str("ip", ip).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if ctx.Reached {
			log.Warn().Str("ip", ip).Int64("limit", ctx.Limit).Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general API limiter.
func RateLimiter(l *limiter.Limiter) gin.HandlerFunc {
	return RateLimit(l, "Demasiadas solicitudes. Intente nuevamente en un momento.")
}

// LoginRateLimiter limits the credential endpoints.
func LoginRateLimiter(l *limiter.Limiter) gin.HandlerFunc {
	return RateLimit(l, "Demasiados intentos de login. Intente en 1 minuto.")
}
