package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/infra"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/storage"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthDeps are the dependencies probed by /health. Nil ones are skipped.
type HealthDeps struct {
	DB      *gorm.DB
	Storage storage.Store
	Redis   *redis.Client
	Mailer  *infra.Mailer
}

// Health returns a JSON health check response.
// It never exposes credentials or internals. The mail breaker is reported
// but does not make the service unhealthy.
func Health(deps HealthDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		body := gin.H{}
		ok := true
		check := func(name string, fn func() error) {
			if fn() != nil {
				body[name] = "error"
				ok = false
				return
			}
			body[name] = "connected"
		}

		if deps.DB != nil {
			check("db", func() error {
				sqlDB, err := deps.DB.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			})
		}
		if deps.Storage != nil {
			check("storage", func() error { return deps.Storage.Ping(ctx) })
		}
		if deps.Redis != nil {
			check("redis", func() error { return deps.Redis.Ping(ctx).Err() })
			if n, err := worker.DLQLength(ctx, deps.Redis, worker.QueueEmail); err == nil {
				body["dlq_email"] = n
			}
		}
		if deps.Mailer != nil {
			if deps.Mailer.Configurado() {
				body["smtp"] = deps.Mailer.Breaker().State().String()
			} else {
				body["smtp"] = "no_configurado"
			}
		}

		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		body["ok"] = ok
		c.JSON(status, body)
	}
}
