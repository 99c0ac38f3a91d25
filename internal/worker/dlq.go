package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Failed jobs land in dlq:<queue>. Nothing consumes it; an operator re-queues
// or drops entries by hand.
const DLQPrefix = "dlq:"

type DLQEntry struct {
	Cola     string          `json:"cola"`
	Tipo     string          `json:"tipo"`
	Payload  json.RawMessage `json:"payload"`
	Motivo   string          `json:"motivo"`
	FallidoA time.Time       `json:"fallido_a"`
}

func moverADLQ(ctx context.Context, rdb *redis.Client, cola string, job Job, motivo string) {
	data, err := json.Marshal(DLQEntry{
		Cola:     cola,
		Tipo:     job.Type,
		Payload:  job.Payload,
		Motivo:   motivo,
		FallidoA: time.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Str("cola", cola).Msg("dlq: marshal")
		return
	}
	if err := rdb.LPush(ctx, DLQPrefix+cola, data).Err(); err != nil {
		log.Error().Err(err).Str("cola", cola).Msg("dlq: push")
		return
	}
	log.Warn().Str("cola", cola).Str("tipo", job.Type).Str("motivo", motivo).Msg("job movido a la DLQ")
}

// DLQLength is reported by /health.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
