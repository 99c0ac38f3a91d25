package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/metrics"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEmail = "jobs:email"

	JobResumenEmail = "resumen_email"
)

// Job is the envelope pushed to every queue.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues jobs into Redis lists; the pool pops them with BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueResumenEmail queues the monthly summary mail.
func (d *Dispatcher) EnqueueResumenEmail(ctx context.Context, payload ResumenEmailPayload) error {
	return d.enqueue(ctx, QueueEmail, JobResumenEmail, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload any) error {
	encoded, err := encodeJob(jobType, payload)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

func encodeJob(jobType string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Job{Type: jobType, Payload: data})
}

// Handler processes one job payload.
type Handler func(ctx context.Context, payload json.RawMessage) error

var ErrJobDesconocido = errors.New("tipo de job desconocido")

// Pool consumes the queues and routes each job to the handler for its type.
// A failing job is moved to the dead letter queue and not retried.
type Pool struct {
	rdb        *redis.Client
	handlers   map[string]Handler
	deadLetter func(ctx context.Context, queue string, job Job, reason string)
}

func NewPool(rdb *redis.Client, handlers map[string]Handler) *Pool {
	p := &Pool{rdb: rdb, handlers: handlers}
	p.deadLetter = func(ctx context.Context, queue string, job Job, reason string) {
		moverADLQ(ctx, rdb, queue, job, reason)
	}
	return p
}

// Start launches n goroutines blocking on BRPOP until ctx is done.
func (p *Pool) Start(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", n)
}

func (p *Pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
		}
		// waits up to 5s, then loops to check ctx
		result, err := p.rdb.BRPop(ctx, 5*time.Second, QueueEmail).Result()
		if err != nil || len(result) < 2 {
			continue
		}
		_ = p.process(ctx, result[0], result[1])
	}
}

func (p *Pool) process(ctx context.Context, queue, raw string) error {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("job ilegible")
		p.deadLetter(ctx, queue, Job{Payload: json.RawMessage(fmt.Sprintf("%q", raw))}, err.Error())
		return err
	}

	h, ok := p.handlers[job.Type]
	if !ok {
		err := fmt.Errorf("%w: %s", ErrJobDesconocido, job.Type)
		p.deadLetter(ctx, queue, job, err.Error())
		metrics.JobsProcesados.WithLabelValues(job.Type, "error").Inc()
		return err
	}

	if err := h(ctx, job.Payload); err != nil {
		log.Error().Err(err).Str("type", job.Type).Msg("job fallido")
		p.deadLetter(ctx, queue, job, err.Error())
		metrics.JobsProcesados.WithLabelValues(job.Type, "error").Inc()
		return err
	}
	metrics.JobsProcesados.WithLabelValues(job.Type, "ok").Inc()
	log.Info().Str("type", job.Type).Str("queue", queue).Msg("job procesado")
	return nil
}
