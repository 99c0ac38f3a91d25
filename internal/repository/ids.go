package repository

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a lookup by key matches nothing.
var ErrNotFound = errors.New("registro no encontrado")

// ErrDuplicado is returned when an insert hits a unique index.
var ErrDuplicado = errors.New("registro duplicado")

// IDGenerator hands out millisecond timestamps, bumped by one when two calls
// land on the same millisecond so ids stay strictly increasing.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator() *IDGenerator { return &IDGenerator{now: time.Now} }

func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
