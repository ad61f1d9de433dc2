package services

import (
	"strconv"
	"sync"
	"time"
)

// NameGenerator hands out "<unix-millis><ext>" names. Successive calls never
// return the same millisecond, even when the clock stalls or steps back.
type NameGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewNameGenerator(now func() time.Time) *NameGenerator {
	if now == nil {
		now = time.Now
	}
	return &NameGenerator{now: now}
}

func (g *NameGenerator) Next(ext string) string {
	g.mu.Lock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	g.mu.Unlock()

	return strconv.FormatInt(ms, 10) + ext
}
