package token_bucket

import (
	"sync"
	"time"
)

/*
Token bucket на каждый ключ (актор или адрес клиента): один шумный клиент
не должен съедать лимит всех остальных. Пустой ключ - общий bucket.
*/

type Limiter interface {
	Allow(key string) bool
}

type Option func(*KeyedLimiter)

// WithClock подменяет источник времени (нужен тестам).
func WithClock(now func() time.Time) Option {
	return func(l *KeyedLimiter) {
		l.now = now
	}
}

// WithIdleTTL - через сколько простоя bucket удаляется из памяти.
func WithIdleTTL(ttl time.Duration) Option {
	return func(l *KeyedLimiter) {
		l.idleTTL = ttl
	}
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

type KeyedLimiter struct {
	capacity   float64
	refillRate float64
	idleTTL    time.Duration
	now        func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func NewKeyedLimiter(capacity int, refillRate float64, opts ...Option) *KeyedLimiter {
	l := &KeyedLimiter{
		capacity:   float64(capacity),
		refillRate: refillRate,
		idleTTL:    10 * time.Minute,
		now:        time.Now,
		buckets:    make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.now()
	return l
}

func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evictIdle(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, lastSeen: now}
		l.buckets[key] = b
	}

	l.refill(b, now)

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Len - количество живых bucket'ов.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *KeyedLimiter) refill(b *bucket, now time.Time) {
	elapsed := now.Sub(b.lastSeen).Seconds()
	b.lastSeen = now
	if elapsed <= 0 {
		return
	}

	b.tokens += elapsed * l.refillRate
	if b.tokens > l.capacity {
		b.tokens = l.capacity
	}
}

// evictIdle вызывается под мьютексом, не чаще раза в idleTTL.
func (l *KeyedLimiter) evictIdle(now time.Time) {
	if l.idleTTL <= 0 || now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
