package token_bucket

import (
	"sync"
	"time"
)

// Clock источник времени, в тестах подменяется.
type Clock func() time.Time

// TokenBucket емкость capacity, пополнение refillRate токенов в секунду.
// Токены копятся дробно, поэтому медленное пополнение (0.5 в секунду) не теряется.
type TokenBucket struct {
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
	now        Clock
	mu         sync.Mutex
}

func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return newTokenBucket(capacity, refillRate, time.Now)
}

func newTokenBucket(capacity int, refillRate float64, now Clock) *TokenBucket {
	return &TokenBucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: now(),
		now:        now,
	}
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill(t.now())

	if t.tokens >= 1 {
		t.tokens--
		return true
	}
	return false
}

// full true, если корзина пополнилась до емкости и ее можно выбросить без потери состояния.
func (t *TokenBucket) full() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill(t.now())
	return t.tokens >= t.capacity
}

func (t *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	t.tokens += elapsed * t.refillRate
	if t.tokens > t.capacity {
		t.tokens = t.capacity
	}
	t.lastRefill = now
}

// Buckets отдельная корзина на каждого клиента.
// Полные корзины выбрасываются при очистке раз в sweepEvery, новая корзина такого же клиента
// начинает с полной емкости, так что удаление ничего не меняет в решениях.
type Buckets struct {
	capacity   int
	refillRate float64
	sweepEvery time.Duration
	now        Clock

	mu        sync.Mutex
	buckets   map[string]*TokenBucket
	lastSweep time.Time
}

type Option func(*Buckets)

// WithClock подмена времени для тестов.
func WithClock(now Clock) Option {
	return func(b *Buckets) {
		b.now = now
	}
}

// WithSweepEvery как часто выбрасывать простаивающие корзины.
func WithSweepEvery(d time.Duration) Option {
	return func(b *Buckets) {
		b.sweepEvery = d
	}
}

func NewBuckets(capacity int, refillRate float64, opts ...Option) *Buckets {
	b := &Buckets{
		capacity:   capacity,
		refillRate: refillRate,
		sweepEvery: time.Minute,
		now:        time.Now,
		buckets:    make(map[string]*TokenBucket),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.lastSweep = b.now()
	return b
}

// Allow списывает токен из корзины клиента key.
func (b *Buckets) Allow(key string) bool {
	return b.bucket(key).Allow()
}

// Len число корзин в памяти.
func (b *Buckets) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buckets)
}

func (b *Buckets) bucket(key string) *TokenBucket {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if now.Sub(b.lastSweep) >= b.sweepEvery {
		for k, bucket := range b.buckets {
			if k != key && bucket.full() {
				delete(b.buckets, k)
			}
		}
		b.lastSweep = now
	}

	bucket, ok := b.buckets[key]
	if !ok {
		bucket = newTokenBucket(b.capacity, b.refillRate, b.now)
		b.buckets[key] = bucket
	}
	return bucket
}
