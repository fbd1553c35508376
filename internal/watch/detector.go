package watch

import (
	"sync"
	"time"
)

const (
	DefaultCooldown       = 10 * time.Second
	DefaultSuppressWindow = 5 * time.Second
)

// Detector сравнивает соседние снимки заказов и решает, нужно ли уведомление.
// Состояние принадлежит одному экземпляру, создается один раз на сессию.
type Detector struct {
	mu sync.Mutex

	previous        map[string]struct{}
	seeded          bool
	lastAlert       time.Time
	suppressedUntil time.Time

	cooldown       time.Duration
	suppressWindow time.Duration
	now            func() time.Time
}

type Option func(*Detector)

func WithCooldown(cooldown time.Duration) Option {
	return func(d *Detector) {
		d.cooldown = cooldown
	}
}

func WithSuppressWindow(window time.Duration) Option {
	return func(d *Detector) {
		d.suppressWindow = window
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Detector) {
		d.now = now
	}
}

func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		previous:       make(map[string]struct{}),
		cooldown:       DefaultCooldown,
		suppressWindow: DefaultSuppressWindow,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Observe принимает новый снимок и возвращает число новых заказов для уведомления.
// 0 означает, что уведомлять не нужно. Предыдущий снимок заменяется всегда.
func (d *Detector) Observe(current []string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	snapshot := make(map[string]struct{}, len(current))
	for _, id := range current {
		snapshot[id] = struct{}{}
	}

	previous := d.previous
	d.previous = snapshot

	if !d.seeded {
		d.seeded = true
		return 0
	}

	added := 0
	for id := range snapshot {
		if _, ok := previous[id]; !ok {
			added++
		}
	}

	now := d.now()
	switch {
	case added == 0:
		return 0
	case len(snapshot) <= len(previous):
		return 0
	case now.Before(d.suppressedUntil):
		return 0
	case !d.lastAlert.IsZero() && now.Sub(d.lastAlert) < d.cooldown:
		return 0
	}

	d.lastAlert = now
	return added
}

// Suppress открывает окно, в котором уведомления не отправляются.
func (d *Detector) Suppress() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.suppressedUntil = d.now().Add(d.suppressWindow)
}

// Reset следующий снимок снова только запоминается.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.previous = make(map[string]struct{})
	d.seeded = false
}
