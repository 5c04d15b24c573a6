package manager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"weatherkit/storage"
)

// Preferences holds the user preferences and tells subscribers about every saved change.
// It is passed explicitly to whatever needs it.
type Preferences struct {
	// saveMu orders writes and their notifications, so the last notification matches Get.
	saveMu      sync.Mutex
	mu          sync.RWMutex
	current     UserPreferences
	store       storage.Store
	logger      *slog.Logger
	nextID      int
	subscribers []subscriber
}

type subscriber struct {
	id int
	fn func(UserPreferences)
}

func NewPreferences(store storage.Store, logger *slog.Logger) *Preferences {
	if logger == nil {
		logger = slog.Default()
	}

	return &Preferences{
		current: DefaultPreferences(),
		store:   store,
		logger:  logger,
	}
}

// Load replaces the current value with the stored one. A missing or unreadable blob keeps the defaults.
func (p *Preferences) Load(ctx context.Context) error {
	data, err := p.store.Get(ctx, storage.KeyPreferences)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	var prefs UserPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		p.logger.Warn("stored preferences are unreadable, using defaults", "error", err)
		return nil
	}

	p.mu.Lock()
	p.current = prefs
	p.mu.Unlock()

	return nil
}

func (p *Preferences) Get() UserPreferences {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.current.clone()
}

func (p *Preferences) Save(ctx context.Context, prefs UserPreferences) error {
	return p.set(ctx, prefs.clone())
}

func (p *Preferences) Reset(ctx context.Context) error {
	return p.set(ctx, DefaultPreferences())
}

// Subscribe registers fn to be called after every successful Save or Reset.
// Subscribers run synchronously in subscription order and must not call Save or Reset.
func (p *Preferences) Subscribe(fn func(UserPreferences)) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	id := p.nextID
	p.subscribers = append(p.subscribers, subscriber{id: id, fn: fn})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		for i, sub := range p.subscribers {
			if sub.id == id {
				p.subscribers = append(p.subscribers[:i:i], p.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (p *Preferences) set(ctx context.Context, prefs UserPreferences) error {
	if prefs.Locations == nil {
		prefs.Locations = []string{}
	}

	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	p.saveMu.Lock()
	defer p.saveMu.Unlock()

	p.mu.Lock()
	if err := p.store.Put(ctx, storage.KeyPreferences, data); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("save preferences: %w", err)
	}
	p.current = prefs
	subscribers := append([]subscriber(nil), p.subscribers...)
	p.mu.Unlock()

	p.logger.Debug("preferences saved", "celsius", prefs.IsCelsius, "dark", prefs.IsDarkMode)

	for _, sub := range subscribers {
		sub.fn(prefs.clone())
	}

	return nil
}
