package prefs

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"winx/internal/models"
	"winx/internal/session"
)

// ErrAdCooldown is returned while the previous reward is still cooling down.
var ErrAdCooldown = errors.New("prefs: ad reward on cooldown")

// AdWatcher runs the simulated watch-an-ad reward: cooldown gate, fake
// playback delay, then a gem credit through the session store.
type AdWatcher struct {
	Prefs    *Store
	Sessions *session.Store
	Logger   *zap.Logger

	Reward   decimal.Decimal
	Cooldown time.Duration
	Delay    time.Duration

	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

// Watch returns the updated counters and the new gem balance.
func (w *AdWatcher) Watch(ctx context.Context) (models.AdState, decimal.Decimal, error) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}

	state, err := w.Prefs.AdState(ctx)
	if err != nil {
		return models.AdState{}, decimal.Zero, err
	}
	if state.LastAdWatch != nil && now().Sub(*state.LastAdWatch) < w.Cooldown {
		return state, decimal.Zero, ErrAdCooldown
	}

	if w.Delay > 0 {
		timer := time.NewTimer(w.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return state, decimal.Zero, ctx.Err()
		}
	}

	balance, err := w.Sessions.Credit(ctx, w.Reward)
	if err != nil {
		return state, decimal.Zero, err
	}

	watchedAt := now()
	state.WatchedAds++
	state.LastAdWatch = &watchedAt
	if err := w.Prefs.SetAdState(ctx, state); err != nil {
		return state, balance, err
	}
	if w.Logger != nil {
		w.Logger.Info("ad reward granted",
			zap.String("reward", w.Reward.String()),
			zap.Int("watched_ads", state.WatchedAds),
		)
	}
	return state, balance, nil
}
