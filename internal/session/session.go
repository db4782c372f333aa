// Package session owns the single current user record. Login and register
// are simulated: any non-empty credentials succeed after a configured delay,
// and no credential is ever stored or verified.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"winx/internal/authz"
	"winx/internal/models"
	"winx/internal/storage"
)

var (
	// ErrValidation covers login/register calls with missing required fields.
	ErrValidation = errors.New("session: missing required field")
	// ErrNoSession is returned by balance operations when nobody is signed in.
	ErrNoSession = errors.New("session: no active session")
	// ErrInsufficientBalance is returned by Debit when the balance would go
	// negative. It is never conflated with ErrNoSession.
	ErrInsufficientBalance = errors.New("session: insufficient gem balance")
)

// Store holds the zero-or-one current user and mirrors it to the winx_user
// blob on every mutation.
type Store struct {
	mu      sync.Mutex
	current *models.User

	blobs        storage.Store
	policy       authz.Policy
	logger       *zap.Logger
	delay        time.Duration
	startingGems decimal.Decimal
}

type Options struct {
	// Delay is the simulated network latency for login/register.
	Delay time.Duration
	// StartingGems is the balance granted to every fabricated account.
	StartingGems decimal.Decimal
}

// New loads the persisted session, if any.
func New(ctx context.Context, blobs storage.Store, policy authz.Policy, opts Options, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		blobs:        blobs,
		policy:       policy,
		logger:       logger,
		delay:        opts.Delay,
		startingGems: opts.StartingGems,
	}

	raw, err := blobs.Get(ctx, storage.KeyUser)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		var user models.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, err
		}
		s.current = &user
		logger.Info("session restored", zap.String("email", user.Email))
	}

	return s, nil
}

// Login fabricates a session for any non-empty email/password pair after the
// simulated latency. The admin flag comes from the authz policy.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	if strings.TrimSpace(email) == "" {
		return models.User{}, fmt.Errorf("%w: email", ErrValidation)
	}
	if password == "" {
		return models.User{}, fmt.Errorf("%w: password", ErrValidation)
	}

	if err := s.wait(ctx); err != nil {
		return models.User{}, err
	}

	name := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		name = email[:at]
	}

	user := models.User{
		ID:       time.Now().UnixMilli(),
		Name:     name,
		Email:    email,
		Gems:     s.startingGems,
		IsAdmin:  s.policy != nil && s.policy.IsAdmin(email),
		JoinedAt: time.Now().UTC(),
	}
	if err := s.setCurrent(ctx, user); err != nil {
		return models.User{}, err
	}
	s.logger.Info("login ok", zap.String("email", email), zap.Bool("admin", user.IsAdmin))
	return user, nil
}

// Register behaves like Login with a caller-supplied display name and never
// grants admin.
func (s *Store) Register(ctx context.Context, name, email, password string) (models.User, error) {
	if strings.TrimSpace(name) == "" {
		return models.User{}, fmt.Errorf("%w: name", ErrValidation)
	}
	if strings.TrimSpace(email) == "" {
		return models.User{}, fmt.Errorf("%w: email", ErrValidation)
	}
	if password == "" {
		return models.User{}, fmt.Errorf("%w: password", ErrValidation)
	}

	if err := s.wait(ctx); err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:       time.Now().UnixMilli(),
		Name:     name,
		Email:    email,
		Gems:     s.startingGems,
		IsAdmin:  false,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.setCurrent(ctx, user); err != nil {
		return models.User{}, err
	}
	s.logger.Info("register ok", zap.String("email", email))
	return user, nil
}

// Logout discards the current session and removes its durable copy.
// It always succeeds, signed in or not.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.blobs.Delete(ctx, storage.KeyUser); err != nil {
		s.logger.Warn("session blob delete failed", zap.Error(err))
	}
}

// Current returns a copy of the signed-in user, or false.
func (s *Store) Current() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

func (s *Store) IsAdmin() bool {
	user, ok := s.Current()
	return ok && user.IsAdmin
}

// Credit adds amount (> 0) to the balance and returns the new balance.
func (s *Store) Credit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return decimal.Zero, ErrNoSession
	}
	s.current.Gems = s.current.Gems.Add(amount)
	if err := s.persist(ctx); err != nil {
		return decimal.Zero, err
	}
	return s.current.Gems, nil
}

// Debit subtracts amount from the balance, refusing to go negative. The
// no-session and insufficient-balance failures stay distinguishable.
func (s *Store) Debit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return decimal.Zero, ErrNoSession
	}
	if s.current.Gems.Cmp(amount) < 0 {
		return s.current.Gems, ErrInsufficientBalance
	}
	s.current.Gems = s.current.Gems.Sub(amount)
	if err := s.persist(ctx); err != nil {
		return decimal.Zero, err
	}
	return s.current.Gems, nil
}

// wait blocks for the simulated latency, honoring cancellation.
func (s *Store) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// setCurrent replaces the session. Concurrent login/register calls are not
// coordinated: last to complete wins.
func (s *Store) setCurrent(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &user
	return s.persist(ctx)
}

// persist writes the current record. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.current)
	if err != nil {
		return err
	}
	return s.blobs.Put(ctx, storage.KeyUser, raw)
}
