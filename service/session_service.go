package service

import (
	"context"
	"strings"
	"time"

	"orca-backend/logger"
	"orca-backend/models"
	"orca-backend/state"
	"orca-backend/stats"
)

// SessionService is the auth gate: it owns the user document lifecycle
type SessionService struct {
	store *state.Store
	now   func() time.Time
	log   *logger.Logger

	// onChange runs after every login and logout. Register before serving.
	onChange []func()
}

// SessionServiceOption is a functional option for SessionService
type SessionServiceOption func(*SessionService)

// SessionWithClock overrides the time source used for joinedAt
func SessionWithClock(now func() time.Time) SessionServiceOption {
	return func(s *SessionService) {
		s.now = now
	}
}

// SessionWithLogger sets the logger
func SessionWithLogger(log *logger.Logger) SessionServiceOption {
	return func(s *SessionService) {
		s.log = log
	}
}

// NewSessionService creates a new session service
func NewSessionService(store *state.Store, opts ...SessionServiceOption) *SessionService {
	s := &SessionService{store: store, now: time.Now, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("service", "SessionService")
	return s
}

// LoginRequest represents a request to open a session
type LoginRequest struct {
	Username string
	IsPro    bool
}

// Login creates a fresh profile and syncs the portfolio founder name
func (s *SessionService) Login(ctx context.Context, req LoginRequest) (*models.UserProfile, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	var user *models.UserProfile
	err := s.store.WithLock(func() error {
		current, err := s.store.LoadUser(ctx)
		if err != nil {
			return err
		}
		if current != nil {
			return ErrAlreadyAuthenticated
		}

		user = models.NewUserProfile(username, req.IsPro, s.now())
		if err := s.store.SaveUser(ctx, user); err != nil {
			return err
		}

		settings, err := s.store.LoadPortfolio(ctx)
		if err != nil {
			return err
		}
		settings.FounderName = username
		return s.store.SavePortfolio(ctx, settings)
	})
	if err != nil {
		return nil, err
	}

	s.changed()
	s.log.Info("user logged in", "username", username, "is_pro", req.IsPro)
	return user, nil
}

// Logout erases the user document. Other documents are kept.
func (s *SessionService) Logout(ctx context.Context) error {
	err := s.store.WithLock(func() error {
		return s.store.SaveUser(ctx, nil)
	})
	if err != nil {
		return err
	}
	s.changed()
	return nil
}

// OnChange registers fn to run after every login and logout
func (s *SessionService) OnChange(fn func()) {
	s.onChange = append(s.onChange, fn)
}

func (s *SessionService) changed() {
	for _, fn := range s.onChange {
		fn()
	}
}

// Current returns the signed-in profile or nil
func (s *SessionService) Current(ctx context.Context) (*models.UserProfile, error) {
	return s.store.LoadUser(ctx)
}

// Require returns the signed-in profile or ErrNotAuthenticated
func (s *SessionService) Require(ctx context.Context) (*models.UserProfile, error) {
	user, err := s.store.LoadUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	return user, nil
}

// AddReputation grants n reputation to the signed-in user. Anonymous sessions
// and non-positive amounts are ignored.
func (s *SessionService) AddReputation(ctx context.Context, n int) (*models.UserProfile, error) {
	var user *models.UserProfile
	err := s.store.WithLock(func() error {
		var err error
		user, err = s.addReputationLocked(ctx, n)
		return err
	})
	return user, err
}

// addReputationLocked must run inside store.WithLock
func (s *SessionService) addReputationLocked(ctx context.Context, n int) (*models.UserProfile, error) {
	user, err := s.store.LoadUser(ctx)
	if err != nil || user == nil {
		return user, err
	}
	if n <= 0 {
		return user, nil
	}
	user.Reputation += n
	user.Title = stats.Rank(user.Reputation)
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
