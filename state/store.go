// Package state owns the four persisted documents (user, apps, portfolio,
// curriculum) and mediates every read and write against the storage backend.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"orca-backend/logger"
	"orca-backend/models"
	"orca-backend/storage"
)

// Document family names. The persisted key is the configured prefix plus the name.
const (
	DocUser       = "user"
	DocApps       = "apps"
	DocPortfolio  = "portfolio"
	DocCurriculum = "curriculum"
)

// Store is the application state container. It is safe for concurrent use;
// WithLock serializes read-modify-write sequences so there is one writer at a time.
type Store struct {
	backend storage.Storage
	prefix  string
	log     *logger.Logger

	writeMu sync.Mutex
}

// New creates a store over backend. Keys are namespaced with prefix (e.g. "orca_").
func New(backend storage.Storage, prefix string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		backend: backend,
		prefix:  prefix,
		log:     log.With("service", "StateStore"),
	}
}

// WithLock runs fn while holding the writer lock
func (s *Store) WithLock(fn func() error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return fn()
}

// Key returns the persisted key of a document family
func (s *Store) Key(doc string) string {
	return s.prefix + doc
}

// LoadUser returns the persisted profile, or nil when anonymous
func (s *Store) LoadUser(ctx context.Context) (*models.UserProfile, error) {
	var user models.UserProfile
	ok, err := s.load(ctx, DocUser, &user)
	if err != nil || !ok {
		return nil, err
	}
	if user.Username == "" {
		s.log.Warn("discarding user document without username")
		return nil, nil
	}
	if user.Reputation < 0 {
		user.Reputation = 0
	}
	return &user, nil
}

// SaveUser persists the profile. A nil profile erases the record entirely.
func (s *Store) SaveUser(ctx context.Context, user *models.UserProfile) error {
	if user == nil {
		if err := s.backend.Delete(ctx, s.Key(DocUser)); err != nil {
			return fmt.Errorf("erase user: %w", err)
		}
		return nil
	}
	return s.save(ctx, DocUser, user)
}

// LoadApps returns the app portfolio, empty when absent
func (s *Store) LoadApps(ctx context.Context) ([]models.AppProject, error) {
	var apps []models.AppProject
	ok, err := s.load(ctx, DocApps, &apps)
	if err != nil {
		return nil, err
	}
	if !ok || apps == nil {
		return []models.AppProject{}, nil
	}
	return apps, nil
}

// SaveApps replaces the whole app portfolio
func (s *Store) SaveApps(ctx context.Context, apps []models.AppProject) error {
	if apps == nil {
		apps = []models.AppProject{}
	}
	return s.save(ctx, DocApps, apps)
}

// LoadPortfolio returns the portfolio settings, defaults when absent
func (s *Store) LoadPortfolio(ctx context.Context) (models.PortfolioSettings, error) {
	var settings models.PortfolioSettings
	ok, err := s.load(ctx, DocPortfolio, &settings)
	if err != nil {
		return models.PortfolioSettings{}, err
	}
	if !ok {
		return models.DefaultPortfolio(), nil
	}
	return settings, nil
}

// SavePortfolio replaces the portfolio settings
func (s *Store) SavePortfolio(ctx context.Context, settings models.PortfolioSettings) error {
	return s.save(ctx, DocPortfolio, settings)
}

// LoadCurriculum returns the curriculum chain, the built-in seed when absent
func (s *Store) LoadCurriculum(ctx context.Context) ([]models.CourseNode, error) {
	var nodes []models.CourseNode
	ok, err := s.load(ctx, DocCurriculum, &nodes)
	if err != nil {
		return nil, err
	}
	if !ok || nodes == nil {
		return SeedCurriculum(), nil
	}
	return nodes, nil
}

// SaveCurriculum replaces the curriculum chain
func (s *Store) SaveCurriculum(ctx context.Context, nodes []models.CourseNode) error {
	if nodes == nil {
		nodes = []models.CourseNode{}
	}
	return s.save(ctx, DocCurriculum, nodes)
}

// load reads and decodes a document family into v. It reports false when the
// document is absent or corrupt; only backend failures are returned as errors.
func (s *Store) load(ctx context.Context, doc string, v interface{}) (bool, error) {
	raw, err := s.backend.Get(ctx, s.Key(doc))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", doc, err)
	}

	if err := decode(doc, raw, v); err != nil {
		s.log.Warn("discarding corrupt document", "document", doc, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, doc string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", doc, err)
	}
	raw, err := json.Marshal(envelope{SchemaVersion: SchemaVersion, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s: %w", doc, err)
	}
	if err := s.backend.Put(ctx, s.Key(doc), raw); err != nil {
		return fmt.Errorf("save %s: %w", doc, err)
	}
	return nil
}
