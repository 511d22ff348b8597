package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"orca-backend/logger"
	"orca-backend/metrics"
	"orca-backend/models"
	"orca-backend/notify"
	"orca-backend/state"
	"orca-backend/stats"
)

const (
	// ShipSeedMRR is the revenue every app starts with once shipped
	ShipSeedMRR = 100
	// ShipReputation is granted to the signed-in user on every ship
	ShipReputation = 200

	HypeDelay      = 1500 * time.Millisecond
	CustomersDelay = 2000 * time.Millisecond
)

// PortfolioService owns the app portfolio and the portfolio settings documents
type PortfolioService struct {
	store      *state.Store
	session    *SessionService
	curriculum *CurriculumService
	notes      *notify.Log
	metrics    *metrics.Metrics
	log        *logger.Logger
}

// PortfolioServiceOption is a functional option for PortfolioService
type PortfolioServiceOption func(*PortfolioService)

// PortfolioWithCurriculum sets the engine that receives bundled curricula
func PortfolioWithCurriculum(c *CurriculumService) PortfolioServiceOption {
	return func(s *PortfolioService) {
		s.curriculum = c
	}
}

// PortfolioWithMetrics sets the metrics sink
func PortfolioWithMetrics(m *metrics.Metrics) PortfolioServiceOption {
	return func(s *PortfolioService) {
		s.metrics = m
	}
}

// PortfolioWithLogger sets the logger
func PortfolioWithLogger(log *logger.Logger) PortfolioServiceOption {
	return func(s *PortfolioService) {
		s.log = log
	}
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(store *state.Store, session *SessionService, notes *notify.Log, opts ...PortfolioServiceOption) *PortfolioService {
	s := &PortfolioService{store: store, session: session, notes: notes, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("service", "PortfolioService")
	return s
}

// AppResult represents the outcome of a mutation on one app. Changed is
// false (and App nil) when the id did not match any app.
type AppResult struct {
	App     *models.AppProject `json:"app"`
	Changed bool               `json:"changed"`
}

// List returns every app, newest first
func (s *PortfolioService) List(ctx context.Context) ([]models.AppProject, error) {
	if _, err := s.session.Require(ctx); err != nil {
		return nil, err
	}
	return s.store.LoadApps(ctx)
}

// Get returns one app or ErrAppNotFound
func (s *PortfolioService) Get(ctx context.Context, appID string) (*models.AppProject, error) {
	apps, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		if apps[i].ID == appID {
			return &apps[i], nil
		}
	}
	return nil, ErrAppNotFound
}

// CreateFromConcept inserts a new Concept app at the front of the portfolio.
// A bundled curriculum is appended to the chain in the same critical section
// and the app links to its first node.
func (s *PortfolioService) CreateFromConcept(ctx context.Context, concept *models.GeneratedAppConcept) (*models.AppProject, error) {
	if concept == nil || strings.TrimSpace(concept.Name) == "" {
		return nil, fmt.Errorf("%w: concept has no name", ErrInvalidGenerationInput)
	}
	if !concept.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	bundled := len(concept.CustomCurriculum) > 0
	if bundled && s.curriculum == nil {
		return nil, fmt.Errorf("curriculum engine not set")
	}

	var app models.AppProject
	err := s.store.WithLock(func() error {
		if _, err := s.session.Require(ctx); err != nil {
			return err
		}
		apps, err := s.store.LoadApps(ctx)
		if err != nil {
			return err
		}

		blueprint := concept.Blueprint
		app = models.AppProject{
			ID:           "gen-" + uuid.NewString(),
			Name:         concept.Name,
			Description:  concept.Desc,
			Category:     concept.Category,
			MRR:          0,
			PotentialMRR: max(concept.PotentialMRR, 0),
			Status:       models.AppStatusConcept,
			CreatedAt:    s.notes.Now().UnixMilli(),
			Blueprint:    &blueprint,
			IsPublic:     false,
		}

		if bundled {
			first, err := s.curriculum.appendSpecializedLocked(ctx, concept.CustomCurriculum)
			if err != nil {
				return err
			}
			app.LinkedCourseID = first
		}

		return s.store.SaveApps(ctx, append([]models.AppProject{app}, apps...))
	})
	if err != nil {
		return nil, err
	}

	if bundled {
		s.notes.Append(models.SenderSystem, "🎓 Full Custom Curriculum Generated for "+app.Name)
	}
	s.notes.Append(models.SenderSystem, "🚨 NEW CONCEPT DRAFTED: "+app.Name)
	if concept.HypeComment != "" {
		s.notes.LaterHype(HypeDelay, models.SenderAI, concept.HypeComment)
	}

	s.log.Info("app created from concept", "app_id", app.ID, "linked_course_id", app.LinkedCourseID)
	return &app, nil
}

// ShipRequest represents a request to ship an app
type ShipRequest struct {
	AppID string
	URL   string
}

// Ship moves an app to Live from any status, seeds its revenue and rewards the user
func (s *PortfolioService) Ship(ctx context.Context, req ShipRequest) (*AppResult, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, ErrURLRequired
	}

	result, err := s.mutate(ctx, req.AppID, func(app *models.AppProject) error {
		app.Status = models.AppStatusLive
		app.URL = url
		app.MRR = ShipSeedMRR
		_, err := s.session.addReputationLocked(ctx, ShipReputation)
		return err
	})
	if err != nil || !result.Changed {
		return result, err
	}

	s.metrics.AppShipped()
	s.notes.Append(models.SenderSystem, "🚀 APP DEPLOYED: "+url)
	s.notes.Later(CustomersDelay, models.SenderAI, "First customers incoming! MRR update detected.")
	s.log.Info("app shipped", "app_id", req.AppID, "url", url)
	return result, nil
}

// Edit merges name, description, url and blueprint. Status, revenue and id are untouched.
func (s *PortfolioService) Edit(ctx context.Context, appID string, patch models.AppPatch) (*AppResult, error) {
	result, err := s.mutate(ctx, appID, func(app *models.AppProject) error {
		if patch.URL != nil {
			url := strings.TrimSpace(*patch.URL)
			if url == "" && app.IsLive() {
				return ErrURLRequired
			}
			app.URL = url
		}
		if patch.Name != nil {
			if name := strings.TrimSpace(*patch.Name); name != "" {
				app.Name = name
			}
		}
		if patch.Description != nil {
			app.Description = *patch.Description
		}
		if patch.Blueprint != nil {
			bp := *patch.Blueprint
			app.Blueprint = &bp
		}
		return nil
	})
	if err != nil || !result.Changed {
		return result, err
	}

	s.notes.Append(models.SenderSystem, "📝 App metadata updated for "+result.App.Name)
	return result, nil
}

// Recategorize sets the category only
func (s *PortfolioService) Recategorize(ctx context.Context, appID string, category models.AppCategory) (*AppResult, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	return s.mutate(ctx, appID, func(app *models.AppProject) error {
		app.Category = category
		return nil
	})
}

// ToggleVisibility flips isPublic
func (s *PortfolioService) ToggleVisibility(ctx context.Context, appID string) (*AppResult, error) {
	return s.mutate(ctx, appID, func(app *models.AppProject) error {
		app.IsPublic = !app.IsPublic
		return nil
	})
}

// DeleteRequest represents a request to delete an app
type DeleteRequest struct {
	AppID     string
	Confirmed bool
}

// Delete hard-removes an app once confirmed. Unknown ids are a no-op.
func (s *PortfolioService) Delete(ctx context.Context, req DeleteRequest) (bool, error) {
	if !req.Confirmed {
		return false, ErrConfirmationRequired
	}

	deleted := false
	err := s.store.WithLock(func() error {
		if _, err := s.session.Require(ctx); err != nil {
			return err
		}
		apps, err := s.store.LoadApps(ctx)
		if err != nil {
			return err
		}
		kept := make([]models.AppProject, 0, len(apps))
		for _, app := range apps {
			if app.ID == req.AppID {
				deleted = true
				continue
			}
			kept = append(kept, app)
		}
		if !deleted {
			return nil
		}
		return s.store.SaveApps(ctx, kept)
	})
	if err != nil || !deleted {
		return false, err
	}

	s.notes.Append(models.SenderSystem, "🗑️ Blueprint deleted from database.")
	s.log.Info("app deleted", "app_id", req.AppID)
	return true, nil
}

// Settings returns the portfolio settings
func (s *PortfolioService) Settings(ctx context.Context) (models.PortfolioSettings, error) {
	if _, err := s.session.Require(ctx); err != nil {
		return models.PortfolioSettings{}, err
	}
	return s.store.LoadPortfolio(ctx)
}

// SaveSettings replaces the portfolio settings document as a whole
func (s *PortfolioService) SaveSettings(ctx context.Context, settings models.PortfolioSettings) (models.PortfolioSettings, error) {
	settings.CompanyName = strings.TrimSpace(settings.CompanyName)
	settings.FounderName = strings.TrimSpace(settings.FounderName)
	if settings.Socials == nil {
		settings.Socials = &models.Socials{}
	}
	err := s.store.WithLock(func() error {
		if _, err := s.session.Require(ctx); err != nil {
			return err
		}
		return s.store.SavePortfolio(ctx, settings)
	})
	if err != nil {
		return models.PortfolioSettings{}, err
	}
	return settings, nil
}

// PublicProfile is the shareable view of the founder and their public apps
type PublicProfile struct {
	User     *models.UserProfile      `json:"user"`
	Rank     string                   `json:"rank"`
	Settings models.PortfolioSettings `json:"settings"`
	Apps     []models.AppProject      `json:"apps"`
	Revenue  int                      `json:"revenue"`
}

// PublicProfile assembles the public portfolio page
func (s *PortfolioService) PublicProfile(ctx context.Context) (*PublicProfile, error) {
	user, err := s.session.Require(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.store.LoadPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := s.store.LoadApps(ctx)
	if err != nil {
		return nil, err
	}
	return &PublicProfile{
		User:     user,
		Rank:     stats.Rank(user.Reputation),
		Settings: settings,
		Apps:     stats.PublicApps(apps),
		Revenue:  stats.PublicRevenue(apps),
	}, nil
}

// mutate applies fn to one app under the store lock and persists the collection.
// An unknown id leaves everything untouched.
func (s *PortfolioService) mutate(ctx context.Context, appID string, fn func(*models.AppProject) error) (*AppResult, error) {
	result := &AppResult{}
	err := s.store.WithLock(func() error {
		if _, err := s.session.Require(ctx); err != nil {
			return err
		}
		apps, err := s.store.LoadApps(ctx)
		if err != nil {
			return err
		}
		for i := range apps {
			if apps[i].ID != appID {
				continue
			}
			updated := apps[i]
			if err := fn(&updated); err != nil {
				return err
			}
			apps[i] = updated
			if err := s.store.SaveApps(ctx, apps); err != nil {
				return err
			}
			result.App = &updated
			result.Changed = true
			return nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
