package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"orca-backend/logger"
	"orca-backend/models"
	"orca-backend/state"
)

// Bundle is a portable snapshot of every persisted document
type Bundle struct {
	SchemaVersion int                       `json:"schemaVersion"`
	ExportedAt    int64                     `json:"exportedAt"`
	User          *models.UserProfile       `json:"user,omitempty"`
	Apps          []models.AppProject       `json:"apps"`
	Portfolio     *models.PortfolioSettings `json:"portfolio"`
	Curriculum    []models.CourseNode       `json:"curriculum"`
}

// ImportResult summarizes what an import replaced
type ImportResult struct {
	Apps        int  `json:"apps"`
	Nodes       int  `json:"nodes"`
	Portfolio   bool `json:"portfolio"`
	IgnoredUser bool `json:"ignoredUser"`
}

// BackupService exports and imports the persisted documents
type BackupService struct {
	store      *state.Store
	session    *SessionService
	curriculum *CurriculumService
	now        func() int64
	log        *logger.Logger
}

// BackupServiceOption is a functional option for BackupService
type BackupServiceOption func(*BackupService)

// BackupWithCurriculum drops in-memory lesson attempts after a curriculum import
func BackupWithCurriculum(c *CurriculumService) BackupServiceOption {
	return func(s *BackupService) {
		s.curriculum = c
	}
}

// NewBackupService creates a new backup service
func NewBackupService(store *state.Store, session *SessionService, now func() int64, log *logger.Logger, opts ...BackupServiceOption) *BackupService {
	if log == nil {
		log = logger.Nop()
	}
	s := &BackupService{store: store, session: session, now: now, log: log.With("service", "BackupService")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Export snapshots the four documents
func (s *BackupService) Export(ctx context.Context) (*Bundle, error) {
	b := &Bundle{SchemaVersion: state.SchemaVersion, ExportedAt: s.now()}
	err := s.store.WithLock(func() error {
		user, err := s.session.Require(ctx)
		if err != nil {
			return err
		}
		b.User = user
		if b.Apps, err = s.store.LoadApps(ctx); err != nil {
			return err
		}
		settings, err := s.store.LoadPortfolio(ctx)
		if err != nil {
			return err
		}
		b.Portfolio = &settings
		b.Curriculum, err = s.store.LoadCurriculum(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Import validates a bundle and replaces the documents it carries. Any
// validation failure rejects the whole bundle. The user document is never
// imported; the session owns it. Node status is never taken from the bundle:
// known nodes keep their stored status and new ones start locked.
func (s *BackupService) Import(ctx context.Context, raw []byte) (*ImportResult, error) {
	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if b.SchemaVersion < 0 || b.SchemaVersion > state.SchemaVersion {
		return nil, fmt.Errorf("%w: unsupported schema version %d", ErrInvalidBackup, b.SchemaVersion)
	}
	if err := validateApps(b.Apps); err != nil {
		return nil, err
	}
	if err := validateCurriculum(b.Curriculum); err != nil {
		return nil, err
	}
	if b.SchemaVersion < state.SchemaVersion {
		state.LinkChain(b.Curriculum)
	}

	result := &ImportResult{IgnoredUser: b.User != nil}
	err := s.store.WithLock(func() error {
		if _, err := s.session.Require(ctx); err != nil {
			return err
		}
		if b.Apps != nil {
			if err := s.store.SaveApps(ctx, b.Apps); err != nil {
				return err
			}
			result.Apps = len(b.Apps)
		}
		if b.Portfolio != nil {
			settings := *b.Portfolio
			if settings.Socials == nil {
				settings.Socials = &models.Socials{}
			}
			if err := s.store.SavePortfolio(ctx, settings); err != nil {
				return err
			}
			result.Portfolio = true
		}
		if b.Curriculum != nil {
			stored, err := s.store.LoadCurriculum(ctx)
			if err != nil {
				return err
			}
			settleImportedStatus(stored, b.Curriculum)
			if err := s.store.SaveCurriculum(ctx, b.Curriculum); err != nil {
				return err
			}
			result.Nodes = len(b.Curriculum)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Nodes > 0 && s.curriculum != nil {
		s.curriculum.Reset()
	}

	s.log.Info("backup imported", "apps", result.Apps, "nodes", result.Nodes, "portfolio", result.Portfolio)
	return result, nil
}

func validateApps(apps []models.AppProject) error {
	seen := make(map[string]bool, len(apps))
	for i, app := range apps {
		if app.ID == "" || seen[app.ID] {
			return fmt.Errorf("%w: app %d has a missing or duplicate id", ErrInvalidBackup, i)
		}
		seen[app.ID] = true
		if !app.Category.Valid() {
			return fmt.Errorf("%w: app %q has unknown category %q", ErrInvalidBackup, app.ID, app.Category)
		}
		switch app.Status {
		case models.AppStatusConcept, models.AppStatusDev, models.AppStatusBeta:
		case models.AppStatusLive:
			if strings.TrimSpace(app.URL) == "" {
				return fmt.Errorf("%w: live app %q has no url", ErrInvalidBackup, app.ID)
			}
		default:
			return fmt.Errorf("%w: app %q has unknown status %q", ErrInvalidBackup, app.ID, app.Status)
		}
		if app.MRR < 0 || app.PotentialMRR < 0 {
			return fmt.Errorf("%w: app %q has negative revenue", ErrInvalidBackup, app.ID)
		}
	}
	return nil
}

func validateCurriculum(nodes []models.CourseNode) error {
	seen := make(map[string]bool, len(nodes))
	for i, n := range nodes {
		if n.ID == "" || seen[n.ID] {
			return fmt.Errorf("%w: node %d has a missing or duplicate id", ErrInvalidBackup, i)
		}
		seen[n.ID] = true
		switch n.Status {
		case models.NodeLocked, models.NodeUnlocked, models.NodeCompleted:
		default:
			return fmt.Errorf("%w: node %q has unknown status %q", ErrInvalidBackup, n.ID, n.Status)
		}
		for j, q := range n.Quiz {
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				return fmt.Errorf("%w: node %q question %d has no valid answer", ErrInvalidBackup, n.ID, j+1)
			}
		}
	}
	return nil
}

// settleImportedStatus overwrites the status of every imported node. Nodes
// already stored keep their status. New nodes start locked and open only
// when they head the chain or their prerequisite is completed. A chain with
// nothing open gets its first node unlocked.
func settleImportedStatus(stored, imported []models.CourseNode) {
	known := make(map[string]models.NodeStatus, len(stored))
	for _, n := range stored {
		known[n.ID] = n.Status
	}

	completed := make(map[string]bool)
	for i := range imported {
		status, ok := known[imported[i].ID]
		if !ok {
			status = models.NodeLocked
		}
		imported[i].Status = status
		if status == models.NodeCompleted {
			completed[imported[i].ID] = true
		}
	}

	open := false
	for i := range imported {
		n := &imported[i]
		if _, ok := known[n.ID]; !ok {
			prereq := n.DependsOn
			if prereq == "" && i > 0 {
				prereq = imported[i-1].ID
			}
			if prereq == "" || completed[prereq] {
				n.Status = models.NodeUnlocked
			}
		}
		if n.Status != models.NodeLocked {
			open = true
		}
	}
	if !open && len(imported) > 0 {
		imported[0].Status = models.NodeUnlocked
	}
}
