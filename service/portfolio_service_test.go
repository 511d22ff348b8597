package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orca-backend/models"
	"orca-backend/stats"
)

func TestCreateFromConceptInsertsAtFront(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	h.seedApps(t, models.AppProject{ID: "old", Category: models.CategorySaaS, Status: models.AppStatusDev})

	app, err := h.portfolio.CreateFromConcept(h.ctx, sampleConcept())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(app.ID, "gen-"))
	assert.Equal(t, models.AppStatusConcept, app.Status)
	assert.Equal(t, 0, app.MRR)
	assert.Equal(t, 5000, app.PotentialMRR)
	assert.False(t, app.IsPublic)
	assert.Empty(t, app.URL)
	assert.Empty(t, app.LinkedCourseID)
	require.NotNil(t, app.Blueprint)
	assert.Equal(t, "React + Gemini", app.Blueprint.TechStack)
	assert.Equal(t, testEpoch.UnixMilli(), app.CreatedAt)

	apps := h.apps(t)
	require.Len(t, apps, 2)
	assert.Equal(t, app.ID, apps[0].ID)
	assert.Equal(t, "old", apps[1].ID)

	assert.Equal(t, []string{"🚨 NEW CONCEPT DRAFTED: ShipFast"}, h.texts())

	h.clock.Advance(HypeDelay)
	feed := h.notes.List()
	require.Len(t, feed, 2)
	assert.Equal(t, "lfg this is based", feed[1].Text)
	assert.Equal(t, models.SenderAI, feed[1].Sender)
	assert.True(t, feed[1].IsHype)
}

func TestCreateFromConceptIdsAreUnique(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		app, err := h.portfolio.CreateFromConcept(h.ctx, sampleConcept())
		require.NoError(t, err)
		assert.False(t, seen[app.ID])
		seen[app.ID] = true
	}
	assert.Len(t, h.apps(t), 20)
}

func TestCreateFromConceptWithCurriculum(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)

	concept := sampleConcept()
	concept.CustomCurriculum = generatedNodes(5)

	app, err := h.portfolio.CreateFromConcept(h.ctx, concept)
	require.NoError(t, err)

	nodes := h.nodes(t)
	require.Len(t, nodes, 4+5)
	custom := nodes[4:]
	assert.Equal(t, custom[0].ID, app.LinkedCourseID)
	for i, n := range custom {
		assert.True(t, strings.HasPrefix(n.ID, "custom-"))
		assert.Equal(t, models.NodeSpecialized, n.Category)
		if i == 0 {
			assert.Equal(t, models.NodeUnlocked, n.Status)
		} else {
			assert.Equal(t, models.NodeLocked, n.Status)
			assert.Equal(t, custom[i-1].ID, n.DependsOn)
		}
	}

	assert.Equal(t, []string{
		"🎓 Full Custom Curriculum Generated for ShipFast",
		"🚨 NEW CONCEPT DRAFTED: ShipFast",
	}, h.texts())
}

func TestCreateFromConceptRejectsInvalidCategory(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)

	concept := sampleConcept()
	concept.Category = "Crypto"
	_, err := h.portfolio.CreateFromConcept(h.ctx, concept)
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.Empty(t, h.apps(t))
	assert.Empty(t, h.notes.List())
}

func TestShipFromAnyStatus(t *testing.T) {
	for _, status := range []models.AppStatus{models.AppStatusConcept, models.AppStatusDev, models.AppStatusBeta} {
		t.Run(string(status), func(t *testing.T) {
			h := newHarness(t)
			h.login(t, "ada", false)
			h.seedApps(t, models.AppProject{ID: "a1", Name: "Alpha", Category: models.CategorySaaS, Status: status, MRR: 42, PotentialMRR: 900})

			result, err := h.portfolio.Ship(h.ctx, ShipRequest{AppID: "a1", URL: " https://alpha.run.app "})
			require.NoError(t, err)
			require.True(t, result.Changed)

			app := h.apps(t)[0]
			assert.Equal(t, models.AppStatusLive, app.Status)
			assert.Equal(t, "https://alpha.run.app", app.URL)
			assert.Equal(t, ShipSeedMRR, app.MRR, "ship overwrites any prior mrr")
			assert.Equal(t, 900, app.PotentialMRR)
			assert.Equal(t, 200, h.user(t).Reputation)

			assert.Equal(t, []string{"🚀 APP DEPLOYED: https://alpha.run.app"}, h.texts())
			h.clock.Advance(CustomersDelay - time.Millisecond)
			assert.Len(t, h.notes.List(), 1)
			h.clock.Advance(time.Millisecond)
			feed := h.notes.List()
			require.Len(t, feed, 2)
			assert.Equal(t, "First customers incoming! MRR update detected.", feed[1].Text)
			assert.Equal(t, models.SenderAI, feed[1].Sender)
		})
	}
}

func TestShipRequiresURL(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	h.seedApps(t, models.AppProject{ID: "a1", Category: models.CategorySaaS, Status: models.AppStatusConcept})

	_, err := h.portfolio.Ship(h.ctx, ShipRequest{AppID: "a1", URL: "   "})
	assert.ErrorIs(t, err, ErrURLRequired)
	assert.Equal(t, models.AppStatusConcept, h.apps(t)[0].Status)
	assert.Equal(t, 0, h.user(t).Reputation)
}

func TestShipUnknownAppIsNoop(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)

	result, err := h.portfolio.Ship(h.ctx, ShipRequest{AppID: "missing", URL: "https://x.run.app"})
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Nil(t, result.App)
	assert.Equal(t, 0, h.user(t).Reputation)
	assert.Empty(t, h.notes.List())
	assert.Equal(t, 0, h.notes.Scheduler().Pending())
}

func TestProjectedRevenueShipScenario(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	assert.Equal(t, 0, stats.TotalProjectedMRR(h.apps(t)))

	app, err := h.portfolio.CreateFromConcept(h.ctx, sampleConcept())
	require.NoError(t, err)
	assert.Equal(t, 5000, stats.TotalProjectedMRR(h.apps(t)))

	_, err = h.portfolio.Ship(h.ctx, ShipRequest{AppID: app.ID, URL: "https://shipfast.run.app"})
	require.NoError(t, err)
	assert.Equal(t, 100, stats.TotalProjectedMRR(h.apps(t)))
}

func TestEditMergesMetadata(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	h.seedApps(t, models.AppProject{ID: "a1", Name: "Alpha", Description: "old", Category: models.CategorySaaS, Status: models.AppStatusLive, URL: "https://a.run.app", MRR: 100})

	name, desc := "Alpha Pro", "new"
	result, err := h.portfolio.Edit(h.ctx, "a1", models.AppPatch{Name: &name, Description: &desc})
	require.NoError(t, err)
	require.True(t, result.Changed)

	app := h.apps(t)[0]
	assert.Equal(t, "Alpha Pro", app.Name)
	assert.Equal(t, "new", app.Description)
	assert.Equal(t, "https://a.run.app", app.URL)
	assert.Equal(t, models.AppStatusLive, app.Status)
	assert.Equal(t, 100, app.MRR)
	assert.Equal(t, []string{"📝 App metadata updated for Alpha Pro"}, h.texts())
}

func TestEditCannotBlankLiveURL(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	h.seedApps(t, models.AppProject{ID: "a1", Name: "Alpha", Category: models.CategorySaaS, Status: models.AppStatusLive, URL: "https://a.run.app", MRR: 100})

	empty := ""
	_, err := h.portfolio.Edit(h.ctx, "a1", models.AppPatch{URL: &empty})
	assert.ErrorIs(t, err, ErrURLRequired)
	assert.Equal(t, "https://a.run.app", h.apps(t)[0].URL)
	assert.Empty(t, h.notes.List())
}

func TestRecategorize(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	h.seedApps(t, models.AppProject{ID: "a1", Category: models.CategorySaaS, Status: models.AppStatusConcept})

	_, err := h.portfolio.Recategorize(h.ctx, "a1", "Crypto")
	assert.ErrorIs(t, err, ErrInvalidCategory)

	result, err := h.portfolio.Recategorize(h.ctx, "a1", models.CategoryGame)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, models.CategoryGame, h.apps(t)[0].Category)
}

func TestToggleVisibilityTwiceRestores(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	h.seedApps(t, models.AppProject{ID: "a1", Category: models.CategorySaaS, Status: models.AppStatusConcept})

	result, err := h.portfolio.ToggleVisibility(h.ctx, "a1")
	require.NoError(t, err)
	assert.True(t, result.App.IsPublic)

	result, err = h.portfolio.ToggleVisibility(h.ctx, "a1")
	require.NoError(t, err)
	assert.False(t, result.App.IsPublic)
	assert.False(t, h.apps(t)[0].IsPublic)
	assert.Empty(t, h.notes.List())
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	h.seedApps(t,
		models.AppProject{ID: "a1", Category: models.CategorySaaS, Status: models.AppStatusConcept},
		models.AppProject{ID: "a2", Category: models.CategorySaaS, Status: models.AppStatusConcept},
	)

	_, err := h.portfolio.Delete(h.ctx, DeleteRequest{AppID: "a1"})
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Len(t, h.apps(t), 2)

	deleted, err := h.portfolio.Delete(h.ctx, DeleteRequest{AppID: "a1", Confirmed: true})
	require.NoError(t, err)
	assert.True(t, deleted)
	apps := h.apps(t)
	require.Len(t, apps, 1)
	assert.Equal(t, "a2", apps[0].ID)
	assert.Equal(t, []string{"🗑️ Blueprint deleted from database."}, h.texts())
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	before := []models.AppProject{
		{ID: "a1", Name: "Alpha", Category: models.CategorySaaS, Status: models.AppStatusConcept},
	}
	h.seedApps(t, before...)

	deleted, err := h.portfolio.Delete(h.ctx, DeleteRequest{AppID: "missing", Confirmed: true})
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, before, h.apps(t))
	assert.Empty(t, h.notes.List())
}

func TestSettingsReplaceWholeDocument(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)

	saved, err := h.portfolio.SaveSettings(h.ctx, models.PortfolioSettings{
		CompanyName: " Ada Labs ",
		FounderName: "Ada",
		LogoEmoji:   "🚀",
		AccentColor: "purple",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Labs", saved.CompanyName)
	assert.NotNil(t, saved.Socials)

	got, err := h.portfolio.Settings(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
	assert.Empty(t, got.Bio, "fields missing from the save are cleared")
}

func TestPublicProfile(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	h.seedApps(t,
		models.AppProject{ID: "a1", Category: models.CategorySaaS, Status: models.AppStatusLive, URL: "https://a.run.app", MRR: 100, IsPublic: true},
		models.AppProject{ID: "a2", Category: models.CategorySaaS, Status: models.AppStatusLive, URL: "https://b.run.app", MRR: 300},
		models.AppProject{ID: "a3", Category: models.CategorySaaS, Status: models.AppStatusConcept, PotentialMRR: 9000, IsPublic: true},
	)

	profile, err := h.portfolio.PublicProfile(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, "ada", profile.User.Username)
	assert.Equal(t, "Script Kiddie", profile.Rank)
	assert.Equal(t, 100, profile.Revenue)
	require.Len(t, profile.Apps, 2)
	assert.Equal(t, "a1", profile.Apps[0].ID)
	assert.Equal(t, "a3", profile.Apps[1].ID)
}
