package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orca-backend/models"
	"orca-backend/stats"
)

func newBackup(h *harness) *BackupService {
	return NewBackupService(h.store, h.session, func() int64 { return h.clock.Now().UnixMilli() }, nil,
		BackupWithCurriculum(h.curriculum))
}

func TestExportImportRoundTrip(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	h.seedApps(t, models.AppProject{ID: "a1", Name: "Alpha", Category: models.CategorySaaS, Status: models.AppStatusLive, URL: "https://a.run.app", MRR: 100})
	backup := newBackup(h)

	bundle, err := backup.Export(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, bundle.SchemaVersion)
	assert.Equal(t, "ada", bundle.User.Username)
	assert.Len(t, bundle.Apps, 1)
	assert.Len(t, bundle.Curriculum, 4)
	assert.Equal(t, "ada", bundle.Portfolio.FounderName)

	raw, err := json.Marshal(bundle)
	require.NoError(t, err)

	require.NoError(t, h.store.SaveApps(h.ctx, nil))
	result, err := backup.Import(h.ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Apps)
	assert.Equal(t, 4, result.Nodes)
	assert.True(t, result.Portfolio)
	assert.True(t, result.IgnoredUser)

	assert.Equal(t, bundle.Apps, h.apps(t))
}

func TestImportIgnoresUserDocument(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	backup := newBackup(h)

	raw := []byte(`{"schemaVersion":1,"user":{"username":"mallory","reputation":99999},"apps":[]}`)
	_, err := backup.Import(h.ctx, raw)
	require.NoError(t, err)

	user := h.user(t)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, 0, user.Reputation)
}

func TestImportRejectsInvalidBundleAtomically(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	h.seedApps(t, models.AppProject{ID: "keep", Category: models.CategorySaaS, Status: models.AppStatusConcept})
	backup := newBackup(h)

	bad := map[string]string{
		"not json":           `{"apps":`,
		"future version":     `{"schemaVersion":9,"apps":[]}`,
		"live without url":   `{"schemaVersion":1,"apps":[{"id":"x","category":"SaaS Product","status":"Live"}]}`,
		"duplicate app ids":  `{"schemaVersion":1,"apps":[{"id":"x","category":"SaaS Product","status":"Dev"},{"id":"x","category":"SaaS Product","status":"Dev"}]}`,
		"unknown category":   `{"schemaVersion":1,"apps":[{"id":"x","category":"Crypto","status":"Dev"}]}`,
		"bad node status":    `{"schemaVersion":1,"apps":[],"curriculum":[{"id":"n","status":"done"}]}`,
		"bad quiz answer":    `{"schemaVersion":1,"curriculum":[{"id":"n","status":"locked","quiz":[{"options":["a"],"correctIndex":4}]}]}`,
		"negative revenue":   `{"schemaVersion":1,"apps":[{"id":"x","category":"SaaS Product","status":"Dev","mrr":-1}]}`,
		"missing node id":    `{"schemaVersion":1,"curriculum":[{"status":"locked"}]}`,
		"bad app, good rest": `{"schemaVersion":1,"apps":[{"id":""}],"portfolio":{"companyName":"Evil"}}`,
	}
	for name, raw := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := backup.Import(h.ctx, []byte(raw))
			assert.ErrorIs(t, err, ErrInvalidBackup)

			apps := h.apps(t)
			require.Len(t, apps, 1)
			assert.Equal(t, "keep", apps[0].ID)
			settings, err := h.store.LoadPortfolio(h.ctx)
			require.NoError(t, err)
			assert.NotEqual(t, "Evil", settings.CompanyName)
		})
	}
}

func TestImportLegacyBundleLinksCurriculum(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	backup := newBackup(h)

	raw := []byte(`{"curriculum":[{"id":"a","status":"unlocked"},{"id":"b","status":"locked"}]}`)
	result, err := backup.Import(h.ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Nodes)
	assert.Equal(t, 0, result.Apps, "documents absent from the bundle are left alone")

	nodes := h.nodes(t)
	require.Len(t, nodes, 2)
	assert.Equal(t, "a", nodes[1].DependsOn)
}

func TestImportKeepsStoredNodeStatus(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	h.seedCurriculum(t, chain(3)...)
	backup := newBackup(h)

	forged := chain(3)
	for i := range forged {
		forged[i].Status = models.NodeCompleted
	}
	raw, err := json.Marshal(Bundle{SchemaVersion: 1, Curriculum: forged})
	require.NoError(t, err)

	_, err = backup.Import(h.ctx, raw)
	require.NoError(t, err)

	nodes := h.nodes(t)
	require.Len(t, nodes, 3)
	assert.Equal(t, models.NodeUnlocked, nodes[0].Status)
	assert.Equal(t, models.NodeLocked, nodes[1].Status)
	assert.Equal(t, models.NodeLocked, nodes[2].Status)
	assert.Equal(t, 0, stats.TotalXP(nodes))
}

func TestImportOpensNewNodesOnlyThroughTheChain(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	stored := chain(2)
	stored[0].Status = models.NodeCompleted
	stored[1].Status = models.NodeUnlocked
	h.seedCurriculum(t, stored...)
	backup := newBackup(h)

	bundle := append(chain(2),
		models.CourseNode{ID: "x", Status: models.NodeCompleted, DependsOn: "a"},
		models.CourseNode{ID: "y", Status: models.NodeCompleted, DependsOn: "b"},
	)
	raw, err := json.Marshal(Bundle{SchemaVersion: 1, Curriculum: bundle})
	require.NoError(t, err)

	_, err = backup.Import(h.ctx, raw)
	require.NoError(t, err)

	nodes := h.nodes(t)
	require.Len(t, nodes, 4)
	assert.Equal(t, models.NodeCompleted, nodes[0].Status)
	assert.Equal(t, models.NodeUnlocked, nodes[1].Status)
	assert.Equal(t, models.NodeUnlocked, nodes[2].Status, "prerequisite a is completed")
	assert.Equal(t, models.NodeLocked, nodes[3].Status, "prerequisite b is not completed")
}

func TestImportDropsLessonAttempts(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	h.seedCurriculum(t, chain(2)...)
	backup := newBackup(h)

	result, err := h.curriculum.SubmitQuiz(h.ctx, "a", []int{0, 1, 2})
	require.NoError(t, err)
	require.True(t, result.Passed)

	raw, err := json.Marshal(Bundle{SchemaVersion: 1, Curriculum: chain(2)})
	require.NoError(t, err)
	_, err = backup.Import(h.ctx, raw)
	require.NoError(t, err)

	_, err = h.curriculum.Complete(h.ctx, "a")
	assert.ErrorIs(t, err, ErrQuizNotPassed)
}

func TestBackupRequiresSession(t *testing.T) {
	h := newHarness(t)
	backup := newBackup(h)

	_, err := backup.Export(h.ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = backup.Import(h.ctx, []byte(`{"schemaVersion":1}`))
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
