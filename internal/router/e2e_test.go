//go:build integration

package router

// End-to-end tests on real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"context"
	"net/http"
	"testing"

	"prodplan/internal/dto"
	"prodplan/internal/infra"
	"prodplan/internal/model"
	"prodplan/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupIntegration(t *testing.T) (*testEnv, *redis.Client) {
	t.Helper()
	ctx := context.Background()
	gin.SetMode(gin.TestMode)

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("production_test"),
		tcPostgres.WithUsername("prodplan"),
		tcPostgres.WithPassword("prodplan"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pgC) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(rdC) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := infra.NewDatabase("postgres", pgURL, false)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(rdURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	a := testutil.SeedAdmin(t, db, "admin")
	testutil.SeedCatalog(t, db, map[string][]string{
		"A": {"r1", "r2"},
		"B": {"r3"},
	})

	cfg := newTestCfg()
	return &testEnv{
		engine: New(cfg, db, rdb),
		db:     db,
		admin:  signToken(t, a.ID, model.RoleAdmin),
		user:   signToken(t, 99, model.RoleUser),
	}, rdb
}

func TestE2E_CompleteTreeRefreshedAfterUpdate(t *testing.T) {
	e, rdb := setupIntegration(t)
	ctx := context.Background()
	s := e.creerSemaine(t, "S10")
	genKey := "semaine:gen:" + itoa(s.ID)

	var tree dto.SemaineCompleteResponse
	decode(t, e.do(t, http.MethodGet, "/semaines/"+itoa(s.ID)+"/complete", nil, e.user), &tree)
	require.Len(t, tree.Lignes, 2)
	n, err := rdb.Exists(ctx, "semaine:complete:"+itoa(s.ID)+":0").Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "complete tree should be cached after a read")

	refID := tree.Lignes[0].References[0].ID
	w := e.do(t, http.MethodPatch, "/semaines/references/"+itoa(refID)+"/jeudi",
		gin.H{"qtePlanifiee": 80, "decProduction": 20, "decMagasin": 10}, e.admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	gen, err := rdb.Get(ctx, genKey).Int64()
	require.NoError(t, err)
	assert.EqualValues(t, 1, gen, "slot update must move the week to a new generation")

	decode(t, e.do(t, http.MethodGet, "/semaines/"+itoa(s.ID)+"/complete", nil, e.user), &tree)
	jeudi := tree.Lignes[0].References[0].Jeudi
	assert.Equal(t, 60, jeudi.DeltaProd)
	assert.Equal(t, 25.0, jeudi.PcsProd)
	assert.Equal(t, -10, jeudi.DeltaProdMag)
}

func TestE2E_FanOutDuplicateAndDelete(t *testing.T) {
	e, _ := setupIntegration(t)
	s := e.creerSemaine(t, "S11")

	w := e.do(t, http.MethodPost, "/semaines", gin.H{
		"nom": "S11", "dateDebut": "2025-01-06", "dateFin": "2025-01-11",
	}, e.admin)
	assert.Equal(t, http.StatusConflict, w.Code)

	var stats dto.SemaineStatsResponse
	decode(t, e.do(t, http.MethodGet, "/semaines/"+itoa(s.ID)+"/stats", nil, e.user), &stats)
	assert.Equal(t, 2, stats.TotalLignes)
	assert.Equal(t, 3, stats.TotalReferences)
	assert.Zero(t, stats.TauxRealisation)

	w = e.do(t, http.MethodDelete, "/semaines/"+itoa(s.ID), nil, e.admin)
	require.Equal(t, http.StatusOK, w.Code)

	var refs int64
	require.NoError(t, e.db.Model(&model.LigneReference{}).Count(&refs).Error)
	assert.Zero(t, refs)
}

func TestE2E_HealthWithRedis(t *testing.T) {
	e, _ := setupIntegration(t)

	w := e.do(t, http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"db":"connected","redis":"connected","cache":"closed"}`, w.Body.String())
}
