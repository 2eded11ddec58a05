package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"prodplan/internal/apierror"
	"prodplan/internal/dto"
	"prodplan/internal/model"
	"prodplan/internal/repository"
	"prodplan/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

// ── In-memory catalog stub ────────────────────────────────────────────────────

type stubCatalog struct {
	lines map[string][]string
	err   error
}

func (c *stubCatalog) ListDistinctLines(_ context.Context) ([]repository.CatalogLine, error) {
	if c.err != nil {
		return nil, c.err
	}
	names := make([]string, 0, len(c.lines))
	for n := range c.lines {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]repository.CatalogLine, 0, len(names))
	for _, n := range names {
		out = append(out, repository.CatalogLine{Ligne: n})
	}
	return out, nil
}

func (c *stubCatalog) ListReferencesForLine(_ context.Context, ligne string) ([]string, error) {
	return c.lines[ligne], nil
}

func (c *stubCatalog) ReplaceAll(_ context.Context, _ []model.Product) error { return nil }

func (c *stubCatalog) Count(_ context.Context) (int64, error) { return int64(len(c.lines)), nil }

// failingReferences fails the batch insert of one line.
type failingReferences struct {
	repository.ReferenceRepository
	failOn uint
}

func (r *failingReferences) CreateBatchTx(tx *gorm.DB, refs []model.LigneReference) error {
	if len(refs) > 0 && refs[0].SemaineLigneID == r.failOn {
		return errors.New("disk full")
	}
	return r.ReferenceRepository.CreateBatchTx(tx, refs)
}

// staleReferences always loses the optimistic lock.
type staleReferences struct{ repository.ReferenceRepository }

func (staleReferences) UpdateSlot(context.Context, *model.LigneReference, model.Jour) error {
	return repository.ErrVersionConflict
}

// ── Fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	db       *gorm.DB
	admin    *model.Admin
	catalog  *stubCatalog
	refs     repository.ReferenceRepository
	semaines SemaineService
	plans    PlanificationService
}

func newFixture(t *testing.T, lines map[string][]string) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:      db,
		admin:   testutil.SeedAdmin(t, db, "admin"),
		catalog: &stubCatalog{lines: lines},
		refs:    repository.NewReferenceRepository(db),
	}
	f.build()
	return f
}

func (f *fixture) build() {
	semaineRepo := repository.NewSemaineRepository(f.db)
	planRepo := repository.NewPlanificationRepository(f.db)
	f.semaines = NewSemaineService(
		semaineRepo,
		repository.NewLigneRepository(f.db),
		f.refs,
		planRepo,
		f.catalog,
		nil,
	)
	f.plans = NewPlanificationService(planRepo, semaineRepo)
}

func (f *fixture) creer(t *testing.T, nom string) *dto.SemaineCreeeResponse {
	t.Helper()
	resp, err := f.semaines.CreerSemaine(context.Background(), dto.CreerSemaineRequest{
		Nom: nom, DateDebut: "2024-11-25", DateFin: "2024-11-30",
	}, f.admin.ID)
	require.NoError(t, err)
	return resp
}

func (f *fixture) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func assertKind(t *testing.T, err error, kind apierror.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apierror.KindOf(err), "error: %v", err)
}
