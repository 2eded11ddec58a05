package service

import (
	"context"
	"testing"

	"prodplan/internal/apierror"
	"prodplan/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planReq(semaine, jour, ligne, ref string) dto.CreerPlanificationRequest {
	return dto.CreerPlanificationRequest{Semaine: semaine, Jour: jour, Ligne: ligne, Reference: ref}
}

func TestPlanification_CreerDefaultsEmballage(t *testing.T) {
	f := newFixture(t, nil)
	f.creer(t, "s1")

	req := planReq("s1", "lundi", "L1", "REF1")
	req.QtePlanifiee = 120
	resp, err := f.plans.Creer(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Planification créée avec succès", resp.Message)
	assert.Equal(t, "200", resp.Planification.Emballage)
	assert.Equal(t, 120, resp.Planification.QtePlanifiee)
	assert.NotZero(t, resp.Planification.ID)
}

func TestPlanification_DuplicateIsConflict(t *testing.T) {
	f := newFixture(t, nil)
	f.creer(t, "s1")
	ctx := context.Background()

	_, err := f.plans.Creer(ctx, planReq("s1", "lundi", "L1", "REF1"))
	require.NoError(t, err)
	_, err = f.plans.Creer(ctx, planReq("s1", "lundi", "L1", "REF1"))
	assertKind(t, err, apierror.KindConflict)
	assert.Equal(t, "Une planification existe déjà pour cette combinaison semaine/jour/ligne/référence", apierror.Message(err))
}

func TestPlanification_CreerValidation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.plans.Creer(ctx, planReq("s1", "dimanche", "L1", "REF1"))
	assertKind(t, err, apierror.KindBadRequest)

	_, err = f.plans.Creer(ctx, planReq("inconnue", "lundi", "L1", "REF1"))
	assertKind(t, err, apierror.KindNotFound)
	assert.Equal(t, `Semaine "inconnue" non trouvée`, apierror.Message(err))
}

func TestPlanification_MettreAJour(t *testing.T) {
	f := newFixture(t, nil)
	f.creer(t, "s1")
	ctx := context.Background()

	req := planReq("s1", "mardi", "L1", "REF1")
	req.OF = "OF-1"
	req.QtePlanifiee = 100
	created, err := f.plans.Creer(ctx, req)
	require.NoError(t, err)

	resp, err := f.plans.MettreAJour(ctx, created.Planification.ID, dto.ActualiserPlanificationRequest{
		DecProduction: ptr(90), Emballage: ptr("carton"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Planification mise à jour avec succès", resp.Message)
	assert.Equal(t, "OF-1", resp.Planification.OF)
	assert.Equal(t, 100, resp.Planification.QtePlanifiee)
	assert.Equal(t, 90, resp.Planification.DecProduction)
	assert.Equal(t, "carton", resp.Planification.Emballage)

	_, err = f.plans.MettreAJour(ctx, 999, dto.ActualiserPlanificationRequest{})
	assertKind(t, err, apierror.KindNotFound)
}

func TestPlanification_Listings(t *testing.T) {
	f := newFixture(t, nil)
	f.creer(t, "s1")
	f.creer(t, "s2")
	ctx := context.Background()
	for _, r := range []dto.CreerPlanificationRequest{
		planReq("s1", "mardi", "L2", "B"),
		planReq("s1", "lundi", "L1", "B"),
		planReq("s1", "lundi", "L1", "A"),
		planReq("s2", "lundi", "L1", "A"),
	} {
		_, err := f.plans.Creer(ctx, r)
		require.NoError(t, err)
	}

	bySemaine, err := f.plans.ListerParSemaine(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", bySemaine.Semaine.Nom)
	require.Len(t, bySemaine.Planifications, 3)
	assert.Equal(t, "A", bySemaine.Planifications[0].Reference)
	assert.Equal(t, "L2", bySemaine.Planifications[2].Ligne)

	byLigne, err := f.plans.ListerParSemaineLigne(ctx, "s1", "L1")
	require.NoError(t, err)
	assert.Equal(t, "L1", byLigne.Ligne)
	assert.Len(t, byLigne.Planifications, 2)

	byJour, err := f.plans.ListerParSemaineLigneJour(ctx, "s1", "L2", "mardi")
	require.NoError(t, err)
	assert.Equal(t, "mardi", byJour.Jour)
	assert.Len(t, byJour.Planifications, 1)

	empty, err := f.plans.ListerParSemaineLigne(ctx, "s1", "L9")
	require.NoError(t, err)
	assert.Empty(t, empty.Planifications)

	_, err = f.plans.ListerParSemaine(ctx, "s9")
	assertKind(t, err, apierror.KindNotFound)
	_, err = f.plans.ListerParSemaineLigneJour(ctx, "s1", "L1", "dimanche")
	assertKind(t, err, apierror.KindBadRequest)

	all, err := f.plans.Lister(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, all.Total)
	assert.Equal(t, "s2", all.Planifications[0].Semaine)
	require.NotNil(t, all.Planifications[0].SemaineEntity)
	assert.Equal(t, "2024-11-25", all.Planifications[0].SemaineEntity.DateDebut)
}

func TestPlanification_Stats(t *testing.T) {
	f := newFixture(t, nil)
	f.creer(t, "s1")
	ctx := context.Background()
	rows := []dto.CreerPlanificationRequest{
		{Semaine: "s1", Jour: "lundi", Ligne: "L1", Reference: "A", QtePlanifiee: 100, DecProduction: 50, DecMagasin: 40},
		{Semaine: "s1", Jour: "lundi", Ligne: "L2", Reference: "B", QtePlanifiee: 200, DecProduction: 100},
		{Semaine: "s1", Jour: "mardi", Ligne: "L1", Reference: "A", QtePlanifiee: 10, DecProduction: 10, DecMagasin: 10},
	}
	for _, r := range rows {
		_, err := f.plans.Creer(ctx, r)
		require.NoError(t, err)
	}

	resp, err := f.plans.Stats(ctx, "s1")
	require.NoError(t, err)
	st := resp.Stats
	assert.Equal(t, 3, st.TotalPlanifications)
	assert.Equal(t, 310, st.TotalQtePlanifiee)
	assert.Equal(t, 160, st.TotalDecProduction)
	assert.Equal(t, 50, st.TotalDecMagasin)
	assert.Equal(t, dto.Cumul{Count: 2, QtePlanifiee: 300, DecProduction: 150, DecMagasin: 40}, st.ParJour["lundi"])
	assert.Equal(t, dto.Cumul{Count: 2, QtePlanifiee: 110, DecProduction: 60, DecMagasin: 50}, st.ParLigne["L1"])

	unknown, err := f.plans.Stats(ctx, "nope")
	require.NoError(t, err)
	assert.Zero(t, unknown.Stats.TotalPlanifications)
	assert.Empty(t, unknown.Stats.ParJour)
}

func TestPlanification_Supprimer(t *testing.T) {
	f := newFixture(t, nil)
	f.creer(t, "s1")
	ctx := context.Background()
	created, err := f.plans.Creer(ctx, planReq("s1", "jeudi", "L1", "A"))
	require.NoError(t, err)

	resp, err := f.plans.Supprimer(ctx, created.Planification.ID)
	require.NoError(t, err)
	assert.Equal(t, "Planification supprimée avec succès", resp.Message)
	assert.Equal(t, "jeudi", resp.Planification.Jour)

	_, err = f.plans.Supprimer(ctx, created.Planification.ID)
	assertKind(t, err, apierror.KindNotFound)
}
