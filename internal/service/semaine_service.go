package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prodplan/internal/apierror"
	"prodplan/internal/dto"
	"prodplan/internal/infra"
	"prodplan/internal/model"
	"prodplan/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var joursValides = model.JoursValides

// SemaineService owns the week tree: fan-out at creation, reads, day slot
// updates, statistics and deletion.
type SemaineService interface {
	CreerSemaine(ctx context.Context, req dto.CreerSemaineRequest, adminID uint) (*dto.SemaineCreeeResponse, error)
	ListerSemaines(ctx context.Context) (*dto.SemainesResponse, error)
	ObtenirSemaine(ctx context.Context, id uint) (*dto.SemaineDetailResponse, error)
	LignesSemaine(ctx context.Context, id uint) (*dto.SemaineLignesResponse, error)
	ReferencesLigne(ctx context.Context, ligneID uint) (*dto.LigneReferencesResponse, error)
	SemaineComplete(ctx context.Context, id uint) (*dto.SemaineCompleteResponse, error)
	SemainesAvecLignes(ctx context.Context) (*dto.SemainesAvecLignesResponse, error)
	MettreAJourProduction(ctx context.Context, referenceID uint, jour string, req dto.UpdateProductionRequest) (*dto.ProductionResponse, error)
	MettreAJourProductionSimple(ctx context.Context, jour string, req dto.UpdateProductionSimpleRequest) (*dto.ProductionSimpleResponse, error)
	StatsSemaine(ctx context.Context, id uint) (*dto.SemaineStatsResponse, error)
	SupprimerSemaine(ctx context.Context, id uint) (*dto.MessageResponse, error)
}

type semaineService struct {
	semaines   repository.SemaineRepository
	lignes     repository.LigneRepository
	references repository.ReferenceRepository
	plans      repository.PlanificationRepository
	catalog    repository.CatalogRepository
	cache      *infra.Cache
}

func NewSemaineService(
	semaines repository.SemaineRepository,
	lignes repository.LigneRepository,
	references repository.ReferenceRepository,
	plans repository.PlanificationRepository,
	catalog repository.CatalogRepository,
	cache *infra.Cache,
) SemaineService {
	return &semaineService{
		semaines:   semaines,
		lignes:     lignes,
		references: references,
		plans:      plans,
		catalog:    catalog,
		cache:      cache,
	}
}

// The complete tree of a week is cached under semaine:complete:<id>:<gen>.
// Every write bumps semaine:gen:<id>, so a reader that loaded the tree
// before a write fills a key nobody reads any more.
func completeKey(id uint) string   { return fmt.Sprintf("semaine:complete:%d", id) }
func generationKey(id uint) string { return fmt.Sprintf("semaine:gen:%d", id) }

func (s *semaineService) invalider(ctx context.Context, semaineID uint) {
	s.cache.Bump(ctx, generationKey(semaineID))
}

// ── CreerSemaine ──────────────────────────────────────────────────────────────
// Fan-out:
//   1. Reject a duplicate name
//   2. Snapshot the catalog (distinct lines, then references per line)
//   3. BEGIN TX: week, then per line its SemaineLigne and one batch of references
//   4. COMMIT

type catalogSnapshot struct {
	line repository.CatalogLine
	refs []string
}

func (s *semaineService) CreerSemaine(ctx context.Context, req dto.CreerSemaineRequest, adminID uint) (*dto.SemaineCreeeResponse, error) {
	debut, err := time.Parse(dto.DateLayout, req.DateDebut)
	if err != nil {
		return nil, apierror.BadRequest("Date de début invalide: %s", req.DateDebut)
	}
	fin, err := time.Parse(dto.DateLayout, req.DateFin)
	if err != nil {
		return nil, apierror.BadRequest("Date de fin invalide: %s", req.DateFin)
	}
	if fin.Before(debut) {
		return nil, apierror.BadRequest("La date de fin doit être postérieure ou égale à la date de début")
	}

	exists, err := s.semaines.ExistsByNom(ctx, req.Nom)
	if err != nil {
		return nil, apierror.Internal("Erreur lors de la création de la semaine", err)
	}
	if exists {
		return nil, apierror.Conflict("La semaine %q existe déjà", req.Nom)
	}

	snapshot, err := s.snapshotCatalog(ctx)
	if err != nil {
		return nil, apierror.Internal("Erreur lors de la création de la semaine", err)
	}

	semaine := &model.Semaine{Nom: req.Nom, DateDebut: debut, DateFin: fin, CreeParID: adminID}
	totalReferences := 0

	txErr := runTx(ctx, s.semaines.DB(), func(tx *gorm.DB) error {
		if err := s.semaines.CreateTx(tx, semaine); err != nil {
			return fmt.Errorf("create semaine: %w", err)
		}
		for _, entry := range snapshot {
			ligne := &model.SemaineLigne{
				SemaineID:         semaine.ID,
				NomLigne:          entry.line.Ligne,
				ImageURL:          entry.line.ImageURL,
				ImageOriginalName: entry.line.ImageOriginalName,
			}
			if err := s.lignes.CreateTx(tx, ligne); err != nil {
				return fmt.Errorf("create ligne %q: %w", entry.line.Ligne, err)
			}

			batch := make([]model.LigneReference, 0, len(entry.refs))
			for _, ref := range entry.refs {
				batch = append(batch, model.NewLigneReference(ligne.ID, ref))
			}
			if err := s.references.CreateBatchTx(tx, batch); err != nil {
				return fmt.Errorf("create references of %q: %w", entry.line.Ligne, err)
			}
			totalReferences += len(batch)
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("La semaine %q existe déjà", req.Nom)
		}
		return nil, apierror.Internal("Erreur lors de la création de la semaine", txErr)
	}

	log.Info().
		Str("semaine", semaine.Nom).
		Int("lignes", len(snapshot)).
		Int("references", totalReferences).
		Msg("semaine créée")

	return &dto.SemaineCreeeResponse{
		Message: fmt.Sprintf("Semaine %q créée avec succès", semaine.Nom),
		Semaine: dto.SemaineCreee{
			ID:              semaine.ID,
			Nom:             semaine.Nom,
			DateDebut:       formatDate(semaine.DateDebut),
			DateFin:         formatDate(semaine.DateFin),
			TotalLignes:     len(snapshot),
			TotalReferences: totalReferences,
		},
	}, nil
}

func (s *semaineService) snapshotCatalog(ctx context.Context) ([]catalogSnapshot, error) {
	lines, err := s.catalog.ListDistinctLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog lines: %w", err)
	}
	out := make([]catalogSnapshot, 0, len(lines))
	for _, line := range lines {
		refs, err := s.catalog.ListReferencesForLine(ctx, line.Ligne)
		if err != nil {
			return nil, fmt.Errorf("list references of %q: %w", line.Ligne, err)
		}
		out = append(out, catalogSnapshot{line: line, refs: refs})
	}
	return out, nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *semaineService) ListerSemaines(ctx context.Context) (*dto.SemainesResponse, error) {
	semaines, err := s.semaines.List(ctx)
	if err != nil {
		return nil, apierror.Internal("Erreur lors de la lecture des semaines", err)
	}
	resp := &dto.SemainesResponse{Semaines: make([]dto.SemaineResume, 0, len(semaines))}
	for _, sem := range semaines {
		resp.Semaines = append(resp.Semaines, dto.SemaineResume{
			ID:          sem.ID,
			Nom:         sem.Nom,
			DateDebut:   formatDate(sem.DateDebut),
			DateFin:     formatDate(sem.DateFin),
			CreePar:     nomCreateur(sem.CreePar),
			TotalLignes: len(sem.Lignes),
			CreatedAt:   sem.CreatedAt,
		})
	}
	return resp, nil
}

func (s *semaineService) ObtenirSemaine(ctx context.Context, id uint) (*dto.SemaineDetailResponse, error) {
	sem, err := s.semaines.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, semaineIDNonTrouvee(id))
	}
	resp := &dto.SemaineDetailResponse{
		ID:        sem.ID,
		Nom:       sem.Nom,
		DateDebut: formatDate(sem.DateDebut),
		DateFin:   formatDate(sem.DateFin),
		Lignes:    toLignes(sem.Lignes),
		CreatedAt: sem.CreatedAt,
		UpdatedAt: sem.UpdatedAt,
	}
	if sem.CreePar != nil {
		resp.CreePar = dto.CreateurResponse{ID: sem.CreePar.ID, Nom: sem.CreePar.Nom, Prenom: sem.CreePar.Prenom}
	}
	return resp, nil
}

func (s *semaineService) LignesSemaine(ctx context.Context, id uint) (*dto.SemaineLignesResponse, error) {
	sem, err := s.semaines.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, apierror.NotFound("Semaine non trouvée"))
	}
	return &dto.SemaineLignesResponse{
		Semaine: toSemaineRef(sem),
		Lignes:  toLignes(sem.Lignes),
	}, nil
}

func (s *semaineService) ReferencesLigne(ctx context.Context, ligneID uint) (*dto.LigneReferencesResponse, error) {
	ligne, err := s.lignes.FindByID(ctx, ligneID)
	if err != nil {
		return nil, lookupErr(err, apierror.NotFound("Ligne non trouvée"))
	}
	resp := &dto.LigneReferencesResponse{
		Ligne:      toLigne(*ligne),
		References: toReferences(ligne.References),
	}
	if ligne.Semaine != nil {
		resp.Semaine = dto.SemaineRef{ID: ligne.Semaine.ID, Nom: ligne.Semaine.Nom}
	}
	return resp, nil
}

// SemaineComplete is served from the cache when possible.
func (s *semaineService) SemaineComplete(ctx context.Context, id uint) (*dto.SemaineCompleteResponse, error) {
	gen, cacheable := s.cache.Generation(ctx, generationKey(id))
	key := infra.GenerationKey(completeKey(id), gen)
	if cacheable {
		var cached dto.SemaineCompleteResponse
		if s.cache.GetJSON(ctx, key, &cached) {
			return &cached, nil
		}
	}

	sem, err := s.semaines.FindComplete(ctx, id)
	if err != nil {
		return nil, lookupErr(err, semaineIDNonTrouvee(id))
	}
	resp := &dto.SemaineCompleteResponse{
		ID:        sem.ID,
		Nom:       sem.Nom,
		DateDebut: formatDate(sem.DateDebut),
		DateFin:   formatDate(sem.DateFin),
		CreePar:   nomCreateur(sem.CreePar),
		Lignes:    make([]dto.LigneComplete, 0, len(sem.Lignes)),
	}
	for _, l := range sem.Lignes {
		resp.Lignes = append(resp.Lignes, dto.LigneComplete{
			ID:         l.ID,
			NomLigne:   l.NomLigne,
			ImageURL:   l.ImageURL,
			References: toReferences(l.References),
		})
	}

	if cacheable {
		s.cache.SetJSON(ctx, key, resp)
	}
	return resp, nil
}

func (s *semaineService) SemainesAvecLignes(ctx context.Context) (*dto.SemainesAvecLignesResponse, error) {
	semaines, err := s.semaines.ListByNomDesc(ctx)
	if err != nil {
		return nil, apierror.Internal("Erreur lors de la lecture des semaines", err)
	}
	resp := &dto.SemainesAvecLignesResponse{Semaines: make([]dto.SemaineAvecLignes, 0, len(semaines))}
	for _, sem := range semaines {
		resp.Semaines = append(resp.Semaines, dto.SemaineAvecLignes{
			ID:          sem.ID,
			Nom:         sem.Nom,
			DateDebut:   formatDate(sem.DateDebut),
			DateFin:     formatDate(sem.DateFin),
			TotalLignes: len(sem.Lignes),
			Lignes:      toLignes(sem.Lignes),
		})
	}
	return resp, nil
}

// ── Day slot updates ──────────────────────────────────────────────────────────

func (s *semaineService) MettreAJourProduction(ctx context.Context, referenceID uint, jour string, req dto.UpdateProductionRequest) (*dto.ProductionResponse, error) {
	j, err := model.ParseJour(jour)
	if err != nil {
		return nil, JourInvalide()
	}

	ref, err := s.references.FindByID(ctx, referenceID)
	if err != nil {
		return nil, lookupErr(err, apierror.NotFound("Référence non trouvée"))
	}

	semaineID, err := s.lignes.SemaineIDOf(ctx, ref.SemaineLigneID)
	if err != nil {
		return nil, lookupErr(err, apierror.NotFound("Ligne non trouvée"))
	}

	data, err := s.ecrireSlot(ctx, ref, j, req.ToInput())
	if err != nil {
		return nil, err
	}
	s.invalider(ctx, semaineID)

	return &dto.ProductionResponse{
		Message: fmt.Sprintf("Données de production mises à jour pour le %s", j),
		Data:    data,
		Version: ref.Version,
	}, nil
}

func (s *semaineService) MettreAJourProductionSimple(ctx context.Context, jour string, req dto.UpdateProductionSimpleRequest) (*dto.ProductionSimpleResponse, error) {
	j, err := model.ParseJour(jour)
	if err != nil {
		return nil, JourInvalide()
	}

	sem, err := s.semaines.FindByNom(ctx, req.Semaine)
	if err != nil {
		return nil, lookupErr(err, apierror.NotFound("Semaine %q non trouvée", req.Semaine))
	}
	ligne, err := s.lignes.FindBySemaineAndNom(ctx, sem.ID, req.Ligne)
	if err != nil {
		return nil, lookupErr(err, apierror.NotFound("Ligne %q non trouvée dans la semaine %q", req.Ligne, req.Semaine))
	}
	ref, err := s.references.FindByLigneAndReference(ctx, ligne.ID, req.Reference)
	if err != nil {
		return nil, lookupErr(err, apierror.NotFound("Référence %q non trouvée dans la ligne %q", req.Reference, req.Ligne))
	}

	data, err := s.ecrireSlot(ctx, ref, j, req.ToInput())
	if err != nil {
		return nil, err
	}
	s.invalider(ctx, sem.ID)

	return &dto.ProductionSimpleResponse{
		Message:   fmt.Sprintf("Données de production mises à jour pour le %s", j),
		Semaine:   req.Semaine,
		Ligne:     req.Ligne,
		Reference: req.Reference,
		Data:      data,
		Version:   ref.Version,
	}, nil
}

// ecrireSlot merges patch over the stored slot, re-derives and persists it.
func (s *semaineService) ecrireSlot(ctx context.Context, ref *model.LigneReference, j model.Jour, patch model.ProductionInput) (model.ProductionData, error) {
	data := model.Merge(ref.Jour(j), patch)
	ref.SetJour(j, data)

	if err := s.references.UpdateSlot(ctx, ref, j); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return model.ProductionData{}, apierror.Conflict("La référence %q a été modifiée simultanément, veuillez réessayer", ref.Reference)
		}
		return model.ProductionData{}, apierror.Internal("Erreur lors de la mise à jour des données de production", err)
	}
	return data, nil
}

// ── Stats ─────────────────────────────────────────────────────────────────────

func (s *semaineService) StatsSemaine(ctx context.Context, id uint) (*dto.SemaineStatsResponse, error) {
	sem, err := s.semaines.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, semaineIDNonTrouvee(id))
	}
	lignes, err := s.lignes.ListBySemaine(ctx, id)
	if err != nil {
		return nil, apierror.Internal("Erreur lors du calcul des statistiques", err)
	}

	resp := &dto.SemaineStatsResponse{Semaine: sem.Nom, TotalLignes: len(lignes)}
	for _, l := range lignes {
		resp.TotalReferences += len(l.References)
		t := totaux(l.References)
		resp.TotalQtePlanifiee += t.QtePlanifiee
		resp.TotalDecProduction += t.DecProduction
		resp.TotalDecMagasin += t.DecMagasin
	}
	resp.TauxRealisation = model.Pourcentage(int64(resp.TotalDecProduction), int64(resp.TotalQtePlanifiee))
	return resp, nil
}

// totaux sums the re-derived slots of refs over the six days.
func totaux(refs []model.LigneReference) dto.Cumul {
	var c dto.Cumul
	for i := range refs {
		for _, d := range refs[i].Semainier() {
			c.Count++
			c.QtePlanifiee += d.QtePlanifiee
			c.DecProduction += d.DecProduction
			c.DecMagasin += d.DecMagasin
		}
	}
	return c
}

// ── SupprimerSemaine ──────────────────────────────────────────────────────────
// Ordered delete in one transaction: planifications, references of every
// line, lines, then the week.

func (s *semaineService) SupprimerSemaine(ctx context.Context, id uint) (*dto.MessageResponse, error) {
	sem, err := s.semaines.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, semaineIDNonTrouvee(id))
	}

	txErr := runTx(ctx, s.semaines.DB(), func(tx *gorm.DB) error {
		if err := s.plans.DeleteBySemaineTx(tx, sem.ID, sem.Nom); err != nil {
			return fmt.Errorf("delete planifications: %w", err)
		}
		ligneIDs, err := s.lignes.ListIDsBySemaineTx(tx, sem.ID)
		if err != nil {
			return fmt.Errorf("list lignes: %w", err)
		}
		if err := s.references.DeleteByLignesTx(tx, ligneIDs); err != nil {
			return fmt.Errorf("delete references: %w", err)
		}
		if err := s.lignes.DeleteBySemaineTx(tx, sem.ID); err != nil {
			return fmt.Errorf("delete lignes: %w", err)
		}
		return s.semaines.DeleteTx(tx, sem.ID)
	})
	if txErr != nil {
		return nil, apierror.Internal("Erreur lors de la suppression de la semaine", txErr)
	}

	s.invalider(ctx, sem.ID)
	log.Info().Str("semaine", sem.Nom).Msg("semaine supprimée")
	return &dto.MessageResponse{Message: fmt.Sprintf("Semaine %q supprimée avec succès", sem.Nom)}, nil
}

// ── Mapping helpers ───────────────────────────────────────────────────────────

func semaineIDNonTrouvee(id uint) *apierror.Error {
	return apierror.NotFound("Semaine avec l'ID %d non trouvée", id)
}

func formatDate(t time.Time) string { return t.Format(dto.DateLayout) }

func nomCreateur(a *model.Admin) string {
	if a == nil {
		return ""
	}
	return a.Nom
}

func toSemaineRef(s *model.Semaine) dto.SemaineRef {
	return dto.SemaineRef{ID: s.ID, Nom: s.Nom, DateDebut: formatDate(s.DateDebut), DateFin: formatDate(s.DateFin)}
}

func toLigne(l model.SemaineLigne) dto.LigneResponse {
	return dto.LigneResponse{ID: l.ID, NomLigne: l.NomLigne, ImageURL: l.ImageURL, ImageOriginalName: l.ImageOriginalName}
}

func toLignes(lignes []model.SemaineLigne) []dto.LigneResponse {
	out := make([]dto.LigneResponse, 0, len(lignes))
	for _, l := range lignes {
		out = append(out, toLigne(l))
	}
	return out
}

func toReferences(refs []model.LigneReference) []dto.ReferenceResponse {
	out := make([]dto.ReferenceResponse, 0, len(refs))
	for i := range refs {
		slots := refs[i].Semainier()
		out = append(out, dto.ReferenceResponse{
			ID:        refs[i].ID,
			Reference: refs[i].Reference,
			Version:   refs[i].Version,
			Lundi:     slots[model.Lundi],
			Mardi:     slots[model.Mardi],
			Mercredi:  slots[model.Mercredi],
			Jeudi:     slots[model.Jeudi],
			Vendredi:  slots[model.Vendredi],
			Samedi:    slots[model.Samedi],
		})
	}
	return out
}
