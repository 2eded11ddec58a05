package service

import (
	"context"
	"errors"

	"prodplan/internal/apierror"
	"prodplan/internal/dto"
	"prodplan/internal/model"
	"prodplan/internal/repository"

	"gorm.io/gorm"
)

// PlanificationService manages the flat planning rows keyed by
// (semaine, jour, ligne, reference).
type PlanificationService interface {
	Creer(ctx context.Context, req dto.CreerPlanificationRequest) (*dto.PlanificationMessageResponse, error)
	MettreAJour(ctx context.Context, id uint, req dto.ActualiserPlanificationRequest) (*dto.PlanificationMessageResponse, error)
	Lister(ctx context.Context) (*dto.PlanificationsResponse, error)
	ListerParSemaine(ctx context.Context, semaine string) (*dto.PlanificationsSemaineResponse, error)
	ListerParSemaineLigne(ctx context.Context, semaine, ligne string) (*dto.PlanificationsSemaineResponse, error)
	ListerParSemaineLigneJour(ctx context.Context, semaine, ligne, jour string) (*dto.PlanificationsSemaineResponse, error)
	Stats(ctx context.Context, semaine string) (*dto.PlanificationStatsResponse, error)
	Supprimer(ctx context.Context, id uint) (*dto.PlanificationSupprimeeResponse, error)
}

type planificationService struct {
	plans    repository.PlanificationRepository
	semaines repository.SemaineRepository
}

func NewPlanificationService(plans repository.PlanificationRepository, semaines repository.SemaineRepository) PlanificationService {
	return &planificationService{plans: plans, semaines: semaines}
}

var errPlanificationExiste = apierror.Conflict("Une planification existe déjà pour cette combinaison semaine/jour/ligne/référence")

func (s *planificationService) Creer(ctx context.Context, req dto.CreerPlanificationRequest) (*dto.PlanificationMessageResponse, error) {
	if _, err := model.ParseJour(req.Jour); err != nil {
		return nil, JourInvalide()
	}

	_, err := s.plans.FindByCle(ctx, req.Semaine, req.Jour, req.Ligne, req.Reference)
	switch {
	case err == nil:
		return nil, errPlanificationExiste
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apierror.Internal("Erreur lors de la création de la planification", err)
	}

	sem, err := s.semaines.FindByNom(ctx, req.Semaine)
	if err != nil {
		return nil, lookupErr(err, apierror.NotFound("Semaine %q non trouvée", req.Semaine))
	}

	emballage := req.Emballage
	if emballage == "" {
		emballage = model.EmballageParDefaut
	}
	p := &model.Planification{
		Semaine:         req.Semaine,
		Jour:            req.Jour,
		Ligne:           req.Ligne,
		Reference:       req.Reference,
		OF:              req.OF,
		QtePlanifiee:    req.QtePlanifiee,
		Emballage:       emballage,
		NbOperateurs:    req.NbOperateurs,
		DecProduction:   req.DecProduction,
		DecMagasin:      req.DecMagasin,
		SemaineEntityID: sem.ID,
	}
	if err := s.plans.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errPlanificationExiste
		}
		return nil, apierror.Internal("Erreur lors de la création de la planification", err)
	}

	return &dto.PlanificationMessageResponse{
		Message:       "Planification créée avec succès",
		Planification: toPlanification(p),
	}, nil
}

func (s *planificationService) MettreAJour(ctx context.Context, id uint, req dto.ActualiserPlanificationRequest) (*dto.PlanificationMessageResponse, error) {
	p, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, apierror.NotFound("Planification non trouvée"))
	}

	if req.OF != nil {
		p.OF = *req.OF
	}
	if req.QtePlanifiee != nil {
		p.QtePlanifiee = *req.QtePlanifiee
	}
	if req.Emballage != nil {
		p.Emballage = *req.Emballage
	}
	if req.NbOperateurs != nil {
		p.NbOperateurs = *req.NbOperateurs
	}
	if req.DecProduction != nil {
		p.DecProduction = *req.DecProduction
	}
	if req.DecMagasin != nil {
		p.DecMagasin = *req.DecMagasin
	}

	if err := s.plans.Update(ctx, p); err != nil {
		return nil, apierror.Internal("Erreur lors de la mise à jour de la planification", err)
	}
	return &dto.PlanificationMessageResponse{
		Message:       "Planification mise à jour avec succès",
		Planification: toPlanification(p),
	}, nil
}

func (s *planificationService) Lister(ctx context.Context) (*dto.PlanificationsResponse, error) {
	rows, err := s.plans.ListAll(ctx)
	if err != nil {
		return nil, apierror.Internal("Erreur lors de la lecture des planifications", err)
	}
	out := make([]dto.PlanificationResponse, 0, len(rows))
	for i := range rows {
		r := toPlanification(&rows[i])
		if se := rows[i].SemaineEntity; se != nil {
			r.SemaineEntity = &dto.SemaineRef{ID: se.ID, DateDebut: formatDate(se.DateDebut), DateFin: formatDate(se.DateFin)}
		}
		out = append(out, r)
	}
	return &dto.PlanificationsResponse{Total: len(out), Planifications: out}, nil
}

func (s *planificationService) ListerParSemaine(ctx context.Context, semaine string) (*dto.PlanificationsSemaineResponse, error) {
	return s.lister(ctx, repository.PlanificationFilter{Semaine: semaine})
}

func (s *planificationService) ListerParSemaineLigne(ctx context.Context, semaine, ligne string) (*dto.PlanificationsSemaineResponse, error) {
	return s.lister(ctx, repository.PlanificationFilter{Semaine: semaine, Ligne: ligne})
}

func (s *planificationService) ListerParSemaineLigneJour(ctx context.Context, semaine, ligne, jour string) (*dto.PlanificationsSemaineResponse, error) {
	if _, err := model.ParseJour(jour); err != nil {
		return nil, JourInvalide()
	}
	return s.lister(ctx, repository.PlanificationFilter{Semaine: semaine, Ligne: ligne, Jour: jour})
}

func (s *planificationService) lister(ctx context.Context, f repository.PlanificationFilter) (*dto.PlanificationsSemaineResponse, error) {
	sem, err := s.semaines.FindByNom(ctx, f.Semaine)
	if err != nil {
		return nil, lookupErr(err, apierror.NotFound("Semaine %q non trouvée", f.Semaine))
	}
	rows, err := s.plans.List(ctx, f)
	if err != nil {
		return nil, apierror.Internal("Erreur lors de la lecture des planifications", err)
	}

	resp := &dto.PlanificationsSemaineResponse{
		Semaine:        toSemaineRef(sem),
		Ligne:          f.Ligne,
		Jour:           f.Jour,
		Planifications: make([]dto.PlanificationResponse, 0, len(rows)),
	}
	for i := range rows {
		resp.Planifications = append(resp.Planifications, toPlanification(&rows[i]))
	}
	return resp, nil
}

// Stats never fails on an unknown week: it reports zeroed totals.
func (s *planificationService) Stats(ctx context.Context, semaine string) (*dto.PlanificationStatsResponse, error) {
	rows, err := s.plans.List(ctx, repository.PlanificationFilter{Semaine: semaine})
	if err != nil {
		return nil, apierror.Internal("Erreur lors du calcul des statistiques", err)
	}

	stats := dto.PlanificationStats{
		TotalPlanifications: len(rows),
		ParJour:             map[string]dto.Cumul{},
		ParLigne:            map[string]dto.Cumul{},
	}
	for _, p := range rows {
		stats.TotalQtePlanifiee += p.QtePlanifiee
		stats.TotalDecProduction += p.DecProduction
		stats.TotalDecMagasin += p.DecMagasin
		stats.ParJour[p.Jour] = cumuler(stats.ParJour[p.Jour], p)
		stats.ParLigne[p.Ligne] = cumuler(stats.ParLigne[p.Ligne], p)
	}
	return &dto.PlanificationStatsResponse{Semaine: semaine, Stats: stats}, nil
}

func cumuler(c dto.Cumul, p model.Planification) dto.Cumul {
	c.Count++
	c.QtePlanifiee += p.QtePlanifiee
	c.DecProduction += p.DecProduction
	c.DecMagasin += p.DecMagasin
	return c
}

func (s *planificationService) Supprimer(ctx context.Context, id uint) (*dto.PlanificationSupprimeeResponse, error) {
	p, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, apierror.NotFound("Planification non trouvée"))
	}
	if err := s.plans.Delete(ctx, id); err != nil {
		return nil, apierror.Internal("Erreur lors de la suppression de la planification", err)
	}
	return &dto.PlanificationSupprimeeResponse{
		Message: "Planification supprimée avec succès",
		Planification: dto.PlanificationCle{
			ID: p.ID, Semaine: p.Semaine, Jour: p.Jour, Ligne: p.Ligne, Reference: p.Reference,
		},
	}, nil
}

func toPlanification(p *model.Planification) dto.PlanificationResponse {
	return dto.PlanificationResponse{
		ID:            p.ID,
		Semaine:       p.Semaine,
		Jour:          p.Jour,
		Ligne:         p.Ligne,
		Reference:     p.Reference,
		OF:            p.OF,
		QtePlanifiee:  p.QtePlanifiee,
		Emballage:     p.Emballage,
		NbOperateurs:  p.NbOperateurs,
		DecProduction: p.DecProduction,
		DecMagasin:    p.DecMagasin,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
