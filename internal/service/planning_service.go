package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/craftplan/backend-go/internal/cache"
	"github.com/craftplan/backend-go/internal/domain"
	"github.com/craftplan/backend-go/internal/planner"
	"github.com/craftplan/backend-go/internal/repository"
)

// PlanningService runs the planning engine over a freshly fetched snapshot.
// It owns fetching and caching; the engine stays pure. Timeouts and
// cancellation come in through the caller's context.
type PlanningService struct {
	materials  repository.MaterialRepository
	products   repository.ProductRepository
	bom        repository.BOMRepository
	production repository.ProductionRepository
	orders     repository.OrderRepository

	engine *planner.Planner
	cache  cache.PlanCache
}

type Repositories struct {
	Materials  repository.MaterialRepository
	Products   repository.ProductRepository
	BOM        repository.BOMRepository
	Production repository.ProductionRepository
	Orders     repository.OrderRepository
}

func NewPlanningService(repos Repositories, engine *planner.Planner, cacheImpl cache.PlanCache) *PlanningService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopPlanCache()
	}
	return &PlanningService{
		materials:  repos.Materials,
		products:   repos.Products,
		bom:        repos.BOM,
		production: repos.Production,
		orders:     repos.Orders,
		engine:     engine,
		cache:      cacheImpl,
	}
}

// snapshot fetches the five collections in parallel. Any single failure fails
// the snapshot; a plan over partial data would silently misclassify.
func (s *PlanningService) snapshot(ctx context.Context) (planner.Snapshot, error) {
	var snap planner.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Materials, err = s.materials.ListMaterials(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Products, err = s.products.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.BOM, err = s.bom.ListBOMEntries(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Output, err = s.production.ListProductionOutput(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Orders, err = s.orders.ListAcceptedOrders(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return planner.Snapshot{}, err
	}
	return snap, nil
}

// Plan computes the current replenishment plan, filtered after the fact.
func (s *PlanningService) Plan(ctx context.Context, filter domain.PlanFilter) ([]domain.ReplenishmentItem, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	items := s.engine.PlanAll(snap)
	return planner.Filter(items, planner.FromPlanFilter(filter)), nil
}

// Project computes the plan under a forward horizon, filtered after the fact.
func (s *PlanningService) Project(ctx context.Context, horizonDays int, filter domain.PlanFilter) ([]domain.ReplenishmentItem, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	items := s.engine.Project(snap, horizonDays)
	return planner.Filter(items, planner.FromPlanFilter(filter)), nil
}

// Schedule groups needs-reorder items into the four time buckets.
func (s *PlanningService) Schedule(ctx context.Context) (domain.ReplenishmentSchedule, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.ReplenishmentSchedule{}, err
	}
	return planner.Schedule(s.engine.PlanAll(snap)), nil
}

// Dashboard returns the plan summary, cache-aside.
func (s *PlanningService) Dashboard(ctx context.Context, filter domain.PlanFilter) (*domain.PlanSummary, error) {
	if summary, ok, err := s.cache.GetSummary(ctx, filter); err == nil && ok {
		return summary, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("planning: cache get summary failed")
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	items := planner.Filter(s.engine.PlanAll(snap), planner.FromPlanFilter(filter))
	summary := s.engine.Summarize(snap, items)

	if err := s.cache.SetSummary(ctx, filter, summary); err != nil {
		log.Warn().Err(err).Msg("planning: cache set summary failed")
	}

	return &summary, nil
}

// Materials lists the raw master data behind the plan, for the materials view.
func (s *PlanningService) Materials(ctx context.Context) ([]domain.Material, error) {
	materials, err := s.materials.ListMaterials(ctx)
	if err != nil {
		return nil, err
	}
	if materials == nil {
		materials = make([]domain.Material, 0)
	}
	return materials, nil
}
