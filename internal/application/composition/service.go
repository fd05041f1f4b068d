package composition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/rebalancer/internal/domain"
	"github.com/alejandrodnm/rebalancer/internal/ports"
	"github.com/alejandrodnm/rebalancer/internal/registry"
)

// Composer compone una estrategia por nombre. Lo implementa *Orchestrator.
type Composer interface {
	Compose(ctx context.Context, name string) (domain.PortfolioComposition, error)
}

// ServiceConfig contiene la configuración del loop periódico.
type ServiceConfig struct {
	Interval   time.Duration
	Strategies []string
	DryRun     bool
}

// Service recalcula las composiciones de las estrategias configuradas cada
// Interval, las notifica y las persiste.
type Service struct {
	cfg      ServiceConfig
	composer Composer
	storage  ports.Storage
	notifier ports.Notifier

	// previousTotals guarda el APR total del ciclo anterior por estrategia
	previousTotals map[string]float64
}

// NewService crea un Service. storage puede ser nil.
func NewService(cfg ServiceConfig, composer Composer, storage ports.Storage, notifier ports.Notifier) *Service {
	if len(cfg.Strategies) == 0 {
		cfg.Strategies = []string{PermanentPortfolio}
	}
	return &Service{
		cfg:            cfg,
		composer:       composer,
		storage:        storage,
		notifier:       notifier,
		previousTotals: make(map[string]float64),
	}
}

// Run ejecuta el loop hasta que el contexto se cancele.
// Si cfg.DryRun está activo, solo ejecuta un ciclo.
func (s *Service) Run(ctx context.Context) error {
	slog.Info("composer starting",
		"interval", s.cfg.Interval,
		"strategies", s.cfg.Strategies,
		"dry_run", s.cfg.DryRun,
	)

	if err := s.runCycle(ctx); err != nil {
		slog.Error("composition cycle failed", "err", err)
		if s.cfg.DryRun {
			return err
		}
	}

	if s.cfg.DryRun {
		return nil
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("composer stopped")
			return nil
		case <-ticker.C:
			if err := s.runCycle(ctx); err != nil {
				slog.Error("composition cycle failed", "err", err)
			}
		}
	}
}

// RunOnce compone todas las estrategias una vez. Una estrategia que falla no
// impide componer las demás; los errores se devuelven juntos.
func (s *Service) RunOnce(ctx context.Context) ([]domain.PortfolioComposition, error) {
	return s.cycle(ctx)
}

// runCycle ejecuta un ciclo completo y notifica/persiste los resultados.
// Las estrategias que sí se compusieron se notifican aunque otras fallen; el
// error de las fallidas se devuelve igualmente.
func (s *Service) runCycle(ctx context.Context) error {
	start := time.Now()

	results, cycleErr := s.cycle(ctx)
	if len(results) == 0 {
		return cycleErr
	}

	s.logChanges(results)

	if err := s.notifier.Notify(ctx, results); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	if s.storage != nil {
		for _, pc := range results {
			if err := s.storage.SaveComposition(ctx, pc); err != nil {
				slog.Warn("storage error", "strategy", pc.Strategy, "err", err)
			}
		}
	}

	slog.Info("composition cycle complete",
		"strategies", len(results),
		"failed", cycleErr != nil,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return cycleErr
}

func (s *Service) cycle(ctx context.Context) ([]domain.PortfolioComposition, error) {
	var (
		results []domain.PortfolioComposition
		errs    []error
	)
	for _, name := range s.cfg.Strategies {
		pc, err := s.composer.Compose(ctx, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, pc)
	}
	if err := errors.Join(errs...); err != nil {
		return results, fmt.Errorf("composition.cycle: %w", err)
	}
	return results, nil
}

// logChanges loguea el APR total de cada estrategia y su variación respecto
// al ciclo anterior.
func (s *Service) logChanges(results []domain.PortfolioComposition) {
	for _, pc := range results {
		total := pc.TotalAPR()
		attrs := []any{
			"strategy", pc.Strategy,
			"total_apr", domain.FormatPercent(total),
			"ratio_sum", pc.RatioSum(),
		}
		if prev, ok := s.previousTotals[pc.Strategy]; ok {
			attrs = append(attrs, "change", domain.FormatPercent(total-prev))
		}
		slog.Info("portfolio APR", attrs...)
		s.previousTotals[pc.Strategy] = total
	}
}

// PositionYields resuelve el APR de todas las posiciones del registry.
// Las que fallan se loguean y se omiten.
func PositionYields(ctx context.Context, reg *registry.Registry, resolver *Resolver) []domain.PositionYield {
	entries := reg.Entries()
	out := make([]domain.PositionYield, 0, len(entries))
	for _, meta := range entries {
		y, err := resolver.ResolveAPR(ctx, meta)
		if err != nil {
			slog.Warn("cannot resolve position APR", "id", meta.ID, "project", meta.Project, "err", err)
			continue
		}
		out = append(out, y)
	}
	return out
}
