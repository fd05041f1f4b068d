package composition

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alejandrodnm/rebalancer/internal/domain"
	"github.com/alejandrodnm/rebalancer/internal/metrics"
	"github.com/alejandrodnm/rebalancer/internal/ports"
)

// Options configura el Orchestrator.
type Options struct {
	// MergeMode por defecto de Compose (pool si está vacío).
	MergeMode domain.MergeMode
	// Parallel lanza los legs a la vez; el primer error cancela el resto.
	Parallel bool
	// Timeout por composición (0 = sin límite propio).
	Timeout time.Duration
	// Now permite fijar el reloj en tests.
	Now func() time.Time
}

// Orchestrator compone estrategias llamando al adapter de cada leg.
type Orchestrator struct {
	strategies map[string]Strategy
	fetchers   map[Protocol]ports.BreakdownFetcher
	opts       Options
}

// NewOrchestrator valida que cada estrategia tiene etiquetas únicas y que
// todos sus protocolos tienen adapter.
func NewOrchestrator(strategies map[string]Strategy, fetchers map[Protocol]ports.BreakdownFetcher, opts Options) (*Orchestrator, error) {
	for name, s := range strategies {
		if name != s.Name {
			return nil, fmt.Errorf("composition.NewOrchestrator: strategy key %q does not match name %q", name, s.Name)
		}
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("composition.NewOrchestrator: %w", err)
		}
		for _, l := range s.Legs {
			if _, ok := fetchers[l.Protocol]; !ok {
				return nil, fmt.Errorf("composition.NewOrchestrator: strategy %s: no fetcher for protocol %s", name, l.Protocol)
			}
		}
	}
	if opts.MergeMode == "" {
		opts.MergeMode = domain.MergeModePool
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Orchestrator{strategies: strategies, fetchers: fetchers, opts: opts}, nil
}

// Strategies devuelve los nombres de las estrategias ordenados.
func (o *Orchestrator) Strategies() []string {
	names := make([]string, 0, len(o.strategies))
	for n := range o.strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Compose compone la estrategia con el MergeMode configurado.
func (o *Orchestrator) Compose(ctx context.Context, name string) (domain.PortfolioComposition, error) {
	return o.ComposeWithMode(ctx, name, o.opts.MergeMode)
}

// ComposeWithMode compone la estrategia y devuelve un ledger por pool (o uno
// solo en modo collapsed). Una estrategia desconocida falla antes de cualquier
// fetch; el primer leg que falla aborta la composición entera.
func (o *Orchestrator) ComposeWithMode(ctx context.Context, name string, mode domain.MergeMode) (domain.PortfolioComposition, error) {
	strat, ok := o.strategies[name]
	if !ok {
		return domain.PortfolioComposition{}, &domain.UnsupportedStrategyError{Name: name}
	}

	if sum := strat.RatioSum(); math.Abs(sum-1) > 1e-9 {
		slog.Warn("strategy ratios do not sum to 1", "strategy", name, "sum", sum)
	}

	if o.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	var (
		ledgers []domain.Ledger
		err     error
	)
	if o.opts.Parallel {
		ledgers, err = o.fetchParallel(ctx, strat)
	} else {
		ledgers, err = o.fetchSequential(ctx, strat)
	}
	metrics.CompositionDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CompositionsTotal.WithLabelValues(name, "error").Inc()
		return domain.PortfolioComposition{}, fmt.Errorf("composition.Compose: %s: %w", name, err)
	}

	pc := domain.PortfolioComposition{
		Strategy:   name,
		ComputedAt: o.opts.Now().UTC(),
		Pools:      make([]domain.PoolLedger, len(strat.Legs)),
	}
	for i, leg := range strat.Legs {
		pc.Pools[i] = domain.PoolLedger{
			Label:    leg.Label,
			Protocol: string(leg.Protocol),
			Ratio:    leg.Ratio,
			Ledger:   ledgers[i],
		}
	}

	metrics.CompositionsTotal.WithLabelValues(name, "ok").Inc()
	metrics.CompositionTotalAPR.WithLabelValues(name).Set(pc.TotalAPR())
	slog.Debug("composition computed",
		"strategy", name,
		"pools", len(pc.Pools),
		"total_apr", pc.TotalAPR(),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return ApplyMergeMode(pc, mode), nil
}

func (o *Orchestrator) fetchSequential(ctx context.Context, strat Strategy) ([]domain.Ledger, error) {
	ledgers := make([]domain.Ledger, len(strat.Legs))
	for i, leg := range strat.Legs {
		l, err := o.fetchers[leg.Protocol].FetchBreakdown(ctx, leg.Selector, leg.Ratio)
		if err != nil {
			return nil, fmt.Errorf("leg %s: %w", leg.Label, err)
		}
		ledgers[i] = l
	}
	return ledgers, nil
}

// fetchParallel escribe cada ledger en su índice: el resultado queda en el
// orden de los legs aunque terminen en otro orden.
func (o *Orchestrator) fetchParallel(ctx context.Context, strat Strategy) ([]domain.Ledger, error) {
	ledgers := make([]domain.Ledger, len(strat.Legs))
	g, gctx := errgroup.WithContext(ctx)
	for i, leg := range strat.Legs {
		i, leg := i, leg
		g.Go(func() error {
			l, err := o.fetchers[leg.Protocol].FetchBreakdown(gctx, leg.Selector, leg.Ratio)
			if err != nil {
				return fmt.Errorf("leg %s: %w", leg.Label, err)
			}
			ledgers[i] = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ledgers, nil
}
