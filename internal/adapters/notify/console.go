package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/rebalancer/internal/domain"
	"github.com/alejandrodnm/rebalancer/internal/registry"
)

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Notify imprime las composiciones en el modo configurado.
func (c *Console) Notify(_ context.Context, compositions []domain.PortfolioComposition) error {
	if len(compositions) == 0 {
		fmt.Fprintf(c.out, "[%s] no compositions\n", time.Now().Format("15:04:05"))
		return nil
	}

	for _, pc := range compositions {
		if c.table {
			c.printFull(pc)
		} else {
			c.printCompact(pc)
		}
	}
	return nil
}

// printCompact imprime una línea por estrategia: total y APR de cada pool.
func (c *Console) printCompact(pc domain.PortfolioComposition) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s total:%s",
		pc.ComputedAt.Local().Format("15:04:05"), pc.Strategy, domain.FormatPercent(pc.TotalAPR()))

	for _, pl := range pc.Pools {
		fmt.Fprintf(&sb, " | %s %s", compactName(pl.Label, 20), domain.FormatPercent(pl.Ledger.TotalAPR()))
	}
	fmt.Fprintln(c.out, sb.String())
}

// printFull imprime una tabla con el desglose por pool y categoría.
func (c *Console) printFull(pc domain.PortfolioComposition) {
	fmt.Fprintf(c.out, "\n[%s] %s: %d pools, ratio sum %.2f\n",
		pc.ComputedAt.Local().Format("2006-01-02 15:04:05"), pc.Strategy, len(pc.Pools), pc.RatioSum())

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Pool", "Protocol", "Ratio", "Category", "APR", "Token")

	for i, pl := range pc.Pools {
		cats := pl.Ledger.Categories()
		if len(cats) == 0 {
			table.Append(fmt.Sprintf("%d", i+1), pl.Label, pl.Protocol, fmt.Sprintf("%.2f", pl.Ratio), "-", "-", "")
			continue
		}
		for j, cat := range cats {
			num, label, protocol, ratio := "", "", "", ""
			if j == 0 {
				num, label, protocol, ratio = fmt.Sprintf("%d", i+1), pl.Label, pl.Protocol, fmt.Sprintf("%.2f", pl.Ratio)
			}
			e := pl.Ledger[cat]
			table.Append(num, label, protocol, ratio, cat, domain.FormatPercent(e.APR), tokenLabel(e.Token))
		}
	}

	table.Render()

	fmt.Fprintf(c.out, "  TOTAL APR %s\n", domain.FormatPercent(pc.TotalAPR()))
	fmt.Fprintln(c.out, "  APR ya escalado por el ratio de cada pool")
}

// PrintHistory imprime la evolución del APR total de una estrategia.
func (c *Console) PrintHistory(strategy string, history []domain.PortfolioComposition) {
	if len(history) == 0 {
		fmt.Fprintf(c.out, "no history for %s\n", strategy)
		return
	}

	fmt.Fprintf(c.out, "\n=== HISTORY %s (%d snapshots) ===\n", strategy, len(history))

	table := tablewriter.NewWriter(c.out)
	table.Header("Computed at", "Total APR", "Change", "Pools")

	prev := 0.0
	for i, pc := range history {
		total := pc.TotalAPR()
		change := "-"
		if i > 0 {
			change = domain.FormatPercent(total - prev)
		}
		table.Append(
			pc.ComputedAt.Local().Format("2006-01-02 15:04"),
			domain.FormatPercent(total),
			change,
			fmt.Sprintf("%d", len(pc.Pools)),
		)
		prev = total
	}

	table.Render()
}

// PrintPositions imprime el APR resuelto de las posiciones del registry.
func (c *Console) PrintPositions(reg *registry.Registry, yields []domain.PositionYield) {
	fmt.Fprintf(c.out, "\n=== POSITIONS (%d/%d resolved) ===\n", len(yields), reg.Len())

	table := tablewriter.NewWriter(c.out)
	table.Header("Position", "Project", "Symbol", "Source", "APR", "Discount", "Net APR")

	for _, y := range yields {
		project, symbol := "", ""
		if meta, err := reg.Lookup(y.PositionID); err == nil {
			project, symbol = meta.Project, meta.Symbol
		}
		table.Append(
			truncate(y.PositionID, 18),
			project,
			symbol,
			string(y.Source),
			domain.FormatPercent(y.APR),
			fmt.Sprintf("%.2f", y.DiscountFactor),
			domain.FormatPercent(y.DiscountedAPR()),
		)
	}

	table.Render()
}

// --- helpers ---

// tokenLabel muestra el token escalar, o la lista separada por comas.
func tokenLabel(t domain.TokenRef) string {
	ids := t.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = shortToken(id)
	}
	return strings.Join(parts, ",")
}

// shortToken abrevia la dirección: arb:0x0c88...c9e8.
func shortToken(id domain.TokenID) string {
	prefix, addr, ok := strings.Cut(string(id), ":")
	if !ok || len(addr) <= 12 {
		return string(id)
	}
	return prefix + ":" + addr[:6] + "..." + addr[len(addr)-4:]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// compactName corta en el último guion antes de maxLen si puede.
func compactName(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if i := strings.LastIndex(s[:maxLen], "-"); i > 0 {
		return s[:i]
	}
	return s[:maxLen]
}
