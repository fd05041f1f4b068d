package storage

// sqlite.go: histórico de composiciones.
//
//   - `compositions`: una fila por composición calculada (estrategia, instante, APR total).
//   - `composition_pools`: los pools de cada composición en el orden de sus legs.
//   - `composition_entries`: las categorías de reward de cada pool, con su token en JSON.
//   - Prune al arrancar: composiciones de más de 90 días.

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/alejandrodnm/rebalancer/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS compositions (
    id          TEXT PRIMARY KEY,
    strategy    TEXT    NOT NULL,
    computed_at INTEGER NOT NULL, -- unix ms
    total_apr   REAL    NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS composition_pools (
    composition_id TEXT    NOT NULL,
    position       INTEGER NOT NULL,
    label          TEXT    NOT NULL,
    protocol       TEXT    NOT NULL DEFAULT '',
    ratio          REAL    NOT NULL DEFAULT 0,
    PRIMARY KEY (composition_id, position)
);

CREATE TABLE IF NOT EXISTS composition_entries (
    composition_id TEXT    NOT NULL,
    position       INTEGER NOT NULL,
    category       TEXT    NOT NULL,
    apr            REAL    NOT NULL DEFAULT 0,
    token          TEXT,
    PRIMARY KEY (composition_id, position, category)
);

CREATE INDEX IF NOT EXISTS idx_comp_strategy_at ON compositions(strategy, computed_at);
`

const retention = 90 * 24 * time.Hour

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia composiciones antiguas.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background(), time.Now().UTC().Add(-retention))
	return s, nil
}

// SaveComposition persiste la composición en una transacción. Si pc.ID está
// vacío se genera un UUID.
func (s *SQLiteStorage) SaveComposition(ctx context.Context, pc domain.PortfolioComposition) error {
	id := pc.ID
	if id == "" {
		id = uuid.NewString()
	}
	computedAt := pc.ComputedAt
	if computedAt.IsZero() {
		computedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveComposition: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO compositions (id, strategy, computed_at, total_apr) VALUES (?, ?, ?, ?)`,
		id, pc.Strategy, computedAt.UTC().UnixMilli(), pc.TotalAPR(),
	); err != nil {
		return fmt.Errorf("storage.SaveComposition: insert composition: %w", err)
	}

	poolStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO composition_pools (composition_id, position, label, protocol, ratio)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveComposition: prepare pools: %w", err)
	}
	defer poolStmt.Close()

	entryStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO composition_entries (composition_id, position, category, apr, token)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveComposition: prepare entries: %w", err)
	}
	defer entryStmt.Close()

	for i, pl := range pc.Pools {
		if _, err := poolStmt.ExecContext(ctx, id, i, pl.Label, pl.Protocol, pl.Ratio); err != nil {
			return fmt.Errorf("storage.SaveComposition: insert pool %s: %w", pl.Label, err)
		}
		for _, cat := range pl.Ledger.Categories() {
			e := pl.Ledger[cat]
			var token *string
			if !e.Token.IsZero() {
				raw, err := json.Marshal(e.Token)
				if err != nil {
					return fmt.Errorf("storage.SaveComposition: encode token %s/%s: %w", pl.Label, cat, err)
				}
				t := string(raw)
				token = &t
			}
			if _, err := entryStmt.ExecContext(ctx, id, i, cat, e.APR, token); err != nil {
				return fmt.Errorf("storage.SaveComposition: insert entry %s/%s: %w", pl.Label, cat, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveComposition: commit: %w", err)
	}
	return nil
}

// GetHistory devuelve las composiciones de la estrategia con computed_at en
// [from, to], de la más antigua a la más reciente.
func (s *SQLiteStorage) GetHistory(ctx context.Context, strategy string, from, to time.Time) ([]domain.PortfolioComposition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, strategy, computed_at
		FROM compositions
		WHERE strategy = ? AND computed_at BETWEEN ? AND ?
		ORDER BY computed_at ASC
	`, strategy, from.UTC().UnixMilli(), to.UTC().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("storage.GetHistory: query: %w", err)
	}

	var out []domain.PortfolioComposition
	for rows.Next() {
		pc, err := scanComposition(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage.GetHistory: %w", err)
		}
		out = append(out, pc)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("storage.GetHistory: %w", err)
	}
	// hay una sola conexión: cerrar antes de las queries de pools
	rows.Close()

	for i := range out {
		if err := s.loadPools(ctx, &out[i]); err != nil {
			return nil, fmt.Errorf("storage.GetHistory: %w", err)
		}
	}
	return out, nil
}

// Latest devuelve la composición más reciente de la estrategia.
func (s *SQLiteStorage) Latest(ctx context.Context, strategy string) (domain.PortfolioComposition, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, strategy, computed_at
		FROM compositions
		WHERE strategy = ?
		ORDER BY computed_at DESC
		LIMIT 1
	`, strategy)

	pc, err := scanComposition(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PortfolioComposition{}, &domain.NotFoundError{ID: strategy}
	}
	if err != nil {
		return domain.PortfolioComposition{}, fmt.Errorf("storage.Latest: %w", err)
	}
	if err := s.loadPools(ctx, &pc); err != nil {
		return domain.PortfolioComposition{}, fmt.Errorf("storage.Latest: %w", err)
	}
	return pc, nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- helpers internos ---

type scanner interface {
	Scan(dest ...any) error
}

func scanComposition(row scanner) (domain.PortfolioComposition, error) {
	var (
		pc domain.PortfolioComposition
		ms int64
	)
	if err := row.Scan(&pc.ID, &pc.Strategy, &ms); err != nil {
		return pc, err
	}
	pc.ComputedAt = time.UnixMilli(ms).UTC()
	return pc, nil
}

// loadPools rellena los pools y sus ledgers en el orden en que se guardaron.
func (s *SQLiteStorage) loadPools(ctx context.Context, pc *domain.PortfolioComposition) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT label, protocol, ratio
		FROM composition_pools
		WHERE composition_id = ?
		ORDER BY position ASC
	`, pc.ID)
	if err != nil {
		return fmt.Errorf("query pools %s: %w", pc.ID, err)
	}
	for rows.Next() {
		pl := domain.PoolLedger{Ledger: domain.NewLedger()}
		if err := rows.Scan(&pl.Label, &pl.Protocol, &pl.Ratio); err != nil {
			rows.Close()
			return fmt.Errorf("scan pool %s: %w", pc.ID, err)
		}
		pc.Pools = append(pc.Pools, pl)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	entries, err := s.db.QueryContext(ctx, `
		SELECT position, category, apr, token
		FROM composition_entries
		WHERE composition_id = ?
	`, pc.ID)
	if err != nil {
		return fmt.Errorf("query entries %s: %w", pc.ID, err)
	}
	defer entries.Close()

	for entries.Next() {
		var (
			pos      int
			category string
			apr      float64
			token    sql.NullString
		)
		if err := entries.Scan(&pos, &category, &apr, &token); err != nil {
			return fmt.Errorf("scan entry %s: %w", pc.ID, err)
		}
		if pos < 0 || pos >= len(pc.Pools) {
			return fmt.Errorf("entry %s/%s: pool position %d out of range", pc.ID, category, pos)
		}
		e := pc.Pools[pos].Ledger.Accumulate(category, apr)
		if token.Valid {
			if err := json.Unmarshal([]byte(token.String), &e.Token); err != nil {
				return fmt.Errorf("decode token %s/%s: %w", pc.ID, category, err)
			}
		}
	}
	return entries.Err()
}

// pruneOld elimina composiciones anteriores a cutoff para mantener la DB ligera.
func (s *SQLiteStorage) pruneOld(ctx context.Context, cutoff time.Time) {
	ms := cutoff.UnixMilli()
	s.db.ExecContext(ctx, `DELETE FROM composition_entries WHERE composition_id IN (SELECT id FROM compositions WHERE computed_at < ?)`, ms)
	s.db.ExecContext(ctx, `DELETE FROM composition_pools WHERE composition_id IN (SELECT id FROM compositions WHERE computed_at < ?)`, ms)
	s.db.ExecContext(ctx, `DELETE FROM compositions WHERE computed_at < ?`, ms)
}
