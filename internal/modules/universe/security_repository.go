package universe

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantfolio/signal-engine/internal/domain"
)

// SecurityRepository handles watchlist persistence. It backs the category
// lookup used by portfolio health and the ticker listing consumed by the
// nightly metric snapshot job.
type SecurityRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSecurityRepository creates a new security repository
func NewSecurityRepository(db *sql.DB, log zerolog.Logger) *SecurityRepository {
	return &SecurityRepository{
		db:  db,
		log: log.With().Str("repo", "security").Logger(),
	}
}

// ListActive returns all active securities, ordered by symbol.
func (r *SecurityRepository) ListActive() ([]domain.Security, error) {
	rows, err := r.db.Query(
		"SELECT symbol, name, category, active, last_updated FROM securities WHERE active = 1 ORDER BY symbol")
	if err != nil {
		return nil, fmt.Errorf("failed to query active securities: %w", err)
	}
	defer rows.Close()

	var securities []domain.Security
	for rows.Next() {
		security, err := scanSecurity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan security: %w", err)
		}
		securities = append(securities, security)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating securities: %w", err)
	}

	return securities, nil
}

// GetBySymbol returns a security by symbol, or nil when unknown.
func (r *SecurityRepository) GetBySymbol(symbol string) (*domain.Security, error) {
	rows, err := r.db.Query(
		"SELECT symbol, name, category, active, last_updated FROM securities WHERE symbol = ?",
		normalizeSymbol(symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to query security by symbol: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	security, err := scanSecurity(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan security: %w", err)
	}

	return &security, nil
}

// Upsert inserts or replaces a security record.
func (r *SecurityRepository) Upsert(security domain.Security) error {
	security.Symbol = normalizeSymbol(security.Symbol)
	if security.Symbol == "" {
		return fmt.Errorf("security symbol is required")
	}
	if security.LastUpdated == "" {
		security.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	}

	_, err := r.db.Exec(`
		INSERT INTO securities (symbol, name, category, active, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			active = excluded.active,
			last_updated = excluded.last_updated
	`, security.Symbol, security.Name, security.Category, boolToInt(security.Active), security.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to upsert security: %w", err)
	}

	r.log.Debug().Str("symbol", security.Symbol).Msg("Security upserted")
	return nil
}

// CategoryBySymbol returns the security's category, or "" when the symbol is
// unknown or uncategorized. Satisfies the insights category lookup contract.
func (r *SecurityRepository) CategoryBySymbol(symbol string) (string, error) {
	security, err := r.GetBySymbol(symbol)
	if err != nil {
		return "", err
	}
	if security == nil {
		return "", nil
	}
	return security.Category, nil
}

func scanSecurity(rows *sql.Rows) (domain.Security, error) {
	var security domain.Security
	var active sql.NullInt64
	var name, category, lastUpdated sql.NullString

	if err := rows.Scan(&security.Symbol, &name, &category, &active, &lastUpdated); err != nil {
		return security, err
	}

	security.Symbol = normalizeSymbol(security.Symbol)
	security.Name = name.String
	security.Category = category.String
	security.Active = active.Int64 != 0
	security.LastUpdated = lastUpdated.String

	return security, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
