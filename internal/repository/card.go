package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cardexhq/cardex/internal/common"
	"github.com/cardexhq/cardex/internal/entity"
)

const cardsTable = "business_cards"

// CardRepository is the record-store boundary: each call is a direct
// passthrough to the relational engine with no caching and no batching
// beyond the statement's own atomicity.
type CardRepository interface {
	// EnsureSchema creates the table on first use.
	EnsureSchema(ctx context.Context) error
	// Append inserts one classified row.
	Append(ctx context.Context, card *entity.Card) error
	// ListHolders returns the card_holder values for the selection UI.
	ListHolders(ctx context.Context) ([]string, error)
	// Get returns the full row for a holder or common.ErrNotFound.
	Get(ctx context.Context, holder string) (*entity.Card, error)
	// Update overwrites every field except the identifying holder.
	Update(ctx context.Context, holder string, card *entity.Card) error
	// Delete removes the row for a holder or reports common.ErrNotFound.
	Delete(ctx context.Context, holder string) error
}

type cardRepository struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

func NewCardRepository(db *sql.DB, driver string, logger *slog.Logger) CardRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &cardRepository{db: db, driver: driver, logger: logger}
}

// rebind rewrites ? placeholders to $N for the Postgres driver; MySQL and
// SQLite take ? as-is.
func (r *cardRepository) rebind(query string) string {
	if r.driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (r *cardRepository) EnsureSchema(ctx context.Context) error {
	// Fixed-width text columns per field; card_holder is the row key and
	// deliberately carries no uniqueness constraint (same-name collisions
	// are an accepted limitation, not an error).
	const ddl = `
CREATE TABLE IF NOT EXISTS ` + cardsTable + ` (
	company_name  VARCHAR(225),
	card_holder   VARCHAR(225),
	designation   VARCHAR(225),
	mobile_number VARCHAR(50),
	email         TEXT,
	website       TEXT,
	area          VARCHAR(225),
	city          VARCHAR(225),
	state         VARCHAR(225),
	pin_code      VARCHAR(10)
)`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		r.logger.Error("failed to ensure schema", "error", err)
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (r *cardRepository) Append(ctx context.Context, card *entity.Card) error {
	query := r.rebind(`INSERT INTO ` + cardsTable + `
	(company_name, card_holder, designation, mobile_number, email, website, area, city, state, pin_code)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		card.CompanyName, card.CardHolder, card.Designation, card.MobileNumber,
		card.Email, card.Website, card.Area, card.City, card.State, card.PinCode)
	if err != nil {
		r.logger.Error("failed to append card", "card_holder", card.CardHolder, "error", err)
		return fmt.Errorf("append card: %w", err)
	}
	r.logger.Info("card appended", "card_holder", card.CardHolder)
	return nil
}

func (r *cardRepository) ListHolders(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT card_holder FROM `+cardsTable)
	if err != nil {
		r.logger.Error("failed to list card holders", "error", err)
		return nil, fmt.Errorf("list holders: %w", err)
	}
	defer rows.Close()

	var holders []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("scan holder: %w", err)
		}
		holders = append(holders, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list holders: %w", err)
	}
	return holders, nil
}

func (r *cardRepository) Get(ctx context.Context, holder string) (*entity.Card, error) {
	query := r.rebind(`SELECT company_name, card_holder, designation, mobile_number,
	email, website, area, city, state, pin_code
	FROM ` + cardsTable + ` WHERE card_holder = ?`)

	var c entity.Card
	err := r.db.QueryRowContext(ctx, query, holder).Scan(
		&c.CompanyName, &c.CardHolder, &c.Designation, &c.MobileNumber,
		&c.Email, &c.Website, &c.Area, &c.City, &c.State, &c.PinCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %q: %w", holder, common.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to read card", "card_holder", holder, "error", err)
		return nil, fmt.Errorf("read card: %w", err)
	}
	return &c, nil
}

func (r *cardRepository) Update(ctx context.Context, holder string, card *entity.Card) error {
	// Existence is checked first: MySQL reports zero affected rows for a
	// no-op update, so RowsAffected cannot distinguish missing from
	// unchanged.
	if _, err := r.Get(ctx, holder); err != nil {
		return err
	}

	query := r.rebind(`UPDATE ` + cardsTable + ` SET
	company_name = ?, designation = ?, mobile_number = ?, email = ?,
	website = ?, area = ?, city = ?, state = ?, pin_code = ?
	WHERE card_holder = ?`)
	_, err := r.db.ExecContext(ctx, query,
		card.CompanyName, card.Designation, card.MobileNumber, card.Email,
		card.Website, card.Area, card.City, card.State, card.PinCode, holder)
	if err != nil {
		r.logger.Error("failed to update card", "card_holder", holder, "error", err)
		return fmt.Errorf("update card: %w", err)
	}
	r.logger.Info("card updated", "card_holder", holder)
	return nil
}

func (r *cardRepository) Delete(ctx context.Context, holder string) error {
	query := r.rebind(`DELETE FROM ` + cardsTable + ` WHERE card_holder = ?`)
	res, err := r.db.ExecContext(ctx, query, holder)
	if err != nil {
		r.logger.Error("failed to delete card", "card_holder", holder, "error", err)
		return fmt.Errorf("delete card: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("card %q: %w", holder, common.ErrNotFound)
	}
	r.logger.Info("card deleted", "card_holder", holder)
	return nil
}
