package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads aggregated posted movements. Reports are always computed
// from the journal; nothing here writes.
//
// Accounts with no posted lines in the window are omitted rather than shown
// as zero rows. Their balance is zero, so totals and the debit=credit check
// are unaffected.
type Repository interface {
	AccountActivity(ctx context.Context, period Period) ([]AccountActivity, error)
	AccountLedger(ctx context.Context, accountID int64, period Period) ([]LedgerLine, error)
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed reports repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func periodClause(period Period, args *[]any, column string) string {
	var clauses []string
	if !period.From.IsZero() {
		*args = append(*args, period.From)
		clauses = append(clauses, fmt.Sprintf("%s >= $%d", column, len(*args)))
	}
	if !period.To.IsZero() {
		*args = append(*args, period.To)
		clauses = append(clauses, fmt.Sprintf("%s <= $%d", column, len(*args)))
	}
	if len(clauses) == 0 {
		return ""
	}
	return " AND " + strings.Join(clauses, " AND ")
}

func (r *pgRepository) AccountActivity(ctx context.Context, period Period) ([]AccountActivity, error) {
	args := []any{}
	query := `
		SELECT a.id, a.code, a.name, a.type,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM accounts a
		JOIN journal_lines l ON l.account_id = a.id
		JOIN journal_entries e ON e.id = l.entry_id
		WHERE e.status = 'POSTED'` + periodClause(period, &args, "e.date") + `
		GROUP BY a.id, a.code, a.name, a.type
		ORDER BY a.code`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports: account activity: %w", err)
	}
	defer rows.Close()

	var out []AccountActivity
	for rows.Next() {
		var act AccountActivity
		if err := rows.Scan(&act.AccountID, &act.Code, &act.Name, &act.Type, &act.Debit, &act.Credit); err != nil {
			return nil, fmt.Errorf("reports: scan activity: %w", err)
		}
		out = append(out, act)
	}
	return out, rows.Err()
}

func (r *pgRepository) AccountLedger(ctx context.Context, accountID int64, period Period) ([]LedgerLine, error) {
	args := []any{accountID}
	query := `
		SELECT e.id, e.number, e.date, COALESCE(NULLIF(l.description, ''), e.description), l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		WHERE l.account_id = $1 AND e.status = 'POSTED'` + periodClause(period, &args, "e.date") + `
		ORDER BY e.date, e.number, l.id`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports: account ledger: %w", err)
	}
	defer rows.Close()

	var out []LedgerLine
	for rows.Next() {
		var line LedgerLine
		if err := rows.Scan(&line.EntryID, &line.EntryNumber, &line.Date, &line.Description, &line.Debit, &line.Credit); err != nil {
			return nil, fmt.Errorf("reports: scan ledger line: %w", err)
		}
		out = append(out, line)
	}
	return out, rows.Err()
}
