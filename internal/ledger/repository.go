package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/platform/db"
)

// PostingAccount is the slice of account state the ledger needs to validate a
// line: postability and activity.
type PostingAccount struct {
	ID             int64
	Code           string
	AcceptsEntries bool
	IsActive       bool
}

// Repository encapsulates DB operations for journal entries.
type Repository interface {
	List(ctx context.Context, filter EntryFilter) ([]JournalEntry, int, error)
	GetEntry(ctx context.Context, entryID int64) (JournalEntry, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes methods available within a creation or confirmation
// transaction. Entry-number allocation, line insertion, and the status
// transition are one atomic unit.
type TxRepository interface {
	InsertEntry(ctx context.Context, in CreateEntryInput) (JournalEntry, error)
	InsertLines(ctx context.Context, entryID int64, lines []LineInput) error
	GetEntryWithLinesForUpdate(ctx context.Context, entryID int64) (JournalEntry, error)
	MarkPosted(ctx context.Context, entryID int64, postedAt time.Time) error
	FetchPostingAccounts(ctx context.Context, accountIDs []int64) (map[int64]PostingAccount, error)
	LinkSource(ctx context.Context, module string, ref uuid.UUID, entryID int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the pgx-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const entryColumns = `id, number, date, description, status, is_automatic, template_code, trigger_type, source_module, source_id, posted_at, created_at, updated_at`

func scanEntry(row pgx.Row) (JournalEntry, error) {
	var e JournalEntry
	err := row.Scan(&e.ID, &e.Number, &e.Date, &e.Description, &e.Status, &e.IsAutomatic,
		&e.TemplateCode, &e.TriggerType, &e.SourceModule, &e.SourceID, &e.PostedAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JournalEntry{}, ErrEntryNotFound
		}
		return JournalEntry{}, err
	}
	return e, nil
}

func (r *repository) List(ctx context.Context, filter EntryFilter) ([]JournalEntry, int, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("date <= $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries` + clause + ` ORDER BY number DESC`
	if filter.PerPage > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		args = append(args, filter.PerPage)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, (page-1)*filter.PerPage)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var entries []JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

func (r *repository) GetEntry(ctx context.Context, entryID int64) (JournalEntry, error) {
	entry, err := scanEntry(r.db.QueryRow(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE id=$1`, entryID))
	if err != nil {
		return JournalEntry{}, err
	}
	lines, err := fetchLines(ctx, r.db, entryID)
	if err != nil {
		return JournalEntry{}, err
	}
	entry.Lines = lines
	return entry, nil
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func fetchLines(ctx context.Context, q queryer, entryID int64) ([]JournalLine, error) {
	rows, err := q.Query(ctx, `SELECT l.id, l.entry_id, l.account_id, a.code, l.debit, l.credit, l.description, l.created_at, l.updated_at
FROM journal_lines l JOIN accounts a ON a.id = l.account_id
WHERE l.entry_id=$1 ORDER BY l.id ASC`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []JournalLine
	for rows.Next() {
		var line JournalLine
		if err := rows.Scan(&line.ID, &line.EntryID, &line.AccountID, &line.AccountCode, &line.Debit, &line.Credit, &line.Description, &line.CreatedAt, &line.UpdatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

// InsertEntry persists the entry header. The entry number comes from the
// journal_entry_number sequence inside this transaction, so concurrent
// creations never collide.
func (r *txRepository) InsertEntry(ctx context.Context, in CreateEntryInput) (JournalEntry, error) {
	status := in.Status
	if status == "" {
		status = EntryStatusDraft
	}
	var postedAt *time.Time
	row := r.tx.QueryRow(ctx, `INSERT INTO journal_entries (number, date, description, status, is_automatic, template_code, trigger_type, source_module, source_id, posted_at)
VALUES (nextval('journal_entry_number'), $1, $2, $3, $4, $5, $6, $7, $8, CASE WHEN $3 = 'POSTED' THEN NOW() ELSE NULL END)
RETURNING id, number, posted_at, created_at, updated_at`,
		in.Date, in.Description, status, in.IsAutomatic, in.TemplateCode, in.TriggerType, in.SourceModule, in.SourceID)
	entry := JournalEntry{
		Date:         in.Date,
		Description:  in.Description,
		Status:       status,
		IsAutomatic:  in.IsAutomatic,
		TemplateCode: in.TemplateCode,
		TriggerType:  in.TriggerType,
		SourceModule: in.SourceModule,
		SourceID:     in.SourceID,
	}
	if err := row.Scan(&entry.ID, &entry.Number, &postedAt, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
		return JournalEntry{}, err
	}
	entry.PostedAt = postedAt
	return entry, nil
}

func (r *txRepository) InsertLines(ctx context.Context, entryID int64, lines []LineInput) error {
	for _, line := range lines {
		if _, err := r.tx.Exec(ctx, `INSERT INTO journal_lines (entry_id, account_id, debit, credit, description)
VALUES ($1,$2,$3,$4,$5)`, entryID, line.AccountID, toNumeric(line.Debit), toNumeric(line.Credit), line.Description); err != nil {
			return err
		}
	}
	return nil
}

func (r *txRepository) GetEntryWithLinesForUpdate(ctx context.Context, entryID int64) (JournalEntry, error) {
	entry, err := scanEntry(r.tx.QueryRow(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE id=$1 FOR UPDATE`, entryID))
	if err != nil {
		return JournalEntry{}, err
	}
	lines, err := fetchLines(ctx, r.tx, entryID)
	if err != nil {
		return JournalEntry{}, err
	}
	entry.Lines = lines
	return entry, nil
}

func (r *txRepository) MarkPosted(ctx context.Context, entryID int64, postedAt time.Time) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE journal_entries SET status='POSTED', posted_at=$2, updated_at=NOW() WHERE id=$1`, entryID, postedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *txRepository) FetchPostingAccounts(ctx context.Context, accountIDs []int64) (map[int64]PostingAccount, error) {
	rows, err := r.tx.Query(ctx, `SELECT id, code, accepts_entries, is_active FROM accounts WHERE id = ANY($1)`, accountIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	accounts := make(map[int64]PostingAccount, len(accountIDs))
	for rows.Next() {
		var a PostingAccount
		if err := rows.Scan(&a.ID, &a.Code, &a.AcceptsEntries, &a.IsActive); err != nil {
			return nil, err
		}
		accounts[a.ID] = a
	}
	return accounts, rows.Err()
}

func (r *txRepository) LinkSource(ctx context.Context, module string, ref uuid.UUID, entryID int64) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO source_links (module, ref_id, entry_id) VALUES ($1,$2,$3)`, module, ref, entryID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSourceAlreadyLinked
		}
		return err
	}
	return nil
}

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation. The source_links primary key relies on this to make replayed
// business events observable as ErrSourceAlreadyLinked.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func toNumeric(v float64) any {
	return fmt.Sprintf("%.2f", v)
}
