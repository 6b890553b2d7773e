package posting

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository encapsulates DB operations for entry templates.
type Repository interface {
	Get(ctx context.Context, code string) (Template, error)
	List(ctx context.Context) ([]Template, error)
	Seed(ctx context.Context, templates []Template) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the pgx-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, code string) (Template, error) {
	var tpl Template
	err := r.db.QueryRow(ctx, `SELECT code, trigger_type, description, is_active, created_at, updated_at
FROM entry_templates WHERE code=$1`, code).
		Scan(&tpl.Code, &tpl.TriggerType, &tpl.Description, &tpl.IsActive, &tpl.CreatedAt, &tpl.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Template{}, ErrTemplateNotFound
		}
		return Template{}, err
	}
	lines, err := r.fetchLines(ctx, code)
	if err != nil {
		return Template{}, err
	}
	tpl.Lines = lines
	return tpl, nil
}

func (r *repository) List(ctx context.Context) ([]Template, error) {
	rows, err := r.db.Query(ctx, `SELECT code, trigger_type, description, is_active, created_at, updated_at
FROM entry_templates ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var templates []Template
	for rows.Next() {
		var tpl Template
		if err := rows.Scan(&tpl.Code, &tpl.TriggerType, &tpl.Description, &tpl.IsActive, &tpl.CreatedAt, &tpl.UpdatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range templates {
		lines, err := r.fetchLines(ctx, templates[i].Code)
		if err != nil {
			return nil, err
		}
		templates[i].Lines = lines
	}
	return templates, nil
}

func (r *repository) fetchLines(ctx context.Context, code string) ([]TemplateLine, error) {
	rows, err := r.db.Query(ctx, `SELECT position, ref_kind, account_code, context_key, side, rule_kind, ratio, description
FROM entry_template_lines WHERE template_code=$1 ORDER BY position ASC`, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []TemplateLine
	for rows.Next() {
		var (
			line       TemplateLine
			acctCode   *string
			contextKey *string
			ratio      *string
		)
		if err := rows.Scan(&line.Position, &line.Ref.Kind, &acctCode, &contextKey, &line.Side, &line.Rule.Kind, &ratio, &line.Description); err != nil {
			return nil, err
		}
		if acctCode != nil {
			line.Ref.Code = *acctCode
		}
		if contextKey != nil {
			line.Ref.ContextKey = *contextKey
		}
		if ratio != nil {
			parsed, err := decimal.NewFromString(*ratio)
			if err != nil {
				return nil, err
			}
			line.Rule.Ratio = parsed
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// Seed upserts templates and replaces their lines. Used at startup to install
// the built-in templates.
func (r *repository) Seed(ctx context.Context, templates []Template) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	for _, tpl := range templates {
		if _, err := tx.Exec(ctx, `INSERT INTO entry_templates (code, trigger_type, description, is_active)
VALUES ($1,$2,$3,$4)
ON CONFLICT (code) DO UPDATE SET trigger_type=EXCLUDED.trigger_type, description=EXCLUDED.description, is_active=EXCLUDED.is_active, updated_at=NOW()`,
			tpl.Code, tpl.TriggerType, tpl.Description, tpl.IsActive); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM entry_template_lines WHERE template_code=$1`, tpl.Code); err != nil {
			return err
		}
		for _, line := range tpl.Lines {
			var (
				acctCode   *string
				contextKey *string
				ratio      *string
			)
			if line.Ref.Code != "" {
				acctCode = &line.Ref.Code
			}
			if line.Ref.ContextKey != "" {
				contextKey = &line.Ref.ContextKey
			}
			if line.Rule.Kind == RuleProportion {
				s := line.Rule.Ratio.String()
				ratio = &s
			}
			if _, err := tx.Exec(ctx, `INSERT INTO entry_template_lines (template_code, position, ref_kind, account_code, context_key, side, rule_kind, ratio, description)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
				tpl.Code, line.Position, line.Ref.Kind, acctCode, contextKey, line.Side, line.Rule.Kind, ratio, line.Description); err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}
