package quotations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chichermo/KaiZenith-sub001/internal/platform/db"
)

// ErrNotFound indicates a missing quotation.
var ErrNotFound = errors.New("quotations: not found")

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Create(ctx context.Context, q Quotation) (int64, error)
	InsertLine(ctx context.Context, line QuotationLine) (int64, error)
	DeleteLines(ctx context.Context, quotationID int64) error
	Update(ctx context.Context, id int64, updates map[string]any) error
	UpdateStatus(ctx context.Context, id int64, status QuotationStatus, actorID int64, reason *string) error
	Get(ctx context.Context, id int64) (*Quotation, error)
	List(ctx context.Context, req ListQuotationsRequest) ([]Quotation, int, error)
}

// dbtx covers both pool and transaction handles.
type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	if _, inTx := r.db.(pgx.Tx); inTx {
		return fn(ctx, r)
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const quotationColumns = `id, client_name, project_name, quote_date, valid_until, status,
labor_cost, margin_percent, materials_total, subtotal, margin_amount, net_total, tax, total,
notes, created_by, approved_by, approved_at, rejected_by, rejected_at, rejection_reason,
created_at, updated_at`

func (r *repository) Create(ctx context.Context, q Quotation) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO quotations
(client_name, project_name, quote_date, valid_until, status, labor_cost, margin_percent,
 materials_total, subtotal, margin_amount, net_total, tax, total, notes, created_by)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
RETURNING id`,
		q.ClientName, q.ProjectName, q.QuoteDate, q.ValidUntil, q.Status, q.LaborCost, q.MarginPercent,
		q.MaterialsTotal, q.Subtotal, q.MarginAmount, q.NetTotal, q.Tax, q.Total, q.Notes, q.CreatedBy).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("quotations: create: %w", err)
	}
	return id, nil
}

func (r *repository) InsertLine(ctx context.Context, line QuotationLine) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO quotation_lines
(quotation_id, description, quantity, unit_price, line_total, line_order)
VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		line.QuotationID, line.Description, line.Quantity, line.UnitPrice, line.LineTotal, line.LineOrder).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("quotations: insert line: %w", err)
	}
	return id, nil
}

func (r *repository) DeleteLines(ctx context.Context, quotationID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM quotation_lines WHERE quotation_id=$1`, quotationID)
	return err
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	setClauses := make([]string, 0, len(updates)+1)
	args := make([]any, 0, len(updates)+1)
	idx := 1
	for column, value := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s=$%d", column, idx))
		args = append(args, value)
		idx++
	}
	setClauses = append(setClauses, "updated_at=NOW()")
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE quotations SET %s WHERE id=$%d`, strings.Join(setClauses, ", "), idx)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status QuotationStatus, actorID int64, reason *string) error {
	var tag pgconn.CommandTag
	var err error
	switch status {
	case QuotationStatusApproved:
		tag, err = r.db.Exec(ctx, `UPDATE quotations SET status=$2, approved_by=$3, approved_at=NOW(), updated_at=NOW() WHERE id=$1`, id, status, actorID)
	case QuotationStatusRejected:
		tag, err = r.db.Exec(ctx, `UPDATE quotations SET status=$2, rejected_by=$3, rejected_at=NOW(), rejection_reason=$4, updated_at=NOW() WHERE id=$1`, id, status, actorID, reason)
	default:
		tag, err = r.db.Exec(ctx, `UPDATE quotations SET status=$2, updated_at=NOW() WHERE id=$1`, id, status)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Quotation, error) {
	var q Quotation
	err := r.db.QueryRow(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id=$1`, id).Scan(
		&q.ID, &q.ClientName, &q.ProjectName, &q.QuoteDate, &q.ValidUntil, &q.Status,
		&q.LaborCost, &q.MarginPercent, &q.MaterialsTotal, &q.Subtotal, &q.MarginAmount, &q.NetTotal, &q.Tax, &q.Total,
		&q.Notes, &q.CreatedBy, &q.ApprovedBy, &q.ApprovedAt, &q.RejectedBy, &q.RejectedAt, &q.RejectionReason,
		&q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, quotation_id, description, quantity, unit_price, line_total, line_order
FROM quotation_lines WHERE quotation_id=$1 ORDER BY line_order ASC, id ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var line QuotationLine
		if err := rows.Scan(&line.ID, &line.QuotationID, &line.Description, &line.Quantity, &line.UnitPrice, &line.LineTotal, &line.LineOrder); err != nil {
			return nil, err
		}
		q.Lines = append(q.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repository) List(ctx context.Context, req ListQuotationsRequest) ([]Quotation, int, error) {
	where := []string{"1=1"}
	args := []any{}
	idx := 1
	if req.Status != nil {
		where = append(where, fmt.Sprintf("status=$%d", idx))
		args = append(args, *req.Status)
		idx++
	}
	if req.DateFrom != nil {
		where = append(where, fmt.Sprintf("quote_date >= $%d", idx))
		args = append(args, *req.DateFrom)
		idx++
	}
	if req.DateTo != nil {
		where = append(where, fmt.Sprintf("quote_date <= $%d", idx))
		args = append(args, *req.DateTo)
		idx++
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM quotations WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT %s FROM quotations WHERE %s ORDER BY quote_date DESC, id DESC LIMIT $%d OFFSET $%d`,
		quotationColumns, cond, idx, idx+1)
	args = append(args, limit, req.Offset)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []Quotation
	for rows.Next() {
		var q Quotation
		if err := rows.Scan(
			&q.ID, &q.ClientName, &q.ProjectName, &q.QuoteDate, &q.ValidUntil, &q.Status,
			&q.LaborCost, &q.MarginPercent, &q.MaterialsTotal, &q.Subtotal, &q.MarginAmount, &q.NetTotal, &q.Tax, &q.Total,
			&q.Notes, &q.CreatedBy, &q.ApprovedBy, &q.ApprovedAt, &q.RejectedBy, &q.RejectedAt, &q.RejectionReason,
			&q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, q)
	}
	return out, total, rows.Err()
}
