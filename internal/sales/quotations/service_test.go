package quotations

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/chichermo/KaiZenith-sub001/internal/shared"
)

type memoryRepo struct {
	quotations map[int64]*Quotation
	nextID     int64
	nextLineID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{quotations: make(map[int64]*Quotation), nextID: 1, nextLineID: 1}
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, r)
}

func (r *memoryRepo) Create(ctx context.Context, q Quotation) (int64, error) {
	q.ID = r.nextID
	r.nextID++
	q.CreatedAt = time.Now()
	q.UpdatedAt = q.CreatedAt
	r.quotations[q.ID] = &q
	return q.ID, nil
}

func (r *memoryRepo) InsertLine(ctx context.Context, line QuotationLine) (int64, error) {
	q, ok := r.quotations[line.QuotationID]
	if !ok {
		return 0, ErrNotFound
	}
	line.ID = r.nextLineID
	r.nextLineID++
	q.Lines = append(q.Lines, line)
	return line.ID, nil
}

func (r *memoryRepo) DeleteLines(ctx context.Context, quotationID int64) error {
	q, ok := r.quotations[quotationID]
	if !ok {
		return ErrNotFound
	}
	q.Lines = nil
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	q, ok := r.quotations[id]
	if !ok {
		return ErrNotFound
	}
	for column, value := range updates {
		switch column {
		case "quote_date":
			q.QuoteDate = value.(time.Time)
		case "valid_until":
			q.ValidUntil = value.(time.Time)
		case "notes":
			notes := value.(string)
			q.Notes = &notes
		case "labor_cost":
			q.LaborCost = value.(decimal.Decimal)
		case "margin_percent":
			q.MarginPercent = value.(decimal.Decimal)
		case "materials_total":
			q.MaterialsTotal = value.(decimal.Decimal)
		case "subtotal":
			q.Subtotal = value.(decimal.Decimal)
		case "margin_amount":
			q.MarginAmount = value.(decimal.Decimal)
		case "net_total":
			q.NetTotal = value.(decimal.Decimal)
		case "tax":
			q.Tax = value.(decimal.Decimal)
		case "total":
			q.Total = value.(decimal.Decimal)
		}
	}
	q.UpdatedAt = time.Now()
	return nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id int64, status QuotationStatus, actorID int64, reason *string) error {
	q, ok := r.quotations[id]
	if !ok {
		return ErrNotFound
	}
	q.Status = status
	now := time.Now()
	switch status {
	case QuotationStatusApproved:
		q.ApprovedBy = &actorID
		q.ApprovedAt = &now
	case QuotationStatusRejected:
		q.RejectedBy = &actorID
		q.RejectedAt = &now
		q.RejectionReason = reason
	}
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*Quotation, error) {
	q, ok := r.quotations[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *q
	return &copied, nil
}

func (r *memoryRepo) List(ctx context.Context, req ListQuotationsRequest) ([]Quotation, int, error) {
	var out []Quotation
	for _, q := range r.quotations {
		if req.Status != nil && q.Status != *req.Status {
			continue
		}
		out = append(out, *q)
	}
	return out, len(out), nil
}

func createRequest() CreateQuotationRequest {
	return CreateQuotationRequest{
		ClientName:    "Constructora Sur",
		ProjectName:   "Bodega Lampa",
		QuoteDate:     time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		LaborCost:     decimal.Zero,
		MarginPercent: dec("3"),
		Items: []LineItemInput{
			{Description: "Cemento", Quantity: dec("2"), UnitPrice: dec("100000")},
		},
	}
}

func TestCreateComputesTotalsServerSide(t *testing.T) {
	svc := NewService(newMemoryRepo())

	q, err := svc.Create(context.Background(), createRequest(), 7)
	require.NoError(t, err)

	require.Equal(t, QuotationStatusDraft, q.Status)
	require.Len(t, q.Lines, 1)
	require.True(t, q.MaterialsTotal.Equal(dec("200000")))
	require.True(t, q.Total.Equal(dec("245140")))
	require.Equal(t, int64(7), q.CreatedBy)
}

func TestCreateRejectsInvertedDates(t *testing.T) {
	svc := NewService(newMemoryRepo())

	req := createRequest()
	req.ValidUntil = req.QuoteDate.AddDate(0, 0, -1)
	_, err := svc.Create(context.Background(), req, 1)
	require.ErrorIs(t, err, ErrInvalidDates)
}

func TestUpdateRecomputesTotals(t *testing.T) {
	svc := NewService(newMemoryRepo())
	q, err := svc.Create(context.Background(), createRequest(), 1)
	require.NoError(t, err)

	margin := dec("10")
	updated, err := svc.Update(context.Background(), q.ID, UpdateQuotationRequest{MarginPercent: &margin})
	require.NoError(t, err)

	require.True(t, updated.MarginAmount.Equal(dec("20000")), "margin = %s", updated.MarginAmount)
	require.True(t, updated.Total.Equal(dec("261800")), "total = %s", updated.Total)
}

func TestUpdateOnlyAllowedForDrafts(t *testing.T) {
	svc := NewService(newMemoryRepo())
	q, err := svc.Create(context.Background(), createRequest(), 1)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), q.ID, 1)
	require.NoError(t, err)

	notes := "cambio"
	_, err = svc.Update(context.Background(), q.ID, UpdateQuotationRequest{Notes: &notes})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatusTransitions(t *testing.T) {
	svc := NewService(newMemoryRepo())
	q, err := svc.Create(context.Background(), createRequest(), 1)
	require.NoError(t, err)

	// DRAFT cannot go straight to APPROVED.
	_, err = svc.Approve(context.Background(), q.ID, 2)
	require.ErrorIs(t, err, ErrInvalidStatus)

	submitted, err := svc.Submit(context.Background(), q.ID, 1)
	require.NoError(t, err)
	require.Equal(t, QuotationStatusSubmitted, submitted.Status)

	approved, err := svc.Approve(context.Background(), q.ID, 2)
	require.NoError(t, err)
	require.Equal(t, QuotationStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	require.Equal(t, int64(2), *approved.ApprovedBy)

	// Approved quotations are final.
	_, err = svc.Reject(context.Background(), q.ID, 2, "tarde")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRejectRecordsReason(t *testing.T) {
	svc := NewService(newMemoryRepo())
	q, err := svc.Create(context.Background(), createRequest(), 1)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), q.ID, 1)
	require.NoError(t, err)

	rejected, err := svc.Reject(context.Background(), q.ID, 3, "fuera de presupuesto")
	require.NoError(t, err)
	require.Equal(t, QuotationStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	require.Equal(t, "fuera de presupuesto", *rejected.RejectionReason)
}

type recordedAudit struct {
	logs []shared.AuditLog
}

func (a *recordedAudit) Record(ctx context.Context, log shared.AuditLog) error {
	a.logs = append(a.logs, log)
	return nil
}

func TestTransitionsWriteAuditTrail(t *testing.T) {
	svc := NewService(newMemoryRepo())
	audit := &recordedAudit{}
	svc.WithAudit(audit)

	q, err := svc.Create(context.Background(), createRequest(), 1)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), q.ID, 2)
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), q.ID, 3)
	require.NoError(t, err)

	require.Len(t, audit.logs, 2)
	require.Equal(t, shared.ActionQuotationSubmit, audit.logs[0].Action)
	require.Equal(t, int64(2), audit.logs[0].ActorID)
	require.Equal(t, shared.ActionQuotationApprove, audit.logs[1].Action)
	require.Equal(t, int64(3), audit.logs[1].ActorID)
	require.Equal(t, "quotation", audit.logs[1].Entity)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	calc, err := svc.Preview(context.Background(), PreviewRequest{
		MarginPercent: dec("3"),
		Items: []LineItemInput{
			{Quantity: dec("2"), UnitPrice: dec("100000")},
		},
	})
	require.NoError(t, err)
	require.True(t, calc.GrandTotal.Equal(dec("245140")))
	require.Empty(t, repo.quotations)
}
