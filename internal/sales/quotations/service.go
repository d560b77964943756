package quotations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/chichermo/KaiZenith-sub001/internal/shared"
)

var (
	ErrInvalidStatus = errors.New("invalid status transition")
	ErrInvalidDates  = errors.New("valid_until must be after quote_date")
)

// AuditPort records approval workflow transitions.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

type Service struct {
	repo   Repository
	audit  AuditPort
	logger *slog.Logger
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// WithAudit attaches the audit writer for status transitions.
func (s *Service) WithAudit(audit AuditPort) {
	s.audit = audit
}

// WithLogger attaches the logger used for non-fatal audit failures.
func (s *Service) WithLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

func (s *Service) recordAudit(ctx context.Context, action string, id, actorID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "quotation",
		EntityID: strconv.FormatInt(id, 10),
		Meta:     meta,
	})
	if err != nil {
		logger := s.logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("audit write failed", slog.Any("error", err), slog.Int64("quotation_id", id))
	}
}

func (s *Service) Create(ctx context.Context, req CreateQuotationRequest, createdBy int64) (*Quotation, error) {
	if req.ValidUntil.Before(req.QuoteDate) {
		return nil, ErrInvalidDates
	}
	if err := ValidateItems(req.Items, req.LaborCost, req.MarginPercent); err != nil {
		return nil, err
	}
	calc := CalculateTotals(req.Items, req.LaborCost, req.MarginPercent)

	quotation := Quotation{
		ClientName:     req.ClientName,
		ProjectName:    req.ProjectName,
		QuoteDate:      req.QuoteDate,
		ValidUntil:     req.ValidUntil,
		Status:         QuotationStatusDraft,
		LaborCost:      req.LaborCost,
		MarginPercent:  req.MarginPercent,
		MaterialsTotal: calc.MaterialsTotal,
		Subtotal:       calc.Subtotal,
		MarginAmount:   calc.MarginAmount,
		NetTotal:       calc.NetTotal,
		Tax:            calc.Tax,
		Total:          calc.GrandTotal,
		Notes:          req.Notes,
		CreatedBy:      createdBy,
	}

	var quotationID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.Create(ctx, quotation)
		if err != nil {
			return fmt.Errorf("create quotation: %w", err)
		}
		quotationID = id

		for i, item := range req.Items {
			line := QuotationLine{
				QuotationID: quotationID,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				LineTotal:   item.Quantity.Mul(item.UnitPrice),
				LineOrder:   i + 1,
			}
			if _, err := repo.InsertLine(ctx, line); err != nil {
				return fmt.Errorf("insert quotation line: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, quotationID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateQuotationRequest) (*Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}

	if existing.Status != QuotationStatusDraft {
		return nil, fmt.Errorf("%w: only DRAFT quotations can be updated", ErrInvalidStatus)
	}

	quoteDate := existing.QuoteDate
	if req.QuoteDate != nil {
		quoteDate = *req.QuoteDate
	}
	validUntil := existing.ValidUntil
	if req.ValidUntil != nil {
		validUntil = *req.ValidUntil
	}
	if validUntil.Before(quoteDate) {
		return nil, ErrInvalidDates
	}

	// Totals depend on labor, margin and items together, so recompute from
	// the merged view of old and new values.
	laborCost := existing.LaborCost
	if req.LaborCost != nil {
		laborCost = *req.LaborCost
	}
	marginPercent := existing.MarginPercent
	if req.MarginPercent != nil {
		marginPercent = *req.MarginPercent
	}
	items := existingItems(existing)
	if req.Items != nil {
		items = *req.Items
	}

	if err := ValidateItems(items, laborCost, marginPercent); err != nil {
		return nil, err
	}
	calc := CalculateTotals(items, laborCost, marginPercent)

	updates := map[string]any{
		"labor_cost":      laborCost,
		"margin_percent":  marginPercent,
		"materials_total": calc.MaterialsTotal,
		"subtotal":        calc.Subtotal,
		"margin_amount":   calc.MarginAmount,
		"net_total":       calc.NetTotal,
		"tax":             calc.Tax,
		"total":           calc.GrandTotal,
	}
	if req.QuoteDate != nil {
		updates["quote_date"] = *req.QuoteDate
	}
	if req.ValidUntil != nil {
		updates["valid_until"] = *req.ValidUntil
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Update(ctx, id, updates); err != nil {
			return err
		}
		if req.Items != nil {
			if err := repo.DeleteLines(ctx, id); err != nil {
				return err
			}
			for i, item := range items {
				line := QuotationLine{
					QuotationID: id,
					Description: item.Description,
					Quantity:    item.Quantity,
					UnitPrice:   item.UnitPrice,
					LineTotal:   item.Quantity.Mul(item.UnitPrice),
					LineOrder:   i + 1,
				}
				if _, err := repo.InsertLine(ctx, line); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update quotation: %w", err)
	}

	return s.repo.Get(ctx, id)
}

func (s *Service) Submit(ctx context.Context, id int64, userID int64) (*Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}

	if existing.Status != QuotationStatusDraft {
		return nil, fmt.Errorf("%w: can only submit DRAFT quotations", ErrInvalidStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, QuotationStatusSubmitted, userID, nil); err != nil {
		return nil, fmt.Errorf("submit quotation: %w", err)
	}
	s.recordAudit(ctx, shared.ActionQuotationSubmit, id, userID, nil)

	return s.repo.Get(ctx, id)
}

func (s *Service) Approve(ctx context.Context, id int64, approvedBy int64) (*Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}

	if existing.Status != QuotationStatusSubmitted {
		return nil, fmt.Errorf("%w: can only approve SUBMITTED quotations", ErrInvalidStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, QuotationStatusApproved, approvedBy, nil); err != nil {
		return nil, fmt.Errorf("approve quotation: %w", err)
	}
	s.recordAudit(ctx, shared.ActionQuotationApprove, id, approvedBy, map[string]any{
		"total": existing.Total.StringFixed(2),
	})

	return s.repo.Get(ctx, id)
}

func (s *Service) Reject(ctx context.Context, id int64, rejectedBy int64, reason string) (*Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}

	if existing.Status != QuotationStatusSubmitted {
		return nil, fmt.Errorf("%w: can only reject SUBMITTED quotations", ErrInvalidStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, QuotationStatusRejected, rejectedBy, &reason); err != nil {
		return nil, fmt.Errorf("reject quotation: %w", err)
	}
	s.recordAudit(ctx, shared.ActionQuotationReject, id, rejectedBy, map[string]any{
		"reason": reason,
	})

	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Quotation, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListQuotationsRequest) ([]Quotation, int, error) {
	return s.repo.List(ctx, req)
}

// Preview runs the calculator without touching storage.
func (s *Service) Preview(_ context.Context, req PreviewRequest) (Calculation, error) {
	if err := ValidateItems(req.Items, req.LaborCost, req.MarginPercent); err != nil {
		return Calculation{}, err
	}
	return CalculateTotals(req.Items, req.LaborCost, req.MarginPercent), nil
}

func existingItems(q *Quotation) []LineItemInput {
	items := make([]LineItemInput, 0, len(q.Lines))
	for _, line := range q.Lines {
		items = append(items, LineItemInput{
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}
	return items
}
