package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chichermo/KaiZenith-sub001/internal/shared"
)

// AuditPort records who posted what.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// CacheBumper invalidates derived-statement caches after a write.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// MetricsPort counts recorded entries.
type MetricsPort interface {
	LedgerEntryRecorded()
}

// Service owns the system of record: it validates the double-entry invariant
// and persists entry plus movements atomically. There is no update or delete;
// corrections go through Reverse.
type Service struct {
	repo    Repository
	audit   AuditPort
	cache   CacheBumper
	metrics MetricsPort
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(repo Repository, audit AuditPort, cache CacheBumper, metrics MetricsPort) *Service {
	return &Service{repo: repo, audit: audit, cache: cache, metrics: metrics, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// WithLogger attaches the logger used for non-fatal side effect failures.
func (s *Service) WithLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

func (s *Service) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// Record validates and persists one balanced entry. Either the entry row and
// every movement row are written, or nothing is.
func (s *Service) Record(ctx context.Context, input RecordInput) (Entry, error) {
	if err := input.Validate(); err != nil {
		return Entry{}, err
	}

	entry := Entry{
		Date:           input.Date,
		Description:    input.Description,
		IdempotencyKey: input.IdempotencyKey,
	}
	if input.Reference != nil {
		refType := input.Reference.Type
		refID := input.Reference.ID
		entry.ReferenceType = &refType
		entry.ReferenceID = &refID
	}
	movements := input.movements()

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		inserted, err := tx.InsertEntry(ctx, entry)
		if err != nil {
			return err
		}
		if err := tx.InsertMovements(ctx, inserted.ID, movements); err != nil {
			return err
		}
		entry = inserted
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	for i := range movements {
		movements[i].EntryID = entry.ID
	}
	entry.Movements = movements

	if s.cache != nil {
		// A failed bump means cached statements are stale until the next
		// successful write; the entry itself is already committed.
		if err := s.cache.Bump(ctx); err != nil {
			s.log().Warn("statement cache bump failed", slog.Any("error", err), slog.Int64("entry_id", entry.ID))
		}
	}
	if s.metrics != nil {
		s.metrics.LedgerEntryRecorded()
	}
	if s.audit != nil {
		err := s.audit.Record(ctx, shared.AuditLog{
			ActorID:  input.ActorID,
			Action:   shared.ActionLedgerRecord,
			Entity:   "ledger_entry",
			EntityID: fmt.Sprintf("%d", entry.ID),
			Meta: map[string]any{
				"date":      entry.Date.Format("2006-01-02"),
				"lines":     len(entry.Movements),
				"total":     entry.TotalDebit().StringFixed(2),
				"reference": referenceMeta(entry),
			},
			At: s.now(),
		})
		if err != nil {
			s.log().Warn("audit write failed", slog.Any("error", err), slog.Int64("entry_id", entry.ID))
		}
	}
	return entry, nil
}

// Reverse posts a new entry with every movement's side swapped. The original is
// untouched; the ledger stays append-only.
func (s *Service) Reverse(ctx context.Context, input ReverseInput) (Entry, error) {
	if input.EntryID == 0 {
		return Entry{}, errors.New("ledger: entry id required")
	}
	original, err := s.repo.Get(ctx, input.EntryID)
	if err != nil {
		return Entry{}, err
	}

	record := RecordInput{
		Date:        s.now(),
		Description: defaultReversalDescription(input.Description, original.ID),
		Movements:   reverseMovements(original.Movements),
		ActorID:     input.ActorID,
	}
	reversal, err := s.Record(ctx, record)
	if err != nil {
		return Entry{}, err
	}
	if s.audit != nil {
		err := s.audit.Record(ctx, shared.AuditLog{
			ActorID:  input.ActorID,
			Action:   shared.ActionLedgerReverse,
			Entity:   "ledger_entry",
			EntityID: fmt.Sprintf("%d", original.ID),
			Meta: map[string]any{
				"reversal_id": reversal.ID,
			},
			At: s.now(),
		})
		if err != nil {
			s.log().Warn("audit write failed", slog.Any("error", err), slog.Int64("entry_id", original.ID))
		}
	}
	return reversal, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Entry, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Entry, error) {
	return s.repo.List(ctx, limit, offset)
}

func reverseMovements(movements []Movement) []MovementInput {
	out := make([]MovementInput, 0, len(movements))
	for _, m := range movements {
		out = append(out, MovementInput{
			AccountCode: m.AccountCode,
			Debit:       m.Credit(),
			Credit:      m.Debit(),
		})
	}
	return out
}

func defaultReversalDescription(description string, entryID int64) string {
	if description != "" {
		return description
	}
	return fmt.Sprintf("Reversión del asiento %d", entryID)
}

func referenceMeta(entry Entry) string {
	if entry.ReferenceType == nil || entry.ReferenceID == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", *entry.ReferenceType, *entry.ReferenceID)
}
