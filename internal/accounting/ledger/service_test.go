package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chichermo/KaiZenith-sub001/internal/shared"
)

// memoryRepo keeps entries in a slice so service behaviour can be exercised
// without Postgres. Writes go through the same two-step transaction shape as
// the real repository.
type memoryRepo struct {
	entries []Entry
	nextID  int64
	failTx  error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1}
}

func (r *memoryRepo) List(ctx context.Context, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset >= len(r.entries) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.entries) {
		end = len(r.entries)
	}
	return r.entries[offset:end], nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Entry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrEntryNotFound
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if r.failTx != nil {
		return r.failTx
	}
	staged := &memoryTx{repo: r}
	if err := fn(ctx, staged); err != nil {
		// Nothing staged becomes visible.
		return err
	}
	r.entries = append(r.entries, staged.entries...)
	return nil
}

type memoryTx struct {
	repo    *memoryRepo
	entries []Entry
}

func (tx *memoryTx) InsertEntry(ctx context.Context, entry Entry) (Entry, error) {
	entry.ID = tx.repo.nextID
	tx.repo.nextID++
	entry.CreatedAt = time.Now()
	tx.entries = append(tx.entries, entry)
	return entry, nil
}

func (tx *memoryTx) InsertMovements(ctx context.Context, entryID int64, movements []Movement) error {
	for i := range tx.entries {
		if tx.entries[i].ID != entryID {
			continue
		}
		for _, m := range movements {
			m.EntryID = entryID
			tx.entries[i].Movements = append(tx.entries[i].Movements, m)
		}
		return nil
	}
	return ErrEntryNotFound
}

type recordedAudit struct {
	logs []shared.AuditLog
}

func (a *recordedAudit) Record(ctx context.Context, log shared.AuditLog) error {
	a.logs = append(a.logs, log)
	return nil
}

type countingBumper struct {
	bumps int
}

func (b *countingBumper) Bump(ctx context.Context) error {
	b.bumps++
	return nil
}

type countingMetrics struct {
	recorded int
}

func (m *countingMetrics) LedgerEntryRecorded() {
	m.recorded++
}

func TestRecordPersistsBalancedEntry(t *testing.T) {
	repo := newMemoryRepo()
	audit := &recordedAudit{}
	bumper := &countingBumper{}
	metrics := &countingMetrics{}
	svc := NewService(repo, audit, bumper, metrics)

	entry, err := svc.Record(context.Background(), validInput())
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("entry id not assigned")
	}
	if len(entry.Movements) != 2 {
		t.Fatalf("movements = %d, want 2", len(entry.Movements))
	}
	if !entry.TotalDebit().Equal(entry.TotalCredit()) {
		t.Fatalf("persisted entry unbalanced: %s vs %s", entry.TotalDebit(), entry.TotalCredit())
	}
	if bumper.bumps != 1 {
		t.Fatalf("cache bumps = %d, want 1", bumper.bumps)
	}
	if metrics.recorded != 1 {
		t.Fatalf("recorded metric = %d, want 1", metrics.recorded)
	}
	if len(audit.logs) != 1 || audit.logs[0].Action != shared.ActionLedgerRecord {
		t.Fatalf("unexpected audit trail: %+v", audit.logs)
	}
}

type failingBumper struct{}

func (failingBumper) Bump(ctx context.Context) error { return errors.New("redis down") }

type failingAudit struct{}

func (failingAudit) Record(ctx context.Context, log shared.AuditLog) error {
	return errors.New("audit table missing")
}

func TestRecordSurvivesSideEffectFailures(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, failingAudit{}, failingBumper{}, nil)
	svc.WithLogger(discardLogger())

	entry, err := svc.Record(context.Background(), validInput())
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("entry id not assigned")
	}
	if len(repo.entries) != 1 {
		t.Fatalf("entries stored = %d, want 1", len(repo.entries))
	}
}

func TestRecordRejectsUnbalancedBeforeStorage(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil, nil)

	in := validInput()
	in.Movements[1].Credit = amount("99999")
	if _, err := svc.Record(context.Background(), in); !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("expected ErrUnbalanced, got %v", err)
	}
	if len(repo.entries) != 0 {
		t.Fatal("unbalanced entry reached storage")
	}
}

func TestRecordTxFailureLeavesNothingVisible(t *testing.T) {
	repo := newMemoryRepo()
	repo.failTx = errors.New("connection reset")
	svc := NewService(repo, nil, nil, nil)

	if _, err := svc.Record(context.Background(), validInput()); err == nil {
		t.Fatal("expected storage error")
	}
	if len(repo.entries) != 0 {
		t.Fatal("partial write observed after failed transaction")
	}
}

func TestReversePostsOffsettingEntry(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil, nil)
	svc.WithNow(func() time.Time { return time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC) })

	original, err := svc.Record(context.Background(), validInput())
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	reversal, err := svc.Reverse(context.Background(), ReverseInput{EntryID: original.ID})
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if reversal.ID == original.ID {
		t.Fatal("reversal must be a new entry")
	}
	if reversal.Description != "Reversión del asiento 1" {
		t.Fatalf("description = %q", reversal.Description)
	}

	// Every side swapped, same accounts and amounts.
	for i, m := range reversal.Movements {
		o := original.Movements[i]
		if m.AccountCode != o.AccountCode {
			t.Fatalf("line %d account = %s, want %s", i, m.AccountCode, o.AccountCode)
		}
		if !m.Debit().Equal(o.Credit()) || !m.Credit().Equal(o.Debit()) {
			t.Fatalf("line %d not offset: %+v vs %+v", i, m, o)
		}
	}

	// Original untouched.
	stored, err := svc.Get(context.Background(), original.ID)
	if err != nil {
		t.Fatalf("get original: %v", err)
	}
	if !stored.TotalDebit().Equal(original.TotalDebit()) {
		t.Fatal("original entry mutated by reversal")
	}
}

func TestReverseMissingEntry(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil, nil)
	if _, err := svc.Reverse(context.Background(), ReverseInput{EntryID: 42}); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}
