package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLedgerIntegrityCheck recomputes the derived statements and flags a
	// ledger that no longer balances.
	TaskLedgerIntegrityCheck = "ledger:integrity_check"
)

// IntegrityCheckPayload parameterises a ledger integrity run. An empty AsOf
// means "now".
type IntegrityCheckPayload struct {
	AsOf string `json:"as_of,omitempty"`
}

// NewIntegrityCheckTask constructs an Asynq task. asOf uses the YYYY-MM-DD
// layout and may be empty.
func NewIntegrityCheckTask(asOf string) (*asynq.Task, error) {
	data, err := json.Marshal(IntegrityCheckPayload{AsOf: asOf})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLedgerIntegrityCheck, data), nil
}
