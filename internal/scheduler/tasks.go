package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskQuotationExpirySweep moves draft quotations past their expiry
// date to EXPIRED. Enqueued periodically; the payload carries the sweep
// reference time.
const TaskQuotationExpirySweep = "quotations.expiry.sweep"

type QuotationExpirySweepPayload struct {
	SweepAt time.Time `json:"sweepAt"`
}

func NewQuotationExpirySweepTask(payload QuotationExpirySweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuotationExpirySweep, data), nil
}

func ParseQuotationExpirySweepPayload(task *asynq.Task) (QuotationExpirySweepPayload, error) {
	var payload QuotationExpirySweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return QuotationExpirySweepPayload{}, err
	}
	return payload, nil
}
