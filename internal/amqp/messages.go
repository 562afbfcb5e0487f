package amqp

import (
	"encoding/json"
	"time"

	"github.com/MrJamesThe3rd/salesboard/internal/seed"
)

// SeedCompletedMessage announces a finished seed run.
type SeedCompletedMessage struct {
	RunID      string    `json:"runId"`
	Fetched    int       `json:"fetched"`
	Inserted   int       `json:"inserted"`
	Skipped    int       `json:"skipped"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewSeedCompletedMessage(res *seed.Result) *SeedCompletedMessage {
	return &SeedCompletedMessage{
		RunID:      res.RunID.String(),
		Fetched:    res.Fetched,
		Inserted:   res.Inserted,
		Skipped:    res.Skipped,
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
		Timestamp:  time.Now(),
	}
}

func (m *SeedCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SeedCompletedMessageFromJSON(data []byte) (*SeedCompletedMessage, error) {
	var msg SeedCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
