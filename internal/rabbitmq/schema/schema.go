package schema

import (
	"encoding/json"
	"time"
)

// DeliveryFailure is published for administrators when credentials could not be emailed.
type DeliveryFailure struct {
	AccountID string    `json:"accountId"`
	Email     string    `json:"email"`
	Workflow  string    `json:"workflow"`
	Reason    string    `json:"reason"`
	At        time.Time `json:"at"`
}

func (d *DeliveryFailure) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

func (d *DeliveryFailure) Unmarshal(data []byte) error {
	return json.Unmarshal(data, d)
}
