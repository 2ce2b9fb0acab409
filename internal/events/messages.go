package events

import (
	"encoding/json"
	"time"
)

// Change operations carried in record change messages.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

// RecordChangeMessage announces one mutation. It carries only the
// collection, id, and operation; consumers re-fetch whatever state they
// need from the store.
type RecordChangeMessage struct {
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	Op         string    `json:"op"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewRecordChangeMessage(collection, id, op string) *RecordChangeMessage {
	return &RecordChangeMessage{
		Collection: collection,
		ID:         id,
		Op:         op,
		Timestamp:  time.Now(),
	}
}

func (m *RecordChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordChangeMessageFromJSON(data []byte) (*RecordChangeMessage, error) {
	var msg RecordChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
