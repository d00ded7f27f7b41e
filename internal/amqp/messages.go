package amqp

import (
	"encoding/json"
	"time"
)

// EntryRecordedMessage tells the export worker that a ledger entry was
// written. It carries only the id; the worker fetches the full entry from
// storage.
type EntryRecordedMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntryRecordedMessage(id int64) *EntryRecordedMessage {
	return &EntryRecordedMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *EntryRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntryRecordedMessageFromJSON(data []byte) (*EntryRecordedMessage, error) {
	var msg EntryRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
