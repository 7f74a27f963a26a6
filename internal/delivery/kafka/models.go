package kafka

import (
	"encoding/json"

	"github.com/azizikri/edulearn/internal/contract"
)

const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

type RequestPayload struct {
	SchemaVersion int             `json:"schema_version"`
	CorrelationID string          `json:"correlation_id"`
	ReplyTo       string          `json:"reply_to"`
	Operation     string          `json:"operation"`
	Input         json.RawMessage `json:"input,omitempty"`
}

type ResponsePayload struct {
	SchemaVersion int             `json:"schema_version"`
	CorrelationID string          `json:"correlation_id"`
	Status        string          `json:"status"`
	Result        json.RawMessage `json:"result,omitempty"`
	Error         *contract.Error `json:"error,omitempty"`
}

func ReplyTopic(instanceID string) string {
	return TopicReplyPrefix + instanceID
}
