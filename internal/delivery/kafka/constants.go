package kafka

import "time"

const (
	TopicRPCRequest  = "catalog.rpc.req"
	TopicReplyPrefix = "catalog.rpc.reply."
	TopicDLQSuffix   = ".dlq"

	SchemaVersion = 1

	// ReplyTimeout bounds how long a gateway waits for a reply record that
	// may never arrive.
	ReplyTimeout = 3 * time.Second

	ErrorHeaderKey = "x-error"
)
