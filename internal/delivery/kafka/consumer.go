package kafka

import (
	"context"
	"encoding/json"

	"github.com/azizikri/edulearn/internal/contract"
	"github.com/golang/glog"
	"github.com/twmb/franz-go/pkg/kgo"
)

type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Consumer serves contract operations from the request topic and publishes
// each result to the caller's reply topic.
type Consumer struct {
	client   *kgo.Client
	producer producer
	registry *contract.Registry
	ready    chan struct{}
}

func NewConsumer(client *kgo.Client, registry *contract.Registry) *Consumer {
	return &Consumer{
		client:   client,
		producer: client,
		registry: registry,
		ready:    make(chan struct{}),
	}
}

func (c *Consumer) Start(ctx context.Context) {
	close(c.ready)
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return
		}
		if errs := fetches.Errors(); len(errs) > 0 {
			glog.Warningf("Consumer poll errors: %v", errs)
		}

		iter := fetches.RecordIter()
		for !iter.Done() {
			c.processRecord(ctx, iter.Next())
		}

		if err := c.client.CommitRecords(ctx, fetches.Records()...); err != nil {
			glog.Warningf("Failed to commit records: %v", err)
		}
	}
}

func (c *Consumer) Ready() <-chan struct{} {
	return c.ready
}

func (c *Consumer) processRecord(ctx context.Context, record *kgo.Record) {
	var req RequestPayload
	if err := json.Unmarshal(record.Value, &req); err != nil || req.Operation == "" {
		c.sendError(ctx, record, contract.NewError(contract.CodeInvalidRequest, "invalid request payload"))
		return
	}

	result, wireErr := c.registry.Call(ctx, req.Operation, contract.JSONInput(req.Input))
	if wireErr != nil {
		c.sendResponse(ctx, req.ReplyTo, errorResponse(req.CorrelationID, wireErr))
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		glog.Errorf("encode result of %s: %v", req.Operation, err)
		c.sendResponse(ctx, req.ReplyTo, errorResponse(req.CorrelationID, contract.FromError(err)))
		return
	}
	c.sendResponse(ctx, req.ReplyTo, successResponse(req.CorrelationID, raw))
}

func (c *Consumer) sendResponse(ctx context.Context, topic string, resp *ResponsePayload) {
	if topic == "" {
		glog.Warningf("Dropping response %s: request had no reply topic", resp.CorrelationID)
		return
	}
	payload, _ := json.Marshal(resp)
	record := &kgo.Record{
		Topic: topic,
		Value: payload,
	}
	if err := c.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		glog.Errorf("Failed to send response to %s: %v", topic, err)
	}
}

// sendError answers the caller when the payload names one, and parks the
// original record on the dead letter topic.
func (c *Consumer) sendError(ctx context.Context, record *kgo.Record, wireErr *contract.Error) {
	var req RequestPayload
	_ = json.Unmarshal(record.Value, &req)

	if req.ReplyTo != "" {
		c.sendResponse(ctx, req.ReplyTo, errorResponse(req.CorrelationID, wireErr))
	}

	dlqRecord := &kgo.Record{
		Topic: record.Topic + TopicDLQSuffix,
		Key:   record.Key,
		Value: record.Value,
		Headers: []kgo.RecordHeader{
			{Key: ErrorHeaderKey, Value: []byte(wireErr.Message)},
		},
	}
	if err := c.producer.ProduceSync(ctx, dlqRecord).FirstErr(); err != nil {
		glog.Errorf("Failed to dead-letter record from %s: %v", record.Topic, err)
	}
}

func successResponse(correlationID string, result json.RawMessage) *ResponsePayload {
	return &ResponsePayload{
		SchemaVersion: SchemaVersion,
		CorrelationID: correlationID,
		Status:        StatusSuccess,
		Result:        result,
	}
}

func errorResponse(correlationID string, wireErr *contract.Error) *ResponsePayload {
	return &ResponsePayload{
		SchemaVersion: SchemaVersion,
		CorrelationID: correlationID,
		Status:        StatusError,
		Error:         wireErr,
	}
}
