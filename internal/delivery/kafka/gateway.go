package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/azizikri/edulearn/internal/contract"
	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Gateway invokes contract operations over Kafka request/reply. Replies are
// fed in through HandleResponse by whoever polls the reply topic.
type Gateway struct {
	producer    producer
	replyTopic  string
	pendingResp sync.Map
}

func NewGateway(client *kgo.Client, instanceID string) *Gateway {
	return &Gateway{
		producer:   client,
		replyTopic: ReplyTopic(instanceID),
	}
}

func (g *Gateway) Call(ctx context.Context, kind contract.Kind, operation string, in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s input: %w", operation, err)
	}

	req := RequestPayload{
		SchemaVersion: SchemaVersion,
		CorrelationID: uuid.New().String(),
		ReplyTo:       g.replyTopic,
		Operation:     operation,
		Input:         raw,
	}

	resp, err := g.requestReply(ctx, []byte(operation), req)
	if err != nil {
		return err
	}
	if resp.Status == StatusError {
		if resp.Error == nil {
			return contract.NewError(contract.CodeInternal, "error reply without details")
		}
		return resp.Error
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", operation, err)
	}
	return nil
}

func (g *Gateway) requestReply(ctx context.Context, key []byte, req RequestPayload) (*ResponsePayload, error) {
	respChan := make(chan *ResponsePayload, 1)
	g.pendingResp.Store(req.CorrelationID, respChan)
	defer g.pendingResp.Delete(req.CorrelationID)

	payload, _ := json.Marshal(req)
	record := &kgo.Record{
		Topic: TopicRPCRequest,
		Key:   key,
		Value: payload,
	}

	if err := g.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return nil, err
	}

	timer := time.NewTimer(ReplyTimeout)
	defer timer.Stop()

	select {
	case resp := <-respChan:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, errors.New("timeout waiting for response")
	}
}

func (g *Gateway) HandleResponse(payload []byte) {
	var resp ResponsePayload
	if err := json.Unmarshal(payload, &resp); err != nil {
		glog.Warningf("Failed to decode response payload: %v", err)
		return
	}

	if ch, ok := g.pendingResp.Load(resp.CorrelationID); ok {
		select {
		case ch.(chan *ResponsePayload) <- &resp:
		default:
		}
		return
	}

	glog.V(1).Infof("No pending response for correlation ID %s", resp.CorrelationID)
}

// StartReplyPoller feeds records from the reply topic into g until the client closes.
func StartReplyPoller(ctx context.Context, client *kgo.Client, g *Gateway) {
	go func() {
		for {
			fetches := client.PollFetches(ctx)
			if fetches.IsClientClosed() || ctx.Err() != nil {
				return
			}
			iter := fetches.RecordIter()
			for !iter.Done() {
				g.HandleResponse(iter.Next().Value)
			}
		}
	}()
}
