package kafka

import (
	"context"
	"fmt"
	"strings"

	"github.com/azizikri/edulearn/internal/config"
	"github.com/golang/glog"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

func EnsureTopics(ctx context.Context, client *kgo.Client, cfg *config.Config) error {
	adm := kadm.NewClient(client)

	topics := []string{
		TopicRPCRequest,
		TopicRPCRequest + TopicDLQSuffix,
		ReplyTopic(cfg.KafkaInstanceID),
	}

	partitions := cfg.TopicPartitions()
	replicationFactor := cfg.ReplicationFactor()

	for _, topic := range topics {
		p := partitions
		if strings.HasSuffix(topic, TopicDLQSuffix) || strings.HasPrefix(topic, TopicReplyPrefix) {
			p = 1
		}

		resp, err := adm.CreateTopics(ctx, int32(p), replicationFactor, nil, topic)
		if err != nil {
			return fmt.Errorf("failed to create topic %s: %w", topic, err)
		}
		for _, detail := range resp {
			if detail.Err != nil && !strings.Contains(detail.Err.Error(), "already exists") {
				return fmt.Errorf("failed to create topic %s: %w", detail.Topic, detail.Err)
			}
		}
	}

	glog.Info("All topics ensured")
	return nil
}
