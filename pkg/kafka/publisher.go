package kafka

import (
	"context"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/sponsornet/backend/pkg/pubsub"
	"github.com/sponsornet/backend/pkg/xcontext"
)

type publisher struct {
	clientID string
	producer sarama.SyncProducer
}

// NewPublisher connects a synchronous producer to the brokers. Packs with the
// same key are sent to the same partition, so they are consumed in order.
func NewPublisher(clientID string, brokerAddrs []string) (*publisher, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(brokerAddrs, cfg)
	if err != nil {
		return nil, err
	}

	return &publisher{clientID: clientID, producer: producer}, nil
}

func (p *publisher) Close() error {
	return p.producer.Close()
}

func (p *publisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.ByteEncoder(pack.Key),
		Value: sarama.ByteEncoder(pack.Msg),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("cannot send message to %s: %w", topic, err)
	}

	xcontext.Logger(ctx).Debugf("Published %s (%s) to partition %d at offset %d",
		topic, pack.Key, partition, offset)
	return nil
}
