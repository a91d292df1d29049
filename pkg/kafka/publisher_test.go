package kafka

import (
	"context"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/sponsornet/backend/pkg/pubsub"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		require.JSONEq(t, `{"totalProcessed":4}`, string(val))
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := &publisher{clientID: "test", producer: producer}
	pack, err := pubsub.NewPack("2024-01-02", map[string]int{"totalProcessed": 4})
	require.NoError(t, err)
	require.Equal(t, "2024-01-02", string(pack.Key))

	require.NoError(t, p.Publish(context.Background(), "commission.daily_settled", pack))
	require.ErrorIs(t, p.Publish(context.Background(), "commission.daily_settled", pack), sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}
