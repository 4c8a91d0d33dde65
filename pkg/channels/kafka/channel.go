// Package kafka provides the Kafka-backed event channel for deployments with
// a broker available. All workflow lifecycle events flow over the single
// events.Topic, so one publisher/subscriber pair per service is enough.
package kafka

import (
	"errors"
	"os"
	"strings"

	"github.com/IBM/sarama"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
)

// brokersEnv lists the Kafka brokers as a comma-separated string.
const brokersEnv = "CASEFLOW_KAFKA_BROKERS"

// CreateChannel creates a Kafka publisher and subscriber from the
// CASEFLOW_KAFKA_BROKERS environment variable. Consumer group and client id
// are derived from serviceName so the api, editor tooling and future workers
// keep independent offsets while staying identifiable in broker logs.
func CreateChannel(logger watermill.LoggerAdapter, serviceName string) (*kafka.Publisher, *kafka.Subscriber, error) {
	brokers := strings.Split(os.Getenv(brokersEnv), ",")
	if len(brokers) == 0 || brokers[0] == "" {
		return nil, nil, errors.New(brokersEnv + " environment variable is not set or empty")
	}

	clientID := "caseflow-" + serviceName

	saramaSubscriberConfig := kafka.DefaultSaramaSubscriberConfig()
	saramaSubscriberConfig.ClientID = clientID
	// Lifecycle events double as an audit trail, so new groups replay from
	// the beginning instead of only tailing.
	saramaSubscriberConfig.Consumer.Offsets.Initial = sarama.OffsetOldest

	subscriber, err := kafka.NewSubscriber(
		kafka.SubscriberConfig{
			Brokers:               brokers,
			Unmarshaler:           kafka.DefaultMarshaler{},
			OverwriteSaramaConfig: saramaSubscriberConfig,
			ConsumerGroup:         clientID,
			OTELEnabled:           true,
		},
		logger,
	)
	if err != nil {
		return nil, nil, err
	}

	saramaPublisherConfig := sarama.NewConfig()
	saramaPublisherConfig.ClientID = clientID
	saramaPublisherConfig.Producer.Return.Successes = true

	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:               brokers,
			Marshaler:             kafka.DefaultMarshaler{},
			OverwriteSaramaConfig: saramaPublisherConfig,
			OTELEnabled:           true,
		},
		logger,
	)
	if err != nil {
		return nil, nil, err
	}

	return publisher, subscriber, nil
}
