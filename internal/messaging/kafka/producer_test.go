package kafka

import (
	"testing"

	"github.com/IBM/sarama"
)

func TestProducerConfig(t *testing.T) {
	config := producerConfig()

	if config.ClientID != producerClientID {
		t.Errorf("client id = %q, want %q", config.ClientID, producerClientID)
	}
	if config.Producer.RequiredAcks != sarama.WaitForAll {
		t.Errorf("required acks = %v, want WaitForAll", config.Producer.RequiredAcks)
	}
	if !config.Producer.Idempotent {
		t.Error("producer must be idempotent")
	}
	if config.Net.MaxOpenRequests != 1 {
		t.Errorf("max open requests = %d, want 1 for idempotence", config.Net.MaxOpenRequests)
	}
	if config.Producer.Compression != sarama.CompressionSnappy {
		t.Errorf("compression = %v, want snappy", config.Producer.Compression)
	}
	if !config.Producer.Return.Successes {
		t.Error("sync producer requires Return.Successes")
	}
	if err := config.Validate(); err != nil {
		t.Fatalf("config does not validate: %v", err)
	}
}
