//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=lifecycle_test
package lifecycle

import (
	"context"

	"github.com/IBM/sarama"
)

type producer interface {
	SendMessages(msgs []*sarama.ProducerMessage) error
}

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
