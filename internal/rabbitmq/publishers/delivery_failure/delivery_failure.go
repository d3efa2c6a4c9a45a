package deliveryfailure

import (
	"context"
	"secureauth/internal/core/domain/account"
	e "secureauth/internal/core/domain/errors"
	"secureauth/internal/core/domain/logging"
	"secureauth/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) error
}

// RabbitMQ publishes delivery failures to a queue through the default exchange.
type RabbitMQ struct {
	log     logging.Logger
	channel publisher
	queue   string
}

func NewRabbitMQ(log logging.Logger, channel publisher, queue string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	return &RabbitMQ{log: log, channel: channel, queue: queue}
}

func (p *RabbitMQ) AlertDeliveryFailure(ctx context.Context, failure account.DeliveryFailure) error {
	message := schema.DeliveryFailure{
		AccountID: string(failure.AccountID),
		Email:     string(failure.Email),
		Workflow:  failure.Kind.String(),
		Reason:    failure.Reason,
		At:        failure.At,
	}
	body, err := message.Marshal()
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    failure.At,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, p.log, err, logging.Entry("queue", p.queue))
		return err
	}
	p.log.Info(
		ctx,
		"Delivery failure has been published.",
		logging.Entry("queue", p.queue),
		logging.Entry("accountID", failure.AccountID),
	)
	return nil
}
