package rabbitmq

import (
	"context"
	"fmt"
	"secureauth/internal/core/domain/logging"
	"sync"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 3 * time.Second

// Connection is an amqp.Connection that redials itself after a broker-side close.
type Connection struct {
	conn *amqp.Connection
	lock sync.RWMutex
	url  string
	log  logging.Logger
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, fmt.Errorf("log argument must not be nil")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{conn: conn, url: url, log: log}
	go connection.watch(conn)
	return connection, nil
}

func (c *Connection) current() *amqp.Connection {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.conn
}

func (c *Connection) watch(conn *amqp.Connection) {
	reason, ok := <-conn.NotifyClose(make(chan *amqp.Error, 1))
	if !ok {
		c.log.Info(context.Background(), "RabbitMQ connection closed.")
		return
	}

	c.log.Warning(context.Background(), "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))
	for {
		time.Sleep(reconnectDelay)

		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Error(context.Background(), "RabbitMQ reconnect failed.", logging.Entry("err", err))
			continue
		}
		c.lock.Lock()
		c.conn = conn
		c.lock.Unlock()
		c.log.Info(context.Background(), "RabbitMQ reconnect success.")
		go c.watch(conn)
		return
	}
}

func (c *Connection) Close() error {
	return c.current().Close()
}

// Channel opens a channel that is recreated whenever the broker closes it.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.current().Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{ch: ch, conn: c, log: c.log}
	go channel.watch(ch)
	return channel, nil
}

type Channel struct {
	ch     *amqp.Channel
	lock   sync.RWMutex
	conn   *Connection
	closed int32
	log    logging.Logger
}

func (ch *Channel) current() *amqp.Channel {
	ch.lock.RLock()
	defer ch.lock.RUnlock()
	return ch.ch
}

func (ch *Channel) watch(amqpCh *amqp.Channel) {
	reason, ok := <-amqpCh.NotifyClose(make(chan *amqp.Error, 1))
	if !ok || ch.IsClosed() {
		return
	}

	ch.log.Warning(context.Background(), "RabbitMQ channel closed.", logging.Entry("reason", reason.Error()))
	for {
		time.Sleep(reconnectDelay)
		if ch.IsClosed() {
			return
		}

		newCh, err := ch.conn.current().Channel()
		if err != nil {
			ch.log.Error(context.Background(), "Channel recreate failed.", logging.Entry("err", err))
			continue
		}
		ch.lock.Lock()
		ch.ch = newCh
		ch.lock.Unlock()
		ch.log.Info(context.Background(), "Channel recreate success.")
		go ch.watch(newCh)
		return
	}
}

// IsClosed reports whether Close has been called.
func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if !atomic.CompareAndSwapInt32(&ch.closed, 0, 1) {
		return amqp.ErrClosed
	}
	return ch.current().Close()
}

// DeclareQueue declares a durable queue bound to the default exchange.
func (ch *Channel) DeclareQueue(name string) error {
	_, err := ch.current().QueueDeclare(name, true, false, false, false, nil)
	return err
}

func (ch *Channel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	return ch.current().PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}
