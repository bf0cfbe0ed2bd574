package event

import (
	"encoding/json"
	"log"
	"time"

	"github.com/streadway/amqp"
)

// Routing keys published by the service.
const (
	AttemptRecorded   = "vocab.attempt.recorded"
	WordMastered      = "vocab.word.mastered"
	ProgressReset     = "vocab.progress.reset"
	WrongWordResolved = "vocab.wrongword.resolved"
	DictImported      = "vocab.dict.imported"
	UserRegistered    = "vocab.user.registered"
)

// Publisher sends domain events to a RabbitMQ topic exchange. A nil
// Publisher is safe to call and drops everything, so wiring stays simple
// when the broker is not configured.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewPublisher(amqpURL, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends one event with the routing key as its type. Errors are
// logged, not returned: event delivery is best-effort and never fails a
// request.
func (p *Publisher) Publish(routingKey string, payload interface{}) {
	if p == nil {
		return
	}
	event := map[string]interface{}{
		"type":      routingKey,
		"payload":   payload,
		"timestamp": time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("[EVENT] marshal %s: %v", routingKey, err)
		return
	}
	err = p.channel.Publish(p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		log.Printf("[EVENT] publish %s: %v", routingKey, err)
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
