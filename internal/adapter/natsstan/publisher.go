package natsstan

import (
	"context"
	"encoding/json"

	stan "github.com/nats-io/stan.go"

	"github.com/example/inventory-order-service/internal/domain"
)

// Publisher announces committed orders on a NATS Streaming subject.
type Publisher struct {
	sc      stan.Conn
	subject string
}

func NewPublisher(clusterID, clientID, url, subject string) (*Publisher, error) {
	sc, err := stan.Connect(clusterID, clientID, stan.NatsURL(url))
	if err != nil {
		return nil, err
	}
	return &Publisher{sc: sc, subject: subject}, nil
}

func (p *Publisher) OrderPlaced(_ context.Context, o domain.Order) error {
	b, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return p.sc.Publish(p.subject, b)
}

func (p *Publisher) Close() error {
	return p.sc.Close()
}

var _ domain.OrderEventPublisher = (*Publisher)(nil)
