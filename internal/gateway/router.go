package gateway

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/v3/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

const (
	handlerName        = "interactions"
	routerCloseTimeout = 10 * time.Second
)

// NewAMQPSubscriber creates a subscriber consuming a durable queue on the
// default exchange. The subscribed topic is the queue name.
func NewAMQPSubscriber(amqpURL string, logger watermill.LoggerAdapter) (*amqp.Subscriber, error) {
	sub, err := amqp.NewSubscriber(amqp.NewDurableQueueConfig(amqpURL), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create AMQP subscriber: %w", err)
	}

	return sub, nil
}

// NewRouter creates a router feeding every message of queue into adapter.
func NewRouter(sub message.Subscriber, queue string, adapter *Adapter, logger watermill.LoggerAdapter) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: routerCloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer)
	router.AddNoPublisherHandler(handlerName, queue, sub, adapter.HandleMessage)

	return router, nil
}
