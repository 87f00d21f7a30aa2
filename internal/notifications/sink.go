package notifications

import (
	"context"
	"fmt"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"

	"github.com/cargodesk/cargodesk-backend/pkg/logger"
)

const publishTimeout = 15 * time.Second

// publisher is the slice of the Pub/Sub publisher the sink needs.
type publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) result
}

type result interface {
	Get(ctx context.Context) (string, error)
}

// Sink delivers human-readable event lines to the back-office notification
// topic. Delivery is best effort: a publish failure is logged and dropped,
// never surfaced to the mutation that triggered it. A Sink built without a
// publisher (notifications disabled) silently discards every message.
type Sink struct {
	pub  publisher
	logg *logger.Logger
}

// New builds a sink over the given Pub/Sub publisher. A nil publisher
// disables delivery.
func New(pub *gcppubsub.Publisher, logg *logger.Logger) (*Sink, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	s := &Sink{logg: logg}
	if pub != nil {
		s.pub = gcpPublisher{pub: pub}
	}
	return s, nil
}

// Notify publishes one text message. Safe to call on a disabled sink.
func (s *Sink) Notify(ctx context.Context, message string) {
	if s == nil || message == "" {
		return
	}
	if s.pub == nil {
		s.logg.Debug(s.logg.WithField(ctx, "message", message), "notification publishing disabled, dropping")
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	res := s.pub.Publish(publishCtx, &gcppubsub.Message{Data: []byte(message)})
	if _, err := res.Get(publishCtx); err != nil {
		s.logg.Error(ctx, "publishing notification failed", err)
	}
}

type gcpPublisher struct {
	pub *gcppubsub.Publisher
}

func (p gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) result {
	return p.pub.Publish(ctx, msg)
}
