package notify

import "context"

// Run consumes the inbox and persists notifications until ctx is cancelled.
// Start exactly one worker per service; ordering within a user's inbox
// follows enqueue order because there is a single consumer.
func (s *Service) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case notification := <-s.inbox:
			deliverCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliverTimeout)
			s.deliver(deliverCtx, notification)
			cancel()
		}
	}
}

// Drain synchronously delivers everything currently queued. Tests use it to
// observe deliveries without racing the background worker.
func (s *Service) Drain(ctx context.Context) {
	for {
		select {
		case notification := <-s.inbox:
			s.deliver(ctx, notification)
		default:
			return
		}
	}
}
