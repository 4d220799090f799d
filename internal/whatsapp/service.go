package whatsapp

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/orderhub/orderhub-backend/pkg/config"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
	"github.com/orderhub/orderhub-backend/pkg/logger"
	"github.com/orderhub/orderhub-backend/pkg/metrics"
)

// Service sends WhatsApp batches either synchronously or through a bounded
// background queue.
type Service interface {
	SendBatch(ctx context.Context, messages []Message) error
	EnqueueBatch(ctx context.Context, messages []Message) error
	Start(ctx context.Context)
	Close()
}

type messageSender interface {
	Send(ctx context.Context, msg Message) error
}

type service struct {
	sender  messageSender
	logg    *logger.Logger
	metrics *metrics.MessagingMetrics
	cfg     config.WhatsAppConfig

	queue     chan []Message
	wg        sync.WaitGroup
	closeOnce sync.Once

	// Injectable for tests.
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func(min, max int) time.Duration
}

// NewService builds the WhatsApp batch service.
func NewService(sender messageSender, logg *logger.Logger, msgMetrics *metrics.MessagingMetrics, cfg config.WhatsAppConfig) (Service, error) {
	if sender == nil {
		return nil, fmt.Errorf("message sender required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if msgMetrics == nil {
		return nil, fmt.Errorf("messaging metrics required")
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}

	return &service{
		sender:  sender,
		logg:    logg,
		metrics: msgMetrics,
		cfg:     cfg,
		queue:   make(chan []Message, queueSize),
		sleep:   sleepContext,
		jitter:  jitterBetween,
	}, nil
}

// SendBatch delivers every message in order, pausing a randomized cooldown
// between sends so the provider does not flag the instance. Failures do not
// stop the batch; the combined error reports every failed message.
func (s *service) SendBatch(ctx context.Context, messages []Message) error {
	if len(messages) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "batch has no messages")
	}

	var errs []error
	for i, msg := range messages {
		if i > 0 {
			if err := s.sleep(ctx, s.cooldown()); err != nil {
				errs = append(errs, err)
				break
			}
		}
		if err := s.sendWithRetry(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("message to %s: %w", msg.Number, err))
		}
	}
	return multierr.Combine(errs...)
}

// EnqueueBatch hands the batch to the background worker without blocking.
func (s *service) EnqueueBatch(ctx context.Context, messages []Message) error {
	if len(messages) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "batch has no messages")
	}
	select {
	case s.queue <- messages:
		s.logg.Info(s.logg.WithField(ctx, "batch_size", len(messages)), "whatsapp batch enqueued")
		return nil
	default:
		return pkgerrors.New(pkgerrors.CodeRateLimit, "whatsapp queue is full")
	}
}

// Start launches the background worker. It drains the queue until Close is
// called, then exits.
func (s *service) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for batch := range s.queue {
			if err := s.SendBatch(ctx, batch); err != nil {
				s.logg.Error(ctx, "whatsapp batch dispatch failed", err)
			}
		}
	}()
}

// Close stops accepting batches and waits for the worker to drain the queue.
func (s *service) Close() {
	s.closeOnce.Do(func() { close(s.queue) })
	s.wg.Wait()
}

func (s *service) sendWithRetry(ctx context.Context, msg Message) error {
	attempts := s.cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	kind := msg.Kind()
	start := time.Now()

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = s.sender.Send(ctx, msg)
		if err == nil {
			break
		}
		if attempt < attempts {
			s.metrics.IncRetry(kind)
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"attempt": attempt,
				"kind":    kind,
			}), "whatsapp send failed, retrying")
			if sleepErr := s.sleep(ctx, s.cfg.RetryWaitOrDefault()); sleepErr != nil {
				err = sleepErr
				break
			}
		}
	}

	s.metrics.ObserveDuration(kind, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(kind)
		return err
	}
	s.metrics.IncSuccess(kind)
	return nil
}

func (s *service) cooldown() time.Duration {
	min := s.cfg.MinCooldownMS
	max := s.cfg.MaxCooldownMS
	if min <= 0 {
		min = 800
	}
	if max < min {
		max = min
	}
	return s.jitter(min, max)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func jitterBetween(min, max int) time.Duration {
	if max <= min {
		return time.Duration(min) * time.Millisecond
	}
	return time.Duration(min+rand.Intn(max-min+1)) * time.Millisecond
}
