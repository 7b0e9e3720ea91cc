// Package mailer renders and delivers the application confirmation email.
package mailer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	// Load timezone data so EMAIL_TIMEZONE resolves on minimal images
	_ "time/tzdata"

	"standards-board-backend/internal/metrics"
)

// ErrNotConfigured is returned by DisabledSender
var ErrNotConfigured = errors.New("email transport is not configured")

// Message is a rendered email ready for a transport
type Message struct {
	From    string
	To      []string
	Cc      []string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a single message. Implementations make exactly one attempt.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender
type SenderFunc func(ctx context.Context, msg Message) error

// Send calls f
func (f SenderFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// DisabledSender fails every delivery. Used when no SMTP credentials are configured.
type DisabledSender struct{}

// Send always returns ErrNotConfigured
func (DisabledSender) Send(context.Context, Message) error {
	return ErrNotConfigured
}

// ConfirmationParams holds what the confirmation email needs to know about an application
type ConfirmationParams struct {
	To            string
	Name          string
	Positions     []string
	ApplicationID string
	SubmittedAt   time.Time
}

// Result is the outcome of a dispatch. Error is empty on success.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Options configure the Dispatcher
type Options struct {
	From         string
	CC           string
	SupportEmail string
	// MaxAttempts bounds the number of transport attempts per dispatch
	MaxAttempts int
	// BackoffBase is the delay after the first failure; each later delay doubles
	BackoffBase time.Duration
	Location    *time.Location
}

const maxBackoffInterval = time.Minute

// MaxDispatchDuration is the longest SendConfirmation can run when every attempt
// uses up attemptTimeout.
func MaxDispatchDuration(maxAttempts int, backoffBase, attemptTimeout time.Duration) time.Duration {
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	total := time.Duration(maxAttempts) * attemptTimeout
	delay := backoffBase
	for i := 1; i < maxAttempts; i++ {
		total += min(delay, maxBackoffInterval)
		delay *= 2
	}
	return total
}

// Dispatcher sends confirmation emails with bounded exponential retry
type Dispatcher struct {
	sender Sender
	opts   Options
	log    *slog.Logger
}

// NewDispatcher builds a dispatcher around sender. MaxAttempts below 1 falls back to 3
// and a negative BackoffBase to 2s.
func NewDispatcher(sender Sender, opts Options, log *slog.Logger) *Dispatcher {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 3
	}
	if opts.BackoffBase < 0 {
		opts.BackoffBase = 2 * time.Second
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{sender: sender, opts: opts, log: log}
}

// Compose renders the confirmation message for p
func (d *Dispatcher) Compose(p ConfirmationParams) (Message, error) {
	html, text, err := render(p, d.opts.SupportEmail, d.opts.Location)
	if err != nil {
		return Message{}, err
	}

	msg := Message{
		From:    d.opts.From,
		To:      []string{p.To},
		Subject: Subject,
		Text:    text,
		HTML:    html,
	}
	if cc := strings.TrimSpace(d.opts.CC); cc != "" {
		msg.Cc = []string{cc}
	}
	return msg, nil
}

// SendConfirmation renders and delivers the confirmation email, retrying transport failures.
// It never returns an error; failures are reported in Result.
func (d *Dispatcher) SendConfirmation(ctx context.Context, p ConfirmationParams) Result {
	log := d.log.With(slog.String("application_id", p.ApplicationID))

	msg, err := d.Compose(p)
	if err != nil {
		log.Error("failed to render confirmation email", slog.String("error", err.Error()))
		metrics.EmailDispatches.WithLabelValues(metrics.OutcomeFailure).Inc()
		return Result{Success: false, Error: err.Error()}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = d.opts.BackoffBase
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = maxBackoffInterval

	attempt := 0
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		metrics.EmailAttempts.Inc()
		err := d.sender.Send(ctx, msg)
		if errors.Is(err, ErrNotConfigured) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(d.opts.MaxAttempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn("email attempt failed",
				slog.Int("attempt", attempt),
				slog.Duration("retry_in", next),
				slog.String("error", err.Error()))
		}),
	)
	if err != nil {
		log.Error("all email attempts failed", slog.Int("attempts", attempt), slog.String("error", err.Error()))
		metrics.EmailDispatches.WithLabelValues(metrics.OutcomeFailure).Inc()
		return Result{Success: false, Error: errorMessage(err)}
	}

	log.Info("confirmation email sent", slog.Int("attempts", attempt))
	metrics.EmailDispatches.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return Result{Success: true}
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Failed to send email after multiple attempts"
}
