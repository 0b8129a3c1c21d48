package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/pkg/logger"

	"github.com/rs/zerolog"
)

// notificationRetryIntervals are the waits between delivery attempts.
var notificationRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// Notification event types.
const (
	EventWageAdvanceUpdate    = "WAGE_ADVANCE_UPDATE"
	EventPaymentRequestUpdate = "PAYMENT_REQUEST_UPDATE"
	EventSwapIntentUpdate     = "SWAP_INTENT_UPDATE"
)

// SignatureHeader carries the SignWebhook value on outgoing notifications.
const SignatureHeader = "X-Engine-Signature"

// NotificationPayload is the JSON body sent to an enterprise webhook_url.
type NotificationPayload struct {
	EventType string           `json:"event_type"`
	Event     domain.SagaEvent `json:"event"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NotificationService implements ports.Notifier with HMAC-signed webhook
// deliveries retried in the background.
type NotificationService struct {
	policies   ports.PolicyStore
	sigSvc     ports.SignatureService
	httpClient HTTPClient
	secret     string
	retries    []time.Duration
	log        zerolog.Logger
}

// NewNotificationService creates a new notification service. maxRetries caps
// the number of redeliveries after the first attempt.
func NewNotificationService(
	policies ports.PolicyStore,
	sigSvc ports.SignatureService,
	httpClient HTTPClient,
	secret string,
	maxRetries int,
	log zerolog.Logger,
) *NotificationService {
	if maxRetries < 0 || maxRetries > len(notificationRetryIntervals) {
		maxRetries = len(notificationRetryIntervals)
	}
	return &NotificationService{
		policies:   policies,
		sigSvc:     sigSvc,
		httpClient: httpClient,
		secret:     secret,
		retries:    notificationRetryIntervals[:maxRetries],
		log:        logger.Component(log, "notifier"),
	}
}

// Notify looks up the enterprise webhook and delivers the event asynchronously.
// Enterprises without a webhook_url are skipped.
func (s *NotificationService) Notify(ctx context.Context, event domain.SagaEvent) error {
	policy, err := s.policies.GetPolicy(ctx, event.EnterpriseID)
	if err != nil {
		s.log.Error().Err(err).Str("enterprise_id", event.EnterpriseID.String()).Msg("notify: failed to fetch policy")
		return err
	}
	if policy == nil || policy.WebhookURL == "" {
		s.log.Debug().Str("enterprise_id", event.EnterpriseID.String()).Msg("notify: no webhook URL configured, skipping")
		return nil
	}

	body, err := json.Marshal(NotificationPayload{EventType: eventType(event.Parent.Kind), Event: event})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	go s.deliverWithRetries(policy.WebhookURL, body, event.Parent.String())
	return nil
}

func eventType(kind domain.ParentKind) string {
	switch kind {
	case domain.ParentPaymentRequest:
		return EventPaymentRequestUpdate
	case domain.ParentSwapIntent:
		return EventSwapIntentUpdate
	default:
		return EventWageAdvanceUpdate
	}
}

// deliverWithRetries posts body until a 2xx answer or the retries run out.
func (s *NotificationService) deliverWithRetries(url string, body []byte, parentRef string) {
	for attempt := 0; attempt <= len(s.retries); attempt++ {
		if attempt > 0 {
			time.Sleep(s.retries[attempt-1])
		}

		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			s.log.Error().Err(err).Str("parent_ref", parentRef).Msg("notify: invalid webhook url")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(SignatureHeader, s.sigSvc.SignWebhook(s.secret, time.Now().Unix(), body))

		resp, err := s.httpClient.Do(req)
		if err != nil {
			s.log.Warn().Err(err).Str("parent_ref", parentRef).Int("attempt", attempt+1).Msg("notify: delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			s.log.Info().Str("parent_ref", parentRef).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("notify: delivered")
			return
		}

		s.log.Warn().Str("parent_ref", parentRef).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("notify: non-2xx response, retrying")
	}

	s.log.Error().Str("parent_ref", parentRef).Msg("notify: all retry attempts exhausted")
}
