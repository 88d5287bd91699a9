package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/verdemed/go-vmp/pkg/circuitbreaker"
)

// Deliverer posts status-change events to webhook endpoints. Each endpoint
// gets its own circuit breaker so one dead endpoint cannot stall the rest.
type Deliverer struct {
	client    *http.Client
	breakers  *circuitbreaker.Manager
	delivered *prometheus.CounterVec
	logger    *zap.Logger
}

// NewDeliverer creates a deliverer. delivered may be nil.
func NewDeliverer(breakers *circuitbreaker.Manager, delivered *prometheus.CounterVec, logger *zap.Logger) *Deliverer {
	return &Deliverer{
		client:    &http.Client{Timeout: 10 * time.Second},
		breakers:  breakers,
		delivered: delivered,
		logger:    logger,
	}
}

// Deliver posts the event payload to the subscription endpoint. The body is
// signed with HMAC-SHA256 over the subscription secret.
func (d *Deliverer) Deliver(ctx context.Context, sub *Subscription, payload []byte) error {
	cb, err := d.breakers.GetOrCreate(sub.URL, circuitbreaker.DefaultConfig(sub.URL))
	if err != nil {
		return err
	}

	_, err = cb.Execute(ctx, func() (interface{}, error) {
		return nil, d.post(ctx, sub, payload)
	})
	if err != nil {
		d.count("failed")
		d.logger.Error("webhook delivery failed",
			zap.String("subscription_id", sub.ID),
			zap.String("url", sub.URL),
			zap.Error(err),
		)
		return err
	}

	d.count("delivered")
	d.logger.Info("webhook delivered",
		zap.String("subscription_id", sub.ID),
		zap.String("url", sub.URL),
	)
	return nil
}

func (d *Deliverer) post(ctx context.Context, sub *Subscription, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Signature", Sign(sub.Secret, payload))

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= 300 {
		return fmt.Errorf("endpoint returned %d", resp.StatusCode)
	}
	return nil
}

func (d *Deliverer) count(result string) {
	if d.delivered != nil {
		d.delivered.WithLabelValues(result).Inc()
	}
}

// Sign computes the hex HMAC-SHA256 signature of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether sig is a valid signature for body.
func VerifySignature(secret string, body []byte, sig string) bool {
	return hmac.Equal([]byte(Sign(secret, body)), []byte(sig))
}
