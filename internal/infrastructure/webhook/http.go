package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/verigate/internal/application/ports"
)

// Headers sent with every audit delivery.
const (
	HeaderEvent     = "X-Verigate-Event"
	HeaderDelivery  = "X-Verigate-Delivery"
	HeaderTimestamp = "X-Verigate-Timestamp"
	HeaderSignature = "X-Verigate-Signature"
)

// HTTPEmitter POSTs audit events as JSON. When a signing secret is set, each delivery
// carries HeaderSignature = "sha256=" + hex(HMAC-SHA256(secret, timestamp + "." + body)).
type HTTPEmitter struct {
	client  *http.Client
	url     string
	secret  []byte
	headers map[string]string
	now     func() time.Time
}

// HTTPEmitterOption configures HTTPEmitter.
type HTTPEmitterOption func(*HTTPEmitter)

// WithClient sets the HTTP client (default: 10s timeout).
func WithClient(c *http.Client) HTTPEmitterOption {
	return func(e *HTTPEmitter) {
		e.client = c
	}
}

// WithSigningSecret enables HMAC signing of deliveries.
func WithSigningSecret(secret string) HTTPEmitterOption {
	return func(e *HTTPEmitter) {
		e.secret = []byte(secret)
	}
}

// WithHeader sets a static header sent on every request.
func WithHeader(key, value string) HTTPEmitterOption {
	return func(e *HTTPEmitter) {
		if e.headers == nil {
			e.headers = make(map[string]string)
		}
		e.headers[key] = value
	}
}

func NewHTTPEmitter(url string, opts ...HTTPEmitterOption) *HTTPEmitter {
	e := &HTTPEmitter{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    url,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit delivers one audit event. Any non-2xx answer is an error so the queue retries it.
func (e *HTTPEmitter) Emit(ctx context.Context, event ports.AuditEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	for k, v := range e.headers {
		req.Header.Set(k, v)
	}
	ts := strconv.FormatInt(e.now().Unix(), 10)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEvent, event.Event)
	req.Header.Set(HeaderDelivery, uuid.NewString())
	req.Header.Set(HeaderTimestamp, ts)
	if len(e.secret) > 0 {
		req.Header.Set(HeaderSignature, Sign(e.secret, ts, body))
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver %s: %w", event.Event, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &deliveryError{event: event.Event, status: resp.StatusCode}
	}
	return nil
}

// Sign returns the signature header value for a delivery. Receivers recompute it to
// authenticate the sender.
func Sign(secret []byte, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

type deliveryError struct {
	event  string
	status int
}

func (e *deliveryError) Error() string {
	return fmt.Sprintf("deliver %s: endpoint returned status %d", e.event, e.status)
}

var _ ports.WebhookEmitter = (*HTTPEmitter)(nil)
