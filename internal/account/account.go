// Package account talks to the account collaborators that sit around
// enrollment: the read-only announcement feed and account deletion.
package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"github.com/conn-castle/pinset/internal/messages"
)

// ErrFeedNotConfigured is returned when no announcement URL is set.
var ErrFeedNotConfigured = errors.New(messages.AccountFeedNotConfigured)

var tracer = otel.Tracer("github.com/conn-castle/pinset/internal/account")

var retryDelay = 250 * time.Millisecond

const fetchRetryCount = 1

// Announcement is one entry of the feed.
type Announcement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// LocalCredential is the part of a credential store account deletion needs.
type LocalCredential interface {
	Delete(ctx context.Context) error
}

// Client reads the announcement feed and deletes accounts.
type Client struct {
	url   string
	http  *http.Client
	local LocalCredential
}

// New builds a Client. An empty url leaves the feed unconfigured.
func New(url string, timeout time.Duration, local LocalCredential) *Client {
	return &Client{
		url:   strings.TrimSpace(url),
		http:  &http.Client{Timeout: timeout},
		local: local,
	}
}

// ListAnnouncements fetches the feed. A 5xx response or network error is
// retried once.
func (c *Client) ListAnnouncements(ctx context.Context) ([]Announcement, error) {
	if c.url == "" {
		return nil, ErrFeedNotConfigured
	}
	ctx, span := tracer.Start(ctx, "account.list_announcements")
	defer span.End()

	items, err := c.fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("announcements.count", len(items)))
	return items, nil
}

func (c *Client) fetch(ctx context.Context) ([]Announcement, error) {
	for attempt := 0; attempt <= fetchRetryCount; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return nil, fmt.Errorf(messages.AccountCreateRequestErrFmt, err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "pinset")
		otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

		resp, err := c.http.Do(req)
		if err != nil {
			if shouldRetry(err, 0, attempt) {
				time.Sleep(retryDelay)
				continue
			}
			return nil, fmt.Errorf(messages.AccountFetchErrFmt, err)
		}

		if resp.StatusCode != http.StatusOK {
			status := resp.StatusCode
			statusText := resp.Status
			_ = resp.Body.Close()
			if shouldRetry(nil, status, attempt) {
				time.Sleep(retryDelay)
				continue
			}
			return nil, fmt.Errorf(messages.AccountFetchStatusFmt, statusText)
		}

		var items []Announcement
		err = json.NewDecoder(resp.Body).Decode(&items)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf(messages.AccountDecodeErrFmt, err)
		}
		if items == nil {
			items = []Announcement{}
		}
		return items, nil
	}
	return nil, fmt.Errorf(messages.AccountFetchErrFmt, errors.New(messages.AccountRetryBudgetExhausted))
}

func shouldRetry(err error, statusCode int, attempt int) bool {
	if attempt >= fetchRetryCount {
		return false
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		var netErr net.Error
		return errors.As(err, &netErr)
	}
	return statusCode >= 500 && statusCode <= 599
}

// DeleteAccount removes the local credential record. There is no remote
// account service yet, so local deletion is the whole operation.
func (c *Client) DeleteAccount(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "account.delete")
	defer span.End()

	if err := c.local.Delete(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf(messages.AccountDeleteLocalErrFmt, err)
	}
	return nil
}
