// internal/ledger/client.go
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/resona/resona-api/internal/config"
)

const (
	callPath   = "/api/v1/call/"
	statusPath = "/api/v1/status"
)

// Client is the typed gateway to the remote ledger. Every backend capability
// has one method; all of them take the caller session explicitly.
type Client struct {
	http   *resty.Client
	policy NumericPolicy
	state  atomic.Int32
	log    *logrus.Entry
}

type envelope struct {
	OK  json.RawMessage `json:"ok"`
	Err *string         `json:"err"`
}

func NewClient(cfg config.LedgerConfig) (*Client, error) {
	policy, err := ParseNumericPolicy(cfg.NumericPolicy)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.RequestTimeout()).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetDebug(cfg.Debug)

	c := &Client{
		http:   httpClient,
		policy: policy,
		log:    logrus.WithField("component", "ledger"),
	}
	c.state.Store(int32(StateDisconnected))
	return c, nil
}

func (c *Client) State() ConnectionState {
	return ConnectionState(c.state.Load())
}

func (c *Client) Policy() NumericPolicy {
	return c.policy
}

func (c *Client) setState(s ConnectionState) {
	old := ConnectionState(c.state.Swap(int32(s)))
	if old != s {
		c.log.WithFields(logrus.Fields{"from": old.String(), "to": s.String()}).Info("Ledger connection state changed")
	}
}

// Connect probes the ledger status endpoint and records the outcome.
func (c *Client) Connect(ctx context.Context) error {
	c.setState(StateConnecting)

	resp, err := c.http.R().SetContext(ctx).Get(statusPath)
	if err != nil {
		c.setState(StateUnavailable)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		c.setState(StateUnavailable)
		return fmt.Errorf("%w: status endpoint returned %d", ErrUnavailable, resp.StatusCode())
	}

	c.setState(StateConnected)
	return nil
}

// Watch re-probes the ledger every interval while it is not connected.
func (c *Client) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.State() == StateConnected {
				continue
			}
			if err := c.Connect(ctx); err != nil {
				c.log.WithError(err).Debug("Ledger still unavailable")
			}
		}
	}
}

func (c *Client) decoder() *decoder {
	return &decoder{policy: c.policy}
}

// call invokes a ledger method and decodes its result into out when out is non-nil.
func (c *Client) call(ctx context.Context, s Session, method string, out interface{}, args ...interface{}) error {
	if c.State() != StateConnected {
		return ErrUnavailable
	}
	if args == nil {
		args = []interface{}{}
	}

	start := time.Now()
	var env envelope
	req := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"args": args}).
		SetResult(&env).
		SetError(&env)
	if !s.IsAnonymous() {
		req.SetAuthToken(s.Token)
	}

	resp, err := req.Post(callPath + method)
	fields := logrus.Fields{
		"method":    method,
		"principal": s.Principal,
		"duration":  time.Since(start).Milliseconds(),
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		c.setState(StateUnavailable)
		c.log.WithFields(fields).WithError(err).Warn("Ledger call failed")
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, method, err)
	}

	switch resp.StatusCode() {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		c.setState(StateUnavailable)
		c.log.WithFields(fields).Warn("Ledger gateway unavailable")
		return fmt.Errorf("%w: %s returned %d", ErrUnavailable, method, resp.StatusCode())
	}

	if resp.IsError() || env.Err != nil {
		remote := &RemoteError{Method: method, StatusCode: resp.StatusCode()}
		if env.Err != nil {
			remote.Message = *env.Err
		}
		c.log.WithFields(fields).WithField("error", remote.Message).Warn("Ledger rejected call")
		return remote
	}

	c.log.WithFields(fields).Debug("Ledger call completed")

	if out == nil || len(env.OK) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.OK, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}
