// Package restapi implements source.Source against the stock HTTP service:
//
//	GET    {base}/stock
//	PUT    {base}/stock/update/{id}
//	DELETE {base}/stock/delete/{id}
package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/JonMunkholm/stockview/internal/config"
	"github.com/JonMunkholm/stockview/internal/source"
	"github.com/JonMunkholm/stockview/internal/stock"
)

// maxErrorBody caps how much of an error response is kept in StatusError.
const maxErrorBody = 512

// Client is a resty-backed implementation of source.Source.
type Client struct {
	http *resty.Client
}

var _ source.Source = (*Client)(nil)

// NewClient builds a client for the stock service described by cfg.
func NewClient(cfg config.SourceConfig) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.APIURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	return &Client{http: c}
}

// FetchAll returns every record the service lists.
func (c *Client) FetchAll(ctx context.Context) ([]stock.Record, error) {
	var records []stock.Record

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&records).
		ForceContentType("application/json").
		Get("/stock")
	if err != nil {
		return nil, fmt.Errorf("fetch stock: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, statusError("fetch stock", resp)
	}
	return records, nil
}

// Update sends the payload for record id. Any 2xx is success.
func (c *Client) Update(ctx context.Context, id stock.ID, payload stock.Payload) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Put("/stock/update/" + url.PathEscape(id.String()))
	if err != nil {
		return fmt.Errorf("update stock %s: %w", id, err)
	}
	if !resp.IsSuccess() {
		return statusError("update stock "+id.String(), resp)
	}
	return nil
}

// Delete removes record id. Only 200 OK is success.
func (c *Client) Delete(ctx context.Context, id stock.ID) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/stock/delete/" + url.PathEscape(id.String()))
	if err != nil {
		return fmt.Errorf("delete stock %s: %w", id, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return statusError("delete stock "+id.String(), resp)
	}
	return nil
}

// Ping checks that the service answers at all. Used by the health check.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).Head("/stock")
	if err != nil {
		return fmt.Errorf("ping stock service: %w", err)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return statusError("ping stock service", resp)
	}
	return nil
}

func statusError(op string, resp *resty.Response) error {
	body := strings.TrimSpace(resp.String())
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &source.StatusError{Op: op, Status: resp.StatusCode(), Body: body}
}
