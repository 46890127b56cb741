package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/binfs/binfs/config"
	"github.com/binfs/binfs/version"
)

// JSONBin is a document kept in an HTTP bin.
type JSONBin struct {
	url    string
	client *resty.Client
}

// NewJSONBin returns a store for cfg.BinURL authenticated with the
// configured keys.
func NewJSONBin(cfg *config.Config) *JSONBin {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.Retries
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := resty.NewWithClient(retryClient.StandardClient()).
		SetTimeout(cfg.Timeout.Duration).
		SetHeader("User-Agent", version.UserAgent()).
		SetHeader("X-Master-Key", cfg.MasterKey).
		SetHeader("X-Bin-Meta", "false")
	if cfg.AccessKey != "" {
		client.SetHeader("X-Access-Key", cfg.AccessKey)
	}

	return &JSONBin{url: cfg.BinURL, client: client}
}

func (j *JSONBin) Name() string {
	return j.url
}

// Fetch downloads the bin content.
func (j *JSONBin) Fetch(ctx context.Context) ([]byte, error) {
	resp, err := j.request(ctx).Get(j.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", j.url, err)
	}
	if resp.IsError() {
		return nil, statusError("GET", j.url, resp)
	}
	return resp.Body(), nil
}

// Push replaces the bin content with blob.
func (j *JSONBin) Push(ctx context.Context, blob []byte) error {
	resp, err := j.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(blob).
		Put(j.url)
	if err != nil {
		return fmt.Errorf("failed to push %s: %w", j.url, err)
	}
	if resp.IsError() {
		return statusError("PUT", j.url, resp)
	}
	return nil
}

func (j *JSONBin) request(ctx context.Context) *resty.Request {
	return j.client.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", uuid.NewString())
}

func statusError(method, url string, resp *resty.Response) error {
	body := strings.TrimSpace(resp.String())
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Errorf("%w: %s %s: %s: %s", ErrStatus, method, url, resp.Status(), body)
}
