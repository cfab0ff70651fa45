// Package scraper provides a rate-limited HTTP client for scraping the
// university news site.
package scraper

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/corpix/uarand"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/dhuhelper/dhu-portal-go/internal/config"
	apperrors "github.com/dhuhelper/dhu-portal-go/internal/errors"
	"github.com/dhuhelper/dhu-portal-go/internal/ratelimit"
)

// Client is an HTTP client for web scraping with rate limiting and retries
type Client struct {
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	maxRetries int
}

// NewClient creates a new scraper client. Requests are spaced by the
// shared scraper rate limit so the news site never sees bursts.
func NewClient(timeout time.Duration, maxRetries int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter:    ratelimit.New(1, 1/config.ScraperRateLimit.Seconds()),
		maxRetries: maxRetries,
	}
}

// Get performs a GET request with rate limiting and retries
// Caller is responsible for closing the response body
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	var resp *http.Response

	err := RetryWithBackoff(ctx, c.maxRetries, config.ScraperRetryInitial, func() error {
		// Wait for rate limiter
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		// Set random User-Agent
		req.Header.Set("User-Agent", uarand.GetRandom())
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en-US;q=0.8,en;q=0.7")
		req.Header.Set("Accept-Encoding", "gzip, deflate")

		resp, err = c.httpClient.Do(req)
		if err != nil {
			return apperrors.NewScraperError(url, 0, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// Close body for non-success responses since we won't return it
			_ = resp.Body.Close()

			statusErr := apperrors.NewScraperError(url, resp.StatusCode, errors.New("unexpected status"))
			switch resp.StatusCode {
			case http.StatusNotFound, http.StatusForbidden, http.StatusUnauthorized:
				// Client errors never succeed on retry
				return permanent(statusErr)
			default:
				return statusErr
			}
		}

		// Success - caller must close response body
		return nil
	})

	if err != nil {
		return nil, err
	}

	return resp, nil
}

// GetDocument performs a GET request and parses the response as HTML
func (c *Client) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	// Handle gzip encoding
	var reader io.Reader
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress gzip: %w", err)
		}
		defer func() { _ = gzipReader.Close() }()
		reader = gzipReader
	} else {
		reader = resp.Body
	}

	// Older pages on the news site still serve GBK
	contentType := strings.ToUpper(resp.Header.Get("Content-Type"))
	if strings.Contains(contentType, "GBK") || strings.Contains(contentType, "GB2312") {
		reader = transform.NewReader(reader, simplifiedchinese.GBK.NewDecoder())
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}
