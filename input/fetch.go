package input

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/ArnaudCalmettes/dotscreen/imp"
)

// MaxImageSize is the default download limit of a Fetcher.
const MaxImageSize = 16 << 20

// ErrTooLarge is returned when a download exceeds MaxImageSize.
var ErrTooLarge = errors.New("image too large")

// Fetcher downloads images over HTTP, retrying transient failures.
type Fetcher struct {
	Client   *http.Client
	Attempts int
	Delay    time.Duration
	MaxSize  int64
}

// NewFetcher returns a Fetcher with 3 attempts and a 1s initial backoff.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Attempts: 3,
		Delay:    time.Second,
		MaxSize:  MaxImageSize,
	}
}

// retryable marks failures worth another attempt.
type retryable struct{ err error }

func (e *retryable) Error() string { return e.err.Error() }
func (e *retryable) Unwrap() error { return e.err }

// FetchImage downloads and decodes the image at url. Network errors and 5xx
// responses are retried with exponential backoff. Downloads larger than
// MaxSize fail with ErrTooLarge.
func (f *Fetcher) FetchImage(ctx context.Context, url string) (image.Image, error) {
	var data []byte
	delay := f.Delay
	var err error
	for i := 0; i < max(f.Attempts, 1); i++ {
		if data, err = f.get(ctx, url); err == nil {
			return imp.ReadBytes(data)
		}
		var re *retryable
		if !errors.As(err, &re) {
			return nil, err
		}
		if i < f.Attempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return nil, err
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &retryable{err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, &retryable{fmt.Errorf("GET %s: %s", url, resp.Status)}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	limit := f.MaxSize
	if limit <= 0 {
		limit = MaxImageSize
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &retryable{err}
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("GET %s: %w", url, ErrTooLarge)
	}
	return data, nil
}
