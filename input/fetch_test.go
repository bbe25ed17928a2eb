package input

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/disintegration/imaging"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, testImage(w, h), imaging.PNG); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testFetcher() *Fetcher {
	f := NewFetcher()
	f.Delay = time.Millisecond
	return f
}

// flaky fails with status the first n requests, then serves body.
func flaky(n int32, status int, body []byte) (*httptest.Server, *atomic.Int32) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= n {
			w.WriteHeader(status)
			return
		}
		w.Write(body)
	}))
	return srv, &calls
}

func TestFetchImage(t *testing.T) {
	srv, calls := flaky(0, 0, pngBytes(t, 7, 3))
	defer srv.Close()

	img, err := testFetcher().FetchImage(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchImage() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 7 || b.Dy() != 3 {
		t.Errorf("image is %v, want 7x3", b)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server called %d times, want 1", n)
	}
}

func TestFetchImageRetriesServerErrors(t *testing.T) {
	srv, calls := flaky(2, http.StatusBadGateway, pngBytes(t, 2, 2))
	defer srv.Close()

	if _, err := testFetcher().FetchImage(context.Background(), srv.URL); err != nil {
		t.Fatalf("FetchImage() error = %v", err)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("server called %d times, want 3", n)
	}
}

func TestFetchImageGivesUp(t *testing.T) {
	srv, calls := flaky(10, http.StatusInternalServerError, nil)
	defer srv.Close()

	if _, err := testFetcher().FetchImage(context.Background(), srv.URL); err == nil {
		t.Fatal("FetchImage() should fail")
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("server called %d times, want 3", n)
	}
}

func TestFetchImageNoRetryOnClientError(t *testing.T) {
	srv, calls := flaky(10, http.StatusNotFound, nil)
	defer srv.Close()

	if _, err := testFetcher().FetchImage(context.Background(), srv.URL); err == nil {
		t.Fatal("FetchImage() should fail")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server called %d times, want 1", n)
	}
}

func TestFetchImageTooLarge(t *testing.T) {
	data := pngBytes(t, 64, 64)
	srv, _ := flaky(0, 0, data)
	defer srv.Close()

	f := testFetcher()
	f.MaxSize = int64(len(data) - 1)
	if _, err := f.FetchImage(context.Background(), srv.URL); !errors.Is(err, ErrTooLarge) {
		t.Errorf("FetchImage() error = %v, want ErrTooLarge", err)
	}
}

func TestFetchImageNotAnImage(t *testing.T) {
	srv, _ := flaky(0, 0, []byte("hello"))
	defer srv.Close()

	if _, err := testFetcher().FetchImage(context.Background(), srv.URL); err == nil {
		t.Error("FetchImage() should fail on non-image data")
	}
}
