package utils

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	for _, tc := range []struct {
		d    time.Duration
		want string
	}{
		{350 * time.Millisecond, "350ms"},
		{0, "0ms"},
		{42 * time.Second, "42s"},
		{time.Hour + 2*time.Second, "1h:0m:2s"},
		{2*time.Minute + 5*time.Second, "2m:5s"},
		{3*time.Hour + 4*time.Minute + 5*time.Second, "3h:4m:5s"},
		{49*time.Hour + 10*time.Second, "2d:1h:0m:10s"},
	} {
		if got := FormatTime(tc.d); got != tc.want {
			t.Errorf("FormatTime(%v): expected %q, got %q", tc.d, tc.want, got)
		}
	}
}

func TestSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf)
	s.Start("working")
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "working") {
		t.Fatalf("expected the message in the output, got %q", buf.String())
	}
}

func TestDownloadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img.png" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	f, err := DownloadImage(context.Background(), srv.URL+"/img.png")
	if err != nil {
		t.Fatalf("DownloadImage: %v", err)
	}
	defer os.Remove(f.Name())
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("reading the downloaded file: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected content %q", data)
	}

	if _, err := DownloadImage(context.Background(), srv.URL+"/missing"); err == nil {
		t.Fatal("expected an error for a missing resource")
	}
}
