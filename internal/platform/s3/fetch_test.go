package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// testClient creates a Client backed by a test HTTP server.
// The handler receives real S3 protocol requests.
func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(server.URL),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("test-key", "test-secret", ""),
		HTTPClient: &http.Client{
			Transport: &http.Transport{},
		},
	})

	return &Client{s3: client, region: "us-east-1"}, server
}

// xmlResponse is a helper to write S3-style XML responses.
func xmlResponse(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

func TestParseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rawURL     string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{
			name:       "bucket and key",
			rawURL:     "s3://labs/srl.clab.yml",
			wantBucket: "labs",
			wantKey:    "srl.clab.yml",
		},
		{
			name:       "nested key",
			rawURL:     "s3://labs/team-a/topos/srl.clab.yml",
			wantBucket: "labs",
			wantKey:    "team-a/topos/srl.clab.yml",
		},
		{
			name:    "missing key",
			rawURL:  "s3://labs",
			wantErr: true,
		},
		{
			name:    "empty key",
			rawURL:  "s3://labs/",
			wantErr: true,
		},
		{
			name:    "empty bucket",
			rawURL:  "s3:///srl.clab.yml",
			wantErr: true,
		},
		{
			name:    "no scheme",
			rawURL:  "labs/srl.clab.yml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bucket, key, err := ParseURL(tt.rawURL)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if bucket != tt.wantBucket {
				t.Errorf("expected bucket %s, got %s", tt.wantBucket, bucket)
			}
			if key != tt.wantKey {
				t.Errorf("expected key %s, got %s", tt.wantKey, key)
			}
		})
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	if !IsURL("s3://labs/srl.clab.yml") {
		t.Error("expected s3:// reference to be recognized")
	}
	if IsURL("srl.clab.yml") {
		t.Error("expected local path to not be an s3 URL")
	}
}

func TestGetObject_Success(t *testing.T) {
	t.Parallel()

	expectedData := []byte("name: srl\ntopology:\n  nodes:\n    srl1:\n")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "GET" {
			w.Header().Set("Content-Length", fmt.Sprintf("%d", len(expectedData)))
			w.WriteHeader(200)
			_, _ = w.Write(expectedData)
			return
		}
		w.WriteHeader(404)
	})

	client, server := testClient(t, handler)
	defer server.Close()

	data, err := client.GetObject(context.Background(), "labs", "srl.clab.yml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(data, expectedData) {
		t.Errorf("expected %q, got %q", expectedData, data)
	}
}

func TestGetObject_Error(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		xmlResponse(w, 404, `<?xml version="1.0" encoding="UTF-8"?>
<Error>
  <Code>NoSuchKey</Code>
  <Message>The specified key does not exist.</Message>
</Error>`)
	})

	client, server := testClient(t, handler)
	defer server.Close()

	_, err := client.GetObject(context.Background(), "labs", "missing.clab.yml")
	if err == nil {
		t.Fatal("expected error but got nil")
	}
	if !strings.Contains(err.Error(), "failed to get object missing.clab.yml from bucket labs") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestFetchTopology_Success(t *testing.T) {
	t.Parallel()

	topology := []byte("name: srl\ntopology:\n  nodes:\n    srl1:\n      kind: nokia_srlinux\n")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "GET" && strings.HasSuffix(r.URL.Path, "/topos/srl.clab.yml") {
			w.Header().Set("Content-Length", fmt.Sprintf("%d", len(topology)))
			w.WriteHeader(200)
			_, _ = w.Write(topology)
			return
		}
		w.WriteHeader(404)
	})

	client, server := testClient(t, handler)
	defer server.Close()

	path, cleanup, err := client.FetchTopology(context.Background(), "s3://labs/topos/srl.clab.yml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Base(path) != "srl.clab.yml" {
		t.Errorf("expected file named srl.clab.yml, got %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fetched topology: %v", err)
	}
	if !bytes.Equal(data, topology) {
		t.Errorf("expected %q, got %q", topology, data)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected cleanup to remove %s", path)
	}
}

func TestFetchTopology_NotFound(t *testing.T) {
	t.Parallel()

	var requests int
	var mu sync.Mutex

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		xmlResponse(w, 404, `<?xml version="1.0" encoding="UTF-8"?>
<Error>
  <Code>NoSuchKey</Code>
  <Message>The specified key does not exist.</Message>
</Error>`)
	})

	client, server := testClient(t, handler)
	defer server.Close()

	_, _, err := client.FetchTopology(context.Background(), "s3://labs/missing.clab.yml")
	if err == nil {
		t.Fatal("expected error but got nil")
	}
	if !strings.Contains(err.Error(), "failed to get object") {
		t.Errorf("unexpected error message: %v", err)
	}

	// a missing object must not be retried
	mu.Lock()
	defer mu.Unlock()
	if requests != 1 {
		t.Errorf("expected exactly 1 request for a missing object, got %d", requests)
	}
}

func TestFetchTopology_EmptyObject(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "0")
		w.WriteHeader(200)
	})

	client, server := testClient(t, handler)
	defer server.Close()

	_, _, err := client.FetchTopology(context.Background(), "s3://labs/empty.clab.yml")
	if err == nil {
		t.Fatal("expected error but got nil")
	}
	if !strings.Contains(err.Error(), "is empty") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestFetchTopology_BadURL(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
	})

	client, server := testClient(t, handler)
	defer server.Close()

	_, _, err := client.FetchTopology(context.Background(), "https://example.com/srl.clab.yml")
	if err == nil {
		t.Fatal("expected error but got nil")
	}
	if !strings.Contains(err.Error(), "not an s3 URL") {
		t.Errorf("unexpected error message: %v", err)
	}
}
