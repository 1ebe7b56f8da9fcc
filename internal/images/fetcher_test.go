package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFetchDataURL(t *testing.T) {
	tests := []struct {
		name        string
		ref         string
		wantData    string
		wantType    string
		wantErrPart string
	}{
		{
			name:     "png",
			ref:      "data:image/png;base64,cG5n",
			wantData: "png",
			wantType: "image/png",
		},
		{
			name:     "no mime type",
			ref:      "data:;base64,cG5n",
			wantData: "png",
			wantType: "application/octet-stream",
		},
		{
			name:        "not base64",
			ref:         "data:text/plain,hello",
			wantErrPart: "only base64",
		},
		{
			name:        "missing comma",
			ref:         "data:image/png;base64",
			wantErrPart: "malformed",
		},
		{
			name:        "bad payload",
			ref:         "data:image/png;base64,!!!",
			wantErrPart: "failed to decode",
		},
	}

	f := NewFetcher(time.Second)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, contentType, err := f.Fetch(context.Background(), tt.ref)
			if tt.wantErrPart != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErrPart) {
					t.Errorf("Expected error containing %q, got %v", tt.wantErrPart, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if string(data) != tt.wantData {
				t.Errorf("Expected data %q, got %q", tt.wantData, data)
			}
			if contentType != tt.wantType {
				t.Errorf("Expected type %q, got %q", tt.wantType, contentType)
			}
		})
	}
}

func TestFetchHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/img1.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("image-bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	f := NewFetcher(time.Second)

	data, contentType, err := f.Fetch(context.Background(), server.URL+"/img1.png")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("Unexpected data %q", data)
	}
	if contentType != "image/png" {
		t.Errorf("Expected image/png, got %s", contentType)
	}

	if _, _, err := f.Fetch(context.Background(), server.URL+"/missing.png"); err == nil {
		t.Error("Expected error for 404")
	}
}

func TestFetchUnsupportedScheme(t *testing.T) {
	f := NewFetcher(0)
	if _, _, err := f.Fetch(context.Background(), "file:///etc/passwd"); err == nil {
		t.Error("Expected error for file scheme")
	}
}

func TestDirSaver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "figures")
	s := NewDirSaver(dir, NewFetcher(time.Second))

	if err := s.Save(context.Background(), "data:image/png;base64,cG5n", "MCM_Figure_a.png"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "MCM_Figure_a.png"))
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("Unexpected file contents %q", data)
	}
}

func TestDirSaverRejectsBadFilenames(t *testing.T) {
	s := NewDirSaver(t.TempDir(), NewFetcher(time.Second))

	for _, name := range []string{"", "../escape.png", "sub/dir.png"} {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(context.Background(), "data:image/png;base64,cG5n", name); err == nil {
				t.Errorf("Expected error for filename %q", name)
			}
		})
	}
}
