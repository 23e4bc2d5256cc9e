package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html":            "<h1>shop</h1>",
		"css/site.css":          "body{}",
		"products/index.html":   "<h1>products</h1>",
		"images/empty/.keep":    "",
		".env":                  "SECRET=1",
		".git/config":           "[core]",
		"contact_messages.json": "[]",
		"orders.json":           "[]",
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func serveStatic(h *StaticHandler, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /", h.Files)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestStaticHandler_IndexAtRoot(t *testing.T) {
	h := NewStaticHandler(writeSite(t))

	rec := serveStatic(h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "<h1>shop</h1>" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected text/html, got %q", ct)
	}
}

func TestStaticHandler_IndexMissing(t *testing.T) {
	h := NewStaticHandler(t.TempDir())
	if rec := serveStatic(h, "/"); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 without index.html, got %d", rec.Code)
	}
}

func TestStaticHandler_ServesFileWithContentType(t *testing.T) {
	h := NewStaticHandler(writeSite(t))

	rec := serveStatic(h, "/css/site.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if string(body) != "body{}" {
		t.Errorf("unexpected body %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("expected text/css, got %q", ct)
	}
}

func TestStaticHandler_NotFound(t *testing.T) {
	h := NewStaticHandler(writeSite(t))
	if rec := serveStatic(h, "/nope.png"); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestStaticHandler_DirectoryIndex(t *testing.T) {
	h := NewStaticHandler(writeSite(t))

	rec := serveStatic(h, "/products")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/products/" {
		t.Errorf("expected redirect to /products/, got %q", loc)
	}

	rec = serveStatic(h, "/products/")
	if rec.Code != http.StatusOK || rec.Body.String() != "<h1>products</h1>" {
		t.Errorf("expected products index, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestStaticHandler_NoDirectoryListing(t *testing.T) {
	h := NewStaticHandler(writeSite(t))
	if rec := serveStatic(h, "/images/empty/"); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for directory without index, got %d", rec.Code)
	}
}

func TestStaticHandler_HidesDotFiles(t *testing.T) {
	h := NewStaticHandler(writeSite(t))
	for _, p := range []string{"/.env", "/.git/config", "/images/empty/.keep"} {
		if rec := serveStatic(h, p); rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", p, rec.Code)
		}
	}
}

func TestStaticHandler_HidesStoreFiles(t *testing.T) {
	dir := writeSite(t)
	h := NewStaticHandler(dir,
		filepath.Join(dir, "contact_messages.json"),
		filepath.Join(dir, "orders.json"),
		"/elsewhere/ignored.json",
	)
	for _, p := range []string{"/contact_messages.json", "/orders.json"} {
		if rec := serveStatic(h, p); rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", p, rec.Code)
		}
	}
	if rec := serveStatic(h, "/css/site.css"); rec.Code != http.StatusOK {
		t.Errorf("expected other files to be served, got %d", rec.Code)
	}
}

func TestStaticHandler_Head(t *testing.T) {
	h := NewStaticHandler(writeSite(t))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", h.Files)

	req := httptest.NewRequest(http.MethodHead, "/css/site.css", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for HEAD, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body for HEAD, got %d bytes", rec.Body.Len())
	}
}
