package handler

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"strings"
)

const indexFile = "index.html"

// StaticHandler serves the site's files from a root directory. Directory
// listings are never produced, dot-files are hidden, and so are any files
// passed as hidden (the form store files when they live under the root).
type StaticHandler struct {
	root   http.Dir
	hidden map[string]bool
}

// NewStaticHandler creates a StaticHandler for siteDir. hiddenFiles are
// filesystem paths; those outside siteDir are ignored.
func NewStaticHandler(siteDir string, hiddenFiles ...string) *StaticHandler {
	h := &StaticHandler{root: http.Dir(siteDir), hidden: make(map[string]bool)}

	absRoot, err := filepath.Abs(siteDir)
	if err != nil {
		slog.Warn("cannot resolve site directory", "dir", siteDir, "error", err)
		return h
	}
	for _, f := range hiddenFiles {
		absFile, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(absRoot, absFile)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		h.hidden["/"+filepath.ToSlash(rel)] = true
	}
	return h
}

// Index handles GET / with the landing page.
func (h *StaticHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, "/"+indexFile)
}

// Files handles GET /<path>.
func (h *StaticHandler) Files(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)
	if h.isHidden(name) {
		http.NotFound(w, r)
		return
	}

	f, err := h.root.Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	info, err := f.Stat()
	f.Close()
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if info.IsDir() {
		if !strings.HasSuffix(r.URL.Path, "/") {
			target := r.URL.Path + "/"
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}
		name = path.Join(name, indexFile)
	}
	h.serveFile(w, r, name)
}

func (h *StaticHandler) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	f, err := h.root.Open(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to open static file", "path", name, "error", err)
		}
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (h *StaticHandler) isHidden(name string) bool {
	if h.hidden[name] {
		return true
	}
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") && seg != "." {
			return true
		}
	}
	return false
}
