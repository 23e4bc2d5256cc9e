package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/storefront/backend/internal/model"
)

// maxBodyBytes caps form submissions at 100 KiB.
const maxBodyBytes = 100 << 10

const (
	msgInvalidBody  = "Invalid request body."
	msgBodyTooLarge = "Request body too large."
)

// decodeRecord turns the request body into a record. JSON objects and
// URL-encoded forms are accepted; any other content type yields an empty
// record. On failure it writes a 400 or 413 response and returns false.
func decodeRecord(w http.ResponseWriter, r *http.Request) (*model.Record, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		body, ok := readBody(w, r)
		if !ok {
			return nil, false
		}
		rec := model.NewRecord()
		if len(bytes.TrimSpace(body)) == 0 {
			return rec, true
		}
		if err := json.Unmarshal(body, rec); err != nil {
			slog.Info("rejected request body", "path", r.URL.Path, "error", err)
			writeMessage(w, http.StatusBadRequest, msgInvalidBody)
			return nil, false
		}
		return rec, true

	case mediaType == "application/x-www-form-urlencoded":
		body, ok := readBody(w, r)
		if !ok {
			return nil, false
		}
		rec, err := parseForm(string(body))
		if err != nil {
			slog.Info("rejected form body", "path", r.URL.Path, "error", err)
			writeMessage(w, http.StatusBadRequest, msgInvalidBody)
			return nil, false
		}
		return rec, true

	default:
		return model.NewRecord(), true
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMessage(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return nil, false
		}
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return nil, false
	}
	return body, true
}

// parseForm decodes an URL-encoded body keeping the order in which field
// names first appear. A field sent once becomes a string, a repeated field
// an array of strings.
func parseForm(body string) (*model.Record, error) {
	var keys []string
	values := make(map[string][]string)
	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, err
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, err
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = append(values[key], value)
	}

	rec := model.NewRecord()
	for _, key := range keys {
		vs := values[key]
		if len(vs) == 1 {
			rec.SetString(key, vs[0])
			continue
		}
		if err := rec.Set(key, vs); err != nil {
			return nil, err
		}
	}
	return rec, nil
}
