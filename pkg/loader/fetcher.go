package loader

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/nikogura/resume-versions/pkg/document"
	"github.com/pkg/errors"
)

// DefaultTimeout bounds a single remote fetch.
const DefaultTimeout = 30 * time.Second

// maxDocumentSize caps how much of a response body is read.
const maxDocumentSize = 8 << 20

// Fetch reads a document from a file path or an http(s) URL.  YAML documents
// are recognized by extension and converted to JSON.
func Fetch(ctx context.Context, location string) (doc document.Raw, err error) {
	var data []byte
	name := location

	parsedURL, urlErr := url.Parse(location)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		data, err = fetchFromURL(ctx, location)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch document from URL: %s", location)
			return doc, err
		}
		name = path.Base(parsedURL.Path)
	} else {
		data, err = fetchFromFile(location)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch document from file: %s", location)
			return doc, err
		}
	}

	doc, err = document.Parse(name, data)
	return doc, err
}

func fetchFromFile(filePath string) (data []byte, err error) {
	data, err = os.ReadFile(filePath)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", filePath)
		return data, err
	}

	if len(data) == 0 {
		err = errors.New("file is empty")
		return data, err
	}

	return data, err
}

func fetchFromURL(ctx context.Context, urlStr string) (data []byte, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return data, err
	}

	req.Header.Set("User-Agent", "resume-versions/1.0")
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	client := &http.Client{
		Timeout: DefaultTimeout,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return data, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return data, err
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return data, err
	}

	if len(data) == 0 {
		err = errors.New("fetched document is empty")
		return data, err
	}

	return data, err
}
