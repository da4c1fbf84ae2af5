package policyscan

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	fetchTimeout   = 30 * time.Second
	fetchUserAgent = "Mozilla/5.0 (compatible; policyscan/1.0)"
)

var pdfMagic = []byte("%PDF")

// fetchToTemp downloads url into a temporary file and returns its
// path. The response is sniffed for the PDF magic so HTML error pages
// served with status 200 are rejected early.
func fetchToTemp(ctx context.Context, url string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	head := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(resp.Body, head); err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	if !bytes.Equal(head, pdfMagic) {
		return "", fmt.Errorf("fetching %s: response is not a PDF (content-type %s)",
			url, resp.Header.Get("Content-Type"))
	}

	tmp, err := os.CreateTemp("", "policyscan-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	_, err = tmp.Write(head)
	if err == nil {
		_, err = io.Copy(tmp, resp.Body)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("saving %s: %w", url, err)
	}
	return tmp.Name(), nil
}
