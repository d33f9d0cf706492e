package verifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPVerifier checks existence against a catalog service with GET
// {baseURL}/{id}. 200 confirms existence, 404 confirms absence, anything
// else is a fault.
type HTTPVerifier struct {
	client  *http.Client
	baseURL string
}

func NewHTTPVerifier(baseURL string, timeout time.Duration) *HTTPVerifier {
	return &HTTPVerifier{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (v *HTTPVerifier) Exists(ctx context.Context, id int) (bool, error) {
	url := fmt.Sprintf("%s/%d", v.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("building verifier request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("calling verifier: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("verifier returned status %d", resp.StatusCode)
	}
}
