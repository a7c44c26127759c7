package nets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Open returns the content at location, an http(s) URL or a file path.
type Open func(ctx context.Context, location string) (io.ReadCloser, error)

func (Module) Open(
	client HTTPClient,
) Open {
	return func(ctx context.Context, location string) (io.ReadCloser, error) {
		if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
			return os.Open(location)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("get %s: %s", location, resp.Status)
		}
		return resp.Body, nil
	}
}
