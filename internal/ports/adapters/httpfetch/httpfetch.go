package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Adapter streams remote files to local storage.
type Adapter struct {
	client *http.Client
}

func New() *Adapter {
	// No client-level timeout: per-fetch deadlines come from the context so
	// large downloads are bounded by the caller, not a fixed transfer cap.
	return &Adapter{client: &http.Client{}}
}

func (a *Adapter) Fetch(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(destPath)
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	return f.Close()
}
