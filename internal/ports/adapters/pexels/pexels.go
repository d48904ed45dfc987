package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/podclip/podclip/internal/types"
)

// DefaultRelevance is assigned to every result because Pexels supplies no
// relevance signal of its own.
const DefaultRelevance = 0.5

const perPage = 10

// Adapter searches the Pexels videos API for stock footage.
type Adapter struct {
	key     string
	baseURL string
	client  *http.Client
}

func New(apiKey, baseURL string) *Adapter {
	if baseURL == "" {
		baseURL = "https://api.pexels.com"
	}
	return &Adapter{
		key:     apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *Adapter) Name() string { return "pexels" }

func (a *Adapter) Search(ctx context.Context, query string) ([]types.FootageAsset, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", fmt.Sprintf("%d", perPage))
	q.Set("orientation", "all")

	req, err := http.NewRequestWithContext(ctx, "GET", a.baseURL+"/videos/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", a.key)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 400))
		return nil, fmt.Errorf("pexels status %d: %s", resp.StatusCode, string(rb))
	}

	var raw struct {
		Videos []struct {
			ID         int64   `json:"id"`
			URL        string  `json:"url"`
			Duration   float64 `json:"duration"`
			VideoFiles []struct {
				Link   string `json:"link"`
				Width  int    `json:"width"`
				Height int    `json:"height"`
			} `json:"video_files"`
		} `json:"videos"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse pexels response: %w", err)
	}

	assets := make([]types.FootageAsset, 0, len(raw.Videos))
	for _, v := range raw.Videos {
		if len(v.VideoFiles) == 0 {
			continue
		}
		best := v.VideoFiles[0]
		for _, f := range v.VideoFiles[1:] {
			if f.Width > best.Width {
				best = f
			}
		}
		assets = append(assets, types.FootageAsset{
			ID:             fmt.Sprintf("pexels_%d", v.ID),
			URL:            v.URL,
			DownloadURL:    best.Link,
			Title:          fmt.Sprintf("Pexels Video %d", v.ID),
			DurationSec:    v.Duration,
			Resolution:     fmt.Sprintf("%dx%d", best.Width, best.Height),
			Source:         "pexels",
			RelevanceScore: DefaultRelevance,
		})
	}
	return assets, nil
}
