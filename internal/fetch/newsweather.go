package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/YuvaneshSankar/OrbitAI/internal/llm"
)

const maxHeadlines = 3

// NewsWeatherFetcher combines top news headlines with a current weather
// snapshot. Lines are formatted locally first; an LLM pass tightens them
// when available, degrading to the local formatting on failure.
type NewsWeatherFetcher struct {
	newsURL    string
	weatherURL string
	llm        llm.Client
	client     *http.Client
}

type newsFeed struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

type weatherSnapshot struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		Time        string  `json:"time"`
	} `json:"current"`
}

// NewNewsWeatherFetcher creates a news+weather fetcher. client may carry
// a nil llm.Client, in which case locally formatted lines are returned.
func NewNewsWeatherFetcher(newsURL, weatherURL string, model llm.Client) *NewsWeatherFetcher {
	return &NewsWeatherFetcher{
		newsURL:    newsURL,
		weatherURL: weatherURL,
		llm:        model,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (f *NewsWeatherFetcher) Name() string { return "news" }

// Fetch returns news and weather lines. Both backends must fail for Fetch
// to return an error; either one alone still produces a partial result.
func (f *NewsWeatherFetcher) Fetch(ctx context.Context) ([]string, error) {
	headlines, newsErr := f.fetchHeadlines(ctx)
	weather, weatherErr := f.fetchWeather(ctx)

	if newsErr != nil && weatherErr != nil {
		return nil, fmt.Errorf("news: %v; weather: %w", newsErr, weatherErr)
	}
	if newsErr != nil {
		log.Printf("Warning: news fetch failed: %v", newsErr)
	}
	if weatherErr != nil {
		log.Printf("Warning: weather fetch failed: %v", weatherErr)
	}

	lines := make([]string, 0, len(headlines)+1)
	lines = append(lines, headlines...)
	if weather != "" {
		lines = append(lines, weather)
	}

	// LLM pass tightens the raw lines; any failure keeps the local ones
	if f.llm != nil && len(lines) > 0 {
		formatted, err := f.llm.Complete(ctx, llm.NewsWeatherPrompt(headlines, weather))
		if err != nil {
			log.Printf("Warning: news/weather formatting failed: %v", err)
		} else if tightened := llm.SplitLines(formatted); len(tightened) > 0 {
			lines = tightened
		}
	}

	return lines, nil
}

func (f *NewsWeatherFetcher) fetchHeadlines(ctx context.Context) ([]string, error) {
	var feed newsFeed
	if err := f.getJSON(ctx, f.newsURL, &feed); err != nil {
		return nil, err
	}

	var headlines []string
	for _, article := range feed.Articles {
		if article.Title == "" {
			continue
		}
		headlines = append(headlines, article.Title)
		if len(headlines) >= maxHeadlines {
			break
		}
	}
	return headlines, nil
}

func (f *NewsWeatherFetcher) fetchWeather(ctx context.Context) (string, error) {
	var snap weatherSnapshot
	if err := f.getJSON(ctx, f.weatherURL, &snap); err != nil {
		return "", err
	}

	return fmt.Sprintf("Weather: %.1f°C, humidity %.0f%%, wind %.1f m/s",
		snap.Current.Temperature, snap.Current.Humidity, snap.Current.WindSpeed), nil
}

func (f *NewsWeatherFetcher) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
