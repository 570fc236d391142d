package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/YuvaneshSankar/OrbitAI/internal/storage"
)

// ExportDocument is one free-text record in an upstream data export.
type ExportDocument struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// ExportEvent is one calendar event in an upstream data export.
type ExportEvent struct {
	Name     string `json:"name"`
	Start    string `json:"start"`
	Location string `json:"location"`
}

// Export is the documented upstream record format: an explicit schema
// instead of structured data smuggled through field names.
type Export struct {
	Documents []ExportDocument `json:"documents"`
	Events    []ExportEvent    `json:"events"`
}

// LoadExport reads an upstream export file.
func LoadExport(path string) (*Export, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export file: %w", err)
	}

	var export Export
	if err := json.Unmarshal(content, &export); err != nil {
		return nil, fmt.Errorf("decoding export file: %w", err)
	}

	return &export, nil
}

// DocumentRecords converts export documents into store records. Unknown
// kinds fall back to general.
func (e *Export) DocumentRecords() []*storage.DocumentRecord {
	now := time.Now()

	records := make([]*storage.DocumentRecord, 0, len(e.Documents))
	for _, doc := range e.Documents {
		if doc.Content == "" {
			continue
		}
		kind := doc.Kind
		if kind == "" {
			kind = storage.KindGeneral
		}
		records = append(records, &storage.DocumentRecord{
			ID:        storage.GenerateID(),
			Kind:      kind,
			Content:   doc.Content,
			Source:    doc.Source,
			CreatedAt: now,
		})
	}
	return records
}

// EventRecords converts export events into store records.
func (e *Export) EventRecords() []*storage.EventRecord {
	now := time.Now()

	records := make([]*storage.EventRecord, 0, len(e.Events))
	for _, event := range e.Events {
		if event.Name == "" || event.Start == "" {
			continue
		}
		records = append(records, &storage.EventRecord{
			ID:        storage.GenerateID(),
			Name:      event.Name,
			StartAt:   event.Start,
			Location:  event.Location,
			CreatedAt: now,
		})
	}
	return records
}

// Collector captures live news and weather snapshots as documents so the
// retrieval stores can answer questions about them.
type Collector struct {
	newsURL    string
	weatherURL string
	client     *http.Client
}

// NewCollector creates a snapshot collector.
func NewCollector(newsURL, weatherURL string) *Collector {
	return &Collector{
		newsURL:    newsURL,
		weatherURL: weatherURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Snapshots fetches current news and weather documents. A failed backend
// is logged and simply contributes nothing.
func (c *Collector) Snapshots(ctx context.Context) []*storage.DocumentRecord {
	var records []*storage.DocumentRecord

	news, err := c.newsSnapshots(ctx)
	if err != nil {
		log.Printf("Warning: news snapshot failed: %v", err)
	} else {
		records = append(records, news...)
	}

	weather, err := c.weatherSnapshot(ctx)
	if err != nil {
		log.Printf("Warning: weather snapshot failed: %v", err)
	} else {
		records = append(records, weather)
	}

	return records
}

func (c *Collector) newsSnapshots(ctx context.Context) ([]*storage.DocumentRecord, error) {
	var feed struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := c.getJSON(ctx, c.newsURL, &feed); err != nil {
		return nil, err
	}

	now := time.Now()
	var records []*storage.DocumentRecord
	for i, article := range feed.Articles {
		if i >= 3 {
			break
		}
		content := fmt.Sprintf("News: %s\nDescription: %s\nSource: %s",
			article.Title, article.Description, article.Source.Name)
		records = append(records, &storage.DocumentRecord{
			ID:        storage.GenerateID(),
			Kind:      storage.KindNews,
			Content:   content,
			Source:    "api",
			CreatedAt: now,
		})
	}
	return records, nil
}

func (c *Collector) weatherSnapshot(ctx context.Context) (*storage.DocumentRecord, error) {
	var snap struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
			WindSpeed   float64 `json:"wind_speed_10m"`
			Humidity    float64 `json:"relative_humidity_2m"`
			Time        string  `json:"time"`
		} `json:"current"`
	}
	if err := c.getJSON(ctx, c.weatherURL, &snap); err != nil {
		return nil, err
	}

	content := fmt.Sprintf("Current Weather:\nTemperature: %.1f°C\nWind Speed: %.1f m/s\nHumidity: %.0f%%\nTime: %s",
		snap.Current.Temperature, snap.Current.WindSpeed, snap.Current.Humidity, snap.Current.Time)

	return &storage.DocumentRecord{
		ID:        storage.GenerateID(),
		Kind:      storage.KindWeather,
		Content:   content,
		Source:    "api",
		CreatedAt: time.Now(),
	}, nil
}

func (c *Collector) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
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

	return json.Unmarshal(body, out)
}
