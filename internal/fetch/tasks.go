package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	notionBaseURL = "https://api.notion.com/v1"
	notionVersion = "2022-06-28"
)

// TasksFetcher reads priority tasks from the blocks of a Notion page.
type TasksFetcher struct {
	token   string
	pageID  string
	baseURL string
	client  *http.Client
}

type notionBlockList struct {
	Results []notionBlock `json:"results"`
}

type notionBlock struct {
	Type             string          `json:"type"`
	NumberedListItem *notionRichText `json:"numbered_list_item,omitempty"`
	Paragraph        *notionRichText `json:"paragraph,omitempty"`
}

type notionRichText struct {
	RichText []struct {
		PlainText string `json:"plain_text"`
	} `json:"rich_text"`
}

// NewTasksFetcher creates a Notion tasks fetcher.
func NewTasksFetcher(token, pageID string) *TasksFetcher {
	return &TasksFetcher{
		token:   token,
		pageID:  pageID,
		baseURL: notionBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint (for testing)
func (f *TasksFetcher) SetBaseURL(url string) {
	f.baseURL = url
}

func (f *TasksFetcher) Name() string { return "tasks" }

// Fetch returns one line per task extracted from numbered list items and
// paragraph blocks on the configured page.
func (f *TasksFetcher) Fetch(ctx context.Context) ([]string, error) {
	if f.token == "" || f.pageID == "" {
		return nil, fmt.Errorf("notion token or page ID not configured")
	}

	url := fmt.Sprintf("%s/blocks/%s/children", f.baseURL, f.pageID)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+f.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("notion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("notion API error (%d): %s", resp.StatusCode, string(body))
	}

	var blocks notionBlockList
	if err := json.Unmarshal(body, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var tasks []string
	for _, block := range blocks.Results {
		var rt *notionRichText
		switch block.Type {
		case "numbered_list_item":
			rt = block.NumberedListItem
		case "paragraph":
			rt = block.Paragraph
		}
		if rt == nil {
			continue
		}
		for _, text := range rt.RichText {
			content := strings.TrimSpace(text.PlainText)
			if content != "" {
				tasks = append(tasks, content)
			}
		}
	}

	return tasks, nil
}
