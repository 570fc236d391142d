package briefing

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ArchiveEntry represents one archived briefing: YAML frontmatter plus the
// rendered markdown body.
type ArchiveEntry struct {
	GeneratedAt time.Time `yaml:"generated_at"`
	Events      int       `yaml:"events"`
	Tasks       int       `yaml:"tasks"`
	News        int       `yaml:"news"`
	Suggestions int       `yaml:"suggestions"`
	Body        string    `yaml:"-"`
}

// SaveArchive writes a dated copy of the rendered briefing into the
// archive directory. The latest-briefing file stays the sole source for
// the API; the archive exists for later review.
func SaveArchive(archiveDir string, b *Briefing, rendered string) error {
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	entry := ArchiveEntry{
		GeneratedAt: b.GeneratedAt,
		Events:      len(b.Events),
		Tasks:       len(b.Tasks),
		News:        len(b.News),
		Suggestions: len(b.Suggestions),
	}

	frontmatter, err := yaml.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	filename := fmt.Sprintf("%s.md", b.GeneratedAt.Format("2006-01-02"))
	path := filepath.Join(archiveDir, filename)

	content := fmt.Sprintf("---\n%s---\n\n%s", string(frontmatter), rendered)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write archive file: %w", err)
	}

	return nil
}

// LoadRecentArchives loads the most recent archived briefings, newest
// first. Unparseable files are skipped.
func LoadRecentArchives(archiveDir string, limit int) ([]ArchiveEntry, error) {
	files, err := os.ReadDir(archiveDir)
	if err != nil {
		return nil, err
	}

	var entries []ArchiveEntry
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".md") {
			continue
		}

		entry, err := parseArchiveFile(filepath.Join(archiveDir, file.Name()))
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].GeneratedAt.After(entries[j].GeneratedAt)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

func parseArchiveFile(path string) (ArchiveEntry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return ArchiveEntry{}, err
	}

	reader := bufio.NewReader(bytes.NewReader(content))

	firstLine, err := reader.ReadString('\n')
	if err != nil {
		return ArchiveEntry{}, err
	}
	if strings.TrimSpace(firstLine) != "---" {
		return ArchiveEntry{}, fmt.Errorf("invalid archive format: missing frontmatter")
	}

	var frontmatter strings.Builder
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return ArchiveEntry{}, fmt.Errorf("unterminated frontmatter: %w", err)
		}
		if strings.TrimSpace(line) == "---" {
			break
		}
		frontmatter.WriteString(line)
	}

	var entry ArchiveEntry
	if err := yaml.Unmarshal([]byte(frontmatter.String()), &entry); err != nil {
		return ArchiveEntry{}, fmt.Errorf("invalid frontmatter: %w", err)
	}

	var body strings.Builder
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			body.WriteString(line)
			break
		}
		body.WriteString(line)
	}
	entry.Body = strings.TrimSpace(body.String())

	return entry, nil
}
