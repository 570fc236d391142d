package briefing

import (
	"fmt"
	"strings"
	"time"
)

// Markdown vocabulary. The parser recognizes exactly the headings and
// markers the renderer produces; any other `## ` heading resets the
// current section so unknown sections never leak items into known ones.
const (
	docTitle    = "# Daily Briefing"
	docSubtitle = "Your personalized overview for today"

	headingEvents      = "## 📅 Today's Events"
	headingTasks       = "## ✅ Priority Tasks"
	headingNews        = "## 📰 Top News"
	headingSuggestions = "## 💡 Suggestions"

	bulletDot  = "• "
	bulletDash = "- "

	footerDateLayout = "January 2, 2006"
)

// Render serializes a briefing to its markdown document. Empty sections
// are omitted entirely. Rendering is deterministic: the same briefing
// always yields byte-identical output.
func Render(b *Briefing) string {
	var sb strings.Builder

	sb.WriteString(docTitle + "\n\n")
	sb.WriteString(docSubtitle + "\n")

	writeSection(&sb, headingEvents, b.Events, bulletDot)
	writeSection(&sb, headingTasks, b.Tasks, bulletDot)
	writeSection(&sb, headingNews, b.News, bulletDash)
	writeSection(&sb, headingSuggestions, b.Suggestions, "")

	sb.WriteString("\n---\n")
	sb.WriteString(fmt.Sprintf("*Generated on %s*\n", b.GeneratedAt.Format(footerDateLayout)))

	return sb.String()
}

func writeSection(sb *strings.Builder, heading string, items []string, marker string) {
	if len(items) == 0 {
		return
	}

	sb.WriteString("\n" + heading + "\n\n")
	for _, item := range items {
		sb.WriteString(marker + item + "\n")
	}
}

// Parse recovers a briefing from a rendered markdown document. Item text
// is whitespace-trimmed; unknown headings are ignored. Inside the
// suggestions region any plain line is treated as free-text continuation,
// not as a differently marked item.
func Parse(content string) (*Briefing, error) {
	b := &Briefing{}
	current := ""

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "---" {
			continue
		}

		switch line {
		case headingEvents:
			current = SectionEvents
			continue
		case headingTasks:
			current = SectionTasks
			continue
		case headingNews:
			current = SectionNews
			continue
		case headingSuggestions:
			current = SectionSuggestions
			continue
		}

		// Any other sub-heading closes the current section
		if strings.HasPrefix(line, "## ") {
			current = ""
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		// Footer carries the generation date
		if date, ok := parseFooterDate(line); ok {
			b.GeneratedAt = date
			continue
		}

		switch current {
		case SectionEvents:
			if item := strings.TrimPrefix(line, bulletDot); item != line {
				b.Events = append(b.Events, strings.TrimSpace(item))
			}
		case SectionTasks:
			if item := strings.TrimPrefix(line, bulletDot); item != line {
				b.Tasks = append(b.Tasks, strings.TrimSpace(item))
			}
		case SectionNews:
			if item := strings.TrimPrefix(line, bulletDash); item != line {
				b.News = append(b.News, strings.TrimSpace(item))
			}
		case SectionSuggestions:
			if !strings.HasPrefix(line, "*") {
				b.Suggestions = append(b.Suggestions, line)
			}
		}
	}

	return b, nil
}

func parseFooterDate(line string) (time.Time, bool) {
	if !strings.HasPrefix(line, "*Generated on ") || !strings.HasSuffix(line, "*") {
		return time.Time{}, false
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(line, "*Generated on "), "*")
	date, err := time.Parse(footerDateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
