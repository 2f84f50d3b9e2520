// Package files reads user-provided text files from a content directory and
// summarizes them for use as generation context.
package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// defaultMaxSummaryChars bounds how much file content flows into prompts.
const defaultMaxSummaryChars = 5000

var supportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".rst":      true,
}

// interestKeywords are the topics probed for by ExtractInterests.
var interestKeywords = []string{
	"technology", "programming", "ai", "machine learning", "python",
	"javascript", "web development", "design", "productivity", "business",
	"startup", "marketing", "content", "writing", "reading", "travel",
	"food", "fitness", "health", "music", "art", "photography",
}

// Processor reads supported text files from a content directory.
type Processor struct {
	contentDir string
	maxChars   int
}

// NewProcessor creates a processor rooted at contentDir.
func NewProcessor(contentDir string) *Processor {
	return &Processor{contentDir: contentDir, maxChars: defaultMaxSummaryChars}
}

// ReadAll returns the content of every supported file under the content
// directory, keyed by path relative to it. Unreadable files are skipped. A
// missing directory yields an empty map.
func (p *Processor) ReadAll() map[string]string {
	contents := map[string]string{}
	root := p.contentDir
	if _, err := os.Stat(root); err != nil {
		return contents
	}

	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}
		if !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		contents[rel] = string(data)
		return nil
	})
	return contents
}

// ContentSummary combines all content files into a single bounded text block.
func (p *Processor) ContentSummary() (string, error) {
	contents := p.ReadAll()
	if len(contents) == 0 {
		return "No content files found in directory.", nil
	}

	names := make([]string, 0, len(contents))
	for name := range contents {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		if sb.Len() >= p.maxChars {
			break
		}
		section := fmt.Sprintf("\n--- Content from %s ---\n%s\n", name, contents[name])
		if sb.Len()+len(section) > p.maxChars {
			remaining := p.maxChars - sb.Len()
			sb.WriteString(section[:remaining])
			sb.WriteString("\n[... truncated]")
			break
		}
		sb.WriteString(section)
	}
	return sb.String(), nil
}

// ExtractInterests returns the known topic keywords present across the
// content files.
func (p *Processor) ExtractInterests() []string {
	contents := p.ReadAll()
	if len(contents) == 0 {
		return nil
	}

	var all strings.Builder
	for _, content := range contents {
		all.WriteString(strings.ToLower(content))
		all.WriteString(" ")
	}
	text := all.String()

	var found []string
	for _, interest := range interestKeywords {
		if strings.Contains(text, interest) {
			found = append(found, interest)
		}
	}
	return found
}

// FileCount reports how many supported content files were found.
func (p *Processor) FileCount() int {
	return len(p.ReadAll())
}
