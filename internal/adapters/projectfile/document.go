package projectfile

import (
	"strings"

	"github.com/labt-build/labt/internal/core/domain"
)

// Document is a line-level view of a Labt.toml used for targeted edits:
// `add` replaces or appends one [dependencies.<artifact>] table while every
// other line, comments included, survives byte for byte. go-toml/v2 has no
// document model, so editing happens on the raw text.
type Document struct {
	lines []string
}

// ParseDocument wraps the raw project file text.
func ParseDocument(data []byte) *Document {
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return &Document{}
	}
	return &Document{lines: strings.Split(text, "\n")}
}

// Bytes renders the document back to file contents.
func (d *Document) Bytes() []byte {
	if len(d.lines) == 0 {
		return nil
	}
	return []byte(strings.Join(d.lines, "\n") + "\n")
}

// SetDependency replaces the [dependencies.<artifact>] table if one exists,
// or appends a new one at the end of the document.
func (d *Document) SetDependency(artifact string, spec domain.DependencySpec) {
	key := quoteKeyIfNeeded(artifact)
	header := "[dependencies." + key + "]"
	block := dependencyBlock(header, key, spec)

	start, end, found := d.findTable(header, "dependencies."+key+".")
	if found {
		d.lines = append(d.lines[:start], append(block, d.lines[end:]...)...)
		return
	}

	if len(d.lines) > 0 && d.lines[len(d.lines)-1] != "" {
		d.lines = append(d.lines, "")
	}
	d.lines = append(d.lines, block...)
}

// findTable returns the half-open line range of the table opened by header,
// up to but not including the next table header. Sub-tables of the same
// dependency (header paths under subPrefix, e.g. its exclusions arrays)
// belong to the block and are swallowed with it.
func (d *Document) findTable(header, subPrefix string) (start, end int, found bool) {
	for i, line := range d.lines {
		if strings.TrimSpace(line) != header {
			continue
		}
		end = len(d.lines)
		for j := i + 1; j < len(d.lines); j++ {
			trimmed := strings.TrimSpace(d.lines[j])
			if strings.HasPrefix(trimmed, "[") &&
				!strings.HasPrefix(trimmed, "["+subPrefix) &&
				!strings.HasPrefix(trimmed, "[["+subPrefix) {
				end = j
				break
			}
		}
		// Trailing blank and comment lines belong to the gap before the next
		// table (a comment there annotates that table), not to the block
		// being replaced.
		for end > i+1 {
			trimmed := strings.TrimSpace(d.lines[end-1])
			if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
				break
			}
			end--
		}
		return i, end, true
	}
	return 0, 0, false
}

func dependencyBlock(header, key string, spec domain.DependencySpec) []string {
	block := []string{
		header,
		`group = "` + spec.Group + `"`,
		`version = "` + spec.Version + `"`,
	}
	for _, ex := range spec.Exclusions {
		block = append(block,
			"[[dependencies."+key+".exclusions]]",
			`group = "`+ex.Group+`"`,
			`artifact = "`+ex.Artifact+`"`,
		)
	}
	return block
}

// quoteKeyIfNeeded quotes a TOML key containing characters outside the bare
// key alphabet.
func quoteKeyIfNeeded(key string) string {
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return `"` + key + `"`
		}
	}
	return key
}
