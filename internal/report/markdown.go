// Package report builds the Markdown analysis reports produced by each calculator.
package report

import (
	"fmt"
	"strings"
)

// Builder accumulates a Markdown document.
type Builder struct {
	sb strings.Builder
}

// New starts a document with a level-1 title.
func New(title string) *Builder {
	b := &Builder{}
	b.Heading(1, title)
	return b
}

// Heading writes a heading of the given level (1-6).
func (b *Builder) Heading(level int, text string) *Builder {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	b.gap()
	fmt.Fprintf(&b.sb, "%s %s\n\n", strings.Repeat("#", level), text)
	return b
}

// Section writes a level-2 heading.
func (b *Builder) Section(text string) *Builder {
	return b.Heading(2, text)
}

// Subsection writes a level-3 heading.
func (b *Builder) Subsection(text string) *Builder {
	return b.Heading(3, text)
}

// Paragraph writes a block of text.
func (b *Builder) Paragraph(format string, args ...any) *Builder {
	b.gap()
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteString("\n\n")
	return b
}

// KV writes a bold key/value bullet.
func (b *Builder) KV(key, value string) *Builder {
	fmt.Fprintf(&b.sb, "- **%s:** %s\n", key, value)
	return b
}

// List writes a bullet list. An empty list writes the placeholder, if any.
func (b *Builder) List(items []string, placeholder ...string) *Builder {
	b.gap()
	if len(items) == 0 && len(placeholder) > 0 {
		items = placeholder
	}
	for _, item := range items {
		fmt.Fprintf(&b.sb, "- %s\n", item)
	}
	b.sb.WriteString("\n")
	return b
}

// Numbered writes an ordered list.
func (b *Builder) Numbered(items []string) *Builder {
	b.gap()
	for i, item := range items {
		fmt.Fprintf(&b.sb, "%d. %s\n", i+1, item)
	}
	b.sb.WriteString("\n")
	return b
}

// Table writes a pipe table. Rows shorter than the header are padded.
func (b *Builder) Table(headers []string, rows [][]string) *Builder {
	if len(headers) == 0 {
		return b
	}
	b.gap()
	writeRow(&b.sb, headers)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&b.sb, sep)
	for _, row := range rows {
		cells := make([]string, len(headers))
		copy(cells, row)
		writeRow(&b.sb, cells)
	}
	b.sb.WriteString("\n")
	return b
}

// String returns the document with a single trailing newline.
func (b *Builder) String() string {
	return strings.TrimRight(b.sb.String(), "\n") + "\n"
}

// gap ends a pending bullet block so that the next element starts a new paragraph.
func (b *Builder) gap() {
	s := b.sb.String()
	if s != "" && !strings.HasSuffix(s, "\n\n") {
		b.sb.WriteString("\n")
	}
}

func writeRow(sb *strings.Builder, cells []string) {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	fmt.Fprintf(sb, "| %s |\n", strings.Join(escaped, " | "))
}
