package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats a topic's raw content for display. ext is the topic
// file's extension, e.g. ".md".
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour. Other extensions
// and rendering errors fall back to the raw content.
type GlamourRenderer struct {
	// Style is a glamour style name or path; empty or "auto" detects it
	Style string
	// Width wraps output at this column, 0 keeps glamour's default
	Width int
}

// NewGlamourRenderer creates a markdown renderer with an auto-detected style
func NewGlamourRenderer(width int) *GlamourRenderer {
	return &GlamourRenderer{Style: "auto", Width: width}
}

func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if r.Style != "" && r.Style != "auto" {
		options = []glamour.TermRendererOption{glamour.WithStylePath(r.Style)}
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	tr, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	out, err := tr.Render(content)
	if err != nil {
		return content
	}
	return out
}

// RendererFor picks glamour for terminals and plain output otherwise
func RendererFor(terminal bool) Renderer {
	if terminal {
		return NewGlamourRenderer(0)
	}
	return &PlainRenderer{}
}
