package cli

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/hwidmann/taskcanvas/pkg/pipeline"
	"github.com/hwidmann/taskcanvas/pkg/problem"
)

// =============================================================================
// HTML Serialization
// =============================================================================

// htmlTheme describes the colors used for one HTML theme.
type htmlTheme struct {
	background string
	surface    string
	text       string
	muted      string
	accent     string
}

var htmlThemes = map[string]htmlTheme{
	pipeline.ThemeLight: {
		background: "#f4f4f6",
		surface:    "#ffffff",
		text:       "#1a1a2e",
		muted:      "#9a9ab0",
		accent:     "#e94560",
	},
	pipeline.ThemeDark: {
		background: "#101018",
		surface:    "#1a1a2e",
		text:       "#e8e8f0",
		muted:      "#9a9ab0",
		accent:     "#e94560",
	},
}

// WriteHTML serializes a structural document to a self-contained HTML page.
// Each document page becomes one square viewport section; figures are
// embedded inline as SVG. The theme must be one of pipeline.ValidThemes.
func WriteHTML(doc problem.StructuralDocument, theme string) ([]byte, error) {
	colors, ok := htmlThemes[theme]
	if !ok {
		return nil, fmt.Errorf("unknown theme: %q", theme)
	}

	var buf bytes.Buffer
	writeHTMLHead(&buf, doc, colors)

	for _, page := range doc.Pages {
		writeHTMLPage(&buf, doc, page)
	}

	if len(doc.Warnings) > 0 {
		buf.WriteString(`<ul class="warnings">` + "\n")
		for _, w := range doc.Warnings {
			fmt.Fprintf(&buf, "<li>%s</li>\n", html.EscapeString(w))
		}
		buf.WriteString("</ul>\n")
	}

	buf.WriteString("</main>\n</body>\n</html>\n")
	return buf.Bytes(), nil
}

func writeHTMLHead(buf *bytes.Buffer, doc problem.StructuralDocument, colors htmlTheme) {
	title := doc.Meta.Title
	if title == "" {
		title = appName
	}

	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(buf, "<title>%s</title>\n", html.EscapeString(title))
	buf.WriteString("<style>\n")
	fmt.Fprintf(buf, "body { background: %s; color: %s; font-family: Georgia, serif; margin: 0; }\n",
		colors.background, colors.text)
	buf.WriteString("main { display: flex; flex-direction: column; align-items: center; gap: 24px; padding: 24px; }\n")
	fmt.Fprintf(buf, ".page { background: %s; width: min(90vmin, %.0fpx); aspect-ratio: 1 / 1; box-sizing: border-box; padding: 4%%; overflow: hidden; box-shadow: 0 2px 12px rgba(0,0,0,0.25); }\n",
		colors.surface, doc.Canvas)
	fmt.Fprintf(buf, ".page header { font-weight: bold; color: %s; margin-bottom: 0.6em; }\n", colors.accent)
	buf.WriteString(".page .body { white-space: pre-wrap; }\n")
	fmt.Fprintf(buf, ".page footer { margin-top: 0.8em; border-top: 1px solid %s; color: %s; font-weight: bold; }\n",
		colors.muted, colors.text)
	buf.WriteString(".page figure { margin: 0; text-align: center; }\n.page figure svg { max-width: 100%; height: auto; }\n")
	fmt.Fprintf(buf, ".meta, .warnings { color: %s; font-size: 0.8em; }\n", colors.muted)
	buf.WriteString("</style>\n</head>\n<body>\n<main>\n")

	fmt.Fprintf(buf, "<h1>%s</h1>\n", html.EscapeString(title))
	var meta []string
	if doc.Meta.Author != "" {
		meta = append(meta, doc.Meta.Author)
	}
	if doc.Meta.Course != "" {
		meta = append(meta, doc.Meta.Course)
	}
	if doc.Meta.Date != "" {
		meta = append(meta, doc.Meta.Date)
	}
	if len(meta) > 0 {
		fmt.Fprintf(buf, "<p class=\"meta\">%s</p>\n", html.EscapeString(strings.Join(meta, " · ")))
	}
}

func writeHTMLPage(buf *bytes.Buffer, doc problem.StructuralDocument, page problem.Page) {
	fontSize := ""
	if page.FontSize > 0 {
		fontSize = fmt.Sprintf(` style="font-size: %.1fpx"`, page.FontSize)
	}
	fmt.Fprintf(buf, "<section class=\"page\" data-seq=\"%d\"%s>\n", page.Seq, fontSize)

	for _, sec := range page.Sections {
		buf.WriteString("<article>\n")
		fmt.Fprintf(buf, "<header>%s</header>\n", html.EscapeString(sec.Header))
		if sec.Body != "" {
			fmt.Fprintf(buf, "<div class=\"body\">%s</div>\n", html.EscapeString(sec.Body))
		}
		if sec.FigureRef != "" {
			if fig, ok := doc.Figures[sec.FigureRef]; ok {
				// Inline SVG is trusted output from our own renderer.
				fmt.Fprintf(buf, "<figure>%s</figure>\n", fig.SVG)
			}
		}
		if sec.Footer != "" {
			fmt.Fprintf(buf, "<footer>%s</footer>\n", html.EscapeString(sec.Footer))
		}
		buf.WriteString("</article>\n")
	}

	buf.WriteString("</section>\n")
}
