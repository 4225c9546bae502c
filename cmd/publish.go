package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/fund"
	"github.com/etnz/fund/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const defaultLayout = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`

// page is the data available to the layout template.
type page struct {
	Title string
	Path  string // relative to the output directory
	Body  template.HTML
}

type publishCmd struct {
	outputDir string
	layout    string
}

func (*publishCmd) Name() string { return "publish" }

func (*publishCmd) Synopsis() string { return "generates the HTML reports of the portfolio" }

func (*publishCmd) Usage() string {
	return `nav publish [-o <dir>] [-layout <file>]

  Generates the summary page (index.html), the performance calendar and one
  page per month, with their charts, in the output directory.

  The -layout file is an html/template receiving .Title, .Path and .Body.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "site", "Root directory for the generated pages")
	f.StringVar(&c.layout, "layout", "", "Path to an html/template file for the page layout")
}

func (c *publishCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	layout, err := parseLayout(c.layout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse layout template: %v\n", err)
		return subcommands.ExitFailure
	}
	ctx, s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	files, err := publish(ctx, s.ledger, s.config.Reports, c.outputDir, layout)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(os.Stderr, "Published %d files to %s\n", len(files), c.outputDir)
	return subcommands.ExitSuccess
}

func parseLayout(file string) (*template.Template, error) {
	if file == "" {
		return template.New("layout").Parse(defaultLayout)
	}
	return template.ParseFiles(file)
}

// publish writes all the pages and charts to dir and returns the list of written files.
func publish(ctx context.Context, l *fund.Ledger, rates fund.ReportsConfig, dir string, layout *template.Template) ([]string, error) {
	log := zerolog.Ctx(ctx)
	w := &siteWriter{dir: dir, layout: layout}

	summary, err := l.Summary(rates.RiskFree)
	if err != nil {
		return nil, err
	}
	months := l.Months()

	var index strings.Builder
	index.WriteString(renderer.SummaryMarkdown(summary))
	if w.chart("nav.png", func(buf *bytes.Buffer) error {
		return renderer.Base100Chart(buf, "NAV vs Benchmark (base 100)", summary.Base100)
	}) {
		index.WriteString("\n![NAV vs Benchmark](nav.png)\n")
	}
	index.WriteString("\n## Reports\n\n- [Monthly performance calendar](calendar.html)\n")
	for _, m := range months {
		fmt.Fprintf(&index, "- [%s](monthly/%s.html)\n", m.From.Format("January 2006"), m.Identifier())
	}
	w.page("index.html", "Portfolio Summary", index.String())

	w.page("calendar.html", "Monthly Performance", renderer.CalendarMarkdown(fund.CalendarGrid(l.MonthlyReturns())))

	for _, m := range months {
		r, err := l.Monthly(m.From, rates.MonthlyRiskFree)
		if err != nil {
			return w.files, err
		}
		id := m.Identifier()
		md := renderer.MonthlyMarkdown(r)
		if w.chart(filepath.Join("monthly", id+".png"), func(buf *bytes.Buffer) error {
			return renderer.Base100Chart(buf, monthTitle(r), r.Base100)
		}) {
			md += fmt.Sprintf("\n![NAV vs Benchmark](%s.png)\n", id)
		}
		w.page(filepath.Join("monthly", id+".html"), "Monthly Report "+id, md)
		if w.err != nil {
			break
		}
		log.Debug().Str("month", id).Msg("published")
	}

	if w.err != nil {
		return w.files, w.err
	}
	log.Info().Int("files", len(w.files)).Str("dir", dir).Msg("site published")
	return w.files, nil
}

// siteWriter writes files under dir and keeps the first error.
type siteWriter struct {
	dir    string
	layout *template.Template
	files  []string
	err    error
}

func (w *siteWriter) write(name string, data []byte) {
	if w.err != nil {
		return
	}
	path := filepath.Join(w.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		w.err = fmt.Errorf("failed to create output directory for file %s: %w", name, err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		w.err = fmt.Errorf("failed to write file %s: %w", name, err)
		return
	}
	w.files = append(w.files, name)
}

// page converts md to HTML and writes it with the layout.
func (w *siteWriter) page(name, title, md string) {
	if w.err != nil {
		return
	}
	html, err := renderPage(w.layout, page{Title: title, Path: filepath.ToSlash(name)}, md)
	if err != nil {
		w.err = fmt.Errorf("failed to render %s: %w", name, err)
		return
	}
	w.write(name, html)
}

// chart writes a chart and reports whether there was enough data to draw it.
func (w *siteWriter) chart(name string, draw func(*bytes.Buffer) error) bool {
	if w.err != nil {
		return false
	}
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		return false
	}
	w.write(name, buf.Bytes())
	return w.err == nil
}

// renderPage converts md to HTML and executes the layout with it as .Body.
func renderPage(layout *template.Template, p page, md string) ([]byte, error) {
	var body bytes.Buffer
	converter := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := converter.Convert([]byte(md), &body); err != nil {
		return nil, err
	}
	p.Body = template.HTML(body.String())

	var out bytes.Buffer
	if err := layout.Execute(&out, p); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
