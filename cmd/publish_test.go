package cmd

import (
	"context"
	"html/template"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/fund"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPage(t *testing.T) {
	tests := []struct {
		name     string
		template string
		md       string
		want     []string
		wantErr  bool
	}{
		{
			name:     "title and body",
			template: "<title>{{.Title}}</title>{{.Body}}",
			md:       "# Hello",
			want:     []string{"<title>Summary</title><h1>Hello</h1>"},
		},
		{
			name:     "table",
			template: "{{.Body}}",
			md:       "| a | b |\n|:--|--:|\n| 1 | 2 |\n",
			want:     []string{"<table>", `<th style="text-align:left">a</th>`, `<td style="text-align:right">2</td>`},
		},
		{
			name:     "path",
			template: "{{.Path}}",
			want:     []string{"monthly/2024-01.html"},
		},
		{
			name:     "template with error",
			template: "{{.NonExistentField}}",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := template.New("test").Parse(tt.template)
			require.NoError(t, err)

			got, err := renderPage(tpl, page{Title: "Summary", Path: "monthly/2024-01.html"}, tt.md)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, string(got), want)
			}
		})
	}
}

func TestPublish(t *testing.T) {
	l := testLedger(t)
	dir := t.TempDir()
	layout, err := parseLayout("")
	require.NoError(t, err)

	files, err := publish(context.Background(), l, fund.NewDefaultConfig().Reports, dir, layout)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"nav.png",
		"index.html",
		"calendar.html",
		filepath.Join("monthly", "2024-02.png"),
		filepath.Join("monthly", "2024-02.html"),
		filepath.Join("monthly", "2024-01.png"),
		filepath.Join("monthly", "2024-01.html"),
	}, files)

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "<title>Portfolio Summary</title>")
	assert.Contains(t, string(index), `<a href="monthly/2024-01.html">January 2024</a>`)
	assert.Contains(t, string(index), `<img src="nav.png" alt="NAV vs Benchmark">`)
	assert.Contains(t, string(index), "<table>")

	for _, f := range files {
		assert.FileExists(t, filepath.Join(dir, f))
	}
}
