package docs

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

//go:embed ui/docs.html
var pageTemplate string

//go:embed ui/styles.css
var pageStyles string

//go:embed ui/app.js
var pageApp string

//go:embed ui/favicon.svg
var faviconSVG []byte

var page = template.Must(template.New("docs").Parse(pageTemplate))

type pageData struct {
	Title        string
	Heading      string
	Version      string
	Description  string
	BaseURL      string
	OpenAPIRoute string
	ToolsRoute   string
	FaviconURL   template.URL
	Links        []Link
	Styles       template.CSS
	App          template.JS
}

// renderPage builds the docs page. The page loads the tool listing from
// APIToolsRoute at view time, so it only depends on the configuration.
func renderPage(cfg Config) ([]byte, error) {
	data := pageData{
		Title:        cfg.Title,
		Heading:      cfg.pageTitle(),
		Version:      cfg.Version,
		Description:  cfg.Description,
		BaseURL:      cfg.BaseURL,
		OpenAPIRoute: cfg.OpenAPIRoute,
		ToolsRoute:   cfg.APIToolsRoute,
		// configured by the operator, not by page visitors
		FaviconURL: template.URL(cfg.faviconHref()),
		Links:      cfg.DocsLinks,
		Styles:     template.CSS(pageStyles),
		App:        template.JS(pageApp),
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render docs page: %w", err)
	}
	return buf.Bytes(), nil
}
