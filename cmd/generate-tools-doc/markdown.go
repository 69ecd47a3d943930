package main

import (
	"fmt"
	"strings"

	"github.com/rhobs/mcp-docs/pkg/extractor"
)

// formatTable generates a formatted markdown table with aligned columns
func formatTable(headers, alignments []string, rows [][]string) string {
	if len(headers) == 0 || len(rows) == 0 {
		return ""
	}

	// Calculate max width for each column
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = max(len(h), 3)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder

	sb.WriteString("|")
	for i, h := range headers {
		fmt.Fprintf(&sb, " %-*s |", widths[i], h)
	}
	sb.WriteString("\n")

	// Separator row with alignment
	sb.WriteString("|")
	for i, w := range widths {
		align := "l"
		if i < len(alignments) {
			align = alignments[i]
		}
		switch align {
		case "c":
			fmt.Fprintf(&sb, " :%s: |", strings.Repeat("-", w-2))
		case "r":
			fmt.Fprintf(&sb, " %s: |", strings.Repeat("-", w-1))
		default:
			fmt.Fprintf(&sb, " :%s |", strings.Repeat("-", w-1))
		}
	}
	sb.WriteString("\n")

	for _, row := range rows {
		sb.WriteString("|")
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprintf(&sb, " %-*s |", widths[i], cell)
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func generateMarkdown(records map[string]extractor.ToolRecord) string {
	var sb strings.Builder

	sb.WriteString("<!-- This file is auto-generated. Do not edit manually. -->\n")
	sb.WriteString("<!-- Run 'make generate-tools-doc' to regenerate. -->\n\n")

	sb.WriteString("# Available Tools\n\n")

	names := sortedNames(records)
	for i, name := range names {
		tool := records[name]
		fmt.Fprintf(&sb, "## `%s`\n\n", tool.Name)
		if tool.Title != tool.Name {
			fmt.Fprintf(&sb, "**%s**\n\n", tool.Title)
		}
		if len(tool.Tags) > 0 {
			fmt.Fprintf(&sb, "Tags: `%s`\n\n", strings.Join(tool.Tags, "`, `"))
		}

		// The first paragraph is the summary, the rest become usage tips
		paragraphs := strings.Split(strings.TrimSpace(tool.Description), "\n\n")
		fmt.Fprintf(&sb, "> %s\n\n", strings.TrimSpace(paragraphs[0]))

		if len(paragraphs) > 1 {
			sb.WriteString("**Usage Tips:**\n\n")
			for _, para := range paragraphs[1:] {
				if joined := strings.Join(strings.Fields(para), " "); joined != "" {
					fmt.Fprintf(&sb, "- %s\n", joined)
				}
			}
			sb.WriteString("\n")
		}

		sb.WriteString(parametersTable(tool))
		sb.WriteString("\n")

		if i < len(names)-1 {
			sb.WriteString("---\n\n")
		}
	}

	return sb.String()
}

func parametersTable(tool extractor.ToolRecord) string {
	if tool.Parameters == nil || tool.Parameters.Len() == 0 {
		return formatTable(
			[]string{"", ""},
			[]string{"l", "l"},
			[][]string{{"**Parameters**", "None"}},
		)
	}

	var rows [][]string
	for pair := tool.Parameters.Oldest(); pair != nil; pair = pair.Next() {
		p := pair.Value
		req := ""
		if p.Required {
			req = "✅"
		}
		def := ""
		if p.Default != nil {
			def = fmt.Sprintf("`%s`", *p.Default)
		}
		rows = append(rows, []string{
			fmt.Sprintf("`%s`", pair.Key),
			fmt.Sprintf("`%s`", p.Type),
			req,
			def,
			p.Description,
		})
	}
	return "**Parameters:**\n\n" + formatTable(
		[]string{"Parameter", "Type", "Required", "Default", "Description"},
		[]string{"l", "l", "c", "l", "l"},
		rows,
	)
}
