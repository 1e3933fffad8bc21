package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const descriptionWidth = 72

// WriteText renders v as aligned plain text.
func WriteText(w io.Writer, v *ProductView) error {
	if v == nil {
		_, err := fmt.Fprintln(w, "No product")
		return err
	}

	rows := [][2]string{
		{"Title", v.Title},
		{"Source", v.Source},
		{"Price", v.Currency + v.CurrentPrice},
	}
	if v.OriginalPrice != "" {
		rows = append(rows, [2]string{"MRP", v.Currency + v.OriginalPrice})
	}
	if v.Discount != "" {
		rows = append(rows, [2]string{"Discount", v.Discount})
	}
	if v.Rating != "" {
		rating := v.Rating
		if v.RatingCount != "" {
			rating += " (" + v.RatingCount + ")"
		}
		rows = append(rows, [2]string{"Rating", rating})
	}
	rows = append(rows,
		[2]string{"Availability", v.Availability},
		[2]string{"Seller", v.Seller},
		[2]string{"Image", v.MainImage},
		[2]string{"URL", v.URL},
		[2]string{"Scraped", v.ScrapedAt},
	)

	var sb strings.Builder
	writeAligned(&sb, rows)

	if v.Description != "" {
		sb.WriteString("\n")
		for _, line := range wrap(v.Description, descriptionWidth) {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	if len(v.Highlights) > 0 {
		sb.WriteString("\nHighlights\n")
		for _, h := range v.Highlights {
			sb.WriteString("  • ")
			sb.WriteString(h)
			sb.WriteString("\n")
		}
	}
	if len(v.Specifications) > 0 {
		sb.WriteString("\nSpecifications\n")
		specRows := make([][2]string, 0, len(v.Specifications))
		for _, s := range v.Specifications {
			specRows = append(specRows, [2]string{"  " + s.Key, s.Value})
		}
		writeAligned(&sb, specRows)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// writeAligned pads the first column to its widest display width. Empty
// values are skipped.
func writeAligned(sb *strings.Builder, rows [][2]string) {
	width := 0
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		if n := runewidth.StringWidth(r[0]); n > width {
			width = n
		}
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		sb.WriteString(r[0])
		sb.WriteString(strings.Repeat(" ", width-runewidth.StringWidth(r[0])))
		sb.WriteString("  ")
		sb.WriteString(r[1])
		sb.WriteString("\n")
	}
}

func wrap(s string, width int) []string {
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, word := range strings.Fields(s) {
		ww := runewidth.StringWidth(word)
		if lineWidth > 0 && lineWidth+1+ww > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += ww
	}
	if lineWidth > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
