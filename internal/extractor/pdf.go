// Package extractor pulls plain text out of PDF bank statements. PDFs vary
// wildly in how their text is encoded, so extraction walks a chain of
// methods, keeping the first result that passes the readability gate.
package extractor

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads a PDF file and returns the text of each page. It tries
// the structured library first, then the external pdftotext tool, then OCR
// for scanned statements. Garbage output is never returned: every method's
// result must pass the readability gate.
func ExtractText(filePath string) ([]string, error) {
	pages, libErr := extractWithLibrary(filePath)
	if libErr == nil && looksReadable(pages) {
		return pages, nil
	}

	if pages, err := extractWithPdftotext(filePath); err == nil && looksReadable(pages) {
		return pages, nil
	}

	if pages, err := extractWithOCR(filePath); err == nil && looksReadable(pages) {
		return pages, nil
	}

	if libErr != nil {
		return nil, fmt.Errorf("pdf text extraction failed: %v (the file may be image-based or use custom font encodings)", libErr)
	}
	return nil, fmt.Errorf("no readable text could be extracted from pdf (the file may be image-based or use custom font encodings)")
}

// extractWithLibrary runs the ledongthuc/pdf extraction methods in order of
// layout fidelity. The library panics on some malformed files, so the whole
// attempt is fenced with recover.
func extractWithLibrary(filePath string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, openErr
	}
	defer f.Close()

	if r.NumPage() == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	for _, method := range []func(*pdf.Reader) []string{byRow, byContent, byPlainText} {
		if pages = method(r); looksReadable(pages) {
			return pages, nil
		}
	}
	return pages, nil
}

// byRow uses GetTextByRow, which preserves tabular layout best.
func byRow(r *pdf.Reader) []string {
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var words []string
			for _, w := range row.Content {
				words = append(words, w.S)
			}
			if line := strings.TrimSpace(strings.Join(words, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// byContent reconstructs rows from raw text objects: fragments are grouped by
// rounded Y coordinate, ordered left to right, and a wide X gap becomes a
// column separator.
func byContent(r *pdf.Reader) []string {
	type fragment struct {
		x float64
		s string
	}
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		rows := make(map[int][]fragment)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			y := int(math.Round(t.Y))
			rows[y] = append(rows[y], fragment{x: t.X, s: t.S})
		}

		ys := make([]int, 0, len(rows))
		for y := range rows {
			ys = append(ys, y)
		}
		// PDF Y runs bottom to top.
		sort.Sort(sort.Reverse(sort.IntSlice(ys)))

		var lines []string
		for _, y := range ys {
			frags := rows[y]
			sort.Slice(frags, func(a, b int) bool { return frags[a].x < frags[b].x })

			var sb strings.Builder
			var prevX float64
			for j, f := range frags {
				if j > 0 && f.x-prevX > 15 {
					sb.WriteString("  ")
				}
				sb.WriteString(f.s)
				prevX = f.x
			}
			if line := strings.TrimSpace(sb.String()); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// byPlainText falls back to per-page plain text with the page's font maps,
// then to whole-document plain text.
func byPlainText(r *pdf.Reader) []string {
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			f := page.Font(name)
			fonts[name] = &f
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	if looksReadable(pages) {
		return pages
	}

	reader, err := r.GetPlainText()
	if err != nil {
		return pages
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return pages
	}
	if text := strings.TrimSpace(string(data)); text != "" {
		return []string{text}
	}
	return pages
}
