package exporter

import (
	"fmt"
	"html"
	"strings"
)

const printPageStyle = `body { font-family: Georgia, 'Times New Roman', serif; font-size: 12pt; line-height: 1.7; color: #1a1a1a; max-width: 48em; margin: 2em auto; padding: 0 1.5em; }
p { margin: 0 0 10px 0; white-space: pre-wrap; }
p.rtl { direction: rtl; text-align: right; font-family: 'Vazirmatn', Tahoma, sans-serif; }
p.ltr { direction: ltr; text-align: left; }
@media print { body { margin: 0; max-width: none; } }`

// buildPrintPage renders a standalone styled page for the host print dialog.
// The page is handed to the browser inline; printing to an actual PDF file
// happens on the client side.
func buildPrintPage(title, content string) []byte {
	var b strings.Builder
	b.Grow(len(content)*2 + 512)
	fmt.Fprintf(&b, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>\n%s\n</style>\n</head>\n<body>\n", html.EscapeString(title), printPageStyle)
	for _, line := range splitLines(content) {
		if strings.TrimSpace(line) == "" {
			b.WriteString("<br>\n")
			continue
		}
		if containsRTL(line) {
			b.WriteString(`<p class="rtl" dir="rtl">`)
		} else {
			b.WriteString(`<p class="ltr" dir="ltr">`)
		}
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return []byte(b.String())
}
