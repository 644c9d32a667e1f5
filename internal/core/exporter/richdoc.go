package exporter

import (
	"html"
	"strings"
)

// Office namespaces plus the mso conditional make Word open the file straight
// into print view instead of web view.
const wordDocHeader = `<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word" xmlns="http://www.w3.org/TR/REC-html40">
<head>
<meta http-equiv="Content-Type" content="text/html; charset=utf-8">
<!--[if gte mso 9]><xml><w:WordDocument><w:View>Print</w:View><w:Zoom>100</w:Zoom></w:WordDocument></xml><![endif]-->
<style>
body { font-family: Calibri, Arial, sans-serif; font-size: 12pt; }
p { margin: 0 0 8pt 0; }
p.rtl { direction: rtl; text-align: right; font-family: 'Vazirmatn', 'B Nazanin', Tahoma, sans-serif; }
p.ltr { direction: ltr; text-align: left; }
</style>
</head>
<body>
`

const wordDocFooter = `</body>
</html>
`

// buildWordDoc wraps content in a Word-compatible HTML envelope. Each line
// becomes a paragraph with its own direction; blank lines survive as
// explicit breaks so paragraph spacing round-trips.
func buildWordDoc(content string) []byte {
	var b strings.Builder
	b.Grow(len(wordDocHeader) + len(content)*2 + len(wordDocFooter))
	b.WriteString(wordDocHeader)
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
	b.WriteString(wordDocFooter)
	return []byte(b.String())
}
