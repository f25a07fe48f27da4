package render

import (
	"fmt"
	"html"
)

// htmlShell is the minimal styling container handed to the page renderer:
// monospace, pre-wrapped, so the fixed-width text layout survives
// pagination unchanged.
const htmlShell = `<!DOCTYPE html>
<html>
<head>
<title>%s</title>
<style>
body {
  font-family: 'Courier New', monospace;
  margin: 40px;
  background-color: white;
  color: black;
  line-height: 1.4;
}
.content {
  white-space: pre-wrap;
  font-size: 12px;
}
</style>
</head>
<body>
<div class="content">%s</div>
</body>
</html>
`

// HTMLPage wraps a rendered text body for the page renderer.
func HTMLPage(text, title string) string {
	return fmt.Sprintf(htmlShell, html.EscapeString(title), html.EscapeString(text))
}
