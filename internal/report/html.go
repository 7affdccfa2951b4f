package report

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/KrUtHi96/sidebyside/internal/compare"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Comparison report</title>
<style>
body { font-family: sans-serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; }
del { color: #a11; }
strong { color: #161; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTML renders the Markdown report through goldmark into a standalone page.
func HTML(res *compare.Result, g compare.Granularity) ([]byte, error) {
	var body bytes.Buffer
	if err := md.Convert(Markdown(res, g), &body); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return []byte(fmt.Sprintf(htmlShell, body.String())), nil
}
