package static

import "embed"

//go:embed site.css
var FS embed.FS
