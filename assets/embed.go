// Package assets embeds the stylesheet and images served under /assets/.
package assets

import "embed"

// AssetsFS holds css/app.css (built by "do gen") and the static images
//
//go:embed css img
var AssetsFS embed.FS
