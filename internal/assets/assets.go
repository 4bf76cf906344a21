// Package assets embeds the browser control page.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed web
var embedded embed.FS

// WebUI is the control page tree with the web/ prefix removed.
var WebUI = mustSub(embedded, "web")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic("assets: " + err.Error())
	}
	return sub
}
