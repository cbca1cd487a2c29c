// Package web embeds the browser client.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed public
var files embed.FS

// Page returns the game page served at the root path.
func Page() ([]byte, error) {
	return files.ReadFile("public/index.html")
}

// Assets returns the client scripts and styles.
func Assets() (http.FileSystem, error) {
	sub, err := fs.Sub(files, "public")
	if err != nil {
		return nil, err
	}
	return http.FS(sub), nil
}
