package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/**
var staticFS embed.FS

// FS returns an http.FileSystem for the embedded dashboard.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Should never happen as long as the static assets ship with
		// the binary. Expose the raw FS on error.
		return http.FS(staticFS)
	}
	return http.FS(sub)
}
