// Package sampledata embeds a small logistics dataset so the dashboard runs
// without any external data directory.
package sampledata

import (
	"embed"
	"io/fs"
)

//go:embed data/*.json
var files embed.FS

// FS returns the sample data rooted at its data directory.
func FS() fs.FS {
	sub, err := fs.Sub(files, "data")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return sub
}
