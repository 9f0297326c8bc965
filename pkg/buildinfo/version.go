// Package buildinfo holds version information stamped in at build time:
//
//	go build -ldflags "-X github.com/tagcloud/tagcloud/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/tagcloud/tagcloud/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/tagcloud/tagcloud/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/tagcloud
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the JSON form served by the HTTP API.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date, Go: runtime.Version()}
}

// String returns the build information on three lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s (%s)\n", Version, Commit, Date, runtime.Version())
}
