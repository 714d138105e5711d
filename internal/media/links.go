// Package media rewrites storage-provider share links into URLs that can be
// embedded directly as image sources.
package media

import (
	"regexp"
	"strings"
	"sync"

	"github.com/samber/lo"
)

const (
	driveHost      = "drive.google.com"
	directLinkBase = "https://lh3.googleusercontent.com/u/0/d/"
)

var (
	// /file/d/<id>/view
	filePathID = regexp.MustCompile(`/file/d/(.+?)/`)
	// ?id=<id>&... or ?id=<id>
	queryParamID = regexp.MustCompile(`id=(.+?)(?:&|$)`)

	cache sync.Map // string -> string
)

// DirectLink returns the direct content URL for a Drive share link, or raw
// unchanged when no file id can be found. It never fails.
func DirectLink(raw string) string {
	if v, ok := cache.Load(raw); ok {
		return v.(string)
	}
	out := directLink(raw)
	cache.Store(raw, out)
	return out
}

// Gallery normalizes every URL, keeping order.
func Gallery(raw []string) []string {
	return lo.Map(raw, func(u string, _ int) string { return DirectLink(u) })
}

func directLink(raw string) string {
	if !strings.Contains(raw, driveHost) {
		return raw
	}
	if id := fileID(raw); id != "" {
		return directLinkBase + id
	}
	return raw
}

func fileID(raw string) string {
	if m := filePathID.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := queryParamID.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return ""
}
