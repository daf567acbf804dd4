// Package entity contains domain entities representing core business concepts.
// These entities are pure Go types with no infrastructure dependencies.
package entity

import "errors"

// SiteID is the opaque key naming one configured social-media source
// (e.g. "youtube", "tiktok"). It is unique across all panels.
type SiteID string

// NoSite is the sentinel used for an empty slot (notably an absent secondary).
const NoSite SiteID = ""

// Site describes one configured source.
type Site struct {
	ID   SiteID
	Name string
	URL  string
}

var (
	// ErrUnknownSite is returned when a site identifier is not configured.
	ErrUnknownSite = errors.New("unknown site")
	// ErrDuplicateSite is returned when a site identifier is configured twice.
	ErrDuplicateSite = errors.New("duplicate site")
)

// DefaultSites returns the built-in site list, in default arrangement order.
func DefaultSites() []Site {
	return []Site{
		{ID: "youtube", Name: "YouTube", URL: "https://www.youtube.com/"},
		{ID: "tiktok", Name: "TikTok", URL: "https://www.tiktok.com/"},
		{ID: "x", Name: "X", URL: "https://x.com/"},
		{ID: "instagram", Name: "Instagram", URL: "https://www.instagram.com/"},
		{ID: "threads", Name: "Threads", URL: "https://www.threads.net/"},
	}
}

// SiteIDs extracts identifiers from sites, preserving order.
func SiteIDs(sites []Site) []SiteID {
	ids := make([]SiteID, len(sites))
	for i, s := range sites {
		ids[i] = s.ID
	}
	return ids
}
