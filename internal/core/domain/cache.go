// Package domain contains the core types of mesh generation and caching.
package domain

import "time"

// CacheEntry is a generated artifact stored under its identifier.
type CacheEntry struct {
	Identifier string
	Path       string
	Mode       MeshMode
	Size       int64
	ModTime    time.Time
}

// CacheUsage summarizes the files directly inside a cache directory.
type CacheUsage struct {
	Dir   string
	Files int
	Bytes int64
}

// Exceeds reports whether the usage is strictly above limitMiB mebibytes.
func (u CacheUsage) Exceeds(limitMiB int64) bool {
	return u.Bytes > limitMiB*MiB
}

// MeshRecord is the sidecar metadata written next to a cache entry.
type MeshRecord struct {
	Identifier string     `json:"identifier,omitzero"`
	Generator  string     `json:"generator,omitzero"`
	Parameters Parameters `json:"parameters,omitzero"`
	Modes      []string   `json:"modes,omitzero"`
	Refined    bool       `json:"refined,omitzero"`
	CreatedAt  time.Time  `json:"created_at,omitzero"`
	UpdatedAt  time.Time  `json:"updated_at,omitzero"`
}
