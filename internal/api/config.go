package api

import "strings"

// Config resolves the configured catalog API base URL into per-resource
// endpoint URLs.
type Config struct {
	BaseUrl string
}

func (c Config) Resolve(endpoint string) string {
	return c.BaseUrl + "/" + endpoint
}

// BaseOrigin strips a trailing /api segment from the base URL. Image paths
// are served from the origin, not the API prefix.
func (c Config) BaseOrigin() string {
	return strings.TrimSuffix(c.BaseUrl, "/api")
}
