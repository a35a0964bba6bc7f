package domain

// Workspace is a grouping concept returned by the Bitbucket listing API.
// Transient: fetched live to prove the credential works and to scope
// discovery, never persisted.
type Workspace struct {
	// UUID is the workspace's unique identifier, braces included.
	UUID string `json:"uuid"`
	// Name is the display name.
	Name string `json:"name"`
	// Slug is the URL-safe identifier.
	Slug string `json:"slug"`
	// IsPrivate is true when the workspace is not publicly visible.
	IsPrivate bool `json:"is_private"`
	// Type is the record kind reported by the API (always "workspace").
	Type string `json:"type"`
}
