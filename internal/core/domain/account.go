package domain

// ConfigAccount is an account record as returned by the host's validation
// contract, before normalisation. Optional fields may be absent.
type ConfigAccount struct {
	// ID is the provider-side unique identifier.
	ID string `json:"id"`
	// Public is true when the account's data is publicly visible.
	Public bool `json:"public"`
	// Type is the account kind (e.g. "org", "user").
	Type string `json:"type"`
	// AvatarURL references the account avatar.
	AvatarURL string `json:"avatarUrl,omitempty"`
	// Name is the display name. May be empty.
	Name string `json:"name,omitempty"`
	// Description is free-form account text. May be empty.
	Description string `json:"description,omitempty"`
	// TotalCount is the number of syncable items (repositories). May be zero.
	TotalCount int `json:"totalCount,omitempty"`
}

// Account is the normalised account shape the host persists and displays.
type Account struct {
	ID          string `json:"id" toml:"id"`
	Public      bool   `json:"public" toml:"public"`
	Type        string `json:"type" toml:"type"`
	AvatarURL   string `json:"avatarUrl" toml:"avatar_url"`
	Name        string `json:"name" toml:"name"`
	Description string `json:"description" toml:"description"`
	TotalCount  int    `json:"totalCount" toml:"total_count"`
}

// ToAccount normalises a raw validation account. Its sole job is filling
// defaults (empty name/description, zero count) and renaming fields; no
// other transformation occurs.
func ToAccount(data ConfigAccount) Account {
	return Account{
		ID:          data.ID,
		Public:      data.Public,
		Type:        data.Type,
		AvatarURL:   data.AvatarURL,
		Name:        data.Name,
		Description: data.Description,
		TotalCount:  data.TotalCount,
	}
}
