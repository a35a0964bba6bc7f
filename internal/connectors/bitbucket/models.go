package bitbucket

import "encoding/json"

// paginationResponse is the envelope every Bitbucket list endpoint returns.
type paginationResponse struct {
	Page       int64           `json:"page"`
	PageLength int64           `json:"pagelen"`
	Size       int64           `json:"size"`
	Next       string          `json:"next"`
	Values     json.RawMessage `json:"values"`
}

// workspaceResponse is a record returned from the workspaces endpoint.
type workspaceResponse struct {
	IsPrivate bool   `json:"is_private"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Type      string `json:"type"`
	UUID      string `json:"uuid"`
	Links     struct {
		Avatar struct {
			Href string `json:"href"`
		} `json:"avatar"`
		HTML struct {
			Href string `json:"href"`
		} `json:"html"`
	} `json:"links"`
}

// User is the authenticated user returned from the /2.0/user endpoint.
type User struct {
	UUID        string `json:"uuid"`
	AccountID   string `json:"account_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Links       struct {
		Avatar struct {
			Href string `json:"href"`
		} `json:"avatar"`
	} `json:"links"`
}
