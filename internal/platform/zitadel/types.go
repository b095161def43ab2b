package zitadel

// Project is a management API project.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is a management API user as returned by _search.
type User struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
}

// OIDCApp is an OIDC application. ClientSecret is only present on the
// response that created the app.
type OIDCApp struct {
	ID           string `json:"appId"`
	Name         string `json:"name"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

// MachineKey is a minted machine-user key. Details holds the decoded key
// JSON, suitable for writing to a key file.
type MachineKey struct {
	KeyID   string
	Details []byte
}
