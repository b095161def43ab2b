package authentik

// Flow is an Authentik flow instance (login, authorization, enrollment, ...).
type Flow struct {
	PK          string `json:"pk"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
}

// CertificateKeyPair is a signing key registered in Authentik.
type CertificateKeyPair struct {
	PK   string `json:"pk"`
	Name string `json:"name"`
}

// RedirectURI is one allowed OAuth2 redirect with its matching mode.
type RedirectURI struct {
	MatchingMode string `json:"matching_mode"`
	URL          string `json:"url"`
}

// Provider is an OAuth2/OpenID provider. Listing and creation both return
// the client credentials for confidential providers.
type Provider struct {
	PK                int           `json:"pk"`
	Name              string        `json:"name"`
	ClientID          string        `json:"client_id"`
	ClientSecret      string        `json:"client_secret"`
	AuthorizationFlow string        `json:"authorization_flow"`
	SigningKey        string        `json:"signing_key"`
	RedirectURIs      []RedirectURI `json:"redirect_uris"`
}

// Application is the user-facing application wired to a provider.
type Application struct {
	PK            string `json:"pk"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Provider      int    `json:"provider"`
	MetaLaunchURL string `json:"meta_launch_url"`
}

// InvitationStage gates enrollment behind an invitation token.
type InvitationStage struct {
	PK                            string `json:"pk"`
	Name                          string `json:"name"`
	ContinueFlowWithoutInvitation bool   `json:"continue_flow_without_invitation"`
}

// ValidationStage is an authenticator validation stage (MFA check).
type ValidationStage struct {
	PK                  string   `json:"pk"`
	Name                string   `json:"name"`
	NotConfiguredAction string   `json:"not_configured_action"`
	ConfigurationStages []string `json:"configuration_stages"`
}

// TOTPStage is a TOTP authenticator setup stage.
type TOTPStage struct {
	PK   string `json:"pk"`
	Name string `json:"name"`
}

// FlowStageBinding attaches a stage to a flow at a given order.
type FlowStageBinding struct {
	PK                 string `json:"pk"`
	Target             string `json:"target"`
	Stage              string `json:"stage"`
	Order              int    `json:"order"`
	EvaluateOnPlan     bool   `json:"evaluate_on_plan"`
	ReEvaluatePolicies bool   `json:"re_evaluate_policies"`
}

// Token is an Authentik API token.
type Token struct {
	PK         string `json:"pk"`
	Identifier string `json:"identifier"`
	Intent     string `json:"intent"`
	Key        string `json:"key"`
}
