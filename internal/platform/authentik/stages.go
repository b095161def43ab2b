package authentik

import (
	"context"
	"fmt"
	"net/http"

	"github.com/imamik/idpctl/internal/platform/apihttp"
	"github.com/imamik/idpctl/internal/reconcile"
)

// Stock stage names from the default Authentik blueprints. Matching is by
// exact name for every stage kind.
const (
	InvitationStageName    = "default-enrollment-invitation"
	MFAValidationStageName = "default-authentication-mfa-validation"
	TOTPSetupStageName     = "default-authenticator-totp-setup"
)

const (
	invitationStagesPath = "/api/v3/stages/invitation/"
	validationStagesPath = "/api/v3/stages/authenticator/validate/"
	totpStagesPath       = "/api/v3/stages/authenticator/totp/"
)

// EnsureInvitationStage converges the enrollment invitation stage. The stage
// is created permissive (enrollment continues without an invitation) so that
// enabling invitations never locks out open registration.
func (c *Client) EnsureInvitationStage(ctx context.Context) (InvitationStage, bool, error) {
	c.log.Infof("Ensuring invitation stage %q...", InvitationStageName)

	return (&reconcile.EnsureOperation[InvitationStage]{
		Name:         InvitationStageName,
		ResourceType: "invitation stage",
		List: func(ctx context.Context) ([]InvitationStage, error) {
			return listResources[InvitationStage](ctx, c.api, invitationStagesPath)
		},
		Match: func(s InvitationStage) bool {
			return s.Name == InvitationStageName
		},
		Create: func(ctx context.Context) (InvitationStage, error) {
			return createResource[InvitationStage](ctx, c.api, invitationStagesPath, map[string]any{
				"name":                             InvitationStageName,
				"continue_flow_without_invitation": true,
			})
		},
		IsConflict: apihttp.IsConflict,
	}).Execute(ctx)
}

// EnforceMFAEnrollment patches the stock MFA validation stage so users
// without a configured authenticator are forced through TOTP setup at login.
func (c *Client) EnforceMFAEnrollment(ctx context.Context) (ValidationStage, error) {
	mfaStage, found, err := reconcile.First(ctx, "validation stage",
		func(ctx context.Context) ([]ValidationStage, error) {
			return listResources[ValidationStage](ctx, c.api, validationStagesPath)
		},
		func(s ValidationStage) bool { return s.Name == MFAValidationStageName })
	if err != nil {
		return ValidationStage{}, err
	}
	if !found {
		return ValidationStage{}, fmt.Errorf("%s stage not found", MFAValidationStageName)
	}

	totpStage, found, err := reconcile.First(ctx, "TOTP setup stage",
		func(ctx context.Context) ([]TOTPStage, error) {
			return listResources[TOTPStage](ctx, c.api, totpStagesPath)
		},
		func(s TOTPStage) bool { return s.Name == TOTPSetupStageName })
	if err != nil {
		return ValidationStage{}, err
	}
	if !found {
		return ValidationStage{}, fmt.Errorf("%s stage not found", TOTPSetupStageName)
	}

	c.log.Infof("Enforcing MFA enrollment on stage %q...", mfaStage.Name)

	resp := c.api.Do(ctx, http.MethodPatch, validationStagesPath+mfaStage.PK+"/", map[string]any{
		"name":                  mfaStage.Name,
		"not_configured_action": "configure",
		"configuration_stages":  []string{totpStage.PK},
	})
	if err := resp.Err(); err != nil {
		return ValidationStage{}, fmt.Errorf("failed to update MFA validation stage: %w", err)
	}

	var updated ValidationStage
	if err := resp.Decode(&updated); err != nil {
		return ValidationStage{}, err
	}
	return updated, nil
}
