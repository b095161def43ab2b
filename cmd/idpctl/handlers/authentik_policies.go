package handlers

import (
	"context"

	"github.com/imamik/idpctl/internal/output"
	"github.com/imamik/idpctl/internal/platform/authentik"
)

// AuthentikInvitation enables invitation-based enrollment: the invitation
// stage is created if missing and bound to the enrollment flow at the first
// position.
func AuthentikInvitation(ctx context.Context, opts Options) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return output.Failf("%v", err)
	}
	if err := cfg.RequireAuthentik(); err != nil {
		return output.Failf("%v", err)
	}

	client := newAuthentikClient(cfg.Authentik.URL, cfg.Authentik.Token, log, clientOptions(cfg)...)

	flow, found, err := client.FlowByDesignation(ctx, authentik.DesignationEnrollment)
	if err != nil {
		return output.Failf("%v", err)
	}
	if !found {
		return output.Failf("no enrollment flow found")
	}

	stage, stageCreated, err := client.EnsureInvitationStage(ctx)
	if err != nil {
		return output.Failf("%v", err)
	}

	binding, bindingCreated, err := client.EnsureStageBinding(ctx, flow.PK, stage.PK, 0)
	if err != nil {
		return output.Failf("%v", err)
	}

	status := "exists"
	if stageCreated || bindingCreated {
		status = "created"
	}

	return output.Emit(map[string]any{
		"status":     status,
		"flow_id":    flow.PK,
		"flow_slug":  flow.Slug,
		"stage_id":   stage.PK,
		"binding_id": binding.PK,
	})
}

// AuthentikRecovery verifies that a recovery flow exists and reports it.
func AuthentikRecovery(ctx context.Context, opts Options) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return output.Failf("%v", err)
	}
	if err := cfg.RequireAuthentik(); err != nil {
		return output.Failf("%v", err)
	}

	client := newAuthentikClient(cfg.Authentik.URL, cfg.Authentik.Token, log, clientOptions(cfg)...)

	flow, found, err := client.FlowByDesignation(ctx, authentik.DesignationRecovery)
	if err != nil {
		return output.Failf("%v", err)
	}
	if !found {
		return output.Fail(output.Failure{
			Error:          "no recovery flow found",
			ActionRequired: "create a recovery flow",
			Instructions: []string{
				"Open the Authentik admin UI under Flows & Stages > Flows",
				"Create a flow with the recovery designation, or import the default-recovery-flow blueprint",
			},
		})
	}

	return output.Emit(map[string]any{
		"status":    "ok",
		"flow_id":   flow.PK,
		"flow_slug": flow.Slug,
	})
}

// AuthentikMFA enforces TOTP enrollment for users without a configured
// authenticator.
func AuthentikMFA(ctx context.Context, opts Options) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return output.Failf("%v", err)
	}
	if err := cfg.RequireAuthentik(); err != nil {
		return output.Failf("%v", err)
	}

	client := newAuthentikClient(cfg.Authentik.URL, cfg.Authentik.Token, log, clientOptions(cfg)...)

	stage, err := client.EnforceMFAEnrollment(ctx)
	if err != nil {
		return output.Failf("%v", err)
	}

	return output.Emit(map[string]any{
		"status":                "ok",
		"stage_id":              stage.PK,
		"not_configured_action": stage.NotConfiguredAction,
		"configuration_stages":  stage.ConfigurationStages,
	})
}

// AuthentikToken mints an app-password API token and emits its key.
func AuthentikToken(ctx context.Context, opts Options, identifier, password, description string) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return output.Failf("%v", err)
	}
	if err := cfg.RequireAuthentik(); err != nil {
		return output.Failf("%v", err)
	}

	client := newAuthentikClient(cfg.Authentik.URL, cfg.Authentik.Token, log, clientOptions(cfg)...)

	key, err := client.CreateAppPasswordToken(ctx, identifier, password, description)
	if err != nil {
		return output.Failf("%v", err)
	}

	return output.Emit(map[string]any{
		"status":     "created",
		"identifier": identifier,
		"token":      key,
	})
}
