package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/imamik/idpctl/internal/output"
	"github.com/imamik/idpctl/internal/platform/zitadel"
)

// Expirations for minted automation credentials. Rotation is out of scope,
// so both are deliberately long-lived.
var (
	machineKeyExpiration = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	patExpiration        = time.Date(2099, 12, 31, 23, 59, 59, 0, time.UTC)
)

// MachineUserRequest are the parameters of the machine-user command.
type MachineUserRequest struct {
	AdminUser     string
	AdminPassword string
	UserName      string
	KeyOutput     string
}

// BootstrapRequest are the parameters of the bootstrap command.
type BootstrapRequest struct {
	AdminUser     string
	AdminPassword string
	UserName      string
}

// ZitadelMachineUser creates the automation service account with the admin
// password grant and mints its JSON key.
func ZitadelMachineUser(ctx context.Context, opts Options, req MachineUserRequest) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return output.Failf("%v", err)
	}
	if cfg.Zitadel.Domain == "" {
		return output.Failf("zitadel.domain is not configured")
	}

	auth := newZitadelClient(cfg.Zitadel.Domain, "", log, clientOptions(cfg)...)
	token, err := auth.PasswordToken(ctx, req.AdminUser, req.AdminPassword)
	if err != nil {
		return output.Failf("%v", err)
	}

	client := newZitadelClient(cfg.Zitadel.Domain, token, log, clientOptions(cfg)...)

	user, created, err := client.EnsureMachineUser(ctx, machineUserOpts(req.UserName))
	if err != nil {
		return output.Failf("%v", err)
	}

	key, err := client.CreateMachineKey(ctx, user.ID, machineKeyExpiration)
	if err != nil {
		return output.Failf("%v", err)
	}

	status := "exists"
	if created {
		status = "created"
	}

	if req.KeyOutput != "" {
		if err := writeFile(req.KeyOutput, key.Details, 0o600); err != nil {
			return output.Failf("failed to write key file: %v", err)
		}
		return output.Emit(map[string]any{
			"status":   status,
			"user_id":  user.ID,
			"key_id":   key.KeyID,
			"key_path": req.KeyOutput,
		})
	}

	return output.Emit(map[string]any{
		"status":  status,
		"user_id": user.ID,
		"key_id":  key.KeyID,
		"key":     json.RawMessage(key.Details),
	})
}

// ZitadelSetup prepares the shared project and grants the automation
// service user PROJECT_OWNER on it.
func ZitadelSetup(ctx context.Context, opts Options, projectName, serviceUser string) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return output.Failf("%v", err)
	}

	client, err := zitadelAPIClient(ctx, cfg, log)
	if err != nil {
		return output.Failf("%v", err)
	}

	project, _, err := client.EnsureProject(ctx, projectName)
	if err != nil {
		return output.Failf("%v", err)
	}

	user, found, err := client.FindUser(ctx, serviceUser)
	if err != nil {
		return output.Failf("%v", err)
	}
	if !found {
		return output.Fail(output.Failure{
			Error:          "service user " + serviceUser + " not found",
			ActionRequired: "create the automation service account first",
			Instructions: []string{
				"Run: idpctl zitadel bootstrap --admin-user <login> --admin-password <password>",
				"or create the machine user in the Zitadel console",
			},
		})
	}

	granted := client.GrantProjectOwner(ctx, project.ID, user.ID)

	return output.Emit(map[string]any{
		"status":     "ok",
		"project_id": project.ID,
		"user_id":    user.ID,
		"granted":    granted,
	})
}

// ZitadelBootstrap logs in through the login UI, creates the automation
// machine user and mints a long-lived PAT.
func ZitadelBootstrap(ctx context.Context, opts Options, req BootstrapRequest) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return output.Failf("%v", err)
	}
	if cfg.Zitadel.Domain == "" {
		return output.Failf("zitadel.domain is not configured")
	}

	client := newZitadelBootstrap(cfg.Zitadel.Domain, log, clientOptions(cfg)...)

	if err := client.Login(ctx, req.AdminUser, req.AdminPassword); err != nil {
		return output.Failf("%v", err)
	}

	user, _, err := client.EnsureMachineUser(ctx, machineUserOpts(req.UserName))
	if err != nil {
		return output.Failf("%v", err)
	}

	token, err := client.CreatePAT(ctx, user.ID, patExpiration)
	if err != nil {
		return output.Failf("%v", err)
	}

	return output.Emit(map[string]any{
		"status":    "created",
		"user_id":   user.ID,
		"token":     token,
		"next_step": "store the token as zitadel.token in the configuration",
	})
}

func machineUserOpts(userName string) zitadel.MachineUserOpts {
	if userName == "" {
		userName = zitadel.DefaultMachineUserName
	}
	return zitadel.MachineUserOpts{
		UserName:    userName,
		Name:        zitadel.DefaultMachineName,
		Description: "Service account for automated API operations",
	}
}
