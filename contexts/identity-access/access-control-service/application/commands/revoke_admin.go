package commands

import (
	"context"
	"strings"

	application "electorate/contexts/identity-access/access-control-service/application"
	domainerrors "electorate/contexts/identity-access/access-control-service/domain/errors"
)

// RevokeAdminCommand is transport-agnostic input for a role revocation.
type RevokeAdminCommand struct {
	ActorAddress  string
	TargetAddress string
}

// RevokeAdmin removes the administrator role. The last active grant cannot
// be revoked, otherwise the workflow would be permanently stuck.
func (uc AdminUseCase) RevokeAdmin(ctx context.Context, cmd RevokeAdminCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	actor := strings.TrimSpace(cmd.ActorAddress)
	target := strings.TrimSpace(cmd.TargetAddress)
	logger.Info("admin revoke started",
		"event", "access_revoke_admin_started",
		"module", "identity-access/access-control-service",
		"layer", "application",
		"actor_address", actor,
		"target_address", target,
	)
	if actor == "" || target == "" {
		return domainerrors.ErrInvalidAddress
	}
	if err := uc.requireAdministrator(ctx, actor); err != nil {
		return err
	}
	admin, found, err := uc.Admins.GetAdministrator(ctx, target)
	if err != nil {
		return err
	}
	if !found || !admin.Active() {
		return domainerrors.ErrNotAdministrator
	}

	all, err := uc.Admins.ListAdministrators(ctx)
	if err != nil {
		return err
	}
	active := 0
	for _, item := range all {
		if item.Active() {
			active++
		}
	}
	if active <= 1 {
		return domainerrors.ErrLastAdministrator
	}

	now := uc.now()
	admin.Revoked = true
	admin.RevokedBy = actor
	admin.RevokedAt = &now
	if err := uc.Admins.SaveAdministrator(ctx, admin); err != nil {
		return err
	}
	logger.Info("admin revoked",
		"event", "access_admin_revoked",
		"module", "identity-access/access-control-service",
		"layer", "application",
		"actor_address", actor,
		"target_address", target,
	)
	return nil
}
