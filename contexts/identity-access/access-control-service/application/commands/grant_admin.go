package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "electorate/contexts/identity-access/access-control-service/application"
	"electorate/contexts/identity-access/access-control-service/domain/entities"
	domainerrors "electorate/contexts/identity-access/access-control-service/domain/errors"
	"electorate/contexts/identity-access/access-control-service/ports"
)

// AdminUseCase coordinates administrator role grants and revocations.
type AdminUseCase struct {
	Admins ports.AdminRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

// GrantAdminCommand is transport-agnostic input for a role grant.
type GrantAdminCommand struct {
	ActorAddress  string
	TargetAddress string
}

// GrantAdmin grants the administrator role. The actor must already hold it.
func (uc AdminUseCase) GrantAdmin(ctx context.Context, cmd GrantAdminCommand) (entities.Administrator, error) {
	logger := application.ResolveLogger(uc.Logger)
	actor := strings.TrimSpace(cmd.ActorAddress)
	target := strings.TrimSpace(cmd.TargetAddress)
	logger.Info("admin grant started",
		"event", "access_grant_admin_started",
		"module", "identity-access/access-control-service",
		"layer", "application",
		"actor_address", actor,
		"target_address", target,
	)
	if actor == "" || target == "" {
		return entities.Administrator{}, domainerrors.ErrInvalidAddress
	}
	if err := uc.requireAdministrator(ctx, actor); err != nil {
		return entities.Administrator{}, err
	}
	existing, found, err := uc.Admins.GetAdministrator(ctx, target)
	if err != nil {
		return entities.Administrator{}, err
	}
	if found && existing.Active() {
		return entities.Administrator{}, domainerrors.ErrAlreadyAdministrator
	}

	grant := entities.Administrator{
		Address:   target,
		GrantedBy: actor,
		GrantedAt: uc.now(),
	}
	if err := uc.Admins.SaveAdministrator(ctx, grant); err != nil {
		return entities.Administrator{}, err
	}
	logger.Info("admin granted",
		"event", "access_admin_granted",
		"module", "identity-access/access-control-service",
		"layer", "application",
		"actor_address", actor,
		"target_address", target,
	)
	return grant, nil
}

func (uc AdminUseCase) requireAdministrator(ctx context.Context, address string) error {
	admin, found, err := uc.Admins.GetAdministrator(ctx, address)
	if err != nil {
		return err
	}
	if !found || !admin.Active() {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

func (uc AdminUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
