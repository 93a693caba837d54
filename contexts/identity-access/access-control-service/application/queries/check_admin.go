package queries

import (
	"context"
	"strings"

	domainerrors "electorate/contexts/identity-access/access-control-service/domain/errors"
	"electorate/contexts/identity-access/access-control-service/ports"
)

// CheckUseCase answers administrator membership questions. It doubles as the
// access-control gate other modules consult before admin-reserved mutations.
type CheckUseCase struct {
	Admins ports.AdminRepository
}

// IsAdministrator reports whether the address holds an active grant.
func (uc CheckUseCase) IsAdministrator(ctx context.Context, address string) (bool, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return false, nil
	}
	admin, found, err := uc.Admins.GetAdministrator(ctx, address)
	if err != nil {
		return false, err
	}
	return found && admin.Active(), nil
}

// RequireAdministrator fails with ErrUnauthorized for non-administrators.
func (uc CheckUseCase) RequireAdministrator(ctx context.Context, address string) error {
	ok, err := uc.IsAdministrator(ctx, address)
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.ErrUnauthorized
	}
	return nil
}
