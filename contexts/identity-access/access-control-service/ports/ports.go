package ports

import (
	"context"
	"time"

	"electorate/contexts/identity-access/access-control-service/domain/entities"
)

type AdminRepository interface {
	GetAdministrator(ctx context.Context, address string) (entities.Administrator, bool, error)
	SaveAdministrator(ctx context.Context, admin entities.Administrator) error
	ListAdministrators(ctx context.Context) ([]entities.Administrator, error)
}

type Clock interface {
	Now() time.Time
}
