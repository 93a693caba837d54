package accesscontrolservice

import (
	"log/slog"

	httpadapter "electorate/contexts/identity-access/access-control-service/adapters/http"
	"electorate/contexts/identity-access/access-control-service/adapters/memory"
	"electorate/contexts/identity-access/access-control-service/application/commands"
	"electorate/contexts/identity-access/access-control-service/application/queries"
	"electorate/contexts/identity-access/access-control-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Checks  queries.CheckUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Admins ports.AdminRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	adminUseCase := commands.AdminUseCase{
		Admins: deps.Admins,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	checkUseCase := queries.CheckUseCase{
		Admins: deps.Admins,
	}
	return Module{
		Handler: httpadapter.Handler{
			Admins: adminUseCase,
			Checks: checkUseCase,
			Logger: deps.Logger,
		},
		Checks: checkUseCase,
	}
}

func NewInMemoryModule(seedAdmins []string, logger *slog.Logger) Module {
	store := memory.NewStore(seedAdmins)
	module := NewModule(Dependencies{
		Admins: store,
		Clock:  memory.SystemClock{},
		Logger: logger,
	})
	module.Store = store
	return module
}
