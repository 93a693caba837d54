package electionservice

import (
	"log/slog"

	httpadapter "electorate/contexts/governance/election-service/adapters/http"
	"electorate/contexts/governance/election-service/adapters/memory"
	"electorate/contexts/governance/election-service/application/commands"
	"electorate/contexts/governance/election-service/application/queries"
	"electorate/contexts/governance/election-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Elections ports.ElectionRepository
	Access    ports.AccessControl
	Events    ports.EventRecorder
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	electionUseCase := commands.ElectionUseCase{
		Elections: deps.Elections,
		Access:    deps.Access,
		Events:    deps.Events,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	readUseCase := queries.ElectionUseCase{
		Elections: deps.Elections,
		Events:    deps.Events,
	}
	return Module{
		Handler: httpadapter.Handler{
			Elections: electionUseCase,
			Reads:     readUseCase,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(access ports.AccessControl, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Elections: store,
		Access:    access,
		Events:    store,
		Clock:     memory.SystemClock{},
		IDGen:     memory.UUIDGenerator{},
		Logger:    logger,
	})
	module.Store = store
	return module
}
