package httpadapter

import (
	"context"
	"log/slog"

	"electorate/contexts/identity-access/access-control-service/application/commands"
	"electorate/contexts/identity-access/access-control-service/application/queries"
	httptransport "electorate/contexts/identity-access/access-control-service/transport/http"
)

type Handler struct {
	Admins commands.AdminUseCase
	Checks queries.CheckUseCase
	Logger *slog.Logger
}

func (h Handler) GrantAdminHandler(
	ctx context.Context,
	actorAddress string,
	req httptransport.GrantAdminRequest,
) (httptransport.AdminResponse, error) {
	grant, err := h.Admins.GrantAdmin(ctx, commands.GrantAdminCommand{
		ActorAddress:  actorAddress,
		TargetAddress: req.Address,
	})
	if err != nil {
		return httptransport.AdminResponse{}, err
	}
	return httptransport.AdminResponse{
		Address:       grant.Address,
		Administrator: true,
		GrantedBy:     grant.GrantedBy,
	}, nil
}

func (h Handler) RevokeAdminHandler(
	ctx context.Context,
	actorAddress string,
	req httptransport.RevokeAdminRequest,
) error {
	return h.Admins.RevokeAdmin(ctx, commands.RevokeAdminCommand{
		ActorAddress:  actorAddress,
		TargetAddress: req.Address,
	})
}

func (h Handler) CheckAdminHandler(ctx context.Context, address string) (httptransport.AdminResponse, error) {
	ok, err := h.Checks.IsAdministrator(ctx, address)
	if err != nil {
		return httptransport.AdminResponse{}, err
	}
	return httptransport.AdminResponse{
		Address:       address,
		Administrator: ok,
	}, nil
}
