package actions

import (
	"salvage-server/internal/domain"
	"salvage-server/internal/engine/handlers"
	"salvage-server/pkg/api"
)

func HandleDeployCrew(ctx handlers.Context, p api.DeployPayload) (handlers.Result, error) {
	out := ctx.Game.DeployCrew(domain.Position{X: p.X, Y: p.Y}, p.TargetID)
	return handlers.FromOutcome(out, domain.LogCrew), nil
}

func HandleRetrieveCrew(ctx handlers.Context, p api.EntityPayload) (handlers.Result, error) {
	return handlers.FromOutcome(ctx.Game.RetrieveCrew(p.TargetID), domain.LogCrew), nil
}
