package actions

import (
	"salvage-server/internal/domain"
	"salvage-server/internal/engine/handlers"
	"salvage-server/pkg/api"
)

func HandleCollect(ctx handlers.Context, p api.EntityPayload) (handlers.Result, error) {
	return handlers.FromOutcome(ctx.Game.RequestCollect(p.TargetID), domain.LogInfo), nil
}
