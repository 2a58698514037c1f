package actions

import (
	"salvage-server/internal/domain"
	"salvage-server/internal/engine/handlers"
	"salvage-server/pkg/api"
)

// HandleAttack - бой начинается, только если цель в радиусе и игрок не занят
func HandleAttack(ctx handlers.Context, p api.EntityPayload) (handlers.Result, error) {
	return handlers.FromOutcome(ctx.Game.RequestCombat(p.TargetID), domain.LogCombat), nil
}
