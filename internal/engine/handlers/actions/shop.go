package actions

import (
	"salvage-server/internal/domain"
	"salvage-server/internal/engine/handlers"
	"salvage-server/pkg/api"
)

func HandlePurchase(ctx handlers.Context, p api.PurchasePayload) (handlers.Result, error) {
	out := ctx.Game.Purchase(p.Kind, p.ItemID, domain.Position{X: p.X, Y: p.Y})
	return handlers.FromOutcome(out, domain.LogInfo), nil
}

func HandleSellCargo(ctx handlers.Context, p api.SellPayload) (handlers.Result, error) {
	return handlers.FromOutcome(ctx.Game.SellCargo(p.Resource, p.Count), domain.LogInfo), nil
}
