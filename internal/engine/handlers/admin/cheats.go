package admin

import (
	"errors"

	"salvage-server/internal/domain"
	"salvage-server/internal/engine/handlers"
)

// GrantPayload: { "currency": 100 }
type GrantPayload struct {
	Currency int `json:"currency"`
}

func (p GrantPayload) Validate() error {
	if p.Currency <= 0 {
		return errors.New("currency must be positive")
	}
	return nil
}

func HandleGrant(ctx handlers.Context, p GrantPayload) (handlers.Result, error) {
	if ctx.Admin == nil {
		return handlers.Result{}, errors.New("admin interface unavailable")
	}
	return handlers.FromOutcome(ctx.Admin.GrantCurrency(p.Currency), domain.LogInfo), nil
}

// TeleportPayload: { "x": 10, "y": 10 }
type TeleportPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func HandleTeleport(ctx handlers.Context, p TeleportPayload) (handlers.Result, error) {
	if ctx.Admin == nil {
		return handlers.Result{}, errors.New("admin interface unavailable")
	}
	return handlers.FromOutcome(ctx.Admin.Teleport(domain.Position{X: p.X, Y: p.Y}), domain.LogInfo), nil
}
