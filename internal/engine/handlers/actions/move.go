package actions

import (
	"salvage-server/internal/domain"
	"salvage-server/internal/engine/handlers"
	"salvage-server/pkg/api"
)

func HandleMove(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	out := ctx.Game.RequestMove(domain.Position{X: p.X, Y: p.Y})

	// Подтверждение отмены сбора - это вопрос игроку, а не ошибка
	if out.NeedsConfirm {
		return handlers.Result{Msg: out.Message, MsgType: domain.LogInfo, Outcome: out}, nil
	}
	return handlers.FromOutcome(out, domain.LogInfo), nil
}

func HandleCancelCollection(ctx handlers.Context, p api.ConfirmPayload) (handlers.Result, error) {
	return handlers.FromOutcome(ctx.Game.CancelCollection(p.Confirm), domain.LogInfo), nil
}
