package actions

import (
	"salvage-server/internal/domain"
	"salvage-server/internal/engine/handlers"
)

func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	out := domain.Accepted("Добро пожаловать на борт. Карта открыта вокруг причала.")
	return handlers.FromOutcome(out, domain.LogInfo), nil
}
