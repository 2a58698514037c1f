package handlers

import (
	"encoding/json"

	"salvage-server/internal/domain"
)

// Commander - командный API симуляции. GameService неявно реализует этот интерфейс.
// Все методы вызываются только из горутины симуляции.
type Commander interface {
	RequestMove(target domain.Position) domain.CommandResult
	RequestCollect(collectibleID string) domain.CommandResult
	RequestCombat(enemyID string) domain.CommandResult
	DeployCrew(pos domain.Position, collectibleID string) domain.CommandResult
	RetrieveCrew(crewID string) domain.CommandResult
	CancelCollection(confirm bool) domain.CommandResult
	Purchase(kind, itemID string, at domain.Position) domain.CommandResult
	SellCargo(resource string, count int) domain.CommandResult
}

// Admin - отладочные операции (только для /debug)
type Admin interface {
	GrantCurrency(amount int) domain.CommandResult
	Teleport(to domain.Position) domain.CommandResult
}

// Context передает хендлеру доступ к симуляции.
type Context struct {
	Game  Commander
	Admin Admin
	Token string // Сессия, приславшая команду
	Now   int64
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string               // Текст лога
	MsgType string               // Тип лога (INFO, COMBAT, CREW, ERROR)
	Outcome domain.CommandResult // Ответ клиенту
}

// HandlerFunc - это контракт для любой команды (MOVE, ATTACK, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// FromOutcome - результат с логом по исходу команды. Отказы пишутся как ERROR.
func FromOutcome(out domain.CommandResult, okType string) Result {
	msgType := okType
	if !out.OK {
		msgType = domain.LogError
	}
	return Result{Msg: out.Message, MsgType: msgType, Outcome: out}
}
