package domain

import "encoding/json"

// InternalCommand - команда для движка после парсинга и валидации.
type InternalCommand struct {
	Action  ActionType      // Число, а не строка
	Token   string          // ID сессии, которая прислала команду
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}

// CommandResult - ответ ядра на команду.
// Отказ - это не ошибка: состояние не меняется, клиент получает Code и Message.
type CommandResult struct {
	OK           bool   `json:"ok"`
	Code         string `json:"code,omitempty"`
	Message      string `json:"message,omitempty"`
	NeedsConfirm bool   `json:"needsConfirm,omitempty"`
}

// Accepted - успешный результат
func Accepted(msg string) CommandResult {
	return CommandResult{OK: true, Message: msg}
}

// Rejected - отказ с кодом причины
func Rejected(code, msg string) CommandResult {
	return CommandResult{OK: false, Code: code, Message: msg}
}

// Коды отказов
const (
	CodeUnknownAction   = "UNKNOWN_ACTION"
	CodeBadPayload      = "BAD_PAYLOAD"
	CodeNoPath          = "NO_PATH"
	CodeBusy            = "BUSY"
	CodeInCombat        = "IN_COMBAT"
	CodeNotFound        = "NOT_FOUND"
	CodeOutOfRange      = "OUT_OF_RANGE"
	CodeNoIdleCrew      = "NO_IDLE_CREW"
	CodeWrongState      = "WRONG_STATE"
	CodeReserved        = "RESERVED"
	CodeNoFunds         = "INSUFFICIENT_FUNDS"
	CodeLocked          = "LOCKED"
	CodeMaxLevel        = "MAX_LEVEL"
	CodeConfirmRequired = "CONFIRM_REQUIRED"
	CodeNothingPending  = "NOTHING_PENDING"
)
