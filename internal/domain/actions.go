package domain

import "strings"

// ActionType - Внутренний числовой идентификатор команды игрока
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionCollect
	ActionAttack
	ActionDeployCrew
	ActionRetrieveCrew
	ActionCancelCollection
	ActionPurchase
	ActionSellCargo
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":              ActionInit,
	"MOVE":              ActionMove,
	"COLLECT":           ActionCollect,
	"ATTACK":            ActionAttack,
	"DEPLOY_CREW":       ActionDeployCrew,
	"RETRIEVE_CREW":     ActionRetrieveCrew,
	"CANCEL_COLLECTION": ActionCancelCollection,
	"PURCHASE":          ActionPurchase,
	"SELL_CARGO":        ActionSellCargo,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:             "INIT",
	ActionMove:             "MOVE",
	ActionCollect:          "COLLECT",
	ActionAttack:           "ATTACK",
	ActionDeployCrew:       "DEPLOY_CREW",
	ActionRetrieveCrew:     "RETRIEVE_CREW",
	ActionCancelCollection: "CANCEL_COLLECTION",
	ActionPurchase:         "PURCHASE",
	ActionSellCargo:        "SELL_CARGO",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
