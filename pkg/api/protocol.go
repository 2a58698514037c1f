package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Это неизменяемый "снимок" мира: клиент может хранить его сколько угодно,
// симуляция его больше не трогает.
type ServerResponse struct {
	// Type тип сообщения: "INIT" (после логина), "UPDATE" (очередной снимок), "RESULT" (ответ на команду).
	Type string `json:"type"`

	// Version растет с каждым изменением мира. Одинаковая версия - одинаковое состояние.
	Version uint64 `json:"version"`

	// Now время симуляции (Unix ms), на которое снят снимок.
	Now int64 `json:"now"`

	// SessionID идентификатор сессии клиента.
	SessionID string `json:"sessionId,omitempty"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map только исследованные тайлы (туман войны).
	Map []TileView `json:"map,omitempty"`

	Player       *PlayerView       `json:"player,omitempty"`
	Activity     string            `json:"activity,omitempty"`
	Combat       *CombatView       `json:"combat,omitempty"`
	Collection   *CollectionView   `json:"collection,omitempty"`
	PendingMove  *PosView          `json:"pendingMove,omitempty"`
	Enemies      []EnemyView       `json:"enemies,omitempty"`
	Crew         []CrewView        `json:"crew,omitempty"`
	Collectibles []CollectibleView `json:"collectibles,omitempty"`
	Artifacts    []ArtifactView    `json:"artifacts,omitempty"`
	Coves        []CoveView        `json:"coves,omitempty"`
	Skills       []SkillView       `json:"skills,omitempty"`
	Unlocks      []string          `json:"unlocks,omitempty"`

	// Logs последние сообщения игрового лога.
	Logs []LogEntry `json:"logs,omitempty"`

	// Result ответ на конкретную команду (только для Type == "RESULT").
	Result *CommandResultView `json:"result,omitempty"`
}

// GridMeta содержит общие размеры карты
type GridMeta struct {
	Size int `json:"size"`
}

// PosView - логическая клетка
type PosView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// VecView - визуальная (дробная) позиция
type VecView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TileView - исследованный тайл
type TileView struct {
	X             int  `json:"x"`
	Y             int  `json:"y"`
	IsWalkable    bool `json:"isWalkable"`
	IsHighlighted bool `json:"isHighlighted,omitempty"`
}

// PlayerView - корабль игрока
type PlayerView struct {
	Pos             PosView        `json:"pos"`
	Visual          VecView        `json:"visual"`
	Rotation        float64        `json:"rotation"`
	Path            []PosView      `json:"path,omitempty"`
	Cargo           map[string]int `json:"cargo"`
	Currency        int            `json:"currency"`
	EngineLevel     int            `json:"engineLevel"`
	CrewBerths      int            `json:"crewBerths"`
	SpeedBoostUntil int64          `json:"speedBoostUntil,omitempty"`
}

// EnemyView - вражеский корабль
type EnemyView struct {
	ID        string  `json:"id"`
	Archetype string  `json:"archetype"`
	Name      string  `json:"name"`
	Level     int     `json:"level"`
	Health    int     `json:"health"`
	MaxHealth int     `json:"maxHealth"`
	Pos       PosView `json:"pos"`
	Visual    VecView `json:"visual"`
	Rotation  float64 `json:"rotation"`
	Moving    bool    `json:"moving"`
}

// CrewView - член экипажа
type CrewView struct {
	ID              string           `json:"id"`
	State           string           `json:"state"`
	Pos             PosView          `json:"pos"`
	Visual          VecView          `json:"visual"`
	Rotation        float64          `json:"rotation"`
	TargetID        string           `json:"targetId,omitempty"`
	DeployedAt      int64            `json:"deployedAt,omitempty"`
	DriftStartTime  int64            `json:"driftStartTime,omitempty"`
	PoachingEnemyID string           `json:"poachingEnemyId,omitempty"`
	Hold            *CollectibleView `json:"hold,omitempty"`
}

// CollectibleView - ресурс на карте
type CollectibleView struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Richness       int     `json:"richness"`
	CollectionTime int64   `json:"collectionTime"`
	Pos            PosView `json:"pos"`
	IsLoot         bool    `json:"isLoot,omitempty"`
	ReservedBy     string  `json:"reservedBy,omitempty"`
}

// ArtifactView - артефакт. Подсказка видна только после покупки.
type ArtifactView struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Pos          PosView `json:"pos"`
	IsCollected  bool    `json:"isCollected"`
	ClueRevealed bool    `json:"clueRevealed"`
	Clue         string  `json:"clue,omitempty"`
}

// CoveView - бухта-ориентир
type CoveView struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Pos  PosView `json:"pos"`
}

// CombatView - активная битва
type CombatView struct {
	EnemyID   string  `json:"enemyId"`
	StartTime int64   `json:"startTime"`
	Duration  int64   `json:"duration"`
	Progress  float64 `json:"progress"`
}

// CollectionView - активный сбор
type CollectionView struct {
	CollectibleID string  `json:"collectibleId"`
	StartTime     int64   `json:"startTime"`
	Duration      int64   `json:"duration"`
	Progress      float64 `json:"progress"`
}

// SkillView - навык
type SkillView struct {
	Type        string `json:"type"`
	Level       int    `json:"level"`
	XP          int64  `json:"xp"`
	NextLevelXP int64  `json:"nextLevelXp,omitempty"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, CREW, SKILL, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// CommandResultView - ответ на команду
type CommandResultView struct {
	Action       string `json:"action"`
	OK           bool   `json:"ok"`
	Code         string `json:"code,omitempty"`
	Message      string `json:"message,omitempty"`
	NeedsConfirm bool   `json:"needsConfirm,omitempty"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action: LOGIN, INIT, MOVE, COLLECT, ATTACK, DEPLOY_CREW, RETRIEVE_CREW,
	// CANCEL_COLLECTION, PURCHASE, SELL_CARGO.
	Action string `json:"action"`

	// Token идентификатор сессии. Для LOGIN - желаемый (или пустой).
	Token string `json:"token,omitempty"`

	// Codec формат снимков для этого клиента: "json" (по умолчанию) или "msgpack". Только для LOGIN.
	Codec string `json:"codec,omitempty"`

	// Payload данные, специфичные для Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// PositionPayload - MOVE
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// EntityPayload - COLLECT, ATTACK, RETRIEVE_CREW
type EntityPayload struct {
	TargetID string `json:"targetId"`
}

// DeployPayload - DEPLOY_CREW: клетка высадки рядом с ресурсом
type DeployPayload struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	TargetID string `json:"targetId"`
}

// ConfirmPayload - CANCEL_COLLECTION
type ConfirmPayload struct {
	Confirm bool `json:"confirm"`
}

// PurchasePayload - PURCHASE. X/Y нужны только для map_unlock.
type PurchasePayload struct {
	Kind   string `json:"kind"`
	ItemID string `json:"itemId"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
}

// SellPayload - SELL_CARGO
type SellPayload struct {
	Resource string `json:"resource"`
	Count    int    `json:"count"`
}
