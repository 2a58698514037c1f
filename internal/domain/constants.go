package domain

// Типы сущностей (для снапшота и логов)
const (
	EntityTypePlayer      = "PLAYER"
	EntityTypeEnemy       = "ENEMY"
	EntityTypeCrew        = "CREW"
	EntityTypeCollectible = "COLLECTIBLE"
	EntityTypeArtifact    = "ARTIFACT"
)

// Типы записей игрового лога
const (
	LogInfo   = "INFO"
	LogCombat = "COMBAT"
	LogCrew   = "CREW"
	LogSkill  = "SKILL"
	LogError  = "ERROR"
)

// Виды покупок в магазине
const (
	PurchasePowerUp      = "power_up"
	PurchaseMapUnlock    = "map_unlock"
	PurchaseShipUpgrade  = "ship_upgrade"
	PurchaseArtifactClue = "artifact_clue"
)

// Улучшения корабля
const (
	UpgradeEngine     = "engine"
	UpgradeCrewBerth  = "crew_berth"
	PowerUpSpeedBoost = "speed_boost"
)
