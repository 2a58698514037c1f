package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalidConfig - таблицы не проходят проверку
var ErrInvalidConfig = errors.New("invalid config")

// Config - все read-only таблицы симуляции. Во время игры не меняется.
type Config struct {
	World    World    `yaml:"world"`
	Sim      Sim      `yaml:"sim"`
	Movement Movement `yaml:"movement"`
	Combat   Combat   `yaml:"combat"`
	EnemyAI  EnemyAI  `yaml:"enemy_ai"`
	Crew     Crew     `yaml:"crew"`
	XP       XP       `yaml:"xp"`

	RichnessMultipliers map[int]float64     `yaml:"richness_multipliers"`
	Resources           map[string]Resource `yaml:"resources"`
	Archetypes          []Archetype         `yaml:"archetypes"`
	Artifacts           []ArtifactDef       `yaml:"artifacts"`
	Unlocks             []Unlock            `yaml:"unlocks"`
	Shop                Shop                `yaml:"shop"`
}

type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type World struct {
	GridSize          int     `yaml:"grid_size"`
	Dock              Point   `yaml:"dock"`
	Islands           int     `yaml:"islands"`
	IslandMinSize     int     `yaml:"island_min_size"`
	IslandMaxSize     int     `yaml:"island_max_size"`
	IslandMargin      int     `yaml:"island_margin"`
	ResourceNodes     int     `yaml:"resource_nodes"`
	Enemies           int     `yaml:"enemies"`
	Coves             int     `yaml:"coves"`
	RevealRadius      float64 `yaml:"reveal_radius"`
	PlacementAttempts int     `yaml:"placement_attempts"`
}

type Sim struct {
	TickMs int64 `yaml:"tick_ms"`
}

type Movement struct {
	SegmentMs         float64   `yaml:"segment_ms"`
	SpeedBoostFactor  float64   `yaml:"speed_boost_factor"`
	EngineMultipliers []float64 `yaml:"engine_multipliers"`
}

type Combat struct {
	DurationMs       int64 `yaml:"duration_ms"`
	PollMs           int64 `yaml:"poll_ms"`
	EngageRange      int   `yaml:"engage_range"`
	AutoAttack       bool  `yaml:"auto_attack"`
	AutoAttackRange  int   `yaml:"auto_attack_range"`
	LootRichness     int   `yaml:"loot_richness"`
	LootCollectionMs int64 `yaml:"loot_collection_ms"`
}

type EnemyAI struct {
	WanderMinMs int64 `yaml:"wander_min_ms"`
	WanderMaxMs int64 `yaml:"wander_max_ms"`
	MinSteps    int   `yaml:"min_steps"`
	MaxSteps    int   `yaml:"max_steps"`
}

type Crew struct {
	Size               int     `yaml:"size"`
	CollectMs          int64   `yaml:"collect_ms"`
	DriftGraceMs       int64   `yaml:"drift_grace_ms"`
	DriftLossMs        int64   `yaml:"drift_loss_ms"`
	PoachCheckMs       int64   `yaml:"poach_check_ms"`
	PoachMinDeployedMs int64   `yaml:"poach_min_deployed_ms"`
	PoachContestMs     int64   `yaml:"poach_contest_ms"`
	PoachChance        float64 `yaml:"poach_chance"`
	PoachRadius        float64 `yaml:"poach_radius"`
}

type XP struct {
	SalvagePerRichness int `yaml:"salvage_per_richness"`
	NavigationPerCell  int `yaml:"navigation_per_cell"`
	ExplorationPerTile int `yaml:"exploration_per_tile"`
}

type Resource struct {
	BaseMs    int64 `yaml:"base_ms"`
	SellPrice int   `yaml:"sell_price"`
	Weight    int   `yaml:"weight"` // вес при генерации узлов
}

type LootEntry struct {
	Resource string  `yaml:"resource"`
	Chance   float64 `yaml:"chance"`
	Min      int     `yaml:"min"`
	Max      int     `yaml:"max"`
}

// Archetype - тип вражеского корабля
type Archetype struct {
	ID             string      `yaml:"id"`
	Name           string      `yaml:"name"`
	MinLevel       int         `yaml:"min_level"`
	MaxLevel       int         `yaml:"max_level"`
	BaseHealth     int         `yaml:"base_health"`
	HealthPerLevel int         `yaml:"health_per_level"`
	BaseDamage     int         `yaml:"base_damage"`
	DamagePerLevel int         `yaml:"damage_per_level"`
	SegmentMs      float64     `yaml:"segment_ms"`
	AggroRange     int         `yaml:"aggro_range"`
	XPReward       int         `yaml:"xp_reward"`
	Bounty         int         `yaml:"bounty"`
	Weight         int         `yaml:"weight"`
	Loot           []LootEntry `yaml:"loot"`
}

// ClampLevel загоняет уровень в диапазон архетипа
func (a Archetype) ClampLevel(level int) int {
	return min(max(level, a.MinLevel), a.MaxLevel)
}

// HealthAt - здоровье на уровне
func (a Archetype) HealthAt(level int) int {
	return a.BaseHealth + a.HealthPerLevel*(a.ClampLevel(level)-1)
}

// DamageAt - урон на уровне
func (a Archetype) DamageAt(level int) int {
	return a.BaseDamage + a.DamagePerLevel*(a.ClampLevel(level)-1)
}

type ArtifactDef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Clue string `yaml:"clue"`
}

// Unlock - одноразовый флаг, открываемый уровнем навыка
type Unlock struct {
	ID    string `yaml:"id"`
	Skill string `yaml:"skill"`
	Level int    `yaml:"level"`
}

type PowerUp struct {
	ID         string `yaml:"id"`
	Cost       int    `yaml:"cost"`
	DurationMs int64  `yaml:"duration_ms"`
}

type MapUnlock struct {
	ID     string  `yaml:"id"`
	Cost   int     `yaml:"cost"`
	Radius float64 `yaml:"radius"`
}

// ShipUpgrade - многоуровневое улучшение. Costs[i] - цена перехода на уровень i+1.
type ShipUpgrade struct {
	ID       string `yaml:"id"`
	Costs    []int  `yaml:"costs"`
	Requires string `yaml:"requires,omitempty"`
}

type Shop struct {
	PowerUps         []PowerUp     `yaml:"power_ups"`
	MapUnlocks       []MapUnlock   `yaml:"map_unlocks"`
	ShipUpgrades     []ShipUpgrade `yaml:"ship_upgrades"`
	ArtifactClueCost int           `yaml:"artifact_clue_cost"`
}

// Default разбирает встроенный default.yaml
func Default() (*Config, error) {
	return Parse(defaultYAML)
}

// MustDefault - для тестов и утилит
func MustDefault() *Config {
	cfg, err := Default()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load читает файл конфигурации. Пустой путь - встроенные значения.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse накладывает документ поверх встроенных значений и валидирует результат
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return nil, fmt.Errorf("default.yaml: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность таблиц
func (c *Config) Validate() error {
	if c.World.GridSize < 8 {
		return fmt.Errorf("%w: grid_size %d too small", ErrInvalidConfig, c.World.GridSize)
	}
	if c.World.Dock.X < 0 || c.World.Dock.Y < 0 || c.World.Dock.X >= c.World.GridSize || c.World.Dock.Y >= c.World.GridSize {
		return fmt.Errorf("%w: dock outside grid", ErrInvalidConfig)
	}
	if c.World.IslandMinSize < 1 || c.World.IslandMaxSize < c.World.IslandMinSize {
		return fmt.Errorf("%w: island size range", ErrInvalidConfig)
	}
	if c.Sim.TickMs <= 0 || c.Movement.SegmentMs <= 0 {
		return fmt.Errorf("%w: tick_ms and segment_ms must be positive", ErrInvalidConfig)
	}
	if len(c.Movement.EngineMultipliers) == 0 {
		return fmt.Errorf("%w: engine_multipliers empty", ErrInvalidConfig)
	}
	if c.Combat.DurationMs <= 0 || c.Combat.PollMs <= 0 {
		return fmt.Errorf("%w: combat timings must be positive", ErrInvalidConfig)
	}
	if c.EnemyAI.MinSteps < 1 || c.EnemyAI.MaxSteps < c.EnemyAI.MinSteps {
		return fmt.Errorf("%w: enemy_ai step range", ErrInvalidConfig)
	}
	if c.EnemyAI.WanderMaxMs < c.EnemyAI.WanderMinMs {
		return fmt.Errorf("%w: enemy_ai wander range", ErrInvalidConfig)
	}
	if c.Crew.PoachCheckMs <= 0 || c.Crew.PoachChance < 0 || c.Crew.PoachChance > 1 {
		return fmt.Errorf("%w: crew poaching", ErrInvalidConfig)
	}
	for r := 1; r <= 3; r++ {
		if _, ok := c.RichnessMultipliers[r]; !ok {
			return fmt.Errorf("%w: missing richness multiplier %d", ErrInvalidConfig, r)
		}
	}
	if len(c.Resources) == 0 {
		return fmt.Errorf("%w: no resources", ErrInvalidConfig)
	}
	for name, res := range c.Resources {
		if res.BaseMs <= 0 {
			return fmt.Errorf("%w: resource %s base_ms", ErrInvalidConfig, name)
		}
	}
	seen := make(map[string]bool)
	for _, a := range c.Archetypes {
		if a.ID == "" || seen[a.ID] {
			return fmt.Errorf("%w: archetype id %q empty or duplicated", ErrInvalidConfig, a.ID)
		}
		seen[a.ID] = true
		if a.MinLevel < 1 || a.MaxLevel < a.MinLevel || a.SegmentMs <= 0 {
			return fmt.Errorf("%w: archetype %s", ErrInvalidConfig, a.ID)
		}
		for _, l := range a.Loot {
			if _, ok := c.Resources[l.Resource]; !ok {
				return fmt.Errorf("%w: archetype %s drops unknown resource %s", ErrInvalidConfig, a.ID, l.Resource)
			}
			if l.Min < 0 || l.Max < l.Min {
				return fmt.Errorf("%w: archetype %s loot range", ErrInvalidConfig, a.ID)
			}
		}
	}
	unlocks := make(map[string]bool)
	for _, u := range c.Unlocks {
		if u.Level < 1 || u.Level > 99 {
			return fmt.Errorf("%w: unlock %s level %d", ErrInvalidConfig, u.ID, u.Level)
		}
		unlocks[u.ID] = true
	}
	for _, up := range c.Shop.ShipUpgrades {
		if up.Requires != "" && !unlocks[up.Requires] {
			return fmt.Errorf("%w: upgrade %s requires unknown unlock %s", ErrInvalidConfig, up.ID, up.Requires)
		}
	}
	return nil
}

// CollectionTime = base[type] * richnessMultiplier[richness]
func (c *Config) CollectionTime(resource string, richness int) int64 {
	res, ok := c.Resources[resource]
	if !ok {
		return 0
	}
	mult, ok := c.RichnessMultipliers[richness]
	if !ok {
		mult = 1
	}
	return int64(float64(res.BaseMs) * mult)
}

// Archetype ищет архетип по id
func (c *Config) Archetype(id string) (Archetype, bool) {
	for _, a := range c.Archetypes {
		if a.ID == id {
			return a, true
		}
	}
	return Archetype{}, false
}

// PowerUp ищет усилитель по id
func (c *Config) PowerUp(id string) (PowerUp, bool) {
	for _, p := range c.Shop.PowerUps {
		if p.ID == id {
			return p, true
		}
	}
	return PowerUp{}, false
}

// MapUnlock ищет карту по id
func (c *Config) MapUnlock(id string) (MapUnlock, bool) {
	for _, m := range c.Shop.MapUnlocks {
		if m.ID == id {
			return m, true
		}
	}
	return MapUnlock{}, false
}

// ShipUpgrade ищет улучшение по id
func (c *Config) ShipUpgrade(id string) (ShipUpgrade, bool) {
	for _, u := range c.Shop.ShipUpgrades {
		if u.ID == id {
			return u, true
		}
	}
	return ShipUpgrade{}, false
}

// EngineMultiplier - множитель длительности сегмента для уровня двигателя
func (c *Config) EngineMultiplier(level int) float64 {
	m := c.Movement.EngineMultipliers
	if level < 0 {
		level = 0
	}
	if level >= len(m) {
		level = len(m) - 1
	}
	return m[level]
}
