package domain

// SkillType - трек навыка
type SkillType string

const (
	SkillNavigation  SkillType = "navigation"  // движение
	SkillSalvaging   SkillType = "salvaging"   // сбор ресурсов
	SkillCombat      SkillType = "combat"      // бой
	SkillExploration SkillType = "exploration" // открытие карты
)

// AllSkills - порядок треков для снапшота
var AllSkills = []SkillType{SkillNavigation, SkillSalvaging, SkillCombat, SkillExploration}

// Skill - уровень и накопленный опыт
type Skill struct {
	Type  SkillType `json:"type"`
	Level int       `json:"level"` // 1..99
	XP    int64     `json:"xp"`    // монотонно растет
}
