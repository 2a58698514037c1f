package systems

import (
	"math"

	"salvage-server/internal/config"
	"salvage-server/internal/domain"
)

const MaxSkillLevel = 99

// xpTable[L] - суммарный опыт для уровня L. Индекс 0 не используется.
var xpTable = buildXPTable()

func buildXPTable() [MaxSkillLevel + 1]int64 {
	var t [MaxSkillLevel + 1]int64
	for l := 2; l <= MaxSkillLevel; l++ {
		step := math.Floor((float64(l) + 300*math.Pow(2, float64(l)/7)) / 4)
		t[l] = t[l-1] + int64(step)
	}
	return t
}

// XPForLevel - порог опыта для уровня (уровень зажимается в [1, 99])
func XPForLevel(level int) int64 {
	level = min(max(level, 1), MaxSkillLevel)
	return xpTable[level]
}

// LevelFromXP - наибольший L с порогом <= xp, поиск сверху вниз
func LevelFromXP(xp int64) int {
	for l := MaxSkillLevel; l >= 1; l-- {
		if xp >= xpTable[l] {
			return l
		}
	}
	return 1
}

// Progression - четыре независимых трека навыков и одноразовые разблокировки
type Progression struct {
	skills   map[domain.SkillType]*domain.Skill
	unlocked map[string]bool
	defs     []config.Unlock
}

func NewProgression(defs []config.Unlock) *Progression {
	p := &Progression{
		skills:   make(map[domain.SkillType]*domain.Skill, len(domain.AllSkills)),
		unlocked: make(map[string]bool),
		defs:     defs,
	}
	for _, st := range domain.AllSkills {
		p.skills[st] = &domain.Skill{Type: st, Level: 1}
	}
	return p
}

// AddXP начисляет опыт. Отрицательные и нулевые суммы игнорируются.
// Возвращает, вырос ли уровень, и id впервые открытых разблокировок.
func (p *Progression) AddXP(skill domain.SkillType, amount int64) (bool, []string) {
	s, ok := p.skills[skill]
	if !ok || amount <= 0 {
		return false, nil
	}
	oldLevel := s.Level
	s.XP += amount
	s.Level = LevelFromXP(s.XP)
	if s.Level <= oldLevel {
		return false, nil
	}

	var newly []string
	for _, def := range p.defs {
		if domain.SkillType(def.Skill) != skill || p.unlocked[def.ID] {
			continue
		}
		if s.Level >= def.Level {
			p.unlocked[def.ID] = true
			newly = append(newly, def.ID)
		}
	}
	return true, newly
}

// Level - текущий уровень навыка
func (p *Progression) Level(skill domain.SkillType) int {
	if s, ok := p.skills[skill]; ok {
		return s.Level
	}
	return 1
}

// XP - накопленный опыт навыка
func (p *Progression) XP(skill domain.SkillType) int64 {
	if s, ok := p.skills[skill]; ok {
		return s.XP
	}
	return 0
}

// IsUnlocked - открыта ли разблокировка
func (p *Progression) IsUnlocked(id string) bool {
	return p.unlocked[id]
}

// Skills - копия всех треков в фиксированном порядке
func (p *Progression) Skills() []domain.Skill {
	out := make([]domain.Skill, 0, len(domain.AllSkills))
	for _, st := range domain.AllSkills {
		out = append(out, *p.skills[st])
	}
	return out
}

// Unlocked - копия открытых разблокировок
func (p *Progression) Unlocked() map[string]bool {
	out := make(map[string]bool, len(p.unlocked))
	for id, v := range p.unlocked {
		out[id] = v
	}
	return out
}
