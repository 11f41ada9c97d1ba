package actor

import (
	"fmt"

	"github.com/jwebster45206/d20"
)

// Stats represents the six core ability scores for a hero.
type Stats struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// ToAttributes converts Stats to a map for d20.Actor compatibility
func (s *Stats) ToAttributes() map[string]int {
	return map[string]int{
		"strength":     s.Strength,
		"dexterity":    s.Dexterity,
		"constitution": s.Constitution,
		"intelligence": s.Intelligence,
		"wisdom":       s.Wisdom,
		"charisma":     s.Charisma,
	}
}

// Modifier returns the standard ability modifier for a score.
func Modifier(score int) int {
	if score >= 10 {
		return (score - 10) / 2
	}
	// Integer division truncates toward zero; low scores need floor.
	return (score - 11) / 2
}

// HeroState is the serializable stat block for one party member. It is
// the form stored in the GameState bundle and in save slots.
type HeroState struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Class  string `json:"class,omitempty"`
	Level  int    `json:"level,omitempty"`
	Stats  Stats  `json:"stats,omitempty"`
	HP     int    `json:"hp,omitempty"`
	MaxHP  int    `json:"max_hp,omitempty"`
	AC     int    `json:"ac,omitempty"`
	HitDie int    `json:"hit_die,omitempty"` // HP gained per level before constitution
	MP     int    `json:"mp,omitempty"`
	MaxMP  int    `json:"max_mp,omitempty"`
}

// Hero is the runtime representation of a party member.
type Hero struct {
	State *HeroState
	Actor *d20.Actor // built at runtime from HeroState
}

// NewHeroFromState builds a Hero and its d20.Actor from a stat block.
func NewHeroFromState(hs *HeroState) (*Hero, error) {
	if hs == nil {
		return nil, fmt.Errorf("hero state cannot be nil")
	}

	actor, err := d20.NewActor(hs.ID).
		WithHP(hs.MaxHP).
		WithAC(hs.AC).
		WithAttributes(hs.Stats.ToAttributes()).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor for hero %s: %w", hs.ID, err)
	}

	if hs.HP != hs.MaxHP && hs.HP > 0 {
		if err := actor.SetHP(hs.HP); err != nil {
			return nil, fmt.Errorf("failed to set HP for hero %s: %w", hs.ID, err)
		}
	}

	return &Hero{State: hs, Actor: actor}, nil
}

// LevelUp describes one gained level for a party member, queued in the
// scene-transition payload and presented as an overlay on scene entry.
type LevelUp struct {
	HeroID   string `json:"hero_id"`
	NewLevel int    `json:"new_level"`
	HPGain   int    `json:"hp_gain"`
	MPGain   int    `json:"mp_gain,omitempty"`
}

// ApplyLevelUp advances the stat block one level. HP gain is the class
// hit die plus the constitution modifier, floored at 1. The hero is
// left at full HP.
func (hs *HeroState) ApplyLevelUp() LevelUp {
	gain := hs.HitDie + Modifier(hs.Stats.Constitution)
	if gain < 1 {
		gain = 1
	}
	mpGain := Modifier(hs.Stats.Wisdom)
	if mpGain < 0 {
		mpGain = 0
	}

	hs.Level++
	hs.MaxHP += gain
	hs.HP = hs.MaxHP
	hs.MaxMP += mpGain
	hs.MP = hs.MaxMP

	return LevelUp{
		HeroID:   hs.ID,
		NewLevel: hs.Level,
		HPGain:   gain,
		MPGain:   mpGain,
	}
}

// RestoreAll refills HP and MP to their maximums (inn rest, load game).
func (hs *HeroState) RestoreAll() {
	hs.HP = hs.MaxHP
	hs.MP = hs.MaxMP
}
