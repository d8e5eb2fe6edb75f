// Package types contains the closed enumerations shared across the
// simulation core: contest stages, knowledge tags, contest kinds, medal
// tiers and province archetypes. Per-stage tuning lives in mapping tables
// here rather than in string comparisons scattered through the code.
package types

// Stage is one link in the fixed ordered tournament chain.
type Stage int

const (
	StagePreliminary Stage = iota
	StageQualifier
	StageRegional
	StageNational
	StageFinal
)

// stageCount is the length of the chain.
const stageCount = 5

// Stages returns the chain in order.
func Stages() []Stage {
	return []Stage{StagePreliminary, StageQualifier, StageRegional, StageNational, StageFinal}
}

// Prev returns the prerequisite stage and false for the first link.
func (s Stage) Prev() (Stage, bool) {
	if s <= StagePreliminary {
		return StagePreliminary, false
	}
	return s - 1, true
}

// Next returns the following stage and false for the terminal link.
func (s Stage) Next() (Stage, bool) {
	if s >= StageFinal {
		return StageFinal, false
	}
	return s + 1, true
}

// Terminal reports whether s is the last link of the chain.
func (s Stage) Terminal() bool { return s == StageFinal }

// Valid reports whether s is a member of the chain.
func (s Stage) Valid() bool { return s >= StagePreliminary && s < stageCount }

func (s Stage) String() string {
	switch s {
	case StagePreliminary:
		return "preliminary"
	case StageQualifier:
		return "qualifier"
	case StageRegional:
		return "regional"
	case StageNational:
		return "national"
	case StageFinal:
		return "final"
	default:
		return "unknown"
	}
}

// ParseStage maps a stage name back to its enum value.
func ParseStage(name string) (Stage, bool) {
	for _, s := range Stages() {
		if s.String() == name {
			return s, true
		}
	}
	return StagePreliminary, false
}

// Tag is a knowledge topic attached to problems and tracked per competitor.
type Tag int

const (
	TagDP Tag = iota
	TagGraph
	TagDataStructure
	TagMath
	TagString
)

// TagCount is the number of knowledge topics.
const TagCount = 5

// Tags returns all knowledge topics.
func Tags() []Tag {
	return []Tag{TagDP, TagGraph, TagDataStructure, TagMath, TagString}
}

func (t Tag) String() string {
	switch t {
	case TagDP:
		return "dp"
	case TagGraph:
		return "graph"
	case TagDataStructure:
		return "datastructure"
	case TagMath:
		return "math"
	case TagString:
		return "string"
	default:
		return "unknown"
	}
}

// ContestType separates chain contests from practice sessions.
type ContestType int

const (
	// ContestFormal participates in the qualification chain.
	ContestFormal ContestType = iota
	// ContestPractice is scored but never advances anyone.
	ContestPractice
)

func (c ContestType) String() string {
	if c == ContestPractice {
		return "practice"
	}
	return "formal"
}

// Medal is the terminal-stage award tier.
type Medal int

const (
	MedalNone Medal = iota
	MedalBronze
	MedalSilver
	MedalGold
)

func (m Medal) String() string {
	switch m {
	case MedalGold:
		return "gold"
	case MedalSilver:
		return "silver"
	case MedalBronze:
		return "bronze"
	default:
		return "none"
	}
}

// ProvinceTier is the roster's home-province archetype; it sets the base
// pass rate for every stage.
type ProvinceTier int

const (
	ProvinceStrong ProvinceTier = iota
	ProvinceBalanced
	ProvinceDeveloping
)

func (p ProvinceTier) String() string {
	switch p {
	case ProvinceStrong:
		return "strong"
	case ProvinceDeveloping:
		return "developing"
	default:
		return "balanced"
	}
}

// ParseProvinceTier maps a tier name back to its enum value; unknown names
// fall back to the balanced archetype.
func ParseProvinceTier(name string) ProvinceTier {
	switch name {
	case "strong":
		return ProvinceStrong
	case "developing":
		return ProvinceDeveloping
	default:
		return ProvinceBalanced
	}
}

// RewardRange bounds the per-competitor funding draw for a stage.
type RewardRange struct {
	Min int
	Max int
}

// rewardRanges replaces per-stage string dispatch with one table. Amounts
// grow with chain depth.
var rewardRanges = map[Stage]RewardRange{
	StagePreliminary: {Min: 200, Max: 500},
	StageQualifier:   {Min: 400, Max: 900},
	StageRegional:    {Min: 800, Max: 1500},
	StageNational:    {Min: 1500, Max: 3000},
	StageFinal:       {Min: 3000, Max: 6000},
}

// RewardRangeFor returns the funding bounds for a stage.
func RewardRangeFor(s Stage) RewardRange {
	if r, ok := rewardRanges[s]; ok {
		return r
	}
	return RewardRange{}
}
