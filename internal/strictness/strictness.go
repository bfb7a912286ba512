// Package strictness defines the named configuration levels that control how
// aggressively content may be reframed or keywords injected during tailoring.
package strictness

import "fmt"

// Level is a named strictness preset
type Level string

// Strictness levels
const (
	Conservative Level = "conservative"
	Moderate     Level = "moderate"
	Aggressive   Level = "aggressive"
)

// ReframingDepth controls how far rewrites may depart from original wording
type ReframingDepth string

// Reframing depths
const (
	ReframeMinimal       ReframingDepth = "minimal"
	ReframeWithSameFacts ReframingDepth = "with_same_facts"
	ReframeExtensive     ReframingDepth = "extensive"
)

// KeywordInjection controls how aggressively ATS keywords are worked into text
type KeywordInjection string

// Keyword injection modes
const (
	InjectOnlyIfEvidenced    KeywordInjection = "only_if_evidenced"
	InjectNaturalIntegration KeywordInjection = "natural_integration"
	InjectMaximizeATS        KeywordInjection = "maximize_ats"
)

// GapMitigation controls which mitigation strategies the gap analyzer may propose
type GapMitigation string

// Gap mitigation repertoires
const (
	MitigateAcknowledgeOnly     GapMitigation = "acknowledge_only"
	MitigateAllStrategies       GapMitigation = "all_strategies"
	MitigateCreativePositioning GapMitigation = "creative_positioning"
)

// Config is the behavior bundle a strictness level maps to.
// The mapping is a fixed lookup table, never derived dynamically.
type Config struct {
	AllowInferredSkills bool
	AllowReframing      ReframingDepth
	KeywordInjection    KeywordInjection
	GapMitigation       GapMitigation
}

var configs = map[Level]Config{
	Conservative: {
		AllowInferredSkills: false,
		AllowReframing:      ReframeMinimal,
		KeywordInjection:    InjectOnlyIfEvidenced,
		GapMitigation:       MitigateAcknowledgeOnly,
	},
	Moderate: {
		AllowInferredSkills: true,
		AllowReframing:      ReframeWithSameFacts,
		KeywordInjection:    InjectNaturalIntegration,
		GapMitigation:       MitigateAllStrategies,
	},
	Aggressive: {
		AllowInferredSkills: true,
		AllowReframing:      ReframeExtensive,
		KeywordInjection:    InjectMaximizeATS,
		GapMitigation:       MitigateCreativePositioning,
	},
}

// ConfigFor returns the configuration for a level.
// Unknown levels fall back to Moderate.
func ConfigFor(level Level) Config {
	if cfg, ok := configs[level]; ok {
		return cfg
	}
	return configs[Moderate]
}

// Parse validates a string as a strictness level
func Parse(s string) (Level, error) {
	level := Level(s)
	if _, ok := configs[level]; !ok {
		return "", fmt.Errorf("unknown strictness level %q (expected conservative, moderate, or aggressive)", s)
	}
	return level, nil
}
