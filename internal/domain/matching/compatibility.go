package matching

import "strings"

// Sub-score weights. Each weight doubles as its normalizer, so the composite
// stays in [0,1] as long as every sub-score is in [0,1].
const (
	weightSubjects     = 0.4
	weightStudyStyle   = 0.2
	weightExperience   = 0.2
	weightGapOverlap   = 0.2
	partialStyleCredit = 0.3
	neutralScore       = 0.5
)

// MinScore is the exclusive inclusion threshold: a candidate is retained only
// when its compatibility score is strictly greater than this.
const MinScore = 0.3

type StudyStyle string

const (
	StyleVisual   StudyStyle = "visual"
	StyleAuditory StudyStyle = "auditory"
	StyleReading  StudyStyle = "reading"
	StyleHandsOn  StudyStyle = "hands-on"
)

type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelAdvanced     ExperienceLevel = "advanced"
	LevelExpert       ExperienceLevel = "expert"
)

// Profile is the requester side of a compatibility computation.
type Profile struct {
	Subjects   []string
	StudyStyle *StudyStyle
	Level      *ExperienceLevel
	Gaps       []TopicConfidence
}

// Candidate is one member of the candidate population. Nil style or level
// means the field was never filled in and scores as unknown.
type Candidate struct {
	InterestTags []string
	StudyStyle   *StudyStyle
	Level        *ExperienceLevel
}

type TopicConfidence struct {
	Topic      string
	Confidence float64
}

var compatibleStyles = map[StudyStyle][]StudyStyle{
	StyleVisual:   {StyleHandsOn},
	StyleHandsOn:  {StyleVisual},
	StyleReading:  {StyleAuditory},
	StyleAuditory: {StyleReading},
}

var levelRank = map[ExperienceLevel]int{
	LevelBeginner:     0,
	LevelIntermediate: 1,
	LevelAdvanced:     2,
	LevelExpert:       3,
}

// Compatibility computes the composite [0,1] score for one requester/candidate
// pair. gapScore is the complementarity sub-score computed separately (see
// Complementarity); out-of-range values are clamped rather than rejected so a
// bad estimator input can never push the composite outside [0,1].
func Compatibility(req Profile, cand Candidate, gapScore float64) float64 {
	score := weightSubjects*jaccard(lowerSet(req.Subjects), lowerSet(cand.InterestTags)) +
		weightStudyStyle*styleScore(req.StudyStyle, cand.StudyStyle) +
		weightExperience*levelScore(req.Level, cand.Level) +
		weightGapOverlap*clamp01(gapScore)
	return clamp01(score)
}

func styleScore(a, b *StudyStyle) float64 {
	if a == nil || b == nil {
		return neutralScore
	}
	if *a == *b {
		return 1.0
	}
	for _, s := range compatibleStyles[*a] {
		if s == *b {
			return 1.0
		}
	}
	return partialStyleCredit
}

func levelScore(a, b *ExperienceLevel) float64 {
	if a == nil || b == nil {
		return neutralScore
	}
	ra, okA := levelRank[*a]
	rb, okB := levelRank[*b]
	if !okA || !okB {
		return neutralScore
	}
	diff := ra - rb
	if diff < 0 {
		diff = -diff
	}
	s := 1.0 - 0.3*float64(diff)
	if s < 0 {
		return 0
	}
	return s
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func lowerSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.ToLower(strings.TrimSpace(it))
		if it == "" {
			continue
		}
		out[it] = struct{}{}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseStudyStyle returns nil for empty or unrecognized input so callers score
// it with the unknown-field neutral rule.
func ParseStudyStyle(raw string) *StudyStyle {
	s := StudyStyle(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StyleVisual, StyleAuditory, StyleReading, StyleHandsOn:
		return &s
	}
	return nil
}

func ParseExperienceLevel(raw string) *ExperienceLevel {
	l := ExperienceLevel(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := levelRank[l]; ok {
		return &l
	}
	return nil
}
