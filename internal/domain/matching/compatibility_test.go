package matching

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func stylePtr(s StudyStyle) *StudyStyle           { return &s }
func levelPtr(l ExperienceLevel) *ExperienceLevel { return &l }

func TestCompatibility_SubjectOverlapCaseInsensitive(t *testing.T) {
	// {math, physics} vs {Math, Chemistry, physics}: intersection 2, union 3.
	req := Profile{Subjects: []string{"math", "physics"}}
	cand := Candidate{InterestTags: []string{"Math", "Chemistry", "physics"}}

	got := Compatibility(req, cand, 0)
	// 0.4 * 2/3 + 0.2*0.5 (unknown style) + 0.2*0.5 (unknown level) + 0.
	want := 0.4*(2.0/3.0) + 0.1 + 0.1
	if !almostEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCompatibility_EmptySubjectsScoreZeroOverlap(t *testing.T) {
	got := Compatibility(Profile{}, Candidate{}, 0)
	// Only the two unknown-field neutrals contribute.
	if !almostEqual(got, 0.2) {
		t.Fatalf("expected 0.2, got %v", got)
	}
}

func TestStyleScore(t *testing.T) {
	cases := []struct {
		name string
		a, b *StudyStyle
		want float64
	}{
		{"same", stylePtr(StyleVisual), stylePtr(StyleVisual), 1.0},
		{"visual hands-on", stylePtr(StyleVisual), stylePtr(StyleHandsOn), 1.0},
		{"hands-on visual", stylePtr(StyleHandsOn), stylePtr(StyleVisual), 1.0},
		{"reading auditory", stylePtr(StyleReading), stylePtr(StyleAuditory), 1.0},
		{"visual auditory", stylePtr(StyleVisual), stylePtr(StyleAuditory), 0.3},
		{"unknown left", nil, stylePtr(StyleVisual), 0.5},
		{"unknown right", stylePtr(StyleVisual), nil, 0.5},
	}
	for _, tc := range cases {
		if got := styleScore(tc.a, tc.b); !almostEqual(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestLevelScore(t *testing.T) {
	cases := []struct {
		name string
		a, b *ExperienceLevel
		want float64
	}{
		{"same", levelPtr(LevelBeginner), levelPtr(LevelBeginner), 1.0},
		{"adjacent", levelPtr(LevelBeginner), levelPtr(LevelIntermediate), 0.7},
		{"two apart", levelPtr(LevelBeginner), levelPtr(LevelAdvanced), 0.4},
		{"beginner expert", levelPtr(LevelBeginner), levelPtr(LevelExpert), 0.1},
		{"unknown", nil, levelPtr(LevelExpert), 0.5},
	}
	for _, tc := range cases {
		if got := levelScore(tc.a, tc.b); !almostEqual(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestCompatibility_StaysWithinBounds(t *testing.T) {
	req := Profile{
		Subjects:   []string{"math"},
		StudyStyle: stylePtr(StyleVisual),
		Level:      levelPtr(LevelExpert),
	}
	cand := Candidate{
		InterestTags: []string{"math"},
		StudyStyle:   stylePtr(StyleVisual),
		Level:        levelPtr(LevelExpert),
	}

	if got := Compatibility(req, cand, 5.0); got > 1.0 {
		t.Fatalf("score above 1: %v", got)
	}
	if got := Compatibility(req, cand, -5.0); got < 0 {
		t.Fatalf("score below 0: %v", got)
	}
	// Identical profiles with a perfect gap score reach exactly 1.
	if got := Compatibility(req, cand, 1.0); !almostEqual(got, 1.0) {
		t.Fatalf("expected 1.0, got %v", got)
	}
}

func TestCompatibility_DeterministicAcrossRuns(t *testing.T) {
	req := Profile{Subjects: []string{"go", "sql"}, StudyStyle: stylePtr(StyleReading)}
	cand := Candidate{InterestTags: []string{"SQL", "testing"}, Level: levelPtr(LevelAdvanced)}

	first := Compatibility(req, cand, 0.4)
	for i := 0; i < 10; i++ {
		if got := Compatibility(req, cand, 0.4); got != first {
			t.Fatalf("run %d: expected %v, got %v", i, first, got)
		}
	}
}

func TestParseStudyStyle(t *testing.T) {
	if got := ParseStudyStyle(" Visual "); got == nil || *got != StyleVisual {
		t.Fatalf("expected visual, got %v", got)
	}
	if got := ParseStudyStyle("kinesthetic"); got != nil {
		t.Fatalf("expected nil for unrecognized style, got %v", *got)
	}
	if got := ParseStudyStyle(""); got != nil {
		t.Fatalf("expected nil for empty style, got %v", *got)
	}
}

func TestParseExperienceLevel(t *testing.T) {
	if got := ParseExperienceLevel("EXPERT"); got == nil || *got != LevelExpert {
		t.Fatalf("expected expert, got %v", got)
	}
	if got := ParseExperienceLevel("grandmaster"); got != nil {
		t.Fatalf("expected nil for unrecognized level, got %v", *got)
	}
}
