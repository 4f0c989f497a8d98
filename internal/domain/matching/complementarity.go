package matching

import "strings"

// strongConfidence is the cutoff above which a topic counts as a strength.
const strongConfidence = 0.7

// Complementarity measures how well two users' weak/strong topic sets
// interlock: a learner weak in X paired with a partner strong in X, and the
// other way around. Both directions contribute and the sum is capped at 1.
//
// Every submitted gap topic counts as weak regardless of its confidence value;
// strong topics are the subset with confidence above the cutoff.
func Complementarity(reqGaps, candGaps []TopicConfidence) float64 {
	reqWeak, reqStrong := partitionGaps(reqGaps)
	candWeak, candStrong := partitionGaps(candGaps)

	score := jaccard(reqWeak, candStrong) + jaccard(candWeak, reqStrong)
	if score > 1 {
		return 1
	}
	return score
}

func partitionGaps(gaps []TopicConfidence) (weak, strong map[string]struct{}) {
	weak = make(map[string]struct{}, len(gaps))
	strong = make(map[string]struct{})
	for _, g := range gaps {
		topic := strings.ToLower(strings.TrimSpace(g.Topic))
		if topic == "" {
			continue
		}
		weak[topic] = struct{}{}
		if g.Confidence > strongConfidence {
			strong[topic] = struct{}{}
		}
	}
	return weak, strong
}
