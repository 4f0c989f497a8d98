package matching

import "strings"

// CommonTopics returns the requester subjects that match any candidate
// interest tag. Matching is case-insensitive substring containment in either
// direction, so "math" pairs with "Mathematics" and vice versa. The result
// preserves requester order and contains no duplicates.
func CommonTopics(subjects, interestTags []string) []string {
	tags := make([]string, 0, len(interestTags))
	for _, t := range interestTags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			tags = append(tags, t)
		}
	}

	seen := make(map[string]struct{}, len(subjects))
	out := make([]string, 0, len(subjects))
	for _, subj := range subjects {
		s := strings.ToLower(strings.TrimSpace(subj))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		for _, t := range tags {
			if strings.Contains(t, s) || strings.Contains(s, t) {
				seen[s] = struct{}{}
				out = append(out, subj)
				break
			}
		}
	}
	return out
}
