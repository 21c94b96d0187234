package matching

import (
	"math"
	"sort"
	"strings"

	"companion-matcher/internal/apperr"
	"companion-matcher/internal/models"
	"companion-matcher/internal/store"
)

// MinSharedInterests is the compatibility gate: candidates sharing fewer
// interests with the target are never listed.
const MinSharedInterests = 2

// Engine ranks directory profiles by interest overlap with a target. It is a
// pure read over the directory; nothing is cached between calls.
type Engine struct {
	directory *store.Directory
}

func NewEngine(directory *store.Directory) *Engine {
	return &Engine{directory: directory}
}

// ComputeMatches scans every other profile and returns those sharing at
// least MinSharedInterests interests with the target, scored by
// round(100 * |shared| / max(|target|, |candidate|)) and sorted by score
// descending. Ties rank by name ascending so the ordering is deterministic.
func (e *Engine) ComputeMatches(targetName string) ([]models.UserMatch, error) {
	targetKey := store.NormalizeUsername(targetName)
	target, ok := e.directory.Get(targetKey)
	if !ok {
		return nil, apperr.NotFound("User not found")
	}

	matches := make([]models.UserMatch, 0)
	for key, candidate := range e.directory.All() {
		if key == targetKey {
			continue
		}

		shared := sharedInterests(target.Interests, candidate.Interests)
		if len(shared) < MinSharedInterests {
			continue
		}

		match := candidate.AsMatch()
		match.SharedInterests = shared
		match.CompatibilityScore = score(len(shared), len(target.Interests), len(candidate.Interests))
		matches = append(matches, match)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].CompatibilityScore != matches[j].CompatibilityScore {
			return matches[i].CompatibilityScore > matches[j].CompatibilityScore
		}
		return strings.ToLower(matches[i].Name) < strings.ToLower(matches[j].Name)
	})
	return matches, nil
}

// sharedInterests intersects two interest sets, preserving the target's tag
// order in the result.
func sharedInterests(target, candidate []string) []string {
	candidateSet := make(map[string]struct{}, len(candidate))
	for _, interest := range candidate {
		candidateSet[interest] = struct{}{}
	}

	shared := make([]string, 0)
	for _, interest := range target {
		if _, ok := candidateSet[interest]; ok {
			shared = append(shared, interest)
		}
	}
	return shared
}

// score normalizes the overlap by the larger interest set so a candidate with
// many unrelated interests is not over-rewarded for a small overlap.
func score(shared, targetSize, candidateSize int) int {
	larger := targetSize
	if candidateSize > larger {
		larger = candidateSize
	}
	if larger == 0 {
		return 0
	}
	return int(math.Round(100 * float64(shared) / float64(larger)))
}
