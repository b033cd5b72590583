package validation

import (
	"sort"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/files"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/grouping"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/pipeline"
)

// candidate is one property-consistent path evaluated against an image.
type candidate struct {
	terminationType string
	propsConsumed   int
	requiredPresent int
	requiredMissing int
	optionalMissing int
	matched         []string
	missing         []string
}

// ValidateSpecificImage classifies one image against the enumerated path set.
// Only non-truncated paths ending on a termination whose process methods are
// a subset of the image's properties are candidates. Per termination type the
// best candidate decides the status; the best candidate overall decides the
// image's status. "Best" prefers paths consuming more of the image's
// properties, so a fully satisfied short path never masks the missing
// outputs of a claimed processing method.
func ValidateSpecificImage(img grouping.SpecificImage, cfg *pipeline.Config, paths []pipeline.Path) Result {
	result := Result{BaseFilename: img.BaseFilename, OverallStatus: StatusInconsistent}

	best := make(map[string]candidate)
	for _, path := range paths {
		term := path.Termination(cfg)
		if term == nil {
			continue
		}
		cand, ok := evaluatePath(img, cfg, path, term.TerminationType)
		if !ok {
			continue
		}
		current, seen := best[cand.terminationType]
		if !seen || betterCandidate(cand, current) {
			best[cand.terminationType] = cand
		}
	}
	if len(best) == 0 {
		return result
	}

	types := make([]string, 0, len(best))
	for t := range best {
		types = append(types, t)
	}
	sort.Strings(types)

	overall := StatusInconsistent
	overallProps := -1
	for _, t := range types {
		cand := best[t]
		match := TerminationMatch{
			TerminationType:    t,
			Status:             cand.status(),
			MatchedFiles:       cand.matched,
			MissingFiles:       cand.missing,
			propertiesConsumed: cand.propsConsumed,
		}
		result.TerminationMatches = append(result.TerminationMatches, match)

		if cand.propsConsumed > overallProps ||
			(cand.propsConsumed == overallProps && match.Status.score() > overall.score()) {
			overall = match.Status
			overallProps = cand.propsConsumed
		}
	}
	result.OverallStatus = overall
	return result
}

// evaluatePath checks property consistency and computes the expected-file
// comparison for one path. It reports false when the path requires a
// processing method the image does not carry.
func evaluatePath(img grouping.SpecificImage, cfg *pipeline.Config, path pipeline.Path, terminationType string) (candidate, bool) {
	consumed := make(map[string]struct{})
	type expectation struct {
		required bool
	}
	expected := make(map[string]expectation)
	var order []string

	for _, idx := range path.Nodes {
		node := cfg.NodeAt(idx)
		switch node.Type {
		case pipeline.NodeProcess:
			if !node.MatchesMethod(img.Properties) {
				return candidate{}, false
			}
			for _, id := range node.MethodIDs {
				if img.HasProperty(id) {
					consumed[id] = struct{}{}
				}
			}
		case pipeline.NodeFile:
			ext := files.NormalizeExtension(node.Extension)
			if ext == "" {
				continue
			}
			exp, seen := expected[ext]
			if !seen {
				order = append(order, ext)
			}
			// A required occurrence anywhere on the path wins.
			exp.required = exp.required || node.FileRequired()
			expected[ext] = exp
		case pipeline.NodeCapture, pipeline.NodePairing, pipeline.NodeBranching, pipeline.NodeTermination:
			// No file or method expectations of their own.
		}
	}

	cand := candidate{terminationType: terminationType, propsConsumed: len(consumed)}
	for _, ext := range order {
		exp := expected[ext]
		if matches := filesWithExtension(img.Files, ext); len(matches) > 0 {
			cand.matched = append(cand.matched, matches...)
			if exp.required {
				cand.requiredPresent++
			}
			continue
		}
		cand.missing = append(cand.missing, img.BaseFilename+ext)
		if exp.required {
			cand.requiredMissing++
		} else {
			cand.optionalMissing++
		}
	}
	sort.Strings(cand.matched)
	sort.Strings(cand.missing)
	return cand, true
}

func (c candidate) status() Status {
	switch {
	case c.requiredMissing == 0 && c.optionalMissing == 0:
		return StatusConsistent
	case c.requiredMissing == 0:
		return StatusConsistentWithWarning
	case c.requiredPresent > 0:
		return StatusPartial
	default:
		return StatusInconsistent
	}
}

// betterCandidate ranks a against b: more image properties consumed first,
// then fewer missing required files, then fewer missing optional files, then
// more required files present.
func betterCandidate(a, b candidate) bool {
	if a.propsConsumed != b.propsConsumed {
		return a.propsConsumed > b.propsConsumed
	}
	if a.requiredMissing != b.requiredMissing {
		return a.requiredMissing < b.requiredMissing
	}
	if a.optionalMissing != b.optionalMissing {
		return a.optionalMissing < b.optionalMissing
	}
	return a.requiredPresent > b.requiredPresent
}

func filesWithExtension(paths []string, normalizedExt string) []string {
	var out []string
	for _, p := range paths {
		if files.NormalizeExtension(extensionOf(p)) == normalizedExt {
			out = append(out, p)
		}
	}
	return out
}

func extensionOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case '.':
			return path[i:]
		case '/', '\\':
			return ""
		}
	}
	return ""
}
