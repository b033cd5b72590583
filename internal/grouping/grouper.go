package grouping

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/files"
)

// legacyStemPattern is the fixed fallback format: four uppercase
// alphanumerics for the camera id, four digits for the counter, then
// optional dash-delimited property tokens.
var legacyStemPattern = regexp.MustCompile(`^([A-Z0-9]{4})(\d{4})(?:-(.+))?$`)

// BuildImageGroups parses file records into image groups keyed by camera id
// plus counter. When filenameRegex is non-empty and usable it drives parsing;
// cameraIDGroup (1 or 2, default 1) selects which capture group holds the
// camera id, the other holds the counter. An unusable regex falls back to the
// legacy fixed format rather than failing the run.
//
// Files matching neither format are returned as invalid with a reason; the
// function never fails on malformed input. Groups are sorted by group id,
// and files and properties within each separate image are sorted, so output
// is deterministic and idempotent.
func BuildImageGroups(records []files.Info, filenameRegex string, cameraIDGroup int) ([]ImageGroup, []InvalidFile) {
	parse := legacyParser()
	if filenameRegex != "" {
		if p, ok := regexParser(filenameRegex, cameraIDGroup); ok {
			parse = p
		}
	}

	groups := make(map[string]*ImageGroup)
	var invalid []InvalidFile

	for _, rec := range records {
		parsed, reason := parse(rec.Stem)
		if reason != "" {
			invalid = append(invalid, InvalidFile{Filename: rec.Name, Path: rec.Path, Reason: reason})
			continue
		}

		groupID := parsed.cameraID + parsed.counter
		group, ok := groups[groupID]
		if !ok {
			group = &ImageGroup{
				GroupID:        groupID,
				CameraID:       parsed.cameraID,
				Counter:        parsed.counter,
				SeparateImages: make(map[string]*SeparateImageData),
			}
			groups[groupID] = group
		}

		suffix, properties := classifyTokens(parsed.tokens)
		image, ok := group.SeparateImages[suffix]
		if !ok {
			image = &SeparateImageData{}
			group.SeparateImages[suffix] = image
		}
		image.Files = append(image.Files, rec.Path)
		image.Properties = mergeProperties(image.Properties, properties)
	}

	result := make([]ImageGroup, 0, len(groups))
	for _, group := range groups {
		for _, image := range group.SeparateImages {
			sort.Strings(image.Files)
			sort.Strings(image.Properties)
		}
		result = append(result, *group)
	}
	sort.Slice(result, func(a, b int) bool { return result[a].GroupID < result[b].GroupID })
	return result, invalid
}

type parsedStem struct {
	cameraID string
	counter  string
	tokens   []string
}

type stemParser func(stem string) (parsedStem, string)

func legacyParser() stemParser {
	return func(stem string) (parsedStem, string) {
		match := legacyStemPattern.FindStringSubmatch(stem)
		if match == nil {
			return parsedStem{}, "does not match expected filename format (AAAA0000[-properties])"
		}
		if match[2] == "0000" {
			return parsedStem{}, "counter 0000 is not a valid image counter"
		}
		tokens, reason := splitTokens(match[3])
		if reason != "" {
			return parsedStem{}, reason
		}
		return parsedStem{cameraID: match[1], counter: match[2], tokens: tokens}, ""
	}
}

// regexParser builds a parser from a capture-node regex. It reports false
// when the expression does not compile or exposes fewer than two capture
// groups, in which case the caller falls back to the legacy format.
func regexParser(expr string, cameraIDGroup int) (stemParser, bool) {
	re, err := regexp.Compile(expr)
	if err != nil || re.NumSubexp() < 2 {
		return nil, false
	}
	counterGroup := 2
	if cameraIDGroup == 2 {
		counterGroup = 1
	} else {
		cameraIDGroup = 1
	}

	return func(stem string) (parsedStem, string) {
		loc := re.FindStringSubmatchIndex(stem)
		if loc == nil || loc[0] != 0 {
			return parsedStem{}, fmt.Sprintf("does not match pipeline filename pattern %q", expr)
		}
		cameraID := submatch(stem, loc, cameraIDGroup)
		counter := submatch(stem, loc, counterGroup)
		if cameraID == "" || counter == "" {
			return parsedStem{}, "filename pattern matched without camera id or counter"
		}

		remainder := stem[loc[1]:]
		tokens, reason := splitRemainder(remainder)
		if reason != "" {
			return parsedStem{}, reason
		}
		return parsedStem{cameraID: cameraID, counter: counter, tokens: tokens}, ""
	}, true
}

// splitRemainder tokenizes the text following a regex match. A single
// leading dash is stripped first; a remainder that then collapses to nothing
// (the filename ended in dashes) is invalid.
func splitRemainder(remainder string) ([]string, string) {
	if remainder == "" {
		return nil, ""
	}
	trimmed := strings.TrimPrefix(remainder, "-")
	if trimmed == "" {
		return nil, "property suffix contains an empty token"
	}
	return splitTokens(trimmed)
}

func splitTokens(text string) ([]string, string) {
	if text == "" {
		return nil, ""
	}
	tokens := strings.Split(text, "-")
	for _, token := range tokens {
		if token == "" {
			return nil, "property suffix contains an empty token"
		}
	}
	return tokens, ""
}

// classifyTokens assigns the first all-numeric token as the separate-image
// suffix; every other token, numeric or not, becomes a processing-method
// property. Later numeric tokens are deliberately demoted to properties even
// though that reads oddly; downstream consumers rely on it.
func classifyTokens(tokens []string) (suffix string, properties []string) {
	suffixSeen := false
	for _, token := range tokens {
		if !suffixSeen && isNumeric(token) {
			suffix = token
			suffixSeen = true
			continue
		}
		properties = append(properties, token)
	}
	return suffix, properties
}

func isNumeric(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func mergeProperties(existing, incoming []string) []string {
	if len(incoming) == 0 {
		return existing
	}
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, p := range existing {
		seen[p] = struct{}{}
	}
	for _, p := range incoming {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		existing = append(existing, p)
	}
	return existing
}

func submatch(s string, loc []int, group int) string {
	start, end := loc[2*group], loc[2*group+1]
	if start < 0 || end < 0 {
		return ""
	}
	return s[start:end]
}
