package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"eddyzhang/jd-matcher/internal/models"
)

var errNoJSONObject = errors.New("no JSON object found")

// ParseError reports agent output that could not be turned into a JSON object.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse agent response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Coerce extracts the JSON object from raw agent output and normalises it
// into a MatchResult with every field present and every score in [0,100].
func Coerce(raw string) (*models.MatchResult, error) {
	data, err := extractObject(raw)
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	result := models.NewMatchResult()

	if score, ok := data["score"].(map[string]any); ok {
		result.Score = models.Score{
			Overall: toScore(score["overall"]),
			Exact:   toScore(score["exact"]),
			Related: toScore(score["related"]),
			Gaps:    toScore(score["gaps"]),
		}
	}

	result.Matched = toStrings(data["matched"])
	result.Related = toRelated(data["related"])
	result.Gaps = toStrings(data["gaps"])
	result.Summary, _ = data["summary"].(string)
	result.ReplyTemplate, _ = data["replyTemplate"].(string)

	return result, nil
}

// extractObject takes the widest span from the first '{' to the last '}'.
// When that span is not valid JSON (several fragments, trailing braces in
// prose) it falls back to the first complete top-level object.
func extractObject(text string) (map[string]any, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start == -1 || end <= start {
		var data map[string]any
		if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &data); err != nil {
			return nil, fmt.Errorf("%w: %v", errNoJSONObject, err)
		}
		if data == nil {
			return nil, errNoJSONObject
		}
		return data, nil
	}

	var data map[string]any
	spanErr := json.Unmarshal([]byte(text[start:end+1]), &data)
	if spanErr == nil && data != nil {
		return data, nil
	}

	if data, ok := firstBalancedObject(text[start:]); ok {
		return data, nil
	}

	return nil, fmt.Errorf("failed to unmarshal JSON: %w", spanErr)
}

// firstBalancedObject walks text tracking brace depth and returns the first
// object opened at depth zero that closes and decodes. A region that fails to
// decode is skipped as a whole, so objects nested inside it never surface as
// the result. Quotes only count inside an object; prose around it may hold
// unbalanced ones.
func firstBalancedObject(text string) (map[string]any, bool) {
	depth, start := 0, -1
	inString, escaped := false, false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth > 0 {
				continue
			}

			var data map[string]any
			if err := json.Unmarshal([]byte(text[start:i+1]), &data); err == nil && data != nil {
				return data, true
			}
		}
	}
	return nil, false
}

func toScore(v any) int {
	var n float64

	switch x := v.(type) {
	case float64:
		n = x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		n = f
	case bool:
		if x {
			n = 1
		}
	default:
		return 0
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}

	return int(math.Max(0, math.Min(100, math.RoundToEven(n))))
}

func toStrings(v any) []string {
	out := []string{}

	items, ok := v.([]any)
	if !ok {
		return out
	}

	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toRelated(v any) []models.RelatedSkill {
	out := []models.RelatedSkill{}

	items, ok := v.([]any)
	if !ok {
		return out
	}

	for _, item := range items {
		switch x := item.(type) {
		case string:
			out = append(out, models.RelatedSkill{Name: x})
		case map[string]any:
			name, ok := x["name"].(string)
			if !ok {
				continue
			}
			reason, _ := x["reason"].(string)
			out = append(out, models.RelatedSkill{Name: name, Reason: reason})
		}
	}
	return out
}
