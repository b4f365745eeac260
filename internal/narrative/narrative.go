// Package narrative turns the numeric report's raw metrics into prose sections
// through an external text-generation service.
package narrative

import (
	"encoding/json"
	"sort"
	"strings"

	"finhealth/internal/model"

	"github.com/pkg/errors"
)

var (
	// ErrNarrativeMalformed is returned when the response is not JSON or lacks a required section
	ErrNarrativeMalformed = errors.New("narrative response is malformed")

	// ErrNarrativeUnavailable is returned when the service cannot be reached or refuses the request
	ErrNarrativeUnavailable = errors.New("narrative service unavailable")
)

const instructions = "You are a financial analyst for a small e-commerce business.\n" +
	"Write a short strategic review of the month from the metrics below.\n" +
	"Only use the figures provided; do not invent numbers.\n\n" +
	"Return ONLY a raw JSON object with exactly these string fields:\n" +
	"- \"situation_summary\": overall financial situation and health score\n" +
	"- \"expense_analysis\": where the money goes and how the burn rate evolves\n" +
	"- \"roi_profitability\": product profitability and advertising return\n" +
	"- \"operational_analysis\": delivery and return performance by city\n" +
	"- \"projections_risks\": month-end projection and the main risks\n" +
	"- \"recommendations\": prioritized actions, most urgent first\n" +
	"Do NOT wrap the response in code fences.\n\n" +
	"Metrics:\n"

// BuildPrompt renders the instructions followed by the JSON-encoded input.
func BuildPrompt(input model.NarrativeInput) (string, error) {
	payload, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encode narrative input")
	}
	return instructions + string(payload), nil
}

// Parse decodes a generated response and checks that every required section is present
// and non-empty. A section returned as a list of strings is joined line by line.
func Parse(raw string) (model.Narrative, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &fields); err != nil {
		return nil, errors.Wrapf(ErrNarrativeMalformed, "decode: %v", err)
	}

	out := make(model.Narrative, len(model.NarrativeSections))
	var missing []string
	for _, key := range model.NarrativeSections {
		text, ok := sectionText(fields[key])
		if !ok {
			missing = append(missing, key)
			continue
		}
		out[key] = text
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, errors.Wrapf(ErrNarrativeMalformed, "missing sections: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

func sectionText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		s = strings.TrimSpace(strings.Join(lines, "\n"))
		return s, s != ""
	}
	return "", false
}

// cleanModelJSON strips Markdown fences and any text around the outermost JSON object.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}
	return s
}
