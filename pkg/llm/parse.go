package llm

import "strings"

const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
	ActionHold = "HOLD"
)

const summaryLabel = "Overall Analysis"

// Recommendation is the parsed action and rationale for one horizon.
type Recommendation struct {
	Action string
	Reason string
}

// Analysis is the structured form of a generated analysis response.
type Analysis struct {
	ShortTerm Recommendation
	MidTerm   Recommendation
	LongTerm  Recommendation
	Summary   string
}

// ParseAnalysis extracts recommendations and the summary from the model's
// templated markdown output. The extraction is best-effort over
// non-guaranteed text: every field has a default and the function never
// fails. Splitting on the bold marker yields alternating label/content
// segments; each field is found by label match and read from the segment
// that follows.
func ParseAnalysis(text string) Analysis {
	sections := strings.Split(text, "**")

	return Analysis{
		ShortTerm: parseHorizon(sections, "Short-Term"),
		MidTerm:   parseHorizon(sections, "Mid-Term"),
		LongTerm:  parseHorizon(sections, "Long-Term"),
		Summary:   parseSummary(sections, text),
	}
}

func parseHorizon(sections []string, horizon string) Recommendation {
	action := ActionHold
	recLabel := horizon + " Recommendation"
	for i, section := range sections {
		if strings.Contains(section, recLabel) {
			if i+1 < len(sections) {
				action = firstAction(sections[i+1])
			}
			break
		}
	}

	reason := ""
	reasonLabel := horizon + " Reasons"
	for i, section := range sections {
		if strings.Contains(section, reasonLabel) {
			if i+1 < len(sections) {
				reason = strings.TrimSpace(sections[i+1])
			}
			break
		}
	}
	if reason == "" {
		reason = "No " + strings.ToLower(horizon) + " rationale provided."
	}

	return Recommendation{Action: action, Reason: reason}
}

// firstAction returns the earliest BUY/SELL/HOLD token in the segment,
// case-insensitive, defaulting to HOLD when none appears.
func firstAction(segment string) string {
	upper := strings.ToUpper(segment)

	action := ActionHold
	best := len(upper) + 1
	for _, candidate := range []string{ActionBuy, ActionSell, ActionHold} {
		if idx := strings.Index(upper, candidate); idx >= 0 && idx < best {
			best = idx
			action = candidate
		}
	}
	return action
}

func parseSummary(sections []string, text string) string {
	for i, section := range sections {
		if strings.Contains(section, summaryLabel) {
			if i+1 < len(sections) {
				return strings.TrimSpace(sections[i+1])
			}
			break
		}
	}
	// No summary marker at all: better to over-return than drop data.
	return text
}
