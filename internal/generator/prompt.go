package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/betguide449-cyber/betguide-cli/internal/model"
)

// marketOddsRanges maps a VIP market filter to the value range the model
// should target. Markets not listed fall back to the default range.
var marketOddsRanges = map[string]string{
	"Correct Score":                "5.00 - 25.00",
	"HT/FT":                        "2.50 - 15.00",
	"BTTS & Over 2.5":              "2.00 - 3.50",
	"Draw":                         "2.80 - 4.50",
	"Over 1.5 Goals":               "1.20 - 1.60",
	"Home or Away Win":             "1.50 - 3.00",
	"BTTS":                         "1.60 - 2.60",
	"1up":                          "2.00 - 3.20",
	"2up":                          "1.80 - 2.80",
	"Build the Bet":                "3.00 - 8.00",
	"Home Team Over 1.5 Goals":     "1.50 - 2.50",
	"Away Team Over 1.5 Goals":     "1.90 - 3.20",
	"Safe Market":                  "1.15 - 1.50",
	"Win & Over 2.5 Goals":         "2.00 - 5.00",
	"Under 2.5 Goals":              "1.60 - 3.50",
	"Over 2.5 Goals":               "1.60 - 3.50",
	"Both Teams to Score (Yes/No)": "1.60 - 2.60",
}

const defaultOddsRange = "1.60 - 3.50"

// marketPromptNames rewords terse market labels for the model.
var marketPromptNames = map[string]string{
	"Home or Away Win": "Full Time Result (Home Win OR Away Win)",
	"BTTS":             "Both Teams to Score (Yes OR No)",
	"1up":              "1st Half Winner",
	"2up":              "Early Payout (Dominant Team)",
	"Build the Bet":    "Same Game Multi (Winner + Goals)",
	"Safe Market":      "Safe Bet (Over 1.5, DC, or Team Over 0.5)",
}

func systemPrompt(tier model.Tier, dateString string) string {
	if tier == model.TierVip {
		return fmt.Sprintf(`Role: Elite Sports Data Scientist. Methodology: Rigorous, risk-averse.
Protocol:
1. DATE CHECK: STRICTLY TODAY (%s) ONLY. Reject tomorrow's/yesterday's games.
2. TIME CHECK: REJECT if match started/finished. Upcoming only.
3. ANALYZE: Form, H2H, Injuries, Motivation, xG Regression.
4. FILTER: Select ONLY matches with confidence > 85%%.
Output: Calculated, high-confidence data.`, dateString)
	}
	return fmt.Sprintf("Role: Conservative football analyst. Goal: Safety on UPCOMING matches for TODAY (%s) only. Ignore played games. Confidence must be > 80%%.", dateString)
}

func marketConstraints(tier model.Tier, market string) string {
	if tier != model.TierVip {
		return "Strictly predict: FT Result, Double Chance, or Over 1.5 Goals. Odds 1.2 - 1.7."
	}
	if market == "" || market == "Any" {
		return "Focus on high value: Home Wins, BTTS, Over 2.5. Odds 1.8 - 3.5."
	}

	oddsRange, ok := marketOddsRanges[market]
	if !ok {
		oddsRange = defaultOddsRange
	}
	name := market
	if renamed, ok := marketPromptNames[market]; ok {
		name = renamed
	}
	return fmt.Sprintf("Strictly predict %q ONLY. Value Range: %s.", name, oddsRange)
}

func userPrompt(req Request, now time.Time) string {
	dateString := now.Format("Mon Jan 2 2006")
	timeString := now.Format("15:04")
	count := ClampBatchSize(req.BatchSize)

	var b strings.Builder
	fmt.Fprintf(&b, "Context: Today is %s, Current Time: %s (%s)\n\n", dateString, timeString, now.Location())
	b.WriteString("Task:\n")
	b.WriteString("1. Consider today's football schedule from major fixture sources.\n")
	fmt.Fprintf(&b, "2. DATE FILTER: Keep ONLY matches scheduled for TODAY (%s). Exclude tomorrow's games.\n", dateString)
	fmt.Fprintf(&b, "3. TIME FILTER: Compare kickoff vs %s. REJECT finished/live matches.\n", timeString)
	fmt.Fprintf(&b, "4. Select %d UPCOMING matches for TODAY.\n", count)
	b.WriteString("5. ANALYZE: Form, H2H, Trends, Injuries, Morale.\n")
	fmt.Fprintf(&b, "6. Market: %s\n", marketConstraints(req.Tier, req.Market))
	b.WriteString("7. SCORING: Assign confidence between 85 and 99.\n")
	b.WriteString(`
Output JSON ONLY:
{
  "predictions": [
    {
      "homeTeam": "string",
      "awayTeam": "string",
      "league": "string",
      "prediction": "string",
      "odds": number,
      "confidence": number (85-99),
      "analysis": "concise reasoning",
      "kickoffTime": "HH:MM",
      "riskLevel": "Low"|"Medium"|"High"
    }
  ],
  "sources": [{"title": "string", "url": "string"}]
}
`)
	return b.String()
}
