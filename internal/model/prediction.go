package model

// Tier selects the prediction section a request targets.
type Tier string

const (
	TierFree Tier = "FREE"
	TierVip  Tier = "VIP"
)

// RiskLevel grades a prediction's volatility.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Prediction is a single generated tip. Records carry no stable identity;
// consumers key on team name plus batch position.
type Prediction struct {
	HomeTeam    string    `json:"homeTeam"`
	AwayTeam    string    `json:"awayTeam"`
	League      string    `json:"league"`
	Prediction  string    `json:"prediction"`
	Odds        float64   `json:"odds"`
	Confidence  int       `json:"confidence"`
	Analysis    string    `json:"analysis"`
	KickoffTime string    `json:"kickoffTime"`
	RiskLevel   RiskLevel `json:"riskLevel"`
}

// Source is a citation attached to a generated batch.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// PredictionBatch is the parsed result of one generation call.
type PredictionBatch struct {
	Predictions []Prediction `json:"predictions"`
	Sources     []Source     `json:"sources"`
}
