package model

// PlayerStats is one player's raw round-level line as imported from a
// stats export or accumulated from a demo.
type PlayerStats struct {
	SteamID string
	Name    string
	Agent   string
	Role    string

	RoundsPlayed  int
	AttackRounds  int
	DefenseRounds int

	Kills         int
	Deaths        int
	Assists       int
	OpeningKills  int
	OpeningDeaths int

	// Per-side splits, zero when the source has none
	AttackKills    int
	DefenseKills   int
	AttackDeaths   int
	DefenseDeaths  int
	AttackAssists  int
	DefenseAssists int

	MultiKills [6]int // index = kills in round

	ClutchWins       int
	Plants           int
	Defuses          int
	TradeKills       int
	NonDamageAssists int

	// Scalar stats, percentages are 0-100
	ACS         float64
	ADR         float64
	TotalDamage float64
	KASTPercent float64
	HSPercent   float64

	AttackACS   float64
	DefenseACS  float64
	AttackADR   float64
	DefenseADR  float64
	AttackKAST  float64
	DefenseKAST float64
	AttackHS    float64
	DefenseHS   float64
}

// DerivedMetrics are the per-round ratios computed once from PlayerStats.
type DerivedMetrics struct {
	KPR         float64
	DPR         float64
	ADR         float64
	KAST        float64
	Entry       float64
	ACS         float64 // combat score per round
	Headshot    float64
	Consistency float64
	Clutch      float64
	MultiKill   float64
	Support     float64
	Objective   float64
}

// RatingResult is the output of one pipeline run for one player.
type RatingResult struct {
	Index int // position in the input slice

	Stats   PlayerStats
	Derived DerivedMetrics

	ZScores       map[string]float64
	Contributions map[string]float64
	RawScore      float64
	Rating        float64
}

// Canonical roles. RoleUnknown marks a player whose agent is not in the lookup table.
const (
	RoleDuelist    = "Duelist"
	RoleInitiator  = "Initiator"
	RoleController = "Controller"
	RoleSentinel   = "Sentinel"
	RoleUnknown    = "Unknown"
)
