package output

import (
	"math"
	"strconv"

	"value-rating/model"
	"value-rating/parser"
	"value-rating/rating"
)

// column is one exported field. decimals < 0 prints the shortest exact form.
type column struct {
	header   string
	decimals int
	value    func(r *model.RatingResult) interface{}
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func stat(header string, get func(p *model.PlayerStats) interface{}) column {
	return column{header: header, decimals: -1, value: func(r *model.RatingResult) interface{} {
		return get(&r.Stats)
	}}
}

// columns lists the export layout: identity and rating first, then the raw
// record using the import column names, then derived metrics and contributions.
var columns = buildColumns()

func buildColumns() []column {
	cols := []column{
		{header: parser.ColNameAlt, decimals: -1, value: func(r *model.RatingResult) interface{} { return r.Stats.Name }},
		{header: parser.ColRole, decimals: -1, value: func(r *model.RatingResult) interface{} { return r.Stats.Role }},
		{header: "rating", decimals: 2, value: func(r *model.RatingResult) interface{} { return Round2(r.Rating) }},

		stat(parser.ColAgent, func(p *model.PlayerStats) interface{} { return p.Agent }),
		stat(parser.ColSteamID, func(p *model.PlayerStats) interface{} { return p.SteamID }),
		stat(parser.ColRounds, func(p *model.PlayerStats) interface{} { return p.RoundsPlayed }),
		stat(parser.ColAttackRounds, func(p *model.PlayerStats) interface{} { return p.AttackRounds }),
		stat(parser.ColDefenseRounds, func(p *model.PlayerStats) interface{} { return p.DefenseRounds }),
		stat(parser.ColKills, func(p *model.PlayerStats) interface{} { return p.Kills }),
		stat(parser.ColDeaths, func(p *model.PlayerStats) interface{} { return p.Deaths }),
		stat(parser.ColAssists, func(p *model.PlayerStats) interface{} { return p.Assists }),
		stat(parser.ColFirstKills, func(p *model.PlayerStats) interface{} { return p.OpeningKills }),
		stat(parser.ColFirstDeaths, func(p *model.PlayerStats) interface{} { return p.OpeningDeaths }),
		stat(parser.ColACS, func(p *model.PlayerStats) interface{} { return p.ACS }),
		stat(parser.ColADR, func(p *model.PlayerStats) interface{} { return p.ADR }),
		stat(parser.ColTotalDamage, func(p *model.PlayerStats) interface{} { return p.TotalDamage }),
		stat(parser.ColKAST, func(p *model.PlayerStats) interface{} { return p.KASTPercent }),
		stat(parser.ColHS, func(p *model.PlayerStats) interface{} { return p.HSPercent }),
		stat(parser.ColClutchWins, func(p *model.PlayerStats) interface{} { return p.ClutchWins }),
		stat(parser.ColTwoKills, func(p *model.PlayerStats) interface{} { return p.MultiKills[2] }),
		stat(parser.ColThreeKills, func(p *model.PlayerStats) interface{} { return p.MultiKills[3] }),
		stat(parser.ColFourKills, func(p *model.PlayerStats) interface{} { return p.MultiKills[4] }),
		stat(parser.ColFiveKills, func(p *model.PlayerStats) interface{} { return p.MultiKills[5] }),
		stat(parser.ColPlants, func(p *model.PlayerStats) interface{} { return p.Plants }),
		stat(parser.ColDefuses, func(p *model.PlayerStats) interface{} { return p.Defuses }),
		stat(parser.ColTradeKills, func(p *model.PlayerStats) interface{} { return p.TradeKills }),
		stat(parser.ColNonDamageAssts, func(p *model.PlayerStats) interface{} { return p.NonDamageAssists }),
		stat(parser.ColKillsAttack, func(p *model.PlayerStats) interface{} { return p.AttackKills }),
		stat(parser.ColKillsDefense, func(p *model.PlayerStats) interface{} { return p.DefenseKills }),
		stat(parser.ColDeathsAttack, func(p *model.PlayerStats) interface{} { return p.AttackDeaths }),
		stat(parser.ColDeathsDefense, func(p *model.PlayerStats) interface{} { return p.DefenseDeaths }),
		stat(parser.ColAssistsAttack, func(p *model.PlayerStats) interface{} { return p.AttackAssists }),
		stat(parser.ColAssistsDefense, func(p *model.PlayerStats) interface{} { return p.DefenseAssists }),
		stat(parser.ColACSAttack, func(p *model.PlayerStats) interface{} { return p.AttackACS }),
		stat(parser.ColACSDefense, func(p *model.PlayerStats) interface{} { return p.DefenseACS }),
		stat(parser.ColADRAttack, func(p *model.PlayerStats) interface{} { return p.AttackADR }),
		stat(parser.ColADRDefense, func(p *model.PlayerStats) interface{} { return p.DefenseADR }),
		stat(parser.ColKASTAttack, func(p *model.PlayerStats) interface{} { return p.AttackKAST }),
		stat(parser.ColKASTDefense, func(p *model.PlayerStats) interface{} { return p.DefenseKAST }),
		stat(parser.ColHSAttack, func(p *model.PlayerStats) interface{} { return p.AttackHS }),
		stat(parser.ColHSDefense, func(p *model.PlayerStats) interface{} { return p.DefenseHS }),
	}

	for _, metric := range rating.Metrics {
		m := metric
		cols = append(cols, column{header: m, decimals: -1, value: func(r *model.RatingResult) interface{} {
			return rating.Value(r.Derived, m)
		}})
	}
	for _, metric := range rating.Metrics {
		m := metric
		cols = append(cols, column{header: "contrib_" + m, decimals: -1, value: func(r *model.RatingResult) interface{} {
			return r.Contributions[m]
		}})
	}
	cols = append(cols, column{header: "raw_score", decimals: -1, value: func(r *model.RatingResult) interface{} {
		return r.RawScore
	}})
	return cols
}

// Headers returns the export header row.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.header
	}
	return out
}

func formatCell(v interface{}, decimals int) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', decimals, 64)
	}
	return ""
}
