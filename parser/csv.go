// Package parser builds model.PlayerStats from stats exports and demos.
package parser

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"value-rating/model"
)

var (
	ErrEmptyInput    = errors.New("empty stats input")
	ErrMissingHeader = errors.New("missing player name header")
	ErrMalformed     = errors.New("malformed stats input")
)

// MalformedError reports input the CSV reader could not split into records.
// It matches ErrMalformed and unwraps to the reader's *csv.ParseError.
type MalformedError struct {
	Err error
}

func (e *MalformedError) Error() string {
	return ErrMalformed.Error() + ": " + e.Err.Error()
}

func (e *MalformedError) Unwrap() error { return e.Err }

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

// maxCell bounds numeric cells. Larger magnitudes read as 0 so counts stay
// within int range and sums of squares stay finite.
const maxCell = 1e9

// Column names of the stats export. Lookups are case-insensitive.
const (
	ColName           = "Player_Name"
	ColSteamID        = "Steam_ID"
	ColNameAlt        = "name"
	ColAgent          = "Agent"
	ColRole           = "role"
	ColRounds         = "Rounds"
	ColAttackRounds   = "Attack_Got_Round"
	ColDefenseRounds  = "Defense_Got_Round"
	ColKills          = "Kill_All"
	ColDeaths         = "Death_All"
	ColAssists        = "Assists_All"
	ColFirstKills     = "Fk_All"
	ColFirstDeaths    = "Fd_All"
	ColACS            = "Acs_All"
	ColADR            = "Adr_All"
	ColKAST           = "Kast_All"
	ColHS             = "Hs_All"
	ColTotalDamage    = "Total_Damage"
	ColClutchWins     = "Clutch_Won"
	ColTwoKills       = "2K"
	ColThreeKills     = "3K"
	ColFourKills      = "4K"
	ColFiveKills      = "5K"
	ColPlants         = "Plants"
	ColDefuses        = "Defuses"
	ColTradeKills     = "Trade_Kills"
	ColNonDamageAssts = "Non_Damage_Assists"

	ColKillsAttack    = "Kill_Attack"
	ColKillsDefense   = "Kill_Defence"
	ColDeathsAttack   = "Death_Attack"
	ColDeathsDefense  = "Death_Defence"
	ColAssistsAttack  = "Assists_Attack"
	ColAssistsDefense = "Assists_Defence"
	ColACSAttack      = "Acs_Attack"
	ColACSDefense     = "Acs_Defence"
	ColADRAttack      = "Adr_Attack"
	ColADRDefense     = "Adr_Defence"
	ColKASTAttack     = "Kast_Attack"
	ColKASTDefense    = "Kast_Defence"
	ColHSAttack       = "Hs_Attack"
	ColHSDefense      = "Hs_Defence"
)

// ParseCSV reads a header row followed by one row per player. A structurally
// broken input is rejected as a whole; unknown or empty numeric cells read as 0.
func ParseCSV(r io.Reader) ([]model.PlayerStats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	lines, err := cr.ReadAll()
	if err != nil {
		return nil, &MalformedError{Err: err}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	header := make(map[string]int, len(lines[0]))
	for i, h := range lines[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := header[key]; !dup {
			header[key] = i
		}
	}
	_, hasName := header[strings.ToLower(ColName)]
	_, hasAlt := header[ColNameAlt]
	if !hasName && !hasAlt {
		return nil, ErrMissingHeader
	}

	players := make([]model.PlayerStats, 0, len(lines)-1)
	for _, line := range lines[1:] {
		players = append(players, rowToStats(row{header: header, cells: line}))
	}
	return players, nil
}

// ParseCSVString is ParseCSV over an in-memory string.
func ParseCSVString(s string) ([]model.PlayerStats, error) {
	return ParseCSV(strings.NewReader(s))
}

type row struct {
	header map[string]int
	cells  []string
}

func (r row) str(col string) string {
	i, ok := r.header[strings.ToLower(col)]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r row) num(col string) float64 {
	return toFloat(r.str(col))
}

func (r row) count(col string) int {
	return int(r.num(col))
}

// pct accepts "75", "75%" or "75.5 %".
func (r row) pct(col string) float64 {
	return toFloat(strings.TrimSpace(strings.TrimSuffix(r.str(col), "%")))
}

func toFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.Abs(v) > maxCell {
		return 0
	}
	return v
}

func rowToStats(r row) model.PlayerStats {
	name := r.str(ColName)
	if name == "" {
		name = r.str(ColNameAlt)
	}

	agent := r.str(ColAgent)
	role := r.str(ColRole)
	if role == "" {
		role = RoleForAgent(agent)
	}

	attackRounds := r.count(ColAttackRounds)
	defenseRounds := r.count(ColDefenseRounds)
	rounds := r.count(ColRounds)
	if rounds <= 0 {
		rounds = attackRounds + defenseRounds
	}

	adr := r.num(ColADR)
	damage := r.num(ColTotalDamage)
	if damage == 0 {
		damage = adr * float64(rounds)
	}

	p := model.PlayerStats{
		SteamID: r.str(ColSteamID),
		Name:    name,
		Agent:   agent,
		Role:    role,

		RoundsPlayed:  rounds,
		AttackRounds:  attackRounds,
		DefenseRounds: defenseRounds,

		Kills:         r.count(ColKills),
		Deaths:        r.count(ColDeaths),
		Assists:       r.count(ColAssists),
		OpeningKills:  r.count(ColFirstKills),
		OpeningDeaths: r.count(ColFirstDeaths),

		AttackKills:    r.count(ColKillsAttack),
		DefenseKills:   r.count(ColKillsDefense),
		AttackDeaths:   r.count(ColDeathsAttack),
		DefenseDeaths:  r.count(ColDeathsDefense),
		AttackAssists:  r.count(ColAssistsAttack),
		DefenseAssists: r.count(ColAssistsDefense),

		ClutchWins:       r.count(ColClutchWins),
		Plants:           r.count(ColPlants),
		Defuses:          r.count(ColDefuses),
		TradeKills:       r.count(ColTradeKills),
		NonDamageAssists: r.count(ColNonDamageAssts),

		ACS:         r.num(ColACS),
		ADR:         adr,
		TotalDamage: damage,
		KASTPercent: r.pct(ColKAST),
		HSPercent:   r.pct(ColHS),

		AttackACS:   r.num(ColACSAttack),
		DefenseACS:  r.num(ColACSDefense),
		AttackADR:   r.num(ColADRAttack),
		DefenseADR:  r.num(ColADRDefense),
		AttackKAST:  r.pct(ColKASTAttack),
		DefenseKAST: r.pct(ColKASTDefense),
		AttackHS:    r.pct(ColHSAttack),
		DefenseHS:   r.pct(ColHSDefense),
	}
	p.MultiKills[2] = r.count(ColTwoKills)
	p.MultiKills[3] = r.count(ColThreeKills)
	p.MultiKills[4] = r.count(ColFourKills)
	p.MultiKills[5] = r.count(ColFiveKills)
	return p
}
