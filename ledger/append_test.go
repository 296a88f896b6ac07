package ledger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"value-rating/model"
)

func TestAppendWritesOneLinePerRun(t *testing.T) {
	root := t.TempDir()
	at := time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)
	results := []model.RatingResult{
		{Stats: model.PlayerStats{Name: "Meteor", Role: model.RoleDuelist}, Rating: 1.21},
		{Stats: model.PlayerStats{Name: "Boaster", Role: model.RoleController}, Rating: 0.79},
	}

	first := NewLine(at, "balanced", true, 0.15, results)
	second := NewLine(at, "firepower", false, 0.2, results)
	require.NoError(t, Append(root, first))
	require.NoError(t, Append(root, second))
	assert.NotEqual(t, first.RunID, second.RunID)
	_, err := uuid.Parse(first.RunID)
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(root, "2025-03-14", "ratings.jsonl"))
	require.NoError(t, err)
	defer f.Close()

	var lines []Line
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var l Line
		require.NoError(t, json.Unmarshal(sc.Bytes(), &l))
		lines = append(lines, l)
	}
	require.NoError(t, sc.Err())
	require.Len(t, lines, 2)
	assert.Equal(t, first.RunID, lines[0].RunID)
	assert.Equal(t, []Entry{
		{Name: "Meteor", Role: model.RoleDuelist, Rating: 1.21},
		{Name: "Boaster", Role: model.RoleController, Rating: 0.79},
	}, lines[0].Players)
	assert.Equal(t, "firepower", lines[1].Preset)
	assert.False(t, lines[1].ByGroup)
}

func TestNewLineKeepsDuplicateNames(t *testing.T) {
	results := []model.RatingResult{
		{Index: 0, Stats: model.PlayerStats{Name: "Sova main", Role: model.RoleInitiator}, Rating: 1.1},
		{Index: 1, Stats: model.PlayerStats{Name: "Sova main", Role: model.RoleInitiator}, Rating: 0.9},
	}

	line := NewLine(time.Now(), "balanced", true, 0.15, results)
	require.Len(t, line.Players, 2)
	assert.Equal(t, 1.1, line.Players[0].Rating)
	assert.Equal(t, 0.9, line.Players[1].Rating)
}
