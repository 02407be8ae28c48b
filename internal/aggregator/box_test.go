package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-floorball-stats/internal/model"
)

func TestParseBirthDate(t *testing.T) {
	cases := map[string]time.Time{
		"1998-03-14": time.Date(1998, 3, 14, 0, 0, 0, 0, time.UTC),
		"140398":     time.Date(1998, 3, 14, 0, 0, 0, 0, time.UTC),
		"14031998":   time.Date(1998, 3, 14, 0, 0, 0, 0, time.UTC),
		"4/3-05":     time.Date(2005, 3, 4, 0, 0, 0, 0, time.UTC),
		"04-03-2005": time.Date(2005, 3, 4, 0, 0, 0, 0, time.UTC),
		"4.3.31":     time.Date(1931, 3, 4, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, ok := ParseBirthDate(in)
		require.True(t, ok, "ParseBirthDate(%q)", in)
		assert.Equal(t, want, got, "ParseBirthDate(%q)", in)
	}

	for _, bad := range []string{"", "unknown", "1998", "32/13-99"} {
		_, ok := ParseBirthDate(bad)
		assert.False(t, ok, "ParseBirthDate(%q)", bad)
	}
}

func TestAgeAt(t *testing.T) {
	assert.Equal(t, 25, AgeAt("1998-03-14", date(2023, 3, 14)))
	assert.Equal(t, 24, AgeAt("1998-03-14", date(2023, 3, 13)))
	assert.Equal(t, -1, AgeAt("", date(2023, 3, 13)))
	assert.Equal(t, -1, AgeAt("2030-01-01", date(2023, 3, 13)))
}

func TestSortBox(t *testing.T) {
	lines := []model.BoxLine{
		{Player: model.LineupEntry{Number: "", Name: "Ærø"}},
		{Player: model.LineupEntry{Number: "12", Name: "Bo"}},
		{Player: model.LineupEntry{Number: "3", Name: "Anna"}},
		{Player: model.LineupEntry{Number: "30", Name: "Keeper", Role: "G"}},
		{Player: model.LineupEntry{Number: "20", Name: "Cap", Role: "C"}},
		{Player: model.LineupEntry{Number: "", Name: "Ole"}},
	}
	sortBox(lines)

	var got []string
	for _, l := range lines {
		got = append(got, l.Player.Name)
	}
	assert.Equal(t, []string{"Cap", "Keeper", "Anna", "Bo", "Ole", "Ærø"}, got)
}
