package cli

import (
	"testing"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateFlag(t *testing.T) {
	var f dateFlag
	fallback := calendar.MustParse("2025-01-08")
	assert.Equal(t, fallback, f.Or(fallback))
	assert.Empty(t, f.String())

	require.NoError(t, f.Set("2025-02-03"))
	assert.Equal(t, "2025-02-03", f.String())
	assert.Equal(t, "2025-02-03", f.Or(fallback).String())

	assert.Error(t, f.Set("03/02/2025"))
	assert.Equal(t, "date", f.Type())
}

func TestCriteriaFlag(t *testing.T) {
	f := criteriaFlag{criteria: domain.CriteriaAtLeast}
	require.NoError(t, f.Set("<"))
	assert.Equal(t, domain.CriteriaLessThan, f.criteria)
	assert.ErrorIs(t, f.Set("roughly"), domain.ErrInvalidTarget)
}

func TestParseWeekdayTargets(t *testing.T) {
	got, err := parseWeekdayTargets(map[string]string{
		"mon":    "30",
		"Friday": "2:less_than",
		"sun":    "0:exactly",
	}, domain.CriteriaAtLeast)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, domain.MustTarget(30, domain.CriteriaAtLeast), got[calendar.Monday])
	assert.Equal(t, domain.MustTarget(2, domain.CriteriaLessThan), got[calendar.Friday])
	assert.Equal(t, domain.CriteriaExactly, got[calendar.Sunday].Criteria)
	assert.True(t, got[calendar.Sunday].Value.IsZero())
}

func TestParseWeekdayTargets_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown day":    {"funday": "3"},
		"bad number":     {"mon": "three"},
		"bad criteria":   {"mon": "3:most"},
		"zero at least":  {"mon": "0"},
		"same day twice": {"mon": "3", "Monday": "4"},
	}
	for name, entries := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseWeekdayTargets(entries, domain.CriteriaAtLeast)
			assert.Error(t, err)
		})
	}
}
