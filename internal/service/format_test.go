package service

import (
	"testing"
	"time"

	"github.com/omarshaarawi/leaguehub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateTime(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	assert.Equal(t, "2025-08-23 15:00", FormatDateTime("2025-08-23T14:00:00Z", london))
	assert.Equal(t, "2025-08-23 14:00", FormatDateTime("2025-08-23T14:00:00", time.UTC))
	assert.Equal(t, "2025-12-26", FormatDate("2025-12-26T12:30:00+00:00", london))
	assert.Equal(t, "-", FormatDateTime("not a date", time.UTC))
	assert.Equal(t, "-", FormatDate("", time.UTC))
}

func TestScoreLine(t *testing.T) {
	assert.Equal(t, "3 : 0", ScoreLine(models.Match{HomeScore: intPtr(3), AwayScore: intPtr(0)}))
	assert.Equal(t, "- : -", ScoreLine(models.Match{}))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "-", IntOrPlaceholder(nil))
	assert.Equal(t, "0", IntOrPlaceholder(intPtr(0)))
	assert.Equal(t, "50%", PercentOrPlaceholder(floatPtr(50)))
	assert.Equal(t, "-", PercentOrPlaceholder(nil))
	assert.Equal(t, "-", StringOrPlaceholder(strPtr("")))
	assert.Equal(t, "Anfield", StringOrPlaceholder(strPtr("Anfield")))
}

func TestTeamIndexFallbacks(t *testing.T) {
	idx := newTeamIndex(sampleTeams())

	assert.Equal(t, "ARS", idx.short(1))
	assert.Equal(t, "#42", idx.short(42))
	assert.Equal(t, "Team #42", idx.long(42))
	assert.Equal(t, "-", idx.shortPtr(nil))

	empty := newTeamIndex(nil)
	assert.Equal(t, "Team #1", empty.long(1))
}
