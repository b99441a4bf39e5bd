package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"open-baby-backend/internal/domain/events"
)

// La traducción es pura: ida y vuelta sin tocar la base de datos.

func TestEventRow_RoundTrip(t *testing.T) {
	end := time.Date(2024, 1, 1, 8, 45, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   events.Event
	}{
		{
			"all fields",
			events.Event{
				ID:          "01HV5AK3W8",
				Type:        events.TypeFeedBottle,
				Description: "Bottle feed event",
				TimeStart:   time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
				TimeEnd:     &end,
				Notes:       "took it slowly",
			},
		},
		{
			"no time_end, no notes",
			events.Event{
				ID:          "01HV5AK3W9",
				Type:        events.TypePump,
				Description: "Pump event",
				TimeStart:   time.Date(2024, 3, 15, 22, 10, 0, 0, time.UTC),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := eventFromRow(eventToRow(tc.in))
			assert.Equal(t, tc.in, out)
		})
	}
}

func TestEventRow_NormalizesToUTC(t *testing.T) {
	lima := time.FixedZone("America/Lima", -5*60*60)
	start := time.Date(2024, 1, 1, 3, 0, 0, 0, lima)
	end := time.Date(2024, 1, 1, 4, 30, 0, 0, lima)

	row := eventToRow(events.Event{
		ID:        "01HV5AK3WA",
		Type:      events.TypeFeedBreast,
		TimeStart: start,
		TimeEnd:   &end,
	})

	require.Equal(t, time.UTC, row.TimeStart.Location())
	assert.Equal(t, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), row.TimeStart)
	require.True(t, row.TimeEnd.Valid)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC), row.TimeEnd.Time)

	out := eventFromRow(row)
	assert.Equal(t, time.UTC, out.TimeStart.Location())
	require.NotNil(t, out.TimeEnd)
	assert.Equal(t, time.UTC, out.TimeEnd.Location())
	// El instante se conserva aunque cambie la zona.
	assert.True(t, out.TimeStart.Equal(start))
	assert.True(t, out.TimeEnd.Equal(end))
}

func TestEnumHelpers(t *testing.T) {
	var nilColor *events.DiaperColor
	assert.Nil(t, enumArg(nilColor))

	c := events.ColorGreen
	assert.Equal(t, "green", enumArg(&c))

	got := enumFromNull[events.DiaperColor](sql.NullString{String: "brown", Valid: true})
	require.NotNil(t, got)
	assert.Equal(t, events.ColorBrown, *got)
	assert.Nil(t, enumFromNull[events.DiaperColor](sql.NullString{}))
}
