package punch

import (
	"testing"
	"time"

	"pointage/backend/internal/entity"
	"pointage/backend/internal/repository/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 2, hour, minute, 0, 0, time.UTC)
}

func TestApply(t *testing.T) {
	t.Run("first scan before cutoff", func(t *testing.T) {
		p := &entity.Punch{}
		now := at(8, 15)

		kind := Apply(p, now)

		assert.Equal(t, ScanEntry, kind)
		require.NotNil(t, p.Candidate.FirstIn)
		assert.Equal(t, now, *p.Candidate.FirstIn)
		assert.False(t, p.Candidate.Late)
		assert.True(t, p.Pending)
		assert.False(t, p.Present)
	})

	t.Run("first scan after cutoff is late", func(t *testing.T) {
		p := &entity.Punch{}
		now := at(8, 31)

		kind := Apply(p, now)

		assert.Equal(t, ScanEntry, kind)
		assert.True(t, p.Candidate.Late)
	})

	t.Run("scan at exactly cutoff is not late", func(t *testing.T) {
		p := &entity.Punch{}

		Apply(p, at(8, 30))

		assert.False(t, p.Candidate.Late)
	})

	t.Run("rescan before validation moves the candidate arrival", func(t *testing.T) {
		p := &entity.Punch{}
		Apply(p, at(8, 10))

		kind := Apply(p, at(9, 0))

		assert.Equal(t, ScanEntry, kind)
		require.NotNil(t, p.Candidate.FirstIn)
		assert.Equal(t, at(9, 0), *p.Candidate.FirstIn)
		assert.True(t, p.Candidate.Late)
		assert.Nil(t, p.Candidate.LastOut)
	})

	t.Run("scan after confirmed arrival is an exit", func(t *testing.T) {
		in := at(8, 0)
		p := &entity.Punch{
			Confirmed: entity.PunchTimes{FirstIn: &in},
			Present:   true,
		}

		kind := Apply(p, at(17, 5))

		assert.Equal(t, ScanExit, kind)
		require.NotNil(t, p.Candidate.LastOut)
		assert.Equal(t, at(17, 5), *p.Candidate.LastOut)
		assert.True(t, p.Pending)
		assert.False(t, p.Present, "exit scan needs validation before counting again")
	})

	t.Run("scan clears a previous rejection", func(t *testing.T) {
		p := &entity.Punch{Rejected: true}

		Apply(p, at(10, 0))

		assert.False(t, p.Rejected)
		assert.True(t, p.Pending)
	})
}

func TestConfirm(t *testing.T) {
	t.Run("promotes candidate arrival with its late flag", func(t *testing.T) {
		in := at(8, 45)
		p := &entity.Punch{
			Candidate: entity.PunchTimes{FirstIn: &in, Late: true},
			Pending:   true,
		}

		err := Confirm(p, 7)

		require.NoError(t, err)
		require.NotNil(t, p.Confirmed.FirstIn)
		assert.Equal(t, in, *p.Confirmed.FirstIn)
		assert.True(t, p.Confirmed.Late)
		assert.Equal(t, entity.PunchTimes{}, p.Candidate)
		assert.True(t, p.Present)
		assert.False(t, p.Pending)
		require.NotNil(t, p.ValidatorID)
		assert.Equal(t, 7, *p.ValidatorID)
	})

	t.Run("promotes candidate departure and keeps confirmed arrival", func(t *testing.T) {
		in := at(8, 0)
		out := at(17, 30)
		p := &entity.Punch{
			Confirmed: entity.PunchTimes{FirstIn: &in},
			Candidate: entity.PunchTimes{LastOut: &out},
			Pending:   true,
		}

		err := Confirm(p, 3)

		require.NoError(t, err)
		assert.Equal(t, &in, p.Confirmed.FirstIn)
		require.NotNil(t, p.Confirmed.LastOut)
		assert.Equal(t, out, *p.Confirmed.LastOut)
	})

	t.Run("empty candidate slot does not erase confirmed value", func(t *testing.T) {
		in := at(8, 0)
		p := &entity.Punch{
			Confirmed: entity.PunchTimes{FirstIn: &in, Late: false},
			Candidate: entity.PunchTimes{},
			Pending:   true,
		}

		err := Confirm(p, 3)

		require.NoError(t, err)
		assert.Equal(t, &in, p.Confirmed.FirstIn)
	})

	t.Run("already processed", func(t *testing.T) {
		p := &entity.Punch{Pending: false}

		err := Confirm(p, 1)

		assert.ErrorIs(t, err, postgres.ErrAlreadyProcessed)
	})
}

func TestReject(t *testing.T) {
	t.Run("discards candidate and marks rejected", func(t *testing.T) {
		in := at(8, 45)
		p := &entity.Punch{
			Candidate: entity.PunchTimes{FirstIn: &in, Late: true},
			Pending:   true,
		}

		err := Reject(p, 5)

		require.NoError(t, err)
		assert.Equal(t, entity.PunchTimes{}, p.Candidate)
		assert.Nil(t, p.Confirmed.FirstIn)
		assert.False(t, p.Present)
		assert.False(t, p.Pending)
		assert.True(t, p.Rejected)
		require.NotNil(t, p.ValidatorID)
		assert.Equal(t, 5, *p.ValidatorID)
	})

	t.Run("already processed", func(t *testing.T) {
		p := &entity.Punch{Pending: false}

		err := Reject(p, 1)

		assert.ErrorIs(t, err, postgres.ErrAlreadyProcessed)
	})
}

func TestCutoff(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	now := time.Date(2026, time.July, 14, 13, 0, 0, 0, loc)
	cutoff := Cutoff(now)

	assert.Equal(t, 8, cutoff.Hour())
	assert.Equal(t, 30, cutoff.Minute())
	assert.Equal(t, now.Location(), cutoff.Location())
	assert.Equal(t, now.Day(), cutoff.Day())
}
