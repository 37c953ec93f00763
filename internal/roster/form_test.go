package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/GymMembers/internal/models"
)

func fixedClock() time.Time {
	return time.Date(2026, time.October, 15, 18, 30, 0, 0, time.UTC)
}

func TestFormDefaults(t *testing.T) {
	f := NewForm(fixedClock)

	assert.Equal(t, ModeAdd, f.Mode)
	assert.Equal(t, FormFields{
		MembershipType: models.MembershipBasic,
		JoinDate:       "2026-10-15",
		Status:         models.MemberStatusActive,
	}, f.Fields)
}

func TestFormLoadAndReset(t *testing.T) {
	f := NewForm(fixedClock)
	f.Load(models.Member{
		ID: 4, Name: "Ann", Email: "ann@x.com",
		MembershipType: models.MembershipVIP,
		JoinDate:       models.Date{Year: 2024, Month: time.March, Day: 15},
		Status:         models.MemberStatusExpired,
	})

	assert.Equal(t, ModeEdit, f.Mode)
	assert.Equal(t, "edit", f.Mode.String())
	assert.Equal(t, "2024-03-15", f.Fields.JoinDate)
	assert.Equal(t, models.MembershipVIP, f.Fields.MembershipType)

	f.Reset()
	assert.Equal(t, ModeAdd, f.Mode)
	assert.Empty(t, f.Fields.Name)
	assert.Equal(t, "2026-10-15", f.Fields.JoinDate)
}

func TestFormFieldsMember(t *testing.T) {
	_, err := FormFields{Name: "Ann", JoinDate: "2024-01-01"}.Member()
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = FormFields{Name: "Ann", Email: "ann@x.com", JoinDate: "   "}.Member()
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = FormFields{Name: "Ann", Email: "ann@x.com", JoinDate: "01/01/2024"}.Member()
	assert.Error(t, err)

	m, err := FormFields{Name: " Ann ", Email: "ann@x.com", JoinDate: "2024-01-01",
		MembershipType: models.MembershipFamily, Status: models.MemberStatusActive}.Member()
	require.NoError(t, err)
	assert.Equal(t, "Ann", m.Name)
	assert.Equal(t, models.Date{Year: 2024, Month: time.January, Day: 1}, m.JoinDate)
}
