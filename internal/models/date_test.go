package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "plain date", input: "2024-03-15", want: Date{2024, time.March, 15}},
		{name: "utc timestamp", input: "2024-03-15T00:00:00Z", want: Date{2024, time.March, 15}},
		{name: "offset keeps written day", input: "2024-03-15T23:30:00-05:00", want: Date{2024, time.March, 15}},
		{name: "fractional seconds", input: "2024-03-15T10:00:00.123Z", want: Date{2024, time.March, 15}},
		{name: "garbage", input: "15/03/2024", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "year zero", input: "0000-01-01", wantErr: true},
		{name: "year zero timestamp", input: "0000-06-01T00:00:00Z", wantErr: true},
		{name: "year one", input: "0001-01-01", want: Date{1, time.January, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		JoinDate Date `json:"join_date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"join_date":"2024-03-15T22:00:00+09:00"}`), &payload))
	assert.Equal(t, "2024-03-15", payload.JoinDate.String())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"join_date":"2024-03-15"}`, string(out))

	var bad struct {
		JoinDate Date `json:"join_date"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"join_date":"yesterday"}`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`{"join_date":20240315}`), &bad))
}

func TestDateScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.FixedZone("", 0))))
	assert.Equal(t, Date{2024, time.January, 1}, d)

	require.NoError(t, d.Scan([]byte("2023-12-31")))
	assert.Equal(t, "2023-12-31", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))

	v, err := Date{2024, time.March, 15}.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", v)
}

func TestMemberPatch(t *testing.T) {
	assert.True(t, MemberPatch{}.IsEmpty())

	status := MemberStatusExpired
	patch := MemberPatch{Status: &status}
	assert.False(t, patch.IsEmpty())

	m := Member{ID: 5, Name: "Ann", Email: "ann@x.com", MembershipType: MembershipVIP,
		JoinDate: Date{2024, time.January, 1}, Status: MemberStatusActive}
	patch.Apply(&m)

	assert.Equal(t, Member{ID: 5, Name: "Ann", Email: "ann@x.com", MembershipType: MembershipVIP,
		JoinDate: Date{2024, time.January, 1}, Status: MemberStatusExpired}, m)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, MembershipFamily.Valid())
	assert.False(t, MembershipType("Gold").Valid())
	assert.True(t, MemberStatusInactive.Valid())
	assert.False(t, MemberStatus("active").Valid())
}
