package roster

import (
	"errors"
	"strings"
	"time"

	"github.com/Kerhoff/GymMembers/internal/models"
)

// ErrMissingFields is returned when the form lacks a required value
var ErrMissingFields = errors.New("please fill in name, email and join date")

// Mode is the state of the member form
type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "add"
}

// FormFields are the raw values shown in the form. JoinDate uses the
// YYYY-MM-DD text form of a date input.
type FormFields struct {
	Name           string
	Email          string
	MembershipType models.MembershipType
	JoinDate       string
	Status         models.MemberStatus
}

// Form is the single add/edit form
type Form struct {
	Mode   Mode
	Fields FormFields
	now    func() time.Time
}

// NewForm returns a form in add mode. now supplies "today" for the default join date.
func NewForm(now func() time.Time) *Form {
	if now == nil {
		now = time.Now
	}
	f := &Form{now: now}
	f.Reset()
	return f
}

// Reset switches to add mode with empty name and email, Basic, today and Active
func (f *Form) Reset() {
	f.Mode = ModeAdd
	f.Fields = FormFields{
		MembershipType: models.MembershipBasic,
		JoinDate:       f.now().Format(models.DateLayout),
		Status:         models.MemberStatusActive,
	}
}

// Load switches to edit mode pre-filled from m
func (f *Form) Load(m models.Member) {
	f.Mode = ModeEdit
	f.Fields = FormFields{
		Name:           m.Name,
		Email:          m.Email,
		MembershipType: m.MembershipType,
		JoinDate:       m.JoinDate.String(),
		Status:         m.Status,
	}
}

// Member converts the fields into a member value, checking the required ones
func (f FormFields) Member() (models.Member, error) {
	name := strings.TrimSpace(f.Name)
	email := strings.TrimSpace(f.Email)
	joinDate := strings.TrimSpace(f.JoinDate)
	if name == "" || email == "" || joinDate == "" {
		return models.Member{}, ErrMissingFields
	}

	date, err := models.ParseDate(joinDate)
	if err != nil {
		return models.Member{}, err
	}

	return models.Member{
		Name:           name,
		Email:          email,
		MembershipType: f.MembershipType,
		JoinDate:       date,
		Status:         f.Status,
	}, nil
}
