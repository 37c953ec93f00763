package models

// MembershipType represents the plan a member is subscribed to
type MembershipType string

const (
	MembershipBasic   MembershipType = "Basic"
	MembershipPremium MembershipType = "Premium"
	MembershipVIP     MembershipType = "VIP"
	MembershipFamily  MembershipType = "Family"
)

// MembershipTypes lists every accepted membership type in display order
var MembershipTypes = []MembershipType{MembershipBasic, MembershipPremium, MembershipVIP, MembershipFamily}

// Valid reports whether t is one of the known membership types
func (t MembershipType) Valid() bool {
	for _, known := range MembershipTypes {
		if t == known {
			return true
		}
	}
	return false
}

// MemberStatus represents the lifecycle status of a membership
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "Active"
	MemberStatusInactive MemberStatus = "Inactive"
	MemberStatusExpired  MemberStatus = "Expired"
)

// MemberStatuses lists every accepted status in display order
var MemberStatuses = []MemberStatus{MemberStatusActive, MemberStatusInactive, MemberStatusExpired}

// Valid reports whether s is one of the known statuses
func (s MemberStatus) Valid() bool {
	for _, known := range MemberStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Member represents a gym member record
type Member struct {
	ID             int64          `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	Email          string         `json:"email" db:"email"`
	MembershipType MembershipType `json:"membership_type" db:"membership_type"`
	JoinDate       Date           `json:"join_date" db:"join_date"`
	Status         MemberStatus   `json:"status" db:"status"`
}

// MemberPatch carries the subset of fields supplied to an update.
// A nil field was not supplied and must be left untouched.
type MemberPatch struct {
	Name           *string         `json:"name,omitempty"`
	Email          *string         `json:"email,omitempty"`
	MembershipType *MembershipType `json:"membership_type,omitempty"`
	JoinDate       *Date           `json:"join_date,omitempty"`
	Status         *MemberStatus   `json:"status,omitempty"`
}

// IsEmpty returns true if no field was supplied
func (p MemberPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.MembershipType == nil && p.JoinDate == nil && p.Status == nil
}

// Apply writes the supplied fields onto m. The id is never touched.
func (p MemberPatch) Apply(m *Member) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.MembershipType != nil {
		m.MembershipType = *p.MembershipType
	}
	if p.JoinDate != nil {
		m.JoinDate = *p.JoinDate
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
}

// PatchFromMember builds a patch carrying every editable field of m
func PatchFromMember(m Member) MemberPatch {
	return MemberPatch{
		Name:           &m.Name,
		Email:          &m.Email,
		MembershipType: &m.MembershipType,
		JoinDate:       &m.JoinDate,
		Status:         &m.Status,
	}
}

