package domain

// Enum-valued fields hold display labels ("Hedge Fund", "Via Recruiter").
// Storage keeps the canonical encoding and translates at the repo boundary.

type User struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at" format:"date-time"`
}

type Company struct {
	ID           string `json:"id"`
	OwnerID      string `json:"owner_id"`
	Name         string `json:"name"`
	Type         string `json:"type" enum:"Bank,Hedge Fund,Asset Manager,Private Equity,Prop Shop,Recruiter,Other"`
	MainLocation string `json:"main_location,omitempty"`
	Website      string `json:"website,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CreatedAt    string `json:"created_at" format:"date-time"`
	UpdatedAt    string `json:"updated_at" format:"date-time"`
}

type Contact struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"owner_id"`
	CompanyID   string  `json:"company_id"`
	FirstName   string  `json:"first_name,omitempty"`
	LastName    string  `json:"last_name,omitempty"`
	ExactTitle  string  `json:"exact_title,omitempty"`
	Category    string  `json:"category,omitempty"`
	Seniority   string  `json:"seniority,omitempty"`
	Location    string  `json:"location,omitempty"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	LinkedInURL string  `json:"linkedin_url,omitempty"`
	ManagerID   *string `json:"manager_id,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at" format:"date-time"`
	UpdatedAt   string  `json:"updated_at" format:"date-time"`
	CompanyName string  `json:"company_name,omitempty"`
}

func (c Contact) NodeID() string       { return c.ID }
func (c Contact) ParentNodeID() string { return deref(c.ManagerID) }

// FullName joins first and last name, skipping blanks.
func (c Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

type Process struct {
	ID               string  `json:"id"`
	OwnerID          string  `json:"owner_id"`
	CompanyID        string  `json:"company_id"`
	RoleTitle        string  `json:"role_title"`
	Location         string  `json:"location,omitempty"`
	Status           string  `json:"status" enum:"Active,Interviewing,Offer,Rejected,Closed"`
	SourceProcessID  *string `json:"source_process_id,omitempty"`
	CreatedAt        string  `json:"created_at" format:"date-time"`
	UpdatedAt        string  `json:"updated_at" format:"date-time"`
	CompanyName      string  `json:"company_name,omitempty"`
	InteractionCount int     `json:"interaction_count"`
}

func (p Process) NodeID() string       { return p.ID }
func (p Process) ParentNodeID() string { return deref(p.SourceProcessID) }

type ProcessNote struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	ProcessID string `json:"process_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at" format:"date-time"`
}

type Interaction struct {
	ID                  string  `json:"id"`
	OwnerID             string  `json:"owner_id"`
	CompanyID           string  `json:"company_id"`
	ContactID           string  `json:"contact_id"`
	RecruiterID         *string `json:"recruiter_id,omitempty"`
	ProcessID           *string `json:"process_id,omitempty"`
	ParentInteractionID *string `json:"parent_interaction_id,omitempty"`
	DateSent            *string `json:"date_sent,omitempty" format:"date"`
	NextFollowUpDate    *string `json:"next_follow_up_date,omitempty" format:"date"`
	LastUpdate          *string `json:"last_update,omitempty" format:"date"`
	Status              string  `json:"status" enum:"Sent,Waiting,Follow-up,Discussion,Interview,Offer,Rejected,Closed"`
	Priority            string  `json:"priority,omitempty"`
	GlobalCategory      string  `json:"global_category,omitempty"`
	Type                string  `json:"type,omitempty"`
	Stage               string  `json:"stage,omitempty"`
	Outcome             string  `json:"outcome,omitempty"`
	SourceType          string  `json:"source_type" enum:"Direct,Via Recruiter"`
	Completed           bool    `json:"completed"`
	RoleTitle           string  `json:"role_title,omitempty"`
	Comment             string  `json:"comment,omitempty"`
	CreatedAt           string  `json:"created_at" format:"date-time"`
	UpdatedAt           string  `json:"updated_at" format:"date-time"`
	CompanyName         string  `json:"company_name,omitempty"`
	ContactName         string  `json:"contact_name,omitempty"`
	RecruiterName       string  `json:"recruiter_name,omitempty"`
}

func (i Interaction) NodeID() string       { return i.ID }
func (i Interaction) ParentNodeID() string { return deref(i.ParentInteractionID) }

// RecruiterKey returns the recruiter id, or "" when none is set.
func (i Interaction) RecruiterKey() string { return deref(i.RecruiterID) }

// DateSentValue returns the sent date, or "" when none is set.
func (i Interaction) DateSentValue() string { return deref(i.DateSent) }

// NextFollowUpValue returns the follow-up date, or "" when none is set.
func (i Interaction) NextFollowUpValue() string { return deref(i.NextFollowUpDate) }

type Event struct {
	ID         int64  `json:"id"`
	TS         string `json:"ts" format:"date-time"`
	Type       string `json:"type"`
	OwnerID    string `json:"owner_id"`
	EntityKind string `json:"entity_kind"`
	EntityID   string `json:"entity_id,omitempty"`
	Payload    string `json:"payload_json"`
}

type APIKey struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name,omitempty"`
	KeyHash   string `json:"key_hash"`
	CreatedAt string `json:"created_at" format:"date-time"`
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
