package server

import (
	"encoding/json"

	"jobtrail/internal/domain"
	"jobtrail/internal/engine"
	"jobtrail/internal/hierarchy"
)

// Request payloads

type CreateCompanyRequest struct {
	Name         string `json:"name"`
	Type         string `json:"type,omitempty" example:"Hedge Fund"`
	MainLocation string `json:"main_location,omitempty"`
	Website      string `json:"website,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type UpdateCompanyRequest struct {
	Name         *string `json:"name,omitempty"`
	Type         *string `json:"type,omitempty"`
	MainLocation *string `json:"main_location,omitempty"`
	Website      *string `json:"website,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type CreateContactRequest struct {
	CompanyID   string `json:"company_id"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	ExactTitle  string `json:"exact_title,omitempty"`
	Category    string `json:"category,omitempty"`
	Seniority   string `json:"seniority,omitempty" example:"VP"`
	Location    string `json:"location,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	ManagerID   string `json:"manager_id,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type UpdateContactRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	ExactTitle  *string `json:"exact_title,omitempty"`
	Category    *string `json:"category,omitempty"`
	Seniority   *string `json:"seniority,omitempty"`
	Location    *string `json:"location,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	LinkedInURL *string `json:"linkedin_url,omitempty"`
	ManagerID   *string `json:"manager_id,omitempty" doc:"Empty string clears the manager"`
	Notes       *string `json:"notes,omitempty"`
}

type CreateProcessRequest struct {
	CompanyID       string `json:"company_id"`
	RoleTitle       string `json:"role_title"`
	Location        string `json:"location,omitempty"`
	Status          string `json:"status,omitempty" example:"Active"`
	SourceProcessID string `json:"source_process_id,omitempty"`
}

type UpdateProcessRequest struct {
	RoleTitle       *string `json:"role_title,omitempty"`
	Location        *string `json:"location,omitempty"`
	Status          *string `json:"status,omitempty"`
	SourceProcessID *string `json:"source_process_id,omitempty" doc:"Empty string clears the link"`
}

type AddNoteRequest struct {
	Content string `json:"content"`
}

type CreateInteractionRequest struct {
	CompanyID           string `json:"company_id"`
	ContactID           string `json:"contact_id"`
	RecruiterID         string `json:"recruiter_id,omitempty"`
	ProcessID           string `json:"process_id,omitempty"`
	ParentInteractionID string `json:"parent_interaction_id,omitempty"`
	DateSent            string `json:"date_sent,omitempty" example:"2024-03-01"`
	NextFollowUpDate    string `json:"next_follow_up_date,omitempty" example:"2024-03-15"`
	LastUpdate          string `json:"last_update,omitempty"`
	Status              string `json:"status,omitempty" example:"Waiting"`
	Priority            string `json:"priority,omitempty"`
	GlobalCategory      string `json:"global_category,omitempty"`
	Type                string `json:"type,omitempty" example:"Email"`
	Stage               string `json:"stage,omitempty"`
	Outcome             string `json:"outcome,omitempty"`
	SourceType          string `json:"source_type,omitempty" example:"Via Recruiter"`
	Completed           bool   `json:"completed,omitempty"`
	RoleTitle           string `json:"role_title,omitempty"`
	Comment             string `json:"comment,omitempty"`
}

type UpdateInteractionRequest struct {
	ContactID           *string `json:"contact_id,omitempty"`
	RecruiterID         *string `json:"recruiter_id,omitempty"`
	ProcessID           *string `json:"process_id,omitempty"`
	ParentInteractionID *string `json:"parent_interaction_id,omitempty"`
	DateSent            *string `json:"date_sent,omitempty"`
	NextFollowUpDate    *string `json:"next_follow_up_date,omitempty"`
	LastUpdate          *string `json:"last_update,omitempty"`
	Status              *string `json:"status,omitempty"`
	Priority            *string `json:"priority,omitempty"`
	GlobalCategory      *string `json:"global_category,omitempty"`
	Type                *string `json:"type,omitempty"`
	Stage               *string `json:"stage,omitempty"`
	Outcome             *string `json:"outcome,omitempty"`
	SourceType          *string `json:"source_type,omitempty"`
	Completed           *bool   `json:"completed,omitempty"`
	RoleTitle           *string `json:"role_title,omitempty"`
	Comment             *string `json:"comment,omitempty"`
}

// Responses

type OrgChartRow struct {
	Contact     domain.Contact `json:"contact"`
	Depth       int            `json:"depth"`
	CycleBroken bool           `json:"cycle_broken,omitempty"`
}

type LineageRow struct {
	Process     domain.Process `json:"process"`
	Depth       int            `json:"depth"`
	CycleBroken bool           `json:"cycle_broken,omitempty"`
}

type EventResponse struct {
	ID         int64          `json:"id"`
	TS         string         `json:"ts" format:"date-time"`
	Type       string         `json:"type"`
	EntityKind string         `json:"entity_kind"`
	EntityID   string         `json:"entity_id,omitempty"`
	Payload    map[string]any `json:"payload"`
}

type paginatedEvents struct {
	Items      []EventResponse `json:"items"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

type WhoAmIResponse struct {
	OwnerID string `json:"owner_id"`
	Source  string `json:"source"`
}

func (r CreateCompanyRequest) input() engine.CompanyInput {
	return engine.CompanyInput{
		Name:         r.Name,
		Type:         r.Type,
		MainLocation: r.MainLocation,
		Website:      r.Website,
		Notes:        r.Notes,
	}
}

func (r UpdateCompanyRequest) patch() engine.CompanyPatch {
	return engine.CompanyPatch{
		Name:         r.Name,
		Type:         r.Type,
		MainLocation: r.MainLocation,
		Website:      r.Website,
		Notes:        r.Notes,
	}
}

func (r CreateContactRequest) input() engine.ContactInput {
	return engine.ContactInput{
		CompanyID:   r.CompanyID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		ExactTitle:  r.ExactTitle,
		Category:    r.Category,
		Seniority:   r.Seniority,
		Location:    r.Location,
		Email:       r.Email,
		Phone:       r.Phone,
		LinkedInURL: r.LinkedInURL,
		ManagerID:   r.ManagerID,
		Notes:       r.Notes,
	}
}

func (r UpdateContactRequest) patch() engine.ContactPatch {
	return engine.ContactPatch{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		ExactTitle:  r.ExactTitle,
		Category:    r.Category,
		Seniority:   r.Seniority,
		Location:    r.Location,
		Email:       r.Email,
		Phone:       r.Phone,
		LinkedInURL: r.LinkedInURL,
		ManagerID:   r.ManagerID,
		Notes:       r.Notes,
	}
}

func (r CreateProcessRequest) input() engine.ProcessInput {
	return engine.ProcessInput{
		CompanyID:       r.CompanyID,
		RoleTitle:       r.RoleTitle,
		Location:        r.Location,
		Status:          r.Status,
		SourceProcessID: r.SourceProcessID,
	}
}

func (r UpdateProcessRequest) patch() engine.ProcessPatch {
	return engine.ProcessPatch{
		RoleTitle:       r.RoleTitle,
		Location:        r.Location,
		Status:          r.Status,
		SourceProcessID: r.SourceProcessID,
	}
}

func (r CreateInteractionRequest) input() engine.InteractionInput {
	return engine.InteractionInput{
		CompanyID:           r.CompanyID,
		ContactID:           r.ContactID,
		RecruiterID:         r.RecruiterID,
		ProcessID:           r.ProcessID,
		ParentInteractionID: r.ParentInteractionID,
		DateSent:            r.DateSent,
		NextFollowUpDate:    r.NextFollowUpDate,
		LastUpdate:          r.LastUpdate,
		Status:              r.Status,
		Priority:            r.Priority,
		GlobalCategory:      r.GlobalCategory,
		Type:                r.Type,
		Stage:               r.Stage,
		Outcome:             r.Outcome,
		SourceType:          r.SourceType,
		Completed:           r.Completed,
		RoleTitle:           r.RoleTitle,
		Comment:             r.Comment,
	}
}

func (r UpdateInteractionRequest) patch() engine.InteractionPatch {
	return engine.InteractionPatch{
		ContactID:           r.ContactID,
		RecruiterID:         r.RecruiterID,
		ProcessID:           r.ProcessID,
		ParentInteractionID: r.ParentInteractionID,
		DateSent:            r.DateSent,
		NextFollowUpDate:    r.NextFollowUpDate,
		LastUpdate:          r.LastUpdate,
		Status:              r.Status,
		Priority:            r.Priority,
		GlobalCategory:      r.GlobalCategory,
		Type:                r.Type,
		Stage:               r.Stage,
		Outcome:             r.Outcome,
		SourceType:          r.SourceType,
		Completed:           r.Completed,
		RoleTitle:           r.RoleTitle,
		Comment:             r.Comment,
	}
}

func orgChartRows(entries []hierarchy.Entry[domain.Contact]) []OrgChartRow {
	out := make([]OrgChartRow, 0, len(entries))
	for _, e := range entries {
		out = append(out, OrgChartRow{Contact: e.Item, Depth: e.Depth, CycleBroken: e.CycleBroken})
	}
	return out
}

func lineageRows(entries []hierarchy.Entry[domain.Process]) []LineageRow {
	out := make([]LineageRow, 0, len(entries))
	for _, e := range entries {
		out = append(out, LineageRow{Process: e.Item, Depth: e.Depth, CycleBroken: e.CycleBroken})
	}
	return out
}

func eventResponse(e domain.Event) EventResponse {
	return EventResponse{
		ID:         e.ID,
		TS:         e.TS,
		Type:       e.Type,
		EntityKind: e.EntityKind,
		EntityID:   e.EntityID,
		Payload:    decodeJSONMap(e.Payload),
	}
}

func decodeJSONMap(raw string) map[string]any {
	out := map[string]any{}
	if raw == "" {
		return out
	}
	_ = json.Unmarshal([]byte(raw), &out)
	return out
}
