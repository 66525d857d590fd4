// Package taxonomy translates between the labels shown to users and the
// canonical values stored in the database. Values outside a family pass
// through untouched so older or newer rows still render.
package taxonomy

// Pair links a stored value to its display label.
type Pair struct {
	Internal string
	External string
}

// Family is one enum vocabulary. Both lookup directions are derived from the
// same pair list.
type Family struct {
	Name  string
	pairs []Pair
	toExt map[string]string
	toInt map[string]string
}

// NewFamily builds a family from its pairs. Duplicate entries keep the first
// occurrence.
func NewFamily(name string, pairs ...Pair) *Family {
	f := &Family{
		Name:  name,
		toExt: make(map[string]string, len(pairs)),
		toInt: make(map[string]string, len(pairs)),
	}
	for _, p := range pairs {
		if _, ok := f.toExt[p.Internal]; ok {
			continue
		}
		if _, ok := f.toInt[p.External]; ok {
			continue
		}
		f.pairs = append(f.pairs, p)
		f.toExt[p.Internal] = p.External
		f.toInt[p.External] = p.Internal
	}
	return f
}

func identity(name string, values ...string) *Family {
	pairs := make([]Pair, 0, len(values))
	for _, v := range values {
		pairs = append(pairs, Pair{Internal: v, External: v})
	}
	return NewFamily(name, pairs...)
}

// ToExternal returns the display label for a stored value.
func (f *Family) ToExternal(v string) string {
	if ext, ok := f.toExt[v]; ok {
		return ext
	}
	return v
}

// ToInternal returns the stored value for a display label.
func (f *Family) ToInternal(v string) string {
	if in, ok := f.toInt[v]; ok {
		return in
	}
	return v
}

// IsExternal reports whether v is a known display label.
func (f *Family) IsExternal(v string) bool {
	_, ok := f.toInt[v]
	return ok
}

// Pairs returns a copy of the family table in declaration order.
func (f *Family) Pairs() []Pair {
	out := make([]Pair, len(f.pairs))
	copy(out, f.pairs)
	return out
}

// Externals lists the display labels in declaration order.
func (f *Family) Externals() []string {
	out := make([]string, 0, len(f.pairs))
	for _, p := range f.pairs {
		out = append(out, p.External)
	}
	return out
}

// Display labels referenced by business rules.
const (
	StatusSent       = "Sent"
	StatusWaiting    = "Waiting"
	StatusFollowUp   = "Follow-up"
	StatusDiscussion = "Discussion"
	StatusInterview  = "Interview"
	StatusOffer      = "Offer"
	StatusRejected   = "Rejected"
	StatusClosed     = "Closed"

	OutcomeNone      = "None"
	OutcomeRejected  = "Rejected"
	OutcomeInterview = "Interview"
	OutcomeOffer     = "Offer"

	SourceDirect       = "Direct"
	SourceViaRecruiter = "Via Recruiter"

	CompanyRecruiter = "Recruiter"
	CompanyOther     = "Other"

	TypeCall = "Call"

	ProcessActive = "Active"
)

var (
	InteractionStatus = NewFamily("interaction_status",
		Pair{"Sent", StatusSent},
		Pair{"Waiting", StatusWaiting},
		Pair{"FollowUp", StatusFollowUp},
		Pair{"Discussion", StatusDiscussion},
		Pair{"Interview", StatusInterview},
		Pair{"Offer", StatusOffer},
		Pair{"Rejected", StatusRejected},
		Pair{"Closed", StatusClosed},
	)

	CompanyType = NewFamily("company_type",
		Pair{"Bank", "Bank"},
		Pair{"HedgeFund", "Hedge Fund"},
		Pair{"AssetManager", "Asset Manager"},
		Pair{"PrivateEquity", "Private Equity"},
		Pair{"PropShop", "Prop Shop"},
		Pair{"Recruiter", CompanyRecruiter},
		Pair{"Other", CompanyOther},
	)

	InteractionType = NewFamily("interaction_type",
		Pair{"OfficialApplication", "Official Application"},
		Pair{"LinkedInMessage", "LinkedIn Message"},
		Pair{"ColdEmail", "Cold Email"},
		Pair{"Call", TypeCall},
		Pair{"Referral", "Referral"},
		Pair{"PhysicalMeeting", "Physical Meeting"},
	)

	SourceType = NewFamily("source_type",
		Pair{"Direct", SourceDirect},
		Pair{"ViaRecruiter", SourceViaRecruiter},
	)

	ProcessStatus = identity("process_status",
		ProcessActive, "Interviewing", "Offer", "Rejected", "Closed")

	Stage = NewFamily("stage",
		Pair{"Application", "Application"},
		Pair{"Screening", "Screening"},
		Pair{"PhoneInterview", "Phone Interview"},
		Pair{"Technical", "Technical"},
		Pair{"FinalRound", "Final Round"},
		Pair{"OfferStage", "Offer Stage"},
		Pair{"Other", "Other"},
	)

	Priority = identity("priority", "Low", "Medium", "High")

	Outcome = identity("outcome", OutcomeNone, OutcomeRejected, OutcomeInterview, OutcomeOffer)

	GlobalCategory = identity("global_category", "Sales", "Trading", "Structuring", "Investment", "Other")

	ContactCategory = identity("contact_category", "Sales", "Trading", "Structuring", "Investment", "HR", "Recruiter", "Other")

	// Seniority is declared most senior first; org charts sort by this order.
	Seniority = identity("seniority", "Partner", "MD", "Director", "VP", "Associate", "Analyst", "HR", "Recruiter", "Other")
)

// All returns every family, keyed by name.
func All() map[string]*Family {
	fams := []*Family{
		InteractionStatus, CompanyType, InteractionType, SourceType, ProcessStatus,
		Stage, Priority, Outcome, GlobalCategory, ContactCategory, Seniority,
	}
	out := make(map[string]*Family, len(fams))
	for _, f := range fams {
		out[f.Name] = f
	}
	return out
}

// Rank returns the declaration index of an external label, or len(pairs) when
// the label is unknown.
func (f *Family) Rank(external string) int {
	for i, p := range f.pairs {
		if p.External == external {
			return i
		}
	}
	return len(f.pairs)
}
