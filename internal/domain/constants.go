package domain

// Listing lifecycle statuses. Every new or restored listing starts in
// pending_review; approved and expired listings can both return to approved.
const (
	StatusPendingReview  = "pending_review"
	StatusApproved       = "approved"
	StatusRejected       = "rejected"
	StatusExpired        = "expired"
	StatusExtendedReview = "extended_review"
)

// Premium levels control public feed ordering and CV-database entitlement.
const (
	PremiumStandard = "standard"
	PremiumLevel    = "premium"
	PremiumPlus     = "premium_plus"
)

// TierRank maps a premium level to its sort weight. Higher ranks first.
func TierRank(level string) int {
	switch level {
	case PremiumPlus:
		return 3
	case PremiumLevel:
		return 2
	default:
		return 1
	}
}

const (
	RoleCandidate = "CANDIDATE"
	RoleEmployer  = "EMPLOYER"
	RoleAdmin     = "ADMIN"
)

// Employer notification types.
const (
	NotifJobStatusUpdate = "job_status_update"
	NotifNewApplication  = "new_application"
)

// Candidate notification types.
const (
	NotifApplicationStatus = "application_status_update"
)

const (
	ApplicationInReview  = "in_review"
	ApplicationInterview = "interview"
	ApplicationReserve   = "reserve"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// DefaultListingDays is the expiry window granted on approval when a listing
// has no expiration date yet, and the default for admin extensions.
const DefaultListingDays = 30
