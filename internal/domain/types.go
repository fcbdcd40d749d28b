package domain

// AllDestinations is the destination filter value that disables filtering.
const AllDestinations = "הכל"

// Destinations are the preset filter chips shown on the board.
var Destinations = []string{
	"ירושלים",
	"ביתר עילית",
	"בית שמש",
	"צומת הגוש",
	"הגבעה הצהובה",
	"קריית ארבע",
	"אפרת",
	"מיצד",
	"תקוע",
}

// RequestContext carries the session identity when available.
type RequestContext struct {
	UserID  string `json:"userId"`
	Name    string `json:"name,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

// CanModify reports whether the caller may delete a resource owned by ownerID.
func (rc RequestContext) CanModify(ownerID string) bool {
	if rc.IsAdmin {
		return true
	}
	return rc.UserID != "" && rc.UserID == ownerID
}
