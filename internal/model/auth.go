package model

// AuthContext carries the authenticated caller's identity through a request.
type AuthContext struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Summary returns the caller as a debt party snapshot.
func (a *AuthContext) Summary() *PartySummary {
	return &PartySummary{ID: a.UserID, Name: a.Name, Email: a.Email}
}
