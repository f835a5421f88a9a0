package service

// staticAuthorizer grants the admin capability to a fixed set of Telegram IDs
type staticAuthorizer struct {
	adminIDs map[int64]struct{}
}

// NewStaticAuthorizer creates an Authorizer backed by the configured admin IDs
func NewStaticAuthorizer(adminIDs []int64) Authorizer {
	ids := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		ids[id] = struct{}{}
	}
	return &staticAuthorizer{adminIDs: ids}
}

func (a *staticAuthorizer) IsAdmin(telegramID int64) bool {
	_, ok := a.adminIDs[telegramID]
	return ok
}
