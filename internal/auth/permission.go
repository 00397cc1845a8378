package auth

import "booth-pos-backend/internal/model"

// CanRead reports whether the claims grant access to the event. Admins see
// everything; vendors see every event with all-access or only the event
// their token is bound to.
func CanRead(claims model.Claims, eventID int) bool {
	switch claims.Role {
	case model.RoleAdmin:
		return true
	case model.RoleVendor:
		if claims.Access == model.AccessAll {
			return true
		}
		return claims.Access == model.AccessEvent &&
			claims.EventID != nil && *claims.EventID == eventID
	}
	return false
}

// CanWrite 讀寫權限目前一致
func CanWrite(claims model.Claims, eventID int) bool {
	return CanRead(claims, eventID)
}
