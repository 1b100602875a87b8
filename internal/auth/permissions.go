package auth

import "smarthire_backend/internal/models"

// Identity - аутентифицированный пользователь запроса
type Identity struct {
	UserID string
	Role   models.UserRole
	Email  string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.UserRoleAdmin
}

func (i Identity) HasRole(roles ...models.UserRole) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// CanManage - владелец ресурса или администратор
func (i Identity) CanManage(ownerID string) bool {
	if i.IsAdmin() {
		return true
	}
	return i.UserID != "" && i.UserID == ownerID
}
