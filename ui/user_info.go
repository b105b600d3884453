package ui

import (
	"context"

	"myclient/service"
)

// User info classes.
const (
	UserNameClass   = "user-name"
	UserAvatarClass = "user-avatar"
	UserRoleClass   = "user-role"
)

// RenderUserInfo writes the stored user's name, initials and role label into every .user-name,
// .user-avatar and .user-role element. Does nothing and returns false when no user is stored.
func RenderUserInfo(ctx context.Context, page *Page, session *service.Session, f *Formatter) bool {
	user, ok := session.User(ctx)
	if !ok {
		return false
	}
	name := user.DisplayName()
	for _, id := range page.ByClass(UserNameClass) {
		page.SetText(id, name)
	}
	for _, id := range page.ByClass(UserAvatarClass) {
		page.SetText(id, GetInitials(name))
	}
	for _, id := range page.ByClass(UserRoleClass) {
		page.SetText(id, f.RoleLabel(user.Role))
	}
	return true
}

// ClearUserInfo empties every .user-name, .user-avatar and .user-role element.
func ClearUserInfo(page *Page) {
	for _, class := range []string{UserNameClass, UserAvatarClass, UserRoleClass} {
		for _, id := range page.ByClass(class) {
			page.SetText(id, "")
		}
	}
}
