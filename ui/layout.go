package ui

// Element ids of the dashboard skeleton.
const (
	HeaderID       = "header"
	ThemeToggleID  = "themeToggle"
	UserAvatarID   = "userAvatar"
	UserNameID     = "userName"
	UserRoleID     = "userRole"
	ConfirmModalID = "confirmModal"
	ConfirmBodyID  = "confirmModalContent"
	ConfirmCloseID = "confirmModalClose"

	// DashboardPage is where a successful login lands.
	DashboardPage = "index.html"
)

// NewDashboardPage builds the element skeleton the app pages share: a header holding the theme toggle and
// user info, and a hidden confirm dialog.
func NewDashboardPage(location string) *Page {
	p := NewPage(location)
	layout := []struct {
		parent, id string
		classes    []string
	}{
		{BodyID, HeaderID, []string{"header"}},
		{HeaderID, ThemeToggleID, []string{ThemeToggleClass}},
		{HeaderID, UserAvatarID, []string{UserAvatarClass}},
		{HeaderID, UserNameID, []string{UserNameClass}},
		{HeaderID, UserRoleID, []string{UserRoleClass}},
		{BodyID, ConfirmModalID, []string{ModalOverlayClass}},
		{ConfirmModalID, ConfirmBodyID, []string{"modal"}},
		{ConfirmBodyID, ConfirmCloseID, []string{ModalCloseClass}},
	}
	for _, el := range layout {
		if err := p.Add(el.parent, el.id, el.classes...); err != nil {
			panic("ui.layout.go: " + err.Error())
		}
	}
	p.SetStyle(ConfirmModalID, "display", "none")
	return p
}
