package interfaces

// Navigator performs a full navigation away from the current page. The session manager uses it to send
// the user to the login page after logout or session expiry; any in-flight UI state is abandoned.
//
// Implemented by ui.Page (console: the page location changes) and by the CLI navigator in cmd
// (prints a re-login hint).
//
//go:generate moq -stub -out mock/navigator.go -pkg mock . Navigator
type Navigator interface {
	// Navigate replaces the current page with location (e.g. "login.html").
	Navigate(location string)
}
