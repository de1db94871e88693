package register

import (
	"time"

	"welcomehome/frontend/shared/nav"
	"welcomehome/infrastructure/cache"
)

const SuccessMessage = "Registration successful! Redirecting to home..."

// FormDraft keeps what was typed, minus the password, across a failed submit.
type FormDraft struct {
	FirstName string
	LastName  string
	Username  string
	Role      string
	BillAddr  string
}

type PageData struct {
	Nav           nav.TopNavData
	State         cache.ScreenState
	Draft         FormDraft
	Roles         []string
	RedirectDelay time.Duration
}
