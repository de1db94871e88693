package login

import (
	"welcomehome/frontend/shared/nav"
	"welcomehome/infrastructure/cache"
)

type PageData struct {
	Nav      nav.TopNavData
	State    cache.ScreenState
	Username string
}
