package nav

import "welcomehome/models"

// TopNavData is shared with page renderers.
type TopNavData struct {
	LoggedIn bool
	Username string
	Role     string
}

func BuildTopNavData(session models.Session, info models.UserInfo) TopNavData {
	if !session.LoggedIn() {
		return TopNavData{}
	}
	return TopNavData{LoggedIn: true, Username: info.Username, Role: info.Role}
}
