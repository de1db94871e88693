package home

import "welcomehome/frontend/shared/nav"

// Link is one action offered on the home screen.
type Link struct {
	Label string
	Href  string
}

type PageData struct {
	Nav         nav.TopNavData
	LoggedIn    bool
	SignedInAgo string
	Links       []Link
}
