package home

import (
	"github.com/a-h/templ"

	"welcomehome/frontend/shared/html"
	"welcomehome/frontend/shared/nav"
)

func HomePage(data PageData) templ.Component {
	body := html.Component(func(p *html.Page) {
		p.Raw(`<h1>Welcome Home</h1>`)
		if !data.LoggedIn {
			p.Raw(`<p><a href="/register">Register</a> | <a href="/login">Login</a></p>`)
			return
		}
		if data.SignedInAgo != "" {
			p.Rawf(`<p class="msg msg-info">Signed in %s</p>`, data.SignedInAgo)
		}
		p.Raw(`<ul class="actions">`)
		for _, l := range data.Links {
			p.Rawf(`<li><a href="%s">%s</a></li>`, l.Href, l.Label)
		}
		p.Raw(`</ul>`)
		p.Raw(`<form method="post" action="/logout"><button type="submit">Logout</button></form>`)
	})
	return html.Layout("Home", data.Nav, html.LayoutOptions{}, body)
}

func NotFoundPage(top nav.TopNavData) templ.Component {
	body := html.Component(func(p *html.Page) {
		p.Raw(`<h1>404 - Page Not Found</h1>`)
		p.Raw(`<p>Sorry, the page you are looking for does not exist.</p>`)
	})
	return html.Layout("Not Found", top, html.LayoutOptions{}, body)
}
