package login

import (
	"github.com/a-h/templ"

	"welcomehome/frontend/shared/html"
	"welcomehome/infrastructure/cache"
)

func GetLoginScreen(data PageData) templ.Component {
	body := html.Component(func(p *html.Page) {
		p.Raw(`<h1>Login</h1>`)
		switch data.State.Status {
		case cache.ScreenSubmitting:
			p.Component(html.Message("info", "Logging in..."))
		case cache.ScreenFailed:
			p.Component(html.Message("error", data.State.Message))
		}
		p.Raw(`<form method="post" action="/login">`)
		p.Rawf(`<label>Username: <input type="text" name="username" value="%s" autocomplete="username" required></label>`, data.Username)
		p.Raw(`<label>Password: <input type="password" name="password" autocomplete="current-password" required></label>`)
		p.Raw(`<button type="submit">Login</button>`)
		p.Raw(`</form>`)
		p.Raw(`<p>No account yet? <a href="/register">Register</a></p>`)
	})
	return html.Layout("Login", data.Nav, html.LayoutOptions{}, body)
}
