package register

import (
	"github.com/a-h/templ"

	"welcomehome/frontend/shared/html"
	"welcomehome/infrastructure/cache"
)

func RegisterPage(data PageData) templ.Component {
	opts := html.LayoutOptions{}
	if data.State.Status == cache.ScreenSuccess {
		opts.RefreshAfter = data.RedirectDelay
		opts.RefreshURL = "/"
	}

	body := html.Component(func(p *html.Page) {
		p.Raw(`<h1>Register</h1>`)
		switch data.State.Status {
		case cache.ScreenSuccess:
			p.Component(html.Message("success", data.State.Message))
			return
		case cache.ScreenSubmitting:
			p.Component(html.Message("info", "Submitting..."))
		case cache.ScreenFailed:
			p.Component(html.Message("error", data.State.Message))
		}

		d := data.Draft
		p.Raw(`<form method="post" action="/register">`)
		p.Rawf(`<label>First Name: <input type="text" name="first_name" value="%s" required></label>`, d.FirstName)
		p.Rawf(`<label>Last Name: <input type="text" name="last_name" value="%s" required></label>`, d.LastName)
		p.Rawf(`<label>Username: <input type="text" name="username" value="%s" required></label>`, d.Username)
		p.Raw(`<label>Password: <input type="password" name="password" required></label>`)
		p.Raw(`<label>Role: <select name="role" required>`)
		for _, role := range data.Roles {
			selected := ""
			if role == d.Role {
				selected = " selected"
			}
			p.Rawf(`<option value="%s"`, role)
			p.Raw(selected)
			p.Rawf(`>%s</option>`, role)
		}
		p.Raw(`</select></label>`)
		p.Rawf(`<label>Billing Address: <input type="text" name="billAddr" value="%s"></label>`, d.BillAddr)
		p.Raw(`<button type="submit">Register</button>`)
		p.Raw(`</form>`)
		p.Raw(`<p>Already registered? <a href="/login">Login</a></p>`)
	})
	return html.Layout("Register", data.Nav, opts, body)
}
