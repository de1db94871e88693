package html

import (
	"time"

	"github.com/a-h/templ"

	"welcomehome/frontend/shared/nav"
)

// LayoutOptions tweaks the document head.
type LayoutOptions struct {
	RefreshAfter time.Duration
	RefreshURL   string
	Scripts      []string
}

// Layout wraps body in the document shell with the top navigation.
func Layout(title string, top nav.TopNavData, opts LayoutOptions, body templ.Component) templ.Component {
	return Component(func(p *Page) {
		p.Raw(`<!doctype html><html><head><meta charset="utf-8">`)
		if opts.RefreshURL != "" {
			p.Rawf(`<meta http-equiv="refresh" content="%s;url=%s">`, int(opts.RefreshAfter/time.Second), opts.RefreshURL)
		}
		p.Rawf(`<title>%s</title>`, title)
		p.Raw(`<link rel="stylesheet" href="/assets/app.css">`)
		for _, src := range opts.Scripts {
			p.Rawf(`<script src="%s" defer></script>`, src)
		}
		p.Raw(`</head><body>`)
		p.Component(TopNav(top))
		p.Raw(`<main>`)
		p.Component(body)
		p.Raw(`</main>`)
		p.Raw(`<script src="/assets/app.js"></script>`)
		p.Raw(`</body></html>`)
	})
}

// TopNav renders the home link and, when logged in, who is signed in.
func TopNav(top nav.TopNavData) templ.Component {
	return Component(func(p *Page) {
		p.Raw(`<nav class="topnav"><a class="home-icon" href="/" title="Home">&#8962; Home</a>`)
		if top.LoggedIn {
			p.Raw(`<span class="who">`)
			if top.Username != "" {
				p.Text(top.Username)
			} else {
				p.Text("Signed in")
			}
			if top.Role != "" {
				p.Rawf(` <span class="role">%s</span>`, top.Role)
			}
			p.Raw(`</span>`)
		}
		p.Raw(`</nav>`)
	})
}

// Message renders an error or success line. Empty text renders nothing.
func Message(kind, text string) templ.Component {
	return Component(func(p *Page) {
		if text == "" {
			return
		}
		p.Rawf(`<p class="msg msg-%s">%s</p>`, kind, text)
	})
}
