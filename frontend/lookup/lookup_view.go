package lookup

import (
	"github.com/a-h/templ"

	"welcomehome/frontend/shared/html"
	"welcomehome/infrastructure/cache"
)

func LookupPage(data PageData) templ.Component {
	screen := data.Screen
	body := html.Component(func(p *html.Page) {
		p.Rawf(`<h1>%s</h1>`, screen.Title)
		p.Rawf(`<form method="post" action="%s">`, screen.Path)
		p.Rawf(`<label>%s <input type="number" name="id" value="%s" required></label>`, screen.Label, data.Input)
		p.Raw(`<button type="submit">Find</button>`)
		p.Raw(`</form>`)

		switch data.State.Status {
		case cache.ScreenSubmitting:
			p.Component(html.Message("info", "Searching..."))
		case cache.ScreenFailed:
			p.Component(html.Message("error", data.State.Message))
		case cache.ScreenSuccess:
			p.Rawf(`<div class="results"><h2>%s</h2>`, screen.ResultTitle)
			if data.Items != nil {
				p.Component(orderItemList(data))
			} else {
				p.Component(pieceList(data))
			}
			p.Raw(`</div>`)
		}
	})
	return html.Layout(screen.Title, data.Nav, html.LayoutOptions{}, body)
}

func pieceList(data PageData) templ.Component {
	return html.Component(func(p *html.Page) {
		p.Raw(`<ul class="pieces">`)
		for _, piece := range data.Pieces {
			p.Rawf(`<li>%s</li>`, PieceLine(piece))
		}
		p.Raw(`</ul>`)
	})
}

func orderItemList(data PageData) templ.Component {
	return html.Component(func(p *html.Page) {
		p.Raw(`<ul class="items">`)
		for _, it := range data.Items {
			p.Rawf(`<li data-item-id="%s">%s<ul class="pieces">`, it.ItemID, ItemLine(it))
			for _, piece := range it.Pieces {
				p.Rawf(`<li>%s</li>`, PieceLine(piece))
			}
			p.Raw(`</ul></li>`)
		}
		p.Raw(`</ul>`)
	})
}
