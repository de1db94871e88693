package donate

import (
	"net/url"

	"github.com/a-h/templ"

	"welcomehome/frontend/shared/html"
	"welcomehome/frontend/shared/nav"
	"welcomehome/infrastructure/cache"
)

func DonatePage(data PageData) templ.Component {
	body := html.Component(func(p *html.Page) {
		p.Raw(`<h1>Accept Donation</h1>`)
		switch data.State.Status {
		case cache.ScreenSubmitting:
			p.Component(html.Message("info", "Submitting..."))
		case cache.ScreenFailed:
			p.Component(html.Message("error", data.State.Message))
		case cache.ScreenSuccess:
			p.Component(html.Message("success", data.State.Message))
			if data.ItemID != "" {
				p.Rawf(`<p><a href="/donate/%s/label" target="_blank">Print label</a></p>`, url.PathEscape(data.ItemID))
			}
		}
		p.Component(donationForm(data.Draft))
	})
	return html.Layout("Accept Donation", data.Nav, html.LayoutOptions{}, body)
}

func donationForm(d Draft) templ.Component {
	return html.Component(func(p *html.Page) {
		p.Raw(`<form method="post" action="/donate">`)
		p.Rawf(`<label>Donor Username: <input type="text" name="donor_username" value="%s" required></label>`, d.DonorUsername)
		p.Rawf(`<label>Item Description: <input type="text" name="item_description" value="%s" required></label>`, d.ItemDescription)
		p.Rawf(`<label>Photo URL: <input type="text" name="photo" value="%s"></label>`, d.Photo)
		p.Rawf(`<label>Color: <input type="text" name="color" value="%s"></label>`, d.Color)
		p.Raw(`<label><input type="checkbox" name="is_new" value="true"`)
		if d.IsNew {
			p.Raw(` checked`)
		}
		p.Raw(`> Is New</label>`)
		p.Raw(`<label><input type="checkbox" name="has_pieces" value="true" data-toggles="pieces-section"`)
		if d.HasPieces {
			p.Raw(` checked`)
		}
		p.Raw(`> Has Pieces</label>`)
		p.Rawf(`<label>Material: <input type="text" name="material" value="%s"></label>`, d.Material)
		p.Rawf(`<label>Main Category: <input type="text" name="main_category" value="%s" required></label>`, d.MainCategory)
		p.Rawf(`<label>Sub Category: <input type="text" name="sub_category" value="%s" required></label>`, d.SubCategory)

		p.Raw(`<section id="pieces-section"`)
		if !d.HasPieces {
			p.Raw(` hidden`)
		}
		p.Raw(`><h2>Pieces</h2>`)
		p.Rawf(`<input type="hidden" name="piece_count" value="%s">`, len(d.Pieces))
		for i, piece := range d.Pieces {
			p.Rawf(`<fieldset class="piece"><legend>Piece %s</legend>`, i+1)
			for _, f := range PieceFields {
				p.Rawf(`<label>%s: <input type="text" name="%s" value="%s"></label>`, f.Label, PieceInputName(i, f.Name), PieceValue(piece, f.Name))
			}
			p.Raw(`</fieldset>`)
		}
		p.Raw(`<button type="submit" name="action" value="add_piece" formnovalidate>Add Piece</button>`)
		p.Raw(`</section>`)

		p.Raw(`<button type="submit" name="action" value="submit">Submit Donation</button>`)
		p.Raw(`</form>`)
	})
}

// UnauthorizedPage offers nothing but the way home.
func UnauthorizedPage(top nav.TopNavData) templ.Component {
	body := html.Component(func(p *html.Page) {
		p.Raw(`<h1>Unauthorized</h1>`)
		p.Raw(`<p>You are not authorized to access this page.</p>`)
		p.Raw(`<p><a class="button" href="/">Go Home</a></p>`)
	})
	return html.Layout("Unauthorized", top, html.LayoutOptions{}, body)
}
