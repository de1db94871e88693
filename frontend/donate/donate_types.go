package donate

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"welcomehome/frontend/shared/nav"
	"welcomehome/infrastructure/backend"
	"welcomehome/infrastructure/cache"
)

const (
	SuccessPrefix = "Donation accepted! Item ID: "

	// maxPieces bounds piece_count taken from a posted form.
	maxPieces = 200
)

var (
	ErrPieceIndex   = errors.New("piece index out of range")
	ErrUnknownField = errors.New("unknown piece field")
)

// PieceFields are the editable piece fields in form order.
var PieceFields = []PieceField{
	{Name: "pieceNum", Label: "Piece Number"},
	{Name: "pDescription", Label: "Description"},
	{Name: "length", Label: "Length"},
	{Name: "width", Label: "Width"},
	{Name: "height", Label: "Height"},
	{Name: "roomNum", Label: "Room Number"},
	{Name: "shelfNum", Label: "Shelf Number"},
	{Name: "pNotes", Label: "Notes"},
}

type PieceField struct {
	Name  string
	Label string
}

// Draft is the donation being edited.
type Draft struct {
	backend.Donation
}

// NewDraft returns an empty draft. Items are new unless unticked.
func NewDraft() Draft {
	return Draft{Donation: backend.Donation{IsNew: true, Pieces: []backend.DonationPiece{}}}
}

// AddPiece appends a blank piece.
func (d *Draft) AddPiece() {
	d.Pieces = append(d.Pieces, backend.DonationPiece{})
}

// SetPieceField sets one field of the piece at index.
func (d *Draft) SetPieceField(index int, name, value string) error {
	if index < 0 || index >= len(d.Pieces) {
		return fmt.Errorf("%w: %d", ErrPieceIndex, index)
	}
	f := pieceField(&d.Pieces[index], name)
	if f == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	*f = value
	return nil
}

// PieceValue returns one field of p by its form name.
func PieceValue(p backend.DonationPiece, name string) string {
	if f := pieceField(&p, name); f != nil {
		return *f
	}
	return ""
}

func pieceField(p *backend.DonationPiece, name string) *string {
	switch name {
	case "pieceNum":
		return &p.PieceNum
	case "pDescription":
		return &p.PDescription
	case "length":
		return &p.Length
	case "width":
		return &p.Width
	case "height":
		return &p.Height
	case "roomNum":
		return &p.RoomNum
	case "shelfNum":
		return &p.ShelfNum
	case "pNotes":
		return &p.PNotes
	}
	return nil
}

// PieceInputName is the form name of one piece field.
func PieceInputName(index int, field string) string {
	return "pieces." + strconv.Itoa(index) + "." + field
}

// ParseDraft rebuilds the draft from a posted form. Every posted piece is
// kept, whether or not has_pieces is set.
func ParseDraft(form url.Values) Draft {
	d := Draft{Donation: backend.Donation{
		DonorUsername:   form.Get("donor_username"),
		ItemDescription: form.Get("item_description"),
		Photo:           form.Get("photo"),
		Color:           form.Get("color"),
		IsNew:           checked(form.Get("is_new")),
		HasPieces:       checked(form.Get("has_pieces")),
		Material:        form.Get("material"),
		MainCategory:    form.Get("main_category"),
		SubCategory:     form.Get("sub_category"),
		Pieces:          []backend.DonationPiece{},
	}}

	n, err := strconv.Atoi(form.Get("piece_count"))
	if err != nil || n < 0 {
		n = 0
	}
	if n > maxPieces {
		n = maxPieces
	}
	for i := 0; i < n; i++ {
		d.AddPiece()
		for _, f := range PieceFields {
			_ = d.SetPieceField(i, f.Name, form.Get(PieceInputName(i, f.Name)))
		}
	}
	return d
}

func checked(v string) bool {
	switch v {
	case "true", "on", "1":
		return true
	}
	return false
}

type PageData struct {
	Nav        nav.TopNavData
	Authorized bool
	State      cache.ScreenState
	Draft      Draft
	ItemID     string
}
