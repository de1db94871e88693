package backend

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
)

// Scalar is a JSON value the backend may send as a string or a number.
type Scalar string

func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = Scalar(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*s = Scalar(n.String())
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = Scalar(strconv.FormatBool(v))
	return nil
}

func (s Scalar) String() string {
	return string(s)
}

// Piece is one physical piece of an item with its storage location.
type Piece struct {
	PieceNum         Scalar
	Description      Scalar
	Length           Scalar
	Width            Scalar
	Height           Scalar
	RoomNum          Scalar
	ShelfNum         Scalar
	ShelfDescription Scalar
	Notes            Scalar
}

// UnmarshalJSON accepts the flat piece shape of /item/{id} and the nested
// dimensions/location shape of /order/{id}.
func (p *Piece) UnmarshalJSON(b []byte) error {
	var raw struct {
		PieceNum         Scalar `json:"pieceNum"`
		PDescription     Scalar `json:"pDescription"`
		Description      Scalar `json:"description"`
		Length           Scalar `json:"length"`
		Width            Scalar `json:"width"`
		Height           Scalar `json:"height"`
		RoomNum          Scalar `json:"roomNum"`
		ShelfNum         Scalar `json:"shelfNum"`
		ShelfDescription Scalar `json:"shelfDescription"`
		PNotes           Scalar `json:"pNotes"`
		Dimensions       *struct {
			Length Scalar `json:"length"`
			Width  Scalar `json:"width"`
			Height Scalar `json:"height"`
		} `json:"dimensions"`
		Location *struct {
			RoomNum          Scalar `json:"roomNum"`
			ShelfNum         Scalar `json:"shelfNum"`
			ShelfDescription Scalar `json:"shelfDescription"`
		} `json:"location"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*p = Piece{
		PieceNum:         raw.PieceNum,
		Description:      raw.PDescription,
		Length:           raw.Length,
		Width:            raw.Width,
		Height:           raw.Height,
		RoomNum:          raw.RoomNum,
		ShelfNum:         raw.ShelfNum,
		ShelfDescription: raw.ShelfDescription,
		Notes:            raw.PNotes,
	}
	if p.Description == "" {
		p.Description = raw.Description
	}
	if d := raw.Dimensions; d != nil {
		p.Length, p.Width, p.Height = d.Length, d.Width, d.Height
	}
	if l := raw.Location; l != nil {
		p.RoomNum, p.ShelfNum, p.ShelfDescription = l.RoomNum, l.ShelfNum, l.ShelfDescription
	}
	return nil
}

// OrderItem is one item of an order with its pieces.
type OrderItem struct {
	ItemID      Scalar  `json:"itemID"`
	Description Scalar  `json:"description"`
	Color       Scalar  `json:"color"`
	Material    Scalar  `json:"material"`
	Pieces      []Piece `json:"pieces"`
}

// Registration is the body of /register.
type Registration struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
	Role      string
	BillAddr  string
}

func (r Registration) Form() url.Values {
	return url.Values{
		"first_name": {r.FirstName},
		"last_name":  {r.LastName},
		"username":   {r.Username},
		"password":   {r.Password},
		"role":       {r.Role},
		"billAddr":   {r.BillAddr},
	}
}

// DonationPiece is a piece as entered on the donation form. All fields are
// free text.
type DonationPiece struct {
	PieceNum     string `json:"pieceNum"`
	PDescription string `json:"pDescription"`
	Length       string `json:"length"`
	Width        string `json:"width"`
	Height       string `json:"height"`
	RoomNum      string `json:"roomNum"`
	ShelfNum     string `json:"shelfNum"`
	PNotes       string `json:"pNotes"`
}

// Donation is the body of /donate.
type Donation struct {
	DonorUsername   string
	ItemDescription string
	Photo           string
	Color           string
	IsNew           bool
	HasPieces       bool
	Material        string
	MainCategory    string
	SubCategory     string
	Pieces          []DonationPiece
}

// Form encodes the flat fields as pairs and the pieces as a JSON array in
// piece_data. Pieces are sent whatever HasPieces says.
func (d Donation) Form() (url.Values, error) {
	pieces := d.Pieces
	if pieces == nil {
		pieces = []DonationPiece{}
	}
	pieceData, err := json.Marshal(pieces)
	if err != nil {
		return nil, err
	}
	return url.Values{
		"donor_username":   {d.DonorUsername},
		"item_description": {d.ItemDescription},
		"photo":            {d.Photo},
		"color":            {d.Color},
		"is_new":           {strconv.FormatBool(d.IsNew)},
		"has_pieces":       {strconv.FormatBool(d.HasPieces)},
		"material":         {d.Material},
		"main_category":    {d.MainCategory},
		"sub_category":     {d.SubCategory},
		"piece_data":       {string(pieceData)},
	}, nil
}
