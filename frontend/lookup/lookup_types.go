package lookup

import (
	"fmt"

	"welcomehome/frontend/shared/nav"
	"welcomehome/frontend/shared/shell"
	"welcomehome/infrastructure/backend"
	"welcomehome/infrastructure/cache"
)

const InvalidIDMessage = "Please enter a numeric ID."

// lookupScreen describes one lookup screen.
type lookupScreen struct {
	Key         string
	Path        string
	Title       string
	Label       string
	ResultTitle string
}

var (
	findItemScreen = lookupScreen{
		Key:         shell.ScreenFindItem,
		Path:        "/find-item",
		Title:       "Find Item Locations",
		Label:       "Enter Item ID:",
		ResultTitle: "Item Locations",
	}
	findOrderScreen = lookupScreen{
		Key:         shell.ScreenFindOrder,
		Path:        "/find-order",
		Title:       "Find Order Items",
		Label:       "Enter Order ID:",
		ResultTitle: "Order Items",
	}
)

type PageData struct {
	Nav    nav.TopNavData
	Screen lookupScreen
	State  cache.ScreenState
	Input  string
	Pieces []backend.Piece
	Items  []backend.OrderItem
}

// PieceLine renders one piece the way both lookup screens list it.
func PieceLine(p backend.Piece) string {
	return fmt.Sprintf("Piece %s: %s (Dimensions: %sx%sx%s) - Room: %s, Shelf: %s (%s)",
		p.PieceNum, p.Description, p.Length, p.Width, p.Height, p.RoomNum, p.ShelfNum, p.ShelfDescription)
}

// ItemLine renders the heading of one order item.
func ItemLine(it backend.OrderItem) string {
	return fmt.Sprintf("%s (Color: %s, Material: %s)", it.Description, it.Color, it.Material)
}
