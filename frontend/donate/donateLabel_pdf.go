package donate

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strconv"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"

	"welcomehome/infrastructure/backend"
)

// maxLabelPieces is how many piece locations fit under the barcode.
const maxLabelPieces = 6

// labelCode is the barcode value for an item.
func labelCode(itemID int64) string {
	return fmt.Sprintf("I%08d", itemID)
}

func renderDonationLabelPDF(itemID int64, pieces []backend.Piece, printedAt time.Time) ([]byte, string, error) {
	if itemID < 0 {
		return nil, "", fmt.Errorf("invalid item id %d", itemID)
	}
	code := labelCode(itemID)
	barcodePNG, err := renderCode128PNG(code, 1200, 260)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("L", "mm", "A5", "")
	pdf.SetTitle("Donation Label", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(0, 14, "DONATION", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 36)
	pdf.CellFormat(0, 16, "ITEM ID: "+strconv.FormatInt(itemID, 10), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Printed: "+printedAt.Format("02/01/2006"), "", 1, "C", false, 0, "")

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("item-barcode", opt, bytes.NewReader(barcodePNG))
	pageW, _ := pdf.GetPageSize()
	imgW := 150.0
	imgH := 34.0
	x := (pageW - imgW) / 2
	y := 52.0
	pdf.ImageOptions("item-barcode", x, y, imgW, imgH, false, opt, 0, "")

	pdf.SetY(y + imgH + 3)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 9, code, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range pieces {
		if i == maxLabelPieces {
			pdf.CellFormat(0, 6, fmt.Sprintf("+ %d more pieces", len(pieces)-maxLabelPieces), "", 1, "C", false, 0, "")
			break
		}
		pdf.CellFormat(0, 6, pieceLocation(p), "", 1, "C", false, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, "", err
	}
	return out.Bytes(), code, nil
}

func pieceLocation(p backend.Piece) string {
	room := p.RoomNum.String()
	if room == "" {
		room = "-"
	}
	shelf := p.ShelfNum.String()
	if shelf == "" {
		shelf = "-"
	}
	return fmt.Sprintf("Piece %s: Room %s, Shelf %s", p.PieceNum.String(), room, shelf)
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	normalized := toNRGBA(scaled)
	var barcodePNG bytes.Buffer
	if err := png.Encode(&barcodePNG, normalized); err != nil {
		return nil, err
	}
	return barcodePNG.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
