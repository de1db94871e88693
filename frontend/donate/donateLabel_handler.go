package donate

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"welcomehome/frontend/shared/shell"
)

// DonationLabelHandler serves a printable PDF label for an accepted item.
// Piece locations are added when the backend can list them.
func DonationLabelHandler(sh *shell.Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || itemID < 0 {
			http.Error(w, "invalid item id", http.StatusBadRequest)
			return
		}
		if !authorize(sh, r) {
			renderUnauthorized(w, r, sh)
			return
		}

		pieces, err := sh.Backend.Item(r.Context(), shell.Session(r).AccessToken, itemID)
		if err != nil {
			slog.Warn("label piece lookup failed", slog.Int64("item_id", itemID), slog.Any("err", err))
			pieces = nil
		}

		pdfBytes, code, err := renderDonationLabelPDF(itemID, pieces, time.Now())
		if err != nil {
			http.Error(w, "failed to build label pdf", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "inline; filename="+code+"-label.pdf")
		_, _ = w.Write(pdfBytes)
	}
}
