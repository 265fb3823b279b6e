package api

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/go-faster/sdk/zctx"
	"github.com/klauspost/pgzip"
	"go.uber.org/zap"
)

// AnalyticsSummary returns the dashboard aggregates.
func (h *Handler) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.events.Summary(r.Context())
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, summary)
}

// ExportOrders streams every order as a gzip-compressed CSV file.
func (h *Handler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderRepo.List(r.Context())
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv.gz"`)

	gz := pgzip.NewWriter(w)
	cw := csv.NewWriter(gz)

	header := []string{
		"id", "user_id", "customer_name", "customer_email", "customer_phone",
		"address", "total", "status", "points_earned", "points_used",
		"email_sent", "created_at", "updated_at",
	}
	if err := cw.Write(header); err != nil {
		zctx.From(r.Context()).Warn("write export header", zap.Error(err))
		return
	}

	for i := range orders {
		o := &orders[i]
		userID := ""
		if o.UserID != nil {
			userID = strconv.FormatInt(*o.UserID, 10)
		}
		row := []string{
			strconv.FormatInt(o.ID, 10),
			userID,
			o.CustomerName,
			o.CustomerEmail,
			o.CustomerPhone,
			o.Address,
			o.Total.StringFixed(2),
			string(o.Status),
			strconv.FormatInt(o.PointsEarned, 10),
			strconv.FormatInt(o.PointsUsed, 10),
			strconv.FormatBool(o.EmailSent),
			o.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			o.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(row); err != nil {
			zctx.From(r.Context()).Warn("write export row",
				zap.Int64("order_id", o.ID),
				zap.Error(err),
			)
			return
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		zctx.From(r.Context()).Warn("flush export", zap.Error(err))
	}
	if err := gz.Close(); err != nil {
		zctx.From(r.Context()).Warn("close export stream", zap.Error(err))
	}
}
