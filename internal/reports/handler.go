package reports

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerline/ledgerline/internal/coa"
	"github.com/ledgerline/ledgerline/internal/platform/httpx"
)

// Handler exposes the financial reports over HTTP. Every report accepts an
// optional date window and a csv format switch.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{service: service, logger: logger}
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}

func parsePeriod(r *http.Request) (Period, error) {
	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		return Period{}, err
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		return Period{}, err
	}
	return Period{From: from, To: to}, nil
}

func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == "csv"
}

func writeCSV(w http.ResponseWriter, filename string, write func() error) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_ = write()
}

func (h *Handler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", "dates must be YYYY-MM-DD")
		return
	}
	if asOf, err := parseDate(r.URL.Query().Get("as_of")); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", "as_of must be YYYY-MM-DD")
		return
	} else if !asOf.IsZero() {
		period = Period{To: asOf}
	}
	tb, err := h.service.TrialBalance(r.Context(), period)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	if wantsCSV(r) {
		writeCSV(w, "trial_balance.csv", func() error { return WriteTrialBalanceCSV(w, tb) })
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": tb})
}

func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDate(r.URL.Query().Get("as_of"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", "as_of must be YYYY-MM-DD")
		return
	}
	bs, err := h.service.BalanceSheet(r.Context(), asOf)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	if wantsCSV(r) {
		writeCSV(w, "balance_sheet.csv", func() error { return WriteBalanceSheetCSV(w, bs) })
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": bs})
}

func (h *Handler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", "dates must be YYYY-MM-DD")
		return
	}
	is, err := h.service.IncomeStatement(r.Context(), period)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	if wantsCSV(r) {
		writeCSV(w, "income_statement.csv", func() error { return WriteIncomeStatementCSV(w, is) })
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": is})
}

func (h *Handler) GeneralLedger(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", "dates must be YYYY-MM-DD")
		return
	}
	gl, err := h.service.GeneralLedger(r.Context(), chi.URLParam(r, "code"), period)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	if wantsCSV(r) {
		writeCSV(w, "general_ledger.csv", func() error { return WriteGeneralLedgerCSV(w, gl) })
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": gl})
}

func (h *Handler) respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, coa.ErrAccountNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		h.logger.Error("reports handler failure", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "unexpected failure")
	}
}
