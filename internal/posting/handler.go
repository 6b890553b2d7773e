package posting

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ledgerline/ledgerline/internal/ledger"
	"github.com/ledgerline/ledgerline/internal/platform/httpx"
)

// Handler exposes entry templates and business event ingestion over HTTP.
type Handler struct {
	service  *Service
	hooks    *Hooks
	logger   *slog.Logger
	validate *validator.Validate
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service *Service, hooks *Hooks) *Handler {
	return &Handler{service: service, hooks: hooks, logger: logger, validate: validator.New()}
}

type templateLineResponse struct {
	Position    int    `json:"position"`
	RefKind     string `json:"ref_kind"`
	AccountCode string `json:"account_code,omitempty"`
	ContextKey  string `json:"context_key,omitempty"`
	Side        string `json:"side"`
	Rule        string `json:"rule"`
	Ratio       string `json:"ratio,omitempty"`
	Description string `json:"description,omitempty"`
}

type templateResponse struct {
	Code        string                 `json:"code"`
	TriggerType string                 `json:"trigger_type"`
	Description string                 `json:"description"`
	IsActive    bool                   `json:"is_active"`
	Lines       []templateLineResponse `json:"lines"`
}

func toTemplateResponse(t Template) templateResponse {
	out := templateResponse{
		Code:        t.Code,
		TriggerType: t.TriggerType,
		Description: t.Description,
		IsActive:    t.IsActive,
	}
	for _, line := range t.Lines {
		lr := templateLineResponse{
			Position:    line.Position,
			RefKind:     string(line.Ref.Kind),
			AccountCode: line.Ref.Code,
			ContextKey:  line.Ref.ContextKey,
			Side:        string(line.Side),
			Rule:        string(line.Rule.Kind),
			Description: line.Description,
		}
		if line.Rule.Kind == RuleProportion {
			lr.Ratio = line.Rule.Ratio.String()
		}
		out.Lines = append(out.Lines, lr)
	}
	return out
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.ListTemplates(r.Context())
	if err != nil {
		h.respondErr(w, err)
		return
	}
	out := make([]templateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, toTemplateResponse(t))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": out})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.service.GetTemplate(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": toTemplateResponse(tpl)})
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ValidateTemplate(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": result})
}

type eventRequest struct {
	RefID           int64   `json:"ref_id" validate:"required"`
	Number          string  `json:"number" validate:"required"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Date            string  `json:"date" validate:"required"`
	TreasuryAccount string  `json:"treasury_account"`
	ExpenseAccount  string  `json:"expense_account"`
}

func (h *Handler) Event(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "date must be YYYY-MM-DD")
		return
	}

	trigger := chi.URLParam(r, "trigger")
	switch trigger {
	case TriggerCustomerReceipt:
		err = h.hooks.HandleCustomerReceipt(r.Context(), CustomerReceiptEvent{
			ReceiptID: req.RefID, Number: req.Number, Amount: req.Amount,
			ReceivedAt: date, TreasuryAccount: req.TreasuryAccount,
		})
	case TriggerSupplierPayment:
		err = h.hooks.HandleSupplierPayment(r.Context(), SupplierPaymentEvent{
			PaymentID: req.RefID, Number: req.Number, Amount: req.Amount,
			PaidAt: date, TreasuryAccount: req.TreasuryAccount,
		})
	case TriggerInvoiceApproval:
		err = h.hooks.HandleInvoiceApproved(r.Context(), InvoiceApprovedEvent{
			InvoiceID: req.RefID, Number: req.Number, Net: req.Amount,
			ApprovedAt: date, ExpenseAccount: req.ExpenseAccount,
		})
	case TriggerCreditNote:
		err = h.hooks.HandleCreditNoteIssued(r.Context(), CreditNoteIssuedEvent{
			CreditNoteID: req.RefID, Number: req.Number, Net: req.Amount,
			IssuedAt: date,
		})
	default:
		httpx.Problem(w, http.StatusNotFound, "Not Found", "unknown trigger type")
		return
	}
	if err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]any{"status": "accepted"})
}

func (h *Handler) respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTemplateNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrAccountResolutionFailed):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Account Resolution Failed", err.Error())
	case errors.Is(err, ErrUnbalancedTemplateOutput):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unbalanced Template", err.Error())
	case errors.Is(err, ledger.ErrAccountNotPostable):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Account Not Postable", err.Error())
	default:
		h.logger.Error("posting handler failure", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "unexpected failure")
	}
}
