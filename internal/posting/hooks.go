package posting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/ledgerline/internal/ledger"
)

// CustomerReceiptEvent signals money received from a customer.
type CustomerReceiptEvent struct {
	ReceiptID       int64
	Number          string
	Amount          float64
	ReceivedAt      time.Time
	TreasuryAccount string
}

// SupplierPaymentEvent signals money paid to a supplier.
type SupplierPaymentEvent struct {
	PaymentID       int64
	Number          string
	Amount          float64
	PaidAt          time.Time
	TreasuryAccount string
}

// InvoiceApprovedEvent signals a purchase invoice cleared for accounting.
type InvoiceApprovedEvent struct {
	InvoiceID      int64
	Number         string
	Net            float64
	ApprovedAt     time.Time
	ExpenseAccount string
}

// CreditNoteIssuedEvent signals a credit note granted to a customer.
type CreditNoteIssuedEvent struct {
	CreditNoteID int64
	Number       string
	Net          float64
	IssuedAt     time.Time
}

// Hooks wires business events from operational modules into the ledger via
// the template engine. Source IDs are derived deterministically from the
// originating document so redelivered events post exactly once.
type Hooks struct {
	templates *Service
}

// NewHooks constructs posting hooks.
func NewHooks(templates *Service) *Hooks {
	return &Hooks{templates: templates}
}

func (h *Hooks) apply(ctx context.Context, templateCode string, trigger Context) error {
	if trigger.SourceID == uuid.Nil {
		return errors.New("posting: source id required")
	}
	_, err := h.templates.ApplyTemplate(ctx, templateCode, trigger)
	if err != nil {
		if errors.Is(err, ledger.ErrSourceAlreadyLinked) {
			return nil
		}
	}
	return err
}

// HandleCustomerReceipt posts the entry for a customer receipt.
func (h *Hooks) HandleCustomerReceipt(ctx context.Context, evt CustomerReceiptEvent) error {
	if h == nil || h.templates == nil {
		return nil
	}
	if evt.ReceivedAt.IsZero() {
		return errors.New("posting: receipt date required")
	}
	if evt.Amount <= 0 {
		return nil
	}
	return h.apply(ctx, TemplateCustomerReceipt, Context{
		TriggerType:  TriggerCustomerReceipt,
		Amount:       evt.Amount,
		Date:         evt.ReceivedAt,
		SourceModule: "SALES.RECEIPT",
		SourceID:     uuid.NewSHA1(uuid.Nil, []byte(fmt.Sprintf("RECEIPT:%d", evt.ReceiptID))),
		Memo:         fmt.Sprintf("Customer receipt %s", evt.Number),
		AccountHints: map[string]string{HintTreasuryAccount: evt.TreasuryAccount},
	})
}

// HandleSupplierPayment posts the entry for a supplier payment.
func (h *Hooks) HandleSupplierPayment(ctx context.Context, evt SupplierPaymentEvent) error {
	if h == nil || h.templates == nil {
		return nil
	}
	if evt.PaidAt.IsZero() {
		return errors.New("posting: payment date required")
	}
	if evt.Amount <= 0 {
		return nil
	}
	return h.apply(ctx, TemplateSupplierPayment, Context{
		TriggerType:  TriggerSupplierPayment,
		Amount:       evt.Amount,
		Date:         evt.PaidAt,
		SourceModule: "PURCHASES.PAYMENT",
		SourceID:     uuid.NewSHA1(uuid.Nil, []byte(fmt.Sprintf("PAYMENT:%d", evt.PaymentID))),
		Memo:         fmt.Sprintf("Supplier payment %s", evt.Number),
		AccountHints: map[string]string{HintTreasuryAccount: evt.TreasuryAccount},
	})
}

// HandleInvoiceApproved posts the entry for an approved purchase invoice.
func (h *Hooks) HandleInvoiceApproved(ctx context.Context, evt InvoiceApprovedEvent) error {
	if h == nil || h.templates == nil {
		return nil
	}
	if evt.ApprovedAt.IsZero() {
		return errors.New("posting: invoice approval date required")
	}
	if evt.Net <= 0 {
		return nil
	}
	return h.apply(ctx, TemplatePurchaseInvoice, Context{
		TriggerType:  TriggerInvoiceApproval,
		Amount:       evt.Net,
		Date:         evt.ApprovedAt,
		SourceModule: "PURCHASES.INVOICE",
		SourceID:     uuid.NewSHA1(uuid.Nil, []byte(fmt.Sprintf("APINV:%d", evt.InvoiceID))),
		Memo:         fmt.Sprintf("Purchase invoice %s", evt.Number),
		AccountHints: map[string]string{HintExpenseAccount: evt.ExpenseAccount},
	})
}

// HandleCreditNoteIssued posts the entry for a customer credit note.
func (h *Hooks) HandleCreditNoteIssued(ctx context.Context, evt CreditNoteIssuedEvent) error {
	if h == nil || h.templates == nil {
		return nil
	}
	if evt.IssuedAt.IsZero() {
		return errors.New("posting: credit note date required")
	}
	if evt.Net <= 0 {
		return nil
	}
	return h.apply(ctx, TemplateCreditNote, Context{
		TriggerType:  TriggerCreditNote,
		Amount:       evt.Net,
		Date:         evt.IssuedAt,
		SourceModule: "SALES.CREDIT_NOTE",
		SourceID:     uuid.NewSHA1(uuid.Nil, []byte(fmt.Sprintf("CREDITNOTE:%d", evt.CreditNoteID))),
		Memo:         fmt.Sprintf("Credit note %s", evt.Number),
	})
}
