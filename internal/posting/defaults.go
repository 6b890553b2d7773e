package posting

import "github.com/shopspring/decimal"

// Trigger types known in this domain. Each maps to one template code.
const (
	TriggerCustomerReceipt = "sales.receipt"
	TriggerSupplierPayment = "purchases.payment"
	TriggerInvoiceApproval = "purchases.invoice_approval"
	TriggerCreditNote      = "sales.credit_note"
)

// Template codes for the built-in triggers.
const (
	TemplateCustomerReceipt = "CUSTOMER_RECEIPT"
	TemplateSupplierPayment = "SUPPLIER_PAYMENT"
	TemplatePurchaseInvoice = "PURCHASE_INVOICE"
	TemplateCreditNote      = "CREDIT_NOTE"
)

// Context hint keys used by the built-in templates.
const (
	HintTreasuryAccount = "treasury_account"
	HintExpenseAccount  = "expense_account"
)

var vatRate = decimal.RequireFromString("0.21")

// DefaultTemplates are the built-in templates for the four known business
// triggers, authored against the default chart codes. Invoice amounts are
// net of tax; the tax portion is derived by proportion and the closing
// balance line keeps every template balanced by construction.
var DefaultTemplates = []Template{
	{
		Code:        TemplateCustomerReceipt,
		TriggerType: TriggerCustomerReceipt,
		Description: "Customer receipt: funds into treasury, receivable settled",
		IsActive:    true,
		Lines: []TemplateLine{
			{Position: 1, Ref: DynamicRef(HintTreasuryAccount), Side: SideDebit, Rule: AmountRule{Kind: RuleFull}, Description: "Funds received"},
			{Position: 2, Ref: FixedRef("1.1.2.001"), Side: SideCredit, Rule: AmountRule{Kind: RuleBalance}, Description: "Receivable settled"},
		},
	},
	{
		Code:        TemplateSupplierPayment,
		TriggerType: TriggerSupplierPayment,
		Description: "Supplier payment: payable settled, funds out of treasury",
		IsActive:    true,
		Lines: []TemplateLine{
			{Position: 1, Ref: FixedRef("2.1.1.001"), Side: SideDebit, Rule: AmountRule{Kind: RuleFull}, Description: "Payable settled"},
			{Position: 2, Ref: DynamicRef(HintTreasuryAccount), Side: SideCredit, Rule: AmountRule{Kind: RuleBalance}, Description: "Funds paid"},
		},
	},
	{
		Code:        TemplatePurchaseInvoice,
		TriggerType: TriggerInvoiceApproval,
		Description: "Purchase invoice approval: expense plus tax credit against payable",
		IsActive:    true,
		Lines: []TemplateLine{
			{Position: 1, Ref: DynamicRef(HintExpenseAccount), Side: SideDebit, Rule: AmountRule{Kind: RuleFull}, Description: "Goods or services"},
			{Position: 2, Ref: FixedRef("1.1.4.001"), Side: SideDebit, Rule: AmountRule{Kind: RuleProportion, Ratio: vatRate}, Description: "VAT credit"},
			{Position: 3, Ref: FixedRef("2.1.1.001"), Side: SideCredit, Rule: AmountRule{Kind: RuleBalance}, Description: "Payable"},
		},
	},
	{
		Code:        TemplateCreditNote,
		TriggerType: TriggerCreditNote,
		Description: "Credit note issuance: sales and tax reversed against receivable",
		IsActive:    true,
		Lines: []TemplateLine{
			{Position: 1, Ref: FixedRef("4.1.1.001"), Side: SideDebit, Rule: AmountRule{Kind: RuleFull}, Description: "Sales reversed"},
			{Position: 2, Ref: FixedRef("2.1.2.001"), Side: SideDebit, Rule: AmountRule{Kind: RuleProportion, Ratio: vatRate}, Description: "VAT payable reversed"},
			{Position: 3, Ref: FixedRef("1.1.2.001"), Side: SideCredit, Rule: AmountRule{Kind: RuleBalance}, Description: "Receivable reduced"},
		},
	},
}

// TemplateCodeForTrigger maps a trigger type to its template code.
func TemplateCodeForTrigger(trigger string) (string, bool) {
	switch trigger {
	case TriggerCustomerReceipt:
		return TemplateCustomerReceipt, true
	case TriggerSupplierPayment:
		return TemplateSupplierPayment, true
	case TriggerInvoiceApproval:
		return TemplatePurchaseInvoice, true
	case TriggerCreditNote:
		return TemplateCreditNote, true
	}
	return "", false
}
