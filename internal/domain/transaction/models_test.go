package transaction

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"forge/internal/shared/apperror"
)

func entry(entryType EntryType, amount, code string) CreateEntryParams {
	return CreateEntryParams{
		AccountID:    uuid.New(),
		EntryType:    entryType,
		Amount:       decimal.RequireFromString(amount),
		CurrencyCode: code,
	}
}

func validParams(txType Type, entries ...CreateEntryParams) CreateParams {
	return CreateParams{
		TransactionDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Description:     "Office supplies",
		Type:            txType,
		Amount:          decimal.RequireFromString("100.00"),
		CurrencyCode:    "USD",
		JournalEntries:  entries,
	}
}

func TestCreateParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  CreateParams
		wantErr string
	}{
		{
			name: "Balanced Expense",
			params: validParams(TypeExpense,
				entry(EntryTypeDebit, "100.00", "USD"),
				entry(EntryTypeCredit, "100.00", "USD"),
			),
		},
		{
			name: "Unbalanced Expense",
			params: validParams(TypeExpense,
				entry(EntryTypeDebit, "100.00", "USD"),
				entry(EntryTypeCredit, "90.00", "USD"),
			),
			wantErr: "unbalanced",
		},
		{
			name: "Balanced Per Currency",
			params: validParams(TypeTransfer,
				entry(EntryTypeDebit, "100.00", "USD"),
				entry(EntryTypeCredit, "100.00", "USD"),
				entry(EntryTypeDebit, "85.00", "EUR"),
				entry(EntryTypeCredit, "85.00", "EUR"),
			),
		},
		{
			name: "Cross Currency Mismatch",
			params: validParams(TypeTransfer,
				entry(EntryTypeDebit, "100.00", "USD"),
				entry(EntryTypeCredit, "85.00", "EUR"),
			),
			wantErr: "unbalanced",
		},
		{
			name: "Single Sided Adjustment",
			params: validParams(TypeAdjustment,
				entry(EntryTypeDebit, "5.00", "USD"),
			),
		},
		{
			name: "Single Sided Opening Balance",
			params: validParams(TypeOpeningBalance,
				entry(EntryTypeDebit, "1000.00", "USD"),
			),
		},
		{
			name:    "No Entries",
			params:  validParams(TypeExpense),
			wantErr: "at least one journal entry",
		},
		{
			name: "Invalid Entry Indexed",
			params: validParams(TypeExpense,
				entry(EntryTypeDebit, "100.00", "USD"),
				entry(EntryType("SIDEWAYS"), "100.00", "USD"),
			),
			wantErr: "journal entry 1",
		},
		{
			name: "Missing Description",
			params: func() CreateParams {
				p := validParams(TypeExpense,
					entry(EntryTypeDebit, "100.00", "USD"),
					entry(EntryTypeCredit, "100.00", "USD"),
				)
				p.Description = ""
				return p
			}(),
			wantErr: "description is required",
		},
		{
			name: "Zero Amount",
			params: func() CreateParams {
				p := validParams(TypeExpense,
					entry(EntryTypeDebit, "100.00", "USD"),
					entry(EntryTypeCredit, "100.00", "USD"),
				)
				p.Amount = decimal.Zero
				return p
			}(),
			wantErr: "amount must be positive",
		},
		{
			name: "Bad Transaction Type",
			params: func() CreateParams {
				p := validParams(Type("REFUND"),
					entry(EntryTypeDebit, "100.00", "USD"),
					entry(EntryTypeCredit, "100.00", "USD"),
				)
				return p
			}(),
			wantErr: "not a valid transaction type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if apperror.KindOf(err) != apperror.KindValidation {
				t.Errorf("kind = %v, want validation", apperror.KindOf(err))
			}
			if !strings.Contains(apperror.Message(err), tt.wantErr) {
				t.Errorf("message = %q, want to contain %q", apperror.Message(err), tt.wantErr)
			}
		})
	}
}

func TestCreateEntryParamsValidate(t *testing.T) {
	negativeRate := decimal.RequireFromString("-0.5")

	tests := []struct {
		name    string
		mutate  func(*CreateEntryParams)
		wantErr string
	}{
		{name: "Valid", mutate: func(e *CreateEntryParams) {}},
		{
			name:    "Nil Account",
			mutate:  func(e *CreateEntryParams) { e.AccountID = uuid.Nil },
			wantErr: "account ID is required",
		},
		{
			name:    "Negative Amount",
			mutate:  func(e *CreateEntryParams) { e.Amount = decimal.RequireFromString("-1") },
			wantErr: "must not be negative",
		},
		{
			name:    "Bad Currency",
			mutate:  func(e *CreateEntryParams) { e.CurrencyCode = "USDOLLAR" },
			wantErr: "ISO 4217",
		},
		{
			name:    "Non Positive Exchange Rate",
			mutate:  func(e *CreateEntryParams) { e.ExchangeRate = &negativeRate },
			wantErr: "exchange rate must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := entry(EntryTypeDebit, "10.00", "USD")
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(apperror.Message(err), tt.wantErr) {
				t.Errorf("Validate() = %v, want to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateParamsIsEmpty(t *testing.T) {
	if !(UpdateParams{}).IsEmpty() {
		t.Error("zero value should be empty")
	}

	desc := "Updated"
	if (UpdateParams{Description: &desc}).IsEmpty() {
		t.Error("params with a field set should not be empty")
	}

	if (UpdateParams{TagIDs: []uuid.UUID{}}).IsEmpty() {
		t.Error("an explicit empty tag list is a clear-tags request, not an empty patch")
	}

	if err := (UpdateParams{}).Validate(); err == nil {
		t.Error("empty patch should fail validation")
	}
}

func TestParseType(t *testing.T) {
	for _, code := range []string{"INCOME", "EXPENSE", "TRANSFER", "JOURNAL_ENTRY", "OPENING_BALANCE", "ADJUSTMENT"} {
		if _, err := ParseType(code); err != nil {
			t.Errorf("ParseType(%q) = %v, want nil", code, err)
		}
	}
	if _, err := ParseType("expense"); err == nil {
		t.Error("ParseType should reject lowercase codes")
	}
}
