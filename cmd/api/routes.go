package main

import (
	"net/http"

	httphandlers "forge/internal/interfaces/http"
	"forge/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)
	protected := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	mux.Handle("/api/users/me", protected(deps.UserHandler.HandleMe))

	mux.Handle("/api/tenants", protected(deps.TenantHandler.HandleTenants))
	mux.Handle("/api/tenants/{id}", protected(deps.TenantHandler.HandleTenantByID))

	mux.Handle("/api/currencies", protected(deps.CurrencyHandler.HandleCurrencies))
	mux.Handle("/api/currencies/{code}", protected(deps.CurrencyHandler.HandleCurrencyByCode))

	mux.Handle("/api/account-types", protected(deps.AccountTypeHandler.HandleAccountTypes))
	mux.Handle("/api/account-types/{id}", protected(deps.AccountTypeHandler.HandleAccountTypeByID))

	mux.Handle("/api/accounts", protected(deps.AccountHandler.HandleAccounts))
	mux.Handle("/api/accounts/{id}", protected(deps.AccountHandler.HandleAccountByID))

	mux.Handle("/api/categories", protected(deps.CategoryHandler.HandleCategories))
	mux.Handle("/api/categories/{id}", protected(deps.CategoryHandler.HandleCategoryByID))

	mux.Handle("/api/tags", protected(deps.TagHandler.HandleTags))
	mux.Handle("/api/tags/{id}", protected(deps.TagHandler.HandleTagByID))

	mux.Handle("/api/transactions", protected(deps.TransactionHandler.HandleTransactions))
	mux.Handle("/api/transactions/{id}", protected(deps.TransactionHandler.HandleTransactionByID))
	mux.Handle("/api/transactions/{id}/journal-entries", protected(deps.TransactionHandler.HandleTransactionEntries))
	mux.Handle("/api/journal-entries/{id}", protected(deps.TransactionHandler.HandleJournalEntryByID))

	mux.Handle("/api/exchange-rates", protected(deps.ExchangeRateHandler.HandleExchangeRates))
	mux.Handle("/api/exchange-rates/latest", protected(deps.ExchangeRateHandler.HandleLatestRate))
	mux.Handle("/api/exchange-rates/{id}", protected(deps.ExchangeRateHandler.HandleExchangeRateByID))

	mux.Handle("/api/budgets", protected(deps.BudgetHandler.HandleBudgets))
	mux.Handle("/api/budgets/{id}", protected(deps.BudgetHandler.HandleBudgetByID))
	mux.Handle("/api/budgets/{id}/line-items", protected(deps.BudgetHandler.HandleBudgetLineItems))
	mux.Handle("/api/line-items/{id}", protected(deps.BudgetHandler.HandleLineItemByID))

	// Apply global middleware
	return middleware.Logging(middleware.CORS(middleware.Telemetry(mux)))
}
