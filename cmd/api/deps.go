package main

import (
	"log"

	"forge/internal/domain/account"
	"forge/internal/domain/budget"
	"forge/internal/domain/category"
	"forge/internal/domain/transaction"
	"forge/internal/infrastructure/kafka"
	"forge/internal/infrastructure/postgres"
	httphandlers "forge/internal/interfaces/http"
	"forge/internal/shared/auth"
	"forge/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB        *postgres.DB
	Publisher *kafka.Publisher

	// Handlers
	AuthHandler         *httphandlers.AuthHandler
	UserHandler         *httphandlers.UserHandler
	TenantHandler       *httphandlers.TenantHandler
	CurrencyHandler     *httphandlers.CurrencyHandler
	AccountTypeHandler  *httphandlers.AccountTypeHandler
	AccountHandler      *httphandlers.AccountHandler
	CategoryHandler     *httphandlers.CategoryHandler
	TagHandler          *httphandlers.TagHandler
	TransactionHandler  *httphandlers.TransactionHandler
	ExchangeRateHandler *httphandlers.ExchangeRateHandler
	BudgetHandler       *httphandlers.BudgetHandler

	// Auth
	JWT *auth.JWT
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Repositories
	tenantRepo := postgres.NewTenantRepository(db)
	currencyRepo := postgres.NewCurrencyRepository(db)
	accountTypeRepo := postgres.NewAccountTypeRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	exchangeRateRepo := postgres.NewExchangeRateRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Event publisher
	var publisher *kafka.Publisher
	var txPublisher transaction.EventPublisher
	if cfg.Kafka.Enabled {
		publisher = kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		txPublisher = publisher
		log.Printf("Kafka publisher enabled on topic %s", cfg.Kafka.Topic)
	}

	// Domain services
	accountService := account.NewService(accountRepo, accountTypeRepo)
	categoryService := category.NewService(categoryRepo)
	transactionService := transaction.NewService(transactionRepo, categoryRepo, txPublisher)
	budgetService := budget.NewService(budgetRepo, categoryRepo, accountRepo)

	// Auth components
	jwt := auth.NewJWT(cfg.JWT.Secret)

	return &Dependencies{
		DB:                  db,
		Publisher:           publisher,
		AuthHandler:         httphandlers.NewAuthHandler(userRepo, jwt),
		UserHandler:         httphandlers.NewUserHandler(userRepo),
		TenantHandler:       httphandlers.NewTenantHandler(tenantRepo),
		CurrencyHandler:     httphandlers.NewCurrencyHandler(currencyRepo),
		AccountTypeHandler:  httphandlers.NewAccountTypeHandler(accountTypeRepo),
		AccountHandler:      httphandlers.NewAccountHandler(accountService),
		CategoryHandler:     httphandlers.NewCategoryHandler(categoryService),
		TagHandler:          httphandlers.NewTagHandler(tagRepo),
		TransactionHandler:  httphandlers.NewTransactionHandler(transactionService),
		ExchangeRateHandler: httphandlers.NewExchangeRateHandler(exchangeRateRepo),
		BudgetHandler:       httphandlers.NewBudgetHandler(budgetService),
		JWT:                 jwt,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.Publisher != nil {
		if err := d.Publisher.Close(); err != nil {
			log.Printf("Error closing Kafka publisher: %v", err)
		}
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
