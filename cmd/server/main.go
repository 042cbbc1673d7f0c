package main

import (
	"context"
	"log"
	"strings"

	"kasir-backend/internal/auth"
	"kasir-backend/internal/cashflow"
	"kasir-backend/internal/config"
	"kasir-backend/internal/dashboard"
	"kasir-backend/internal/ledger"
	"kasir-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()

	var st store.RowStore
	switch cfg.StoreDriver {
	case "sheets":
		s, err := store.NewSheetsStore(context.Background(), cfg.GoogleCredentialsPath, cfg.SpreadsheetID)
		if err != nil {
			log.Fatalf("Google Sheets store gagal dibuat: %v", err)
		}
		st = s
	default:
		db := store.ConnectPostgres(cfg.DatabaseDSN)
		s, err := store.NewGormStore(db)
		if err != nil {
			log.Fatalf("Database store gagal dibuat: %v", err)
		}
		st = s
	}

	if err := store.Bootstrap(st); err != nil {
		log.Fatalf("Inisialisasi tabel gagal: %v", err)
	}
	log.Println("Row store siap, semua tabel tersedia.")

	cashSvc := cashflow.NewService(st)
	ledgerSvc := ledger.NewService(st, cashSvc)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error tak terduga:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Kesalahan server tak terduga",
			})
		},
	})

	// CORS origins dari string dipisah koma
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Katalog barang
	protected.Get("/items", ledger.ListItemsHandler())

	// Buku utang
	protected.Post("/purchases", ledger.CreatePurchaseHandler(ledgerSvc))
	protected.Post("/debts", ledger.QuickDebtHandler(ledgerSvc))
	protected.Get("/debts", ledger.ListUnsettledHandler(ledgerSvc))
	protected.Get("/debts/:nama", ledger.CheckDebtHandler(ledgerSvc))
	protected.Post("/settlements", ledger.SettleHandler(ledgerSvc))
	protected.Get("/stats", ledger.StatsHandler(ledgerSvc))

	// Import/export per tingkat
	protected.Get("/tingkat/:tingkat/export", ledger.ExportHandler(ledgerSvc))
	protected.Post("/tingkat/:tingkat/import", ledger.ImportHandler(ledgerSvc))

	// Buku kas
	protected.Post("/cash/capital", cashflow.SetCapitalHandler(cashSvc))
	protected.Post("/cash/topup", cashflow.TopUpHandler(cashSvc))
	protected.Post("/cash/withdrawals", cashflow.WithdrawHandler(cashSvc))
	protected.Post("/cash/incomes", cashflow.IncomeHandler(cashSvc))
	protected.Post("/cash/expenses", cashflow.ExpenseHandler(cashSvc))
	protected.Get("/cash/balance", cashflow.BalanceHandler(cashSvc))
	protected.Get("/cash/summary", cashflow.SummaryHandler(cashSvc))
	protected.Get("/cash/history", cashflow.HistoryHandler(cashSvc))

	// Dashboard gabungan
	protected.Get("/dashboard", dashboard.DashboardHandler(ledgerSvc, cashSvc))

	log.Println("Server jalan di port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
