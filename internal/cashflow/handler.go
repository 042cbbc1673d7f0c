package cashflow

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type AmountRequest struct {
	Jumlah     int64  `json:"jumlah"`
	Keterangan string `json:"keterangan"`
}

// Map error service ke respons HTTP
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrExceedsBalance):
		return fiber.NewError(fiber.StatusBadRequest, "Saldo tidak cukup")
	case errors.Is(err, ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, "Jumlah harus lebih dari 0")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Terjadi kesalahan pada penyimpanan data")
	}
}

func parseBody(c *fiber.Ctx) (AmountRequest, error) {
	var body AmountRequest
	if err := c.BodyParser(&body); err != nil {
		return body, fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
	}
	return body, nil
}

// -------------------------------------------------
// POST /api/cash/capital
// -------------------------------------------------
func SetCapitalHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return err
		}
		if body.Jumlah < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Jumlah tidak boleh negatif")
		}

		mut, err := svc.SetInitialCapital(body.Jumlah)
		if errors.Is(err, ErrAlreadySet) {
			modal, modalErr := svc.GetInitialCapital()
			if modalErr != nil {
				return httpError(modalErr)
			}
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("Modal sudah ditetapkan sebelumnya: Rp %d", modal))
		}
		if err != nil {
			return httpError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"modal_awal": body.Jumlah,
			"saldo":      mut.SaldoSesudah,
		})
	}
}

// -------------------------------------------------
// POST /api/cash/topup
// -------------------------------------------------
func TopUpHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return err
		}
		mut, err := svc.TopUp(body.Jumlah)
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(mut)
	}
}

// -------------------------------------------------
// POST /api/cash/withdrawals
// -------------------------------------------------
func WithdrawHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return err
		}
		mut, err := svc.Withdraw(body.Jumlah)
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(mut)
	}
}

// -------------------------------------------------
// POST /api/cash/incomes
// -------------------------------------------------
func IncomeHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return err
		}
		mut, err := svc.RecordIncome(body.Jumlah, body.Keterangan)
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(mut)
	}
}

// -------------------------------------------------
// POST /api/cash/expenses
// -------------------------------------------------
func ExpenseHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return err
		}
		mut, err := svc.RecordExpense(body.Jumlah, body.Keterangan)
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(mut)
	}
}

// -------------------------------------------------
// GET /api/cash/balance
// -------------------------------------------------
func BalanceHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		saldo, err := svc.CurrentBalance()
		if err != nil {
			return httpError(err)
		}
		return c.JSON(fiber.Map{"saldo": saldo})
	}
}

// -------------------------------------------------
// GET /api/cash/summary
// -------------------------------------------------
func SummaryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sum, err := svc.Summary()
		if err != nil {
			return httpError(err)
		}
		return c.JSON(sum)
	}
}

// -------------------------------------------------
// GET /api/cash/history?limit=N
// -------------------------------------------------
func HistoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 10)
		if limit <= 0 || limit > 100 {
			return fiber.NewError(fiber.StatusBadRequest, "limit harus 1-100")
		}
		events, err := svc.RecentHistory(limit)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(events)
	}
}
