package ledger

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"kasir-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PurchaseRequest struct {
	Tingkat     int    `json:"tingkat"`
	Nama        string `json:"nama"`
	Barang      string `json:"barang"`
	Jumlah      int    `json:"jumlah"`
	HargaSatuan int64  `json:"harga_satuan"` // opsional kalau barang ada di katalog
	Tanggal     string `json:"tanggal"`      // "YYYY-MM-DD", kosong = sekarang
}

type QuickDebtRequest struct {
	Tingkat int    `json:"tingkat"`
	Nama    string `json:"nama"`
	Jumlah  int64  `json:"jumlah"`
}

type SettleRequest struct {
	Tingkat int    `json:"tingkat"`
	Nama    string `json:"nama"`
	Jumlah  int64  `json:"jumlah"` // 0 atau tidak diisi = lunas penuh
}

type DebtBreakdownItem struct {
	Tingkat int   `json:"tingkat"`
	Total   int64 `json:"total"`
}

// Map error service ke respons HTTP
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Pelanggan tidak ditemukan")
	case errors.Is(err, ErrExceedsBalance):
		return fiber.NewError(fiber.StatusBadRequest, "Jumlah melebihi total utang")
	case errors.Is(err, ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Terjadi kesalahan pada penyimpanan data")
	}
}

func parseTingkatParam(c *fiber.Ctx) (int, error) {
	t, err := c.ParamsInt("tingkat")
	if err != nil || !models.ValidTingkat(t) {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Tingkat harus 1, 2, 3, atau 4")
	}
	return t, nil
}

// tingkat dari query, 0 = semua tingkat
func parseTingkatQuery(c *fiber.Ctx) (int, error) {
	s := c.Query("tingkat")
	if s == "" {
		return 0, nil
	}
	var t int
	if _, err := fmt.Sscan(s, &t); err != nil || !models.ValidTingkat(t) {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Tingkat harus 1, 2, 3, atau 4")
	}
	return t, nil
}

// -------------------------------------------------
// GET /api/items
// -------------------------------------------------
func ListItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(Catalog)
	}
}

// -------------------------------------------------
// POST /api/purchases
// -------------------------------------------------
func CreatePurchaseHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if !models.ValidTingkat(body.Tingkat) {
			return fiber.NewError(fiber.StatusBadRequest, "Tingkat harus 1, 2, 3, atau 4")
		}
		if strings.TrimSpace(body.Nama) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama tidak boleh kosong")
		}
		if body.Jumlah <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Jumlah harus lebih dari 0")
		}

		// Barang dari katalog pakai nama & harga katalog; di luar katalog
		// wajib kirim harga_satuan sendiri
		barang := strings.TrimSpace(body.Barang)
		harga := body.HargaSatuan
		if item, ok := Catalog[strings.ToLower(barang)]; ok {
			barang = item.Nama
			harga = item.Harga
		}
		if barang == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Barang tidak boleh kosong")
		}
		if harga <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Harga satuan harus lebih dari 0")
		}

		waktu := time.Now()
		if body.Tanggal != "" {
			d, err := time.Parse("2006-01-02", body.Tanggal)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Format tanggal tidak valid, harus 'YYYY-MM-DD'")
			}
			waktu = d
		}

		total := harga * int64(body.Jumlah)
		totalUtang, err := svc.RecordPurchase(body.Tingkat, body.Nama, barang, body.Jumlah, harga, total, waktu)
		if err != nil {
			return httpError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"tingkat":      body.Tingkat,
			"nama":         strings.TrimSpace(body.Nama),
			"barang":       barang,
			"jumlah":       body.Jumlah,
			"harga_satuan": harga,
			"total":        total,
			"total_utang":  totalUtang,
		})
	}
}

// -------------------------------------------------
// POST /api/debts  (entri utang cepat)
// -------------------------------------------------
func QuickDebtHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body QuickDebtRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if !models.ValidTingkat(body.Tingkat) {
			return fiber.NewError(fiber.StatusBadRequest, "Tingkat harus 1, 2, 3, atau 4")
		}
		if strings.TrimSpace(body.Nama) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama tidak boleh kosong")
		}
		if body.Jumlah <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Jumlah harus lebih dari 0")
		}

		totalUtang, err := svc.QuickAddDebt(body.Tingkat, body.Nama, body.Jumlah, time.Now())
		if err != nil {
			return httpError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"tingkat":     body.Tingkat,
			"nama":        strings.TrimSpace(body.Nama),
			"jumlah":      body.Jumlah,
			"total_utang": totalUtang,
		})
	}
}

// -------------------------------------------------
// GET /api/debts/:nama?tingkat=N
// -------------------------------------------------
func CheckDebtHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		nama, err := url.PathUnescape(c.Params("nama"))
		if err != nil || strings.TrimSpace(nama) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama tidak boleh kosong")
		}

		tingkat, err := parseTingkatQuery(c)
		if err != nil {
			return err
		}

		if tingkat != 0 {
			total, err := svc.GetBalance(nama, tingkat)
			if err != nil {
				return httpError(err)
			}
			return c.JSON(fiber.Map{"nama": nama, "tingkat": tingkat, "total": total})
		}

		rincian := []DebtBreakdownItem{}
		var total int64
		for t := models.MinTingkat; t <= models.MaxTingkat; t++ {
			sub, err := svc.GetBalance(nama, t)
			if err != nil {
				return httpError(err)
			}
			if sub > 0 {
				rincian = append(rincian, DebtBreakdownItem{Tingkat: t, Total: sub})
			}
			total += sub
		}
		return c.JSON(fiber.Map{"nama": nama, "rincian": rincian, "total": total})
	}
}

// -------------------------------------------------
// GET /api/debts?tingkat=N
// -------------------------------------------------
func ListUnsettledHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tingkat, err := parseTingkatQuery(c)
		if err != nil {
			return err
		}
		entries, err := svc.ListUnsettled(tingkat)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(entries)
	}
}

// -------------------------------------------------
// POST /api/settlements
// -------------------------------------------------
func SettleHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SettleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		if strings.TrimSpace(body.Nama) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama tidak boleh kosong")
		}
		if body.Jumlah < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Jumlah tidak boleh negatif")
		}

		res, err := svc.Settle(body.Tingkat, body.Nama, body.Jumlah)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(res)
	}
}

// -------------------------------------------------
// GET /api/stats
// -------------------------------------------------
func StatsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats()
		if err != nil {
			return httpError(err)
		}
		return c.JSON(stats)
	}
}

// -------------------------------------------------
// GET /api/tingkat/:tingkat/export?format=csv|xlsx
// -------------------------------------------------
func ExportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tingkat, err := parseTingkatParam(c)
		if err != nil {
			return err
		}

		format := c.Query("format", "csv")
		stamp := time.Now().Format("20060102")

		switch format {
		case "csv":
			data, err := svc.ExportCSV(tingkat)
			if err != nil {
				return httpError(err)
			}
			if data == "" {
				return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Tidak ada data di Tingkat %d", tingkat))
			}
			c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
			c.Set(fiber.HeaderContentDisposition,
				fmt.Sprintf(`attachment; filename="tingkat_%d_%s.csv"`, tingkat, stamp))
			return c.SendString(data)
		case "xlsx":
			data, err := svc.ExportXLSX(tingkat)
			if err != nil {
				return httpError(err)
			}
			if data == nil {
				return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Tidak ada data di Tingkat %d", tingkat))
			}
			c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Set(fiber.HeaderContentDisposition,
				fmt.Sprintf(`attachment; filename="tingkat_%d_%s.xlsx"`, tingkat, stamp))
			return c.Send(data)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Format tidak dikenal (csv|xlsx)")
		}
	}
}

// -------------------------------------------------
// POST /api/tingkat/:tingkat/import  (body = CSV mentah)
// -------------------------------------------------
func ImportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tingkat, err := parseTingkatParam(c)
		if err != nil {
			return err
		}

		data := string(c.Body())
		if strings.TrimSpace(data) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Body CSV kosong")
		}

		res, err := svc.ImportCSV(tingkat, data)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(res)
	}
}
