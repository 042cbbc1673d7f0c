package dashboard

import (
	"kasir-backend/internal/cashflow"
	"kasir-backend/internal/ledger"
	"kasir-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SaldoBlock struct {
	Saldo     int64 `json:"saldo"`
	ModalAwal int64 `json:"modal_awal"`
	Profit    int64 `json:"profit"`
}

type UtangItem struct {
	Tingkat int   `json:"tingkat"`
	Total   int64 `json:"total"`
}

type UtangBlock struct {
	PerTingkat []UtangItem `json:"per_tingkat"`
	Total      int64       `json:"total"`
}

type PendapatanBlock struct {
	Pelunasan int64 `json:"pelunasan"`
	Cicilan   int64 `json:"cicilan"`
	Pemasukan int64 `json:"pemasukan"`
	Total     int64 `json:"total"`
}

type PengeluaranBlock struct {
	Operasional int64 `json:"operasional"`
	Penarikan   int64 `json:"penarikan"`
	Total       int64 `json:"total"`
}

type ProyeksiBlock struct {
	Saldo           int64 `json:"saldo"`
	UtangBelumMasuk int64 `json:"utang_belum_masuk"`
	PotensiTotal    int64 `json:"potensi_total"`
}

type DashboardResponse struct {
	Saldo       SaldoBlock       `json:"saldo"`
	Utang       UtangBlock       `json:"utang"`
	Pendapatan  PendapatanBlock  `json:"pendapatan"`
	Pengeluaran PengeluaranBlock `json:"pengeluaran"`
	Proyeksi    ProyeksiBlock    `json:"proyeksi"`
}

// -------------------------------------------------
// GET /api/dashboard
// -------------------------------------------------
// Dashboard keuangan gabungan: saldo kas + rincian utang + proyeksi.
// Potensi total = saldo di tangan + utang yang belum masuk.
func DashboardHandler(ledgerSvc *ledger.Service, cashSvc *cashflow.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sum, err := cashSvc.Summary()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Terjadi kesalahan pada penyimpanan data")
		}
		stats, err := ledgerSvc.Stats()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Terjadi kesalahan pada penyimpanan data")
		}

		utang := UtangBlock{PerTingkat: make([]UtangItem, 0, models.MaxTingkat)}
		for t := models.MinTingkat; t <= models.MaxTingkat; t++ {
			ts := stats.PerTingkat[t]
			utang.PerTingkat = append(utang.PerTingkat, UtangItem{Tingkat: t, Total: ts.TotalUtang})
			utang.Total += ts.TotalUtang
		}

		return c.JSON(DashboardResponse{
			Saldo: SaldoBlock{
				Saldo:     sum.Saldo,
				ModalAwal: sum.ModalAwal,
				Profit:    sum.Profit,
			},
			Utang: utang,
			Pendapatan: PendapatanBlock{
				Pelunasan: sum.TotalPelunasan,
				Cicilan:   sum.TotalCicilan,
				Pemasukan: sum.TotalPemasukan,
				Total:     sum.TotalPendapatan,
			},
			Pengeluaran: PengeluaranBlock{
				Operasional: sum.TotalPengeluaranOps,
				Penarikan:   sum.TotalPenarikan,
				Total:       sum.TotalPengeluaran,
			},
			Proyeksi: ProyeksiBlock{
				Saldo:           sum.Saldo,
				UtangBelumMasuk: utang.Total,
				PotensiTotal:    sum.Saldo + utang.Total,
			},
		})
	}
}
