package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"kasir-backend/internal/cashflow"
	"kasir-backend/internal/models"
	"kasir-backend/internal/store"
)

var (
	ErrNotFound       = errors.New("pelanggan tidak ditemukan")
	ErrExceedsBalance = errors.New("jumlah melebihi total utang")
	ErrInvalidInput   = errors.New("input tidak valid")
)

// Service: buku utang per tingkat. Satu baris per pelanggan per tingkat;
// pembelian berulang di-merge ke baris yang sama (detail per item memang
// dibuang), pelunasan penuh diarsipkan ke History lalu barisnya dihapus.
type Service struct {
	store store.RowStore
	cash  *cashflow.Service
	now   func() time.Time
}

func NewService(st store.RowStore, cash *cashflow.Service) *Service {
	return &Service{store: st, cash: cash, now: time.Now}
}

type UnsettledEntry struct {
	Nama    string `json:"nama"`
	Tingkat int    `json:"tingkat"`
	Total   int64  `json:"total"`
}

type SettleResult struct {
	Lunas        bool  `json:"lunas"` // true = pelunasan penuh, false = cicilan
	Jumlah       int64 `json:"jumlah"`
	UtangSebelum int64 `json:"utang_sebelum"`
	SisaUtang    int64 `json:"sisa_utang"`
	SaldoSebelum int64 `json:"saldo_sebelum"`
	SaldoSesudah int64 `json:"saldo_sesudah"`
}

type ImportResult struct {
	Imported int `json:"imported"`
	Merged   int `json:"merged"`
	Skipped  int `json:"skipped"`
}

type TingkatStats struct {
	TotalUtang int64 `json:"total_utang"`
	Pelanggan  int   `json:"pelanggan"`
	Transaksi  int   `json:"transaksi"`
}

type Stats struct {
	PerTingkat     map[int]TingkatStats `json:"per_tingkat"`
	TotalUtang     int64                `json:"total_utang"`
	TotalPelanggan int                  `json:"total_pelanggan"`
	TotalTransaksi int                  `json:"total_transaksi"`
}

// findCustomer: cari baris pelanggan di satu tingkat, nama case-insensitive.
// Return index -1 kalau tidak ada.
func (s *Service) findCustomer(tingkat int, nama string) (int, models.CustomerBalance, error) {
	rows, err := s.store.ListRows(models.TingkatTable(tingkat))
	if err != nil {
		return -1, models.CustomerBalance{}, err
	}
	target := strings.TrimSpace(nama)
	for i, row := range rows {
		if len(row) > models.ColNama && strings.EqualFold(strings.TrimSpace(row[models.ColNama]), target) {
			cb, err := models.CustomerBalanceFromRow(tingkat, row)
			if err != nil {
				return -1, models.CustomerBalance{}, err
			}
			return i, cb, nil
		}
	}
	return -1, models.CustomerBalance{}, nil
}

// upsert: inti merge-or-insert. Kalau pelanggan sudah punya baris, total
// ditambah dan detail item diganti sentinel; kalau belum, baris baru.
func (s *Service) upsert(tingkat int, nama, barang, jumlah, harga, tanggal string, total int64) (int64, bool, error) {
	idx, cb, err := s.findCustomer(tingkat, nama)
	if err != nil {
		return 0, false, err
	}

	table := models.TingkatTable(tingkat)

	if idx >= 0 {
		newTotal := cb.Total + total
		updates := []struct {
			col   int
			value string
		}{
			{models.ColTanggal, tanggal},
			{models.ColBarang, models.SentinelMultiple},
			{models.ColJumlah, models.SentinelDash},
			{models.ColHargaSatuan, models.SentinelDash},
			{models.ColTotal, strconv.FormatInt(newTotal, 10)},
		}
		for _, u := range updates {
			if err := s.store.UpdateCell(table, idx, u.col, u.value); err != nil {
				return 0, false, err
			}
		}
		return newTotal, true, nil
	}

	cb = models.CustomerBalance{
		Tingkat:     tingkat,
		Tanggal:     tanggal,
		Nama:        strings.TrimSpace(nama),
		Barang:      barang,
		Jumlah:      jumlah,
		HargaSatuan: harga,
		Total:       total,
	}
	if err := s.store.AppendRow(table, cb.Row()); err != nil {
		return 0, false, err
	}
	return total, false, nil
}

// RecordPurchase: catat pembelian. Return total utang pelanggan sesudahnya.
func (s *Service) RecordPurchase(tingkat int, nama, barang string, jumlah int, hargaSatuan, total int64, waktu time.Time) (int64, error) {
	if !models.ValidTingkat(tingkat) {
		return 0, fmt.Errorf("%w: tingkat harus 1-4", ErrInvalidInput)
	}
	if strings.TrimSpace(nama) == "" {
		return 0, fmt.Errorf("%w: nama kosong", ErrInvalidInput)
	}
	if total <= 0 {
		return 0, fmt.Errorf("%w: total harus lebih dari 0", ErrInvalidInput)
	}

	newTotal, _, err := s.upsert(tingkat, nama, barang,
		strconv.Itoa(jumlah), strconv.FormatInt(hargaSatuan, 10),
		waktu.Format(models.TimeLayout), total)
	return newTotal, err
}

// QuickAddDebt: entri utang cepat tanpa item katalog (perintah /utang lama)
func (s *Service) QuickAddDebt(tingkat int, nama string, jumlah int64, waktu time.Time) (int64, error) {
	if !models.ValidTingkat(tingkat) {
		return 0, fmt.Errorf("%w: tingkat harus 1-4", ErrInvalidInput)
	}
	if strings.TrimSpace(nama) == "" {
		return 0, fmt.Errorf("%w: nama kosong", ErrInvalidInput)
	}
	if jumlah <= 0 {
		return 0, fmt.Errorf("%w: jumlah harus lebih dari 0", ErrInvalidInput)
	}

	newTotal, _, err := s.upsert(tingkat, nama, models.ItemUtang,
		models.SentinelDash, models.SentinelDash,
		waktu.Format(models.TimeLayout), jumlah)
	return newTotal, err
}

// GetBalance: total utang pelanggan di satu tingkat, atau semua tingkat
// kalau tingkat=0. Tingkat tanpa baris dihitung 0.
func (s *Service) GetBalance(nama string, tingkat int) (int64, error) {
	if tingkat != 0 {
		if !models.ValidTingkat(tingkat) {
			return 0, fmt.Errorf("%w: tingkat harus 1-4", ErrInvalidInput)
		}
		_, cb, err := s.findCustomer(tingkat, nama)
		if err != nil {
			return 0, err
		}
		return cb.Total, nil
	}

	var total int64
	for t := models.MinTingkat; t <= models.MaxTingkat; t++ {
		_, cb, err := s.findCustomer(t, nama)
		if err != nil {
			return 0, err
		}
		total += cb.Total
	}
	return total, nil
}

// ListUnsettled: semua pelanggan yang masih punya utang, urut tingkat lalu nama
func (s *Service) ListUnsettled(tingkat int) ([]UnsettledEntry, error) {
	from, to := models.MinTingkat, models.MaxTingkat
	if tingkat != 0 {
		if !models.ValidTingkat(tingkat) {
			return nil, fmt.Errorf("%w: tingkat harus 1-4", ErrInvalidInput)
		}
		from, to = tingkat, tingkat
	}

	entries := []UnsettledEntry{}
	for t := from; t <= to; t++ {
		rows, err := s.store.ListRows(models.TingkatTable(t))
		if err != nil {
			return nil, err
		}
		perTingkat := make([]UnsettledEntry, 0, len(rows))
		for _, row := range rows {
			cb, err := models.CustomerBalanceFromRow(t, row)
			if err != nil {
				return nil, err
			}
			perTingkat = append(perTingkat, UnsettledEntry{Nama: cb.Nama, Tingkat: t, Total: cb.Total})
		}
		sort.Slice(perTingkat, func(i, j int) bool {
			return strings.ToLower(perTingkat[i].Nama) < strings.ToLower(perTingkat[j].Nama)
		})
		entries = append(entries, perTingkat...)
	}
	return entries, nil
}

// Settle: pelunasan. jumlah=0 berarti lunas penuh; jumlah < total berarti
// cicilan (baris tetap, total dikurangi, tanpa arsip History).
func (s *Service) Settle(tingkat int, nama string, jumlah int64) (*SettleResult, error) {
	if !models.ValidTingkat(tingkat) {
		return nil, fmt.Errorf("%w: tingkat harus 1-4", ErrInvalidInput)
	}
	if jumlah < 0 {
		return nil, fmt.Errorf("%w: jumlah tidak boleh negatif", ErrInvalidInput)
	}

	idx, cb, err := s.findCustomer(tingkat, nama)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, ErrNotFound
	}
	if jumlah > cb.Total {
		return nil, ErrExceedsBalance
	}

	table := models.TingkatTable(tingkat)

	// Pelunasan penuh: arsip ke History dulu, hapus baris, lalu event kas
	if jumlah == 0 || jumlah == cb.Total {
		rec := models.HistoryRecord{
			TanggalLunas:     s.now().Format(models.TimeLayout),
			Tingkat:          tingkat,
			TanggalTransaksi: cb.Tanggal,
			Nama:             cb.Nama,
			Jumlah:           cb.Total,
		}
		if err := s.store.AppendRow(models.TableHistory, rec.Row()); err != nil {
			return nil, err
		}
		if err := s.store.DeleteRow(table, idx); err != nil {
			return nil, err
		}
		mut, err := s.cash.AppendSettlement(cb.Nama, tingkat, cb.Total)
		if err != nil {
			return nil, err
		}
		return &SettleResult{
			Lunas:        true,
			Jumlah:       cb.Total,
			UtangSebelum: cb.Total,
			SisaUtang:    0,
			SaldoSebelum: mut.SaldoSebelum,
			SaldoSesudah: mut.SaldoSesudah,
		}, nil
	}

	// Cicilan: kurangi total di tempat
	sisa := cb.Total - jumlah
	if err := s.store.UpdateCell(table, idx, models.ColTotal, strconv.FormatInt(sisa, 10)); err != nil {
		return nil, err
	}
	mut, err := s.cash.AppendInstallment(cb.Nama, tingkat, jumlah, cb.Total, sisa)
	if err != nil {
		return nil, err
	}
	return &SettleResult{
		Lunas:        false,
		Jumlah:       jumlah,
		UtangSebelum: cb.Total,
		SisaUtang:    sisa,
		SaldoSebelum: mut.SaldoSebelum,
		SaldoSesudah: mut.SaldoSesudah,
	}, nil
}

// Stats: ringkasan per tingkat. Satu baris = satu pelanggan = satu "transaksi"
// karena detail per item memang dibuang saat merge.
func (s *Service) Stats() (*Stats, error) {
	stats := &Stats{PerTingkat: make(map[int]TingkatStats, models.MaxTingkat)}
	for t := models.MinTingkat; t <= models.MaxTingkat; t++ {
		rows, err := s.store.ListRows(models.TingkatTable(t))
		if err != nil {
			return nil, err
		}
		ts := TingkatStats{Pelanggan: len(rows), Transaksi: len(rows)}
		for _, row := range rows {
			cb, err := models.CustomerBalanceFromRow(t, row)
			if err != nil {
				return nil, err
			}
			ts.TotalUtang += cb.Total
		}
		stats.PerTingkat[t] = ts
		stats.TotalUtang += ts.TotalUtang
		stats.TotalPelanggan += ts.Pelanggan
		stats.TotalTransaksi += ts.Transaksi
	}
	return stats, nil
}
