package cashflow

import (
	"errors"
	"fmt"
	"time"

	"kasir-backend/internal/models"
	"kasir-backend/internal/store"
)

var (
	ErrAlreadySet     = errors.New("modal awal sudah ditetapkan")
	ErrExceedsBalance = errors.New("saldo tidak cukup")
	ErrInvalidInput   = errors.New("input tidak valid")
)

// Service: buku kas (tabel Keuangan). Satu-satunya sumber kebenaran adalah
// log event append-only; saldo dan ringkasan selalu diturunkan dengan replay,
// tanpa flag atau cache (disengaja, lihat catatan di RowStore).
type Service struct {
	store store.RowStore
	now   func() time.Time
}

func NewService(st store.RowStore) *Service {
	return &Service{store: st, now: time.Now}
}

// Mutation: saldo sebelum/sesudah sebuah event kas, untuk ditampilkan driver
type Mutation struct {
	SaldoSebelum int64 `json:"saldo_sebelum"`
	SaldoSesudah int64 `json:"saldo_sesudah"`
}

type Summary struct {
	Saldo               int64 `json:"saldo"`
	ModalAwal           int64 `json:"modal_awal"`
	Profit              int64 `json:"profit"`
	TotalPelunasan      int64 `json:"total_pelunasan"`
	TotalCicilan        int64 `json:"total_cicilan"`
	TotalPemasukan      int64 `json:"total_pemasukan"`
	TotalPengeluaranOps int64 `json:"total_pengeluaran_ops"`
	TotalPenarikan      int64 `json:"total_penarikan"`
	TotalPendapatan     int64 `json:"total_pendapatan"`
	TotalPengeluaran    int64 `json:"total_pengeluaran"`
}

func (s *Service) events() ([]models.CashEvent, error) {
	rows, err := s.store.ListRows(models.TableKeuangan)
	if err != nil {
		return nil, err
	}
	events := make([]models.CashEvent, 0, len(rows))
	for i, row := range rows {
		ev, err := models.CashEventFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("baris Keuangan ke-%d rusak: %w", i+1, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// CurrentBalance: saldo dari event terakhir, 0 kalau log masih kosong
func (s *Service) CurrentBalance() (int64, error) {
	events, err := s.events()
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}
	return events[len(events)-1].Saldo, nil
}

func (s *Service) append(tipe models.CashCategory, keterangan string, debit, kredit int64) (Mutation, error) {
	before, err := s.CurrentBalance()
	if err != nil {
		return Mutation{}, err
	}
	after := before + debit - kredit

	ev := models.CashEvent{
		Tanggal:    s.now().Format(models.TimeLayout),
		Tipe:       tipe,
		Keterangan: keterangan,
		Debit:      debit,
		Kredit:     kredit,
		Saldo:      after,
	}
	if err := s.store.AppendRow(models.TableKeuangan, ev.Row()); err != nil {
		return Mutation{}, err
	}
	return Mutation{SaldoSebelum: before, SaldoSesudah: after}, nil
}

// SetInitialCapital: maksimal satu event Modal Awal seumur hidup log.
// Dicek dengan scan seluruh log, bukan flag tersimpan.
func (s *Service) SetInitialCapital(amount int64) (Mutation, error) {
	if amount < 0 {
		return Mutation{}, ErrInvalidInput
	}
	events, err := s.events()
	if err != nil {
		return Mutation{}, err
	}
	for _, ev := range events {
		if ev.Tipe == models.CategoryModalAwal {
			return Mutation{}, ErrAlreadySet
		}
	}
	return s.append(models.CategoryModalAwal, "Modal awal", amount, 0)
}

// GetInitialCapital: debit event Modal Awal, 0 kalau belum pernah diset
func (s *Service) GetInitialCapital() (int64, error) {
	events, err := s.events()
	if err != nil {
		return 0, err
	}
	for _, ev := range events {
		if ev.Tipe == models.CategoryModalAwal {
			return ev.Debit, nil
		}
	}
	return 0, nil
}

func (s *Service) TopUp(amount int64) (Mutation, error) {
	if amount <= 0 {
		return Mutation{}, ErrInvalidInput
	}
	return s.append(models.CategoryTopUp, "Top-up saldo", amount, 0)
}

func (s *Service) Withdraw(amount int64) (Mutation, error) {
	if amount <= 0 {
		return Mutation{}, ErrInvalidInput
	}
	before, err := s.CurrentBalance()
	if err != nil {
		return Mutation{}, err
	}
	if amount > before {
		return Mutation{}, ErrExceedsBalance
	}
	return s.append(models.CategoryPenarikan, "Penarikan saldo", 0, amount)
}

func (s *Service) RecordIncome(amount int64, keterangan string) (Mutation, error) {
	if amount <= 0 {
		return Mutation{}, ErrInvalidInput
	}
	if keterangan == "" {
		keterangan = "Pemasukan cash"
	}
	return s.append(models.CategoryPemasukan, keterangan, amount, 0)
}

func (s *Service) RecordExpense(amount int64, keterangan string) (Mutation, error) {
	if amount <= 0 {
		return Mutation{}, ErrInvalidInput
	}
	if keterangan == "" {
		keterangan = "Pengeluaran operasional"
	}
	before, err := s.CurrentBalance()
	if err != nil {
		return Mutation{}, err
	}
	if amount > before {
		return Mutation{}, ErrExceedsBalance
	}
	return s.append(models.CategoryPengeluaran, keterangan, 0, amount)
}

// AppendSettlement: event kas untuk pelunasan penuh (dipanggil debt ledger)
func (s *Service) AppendSettlement(nama string, tingkat int, amount int64) (Mutation, error) {
	keterangan := fmt.Sprintf("Pelunasan %s (Tingkat %d)", nama, tingkat)
	return s.append(models.CategoryPelunasan, keterangan, amount, 0)
}

// AppendInstallment: event kas untuk cicilan (dipanggil debt ledger)
func (s *Service) AppendInstallment(nama string, tingkat int, amount, utangAwal, sisa int64) (Mutation, error) {
	keterangan := fmt.Sprintf("Cicilan %s (Tingkat %d) - utang Rp %d, sisa Rp %d",
		nama, tingkat, utangAwal, sisa)
	return s.append(models.CategoryCicilan, keterangan, amount, 0)
}

// Summary: satu kali replay seluruh log
func (s *Service) Summary() (*Summary, error) {
	events, err := s.events()
	if err != nil {
		return nil, err
	}

	sum := &Summary{}
	for _, ev := range events {
		sum.Saldo = ev.Saldo
		switch ev.Tipe {
		case models.CategoryModalAwal:
			sum.ModalAwal = ev.Debit
		case models.CategoryPelunasan:
			sum.TotalPelunasan += ev.Debit
		case models.CategoryCicilan:
			sum.TotalCicilan += ev.Debit
		case models.CategoryPemasukan:
			sum.TotalPemasukan += ev.Debit
		case models.CategoryPengeluaran:
			sum.TotalPengeluaranOps += ev.Kredit
		case models.CategoryPenarikan:
			sum.TotalPenarikan += ev.Kredit
		}
	}
	sum.Profit = sum.Saldo - sum.ModalAwal
	sum.TotalPendapatan = sum.TotalPelunasan + sum.TotalCicilan + sum.TotalPemasukan
	sum.TotalPengeluaran = sum.TotalPengeluaranOps + sum.TotalPenarikan
	return sum, nil
}

// RecentHistory: event terakhir, terbaru duluan
func (s *Service) RecentHistory(limit int) ([]models.CashEvent, error) {
	if limit <= 0 {
		return nil, ErrInvalidInput
	}
	events, err := s.events()
	if err != nil {
		return nil, err
	}

	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	// balik urutan: terbaru duluan
	out := make([]models.CashEvent, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		out = append(out, events[i])
	}
	return out, nil
}
