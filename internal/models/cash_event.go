package models

import (
	"fmt"
	"strconv"
)

type CashCategory string

const (
	CategoryModalAwal   CashCategory = "Modal Awal"
	CategoryTopUp       CashCategory = "Top-up"
	CategoryPenarikan   CashCategory = "Penarikan"
	CategoryPemasukan   CashCategory = "Pemasukan"
	CategoryPengeluaran CashCategory = "Pengeluaran"
	CategoryPelunasan   CashCategory = "Pelunasan"
	CategoryCicilan     CashCategory = "Cicilan"
)

// CashEvent: satu baris di tabel Keuangan. Append-only; Saldo adalah saldo
// berjalan setelah event ini diterapkan (Saldo_i = Saldo_i-1 + Debit - Kredit).
type CashEvent struct {
	Tanggal    string       `json:"tanggal"`
	Tipe       CashCategory `json:"tipe"`
	Keterangan string       `json:"keterangan"`
	Debit      int64        `json:"debit"`
	Kredit     int64        `json:"kredit"`
	Saldo      int64        `json:"saldo"`
}

func (e CashEvent) Row() []string {
	return []string{
		e.Tanggal,
		string(e.Tipe),
		e.Keterangan,
		strconv.FormatInt(e.Debit, 10),
		strconv.FormatInt(e.Kredit, 10),
		strconv.FormatInt(e.Saldo, 10),
	}
}

func CashEventFromRow(row []string) (CashEvent, error) {
	if len(row) < 6 {
		return CashEvent{}, fmt.Errorf("baris Keuangan tidak lengkap: %d kolom", len(row))
	}
	debit, err := ParseAmount(row[3])
	if err != nil {
		return CashEvent{}, fmt.Errorf("debit tidak valid: %w", err)
	}
	kredit, err := ParseAmount(row[4])
	if err != nil {
		return CashEvent{}, fmt.Errorf("kredit tidak valid: %w", err)
	}
	saldo, err := ParseAmount(row[5])
	if err != nil {
		return CashEvent{}, fmt.Errorf("saldo tidak valid: %w", err)
	}
	return CashEvent{
		Tanggal:    row[0],
		Tipe:       CashCategory(row[1]),
		Keterangan: row[2],
		Debit:      debit,
		Kredit:     kredit,
		Saldo:      saldo,
	}, nil
}
