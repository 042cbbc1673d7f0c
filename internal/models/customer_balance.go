package models

import (
	"fmt"
	"strconv"
	"strings"
)

// CustomerBalance: satu baris per pelanggan per tingkat. Setelah merge, detail
// per item hilang (Barang jadi "Multiple", Jumlah/Harga Satuan jadi "-") dan
// Total adalah saldo utang berjalan.
type CustomerBalance struct {
	Tingkat     int
	Tanggal     string // tanggal pembelian terakhir
	Nama        string
	Barang      string
	Jumlah      string
	HargaSatuan string
	Total       int64
}

func (cb CustomerBalance) Row() []string {
	return []string{
		cb.Tanggal,
		cb.Nama,
		cb.Barang,
		cb.Jumlah,
		cb.HargaSatuan,
		strconv.FormatInt(cb.Total, 10),
	}
}

func CustomerBalanceFromRow(tingkat int, row []string) (CustomerBalance, error) {
	if len(row) < 6 {
		return CustomerBalance{}, fmt.Errorf("baris tingkat %d tidak lengkap: %d kolom", tingkat, len(row))
	}
	total, err := ParseAmount(row[ColTotal])
	if err != nil {
		return CustomerBalance{}, fmt.Errorf("total tidak valid untuk %q: %w", row[ColNama], err)
	}
	return CustomerBalance{
		Tingkat:     tingkat,
		Tanggal:     row[ColTanggal],
		Nama:        row[ColNama],
		Barang:      row[ColBarang],
		Jumlah:      row[ColJumlah],
		HargaSatuan: row[ColHargaSatuan],
		Total:       total,
	}, nil
}

// ParseAmount: parse nominal rupiah dari sel spreadsheet
func ParseAmount(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
