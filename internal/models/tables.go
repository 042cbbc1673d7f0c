package models

import "fmt"

// Nama tabel mengikuti layout spreadsheet warung: satu sheet per tingkat,
// satu sheet History (arsip pelunasan) dan satu sheet Keuangan (buku kas).
const (
	TableHistory  = "History"
	TableKeuangan = "Keuangan"

	MinTingkat = 1
	MaxTingkat = 4
)

// Sentinel untuk baris yang sudah di-merge / entri utang cepat
const (
	SentinelMultiple = "Multiple" // barang setelah lebih dari satu pembelian
	SentinelDash     = "-"        // jumlah & harga satuan setelah merge
	ItemUtang        = "Utang"    // barang untuk entri /utang cepat
)

// Format timestamp yang disimpan di semua tabel
const TimeLayout = "2006-01-02 15:04:05"

var (
	TingkatHeader  = []string{"Tanggal", "Nama", "Barang", "Jumlah", "Harga Satuan", "Total"}
	HistoryHeader  = []string{"Tanggal Lunas", "Tingkat", "Tanggal Transaksi", "Nama", "Jumlah"}
	KeuanganHeader = []string{"Tanggal", "Tipe", "Keterangan", "Debit", "Kredit", "Saldo"}
)

// Indeks kolom tabel tingkat
const (
	ColTanggal = iota
	ColNama
	ColBarang
	ColJumlah
	ColHargaSatuan
	ColTotal
)

func ValidTingkat(t int) bool {
	return t >= MinTingkat && t <= MaxTingkat
}

// TingkatTable: nama sheet untuk sebuah tingkat ("Tingkat 1".."Tingkat 4")
func TingkatTable(t int) string {
	return fmt.Sprintf("Tingkat %d", t)
}
