package store

import "kasir-backend/internal/models"

// RowStore: kontrak tabel berorientasi baris yang dipakai seluruh ledger.
// Index baris 0-based dan hanya menghitung baris data (header tidak ikut).
//
// Asumsi: satu penulis logis pada satu waktu. Operasi read-modify-write
// (baca saldo, hitung, tulis) TIDAK diserialisasi oleh store; dua penulis
// bersamaan bisa saling menimpa. Ini batasan yang diterima, bukan jaminan.
type RowStore interface {
	ListRows(table string) ([][]string, error)
	AppendRow(table string, row []string) error
	UpdateCell(table string, rowIndex, colIndex int, value string) error
	DeleteRow(table string, rowIndex int) error
	EnsureTable(table string, header []string) error
}

// Bootstrap: pastikan semua tabel yang dipakai aplikasi ada beserta headernya
func Bootstrap(st RowStore) error {
	for t := models.MinTingkat; t <= models.MaxTingkat; t++ {
		if err := st.EnsureTable(models.TingkatTable(t), models.TingkatHeader); err != nil {
			return err
		}
	}
	if err := st.EnsureTable(models.TableHistory, models.HistoryHeader); err != nil {
		return err
	}
	return st.EnsureTable(models.TableKeuangan, models.KeuanganHeader)
}
