package models

import "strconv"

// HistoryRecord: arsip pelunasan penuh, append-only. Dibuat tepat sebelum
// baris CustomerBalance dihapus; tidak pernah diubah atau dihapus.
type HistoryRecord struct {
	TanggalLunas     string
	Tingkat          int
	TanggalTransaksi string // tanggal pembelian terakhir dari baris yang dilunasi
	Nama             string
	Jumlah           int64
}

func (h HistoryRecord) Row() []string {
	return []string{
		h.TanggalLunas,
		strconv.Itoa(h.Tingkat),
		h.TanggalTransaksi,
		h.Nama,
		strconv.FormatInt(h.Jumlah, 10),
	}
}
