package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"kasir-backend/internal/cashflow"
	"kasir-backend/internal/models"
	"kasir-backend/internal/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestLedger(t *testing.T) (*Service, *cashflow.Service, store.RowStore) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "kasir.db")), &gorm.Config{})
	require.NoError(t, err)
	st, err := store.NewGormStore(db)
	require.NoError(t, err)
	require.NoError(t, store.Bootstrap(st))
	cashSvc := cashflow.NewService(st)
	return NewService(st, cashSvc), cashSvc, st
}

var waktu = time.Date(2026, 2, 11, 9, 30, 0, 0, time.UTC)

func TestRecordPurchaseInsert(t *testing.T) {
	svc, _, st := newTestLedger(t)

	total, err := svc.RecordPurchase(1, "Budi", "Roti", 2, 3000, 6000, waktu)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), total)

	rows, err := st.ListRows(models.TingkatTable(1))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Budi", rows[0][models.ColNama])
	assert.Equal(t, "Roti", rows[0][models.ColBarang])
	assert.Equal(t, "2", rows[0][models.ColJumlah])
	assert.Equal(t, "3000", rows[0][models.ColHargaSatuan])
	assert.Equal(t, "6000", rows[0][models.ColTotal])
}

// Pembelian berulang untuk nama yang sama (case-insensitive) harus di-merge
// ke satu baris: total terakumulasi, detail item jadi sentinel.
func TestRecordPurchaseMerge(t *testing.T) {
	svc, _, st := newTestLedger(t)

	_, err := svc.RecordPurchase(1, "Budi", "Roti", 2, 3000, 6000, waktu)
	require.NoError(t, err)
	total, err := svc.RecordPurchase(1, "budi", "Singkong", 1, 5000, 5000, waktu.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(11000), total)

	rows, err := st.ListRows(models.TingkatTable(1))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.SentinelMultiple, rows[0][models.ColBarang])
	assert.Equal(t, models.SentinelDash, rows[0][models.ColJumlah])
	assert.Equal(t, models.SentinelDash, rows[0][models.ColHargaSatuan])
	assert.Equal(t, "11000", rows[0][models.ColTotal])
	assert.Equal(t, waktu.Add(time.Hour).Format(models.TimeLayout), rows[0][models.ColTanggal])
}

func TestRecordPurchaseAccumulates(t *testing.T) {
	svc, _, _ := newTestLedger(t)

	totals := []int64{6000, 5000, 7500, 3000}
	var expected int64
	for _, tot := range totals {
		_, err := svc.RecordPurchase(3, "Sari", "Basreng", 1, tot, tot, waktu)
		require.NoError(t, err)
		expected += tot
	}

	saldo, err := svc.GetBalance("sari", 3)
	require.NoError(t, err)
	assert.Equal(t, expected, saldo)
}

func TestGetBalanceAcrossTingkat(t *testing.T) {
	svc, _, _ := newTestLedger(t)

	_, err := svc.RecordPurchase(1, "Budi", "Roti", 1, 3000, 3000, waktu)
	require.NoError(t, err)
	_, err = svc.RecordPurchase(3, "Budi", "Singkong", 2, 5000, 10000, waktu)
	require.NoError(t, err)

	var sum int64
	for tk := models.MinTingkat; tk <= models.MaxTingkat; tk++ {
		sub, err := svc.GetBalance("Budi", tk)
		require.NoError(t, err)
		sum += sub
	}

	total, err := svc.GetBalance("Budi", 0)
	require.NoError(t, err)
	assert.Equal(t, sum, total)
	assert.Equal(t, int64(13000), total)
}

func TestGetBalanceUnknownCustomer(t *testing.T) {
	svc, _, _ := newTestLedger(t)
	total, err := svc.GetBalance("Siapa", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestListUnsettledSorted(t *testing.T) {
	svc, _, _ := newTestLedger(t)

	_, err := svc.RecordPurchase(2, "tono", "Roti", 1, 3000, 3000, waktu)
	require.NoError(t, err)
	_, err = svc.RecordPurchase(2, "Ani", "Roti", 1, 3000, 3000, waktu)
	require.NoError(t, err)
	_, err = svc.RecordPurchase(1, "Zainal", "Roti", 1, 3000, 3000, waktu)
	require.NoError(t, err)

	entries, err := svc.ListUnsettled(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Zainal", entries[0].Nama)
	assert.Equal(t, 1, entries[0].Tingkat)
	assert.Equal(t, "Ani", entries[1].Nama)
	assert.Equal(t, "tono", entries[2].Nama)

	perTingkat, err := svc.ListUnsettled(2)
	require.NoError(t, err)
	require.Len(t, perTingkat, 2)
	assert.Equal(t, "Ani", perTingkat[0].Nama)
}

func TestSettleFull(t *testing.T) {
	svc, cashSvc, st := newTestLedger(t)

	_, err := svc.RecordPurchase(1, "Budi", "Roti", 2, 3000, 6000, waktu)
	require.NoError(t, err)

	res, err := svc.Settle(1, "BUDI", 0)
	require.NoError(t, err)
	assert.True(t, res.Lunas)
	assert.Equal(t, int64(6000), res.Jumlah)
	assert.Equal(t, int64(6000), res.UtangSebelum)
	assert.Equal(t, int64(0), res.SisaUtang)
	assert.Equal(t, int64(0), res.SaldoSebelum)
	assert.Equal(t, int64(6000), res.SaldoSesudah)

	// baris hilang
	saldo, err := svc.GetBalance("Budi", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), saldo)

	// satu arsip History dengan jumlah penuh
	history, err := st.ListRows(models.TableHistory)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "1", history[0][1])
	assert.Equal(t, "Budi", history[0][3])
	assert.Equal(t, "6000", history[0][4])

	// saldo kas naik persis sebesar utang
	kas, err := cashSvc.CurrentBalance()
	require.NoError(t, err)
	assert.Equal(t, int64(6000), kas)
}

// Skenario acuan: pembelian 15000 lalu 7500, cicil 10000, lunas sisanya.
func TestSettlePartialThenFull(t *testing.T) {
	svc, cashSvc, st := newTestLedger(t)

	_, err := svc.RecordPurchase(2, "Yusuf", "Roti", 5, 3000, 15000, waktu)
	require.NoError(t, err)
	total, err := svc.RecordPurchase(2, "Yusuf", "Basreng", 1, 7500, 7500, waktu)
	require.NoError(t, err)
	assert.Equal(t, int64(22500), total)

	res, err := svc.Settle(2, "Yusuf", 10000)
	require.NoError(t, err)
	assert.False(t, res.Lunas)
	assert.Equal(t, int64(10000), res.Jumlah)
	assert.Equal(t, int64(22500), res.UtangSebelum)
	assert.Equal(t, int64(12500), res.SisaUtang)

	// baris masih ada dengan sisa utang, tanpa arsip History
	saldo, err := svc.GetBalance("Yusuf", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(12500), saldo)

	history, err := st.ListRows(models.TableHistory)
	require.NoError(t, err)
	assert.Empty(t, history)

	kas, err := cashSvc.CurrentBalance()
	require.NoError(t, err)
	assert.Equal(t, int64(10000), kas)

	// pelunasan sisa
	res, err = svc.Settle(2, "Yusuf", 0)
	require.NoError(t, err)
	assert.True(t, res.Lunas)
	assert.Equal(t, int64(12500), res.Jumlah)

	history, err = st.ListRows(models.TableHistory)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "12500", history[0][4])

	kas, err = cashSvc.CurrentBalance()
	require.NoError(t, err)
	assert.Equal(t, int64(22500), kas)

	// event kas: Cicilan lalu Pelunasan
	events, err := cashSvc.RecentHistory(10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.CategoryPelunasan, events[0].Tipe)
	assert.Equal(t, models.CategoryCicilan, events[1].Tipe)
}

func TestSettleNotFound(t *testing.T) {
	svc, _, _ := newTestLedger(t)
	_, err := svc.Settle(1, "Siapa", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettleExceedsBalance(t *testing.T) {
	svc, cashSvc, _ := newTestLedger(t)

	_, err := svc.RecordPurchase(1, "Budi", "Roti", 1, 3000, 3000, waktu)
	require.NoError(t, err)

	_, err = svc.Settle(1, "Budi", 5000)
	assert.ErrorIs(t, err, ErrExceedsBalance)

	// tidak ada efek samping
	saldo, err := svc.GetBalance("Budi", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), saldo)

	kas, err := cashSvc.CurrentBalance()
	require.NoError(t, err)
	assert.Equal(t, int64(0), kas)
}

func TestQuickAddDebtMergesWithPurchases(t *testing.T) {
	svc, _, st := newTestLedger(t)

	_, err := svc.QuickAddDebt(2, "Yusuf", 15000, waktu)
	require.NoError(t, err)

	rows, err := st.ListRows(models.TingkatTable(2))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.ItemUtang, rows[0][models.ColBarang])
	assert.Equal(t, models.SentinelDash, rows[0][models.ColJumlah])

	total, err := svc.RecordPurchase(2, "yusuf", "Roti", 1, 3000, 3000, waktu)
	require.NoError(t, err)
	assert.Equal(t, int64(18000), total)

	rows, err = st.ListRows(models.TingkatTable(2))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.SentinelMultiple, rows[0][models.ColBarang])
}

func TestImportCSVSkipsBadRows(t *testing.T) {
	svc, _, _ := newTestLedger(t)

	data := "2026-02-11,Yusuf,Roti,5,3000,15000\n" +
		"2026-02-11,Budi,Roti,2,3000,abc\n" +
		"2026-02-12,Sari,Singkong,1,5000,5000\n"

	res, err := svc.ImportCSV(2, data)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 0, res.Merged)
	assert.Equal(t, 1, res.Skipped)
}

func TestImportCSVHeaderTolerance(t *testing.T) {
	svc, _, _ := newTestLedger(t)

	// header gaya sheet Indonesia
	res, err := svc.ImportCSV(1, "Tanggal,Nama,Barang,Jumlah,Harga Satuan,Total\n2026-02-11,Yusuf,Roti,5,3000,15000\n")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 0, res.Skipped)

	// header gaya export Inggris, baris Yusuf di-merge
	res, err = svc.ImportCSV(1, "date,name,item,quantity,unitPrice,total\n2026-02-12,yusuf,Singkong,1,5000,5000\n")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, 1, res.Merged)

	saldo, err := svc.GetBalance("Yusuf", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), saldo)
}

func TestImportCSVEmptyName(t *testing.T) {
	svc, _, _ := newTestLedger(t)

	res, err := svc.ImportCSV(1, "2026-02-11,,Roti,1,3000,3000\n")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, 1, res.Skipped)
}

func TestExportCSV(t *testing.T) {
	svc, _, _ := newTestLedger(t)

	// tabel kosong -> string kosong
	out, err := svc.ExportCSV(4)
	require.NoError(t, err)
	assert.Equal(t, "", out)

	_, err = svc.RecordPurchase(4, "Budi", "Roti", 2, 3000, 6000, waktu)
	require.NoError(t, err)

	out, err = svc.ExportCSV(4)
	require.NoError(t, err)
	assert.Contains(t, out, "Tanggal,Nama,Barang,Jumlah,Harga Satuan,Total")
	assert.Contains(t, out, "Budi,Roti,2,3000,6000")
}

func TestExportImportRoundTrip(t *testing.T) {
	svc, _, _ := newTestLedger(t)

	_, err := svc.RecordPurchase(1, "Budi", "Roti", 2, 3000, 6000, waktu)
	require.NoError(t, err)
	_, err = svc.QuickAddDebt(1, "Sari", 5000, waktu)
	require.NoError(t, err)

	out, err := svc.ExportCSV(1)
	require.NoError(t, err)

	// import hasil export ke tingkat lain
	res, err := svc.ImportCSV(2, out)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 0, res.Skipped)

	saldo, err := svc.GetBalance("Sari", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), saldo)
}

func TestExportXLSX(t *testing.T) {
	svc, _, _ := newTestLedger(t)

	out, err := svc.ExportXLSX(1)
	require.NoError(t, err)
	assert.Nil(t, out)

	_, err = svc.RecordPurchase(1, "Budi", "Roti", 2, 3000, 6000, waktu)
	require.NoError(t, err)

	out, err = svc.ExportXLSX(1)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestStats(t *testing.T) {
	svc, _, _ := newTestLedger(t)

	_, err := svc.RecordPurchase(1, "Budi", "Roti", 1, 3000, 3000, waktu)
	require.NoError(t, err)
	_, err = svc.RecordPurchase(1, "Sari", "Roti", 1, 3000, 3000, waktu)
	require.NoError(t, err)
	_, err = svc.RecordPurchase(2, "Yusuf", "Roti", 5, 3000, 15000, waktu)
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)

	assert.Equal(t, int64(6000), stats.PerTingkat[1].TotalUtang)
	assert.Equal(t, 2, stats.PerTingkat[1].Pelanggan)
	assert.Equal(t, int64(15000), stats.PerTingkat[2].TotalUtang)
	assert.Equal(t, 1, stats.PerTingkat[2].Transaksi)
	assert.Equal(t, int64(0), stats.PerTingkat[3].TotalUtang)
	assert.Equal(t, int64(21000), stats.TotalUtang)
	assert.Equal(t, 3, stats.TotalPelanggan)
	assert.Equal(t, 3, stats.TotalTransaksi)
}

func TestInvalidInputs(t *testing.T) {
	svc, _, _ := newTestLedger(t)

	_, err := svc.RecordPurchase(5, "Budi", "Roti", 1, 3000, 3000, waktu)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.RecordPurchase(1, "  ", "Roti", 1, 3000, 3000, waktu)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.RecordPurchase(1, "Budi", "Roti", 1, 3000, 0, waktu)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Settle(1, "Budi", -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.QuickAddDebt(0, "Budi", 1000, waktu)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
