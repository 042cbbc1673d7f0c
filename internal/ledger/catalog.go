package ledger

// Katalog barang warung. Harga satuan dalam rupiah.
type Item struct {
	Nama  string `json:"nama"`
	Harga int64  `json:"harga"`
}

var Catalog = map[string]Item{
	"roti":     {Nama: "Roti", Harga: 3000},
	"singkong": {Nama: "Singkong", Harga: 5000},
	"basreng":  {Nama: "Basreng", Harga: 7500},
}
