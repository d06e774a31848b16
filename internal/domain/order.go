package domain

// Order is a standing willingness to spend up to MaximumUsommIn base usomm
// units on auctions selling SaleDenom, provided the realized USD value is at
// least MinimumUsdValueOut. Orders are immutable once placed into an
// evaluation pass and stay eligible every cycle until externally removed.
type Order struct {
	SaleDenom          Denom
	MaximumUsommIn     uint64
	MinimumUsdValueOut uint64
	FeeToken           Denom
}

// OrderBook indexes standing orders by the denom they bid on. It is
// replaced wholesale between evaluation passes, never edited in place.
type OrderBook map[Denom][]Order
