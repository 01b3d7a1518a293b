package models

// Instrument names a tradable entity. The set is fixed at session start.
type Instrument string

// Side как в движке: "BUY"/"SELL" или пустая строка.
type Side string

const (
	SideNone Side = ""
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)
