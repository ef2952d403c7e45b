package shared

// SaleResult represents the outcome of settling one carpet
type SaleResult struct {
	CarpetID   int    `json:"carpet_id"`
	Winner     string `json:"winner"`
	FinalPrice int64  `json:"final_price"`
}
