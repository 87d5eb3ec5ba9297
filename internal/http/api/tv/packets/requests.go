package packets

// body for exchanging a pairing code for a device token
type PairRequest struct {
	Code string `json:"code" binding:"required"`
}
