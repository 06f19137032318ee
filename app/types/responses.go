package types

type CreatePaymentResponse struct {
	OrderID     string `json:"orderId"`
	PaymentURL  string `json:"paymentUrl"`
	AmountVND   int64  `json:"amountVND"`
	TokenAmount string `json:"tokenAmount"`
}

type OrderStatusResponse struct {
	OrderID   string  `json:"orderId"`
	Status    string  `json:"status"`
	AmountVND int64   `json:"amountVND"`
	TxHash    *string `json:"txHash"`
}

type TransactionResponse struct {
	OrderID     string  `json:"orderId"`
	Status      string  `json:"status"`
	AmountVND   int64   `json:"amountVND"`
	TokenAmount string  `json:"tokenAmount"`
	TxHash      *string `json:"txHash"`
	CreatedAt   string  `json:"createdAt"`
}

type ExchangeRateResponse struct {
	VNDPerToken int64  `json:"vndPerToken"`
	TokenSymbol string `json:"tokenSymbol"`
}

type UserResponse struct {
	WalletAddress string  `json:"walletAddress"`
	Email         *string `json:"email"`
	Name          *string `json:"name"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

type ProofIpfsURLResponse struct {
	CID         string   `json:"cid"`
	URL         string   `json:"url"`
	GatewayURLs []string `json:"gatewayUrls"`
}

type ProofResponse struct {
	ID          uint64  `json:"id"`
	CampaignID  int64   `json:"campaignId"`
	IpfsCID     string  `json:"ipfsCid"`
	Description *string `json:"description"`
	SubmittedBy string  `json:"submittedBy"`
	TxHash      *string `json:"txHash"`
	CreatedAt   string  `json:"createdAt"`
}
