package checkout

// CheckoutRequest carries the buyer-supplied fields submitted with a
// checkout. Fields left empty fall back to the values stored on the
// session form.
type CheckoutRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Message  string `json:"message"`
}

// CheckoutResult is returned once a dispatch has settled. DeepLink is the
// interactive-channel URL the storefront opens for the buyer.
type CheckoutResult struct {
	OrderReference string  `json:"order_reference"`
	DeepLink       string  `json:"deep_link"`
	MessageText    string  `json:"message_text"`
	Total          float64 `json:"total"`
	TotalFormatted string  `json:"total_formatted"`
}
