package checkout

// Amount is a provider amount in minor units.
type Amount struct {
	Currency string `json:"currency"`
	Value    int64  `json:"value"`
}

type PaymentMethodsRequest struct {
	MerchantAccount string  `json:"merchantAccount"`
	CountryCode     string  `json:"countryCode,omitempty"`
	ShopperLocale   string  `json:"shopperLocale,omitempty"`
	Channel         string  `json:"channel,omitempty"`
	Amount          *Amount `json:"amount,omitempty"`
}

type PaymentMethod struct {
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	Brands        []string          `json:"brands,omitempty"`
	Configuration map[string]string `json:"configuration,omitempty"`
}

type PaymentMethodsResponse struct {
	PaymentMethods       []PaymentMethod `json:"paymentMethods"`
	StoredPaymentMethods []PaymentMethod `json:"storedPaymentMethods,omitempty"`
}

// DetailsRequest completes a previously-initiated payment by submitting the
// verification details collected from the shopper or the redirect.
type DetailsRequest struct {
	PaymentData string         `json:"paymentData,omitempty"`
	Details     map[string]any `json:"details"`
}

type PaymentDetailsResponse struct {
	ResultCode        string         `json:"resultCode"`
	PspReference      string         `json:"pspReference,omitempty"`
	MerchantReference string         `json:"merchantReference,omitempty"`
	PaymentData       string         `json:"paymentData,omitempty"`
	DonationToken     string         `json:"donationToken,omitempty"`
	RefusalReason     string         `json:"refusalReason,omitempty"`
	Action            map[string]any `json:"action,omitempty"`
}
