package dealmaker

// Deal is a capital-raise campaign record as returned by the platform.
// Monetary *_cents fields are in cents; everything else is in currency units.
type Deal struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	PricePerSecurity  float64 `json:"price_per_security"`
	MinimumInvestment float64 `json:"minimum_investment"`
	MaximumInvestment float64 `json:"maximum_investment"`
	Currency          string  `json:"currency"`
	CurrencySymbol    string  `json:"currency_symbol"`
	SecurityType      string  `json:"security_type"`
	FundingGoalCents  float64 `json:"funding_goal_cents"`
	FundedAmountCents float64 `json:"funded_amount_cents"`
	InvestorsCount    int     `json:"investors_count"`
	Status            string  `json:"status"`
}

// IncentiveTier is one volume tier of a deal's incentive plan.
type IncentiveTier struct {
	ID              int64   `json:"id"`
	MinimumAmount   float64 `json:"minimum_amount"`
	BonusPercentage float64 `json:"bonus_percentage"`
	FreeShares      float64 `json:"free_shares"`
}

// InvestorProfile is the platform's record of an individual's identity,
// independent of any deal.
type InvestorProfile struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

// DealInvestor links an investor profile to a deal with an amount and funnel
// state.
type DealInvestor struct {
	ID                 int64   `json:"id"`
	InvestorProfileID  int64   `json:"investor_profile_id"`
	SubscriptionID     string  `json:"subscription_id"`
	InvestmentValue    float64 `json:"investment_value"`
	NumberOfSecurities float64 `json:"number_of_securities"`
	State              string  `json:"state"`
	CurrentStep        string  `json:"current_step"`
}

// ProfileRequest is the payload for creating an individual investor profile.
// The funnel only collects the contact subset; the address and date-of-birth
// fields are accepted by the platform and forwarded when present.
type ProfileRequest struct {
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Country       string `json:"country,omitempty"`
	StreetAddress string `json:"street_address,omitempty"`
	City          string `json:"city,omitempty"`
	Region        string `json:"region,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
}

// InvestorRequest is the payload for creating a deal investor.
type InvestorRequest struct {
	Email             string  `json:"email"`
	InvestorProfileID int64   `json:"investor_profile_id"`
	InvestmentValue   float64 `json:"investment_value"`
	AllocationUnit    string  `json:"allocation_unit,omitempty"`
}

// InvestorUpdate is the payload for patching a deal investor.
type InvestorUpdate struct {
	CurrentStep       string `json:"current_step,omitempty"`
	InvestorProfileID int64  `json:"investor_profile_id,omitempty"`
}

// tokenResponse is the token endpoint's client-credentials grant response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
