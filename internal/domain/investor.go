package domain

// NewInvestor is the boundary input for creating an investor: contact fields
// plus the chosen investment amount. Validation beyond shape is the remote
// platform's responsibility.
type NewInvestor struct {
	Email            string  `json:"email"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Phone            string  `json:"phone,omitempty"`
	InvestmentAmount float64 `json:"investmentAmount"`
}

// InvestorReceipt is returned after a successful investor creation.
type InvestorReceipt struct {
	ProfileID      int64  `json:"profileId"`
	InvestorID     int64  `json:"investorId"`
	SubscriptionID string `json:"subscriptionId"`
	State          string `json:"state"`
}

// StepUpdate moves an existing deal investor to a new funnel step.
type StepUpdate struct {
	InvestorID  int64  `json:"investorId"`
	CurrentStep string `json:"currentStep"`
}

// StepReceipt is returned after a successful step update.
type StepReceipt struct {
	InvestorID  int64  `json:"investorId"`
	State       string `json:"state"`
	CurrentStep string `json:"currentStep"`
}
