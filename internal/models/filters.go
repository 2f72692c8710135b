package models

// TableFilter holds the operator's selections for the activity table.
// Empty selections and false toggles do not restrict the view.
type TableFilter struct {
	// ExecIDs keeps rows whose exec_id is one of the listed identifiers
	ExecIDs []string `json:"exec_id" validate:"omitempty,dive,required,max=256"`

	// Categories keeps rows whose category is one of the listed values
	Categories []string `json:"category" validate:"omitempty,dive,max=256"`

	// RiskyEmail keeps only rows with risk_flag_email set
	RiskyEmail bool `json:"risky_email"`

	// NSFW keeps only rows with flag_nsfw set
	NSFW bool `json:"nsfw"`

	// OverLimit keeps only rows with over_limit set
	OverLimit bool `json:"over_limit"`

	// PersonalUse keeps only rows with personal_use set
	PersonalUse bool `json:"personal_use"`

	// Raw shows message columns unmasked; requires an operator token
	Raw bool `json:"raw"`

	Page     int `json:"page" validate:"min=1"`
	PageSize int `json:"page_size" validate:"min=1,max=1000"`
}

// DemoFilter holds the operator's selections for the demo messages.
type DemoFilter struct {
	NSFW          bool `json:"nsfw"`
	PersonalUse   bool `json:"personal"`
	CreditCard    bool `json:"credit_card"`
	LargeSpending bool `json:"large_spending"`
	Raw           bool `json:"raw"`
}
