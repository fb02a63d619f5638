package model

// Levy is one category line of the premium: income-proportional portion plus
// per-capita portion, capped at the category ceiling.
type Levy struct {
	Category         string `json:"category"`
	IncomePortion    Money  `json:"income_portion"`
	PerCapitaPortion Money  `json:"per_capita_portion"`
	Total            Money  `json:"total"`
	Capped           bool   `json:"capped"`
}

type PremiumBreakdown struct {
	Composition              Composition `json:"composition"`
	Levies                   []Levy      `json:"levies"`
	MedicalTotal             Money       `json:"medical_total"`
	SupportTotal             Money       `json:"support_total"`
	CareTotal                Money       `json:"care_total"`
	EstimatedAnnualInsurance int64       `json:"estimated_annual_insurance"`
}

// CalculationResult is produced once per calculate action. Savings may be
// negative when the alternative plan costs more than the current payments.
type CalculationResult struct {
	InquiryID string `json:"inquiry_id"`
	HouseholdInput
	EstimatedAnnualInsurance int64            `json:"estimated_annual_insurance"`
	AnnualPensionCost        int64            `json:"annual_pension_cost"`
	CurrentTotalAnnualCost   int64            `json:"current_total_annual_cost"`
	ProjectedAnnualSavings   int64            `json:"projected_annual_savings"`
	Breakdown                PremiumBreakdown `json:"breakdown"`
}

// Snapshot is the flat record sent to the notification endpoint. Its keys
// match what the receiving spreadsheet script reads.
type Snapshot struct {
	InquiryID                 string       `json:"inquiryId"`
	Income                    int64        `json:"income"`
	Age                       int          `json:"age"`
	SpouseAge                 SpouseStatus `json:"spouseAge"`
	PreschoolDependents       int          `json:"preschoolDependents"`
	OtherDependents           int          `json:"otherDependents"`
	EstimatedNhiAnnual        int64        `json:"estimatedNhiAnnual"`
	NationalPensionAnnual     int64        `json:"nationalPensionAnnual"`
	CurrentTotalAnnualPayment int64        `json:"currentTotalAnnualPayment"`
	AnnualReduction           int64        `json:"annualReduction"`
}

func (r CalculationResult) Snapshot() Snapshot {
	return Snapshot{
		InquiryID:                 r.InquiryID,
		Income:                    r.AnnualIncome,
		Age:                       r.PrimaryAge,
		SpouseAge:                 r.SpouseStatus,
		PreschoolDependents:       r.PreschoolDependents,
		OtherDependents:           r.OtherDependents,
		EstimatedNhiAnnual:        r.EstimatedAnnualInsurance,
		NationalPensionAnnual:     r.AnnualPensionCost,
		CurrentTotalAnnualPayment: r.CurrentTotalAnnualCost,
		AnnualReduction:           r.ProjectedAnnualSavings,
	}
}
