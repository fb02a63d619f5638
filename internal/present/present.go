// Package present renders calculation results for people: grouped yen
// amounts, the result modal and the input page.
package present

import (
	"embed"
	"html/template"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"premium-estimator/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

var printer = message.NewPrinter(language.Japanese)

// FormatCurrency groups an amount of whole yen with commas, e.g. 404,390.
func FormatCurrency(yen int64) string {
	return printer.Sprintf("%d", yen)
}

// FormatMoney rounds a fractional amount to whole yen before grouping.
func FormatMoney(m model.Money) string {
	return FormatCurrency(model.Yen(m))
}

var levyLabels = map[string]string{
	model.CategoryMedical: "医療分",
	model.CategorySupport: "後期高齢者支援金分",
	model.CategoryCare:    "介護分",
}

// LevyLine is one category of the insurance estimate.
type LevyLine struct {
	Label  string
	Amount string
	Capped bool
}

// ModalView is everything the result modal shows.
type ModalView struct {
	Savings      string
	Positive     bool
	Insurance    string
	Levies       []LevyLine
	Pension      string
	CurrentTotal string
	InquiryCode  string
	ContactURL   string
}

// NewModalView formats a result. Zero savings render as positive; anything
// below zero uses the negative tone rather than an error.
func NewModalView(r model.CalculationResult, contactURL string) ModalView {
	var levies []LevyLine
	for _, l := range r.Breakdown.Levies {
		label, ok := levyLabels[l.Category]
		if !ok {
			label = l.Category
		}
		levies = append(levies, LevyLine{Label: label, Amount: FormatMoney(l.Total), Capped: l.Capped})
	}

	return ModalView{
		Savings:      FormatCurrency(r.ProjectedAnnualSavings),
		Positive:     r.ProjectedAnnualSavings >= 0,
		Insurance:    FormatCurrency(r.EstimatedAnnualInsurance),
		Levies:       levies,
		Pension:      FormatCurrency(r.AnnualPensionCost),
		CurrentTotal: FormatCurrency(r.CurrentTotalAnnualCost),
		InquiryCode:  r.InquiryID,
		ContactURL:   contactURL,
	}
}

func RenderModal(w io.Writer, v ModalView) error {
	return templates.ExecuteTemplate(w, "modal.html.tmpl", v)
}

// PageData configures the input page.
type PageData struct {
	SpouseOptions []SpouseOption
}

type SpouseOption struct {
	Value string
	Label string
}

func DefaultPageData() PageData {
	return PageData{
		SpouseOptions: []SpouseOption{
			{Value: string(model.SpouseNone), Label: "なし"},
			{Value: string(model.SpouseUnder40), Label: "あり（40歳未満）"},
			{Value: string(model.Spouse40OrOver), Label: "あり（40歳以上）"},
		},
	}
}

func RenderPage(w io.Writer, p PageData) error {
	return templates.ExecuteTemplate(w, "page.html.tmpl", p)
}
