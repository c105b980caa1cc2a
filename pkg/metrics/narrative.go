package metrics

import (
	"fmt"

	"github.com/finsight/finsight/pkg/api"
	"github.com/finsight/finsight/pkg/format"
)

// Narrative turns a behaviors report into display sentences, at most one
// per signal, in fixed order: leading category, most expensive day,
// income days. Absent signals produce no sentence; the result may be
// empty.
func Narrative(report api.BehaviorsReport, f *format.Formatter) []string {
	sentences := make([]string, 0, 3)

	if len(report.TopSpendingCategories) > 0 {
		lead := report.TopSpendingCategories[0]
		sentences = append(sentences, fmt.Sprintf(
			"Your top spending category is %s at %s.", lead.Category, f.Currency(lead.Amount)))
	}

	if day := report.MostExpensiveDay; day != nil {
		sentences = append(sentences, fmt.Sprintf(
			"Your most expensive day was %s, with %s spent.", day.Date, f.Currency(day.TotalSpent)))
	}

	if count := report.IncomeDaysCount; count != nil {
		dayWord := "days"
		if *count == 1 {
			dayWord = "day"
		}
		sentences = append(sentences, fmt.Sprintf(
			"You received income on %d %s in this period.", *count, dayWord))
	}

	return sentences
}
