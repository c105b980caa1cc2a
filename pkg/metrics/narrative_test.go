package metrics

import (
	"testing"

	"github.com/finsight/finsight/pkg/api"
	"github.com/finsight/finsight/pkg/format"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var formatter = format.NewFormatter("en-US")

func intPtr(v int) *int { return &v }

func TestNarrative_AllSignals(t *testing.T) {
	report := api.BehaviorsReport{
		TopSpendingCategories: []api.CategoryAmount{
			{Category: "Rent", Amount: decimal.NewFromInt(1200)},
			{Category: "Groceries", Amount: decimal.NewFromInt(300)},
		},
		MostExpensiveDay: &api.ExpensiveDay{Date: "2024-05-03", TotalSpent: decimal.NewFromFloat(321.5)},
		IncomeDaysCount:  intPtr(3),
	}

	sentences := Narrative(report, formatter)

	require.Len(t, sentences, 3)
	assert.Contains(t, sentences[0], "Rent")
	assert.Contains(t, sentences[1], "2024-05-03")
	assert.Contains(t, sentences[2], "3 days")
}

func TestNarrative_SingularIncomeDay(t *testing.T) {
	report := api.BehaviorsReport{IncomeDaysCount: intPtr(1)}

	sentences := Narrative(report, formatter)

	require.Len(t, sentences, 1)
	assert.Contains(t, sentences[0], "1 day ")
}

func TestNarrative_OmitsAbsentSignals(t *testing.T) {
	report := api.BehaviorsReport{
		MostExpensiveDay: &api.ExpensiveDay{Date: "2024-05-03", TotalSpent: decimal.NewFromInt(50)},
	}

	sentences := Narrative(report, formatter)

	require.Len(t, sentences, 1)
	assert.Contains(t, sentences[0], "most expensive day")
}

func TestNarrative_EmptyReport(t *testing.T) {
	assert.Empty(t, Narrative(api.BehaviorsReport{}, formatter))
}
