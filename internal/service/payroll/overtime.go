package payroll

import (
	"sort"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/gajihub/payroll-backend-go/internal/domain/request"
	"github.com/shopspring/decimal"
)

// hourlyOvertimeRate derives the overtime rate from the monthly basic salary:
// one daily rate (1/30 of basic), premium factor 1.5, spread over a 7-hour
// working day.
func hourlyOvertimeRate(basic decimal.Decimal) decimal.Decimal {
	return basic.
		Div(decimal.NewFromInt(30)).
		Mul(decimal.NewFromFloat(1.5)).
		Div(decimal.NewFromInt(7))
}

type overtimeTotals struct {
	Hours     decimal.Decimal
	Amount    decimal.Decimal
	Breakdown []payroll.OvertimeBreakdown
}

// aggregateOvertime sums approved overtime spans per date and prices them at
// rate. Spans ending at or before their start cross midnight.
func aggregateOvertime(requests []request.Overtime, rate decimal.Decimal, loc *time.Location) (overtimeTotals, error) {
	totals := overtimeTotals{Hours: decimal.Zero, Amount: decimal.Zero}
	perDate := make(map[string]*payroll.OvertimeBreakdown)

	for _, ot := range requests {
		start, err := clockOn(ot.Date, ot.StartTime, loc)
		if err != nil {
			return overtimeTotals{}, err
		}
		end, err := clockOn(ot.Date, ot.EndTime, loc)
		if err != nil {
			return overtimeTotals{}, err
		}
		if !end.After(start) {
			end = end.Add(24 * time.Hour)
		}

		minutes := int64(end.Sub(start) / time.Minute)
		hours := decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60))

		key := dayKey(ot.Date)
		entry, ok := perDate[key]
		if !ok {
			entry = &payroll.OvertimeBreakdown{Date: key, Hours: decimal.Zero, Amount: decimal.Zero}
			perDate[key] = entry
		}
		entry.Hours = entry.Hours.Add(hours)
		entry.Amount = entry.Hours.Mul(rate)
		entry.RequestIDs = append(entry.RequestIDs, ot.ID)
	}

	keys := make([]string, 0, len(perDate))
	for key := range perDate {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		entry := perDate[key]
		totals.Hours = totals.Hours.Add(entry.Hours)
		totals.Amount = totals.Amount.Add(entry.Amount)
		totals.Breakdown = append(totals.Breakdown, *entry)
	}

	return totals, nil
}
