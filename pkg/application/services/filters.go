package services

import (
	"strings"
	"time"

	"github.com/piyumals/stripstock/pkg/domain/entities"
)

// DatePreset names a relative date window for filtering
type DatePreset int

const (
	AllTime DatePreset = iota
	Today
	Last7Days
	ThisMonth
	LastMonth
	Last3Months
	Last6Months
	Last12Months
)

// String method for DatePreset enum
func (p DatePreset) String() string {
	switch p {
	case AllTime:
		return "All"
	case Today:
		return "Today"
	case Last7Days:
		return "Last 7 Days"
	case ThisMonth:
		return "This Month"
	case LastMonth:
		return "Last Month"
	case Last3Months:
		return "Last 3 Months"
	case Last6Months:
		return "Last 6 Months"
	case Last12Months:
		return "Last 12 Months"
	default:
		return "Unknown"
	}
}

// ParseDatePreset converts a flag value to a DatePreset
func ParseDatePreset(s string) (DatePreset, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return AllTime, nil
	case "today":
		return Today, nil
	case "7d", "week":
		return Last7Days, nil
	case "month":
		return ThisMonth, nil
	case "last-month":
		return LastMonth, nil
	case "3m":
		return Last3Months, nil
	case "6m":
		return Last6Months, nil
	case "12m", "year":
		return Last12Months, nil
	default:
		return AllTime, &entities.ParseError{Kind: "date preset", Value: s}
	}
}

// DateRange is a half-open filter window. A zero Start or End leaves
// that side unbounded.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range. End is compared at
// day granularity inclusively, matching how operators enter end dates.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !t.Before(r.End.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// Window resolves a preset to a concrete range relative to now.
// LastMonth covers the previous calendar month; ThisMonth the current
// one; the rolling presets count back whole days.
func (p DatePreset) Window(now time.Time) DateRange {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case Today:
		return DateRange{Start: today, End: today}
	case Last7Days:
		return DateRange{Start: today.AddDate(0, 0, -7), End: today}
	case ThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return DateRange{Start: start, End: today}
	case LastMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		start := first.AddDate(0, -1, 0)
		return DateRange{Start: start, End: first.AddDate(0, 0, -1)}
	case Last3Months:
		return DateRange{Start: today.AddDate(0, 0, -90), End: today}
	case Last6Months:
		return DateRange{Start: today.AddDate(0, 0, -180), End: today}
	case Last12Months:
		return DateRange{Start: today.AddDate(0, 0, -365), End: today}
	default:
		return DateRange{}
	}
}

// StockFilter selects stock pieces for read-side views. Zero values
// leave a dimension unfiltered.
type StockFilter struct {
	Product string
	LengthM int
	Status  *entities.StockStatus
	Added   DateRange
}

// FilterStock returns the pieces matching the filter, preserving order
func FilterStock(pieces []entities.StockPiece, f StockFilter) []entities.StockPiece {
	var out []entities.StockPiece
	for _, p := range pieces {
		if f.Product != "" && p.ProductName != f.Product {
			continue
		}
		if f.LengthM != 0 && p.LengthM != f.LengthM {
			continue
		}
		if f.Status != nil && p.Status != *f.Status {
			continue
		}
		if !f.Added.Contains(p.DateAdded) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// OrderFilter selects order lines for read-side views. Customer matches
// case-insensitively on a substring of the customer name.
type OrderFilter struct {
	Customer string
	Product  string
	LengthM  int
	Status   *entities.OrderStatus
	Placed   DateRange
}

// FilterOrders returns the order lines matching the filter, preserving order
func FilterOrders(lines []entities.OrderLine, f OrderFilter) []entities.OrderLine {
	needle := strings.ToLower(f.Customer)
	var out []entities.OrderLine
	for _, l := range lines {
		if needle != "" && !strings.Contains(strings.ToLower(l.Customer.Name), needle) {
			continue
		}
		if f.Product != "" && l.ItemName != f.Product {
			continue
		}
		if f.LengthM != 0 && l.LengthM != f.LengthM {
			continue
		}
		if f.Status != nil && l.Status != *f.Status {
			continue
		}
		if !f.Placed.Contains(l.OrderDate) {
			continue
		}
		out = append(out, l)
	}
	return out
}
