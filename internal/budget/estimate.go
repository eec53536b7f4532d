package budget

import (
	"fmt"
	"strings"
)

// Activity is the minimal view of a curated activity the estimator
// needs.
type Activity struct {
	Name    string
	Type    string
	Rating  float64
	Details string
}

// Range is a min/max cost band in local currency units.
type Range struct {
	Min float64
	Max float64
}

// Estimate is the cost band chosen for a single activity.
type Estimate struct {
	Category string
	Range    Range
}

// Avg returns the midpoint of the band.
func (r Range) Avg() float64 { return (r.Min + r.Max) / 2 }

// Static cost bands by activity type and category. These are heuristics
// keyed off description keywords and rating, not live pricing.
var costBands = map[string]map[string]Range{
	"restaurant": {
		"budget":      {10, 20},
		"moderate":    {20, 40},
		"upscale":     {40, 80},
		"fine_dining": {80, 150},
	},
	"movie": {
		"matinee": {8, 12},
		"evening": {12, 18},
		"premium": {18, 25},
	},
	"outdoor": {
		"free":      {0, 0},
		"admission": {5, 15},
		"activity":  {20, 50},
	},
	"event": {
		"free":     {0, 0},
		"ticketed": {15, 50},
		"concert":  {30, 100},
		"premium":  {100, 300},
	},
}

// EstimateActivity picks a cost band for an activity from its type,
// description keywords and rating.
func EstimateActivity(a Activity) Estimate {
	details := strings.ToLower(a.Details)
	var category string

	switch a.Type {
	case "restaurant":
		switch {
		case containsAny(details, "fine dining", "michelin", "tasting menu", "prix fixe"):
			category = "fine_dining"
		case containsAny(details, "upscale", "elevated", "contemporary", "refined"):
			category = "upscale"
		case containsAny(details, "casual", "food hall", "quick", "counter"):
			category = "budget"
		case a.Rating >= 4.5:
			category = "upscale"
		case a.Rating >= 4.0:
			category = "moderate"
		default:
			category = "budget"
		}
	case "movie":
		switch {
		case containsAny(details, "imax", "3d", "premium"):
			category = "premium"
		case containsAny(details, "matinee", "afternoon"):
			category = "matinee"
		default:
			category = "evening"
		}
	case "outdoor":
		switch {
		case containsAny(details, "free", "trail", "walk", "hike", "park"):
			category = "free"
		case containsAny(details, "admission", "ticket", "entry fee", "botanical", "garden"):
			category = "admission"
		default:
			category = "activity"
		}
	case "event":
		switch {
		case containsAny(details, "free", "no admission", "no charge"):
			category = "free"
		case containsAny(details, "concert", "band"):
			category = "concert"
		case containsAny(details, "ticket", "admission"):
			category = "ticketed"
		default:
			category = "free"
		}
	default:
		return Estimate{Category: "moderate", Range: Range{15, 35}}
	}

	return Estimate{Category: category, Range: costBands[a.Type][category]}
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// Item is the per-activity line of a budget analysis.
type Item struct {
	Name         string
	Type         string
	Category     string
	PerPersonMin float64
	PerPersonMax float64
	TotalMin     float64
	TotalMax     float64
}

// Analysis is the total budget breakdown for an itinerary.
type Analysis struct {
	GroupSize    int
	Location     string
	Currency     Currency
	TotalMin     float64
	TotalMax     float64
	PerPersonMin float64
	PerPersonMax float64
	Breakdown    []Item
}

// perPersonTypes multiply by group size; outdoor costs are flat.
var perPersonTypes = map[string]bool{"restaurant": true, "movie": true, "event": true}

// Analyze estimates the total cost of an itinerary for a group.
func Analyze(activities []Activity, groupSize int, location string) Analysis {
	if groupSize < 1 {
		groupSize = 1
	}
	analysis := Analysis{
		GroupSize: groupSize,
		Location:  location,
		Currency:  CurrencyFor(location),
	}

	for _, a := range activities {
		est := EstimateActivity(a)
		item := Item{
			Name:         a.Name,
			Type:         a.Type,
			Category:     est.Category,
			PerPersonMin: est.Range.Min,
			PerPersonMax: est.Range.Max,
			TotalMin:     est.Range.Min,
			TotalMax:     est.Range.Max,
		}
		if perPersonTypes[a.Type] && est.Category != "free" {
			item.TotalMin = est.Range.Min * float64(groupSize)
			item.TotalMax = est.Range.Max * float64(groupSize)
		}
		analysis.TotalMin += item.TotalMin
		analysis.TotalMax += item.TotalMax
		analysis.Breakdown = append(analysis.Breakdown, item)
	}

	analysis.PerPersonMin = analysis.TotalMin / float64(groupSize)
	analysis.PerPersonMax = analysis.TotalMax / float64(groupSize)
	return analysis
}

// FormatSummary renders a budget analysis as friendly text.
func FormatSummary(a Analysis) string {
	var b strings.Builder
	sym := a.Currency.Symbol

	if a.GroupSize > 1 {
		fmt.Fprintf(&b, "💰 Budget Estimate (for %d people):\n", a.GroupSize)
		fmt.Fprintf(&b, "Total: %s%.0f - %s%.0f\n", sym, a.TotalMin, sym, a.TotalMax)
		fmt.Fprintf(&b, "Per Person: %s%.0f - %s%.0f\n\n", sym, a.PerPersonMin, sym, a.PerPersonMax)
	} else {
		b.WriteString("💰 Budget Estimate:\n")
		fmt.Fprintf(&b, "Total: %s%.0f - %s%.0f\n\n", sym, a.TotalMin, sym, a.TotalMax)
	}

	b.WriteString("Breakdown:\n")
	for _, item := range a.Breakdown {
		switch {
		case item.TotalMin == 0 && item.TotalMax == 0:
			fmt.Fprintf(&b, "- %s: FREE\n", item.Name)
		case a.GroupSize > 1:
			fmt.Fprintf(&b, "- %s: %s%.0f-%s%.0f/person (%s%.0f-%s%.0f total)\n",
				item.Name, sym, item.PerPersonMin, sym, item.PerPersonMax, sym, item.TotalMin, sym, item.TotalMax)
		default:
			fmt.Fprintf(&b, "- %s: %s%.0f-%s%.0f\n", item.Name, sym, item.TotalMin, sym, item.TotalMax)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
