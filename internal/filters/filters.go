// Package filters normalizes dashboard control values into the ranges the
// renderer and the synthetic source expect.
package filters

import (
	"math"
	"time"

	"github.com/jengzang/wildlife-bi-go/internal/models"
	"github.com/jengzang/wildlife-bi-go/internal/region"
)

// Canonical time-of-day values
const (
	Morning   = "午前"
	Afternoon = "午後"
)

const (
	MinHorizon     = 1
	MaxHorizon     = 30
	DefaultHorizon = 7

	MinOpacity     = 0.10
	MaxOpacity     = 1.00
	DefaultOpacity = 1.00

	MinProbStep = 0.1

	// MaxBaseDates is the number of selectable base dates
	MaxBaseDates = 3

	DateLayout = "2006-01-02"
)

// JST is Japan Standard Time, which has no DST
var JST = time.FixedZone("JST", 9*60*60)

// TimesOfDay lists the canonical values in UI order
var TimesOfDay = []string{Morning, Afternoon}

var morningSynonyms = map[string]bool{
	Morning:   true,
	"AM":      true,
	"am":      true,
	"morning": true,
}

// ClampHorizon limits the forecast horizon to [1,30] days
func ClampHorizon(days int) int {
	return max(MinHorizon, min(MaxHorizon, days))
}

// NormalizeTimeOfDay maps 午前 and its synonyms to 午前 and everything else to 午後
func NormalizeTimeOfDay(v string) string {
	if morningSynonyms[v] {
		return Morning
	}
	return Afternoon
}

// ClampOpacity limits opacity to [0.10,1.00]. NaN becomes the default.
func ClampOpacity(v float64) float64 {
	if math.IsNaN(v) {
		return DefaultOpacity
	}
	return math.Max(MinOpacity, math.Min(MaxOpacity, v))
}

// SnapMinProb clamps to [0,1] and rounds to the nearest 0.1
func SnapMinProb(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Max(0, math.Min(1, v))
	return math.Round(v/MinProbStep) / 10
}

// ListBaseDates returns today in JST followed by the previous days, newest
// first. n is clamped to [1,3].
func ListBaseDates(now time.Time, n int) []string {
	n = max(1, min(MaxBaseDates, n))
	today := now.In(JST)
	dates := make([]string, n)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, -i).Format(DateLayout)
	}
	return dates
}

// Normalize fills defaults and brings every control into range. The part is
// kept only for Hokkaido, where it defaults to 道央.
func Normalize(f models.DashboardFilter, now time.Time) models.DashboardFilter {
	if f.Prefecture == "" {
		f.Prefecture = region.DefaultPrefecture
	}
	if f.Prefecture == region.Hokkaido {
		if f.HokkaidoPart == "" {
			f.HokkaidoPart = region.DefaultHokkaidoPart
		}
	} else {
		f.HokkaidoPart = ""
	}
	if f.Species == "" {
		f.Species = region.DefaultSpecies
	}
	if f.BaseDate == "" {
		f.BaseDate = ListBaseDates(now, 1)[0]
	}

	if f.HorizonDays == 0 {
		f.HorizonDays = DefaultHorizon
	}
	f.HorizonDays = ClampHorizon(f.HorizonDays)

	if f.TimeOfDay == "" {
		f.TimeOfDay = Morning
	}
	f.TimeOfDay = NormalizeTimeOfDay(f.TimeOfDay)

	opacity := DefaultOpacity
	if f.Opacity != nil {
		opacity = ClampOpacity(*f.Opacity)
	}
	f.Opacity = &opacity

	f.MinProb = SnapMinProb(f.MinProb)
	return f
}
