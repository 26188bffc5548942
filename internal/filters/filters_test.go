package filters

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jengzang/wildlife-bi-go/internal/models"
)

func TestClampHorizon(t *testing.T) {
	cases := map[int]int{-5: 1, 0: 1, 1: 1, 7: 7, 30: 30, 31: 30, 365: 30}
	for in, want := range cases {
		if got := ClampHorizon(in); got != want {
			t.Fatalf("ClampHorizon(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestNormalizeTimeOfDay(t *testing.T) {
	if NormalizeTimeOfDay("AM") != NormalizeTimeOfDay("午前") {
		t.Fatal("AM and 午前 should normalize to the same value")
	}
	if NormalizeTimeOfDay("AM") == NormalizeTimeOfDay("PM") {
		t.Fatal("AM and PM should differ")
	}
	for _, v := range []string{"午前", "AM", "am", "morning"} {
		if got := NormalizeTimeOfDay(v); got != Morning {
			t.Fatalf("NormalizeTimeOfDay(%q) = %q", v, got)
		}
	}
	for _, v := range []string{"午後", "PM", "Morning", "", "evening"} {
		if got := NormalizeTimeOfDay(v); got != Afternoon {
			t.Fatalf("NormalizeTimeOfDay(%q) = %q", v, got)
		}
	}
}

func TestClampOpacityAndSnapMinProb(t *testing.T) {
	if got := ClampOpacity(0); got != MinOpacity {
		t.Fatalf("expected %v, got %v", MinOpacity, got)
	}
	if got := ClampOpacity(2); got != MaxOpacity {
		t.Fatalf("expected %v, got %v", MaxOpacity, got)
	}
	if got := ClampOpacity(0.55); got != 0.55 {
		t.Fatalf("expected 0.55, got %v", got)
	}
	if got := ClampOpacity(math.NaN()); got != DefaultOpacity {
		t.Fatalf("expected default for NaN, got %v", got)
	}

	snaps := map[float64]float64{-1: 0, 0: 0, 0.04: 0, 0.06: 0.1, 0.3: 0.3, 0.349: 0.3, 0.96: 1, 1.5: 1}
	for in, want := range snaps {
		if got := SnapMinProb(in); math.Abs(got-want) > 1e-12 {
			t.Fatalf("SnapMinProb(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestListBaseDates(t *testing.T) {
	// 20:00 UTC is already the next day in JST.
	now := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

	got := ListBaseDates(now, 3)
	want := []string{"2024-03-02", "2024-03-01", "2024-02-29"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := ListBaseDates(now, 0); len(got) != 1 {
		t.Fatalf("expected at least one date, got %v", got)
	}
	if got := ListBaseDates(now, 10); len(got) != MaxBaseDates {
		t.Fatalf("expected at most %d dates, got %v", MaxBaseDates, got)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	now := time.Date(2024, 5, 10, 3, 0, 0, 0, time.UTC)
	f := Normalize(models.DashboardFilter{}, now)

	if f.Prefecture != "東京都" || f.HokkaidoPart != "" || f.Species != "熊" {
		t.Fatalf("unexpected region defaults: %+v", f)
	}
	if f.BaseDate != "2024-05-10" || f.HorizonDays != DefaultHorizon || f.TimeOfDay != Morning {
		t.Fatalf("unexpected defaults: %+v", f)
	}
	if f.Opacity == nil || *f.Opacity != DefaultOpacity || f.MinProb != 0 {
		t.Fatalf("unexpected display defaults: %+v", f)
	}
}

func TestNormalizeHokkaidoPart(t *testing.T) {
	now := time.Now()
	f := Normalize(models.DashboardFilter{Prefecture: "北海道"}, now)
	if f.HokkaidoPart != "道央" {
		t.Fatalf("expected default part 道央, got %q", f.HokkaidoPart)
	}
	f = Normalize(models.DashboardFilter{Prefecture: "大阪府", HokkaidoPart: "道東"}, now)
	if f.HokkaidoPart != "" {
		t.Fatalf("expected part to be dropped outside Hokkaido, got %q", f.HokkaidoPart)
	}
}

func TestNormalizeClamps(t *testing.T) {
	opacity := 0.01
	f := Normalize(models.DashboardFilter{
		HorizonDays: 99,
		TimeOfDay:   "PM",
		Opacity:     &opacity,
		MinProb:     0.27,
	}, time.Now())

	if f.HorizonDays != MaxHorizon || f.TimeOfDay != Afternoon || *f.Opacity != MinOpacity {
		t.Fatalf("unexpected clamped filter: %+v", f)
	}
	if math.Abs(f.MinProb-0.3) > 1e-12 {
		t.Fatalf("expected min prob 0.3, got %v", f.MinProb)
	}
	if opacity != 0.01 {
		t.Fatal("caller's opacity was modified")
	}
}

func TestValidationRules(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterRules(v); err != nil {
		t.Fatalf("failed to register rules: %v", err)
	}

	valid := models.DashboardFilter{Prefecture: "北海道", HokkaidoPart: "道南", Species: "鹿", BaseDate: "2024-05-10"}
	if err := v.Struct(valid); err != nil {
		t.Fatalf("expected valid filter, got %v", err)
	}
	if err := v.Struct(models.DashboardFilter{}); err != nil {
		t.Fatalf("expected empty filter to be valid, got %v", err)
	}

	invalid := []models.DashboardFilter{
		{Prefecture: "Atlantis"},
		{HokkaidoPart: "道西"},
		{Species: "狐"},
		{BaseDate: "2024/05/10"},
		{BaseDate: "2024-13-01"},
	}
	for _, f := range invalid {
		if err := v.Struct(f); err == nil {
			t.Fatalf("expected validation error for %+v", f)
		}
	}
}
