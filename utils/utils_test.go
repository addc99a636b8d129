package utils_test

import (
	"reflect"
	"testing"

	"plastiwood-backend/utils"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.004, 1.0},
		{1.016, 1.02},
		{99.994, 99.99},
		{99.996, 100},
		{-2.346, -2.35},
		{17.9982, 18},
		{8.9991, 9},
	}
	for _, tc := range tests {
		if got := utils.Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeDTO(t *testing.T) {
	type dto struct {
		Name  string
		HSN   string
		Price float64
		Qty   int
	}
	in := dto{Name: "  PVC sheet ", HSN: "3920\t", Price: 12.345, Qty: 7}
	utils.NormalizeDTO(&in)

	if in.Name != "PVC sheet" || in.HSN != "3920" {
		t.Errorf("strings not trimmed: %+v", in)
	}
	if in.Price != 12.35 {
		t.Errorf("price = %v, want 12.35", in.Price)
	}
	if in.Qty != 7 {
		t.Errorf("int field changed: %d", in.Qty)
	}

	// Non-pointer and non-struct inputs are ignored without panicking.
	utils.NormalizeDTO(in)
	utils.NormalizeDTO(nil)
}

func TestNormalizePtrDTO(t *testing.T) {
	name := "  widget "
	price := 9.999
	type dto struct {
		Name  *string
		Price *float64
		Notes *string
	}
	in := dto{Name: &name, Price: &price}
	utils.NormalizePtrDTO(&in)

	if *in.Name != "widget" {
		t.Errorf("name = %q, want trimmed", *in.Name)
	}
	if *in.Price != 10 {
		t.Errorf("price = %v, want 10", *in.Price)
	}
	if in.Notes != nil {
		t.Error("nil field was materialized")
	}
}

func TestUpdatesFromPtrDTO(t *testing.T) {
	status := "paid"
	paid := 1180.0
	type dto struct {
		Status     *string  `json:"status"`
		PaidAmount *float64 `json:"paidAmount"`
		Ignored    *string  `json:"-"`
		Untagged   *string
		Notes      *string `json:"notes,omitempty"`
	}
	skip := "x"
	in := dto{Status: &status, PaidAmount: &paid, Ignored: &skip, Untagged: &skip}

	got := utils.UpdatesFromPtrDTO(&in, map[string]string{"paidAmount": "paid_amount"})
	want := map[string]any{
		"status":      "paid",
		"paid_amount": 1180.0,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("updates = %#v, want %#v", got, want)
	}
}

func TestUpdatesFromPtrDTO_NilFieldsOmitted(t *testing.T) {
	type dto struct {
		Status *string `json:"status"`
		Notes  *string `json:"notes"`
	}
	got := utils.UpdatesFromPtrDTO(&dto{}, nil)
	if len(got) != 0 {
		t.Errorf("empty DTO produced updates: %#v", got)
	}
}

func TestUpdatesFromPtrDTO_CommaOptionStripped(t *testing.T) {
	notes := "rush order"
	type dto struct {
		Notes *string `json:"notes,omitempty"`
	}
	got := utils.UpdatesFromPtrDTO(&dto{Notes: &notes}, nil)
	if got["notes"] != "rush order" {
		t.Errorf("json tag option not stripped: %#v", got)
	}
}

func TestParseIntDefault(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"50", 100, 50},
		{" 25 ", 100, 25},
		{"", 100, 100},
		{"abc", 100, 100},
		{"-5", 100, 100},
		{"0", 100, 0},
	}
	for _, tc := range tests {
		if got := utils.ParseIntDefault(tc.in, tc.def); got != tc.want {
			t.Errorf("ParseIntDefault(%q, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
		}
	}
}
