package model

import (
	"reflect"
	"testing"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		token string
		want  Weekday
		ok    bool
	}{
		{"MONDAY", Monday, true},
		{"sunday", Sunday, true},
		{" Friday ", Friday, true},
		{"", "", false},
		{"FUNDAY", "", false},
		{"MON", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseWeekday(tt.token)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseWeekday(%q) = (%q, %v), want (%q, %v)", tt.token, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeWeekdays(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   []Weekday
		ok     bool
	}{
		{
			name:   "sorted and deduped",
			tokens: []string{"FRIDAY", "monday", "FRIDAY", "WEDNESDAY"},
			want:   []Weekday{Monday, Wednesday, Friday},
			ok:     true,
		},
		{
			name:   "empty set is valid",
			tokens: []string{},
			want:   []Weekday{},
			ok:     true,
		},
		{
			name:   "one bad token rejects all",
			tokens: []string{"MONDAY", "NOPE"},
			want:   nil,
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeWeekdays(tt.tokens)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if tt.ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScheduleDaysRoundTrip(t *testing.T) {
	var s Schedule
	days := []Weekday{Tuesday, Saturday}
	s.SetDays(days)

	if got := s.DaySet(); !reflect.DeepEqual(got, days) {
		t.Errorf("DaySet() = %v, want %v", got, days)
	}
	if !s.ContainsDay(Tuesday) {
		t.Error("ContainsDay(Tuesday) = false, want true")
	}
	if s.ContainsDay(Monday) {
		t.Error("ContainsDay(Monday) = true, want false")
	}
}

func TestScheduleEmptyDays(t *testing.T) {
	var s Schedule
	if got := s.DaySet(); got != nil {
		t.Errorf("DaySet() on zero value = %v, want nil", got)
	}

	s.SetDays(nil)
	if s.Days != "[]" {
		t.Errorf("SetDays(nil) stored %q, want %q", s.Days, "[]")
	}
	if got := s.DaySet(); len(got) != 0 {
		t.Errorf("DaySet() = %v, want empty", got)
	}
}

func TestIntersectDays(t *testing.T) {
	a := []Weekday{Monday, Wednesday, Friday}
	b := []Weekday{Friday, Wednesday, Sunday}

	got := IntersectDays(a, b)
	want := []Weekday{Wednesday, Friday}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("IntersectDays = %v, want %v", got, want)
	}

	if got := IntersectDays(a, nil); len(got) != 0 {
		t.Errorf("IntersectDays with empty = %v, want empty", got)
	}
}

func TestSubtractDays(t *testing.T) {
	a := []Weekday{Monday, Wednesday, Friday}
	b := []Weekday{Wednesday}

	got := SubtractDays(a, b)
	want := []Weekday{Monday, Friday}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SubtractDays = %v, want %v", got, want)
	}

	if got := SubtractDays(a, a); len(got) != 0 {
		t.Errorf("SubtractDays(a, a) = %v, want empty", got)
	}
}
