package models

import (
	"testing"
	"time"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}

func TestEvaluateSchedule(t *testing.T) {
	loc := mustLoc(t, "Europe/Moscow")
	date := func(y int, m time.Month, d, hh, mm int) time.Time {
		return time.Date(y, m, d, hh, mm, 0, 0, loc)
	}

	tests := []struct {
		name      string
		frequency string
		start     time.Time
		now       time.Time
		fire      bool
		next      time.Time
	}{
		{
			name:      "daily fires on the exact minute",
			frequency: FrequencyDaily,
			start:     date(2024, time.January, 1, 9, 0),
			now:       date(2024, time.January, 1, 9, 0),
			fire:      true,
			next:      date(2024, time.January, 2, 9, 0),
		},
		{
			name:      "daily does not fire one minute late",
			frequency: FrequencyDaily,
			start:     date(2024, time.January, 1, 9, 0),
			now:       date(2024, time.January, 1, 9, 1),
			fire:      false,
		},
		{
			name:      "daily does not fire before start even on a matching minute",
			frequency: FrequencyDaily,
			start:     date(2024, time.January, 2, 9, 0),
			now:       date(2024, time.January, 1, 9, 0),
			fire:      false,
		},
		{
			name:      "daily fires on later days at the same minute",
			frequency: FrequencyDaily,
			start:     date(2024, time.January, 1, 9, 0),
			now:       date(2024, time.January, 5, 9, 0),
			fire:      true,
			next:      date(2024, time.January, 2, 9, 0),
		},
		{
			// The next start is always the previous scheduled start plus one
			// interval. A stored start of Jan 8 here means the Jan 1
			// occurrence already fired and advanced; a Jan 15 next only
			// appears after that advancement, never straight from Jan 1.
			name:      "weekly fires a week later on the same weekday",
			frequency: FrequencyWeekly,
			start:     date(2024, time.January, 1, 10, 0), // Monday
			now:       date(2024, time.January, 8, 10, 0), // Monday
			fire:      true,
			next:      date(2024, time.January, 8, 10, 0),
		},
		{
			name:      "weekly does not fire on a different weekday",
			frequency: FrequencyWeekly,
			start:     date(2024, time.January, 1, 10, 0), // Monday
			now:       date(2024, time.January, 9, 10, 0), // Tuesday
			fire:      false,
		},
		{
			name:      "monthly fires on the same day of month",
			frequency: FrequencyMonthly,
			start:     date(2024, time.January, 15, 12, 30),
			now:       date(2024, time.February, 15, 12, 30),
			fire:      true,
			next:      date(2024, time.February, 14, 12, 30),
		},
		{
			name:      "monthly does not fire on a different day of month",
			frequency: FrequencyMonthly,
			start:     date(2024, time.January, 15, 12, 30),
			now:       date(2024, time.February, 16, 12, 30),
			fire:      false,
		},
		{
			name:      "unknown frequency never fires",
			frequency: "hourly",
			start:     date(2024, time.January, 1, 9, 0),
			now:       date(2024, time.January, 1, 9, 0),
			fire:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fire, next := EvaluateSchedule(tt.frequency, tt.start, tt.now)
			if fire != tt.fire {
				t.Fatalf("EvaluateSchedule(%s, %v, %v) fire = %v, want %v",
					tt.frequency, tt.start, tt.now, fire, tt.fire)
			}
			if tt.fire && !next.Equal(tt.next) {
				t.Errorf("next = %v, want %v", next, tt.next)
			}
			if !tt.fire && !next.Equal(tt.start) {
				t.Errorf("next = %v, want unchanged start %v", next, tt.start)
			}
		})
	}
}

func TestEvaluateScheduleIsPure(t *testing.T) {
	loc := mustLoc(t, "Europe/Moscow")
	start := time.Date(2024, time.March, 4, 8, 15, 0, 0, loc)
	now := time.Date(2024, time.March, 11, 8, 15, 0, 0, loc)

	fire1, next1 := EvaluateSchedule(FrequencyWeekly, start, now)
	fire2, next2 := EvaluateSchedule(FrequencyWeekly, start, now)

	if fire1 != fire2 || !next1.Equal(next2) {
		t.Errorf("repeated evaluation differs: (%v, %v) vs (%v, %v)", fire1, next1, fire2, next2)
	}
}

func TestEvaluateScheduleAdvancement(t *testing.T) {
	loc := mustLoc(t, "Europe/Moscow")
	start := time.Date(2024, time.June, 3, 9, 0, 0, 0, loc) // Monday

	intervals := map[string]time.Time{
		FrequencyDaily:   start.AddDate(0, 0, 1),
		FrequencyWeekly:  start.AddDate(0, 0, 7),
		FrequencyMonthly: start.AddDate(0, 0, 30),
	}

	for freq, want := range intervals {
		fire, next := EvaluateSchedule(freq, start, start)
		if !fire {
			t.Fatalf("%s: expected fire at start minute", freq)
		}
		if !next.Equal(want) {
			t.Errorf("%s: next = %v, want %v", freq, next, want)
		}
		if !next.After(start) {
			t.Errorf("%s: next start must strictly exceed start", freq)
		}
	}
}

func TestEvaluateScheduleCrossTimezone(t *testing.T) {
	msk := mustLoc(t, "Europe/Moscow")
	// Start stored in UTC, clock read in Moscow: 06:00 UTC is 09:00 MSK.
	start := time.Date(2024, time.January, 1, 6, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.January, 1, 9, 0, 0, 0, msk)

	fire, _ := EvaluateSchedule(FrequencyDaily, start, now)
	if !fire {
		t.Error("expected fire when start and now name the same instant's minute")
	}
}

func TestEndTimeFor(t *testing.T) {
	start := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		frequency string
		want      *time.Time
	}{
		{FrequencyDaily, ptr(start.AddDate(0, 0, 1))},
		{FrequencyWeekly, ptr(start.AddDate(0, 0, 7))},
		{FrequencyMonthly, ptr(start.AddDate(0, 0, 30))},
		{"bogus", nil},
	}

	for _, tt := range tests {
		got := EndTimeFor(tt.frequency, start)
		if (got == nil) != (tt.want == nil) {
			t.Errorf("EndTimeFor(%s) = %v, want %v", tt.frequency, got, tt.want)
			continue
		}
		if got != nil && !got.Equal(*tt.want) {
			t.Errorf("EndTimeFor(%s) = %v, want %v", tt.frequency, *got, *tt.want)
		}
	}
}

func ptr(t time.Time) *time.Time { return &t }
