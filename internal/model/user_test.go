package model

import (
	"testing"
	"time"
)

func TestSubscriptionValidAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name string
		end  *time.Time
		want bool
	}{
		{"no end date", nil, false},
		{"end in future", &future, true},
		{"end in past", &past, false},
		{"end exactly now", &now, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := &User{SubscriptionEnd: tc.end}
			if got := u.SubscriptionValidAt(now); got != tc.want {
				t.Errorf("SubscriptionValidAt = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDaysRemainingAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"full thirty days", now.AddDate(0, 0, 30), 30},
		{"half a day floors to zero", now.Add(12 * time.Hour), 0},
		{"one and a half days floors to one", now.Add(36 * time.Hour), 1},
		{"elapsed clamps to zero", now.AddDate(0, 0, -5), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			end := tc.end
			u := &User{SubscriptionEnd: &end}
			if got := u.DaysRemainingAt(now); got != tc.want {
				t.Errorf("DaysRemainingAt = %d, want %d", got, tc.want)
			}
		})
	}

	t.Run("no end date", func(t *testing.T) {
		u := &User{}
		if got := u.DaysRemainingAt(now); got != 0 {
			t.Errorf("DaysRemainingAt = %d, want 0", got)
		}
	})
}

// A tenant whose trial elapsed without any payment keeps the "trial" label in
// storage; only the time-derived check reports the truth.
func TestElapsedTrialKeepsLabelButIsInvalid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	elapsed := now.AddDate(0, 0, -1)
	u := &User{SubscriptionStatus: SubscriptionTrial, SubscriptionEnd: &elapsed}

	if u.SubscriptionStatus != SubscriptionTrial {
		t.Errorf("status = %s, want trial label preserved", u.SubscriptionStatus)
	}
	if u.SubscriptionValidAt(now) {
		t.Error("elapsed trial must not be valid")
	}
	if u.DaysRemainingAt(now) != 0 {
		t.Errorf("days remaining = %d, want 0", u.DaysRemainingAt(now))
	}
}
