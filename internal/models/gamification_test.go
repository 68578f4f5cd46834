package models

import "testing"

func TestXPForAction(t *testing.T) {
	cases := []struct {
		action XPAction
		value  int
		want   int
	}{
		{XPActionChapterCompleted, 0, 50},
		{XPActionCourseCompleted, 0, 200},
		{XPActionReviewSubmitted, 0, 20},
		{XPActionDailyLogin, 0, 10},
		{XPActionCustom, 35, 35},
		{XPActionCustom, -5, 0},
		{XPActionCustom, 0, 0},
		{"unknown_action", 35, 0},
	}

	for _, c := range cases {
		if got := XPForAction(c.action, c.value); got != c.want {
			t.Errorf("Expected %q with value %d to award %d XP, got %d", c.action, c.value, c.want, got)
		}
	}
}
