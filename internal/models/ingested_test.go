package models

import (
	"reflect"
	"testing"
)

func TestProgressSetChapter(t *testing.T) {
	p := &Progress{CompletedChapters: []int{}}

	p.SetChapter(1, true)
	p.SetChapter(2, true)
	p.SetChapter(1, true) // re-adding is a no-op

	want := []int{1, 2}
	if !reflect.DeepEqual(p.CompletedChapters, want) {
		t.Errorf("Expected completed chapters to be %v, got %v", want, p.CompletedChapters)
	}

	p.SetChapter(1, false)
	p.SetChapter(7, false) // removing an absent chapter is a no-op

	want = []int{2}
	if !reflect.DeepEqual(p.CompletedChapters, want) {
		t.Errorf("Expected completed chapters to be %v, got %v", want, p.CompletedChapters)
	}
}

func TestProgressHasChapter(t *testing.T) {
	p := &Progress{CompletedChapters: []int{3, 5}}

	if !p.HasChapter(3) {
		t.Error("Expected chapter 3 to be completed")
	}
	if p.HasChapter(4) {
		t.Error("Expected chapter 4 to not be completed")
	}
}

func TestProgressPercentage(t *testing.T) {
	cases := []struct {
		completed []int
		total     int
		want      int
	}{
		{[]int{}, 3, 0},
		{[]int{1}, 3, 33},
		{[]int{1, 2}, 3, 66},
		{[]int{1, 2, 3}, 3, 100},
		{[]int{1, 2, 3, 4, 5}, 3, 100}, // stale entries never exceed 100
		{[]int{1}, 0, 0},               // a course without chapters has no progress
	}

	for _, c := range cases {
		p := &Progress{CompletedChapters: c.completed}
		if got := p.Percentage(c.total); got != c.want {
			t.Errorf("Expected %d/%d chapters to be %d%%, got %d%%", len(c.completed), c.total, c.want, got)
		}
	}
}
