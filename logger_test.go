// logger_test.go - rate limiter firing schedule
//
// License: GPLv3 or later

package main

import "testing"

func TestRateLimiterFirstOfEveryN(t *testing.T) {
	r := newRateLimiter(300)
	var fires []int
	for i := 0; i < 601; i++ {
		if r.Allow() {
			fires = append(fires, i)
		}
	}
	want := []int{0, 300, 600}
	if len(fires) != len(want) {
		t.Fatalf("fires = %v, want %v", fires, want)
	}
	for i, w := range want {
		if fires[i] != w {
			t.Errorf("fires[%d] = %d, want %d", i, fires[i], w)
		}
	}
}

func TestRateLimiterMinimumEveryOne(t *testing.T) {
	r := newRateLimiter(0)
	for i := 0; i < 3; i++ {
		if !r.Allow() {
			t.Fatalf("every<1 should clamp to 1 (always fire), call %d did not", i)
		}
	}
}
