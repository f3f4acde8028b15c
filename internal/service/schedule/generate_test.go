package schedule

import (
	"reflect"
	"testing"
)

func TestGenerateTimes(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "zero", n: 0, want: nil},
		{name: "negative", n: -2, want: nil},
		{name: "single slot is pinned to 17:00", n: 1, want: []string{"17:00"}},
		{name: "two slots", n: 2, want: []string{"07:00", "17:00"}},
		{name: "three slots", n: 3, want: []string{"07:00", "12:00", "17:00"}},
		{name: "four slots round to the minute", n: 4, want: []string{"07:00", "10:20", "13:40", "17:00"}},
		{name: "seven slots", n: 7, want: []string{"07:00", "08:40", "10:20", "12:00", "13:40", "15:20", "17:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateTimes(tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenerateTimes(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestGenerateTimes_LastAlwaysFivePM(t *testing.T) {
	for n := 1; n <= 24; n++ {
		got := GenerateTimes(n)
		if len(got) != n {
			t.Fatalf("n=%d: got %d entries", n, len(got))
		}
		if got[n-1] != "17:00" {
			t.Errorf("n=%d: last entry = %q, want 17:00", n, got[n-1])
		}
	}
}
