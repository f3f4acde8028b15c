package domain

import "testing"

func TestSurvivalPercent(t *testing.T) {
	tests := []struct {
		name    string
		stocked int
		dead    int
		want    float64
		wantOK  bool
	}{
		{name: "no deaths", stocked: 500, dead: 0, want: 100, wantOK: true},
		{name: "quarter dead", stocked: 400, dead: 100, want: 75, wantOK: true},
		{name: "more dead than stocked floors at zero", stocked: 100, dead: 150, want: 0, wantOK: true},
		{name: "unknown stock", stocked: 0, dead: 3, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SurvivalPercent(tt.stocked, tt.dead)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("SurvivalPercent() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
