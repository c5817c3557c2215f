package duration

import "testing"

func TestParseISO(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "minutes only", input: "PT20M", want: 20},
		{name: "days hours minutes", input: "P0DT1H30M", want: 90},
		{name: "zero minutes", input: "PT0M", want: 0},
		{name: "zero hours", input: "P0DT0H30M", want: 30},
		{name: "hours without minutes", input: "PT2H", want: 120},
		{name: "missing minute digits", input: "PTM", want: 0},
		{name: "seconds suffix ignored", input: "PT1H30M15S", want: 90},
		{name: "empty", input: "", want: 0},
		{name: "garbage", input: "soon", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseISO(tt.input); got != tt.want {
				t.Errorf("ParseISO(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFreeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "hours and minutes", input: "1 hr 20 min", want: 80},
		{name: "minutes only", input: "45 min", want: 45},
		{name: "plural units", input: "2 hrs 5 mins", want: 125},
		{name: "hours only", input: "3 hr", want: 180},
		{name: "no units", input: "20", want: 0},
		{name: "empty", input: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseFreeText(tt.input); got != tt.want {
				t.Errorf("ParseFreeText(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Dispatch(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{input: "PT45M", want: 45},
		{input: " P0DT1H0M ", want: 60},
		{input: "1 hr 10 min", want: 70},
		{input: "Prep 10 min", want: 10},
		{input: "P", want: 0},
		{input: "   ", want: 0},
	}

	for _, tt := range tests {
		if got := Parse(tt.input); got != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
