package profanity

import "testing"

func TestContains(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"clean english", "milk and bread", false},
		{"clean hebrew", "חלב ולחם", false},
		{"english word", "damn milk", true},
		{"uppercase", "DAMN", true},
		{"substring match", "damnation", true},
		{"hebrew word", "חרא של יום", true},
		{"hebrew substring", "בחראוזן", true},
		{"russian word", "сука", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.text); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", ""},
		{"clean text", "milk", "milk"},
		{"english masked equal length", "damn milk", "**** milk"},
		{"case insensitive", "Damn", "****"},
		{"boundary keeps longer word", "damnation", "damnation"},
		{"hebrew masked by rune count", "חרא", "***"},
		{"hebrew inside sentence", "יום חרא היום", "יום *** היום"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mask(tt.text); got != tt.want {
				t.Errorf("Mask(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
