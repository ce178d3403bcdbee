package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "unknown dropped, duplicates preserved",
			in:   []string{"Plumbing", "Bogus", "Plumbing"},
			want: []string{"Plumbing", "Plumbing"},
		},
		{
			name: "all known kept in order",
			in:   []string{"Wifi", "Safety"},
			want: []string{"Wifi", "Safety"},
		},
		{
			name: "case sensitive, wrong casing dropped",
			in:   []string{"wifi", "WIFI", "Wifi"},
			want: []string{"Wifi"},
		},
		{
			name: "all unknown",
			in:   []string{"Bogus", "Nonsense"},
			want: []string{},
		},
		{
			name: "empty input",
			in:   []string{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeTags(tt.in))
		})
	}
}

func TestResolutionAwardSumsTagPoints(t *testing.T) {
	assert.Equal(t, 30, ResolutionAward([]string{"Wifi", "Safety"}, SeverityLow))
	assert.Equal(t, 50, ResolutionAward([]string{"Structural", "Fire Safety"}, SeverityLow))
	// duplicates count twice
	assert.Equal(t, 20, ResolutionAward([]string{"Wifi", "Wifi"}, SeverityHigh))
}

func TestResolutionAwardSeverityFallback(t *testing.T) {
	tests := []struct {
		severity IssueSeverity
		want     int
	}{
		{SeverityHigh, 20},
		{SeverityMedium, 10},
		{SeverityLow, 5},
		{SeverityCritical, 5},
		{IssueSeverity(""), 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			assert.Equal(t, tt.want, ResolutionAward(nil, tt.severity))
			// unrecognized tags contribute nothing, so the fallback applies
			assert.Equal(t, tt.want, ResolutionAward([]string{"bogus"}, tt.severity))
		})
	}
}

func TestKnownTags(t *testing.T) {
	assert.True(t, KnownTag("Wifi"))
	assert.True(t, KnownTag("Pest Control"))
	assert.False(t, KnownTag("wifi"))
	assert.False(t, KnownTag(""))
	assert.Len(t, KnownTags(), len(TagPoints))
}
