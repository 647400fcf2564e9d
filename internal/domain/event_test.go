package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvent_ValidateSlugs(t *testing.T) {
	date := time.Date(2026, 11, 4, 9, 0, 0, 0, time.UTC)
	series := func(s string) *string { return &s }

	tests := []struct {
		name    string
		slug    string
		series  *string
		wantErr bool
	}{
		{name: "canonical slug", slug: "cyber-first-kuwait-2026"},
		{name: "canonical series", slug: "ot-security-first-2026", series: series("ot-security-first")},
		{name: "empty series pointer", slug: "cyber-first-2026", series: series("")},
		{name: "uppercase slug", slug: "Cyber-First", wantErr: true},
		{name: "doubled hyphen", slug: "cyber--first", wantErr: true},
		{name: "trailing hyphen", slug: "cyber-first-", wantErr: true},
		{name: "series with spaces", slug: "cyber-first-2026", series: series("cyber first"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvent("Cyber First Kuwait", tt.slug, tt.series, date, "Kuwait City", nil, date, date)
			err := e.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSponsor_ValidateSlug(t *testing.T) {
	now := time.Now()
	ok := Sponsor{Name: "Acme Security", Slug: "acme-security", CreatedAt: now, UpdatedAt: now}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.Slug = "Acme Security"
	assert.ErrorContains(t, bad.Validate(), "lowercase hyphenated slug")
}
