package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLead(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)
	lead := NewLead("Sara", "+21620000000", CategorySales, now)

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, LeadStatusNew, lead.Status)
	assert.False(t, lead.IsAbandoned)
	assert.Nil(t, lead.AbandonedAt)
	assert.Equal(t, now, lead.CreatedAt)
	assert.Equal(t, now, lead.UpdatedAt)
	assert.NotEqual(t, lead.ID, NewLead("Sara", "+21620000000", CategorySales, now).ID)
}

func TestLead_SetStatus(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)
	lead := NewLead("Sara", "1", CategorySales, now)

	lead.SetStatus(LeadStatusAbandoned, now)
	assert.True(t, lead.IsAbandoned)
	require.NotNil(t, lead.AbandonedAt)
	assert.Equal(t, now, *lead.AbandonedAt)

	lead.SetStatus(LeadStatusContacted, now.Add(time.Hour))
	assert.Equal(t, LeadStatusContacted, lead.Status)
	assert.False(t, lead.IsAbandoned)
	assert.Nil(t, lead.AbandonedAt)
}

func TestLead_SplitName(t *testing.T) {
	tests := []struct {
		name, first, last string
	}{
		{"Ali Ben Salah", "Ali", "Ben Salah"},
		{"Sara", "Sara", ""},
		{"  Sara   Trabelsi ", "Sara", "Trabelsi"},
		{"", "", ""},
	}
	for _, tt := range tests {
		first, last := (&Lead{Name: tt.name}).SplitName()
		assert.Equal(t, tt.first, first, tt.name)
		assert.Equal(t, tt.last, last, tt.name)
	}
}

func TestLeadStatus_Valid(t *testing.T) {
	for _, s := range LeadStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, LeadStatus("new").Valid())
	assert.False(t, LeadStatus("LOST").Valid())
}

func TestBusinessCategory(t *testing.T) {
	for _, c := range BusinessCategories {
		assert.True(t, c.Valid(), c)
		assert.NotEmpty(t, c.Label())
	}
	assert.Equal(t, "Real Estate", CategoryRealEstate.Label())
	assert.False(t, BusinessCategory("cars").Valid())
	assert.Equal(t, "cars", BusinessCategory("cars").Label())
}

func TestNewAdminUser(t *testing.T) {
	u, err := NewAdminUser("  Admin@DigiWolf.com ", " Admin User ", "hash")
	require.NoError(t, err)
	assert.Equal(t, "admin@digiwolf.com", u.Email)
	assert.Equal(t, "Admin User", u.Name)
	assert.False(t, u.EmailVerified)

	_, err = NewAdminUser("", "x", "hash")
	assert.Error(t, err)
	_, err = NewAdminUser("a@b.c", "x", "")
	assert.Error(t, err)
}
