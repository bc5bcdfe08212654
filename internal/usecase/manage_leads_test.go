package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digiwolf/leads/internal/entity"
	"github.com/digiwolf/leads/internal/usecase"
)

func seedLead(repo *memLeadRepo, name, phone string, category entity.BusinessCategory, createdAt time.Time) *entity.Lead {
	l := entity.NewLead(name, phone, category, createdAt)
	repo.put(l)
	return l
}

func TestChangeStatus_ToAbandonedSetsFlag(t *testing.T) {
	repo := newMemLeadRepo()
	uc, clock := newUseCase(repo)
	lead := seedLead(repo, "Sara", "1", entity.CategorySales, baseTime)

	clock.Advance(time.Hour)
	require.NoError(t, uc.ChangeStatus(context.Background(), lead.ID, "abandoned"))

	got := repo.get(lead.ID)
	assert.Equal(t, entity.LeadStatusAbandoned, got.Status)
	assert.True(t, got.IsAbandoned)
	require.NotNil(t, got.AbandonedAt)
	assert.Equal(t, baseTime.Add(time.Hour), *got.AbandonedAt)
}

func TestChangeStatus_AwayFromAbandonedClearsFlag(t *testing.T) {
	repo := newMemLeadRepo()
	uc, _ := newUseCase(repo)
	lead := seedLead(repo, "Sara", "1", entity.CategorySales, baseTime)

	require.NoError(t, uc.ChangeStatus(context.Background(), lead.ID, entity.LeadStatusAbandoned))
	require.NoError(t, uc.ChangeStatus(context.Background(), lead.ID, entity.LeadStatusContacted))

	got := repo.get(lead.ID)
	assert.Equal(t, entity.LeadStatusContacted, got.Status)
	assert.False(t, got.IsAbandoned)
	assert.Nil(t, got.AbandonedAt)
}

func TestChangeStatus_AnyTransitionAllowed(t *testing.T) {
	repo := newMemLeadRepo()
	uc, _ := newUseCase(repo)
	lead := seedLead(repo, "Sara", "1", entity.CategorySales, baseTime)

	for _, s := range []entity.LeadStatus{
		entity.LeadStatusConverted,
		entity.LeadStatusNew,
		entity.LeadStatusQualified,
		entity.LeadStatusContacted,
	} {
		require.NoError(t, uc.ChangeStatus(context.Background(), lead.ID, s))
		assert.Equal(t, s, repo.get(lead.ID).Status)
	}
}

func TestChangeStatus_InvalidStatus(t *testing.T) {
	repo := newMemLeadRepo()
	uc, _ := newUseCase(repo)
	lead := seedLead(repo, "Sara", "1", entity.CategorySales, baseTime)

	err := uc.ChangeStatus(context.Background(), lead.ID, "WON")

	var de *usecase.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, usecase.CodeValidation, de.Code)
	assert.Equal(t, entity.LeadStatusNew, repo.get(lead.ID).Status)
}

func TestChangeStatus_NotFound(t *testing.T) {
	uc, _ := newUseCase(newMemLeadRepo())

	err := uc.ChangeStatus(context.Background(), "missing", entity.LeadStatusContacted)

	var de *usecase.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, usecase.CodeNotFound, de.Code)
}

func TestMarkAndUnmarkAbandoned_KeepStatus(t *testing.T) {
	repo := newMemLeadRepo()
	uc, _ := newUseCase(repo)
	lead := seedLead(repo, "Sara", "1", entity.CategorySales, baseTime)

	require.NoError(t, uc.MarkAbandoned(context.Background(), lead.ID))
	got := repo.get(lead.ID)
	assert.True(t, got.IsAbandoned)
	assert.NotNil(t, got.AbandonedAt)
	assert.Equal(t, entity.LeadStatusNew, got.Status)

	require.NoError(t, uc.UnmarkAbandoned(context.Background(), lead.ID))
	got = repo.get(lead.ID)
	assert.False(t, got.IsAbandoned)
	assert.Nil(t, got.AbandonedAt)
}

func TestGetLead(t *testing.T) {
	repo := newMemLeadRepo()
	uc, _ := newUseCase(repo)
	lead := seedLead(repo, "Sara", "1", entity.CategorySales, baseTime)

	got, err := uc.GetLead(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.ID, got.ID)

	_, err = uc.GetLead(context.Background(), "missing")
	var de *usecase.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, usecase.CodeNotFound, de.Code)
}

func TestListLeads_FiltersAndOrder(t *testing.T) {
	repo := newMemLeadRepo()
	uc, _ := newUseCase(repo)

	a := seedLead(repo, "Amine", "111", entity.CategorySales, baseTime.Add(-3*time.Hour))
	b := seedLead(repo, "Sara", "222", entity.CategoryMeubles, baseTime.Add(-2*time.Hour))
	c := seedLead(repo, "Youssef", "333", entity.CategorySales, baseTime.Add(-1*time.Hour))
	require.NoError(t, uc.MarkAbandoned(context.Background(), b.ID))

	all, err := uc.ListLeads(context.Background(), entity.LeadFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{c.ID, b.ID, a.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	sales, err := uc.ListLeads(context.Background(), entity.LeadFilter{Category: entity.CategorySales})
	require.NoError(t, err)
	assert.Len(t, sales, 2)

	abandoned := true
	onlyAbandoned, err := uc.ListLeads(context.Background(), entity.LeadFilter{IsAbandoned: &abandoned})
	require.NoError(t, err)
	require.Len(t, onlyAbandoned, 1)
	assert.Equal(t, b.ID, onlyAbandoned[0].ID)

	search, err := uc.ListLeads(context.Background(), entity.LeadFilter{Search: "  YOUS "})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, c.ID, search[0].ID)

	none, err := uc.ListLeads(context.Background(), entity.LeadFilter{Search: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestListLeads_Failure(t *testing.T) {
	repo := newMemLeadRepo()
	repo.failReads = errors.New("boom")
	uc, _ := newUseCase(repo)

	leads, err := uc.ListLeads(context.Background(), entity.LeadFilter{})

	assert.True(t, usecase.IsTechnicalError(err))
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
}

func TestBulkDelete(t *testing.T) {
	repo := newMemLeadRepo()
	uc, _ := newUseCase(repo)
	a := seedLead(repo, "A", "1", entity.CategorySales, baseTime)
	b := seedLead(repo, "B", "2", entity.CategorySales, baseTime)
	c := seedLead(repo, "C", "3", entity.CategorySales, baseTime)

	n, err := uc.BulkDelete(context.Background(), []string{a.ID, b.ID, "does-not-exist"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	remaining := repo.all()
	require.Len(t, remaining, 1)
	assert.Equal(t, c.ID, remaining[0].ID)
}

func TestBulkDelete_EmptySelection(t *testing.T) {
	repo := newMemLeadRepo()
	uc, _ := newUseCase(repo)
	seedLead(repo, "A", "1", entity.CategorySales, baseTime)

	for _, ids := range [][]string{nil, {}, {"", "  "}} {
		n, err := uc.BulkDelete(context.Background(), ids)
		assert.Zero(t, n)

		var de *usecase.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "No leads selected for deletion", de.Message)
	}
	assert.Len(t, repo.all(), 1)
}
