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

func TestStats(t *testing.T) {
	repo := newMemLeadRepo()
	uc, _ := newUseCase(repo)

	// baseTime = 2025-03-14 15:00 UTC; hoje começa às 00:00
	today := seedLead(repo, "A", "1", entity.CategorySales, baseTime.Add(-time.Hour))
	today.Browser = strPtr("Chrome")
	repo.put(today)

	week := seedLead(repo, "B", "2", entity.CategorySales, baseTime.Add(-72*time.Hour))
	week.Browser = strPtr("")
	repo.put(week)

	month := seedLead(repo, "C", "3", entity.CategoryMeubles, baseTime.AddDate(0, 0, -20))
	month.Browser = strPtr("Chrome")
	repo.put(month)

	old := seedLead(repo, "D", "4", entity.CategoryOther, baseTime.AddDate(0, -3, 0))
	repo.put(old)

	require.NoError(t, uc.MarkAbandoned(context.Background(), week.ID))

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Abandoned)
	assert.Equal(t, 3, stats.Active)
	assert.Equal(t, 1, stats.ByTime.Today)
	assert.Equal(t, 2, stats.ByTime.ThisWeek)
	assert.Equal(t, 3, stats.ByTime.ThisMonth)

	assert.ElementsMatch(t, []entity.CategoryCount{
		{Category: entity.CategorySales, Count: 2},
		{Category: entity.CategoryMeubles, Count: 1},
		{Category: entity.CategoryOther, Count: 1},
	}, stats.ByCategory)

	assert.ElementsMatch(t, []entity.BrowserCount{
		{Browser: "Chrome", Count: 2},
		{Browser: "Unknown", Count: 1},
	}, stats.ByBrowser)
}

func TestStats_EmptyStore(t *testing.T) {
	uc, _ := newUseCase(newMemLeadRepo())

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.Total)
	assert.NotNil(t, stats.ByCategory)
	assert.NotNil(t, stats.ByBrowser)
}

func TestStats_TodayFollowsLocation(t *testing.T) {
	repo := newMemLeadRepo()
	uc, _ := newUseCase(repo)

	// 15:00 UTC = 00:00 do dia 15 em UTC+9
	tokyo := time.FixedZone("UTC+9", 9*3600)
	uc.Location = tokyo

	seedLead(repo, "A", "1", entity.CategorySales, baseTime.Add(-time.Minute))
	seedLead(repo, "B", "2", entity.CategorySales, baseTime)

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ByTime.Today)
}

func TestStats_Failure(t *testing.T) {
	repo := newMemLeadRepo()
	repo.failReads = errors.New("timeout")
	uc, _ := newUseCase(repo)

	stats, err := uc.Stats(context.Background())

	assert.Nil(t, stats)
	var te *usecase.TechnicalError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "Failed to fetch lead statistics", te.Message)
}
