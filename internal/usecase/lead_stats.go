package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/digiwolf/leads/internal/entity"
	"github.com/digiwolf/leads/internal/infra/logger"
)

const unknownBrowser = "Unknown"

// Stats monta o painel do dashboard. As contagens rodam em paralelo.
func (uc *LeadUseCase) Stats(ctx context.Context) (*LeadStats, error) {
	today, week, month := uc.timeBoundaries()

	var (
		stats      LeadStats
		byCategory []entity.CategoryCount
		byBrowser  []entity.BrowserCount
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.Total, err = uc.Repo.Count(gctx, false)
		return err
	})
	g.Go(func() (err error) {
		stats.Abandoned, err = uc.Repo.Count(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		byCategory, err = uc.Repo.CountByCategory(gctx)
		return err
	})
	g.Go(func() (err error) {
		byBrowser, err = uc.Repo.CountByBrowser(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ByTime.Today, err = uc.Repo.CountCreatedSince(gctx, today)
		return err
	})
	g.Go(func() (err error) {
		stats.ByTime.ThisWeek, err = uc.Repo.CountCreatedSince(gctx, week)
		return err
	})
	g.Go(func() (err error) {
		stats.ByTime.ThisMonth, err = uc.Repo.CountCreatedSince(gctx, month)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Log.Error().Err(err).Msg("erro ao calcular estatísticas de leads")
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Failed to fetch lead statistics", Err: err}
	}

	stats.Active = stats.Total - stats.Abandoned

	stats.ByCategory = make([]entity.CategoryCount, 0, len(byCategory))
	stats.ByCategory = append(stats.ByCategory, byCategory...)

	stats.ByBrowser = make([]entity.BrowserCount, 0, len(byBrowser))
	for _, b := range byBrowser {
		if b.Browser == "" {
			b.Browser = unknownBrowser
		}
		stats.ByBrowser = append(stats.ByBrowser, b)
	}

	return &stats, nil
}

// timeBoundaries: início do dia local, 7 dias antes e 1 mês antes, em UTC.
func (uc *LeadUseCase) timeBoundaries() (today, week, month time.Time) {
	loc := uc.Location
	if loc == nil {
		loc = time.Local
	}
	now := uc.Clock.Now().In(loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, -7).UTC(), start.AddDate(0, -1, 0).UTC()
}
