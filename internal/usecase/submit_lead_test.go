package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/digiwolf/leads/internal/entity"
	"github.com/digiwolf/leads/internal/infra/integration/facebook"
	"github.com/digiwolf/leads/internal/usecase"
)

var baseTime = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

func newUseCase(repo *memLeadRepo) (*usecase.LeadUseCase, *fakeClock) {
	clock := newFakeClock(baseTime)
	uc := usecase.NewLeadUseCase(repo, nil, nil, clock)
	uc.Location = time.UTC
	return uc, clock
}

func validInput() usecase.SubmitLeadInput {
	return usecase.SubmitLeadInput{
		Name:     "Sara Ben Ali",
		Phone:    "+21620000000",
		Email:    "sara@example.com",
		Category: "real-estate",
		Browser:  "Chrome",
	}
}

func TestSubmitCompleted_CreatesNewLead(t *testing.T) {
	repo := newMemLeadRepo()
	uc, _ := newUseCase(repo)

	out, err := uc.SubmitCompleted(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, "Lead created successfully", out.Message)
	assert.True(t, out.Created)
	assert.False(t, out.Upgraded)

	stored := repo.get(out.ID)
	require.NotNil(t, stored)
	assert.Equal(t, entity.LeadStatusNew, stored.Status)
	assert.False(t, stored.IsAbandoned)
	assert.Nil(t, stored.AbandonedAt)
	assert.Equal(t, "sara@example.com", *stored.Email)
	assert.Equal(t, entity.CategoryRealEstate, stored.Category)
	assert.Equal(t, baseTime, stored.CreatedAt)
}

func TestSubmitCompleted_UpgradesAbandonedLeadByPhone(t *testing.T) {
	repo := newMemLeadRepo()
	uc, clock := newUseCase(repo)

	abandoned, err := uc.SubmitAbandoned(context.Background(), usecase.AbandonedLeadInput{Phone: "+21620000000"})
	require.NoError(t, err)

	clock.Advance(time.Hour)
	out, err := uc.SubmitCompleted(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, abandoned.ID, out.ID)
	assert.True(t, out.Upgraded)

	all := repo.all()
	require.Len(t, all, 1)
	lead := all[0]
	assert.Equal(t, entity.LeadStatusNew, lead.Status)
	assert.False(t, lead.IsAbandoned)
	assert.Nil(t, lead.AbandonedAt)
	assert.Equal(t, "Sara Ben Ali", lead.Name)
	assert.Equal(t, baseTime, lead.CreatedAt)
	assert.Equal(t, baseTime.Add(time.Hour), lead.UpdatedAt)
}

func TestSubmitCompleted_UpgradesAbandonedLeadByEmail(t *testing.T) {
	repo := newMemLeadRepo()
	uc, clock := newUseCase(repo)

	_, err := uc.SubmitAbandoned(context.Background(), usecase.AbandonedLeadInput{
		Phone: "+21699999999",
		Email: "sara@example.com",
	})
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)
	out, err := uc.SubmitCompleted(context.Background(), validInput())
	require.NoError(t, err)
	assert.True(t, out.Upgraded)

	all := repo.all()
	require.Len(t, all, 1)
	assert.Equal(t, "+21620000000", all[0].Phone)
}

func TestSubmitCompleted_PicksMostRecentAbandoned(t *testing.T) {
	repo := newMemLeadRepo()
	uc, _ := newUseCase(repo)

	older := entity.NewLead("Old", "+21620000000", entity.CategoryOther, baseTime.Add(-48*time.Hour))
	older.SetStatus(entity.LeadStatusAbandoned, older.CreatedAt)
	newer := entity.NewLead("New", "+21620000000", entity.CategoryOther, baseTime.Add(-2*time.Hour))
	newer.SetStatus(entity.LeadStatusAbandoned, newer.CreatedAt)
	repo.put(older)
	repo.put(newer)

	out, err := uc.SubmitCompleted(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, newer.ID, out.ID)
	assert.True(t, repo.get(older.ID).IsAbandoned)
	assert.Len(t, repo.all(), 2)
}

func TestSubmitCompleted_DoesNotTouchCompletedLeads(t *testing.T) {
	repo := newMemLeadRepo()
	uc, _ := newUseCase(repo)

	first, err := uc.SubmitCompleted(context.Background(), validInput())
	require.NoError(t, err)
	second, err := uc.SubmitCompleted(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, repo.all(), 2)
}

func TestSubmitCompleted_ValidationErrors(t *testing.T) {
	repo := newMemLeadRepo()
	uc, _ := newUseCase(repo)

	cases := map[string]usecase.SubmitLeadInput{
		"missing name":     {Phone: "1", Category: "sales"},
		"missing phone":    {Name: "A", Category: "sales"},
		"missing category": {Name: "A", Phone: "1"},
		"unknown category": {Name: "A", Phone: "1", Category: "crypto"},
		"blank name":       {Name: "   ", Phone: "1", Category: "sales"},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := uc.SubmitCompleted(context.Background(), input)
			assert.Nil(t, out)

			var de *usecase.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, usecase.CodeValidation, de.Code)
			assert.NotEmpty(t, de.Fields)
		})
	}
	assert.Empty(t, repo.all())
}

func TestSubmitCompleted_PersistenceFailure(t *testing.T) {
	repo := newMemLeadRepo()
	repo.failWrites = errors.New("disk full")
	uc, _ := newUseCase(repo)

	out, err := uc.SubmitCompleted(context.Background(), validInput())

	assert.Nil(t, out)
	var te *usecase.TechnicalError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, usecase.CodeDatabase, te.Code)
	assert.Equal(t, "Failed to create lead", te.Message)
	assert.ErrorContains(t, te.Unwrap(), "disk full")
}

func TestSubmitCompleted_SendsConversionEventAndEmail(t *testing.T) {
	repo := newMemLeadRepo()
	notifier := new(MockNotifier)
	mailer := new(MockMailer)

	uc, _ := newUseCase(repo)
	uc.Notifier = notifier
	uc.Mailer = mailer
	uc.Currency = "TND"

	events := make(chan facebook.LeadEventInput, 1)
	mailed := make(chan *entity.Lead, 1)

	notifier.On("SendLeadEvent", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { events <- args.Get(1).(facebook.LeadEventInput) }).
		Return(nil)
	mailer.On("SendNewLead", mock.Anything).
		Run(func(args mock.Arguments) { mailed <- args.Get(0).(*entity.Lead) }).
		Return(nil)

	input := validInput()
	input.ClientIP = "203.0.113.7"
	input.RequestUserAgent = "Mozilla/5.0 (iPhone)"
	input.EventSourceURL = "https://digiwolf.com/fr"

	out, err := uc.SubmitCompleted(context.Background(), input)
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, out.ID, ev.EventID)
		assert.Equal(t, baseTime.Unix(), ev.EventTime)
		assert.Equal(t, "Sara", ev.FirstName)
		assert.Equal(t, "Ben Ali", ev.LastName)
		assert.Equal(t, "sara@example.com", ev.Email)
		assert.Equal(t, "+21620000000", ev.Phone)
		assert.Equal(t, "203.0.113.7", ev.ClientIPAddress)
		assert.Equal(t, "Mozilla/5.0 (iPhone)", ev.ClientUserAgent)
		assert.Equal(t, "real-estate", ev.ContentName)
		assert.Equal(t, "real-estate", ev.ContentCategory)
		assert.Equal(t, 0.0, ev.Value)
		assert.Equal(t, "TND", ev.Currency)
		assert.Equal(t, "https://digiwolf.com/fr", ev.EventSourceURL)
	case <-time.After(2 * time.Second):
		t.Fatal("conversion event not sent")
	}

	select {
	case lead := <-mailed:
		assert.Equal(t, out.ID, lead.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("email not sent")
	}
}

func TestSubmitCompleted_NotifierFailureDoesNotFailSubmission(t *testing.T) {
	repo := newMemLeadRepo()
	notifier := new(MockNotifier)
	uc, _ := newUseCase(repo)
	uc.Notifier = notifier

	done := make(chan struct{})
	notifier.On("SendLeadEvent", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { close(done) }).
		Return(errors.New("graph api down"))

	out, err := uc.SubmitCompleted(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier not called")
	}
}

func TestSubmitCompleted_NotificationSurvivesRequestCancellation(t *testing.T) {
	repo := newMemLeadRepo()
	notifier := new(MockNotifier)
	uc, _ := newUseCase(repo)
	uc.Notifier = notifier

	ctxErr := make(chan error, 1)
	notifier.On("SendLeadEvent", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { ctxErr <- args.Get(0).(context.Context).Err() }).
		Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := uc.SubmitCompleted(ctx, validInput())
	cancel()
	require.NoError(t, err)

	select {
	case err := <-ctxErr:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("notifier not called")
	}
}
