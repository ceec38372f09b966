package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JSmilg/veracity/internal/events"
	"github.com/JSmilg/veracity/internal/feeds"
	"github.com/JSmilg/veracity/internal/model"
	"github.com/JSmilg/veracity/internal/store"
)

type fakeFeed struct {
	name      string
	transfers []model.ConfirmedTransfer
	err       error
}

func (f *fakeFeed) Name() string { return f.name }

func (f *fakeFeed) Transfers(ctx context.Context) ([]model.ConfirmedTransfer, error) {
	return f.transfers, f.err
}

func completed(player, from, to, source string) model.ConfirmedTransfer {
	date := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)
	return model.ConfirmedTransfer{
		PlayerName:   player,
		FromClub:     from,
		ToClub:       to,
		Fee:          "£60m",
		TransferDate: &date,
		SourceURL:    "https://example.com/" + source,
		Source:       source,
	}
}

func (s *PipelineTestSuite) riceClaim() *model.Claim {
	return s.insertClaim("David Ornstein", model.Claim{
		Text:       "Arsenal are interested in midfielder Declan Rice",
		PlayerName: "Declan Rice",
		ToClub:     "Arsenal",
		ClaimDate:  time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	})
}

func (s *PipelineTestSuite) TestValidate_ConfirmsAndRescores() {
	c := s.riceClaim()

	sum, err := s.pipeline.validateWith(s.ctx, []feeds.Feed{
		&fakeFeed{name: feeds.SourceTransfermarkt, transfers: []model.ConfirmedTransfer{completed("Declan Rice", "West Ham United", "Arsenal", feeds.SourceTransfermarkt)}},
		&fakeFeed{name: feeds.SourceGuardian, transfers: []model.ConfirmedTransfer{completed("Declan Rice", "West Ham", "Arsenal", feeds.SourceGuardian)}},
	}, false)
	s.Require().NoError(err)
	s.Equal(1, sum.Transfers, "the same move from two feeds is merged")
	s.Equal(1, sum.Pending)
	s.Require().Len(sum.Matches, 1)
	s.Equal(map[string]int{feeds.SourceTransfermarkt: 1}, sum.Breakdown)
	s.Equal(1, sum.Counts[feeds.SourceGuardian])

	got, err := s.store.GetClaim(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusConfirmedTrue, got.Status)
	s.NotNil(got.ValidationDate)
	s.Equal("https://example.com/transfermarkt", got.ValidationSourceURL)

	j := s.journalist("David Ornstein")
	s.True(j.TruthfulnessScore.GreaterThan(decimal.Zero))

	changed := s.eventsOf(events.ClaimStatusChanged)
	s.Require().Len(changed, 1)
	s.Equal(string(model.StatusPending), changed[0].FromStatus)
	s.Equal(string(model.StatusConfirmedTrue), changed[0].ToStatus)
	s.NotEmpty(s.eventsOf(events.ScoresUpdated))
}

func (s *PipelineTestSuite) TestValidate_DryRun() {
	c := s.riceClaim()

	sum, err := s.pipeline.validateWith(s.ctx, []feeds.Feed{
		&fakeFeed{name: feeds.SourceWikipedia, transfers: []model.ConfirmedTransfer{completed("Declan Rice", "West Ham United", "Arsenal", feeds.SourceWikipedia)}},
	}, true)
	s.Require().NoError(err)
	s.Len(sum.Matches, 1)
	s.True(sum.DryRun)

	got, err := s.store.GetClaim(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusPending, got.Status)
	s.Empty(s.recorder.Events())
}

func (s *PipelineTestSuite) TestValidate_FeedFailureIsolated() {
	s.riceClaim()

	sum, err := s.pipeline.validateWith(s.ctx, []feeds.Feed{
		&fakeFeed{name: feeds.SourceTransfermarkt, err: errors.New("blocked")},
		&fakeFeed{name: feeds.SourceGuardian, transfers: []model.ConfirmedTransfer{completed("Declan Rice", "West Ham United", "Arsenal", feeds.SourceGuardian)}},
	}, false)
	s.Require().NoError(err)
	s.Contains(sum.Failures, feeds.SourceTransfermarkt)
	s.Equal(map[string]int{feeds.SourceGuardian: 1}, sum.Breakdown)
}

func (s *PipelineTestSuite) TestValidate_OutsideWindow() {
	s.insertClaim("David Ornstein", model.Claim{
		Text:       "Arsenal are interested in midfielder Declan Rice",
		PlayerName: "Declan Rice",
		ToClub:     "Arsenal",
		ClaimDate:  testNow.AddDate(0, 0, -200),
	})

	sum, err := s.pipeline.validateWith(s.ctx, []feeds.Feed{
		&fakeFeed{name: feeds.SourceGuardian, transfers: []model.ConfirmedTransfer{completed("Declan Rice", "West Ham United", "Arsenal", feeds.SourceGuardian)}},
	}, false)
	s.Require().NoError(err)
	s.Zero(sum.Pending)
	s.Empty(sum.Matches)
}

func (s *PipelineTestSuite) TestValidate_NoFeeds() {
	_, err := s.pipeline.Validate(s.ctx, ValidateOptions{})
	s.Error(err)
}

func (s *PipelineTestSuite) TestFeeds_FromOptions() {
	s.Len(s.pipeline.Feeds(ValidateOptionsFromConfig(s.cfg.Reconcile)), 3)

	fs := s.pipeline.Feeds(ValidateOptions{Wikipedia: true, WikipediaURLs: []string{"https://en.wikipedia.org/wiki/X"}})
	s.Require().Len(fs, 1)
	s.Equal(feeds.SourceWikipedia, fs[0].Name())
}

func (s *PipelineTestSuite) TestSetStatus() {
	c := s.riceClaim()

	got, err := s.pipeline.SetStatus(s.ctx, c.ID, model.StatusProvenFalse, "Stayed at West Ham", "")
	s.Require().NoError(err)
	s.Equal(model.StatusProvenFalse, got.Status)

	stored, err := s.store.GetClaim(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusProvenFalse, stored.Status)
	s.Equal("Stayed at West Ham", stored.ValidationNotes)
	s.NotNil(stored.ValidationDate)
	s.Len(s.eventsOf(events.ClaimStatusChanged), 1)

	_, err = s.pipeline.SetStatus(s.ctx, c.ID, model.StatusPending, "", "")
	s.Require().NoError(err)
	stored, err = s.store.GetClaim(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Nil(stored.ValidationDate)
}

func (s *PipelineTestSuite) TestSetStatus_Invalid() {
	c := s.riceClaim()
	_, err := s.pipeline.SetStatus(s.ctx, c.ID, "maybe", "", "")
	s.Error(err)

	_, err = s.pipeline.SetStatus(s.ctx, 9999, model.StatusConfirmedTrue, "", "")
	s.True(errors.Is(err, store.ErrNotFound))
}

func (s *PipelineTestSuite) TestSetFirstClaim() {
	c := s.riceClaim()

	_, err := s.pipeline.SetFirstClaim(s.ctx, c.ID, true)
	s.Require().NoError(err)

	stored, err := s.store.GetClaim(s.ctx, c.ID)
	s.Require().NoError(err)
	s.True(stored.IsFirstClaim)
	s.Equal(model.StatusPending, stored.Status)
	s.Empty(s.eventsOf(events.ClaimStatusChanged))
}
