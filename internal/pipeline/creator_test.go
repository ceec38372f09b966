package pipeline

import (
	"errors"

	"github.com/JSmilg/veracity/internal/classify"
	"github.com/JSmilg/veracity/internal/events"
	"github.com/JSmilg/veracity/internal/model"
)

func (s *PipelineTestSuite) TestAnalyse() {
	c := s.pipeline.Creator()

	a := c.Analyse(s.ctx, "Arsenal are interested in midfielder Declan Rice")
	s.Equal("Declan Rice", a.PlayerName)
	s.Equal("Arsenal", a.ToClub)
	s.Empty(a.FromClub)
	s.False(a.IsNegative)
	s.Equal(classify.ClassifyConfidence("Arsenal are interested in midfielder Declan Rice"), a.Certainty)

	neg := c.Analyse(s.ctx, "Bukayo Saka says he will not leave Arsenal for Real Madrid")
	s.True(neg.IsNegative)
	s.Empty(neg.ToClub, "a negative claim has no destination")
}

func (s *PipelineTestSuite) TestAnalyse_AgreedFee() {
	text := "Arsenal have agreed a fee with West Ham to sign Declan Rice. Deal worth £105m."

	a := s.pipeline.Creator().Analyse(s.ctx, text)

	s.Equal(model.TierDoneDeal, a.Certainty)
	s.Equal("£105m", a.TransferFee)
	s.Equal([]string{"Arsenal", "West Ham"}, a.Clubs)
	s.Equal("West Ham", a.FromClub)
	s.Equal("Arsenal", a.ToClub)
	s.False(a.IsNegative)
}

func (s *PipelineTestSuite) TestCreate_KnownJournalist() {
	text := "Chelsea have agreed a fee with Brighton for midfielder Moises Caicedo, here we go!"
	claim, err := s.pipeline.Creator().Create(s.ctx, model.Rumour{
		JournalistName: "Fabrizio Romano",
		Publication:    "The Guardian",
		Text:           text,
		ClaimDate:      testNow,
	}, CreateOptions{})
	s.Require().NoError(err)
	s.NotZero(claim.ID)
	s.Equal("Moises Caicedo", claim.PlayerName)
	s.Equal(classify.ClassifyConfidence(text), claim.Certainty)
	s.Equal(model.StatusPending, claim.Status)
	s.Equal(model.SourceOriginal, claim.SourceType)

	j := s.journalist("Fabrizio Romano")
	s.Equal("@FabrizioRomano", j.TwitterHandle)
	s.Equal(model.StringList{"The Guardian"}, j.Publications)

	_, err = s.pipeline.Creator().Create(s.ctx, model.Rumour{
		JournalistName: "Fabrizio Romano",
		Publication:    "CaughtOffside",
		Text:           "Juventus are keen on Paulo Dybala, 32, as a free agent",
		ClaimDate:      testNow,
	}, CreateOptions{})
	s.Require().NoError(err)

	j = s.journalist("Fabrizio Romano")
	s.Equal(model.StringList{"The Guardian", "CaughtOffside"}, j.Publications)

	created := s.eventsOf(events.ClaimCreated)
	s.Require().Len(created, 2)
	s.Equal(claim.ID, created[0].ClaimID)
	s.Equal("Fabrizio Romano", created[0].Journalist)
}

func (s *PipelineTestSuite) TestCreate_SuppliedFieldsWin() {
	claim, err := s.pipeline.Creator().Create(s.ctx, model.Rumour{
		JournalistName: "Sam Lee",
		Text:           "Arsenal are interested in midfielder Declan Rice",
		PlayerName:     "Declan Rice",
		FromClub:       "West Ham United",
		ToClub:         "Arsenal, Chelsea",
		TransferFee:    "£105m",
		Certainty:      model.TierDoneDeal,
	}, CreateOptions{})
	s.Require().NoError(err)
	s.Equal("West Ham United", claim.FromClub)
	s.Equal("Arsenal, Chelsea", claim.ToClub)
	s.Equal("£105m", claim.TransferFee)
	s.NotEqual(model.TierDoneDeal, claim.Certainty, "the tier always comes from the classifier")
	s.True(claim.ClaimDate.Equal(testNow), "undated rumours are dated now")
}

func (s *PipelineTestSuite) TestCreate_NegativeClearsDestination() {
	claim, err := s.pipeline.Creator().Create(s.ctx, model.Rumour{
		JournalistName: "Ben Jacobs",
		Text:           "Bukayo Saka says he will not leave Arsenal this summer",
		ToClub:         "Real Madrid",
	}, CreateOptions{})
	s.Require().NoError(err)
	s.True(claim.IsNegative)
	s.Empty(claim.ToClub)

	stored, err := s.store.GetClaim(s.ctx, claim.ID)
	s.Require().NoError(err)
	s.Empty(stored.ToClub)
}

func (s *PipelineTestSuite) TestCreate_Citing() {
	claim, err := s.pipeline.Creator().Create(s.ctx, model.Rumour{
		JournalistName:  "Mirror",
		Publication:     "Mirror",
		Text:            "Arsenal are interested in midfielder Declan Rice, according to The Athletic",
		SourceType:      model.SourceCiting,
		CitedJournalist: "David Ornstein",
	}, CreateOptions{})
	s.Require().NoError(err)
	s.Equal(model.SourceCiting, claim.SourceType)
	s.Require().NotNil(claim.CitedJournalistID)

	cited := s.journalist("David Ornstein")
	s.Equal(cited.ID, *claim.CitedJournalistID)
	s.Equal("@David_Ornstein", cited.TwitterHandle)
	s.Empty(cited.Publications)

	stored, err := s.store.GetClaim(s.ctx, claim.ID)
	s.Require().NoError(err)
	s.Equal(model.SourceCiting, stored.SourceType)
}

func (s *PipelineTestSuite) TestCreate_CitingWithoutNameIsOriginal() {
	claim, err := s.pipeline.Creator().Create(s.ctx, model.Rumour{
		JournalistName: "Mirror",
		Text:           "Arsenal are interested in midfielder Declan Rice",
		SourceType:     model.SourceCiting,
	}, CreateOptions{})
	s.Require().NoError(err)
	s.Equal(model.SourceOriginal, claim.SourceType)
	s.Nil(claim.CitedJournalistID)
}

func (s *PipelineTestSuite) TestCreate_Incomplete() {
	tests := []model.Rumour{
		{JournalistName: "Sam Lee", Text: "   "},
		{Text: "Arsenal are interested in midfielder Declan Rice"},
	}
	for _, r := range tests {
		_, err := s.pipeline.Creator().Create(s.ctx, r, CreateOptions{})
		s.True(errors.Is(err, ErrIncomplete), "rumour %+v: got %v", r, err)
	}
	s.Empty(s.recorder.Events())
}

func (s *PipelineTestSuite) TestCreate_Duplicate() {
	r := model.Rumour{
		JournalistName: "Sam Lee",
		Text:           "Arsenal are interested in midfielder Declan Rice",
		ClaimDate:      testNow,
	}
	_, err := s.pipeline.Creator().Create(s.ctx, r, CreateOptions{})
	s.Require().NoError(err)

	r.Text = "Arsenal are interested in midfielder Declan Rice!"
	_, err = s.pipeline.Creator().Create(s.ctx, r, CreateOptions{})
	s.True(errors.Is(err, ErrDuplicate))

	r.JournalistName = "Ben Jacobs"
	_, err = s.pipeline.Creator().Create(s.ctx, r, CreateOptions{})
	s.NoError(err, "another journalist may report the same story")
}

func (s *PipelineTestSuite) TestCreate_DryRun() {
	claim, err := s.pipeline.Creator().Create(s.ctx, model.Rumour{
		JournalistName: "Sam Lee",
		Text:           "Arsenal are interested in midfielder Declan Rice",
	}, CreateOptions{DryRun: true})
	s.Require().NoError(err)
	s.Zero(claim.ID)
	s.Equal("Sam Lee", claim.JournalistName)

	_, err = s.store.GetJournalistByName(s.ctx, "Sam Lee")
	s.Error(err)
	s.Empty(s.recorder.Events())
}
