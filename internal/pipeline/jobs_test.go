package pipeline

import (
	"github.com/JSmilg/veracity/internal/classify"
	"github.com/JSmilg/veracity/internal/model"
)

const dybalaClaim = "Juventus are keen on Paulo Dybala, 32, as a free agent"

func (s *PipelineTestSuite) TestBackfill() {
	s.Require().NotEqual(model.TierDoneDeal, classify.ClassifyConfidence(dybalaClaim))
	c := s.insertClaim("Sam Lee", model.Claim{Text: dybalaClaim, Certainty: model.TierDoneDeal})

	sum, err := s.pipeline.Backfill(s.ctx, BackfillOptions{})
	s.Require().NoError(err)
	s.Equal(1, sum.Total)
	s.Equal(1, sum.Updated)
	s.Equal(1, sum.ByField[FieldPlayerName])
	s.Equal(1, sum.ByField[FieldTransferFee])
	s.Equal(1, sum.ByField[FieldToClub])
	s.Equal(1, sum.ByField[FieldCertainty])
	s.Zero(sum.ByField[FieldFromClub])
	s.Zero(sum.ByField[FieldNegative])

	got, err := s.store.GetClaim(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Paulo Dybala", got.PlayerName)
	s.Equal("Free", got.TransferFee)
	s.Equal("Juventus", got.ToClub)
	s.Equal(classify.ClassifyConfidence(dybalaClaim), got.Certainty)
	s.Equal(model.StatusPending, got.Status)
}

func (s *PipelineTestSuite) TestBackfill_OnlyEmpty() {
	c := s.insertClaim("Sam Lee", model.Claim{Text: dybalaClaim, PlayerName: "Dybala", ToClub: "Roma"})

	_, err := s.pipeline.Backfill(s.ctx, BackfillOptions{
		Fields:    []string{FieldPlayerName, FieldToClub, FieldTransferFee},
		OnlyEmpty: true,
	})
	s.Require().NoError(err)

	got, err := s.store.GetClaim(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Dybala", got.PlayerName)
	s.Equal("Roma", got.ToClub)
	s.Equal("Free", got.TransferFee)

	_, err = s.pipeline.Backfill(s.ctx, BackfillOptions{Fields: []string{FieldPlayerName}})
	s.Require().NoError(err)
	got, err = s.store.GetClaim(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Paulo Dybala", got.PlayerName)
	s.Equal("Roma", got.ToClub, "fields not selected are left alone")
}

func (s *PipelineTestSuite) TestBackfill_NegativeClearsDestination() {
	c := s.insertClaim("Sam Lee", model.Claim{
		Text:   "Bukayo Saka says he will not leave Arsenal for Real Madrid",
		ToClub: "Real Madrid",
	})

	sum, err := s.pipeline.Backfill(s.ctx, BackfillOptions{Fields: []string{FieldNegative}})
	s.Require().NoError(err)
	s.Equal(1, sum.ByField[FieldNegative])
	s.Equal(1, sum.ByField[FieldToClub])

	got, err := s.store.GetClaim(s.ctx, c.ID)
	s.Require().NoError(err)
	s.True(got.IsNegative)
	s.Empty(got.ToClub)
}

func (s *PipelineTestSuite) TestBackfill_ClaimIDsAndDryRun() {
	a := s.insertClaim("Sam Lee", model.Claim{Text: dybalaClaim})
	b := s.insertClaim("Ben Jacobs", model.Claim{Text: dybalaClaim})

	sum, err := s.pipeline.Backfill(s.ctx, BackfillOptions{ClaimIDs: []int64{b.ID}, DryRun: true})
	s.Require().NoError(err)
	s.Equal(1, sum.Total)
	s.Require().Len(sum.Changes, 1)
	s.Equal(b.ID, sum.Changes[0].ID)
	s.Equal("Paulo Dybala", sum.Changes[0].After.PlayerName)

	for _, id := range []int64{a.ID, b.ID} {
		got, err := s.store.GetClaim(s.ctx, id)
		s.Require().NoError(err)
		s.Empty(got.PlayerName)
	}
}

func (s *PipelineTestSuite) TestBackfill_UnknownField() {
	_, err := s.pipeline.Backfill(s.ctx, BackfillOptions{Fields: []string{"journalist"}})
	s.Error(err)
}

func (s *PipelineTestSuite) TestReclassifyConfidence() {
	tier := classify.ClassifyConfidence(dybalaClaim)
	s.Require().NotEqual(model.TierDoneDeal, tier)

	s.insertClaim("Sam Lee", model.Claim{Text: dybalaClaim, Certainty: model.TierDoneDeal})
	s.insertClaim("Ben Jacobs", model.Claim{Text: dybalaClaim, Certainty: model.TierDoneDeal})
	s.insertClaim("Ben Jacobs", model.Claim{Text: dybalaClaim, Certainty: tier})

	dry, err := s.pipeline.ReclassifyConfidence(s.ctx, true)
	s.Require().NoError(err)
	s.Equal(2, dry.Changed)

	sum, err := s.pipeline.ReclassifyConfidence(s.ctx, false)
	s.Require().NoError(err)
	s.Equal(3, sum.Total)
	s.Equal(2, sum.Changed)
	s.Equal([]Transition{{From: model.TierDoneDeal, To: tier, Count: 2}}, sum.Transitions)

	again, err := s.pipeline.ReclassifyConfidence(s.ctx, false)
	s.Require().NoError(err)
	s.Zero(again.Changed)
}

func (s *PipelineTestSuite) TestReclassifyClubs() {
	c := s.insertClaim("Sam Lee", model.Claim{
		Text:     "Juventus are keen on Chelsea's 23-year-old winger",
		FromClub: "Juventus",
		ToClub:   "Chelsea",
	})
	neg := s.insertClaim("Sam Lee", model.Claim{
		Text:       "Bukayo Saka will not leave Arsenal",
		IsNegative: true,
		FromClub:   "Arsenal",
	})

	sum, err := s.pipeline.ReclassifyClubs(s.ctx, false)
	s.Require().NoError(err)
	s.Equal(2, sum.Total)
	s.Equal(1, sum.Changed)

	got, err := s.store.GetClaim(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Chelsea", got.FromClub)
	s.Equal("Juventus", got.ToClub)

	got, err = s.store.GetClaim(s.ctx, neg.ID)
	s.Require().NoError(err)
	s.Equal("Arsenal", got.FromClub)
	s.Empty(got.ToClub)
}
