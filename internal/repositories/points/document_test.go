package points

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/focusbot/internal/models"
	"github.com/KirkDiggler/focusbot/internal/repositories/document"
)

type DocumentRepositoryTestSuite struct {
	suite.Suite
	store document.Store
	repo  Repository
	ctx   context.Context
}

func (s *DocumentRepositoryTestSuite) SetupTest() {
	backend, err := document.NewFile(&document.FileConfig{Dir: s.T().TempDir()})
	s.Require().NoError(err)

	store, err := document.New(&document.Config{Backend: backend})
	s.Require().NoError(err)
	s.store = store

	repo, err := NewDocument(&Config{Store: store})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func TestDocumentRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentRepositoryTestSuite))
}

func (s *DocumentRepositoryTestSuite) TestUnknownUserHasZeroBalance() {
	balance, err := s.repo.GetBalance(s.ctx, &GetBalanceInput{UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal(&models.PointBalance{UserID: "user-1"}, balance)
}

func (s *DocumentRepositoryTestSuite) TestUpdateBalance() {
	balance, err := s.repo.UpdateBalance(s.ctx, &UpdateBalanceInput{
		UserID: "user-1",
		Update: func(b *models.PointBalance) error {
			b.Points += 50
			b.CompletedSessions++
			return nil
		},
	})
	s.Require().NoError(err)
	s.Equal(50, balance.Points)
	s.Equal(1, balance.CompletedSessions)

	m := s.store.Load(s.ctx, BalancesKey)
	s.JSONEq(`{"pontos":50,"pomodorosConcluidos":1}`, string(m["user-1"]))

	got, err := s.repo.GetBalance(s.ctx, &GetBalanceInput{UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal(balance, got)
}

func (s *DocumentRepositoryTestSuite) TestUpdateBalanceErrorAborts() {
	_, err := s.repo.UpdateBalance(s.ctx, &UpdateBalanceInput{
		UserID: "user-1",
		Update: func(b *models.PointBalance) error {
			b.Points = 1000
			return errors.New("nope")
		},
	})
	s.Error(err)

	got, err := s.repo.GetBalance(s.ctx, &GetBalanceInput{UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal(0, got.Points)
}

func (s *DocumentRepositoryTestSuite) TestBareNumberBalance() {
	s.Require().NoError(s.store.Save(s.ctx, BalancesKey, document.Mapping{
		"user-1": json.RawMessage(`150`),
		"user-2": json.RawMessage(`"junk"`),
	}))

	out, err := s.repo.ListBalances(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(out.Balances, 2)
	s.Equal(&models.PointBalance{UserID: "user-1", Points: 150}, out.Balances[0])
	s.Equal(&models.PointBalance{UserID: "user-2"}, out.Balances[1])
}

func (s *DocumentRepositoryTestSuite) TestLeaderboardMissing() {
	out, err := s.repo.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.False(out.Found)
	s.Empty(out.Entries)
}

func (s *DocumentRepositoryTestSuite) TestLeaderboardRoundTrip() {
	entries := []*models.LeaderboardEntry{
		{UserID: "user-2", Points: 100},
		{UserID: "user-1", Points: 50},
	}
	s.Require().NoError(s.repo.SaveLeaderboard(s.ctx, &SaveLeaderboardInput{Entries: entries}))

	var raw json.RawMessage
	found, err := s.store.Get(s.ctx, LeaderboardKey, &raw)
	s.Require().NoError(err)
	s.Require().True(found)
	s.JSONEq(`[{"userId":"user-2","pontos":100},{"userId":"user-1","pontos":50}]`, string(raw))

	out, err := s.repo.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.True(out.Found)
	s.Equal(entries, out.Entries)
}

func (s *DocumentRepositoryTestSuite) TestEmptyLeaderboardIsFound() {
	s.Require().NoError(s.repo.SaveLeaderboard(s.ctx, &SaveLeaderboardInput{}))

	out, err := s.repo.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.True(out.Found)
	s.Empty(out.Entries)
}
