package honor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/honorguild/honorbot/internal/domain/honor"
	"github.com/honorguild/honorbot/internal/domain/honor/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T, settings honor.Settings) (*honor.Service, *mock.MockRepository) {
	t.Helper()
	repo := mock.NewMockRepository(gomock.NewController(t))
	svc, err := honor.NewService(repo, settings)
	require.NoError(t, err)
	return svc, repo
}

func TestNewService_Validation(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))

	_, err := honor.NewService(repo, honor.Settings{
		Rewards: []honor.RewardRole{{Threshold: 0, Role: "🌾 Peasant"}},
	})
	assert.ErrorIs(t, err, honor.ErrInvalidRewardRole)

	_, err = honor.NewService(repo, honor.Settings{
		Lootbox: []honor.LootboxPrize{{Reward: 10, Weight: 0}},
	})
	assert.ErrorIs(t, err, honor.ErrEmptyLootTable)

	_, err = honor.NewService(repo, honor.Settings{
		Tiers: []honor.Tier{{Threshold: 5, Name: "B"}, {Threshold: 1, Name: "A"}},
	})
	assert.ErrorIs(t, err, honor.ErrInvalidRankTable)
}

func TestService_Thank(t *testing.T) {
	ctx := context.Background()

	t.Run("self target rejected without touching the ledger", func(t *testing.T) {
		svc, _ := newService(t, honor.Settings{})
		_, err := svc.Thank(ctx, mock.Alice, mock.Alice)
		assert.ErrorIs(t, err, honor.ErrSelfTarget)
	})

	t.Run("credits target with actor recorded", func(t *testing.T) {
		svc, repo := newService(t, honor.Settings{})
		gomock.InOrder(
			repo.EXPECT().GetBalance(gomock.Any(), mock.Bob).Return(int64(995), nil),
			repo.EXPECT().
				ApplyDelta(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, c honor.Change) (int64, error) {
					assert.Equal(t, mock.Bob, c.UserID)
					assert.Equal(t, int64(10), c.Delta)
					assert.Equal(t, honor.ReasonThanks, c.Reason)
					require.NotNil(t, c.ActorID)
					assert.Equal(t, mock.Alice, *c.ActorID)
					return 1005, nil
				}),
		)

		res, err := svc.Thank(ctx, mock.Alice, mock.Bob)
		require.NoError(t, err)
		assert.Equal(t, int64(995), res.Previous)
		assert.Equal(t, int64(1005), res.Balance)
		assert.Equal(t, "Peasant", res.Before.Name)
		assert.Equal(t, "Squire", res.After.Name)
		assert.True(t, res.TierChanged())
	})
}

func TestService_ConfirmHelp(t *testing.T) {
	svc, repo := newService(t, honor.Settings{})
	repo.EXPECT().GetBalance(gomock.Any(), mock.Bob).Return(int64(0), nil)
	repo.EXPECT().ApplyDelta(gomock.Any(), honor.Change{
		UserID: mock.Bob, Delta: 50, Reason: honor.ReasonHelpConfirmed, ActorID: &mock.Alice,
	}).Return(int64(50), nil)

	res, err := svc.ConfirmHelp(context.Background(), mock.Alice, mock.Bob)
	require.NoError(t, err)
	assert.False(t, res.TierChanged())

	_, err = svc.ConfirmHelp(context.Background(), mock.Bob, mock.Bob)
	assert.ErrorIs(t, err, honor.ErrSelfTarget)
}

func TestService_Penalize(t *testing.T) {
	svc, repo := newService(t, honor.Settings{})
	repo.EXPECT().GetBalance(gomock.Any(), mock.Bob).Return(int64(10), nil)
	repo.EXPECT().ApplyDelta(gomock.Any(), honor.Change{
		UserID: mock.Bob, Delta: -100, Reason: honor.ReasonProfanity, Note: "heck",
	}).Return(int64(-90), nil)

	res, err := svc.Penalize(context.Background(), mock.Bob, "heck")
	require.NoError(t, err)
	assert.Equal(t, "Outcast", res.After.Name)
}

func TestService_Adjust(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t, honor.Settings{})

	_, err := svc.Adjust(ctx, mock.Bob, mock.Alice, 500, "", false)
	assert.ErrorIs(t, err, honor.ErrNotAdministrator)

	repo.EXPECT().GetBalance(gomock.Any(), mock.Alice).Return(int64(0), nil)
	repo.EXPECT().ApplyDelta(gomock.Any(), honor.Change{
		UserID: mock.Alice, Delta: 500, Reason: honor.ReasonAdjustment, Note: "event prize", ActorID: &mock.Carol,
	}).Return(int64(500), nil)

	res, err := svc.Adjust(ctx, mock.Carol, mock.Alice, 500, "event prize", true)
	require.NoError(t, err)
	assert.Equal(t, int64(500), res.Balance)
}

func TestService_ClaimDaily(t *testing.T) {
	ctx := context.Background()
	fixed := &honor.Awards{DailyBonus: 20}

	t.Run("already claimed", func(t *testing.T) {
		svc, repo := newService(t, honor.Settings{})
		repo.EXPECT().CanClaimDaily(gomock.Any(), mock.Alice).Return(false, nil)

		_, err := svc.ClaimDaily(ctx, mock.Alice)
		assert.ErrorIs(t, err, honor.ErrAlreadyClaimed)
		assert.True(t, honor.IsClaimRejection(err))
	})

	t.Run("claims and credits together", func(t *testing.T) {
		svc, repo := newService(t, honor.Settings{Awards: fixed})
		gomock.InOrder(
			repo.EXPECT().CanClaimDaily(gomock.Any(), mock.Alice).Return(true, nil),
			repo.EXPECT().GetBalance(gomock.Any(), mock.Alice).Return(int64(0), nil),
			repo.EXPECT().ClaimDaily(gomock.Any(), honor.Change{
				UserID: mock.Alice, Delta: 20, Reason: honor.ReasonDailyBonus,
			}).Return(int64(20), nil),
		)

		res, err := svc.ClaimDaily(ctx, mock.Alice)
		require.NoError(t, err)
		assert.Equal(t, int64(20), res.Balance)
	})

	t.Run("store failure grants nothing and claims nothing", func(t *testing.T) {
		svc, repo := newService(t, honor.Settings{Awards: fixed})
		boom := errors.New("connection reset")
		repo.EXPECT().CanClaimDaily(gomock.Any(), mock.Alice).Return(true, nil)
		repo.EXPECT().GetBalance(gomock.Any(), mock.Alice).Return(int64(0), nil)
		repo.EXPECT().ClaimDaily(gomock.Any(), gomock.Any()).Return(int64(0), boom)

		_, err := svc.ClaimDaily(ctx, mock.Alice)
		assert.ErrorIs(t, err, boom)
		assert.False(t, honor.IsClaimRejection(err))
	})
}

func TestService_DailyBonusRange(t *testing.T) {
	tests := []struct {
		name   string
		awards honor.Awards
		roll   int
		want   int64
	}{
		{name: "low end", awards: honor.Awards{DailyBonus: 100, DailyBonusMax: 500}, roll: 0, want: 100},
		{name: "high end", awards: honor.Awards{DailyBonus: 100, DailyBonusMax: 500}, roll: 400, want: 500},
		{name: "fixed when max not above min", awards: honor.Awards{DailyBonus: 20, DailyBonusMax: 5}, want: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			awards := tt.awards
			svc, repo := newService(t, honor.Settings{
				Awards: &awards,
				Roll: func(n int) int {
					assert.Equal(t, 401, n)
					return tt.roll
				},
			})
			repo.EXPECT().CanClaimDaily(gomock.Any(), mock.Bob).Return(true, nil)
			repo.EXPECT().GetBalance(gomock.Any(), mock.Bob).Return(int64(0), nil)
			repo.EXPECT().ClaimDaily(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, c honor.Change) (int64, error) {
					return c.Delta, nil
				})

			res, err := svc.ClaimDaily(context.Background(), mock.Bob)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Delta)
			assert.Equal(t, tt.want, res.Balance)
		})
	}
}

func TestService_OpenLootbox(t *testing.T) {
	ctx := context.Background()
	prizes := []honor.LootboxPrize{
		{Reward: 5, Weight: 3},
		{Reward: 100, Weight: 1},
	}

	tests := []struct {
		name   string
		roll   int
		reward int64
	}{
		{name: "first bucket start", roll: 0, reward: 5},
		{name: "first bucket end", roll: 2, reward: 5},
		{name: "last bucket", roll: 3, reward: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t, honor.Settings{
				Lootbox: prizes,
				Roll: func(n int) int {
					assert.Equal(t, 4, n)
					return tt.roll
				},
			})
			gomock.InOrder(
				repo.EXPECT().CanOpenLootbox(gomock.Any(), mock.Carol).Return(true, nil),
				repo.EXPECT().GetBalance(gomock.Any(), mock.Carol).Return(int64(0), nil),
				repo.EXPECT().LogLootbox(gomock.Any(), honor.Change{
					UserID: mock.Carol, Delta: tt.reward, Reason: honor.ReasonLootbox,
				}).Return(tt.reward, nil),
			)

			res, err := svc.OpenLootbox(ctx, mock.Carol)
			require.NoError(t, err)
			assert.Equal(t, tt.reward, res.Reward)
			assert.Equal(t, tt.reward, res.Balance)
		})
	}

	t.Run("cooldown", func(t *testing.T) {
		svc, repo := newService(t, honor.Settings{Lootbox: prizes})
		repo.EXPECT().CanOpenLootbox(gomock.Any(), mock.Carol).Return(false, nil)

		_, err := svc.OpenLootbox(ctx, mock.Carol)
		assert.ErrorIs(t, err, honor.ErrAlreadyClaimed)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, repo := newService(t, honor.Settings{Lootbox: prizes, Roll: func(int) int { return 0 }})
		boom := errors.New("connection reset")
		repo.EXPECT().CanOpenLootbox(gomock.Any(), mock.Carol).Return(true, nil)
		repo.EXPECT().GetBalance(gomock.Any(), mock.Carol).Return(int64(0), nil)
		repo.EXPECT().LogLootbox(gomock.Any(), gomock.Any()).Return(int64(0), boom)

		_, err := svc.OpenLootbox(ctx, mock.Carol)
		assert.ErrorIs(t, err, boom)
	})
}

func TestService_Profile(t *testing.T) {
	svc, repo := newService(t, honor.Settings{HistorySize: 5})
	repo.EXPECT().GetBalance(gomock.Any(), mock.Alice).Return(int64(3000), nil)
	repo.EXPECT().RecentEntries(gomock.Any(), mock.Alice, 5).Return(mock.AliceEntries, nil)
	repo.EXPECT().CanClaimDaily(gomock.Any(), mock.Alice).Return(true, nil)
	repo.EXPECT().CanOpenLootbox(gomock.Any(), mock.Alice).Return(false, nil)
	repo.EXPECT().CountReason(gomock.Any(), mock.Alice, honor.ReasonHelpConfirmed).Return(12, nil).Times(2)
	repo.EXPECT().CountReason(gomock.Any(), mock.Alice, honor.ReasonBless).Return(3, nil)
	repo.EXPECT().CountReason(gomock.Any(), mock.Alice, honor.ReasonProfanity).Return(0, nil)
	repo.EXPECT().IsTopRank(gomock.Any(), mock.Alice).Return(true, nil)

	p, err := svc.Profile(context.Background(), mock.Alice)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), p.Balance)
	assert.Equal(t, "Squire", p.Tier.Name)
	assert.Equal(t, "Knight", p.Progress.Next.Name)
	assert.InDelta(t, 0.5, p.Progress.Fraction, 1e-9)
	assert.Len(t, p.Recent, 2)
	assert.True(t, p.CanDaily)
	assert.False(t, p.CanLootbox)

	keys := make([]string, 0, len(p.Achievements))
	for _, a := range p.Achievements {
		keys = append(keys, a.Key)
	}
	assert.Equal(t, []string{"helping_hand", "clean_tongue", "champion"}, keys)
}

func TestService_ProfileStoreFailure(t *testing.T) {
	svc, repo := newService(t, honor.Settings{Achievements: []honor.Achievement{}})
	boom := errors.New("pool closed")
	repo.EXPECT().GetBalance(gomock.Any(), mock.Bob).Return(int64(0), boom)
	repo.EXPECT().RecentEntries(gomock.Any(), mock.Bob, gomock.Any()).Return(nil, nil).AnyTimes()
	repo.EXPECT().CanClaimDaily(gomock.Any(), mock.Bob).Return(true, nil).AnyTimes()
	repo.EXPECT().CanOpenLootbox(gomock.Any(), mock.Bob).Return(true, nil).AnyTimes()

	_, err := svc.Profile(context.Background(), mock.Bob)
	assert.ErrorIs(t, err, boom)
}

func TestService_Leaderboard(t *testing.T) {
	svc, repo := newService(t, honor.Settings{})
	repo.EXPECT().Leaderboard(gomock.Any(), 2).Return(
		[]honor.Account{mock.Accounts[0], mock.Accounts[2]},
		[]honor.Account{mock.Accounts[1], mock.Accounts[2]},
		nil,
	)

	board, err := svc.Leaderboard(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, board.Top, 2)
	require.Len(t, board.Flop, 2)
	assert.Equal(t, "King", board.Top[0].Tier.Name)
	assert.Equal(t, "Outcast", board.Flop[0].Tier.Name)
	assert.Equal(t, mock.Carol, board.Flop[1].UserID)
}

func TestService_Verify(t *testing.T) {
	svc, repo := newService(t, honor.Settings{})
	repo.EXPECT().Accounts(gomock.Any()).Return(mock.Accounts, nil)
	repo.EXPECT().Entries(gomock.Any(), mock.Alice).Return(mock.AliceEntries, nil)
	repo.EXPECT().Entries(gomock.Any(), mock.Bob).Return(mock.BobEntries, nil)
	repo.EXPECT().Entries(gomock.Any(), mock.Carol).Return(nil, nil)

	drifts, err := svc.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []honor.Drift{
		{UserID: mock.Bob, Stored: -80, Replayed: -100, Entries: 2},
	}, drifts)
}
