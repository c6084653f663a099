package engine_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/engine"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/engine/mocks"
)

func TestRecorderAdventureWin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockProgressStore(ctrl)
	store.EXPECT().SaveScore(gomock.Any(), engine.ScoreRecord{
		RunID:   "run-1",
		Mode:    core.ModeAdventure,
		LevelID: "meadow_01",
		Score:   120,
		Outcome: core.OutcomeWon,
		Stars:   2,
		Seed:    9,
	}).Return(nil)
	store.EXPECT().SaveLevelResult(gomock.Any(), "meadow_01", 120, 2).Return(nil)
	store.EXPECT().AddCoins(gomock.Any(), 20).Return(20, nil)
	store.EXPECT().UnlockAchievement(gomock.Any(), core.AchievementFirstPop).Return(true, nil)

	rec := engine.NewRecorder(store, nil, 9)
	rec.Handle(context.Background(), engine.Frame{
		RunID: "run-1",
		Events: []core.Event{
			core.SoundEvent{Sound: core.SoundWin},
			core.AchievementEvent{ID: core.AchievementFirstPop},
			core.OutcomeEvent{Outcome: core.OutcomeWon, Mode: core.ModeAdventure, LevelID: "meadow_01", Score: 120, Stars: 2},
			core.CoinsEvent{Amount: 20},
		},
	})
}

func TestRecorderClassicLossKeepsGoingOnErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockProgressStore(ctrl)
	store.EXPECT().SaveScore(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	store.EXPECT().AddCoins(gomock.Any(), 3).Return(0, errors.New("disk full"))
	store.EXPECT().UnlockAchievement(gomock.Any(), core.AchievementBigCombo).Return(false, nil)

	rec := engine.NewRecorder(store, nil, 1)
	rec.Handle(context.Background(), engine.Frame{
		RunID: "run-2",
		Events: []core.Event{
			core.OutcomeEvent{Outcome: core.OutcomeLost, Mode: core.ModeClassic, Score: 340},
			core.CoinsEvent{Amount: 3},
			core.AchievementEvent{ID: core.AchievementBigCombo},
		},
	})
}

func TestRecorderRunStopsWhenFramesClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockProgressStore(ctrl)
	store.EXPECT().AddCoins(gomock.Any(), gomock.Any()).Return(5, nil).Times(2)

	frames := make(chan engine.Frame, 3)
	frames <- engine.Frame{Events: []core.Event{core.CoinsEvent{Amount: 2}}}
	frames <- engine.Frame{}
	frames <- engine.Frame{Events: []core.Event{core.CoinsEvent{Amount: 3}}}
	close(frames)

	engine.NewRecorder(store, nil, 1).Run(context.Background(), frames)
}

func TestRecorderRunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	engine.NewRecorder(mocks.NewMockProgressStore(ctrl), nil, 1).Run(ctx, make(chan engine.Frame))
}
