package pomodoro_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/KirkDiggler/focusbot/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/focusbot/internal/common/uuid/mocks"
	"github.com/KirkDiggler/focusbot/internal/models"
	"github.com/KirkDiggler/focusbot/internal/repositories/document"
	pomodoroRepo "github.com/KirkDiggler/focusbot/internal/repositories/pomodoro"
	"github.com/KirkDiggler/focusbot/internal/services/pomodoro"
	pomodoroMocks "github.com/KirkDiggler/focusbot/internal/services/pomodoro/mocks"
	"github.com/KirkDiggler/focusbot/internal/services/quote"
	quoteMocks "github.com/KirkDiggler/focusbot/internal/services/quote/mocks"
	"github.com/KirkDiggler/focusbot/internal/services/rewards"
	rewardsMocks "github.com/KirkDiggler/focusbot/internal/services/rewards/mocks"
)

type fakeTimer struct {
	interval  time.Duration
	recurring bool
	fn        func()
}

// fakeScheduler only fires timers when the test asks it to
type fakeScheduler struct {
	mu         sync.Mutex
	timers     map[string]*fakeTimer
	afterCalls map[string]int
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{
		timers:     make(map[string]*fakeTimer),
		afterCalls: make(map[string]int),
	}
}

func (f *fakeScheduler) Every(key string, interval time.Duration, fn func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.timers[key]; ok {
		return false
	}
	f.timers[key] = &fakeTimer{interval: interval, recurring: true, fn: fn}
	return true
}

func (f *fakeScheduler) After(key string, delay time.Duration, fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.timers[key] = &fakeTimer{interval: delay, fn: fn}
	f.afterCalls[key]++
}

func (f *fakeScheduler) Cancel(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.timers, key)
}

func (f *fakeScheduler) Active(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.timers[key]
	return ok
}

func (f *fakeScheduler) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.timers = make(map[string]*fakeTimer)
}

func (f *fakeScheduler) fire(key string) bool {
	f.mu.Lock()
	t, ok := f.timers[key]
	if ok && !t.recurring {
		delete(f.timers, key)
	}
	f.mu.Unlock()

	if !ok {
		return false
	}
	t.fn()
	return true
}

func (f *fakeScheduler) timer(key string) *fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.timers[key]
}

type PomodoroServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockClock    *clockMocks.MockClock
	mockUUID     *uuidMocks.MockUUID
	mockQuotes   *quoteMocks.MockProvider
	mockNotifier *pomodoroMocks.MockNotifier
	mockRewards  *rewardsMocks.MockService
	scheduler    *fakeScheduler
	repo         pomodoroRepo.Repository
	service      pomodoro.Service
	ctx          context.Context

	// Test data
	now       time.Time
	startTime time.Time
	userID    string
	otherID   string
	testQuote string
	uuids     int
}

func (s *PomodoroServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.mockQuotes = quoteMocks.NewMockProvider(s.mockCtrl)
	s.mockNotifier = pomodoroMocks.NewMockNotifier(s.mockCtrl)
	s.mockRewards = rewardsMocks.NewMockService(s.mockCtrl)
	s.scheduler = newFakeScheduler()
	s.ctx = context.Background()

	s.startTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.now = s.startTime
	s.userID = "test-user-id"
	s.otherID = "test-other-id"
	s.testQuote = `"Disciplina é liberdade." — Motivação`
	s.uuids = 0

	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		s.uuids++
		return fmt.Sprintf("test-session-%d", s.uuids)
	}).AnyTimes()
	s.mockQuotes.EXPECT().FetchQuote(gomock.Any()).Return(s.testQuote).AnyTimes()

	backend, err := document.NewFile(&document.FileConfig{Dir: s.T().TempDir()})
	s.Require().NoError(err)
	store, err := document.New(&document.Config{Backend: backend})
	s.Require().NoError(err)
	s.repo, err = pomodoroRepo.NewDocument(&pomodoroRepo.Config{Store: store})
	s.Require().NoError(err)

	s.service = s.newService(s.mockQuotes)
}

func (s *PomodoroServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPomodoroServiceSuite(t *testing.T) {
	suite.Run(t, new(PomodoroServiceTestSuite))
}

func (s *PomodoroServiceTestSuite) newService(quotes quote.Provider) pomodoro.Service {
	svc, err := pomodoro.New(&pomodoro.Config{
		Repository:    s.repo,
		Rewards:       s.mockRewards,
		Quotes:        quotes,
		Notifier:      s.mockNotifier,
		Scheduler:     s.scheduler,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	return svc
}

func (s *PomodoroServiceTestSuite) advance(d time.Duration) {
	s.now = s.now.Add(d)
}

func (s *PomodoroServiceTestSuite) create(userID string, duration int) *models.Session {
	out, err := s.service.CreateSession(s.ctx, &pomodoro.CreateSessionInput{
		UserID:          userID,
		Focus:           "estudar",
		DurationMinutes: duration,
	})
	s.Require().NoError(err)
	return out.Notification.Session
}

func (s *PomodoroServiceTestSuite) start(session *models.Session) *pomodoro.Notification {
	out, err := s.service.Start(s.ctx, &pomodoro.StartInput{
		ActorID:   session.UserID,
		OwnerID:   session.UserID,
		SessionID: session.ID,
	})
	s.Require().NoError(err)
	return out.Notification
}

func (s *PomodoroServiceTestSuite) pause(session *models.Session) *pomodoro.PauseOutput {
	out, err := s.service.Pause(s.ctx, &pomodoro.PauseInput{
		ActorID:   session.UserID,
		OwnerID:   session.UserID,
		SessionID: session.ID,
	})
	s.Require().NoError(err)
	return out
}

func (s *PomodoroServiceTestSuite) stored(userID string) *models.Session {
	session, err := s.repo.GetSession(s.ctx, &pomodoroRepo.GetSessionInput{UserID: userID})
	s.Require().NoError(err)
	return session
}

func (s *PomodoroServiceTestSuite) assertNoSession(userID string) {
	_, err := s.repo.GetSession(s.ctx, &pomodoroRepo.GetSessionInput{UserID: userID})
	s.ErrorIs(err, pomodoroRepo.ErrSessionNotFound)
}

func (s *PomodoroServiceTestSuite) expectNotifications() *[]*pomodoro.Notification {
	var received []*pomodoro.Notification
	s.mockNotifier.EXPECT().
		Notify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *pomodoro.Notification) error {
			received = append(received, n)
			return nil
		}).
		AnyTimes()
	return &received
}

func (s *PomodoroServiceTestSuite) TestNew_Validation() {
	_, err := pomodoro.New(nil)
	s.ErrorIs(err, pomodoro.ErrNilConfig)

	_, err = pomodoro.New(&pomodoro.Config{})
	s.ErrorIs(err, pomodoro.ErrNilRepository)

	_, err = pomodoro.New(&pomodoro.Config{Repository: s.repo, Rewards: s.mockRewards, Quotes: s.mockQuotes})
	s.ErrorIs(err, pomodoro.ErrNilNotifier)
}

func (s *PomodoroServiceTestSuite) TestCreateSession_ValidInput() {
	for i, duration := range []int{1, 25, 120} {
		userID := fmt.Sprintf("user-%d", i)

		out, err := s.service.CreateSession(s.ctx, &pomodoro.CreateSessionInput{
			UserID:          userID,
			Focus:           "  estudar  ",
			DurationMinutes: duration,
			ChannelID:       "dm-channel",
		})
		s.Require().NoError(err)

		n := out.Notification
		s.Equal(pomodoro.EventUpdated, n.Event)
		s.Equal(s.testQuote, n.Quote)
		s.Equal(0, n.Progress.Percent)
		s.Equal(duration, n.Progress.MinutesRemaining)

		stored := s.stored(userID)
		s.Equal(n.Session.ID, stored.ID)
		s.Equal("estudar", stored.Focus)
		s.Equal(duration, stored.DurationMinutes)
		s.Equal(models.SessionStateInactive, stored.State)
		s.Equal(time.Duration(0), stored.Elapsed)
		s.Nil(stored.StartedAt)
		s.Equal("dm-channel", stored.ChannelID)

		s.False(s.scheduler.Active("refresh:" + userID))
		s.True(s.scheduler.Active("window:" + userID))
	}
}

func (s *PomodoroServiceTestSuite) TestCreateSession_InvalidInput() {
	tests := []struct {
		name     string
		focus    string
		duration int
		expected error
	}{
		{"zero duration", "estudar", 0, pomodoro.ErrInvalidDuration},
		{"negative duration", "estudar", -5, pomodoro.ErrInvalidDuration},
		{"too long", "estudar", 121, pomodoro.ErrInvalidDuration},
		{"empty focus", "", 25, pomodoro.ErrInvalidFocus},
		{"blank focus", "   ", 25, pomodoro.ErrInvalidFocus},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.CreateSession(s.ctx, &pomodoro.CreateSessionInput{
				UserID:          s.userID,
				Focus:           tt.focus,
				DurationMinutes: tt.duration,
			})
			s.ErrorIs(err, tt.expected)
			s.True(pomodoro.IsValidationError(err))
			s.assertNoSession(s.userID)
		})
	}
}

func (s *PomodoroServiceTestSuite) TestCreateSession_AlreadyExists() {
	s.create(s.userID, 25)

	_, err := s.service.CreateSession(s.ctx, &pomodoro.CreateSessionInput{
		UserID:          s.userID,
		Focus:           "outro",
		DurationMinutes: 10,
	})
	s.ErrorIs(err, pomodoro.ErrSessionExists)
	s.Equal("estudar", s.stored(s.userID).Focus)
}

func (s *PomodoroServiceTestSuite) TestStart_ArmsSingleRefreshTimer() {
	session := s.create(s.userID, 25)

	n := s.start(session)
	s.Equal(models.SessionStateActive, n.Session.State)

	timer := s.scheduler.timer("refresh:" + s.userID)
	s.Require().NotNil(timer)
	s.Equal(pomodoro.DefaultRefreshInterval, timer.interval)

	s.advance(5 * time.Second)
	n = s.start(session)
	s.Equal(models.SessionStateActive, n.Session.State)
	s.Same(timer, s.scheduler.timer("refresh:"+s.userID))

	stored := s.stored(s.userID)
	s.Require().NotNil(stored.StartedAt)
	s.True(stored.StartedAt.Equal(s.startTime))
}

func (s *PomodoroServiceTestSuite) TestEndToEnd_CompletesAfterDuration() {
	notifications := s.expectNotifications()
	session := s.create(s.userID, 1)
	s.start(session)

	s.advance(30 * time.Second)
	s.Require().True(s.scheduler.fire("refresh:" + s.userID))
	s.Require().Len(*notifications, 1)
	s.Equal(pomodoro.EventUpdated, (*notifications)[0].Event)
	s.Equal(50, (*notifications)[0].Progress.Percent)

	stored := s.stored(s.userID)
	s.Equal(30*time.Second, stored.Elapsed)
	s.Require().NotNil(stored.StartedAt)
	s.True(stored.StartedAt.Equal(s.now))

	reward := &rewards.RecordCompletionOutput{Bonus: 0, PendingCompletions: 1, CompletedSessions: 1}
	s.mockRewards.EXPECT().
		RecordCompletion(gomock.Any(), &rewards.RecordCompletionInput{UserID: s.userID}).
		Return(reward, nil)

	s.advance(30 * time.Second)
	s.Require().True(s.scheduler.fire("refresh:" + s.userID))
	s.Require().Len(*notifications, 2)

	completed := (*notifications)[1]
	s.Equal(pomodoro.EventCompleted, completed.Event)
	s.Equal(100, completed.Progress.Percent)
	s.Equal(reward, completed.Reward)
	s.Equal(s.testQuote, completed.Quote)
	s.Equal(session.ID, completed.Session.ID)

	s.assertNoSession(s.userID)
	s.False(s.scheduler.Active("refresh:" + s.userID))
	s.False(s.scheduler.Active("window:" + s.userID))
}

func (s *PomodoroServiceTestSuite) TestTick_ProgressIsMonotonic() {
	notifications := s.expectNotifications()
	s.mockRewards.EXPECT().RecordCompletion(gomock.Any(), gomock.Any()).Return(&rewards.RecordCompletionOutput{}, nil)

	session := s.create(s.userID, 4)
	s.start(session)

	for i := 0; i < 8; i++ {
		s.advance(30 * time.Second)
		s.Require().True(s.scheduler.fire("refresh:" + s.userID))
	}

	s.Require().Len(*notifications, 8)
	last := -1
	for _, n := range *notifications {
		s.GreaterOrEqual(n.Progress.Percent, last)
		last = n.Progress.Percent
	}
	s.Equal(100, last)
	s.Equal(pomodoro.EventCompleted, (*notifications)[7].Event)
	s.False(s.scheduler.Active("refresh:" + s.userID))
}

func (s *PomodoroServiceTestSuite) TestPause_CommitsElapsed() {
	session := s.create(s.userID, 25)
	s.start(session)

	s.advance(10 * time.Second)
	out := s.pause(session)
	s.False(out.Resumed)
	s.Equal(models.SessionStatePaused, out.Notification.Session.State)

	stored := s.stored(s.userID)
	s.Equal(10*time.Second, stored.Elapsed)
	s.Nil(stored.StartedAt)
	s.False(s.scheduler.Active("refresh:" + s.userID))

	s.start(session)
	s.True(s.scheduler.Active("refresh:" + s.userID))

	s.advance(5 * time.Second)
	s.pause(session)
	s.Equal(15*time.Second, s.stored(s.userID).Elapsed)
}

func (s *PomodoroServiceTestSuite) TestPause_OnPausedResumes() {
	session := s.create(s.userID, 25)
	s.start(session)
	s.advance(time.Minute)
	s.pause(session)

	s.advance(time.Minute)
	out := s.pause(session)
	s.True(out.Resumed)
	s.Equal(models.SessionStateActive, out.Notification.Session.State)
	s.True(s.scheduler.Active("refresh:" + s.userID))

	stored := s.stored(s.userID)
	s.Equal(time.Minute, stored.Elapsed)
	s.Require().NotNil(stored.StartedAt)
	s.True(stored.StartedAt.Equal(s.now))
}

func (s *PomodoroServiceTestSuite) TestPause_InactiveIsRejected() {
	session := s.create(s.userID, 25)

	_, err := s.service.Pause(s.ctx, &pomodoro.PauseInput{
		ActorID:   s.userID,
		OwnerID:   s.userID,
		SessionID: session.ID,
	})
	s.ErrorIs(err, pomodoro.ErrInvalidTransition)
	s.Equal(models.SessionStateInactive, s.stored(s.userID).State)
}

func (s *PomodoroServiceTestSuite) TestControls_RejectNonOwner() {
	session := s.create(s.userID, 25)
	s.start(session)
	before := s.stored(s.userID)

	_, err := s.service.Pause(s.ctx, &pomodoro.PauseInput{
		ActorID:   s.otherID,
		OwnerID:   s.userID,
		SessionID: session.ID,
	})
	s.ErrorIs(err, pomodoro.ErrNotSessionOwner)
	s.True(pomodoro.IsAuthorizationError(err))

	_, err = s.service.Stop(s.ctx, &pomodoro.StopInput{
		ActorID:   s.otherID,
		OwnerID:   s.userID,
		SessionID: session.ID,
	})
	s.ErrorIs(err, pomodoro.ErrNotSessionOwner)

	_, err = s.service.Start(s.ctx, &pomodoro.StartInput{
		ActorID:   s.otherID,
		OwnerID:   s.userID,
		SessionID: session.ID,
	})
	s.ErrorIs(err, pomodoro.ErrNotSessionOwner)

	s.Equal(before, s.stored(s.userID))
}

func (s *PomodoroServiceTestSuite) TestControls_RejectStalePanel() {
	session := s.create(s.userID, 25)

	_, err := s.service.Start(s.ctx, &pomodoro.StartInput{
		ActorID:   s.userID,
		OwnerID:   s.userID,
		SessionID: "old-session",
	})
	s.ErrorIs(err, pomodoro.ErrStalePanel)

	_, err = s.service.Stop(s.ctx, &pomodoro.StopInput{
		ActorID:   s.userID,
		OwnerID:   s.userID,
		SessionID: "old-session",
	})
	s.ErrorIs(err, pomodoro.ErrStalePanel)

	s.Equal(session.ID, s.stored(s.userID).ID)
}

func (s *PomodoroServiceTestSuite) TestControls_MissingSession() {
	_, err := s.service.Start(s.ctx, &pomodoro.StartInput{ActorID: s.userID, OwnerID: s.userID})
	s.ErrorIs(err, pomodoro.ErrSessionNotFound)

	_, err = s.service.Stop(s.ctx, &pomodoro.StopInput{ActorID: s.userID, OwnerID: s.userID})
	s.ErrorIs(err, pomodoro.ErrSessionNotFound)
}

func (s *PomodoroServiceTestSuite) TestStop_RemovesSessionAndTimers() {
	session := s.create(s.userID, 25)
	s.start(session)
	s.advance(90 * time.Second)

	out, err := s.service.Stop(s.ctx, &pomodoro.StopInput{
		ActorID:   s.userID,
		OwnerID:   s.userID,
		SessionID: session.ID,
	})
	s.Require().NoError(err)

	n := out.Notification
	s.Equal(pomodoro.EventStopped, n.Event)
	s.Equal(models.SessionStateStopped, n.Session.State)
	s.Equal(90*time.Second, n.Session.Elapsed)
	s.Equal(1, n.Progress.MinutesCompleted)
	s.Equal(s.testQuote, n.Quote)

	s.assertNoSession(s.userID)
	s.False(s.scheduler.Active("refresh:" + s.userID))
	s.False(s.scheduler.Active("window:" + s.userID))
}

func (s *PomodoroServiceTestSuite) TestTick_MissingSessionCancelsTimer() {
	fired := false
	s.scheduler.Every("refresh:"+s.userID, time.Second, func() { fired = true })

	out, err := s.service.Tick(s.ctx, &pomodoro.TickInput{UserID: s.userID})
	s.Require().NoError(err)
	s.Nil(out.Notification)
	s.False(fired)
	s.False(s.scheduler.Active("refresh:" + s.userID))
	s.assertNoSession(s.userID)
}

func (s *PomodoroServiceTestSuite) TestTick_NonActiveIsNoop() {
	session := s.create(s.userID, 25)
	s.start(session)
	s.advance(time.Minute)
	s.pause(session)
	before := s.stored(s.userID)

	s.advance(time.Minute)
	out, err := s.service.Tick(s.ctx, &pomodoro.TickInput{UserID: s.userID})
	s.Require().NoError(err)
	s.Nil(out.Notification)
	s.Equal(before, s.stored(s.userID))
}

func (s *PomodoroServiceTestSuite) TestTick_RewardFailureStillCompletes() {
	notifications := s.expectNotifications()
	s.mockRewards.EXPECT().
		RecordCompletion(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("disk full"))

	session := s.create(s.userID, 1)
	s.start(session)
	s.advance(time.Minute)

	out, err := s.service.Tick(s.ctx, &pomodoro.TickInput{UserID: s.userID})
	s.Require().NoError(err)
	s.Require().NotNil(out.Notification)
	s.Equal(pomodoro.EventCompleted, out.Notification.Event)
	s.Nil(out.Notification.Reward)
	s.Len(*notifications, 1)
	s.assertNoSession(s.userID)
}

func (s *PomodoroServiceTestSuite) TestTick_NotifierFailureIsLogged() {
	s.mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("discord down"))

	session := s.create(s.userID, 10)
	s.start(session)
	s.advance(time.Minute)

	out, err := s.service.Tick(s.ctx, &pomodoro.TickInput{UserID: s.userID})
	s.Require().NoError(err)
	s.Require().NotNil(out.Notification)
	s.Equal(time.Minute, s.stored(s.userID).Elapsed)
}

func (s *PomodoroServiceTestSuite) TestTick_StopDuringQuoteFetchDropsUpdate() {
	session := s.create(s.userID, 25)
	s.start(session)
	s.advance(time.Minute)

	var svc pomodoro.Service
	quotes := quoteMocks.NewMockProvider(s.mockCtrl)
	stopped := false
	quotes.EXPECT().FetchQuote(gomock.Any()).DoAndReturn(func(ctx context.Context) string {
		if !stopped {
			stopped = true
			_, err := svc.Stop(ctx, &pomodoro.StopInput{
				ActorID:   s.userID,
				OwnerID:   s.userID,
				SessionID: session.ID,
			})
			s.Require().NoError(err)
		}
		return s.testQuote
	}).Times(2)
	s.mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)
	svc = s.newService(quotes)

	out, err := svc.Tick(s.ctx, &pomodoro.TickInput{UserID: s.userID})
	s.Require().NoError(err)
	s.Nil(out.Notification)
	s.assertNoSession(s.userID)
}

func (s *PomodoroServiceTestSuite) TestTick_PauseDuringQuoteFetchDropsUpdate() {
	session := s.create(s.userID, 25)
	s.start(session)
	s.advance(time.Minute)

	var svc pomodoro.Service
	quotes := quoteMocks.NewMockProvider(s.mockCtrl)
	paused := false
	quotes.EXPECT().FetchQuote(gomock.Any()).DoAndReturn(func(ctx context.Context) string {
		if !paused {
			paused = true
			_, err := svc.Pause(ctx, &pomodoro.PauseInput{
				ActorID:   s.userID,
				OwnerID:   s.userID,
				SessionID: session.ID,
			})
			s.Require().NoError(err)
		}
		return s.testQuote
	}).Times(2)
	s.mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)
	svc = s.newService(quotes)

	out, err := svc.Tick(s.ctx, &pomodoro.TickInput{UserID: s.userID})
	s.Require().NoError(err)
	s.Nil(out.Notification)
	s.Equal(models.SessionStatePaused, s.stored(s.userID).State)
}

func (s *PomodoroServiceTestSuite) TestTick_StopWaitsForUpdateDelivery() {
	session := s.create(s.userID, 25)
	s.start(session)
	s.advance(time.Minute)

	stopDone := make(chan error, 1)
	s.mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, n *pomodoro.Notification) error {
			s.Equal(pomodoro.EventUpdated, n.Event)
			go func() {
				_, err := s.service.Stop(ctx, &pomodoro.StopInput{
					ActorID:   s.userID,
					OwnerID:   s.userID,
					SessionID: session.ID,
				})
				stopDone <- err
			}()

			select {
			case <-stopDone:
				s.Fail("stop finished while the update was still being delivered")
			case <-time.After(50 * time.Millisecond):
			}
			return nil
		})

	out, err := s.service.Tick(s.ctx, &pomodoro.TickInput{UserID: s.userID})
	s.Require().NoError(err)
	s.Require().NotNil(out.Notification)

	select {
	case err := <-stopDone:
		s.NoError(err)
	case <-time.After(time.Second):
		s.Fail("stop never finished")
	}
	s.assertNoSession(s.userID)
}

func (s *PomodoroServiceTestSuite) TestExpire_DeletesSilently() {
	session := s.create(s.userID, 25)
	s.start(session)

	timer := s.scheduler.timer("window:" + s.userID)
	s.Require().NotNil(timer)
	s.Equal(pomodoro.DefaultInteractionWindow, timer.interval)

	s.Require().True(s.scheduler.fire("window:" + s.userID))

	s.assertNoSession(s.userID)
	s.False(s.scheduler.Active("refresh:" + s.userID))
	s.False(s.scheduler.Active("window:" + s.userID))
}

func (s *PomodoroServiceTestSuite) TestInteractionsResetWindow() {
	session := s.create(s.userID, 25)
	s.start(session)
	s.pause(session)

	s.Equal(3, s.scheduler.afterCalls["window:"+s.userID])
}

func (s *PomodoroServiceTestSuite) TestGetPanel() {
	_, err := s.service.GetPanel(s.ctx, &pomodoro.GetPanelInput{UserID: s.userID})
	s.ErrorIs(err, pomodoro.ErrSessionNotFound)

	session := s.create(s.userID, 10)
	s.start(session)
	s.scheduler.Cancel("refresh:" + s.userID)

	s.advance(5 * time.Minute)
	out, err := s.service.GetPanel(s.ctx, &pomodoro.GetPanelInput{UserID: s.userID})
	s.Require().NoError(err)
	s.Equal(50, out.Notification.Progress.Percent)
	s.Equal(5, out.Notification.Progress.MinutesRemaining)
	s.True(s.scheduler.Active("refresh:" + s.userID))
}

func (s *PomodoroServiceTestSuite) TestAttachPanel() {
	session := s.create(s.userID, 10)

	out, err := s.service.AttachPanel(s.ctx, &pomodoro.AttachPanelInput{
		UserID:    s.userID,
		SessionID: session.ID,
		ChannelID: "channel-1",
		MessageID: "message-1",
	})
	s.Require().NoError(err)
	s.True(out.Session.HasPanel())

	stored := s.stored(s.userID)
	s.Equal("channel-1", stored.ChannelID)
	s.Equal("message-1", stored.MessageID)

	_, err = s.service.AttachPanel(s.ctx, &pomodoro.AttachPanelInput{
		UserID:    s.userID,
		SessionID: "old-session",
		ChannelID: "channel-2",
		MessageID: "message-2",
	})
	s.ErrorIs(err, pomodoro.ErrStalePanel)
}

func (s *PomodoroServiceTestSuite) TestRecover() {
	startedAt := s.startTime.Add(-time.Minute)
	sessions := []*models.Session{
		{ID: "a", UserID: "user-a", Focus: "ler", DurationMinutes: 25, State: models.SessionStateActive, StartedAt: &startedAt},
		{ID: "b", UserID: "user-b", Focus: "ler", DurationMinutes: 25, State: models.SessionStatePaused, Elapsed: time.Minute},
		{ID: "c", UserID: "user-c", Focus: "ler", DurationMinutes: 25, State: models.SessionStateInactive},
	}
	for _, session := range sessions {
		s.Require().NoError(s.repo.SaveSession(s.ctx, &pomodoroRepo.SaveSessionInput{Session: session}))
	}

	out, err := s.service.Recover(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, out.Sessions)
	s.Equal(1, out.Resumed)

	s.True(s.scheduler.Active("refresh:user-a"))
	s.False(s.scheduler.Active("refresh:user-b"))
	s.False(s.scheduler.Active("refresh:user-c"))
	for _, session := range sessions {
		s.True(s.scheduler.Active("window:" + session.UserID))
	}
}

func (s *PomodoroServiceTestSuite) TestShutdown() {
	session := s.create(s.userID, 25)
	s.start(session)

	s.service.Shutdown()
	s.False(s.scheduler.Active("refresh:" + s.userID))
	s.False(s.scheduler.Active("window:" + s.userID))
}

func (s *PomodoroServiceTestSuite) TestQuoteFallback() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider, err := quote.New(&quote.Config{URL: server.URL, Timeout: time.Second})
	s.Require().NoError(err)
	svc := s.newService(provider)

	out, err := svc.CreateSession(s.ctx, &pomodoro.CreateSessionInput{
		UserID:          s.userID,
		Focus:           "estudar",
		DurationMinutes: 25,
	})
	s.Require().NoError(err)
	s.Equal(quote.Fallback, out.Notification.Quote)
	s.Equal(models.SessionStateInactive, s.stored(s.userID).State)
}

func (s *PomodoroServiceTestSuite) TestUsersAreIndependent() {
	notifications := s.expectNotifications()

	first := s.create(s.userID, 10)
	second := s.create(s.otherID, 10)
	s.start(first)
	s.start(second)

	s.advance(time.Minute)
	s.pause(first)
	s.Require().True(s.scheduler.fire("refresh:" + s.otherID))

	s.Len(*notifications, 1)
	s.Equal(models.SessionStatePaused, s.stored(s.userID).State)
	s.Equal(models.SessionStateActive, s.stored(s.otherID).State)
	s.Equal(time.Minute, s.stored(s.otherID).Elapsed)
}
