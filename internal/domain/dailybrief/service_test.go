package dailybrief

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-advisor/internal/domain/advice"
	"github.com/yanqian/outfit-advisor/internal/domain/recommend"
	"github.com/yanqian/outfit-advisor/internal/domain/settings"
)

func TestRunSkipsWhenDisabled(t *testing.T) {
	pub := &stubPublisher{}
	svc := newServiceUnderTest(settings.Settings{}, &stubAdvice{}, pub)

	sent, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.False(t, sent)
	require.Empty(t, pub.sent)
}

func TestRunPublishesForHomeCity(t *testing.T) {
	pub := &stubPublisher{}
	adv := &stubAdvice{result: advice.CityAdvice{
		City:           "Berlin",
		Weather:        "41°F, Light rain",
		Recommendation: recommend.Recommend("41°F, Light rain"),
	}}
	svc := newServiceUnderTest(settings.Settings{DailyNotification: true, HomeCity: "Berlin"}, adv, pub)

	sent, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.True(t, sent)
	require.Equal(t, "Berlin", adv.lastCity)
	require.Len(t, pub.sent, 1)
	n := pub.sent[0]
	require.Equal(t, "41°F, Light rain", n.Weather)
	require.Equal(t, recommend.Emoji("41°F, Light rain"), n.Emoji)
	require.Equal(t, time.Date(2024, 7, 1, 7, 0, 0, 0, time.UTC), n.SentAt)
}

func TestRunFallsBackToConfiguredCity(t *testing.T) {
	adv := &stubAdvice{result: advice.CityAdvice{Weather: "70°F, Clear"}}
	svc := newServiceUnderTest(settings.Settings{DailyNotification: true}, adv, &stubPublisher{})

	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Prague", adv.lastCity)
}

func TestRunPropagatesPublishError(t *testing.T) {
	adv := &stubAdvice{result: advice.CityAdvice{Weather: "70°F, Clear"}}
	pub := &stubPublisher{err: errors.New("broker unavailable")}
	svc := newServiceUnderTest(settings.Settings{DailyNotification: true}, adv, pub)

	sent, err := svc.Run(context.Background())
	require.Error(t, err)
	require.False(t, sent)
}

func newServiceUnderTest(current settings.Settings, adv *stubAdvice, pub *stubPublisher) *service {
	svc := NewService(Config{DefaultCity: "Prague"}, &stubSettings{current: current}, adv, pub, slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	svc.now = func() time.Time { return time.Date(2024, 7, 1, 7, 0, 0, 0, time.UTC) }
	return svc
}

type stubSettings struct {
	current settings.Settings
}

func (s *stubSettings) Get(context.Context) (settings.Settings, error) {
	return s.current, nil
}

func (s *stubSettings) Update(context.Context, settings.UpdateRequest) (settings.Settings, error) {
	return s.current, nil
}

type stubAdvice struct {
	result   advice.CityAdvice
	lastCity string
}

func (s *stubAdvice) ForCity(_ context.Context, city string) (advice.CityAdvice, error) {
	s.lastCity = city
	return s.result, nil
}

func (s *stubAdvice) ForEvents(context.Context, advice.EventsRequest) (advice.EventsResponse, error) {
	return advice.EventsResponse{}, nil
}

type stubPublisher struct {
	sent []Notification
	err  error
}

func (p *stubPublisher) Publish(_ context.Context, n Notification) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, n)
	return nil
}
