package services

import (
	"context"
	"testing"
	"time"

	"boothly/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalendarService(repo *fakeEventRepo, loc *time.Location, now time.Time) *calendarService {
	svc := NewCalendarService(repo, loc, 5*time.Second).(*calendarService)
	svc.now = fixedClock(now)
	return svc
}

func TestCalendarService_Calendar(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	today := domain.NewDate(2026, time.May, 1)
	repo := &fakeEventRepo{events: []*domain.Event{
		{ID: "1", Name: "Spring Fair", Date: today},
		{ID: "2", Name: "Book Sale", Date: today.AddDays(10)},
		{ID: "3", Name: "Spring Fair", Date: today.AddDays(10)},
		{ID: "4", Name: "Edge Market", Date: today.AddDays(90)},
		{ID: "5", Name: "Past Fair", Date: today.AddDays(-1)},
	}}
	svc := newTestCalendarService(repo, time.UTC, now)

	cal, err := svc.Calendar(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, today, cal.Start)
	assert.Equal(t, today.AddDays(90), cal.End)
	require.Len(t, cal.Days, domain.CalendarDays)
	assert.Equal(t, today, cal.Days[0].Date)
	assert.Equal(t, today.AddDays(89), cal.Days[89].Date)

	require.Len(t, cal.Days[0].Events, 1)
	assert.Equal(t, "Spring Fair", cal.Days[0].Events[0].Name)
	require.Len(t, cal.Days[10].Events, 2)
	assert.Equal(t, "Book Sale", cal.Days[10].Events[0].Name)

	// The query window includes day 90 but no bucket holds it.
	assert.Equal(t, []string{"Spring Fair", "Book Sale", "Edge Market"}, cal.Suggestions)
	total := 0
	for _, d := range cal.Days {
		total += len(d.Events)
	}
	assert.Equal(t, 3, total)
}

func TestCalendarService_Keyword(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	today := domain.NewDate(2026, time.May, 1)
	repo := &fakeEventRepo{events: []*domain.Event{
		{ID: "1", Name: "Spring Fair", Date: today},
		{ID: "2", Name: "Book Sale", Date: today},
	}}
	svc := newTestCalendarService(repo, time.UTC, now)

	cal, err := svc.Calendar(context.Background(), " fair ")
	require.NoError(t, err)
	assert.Equal(t, "fair", cal.Keyword)
	assert.Equal(t, []string{"Spring Fair"}, cal.Suggestions)
	require.Len(t, cal.Days[0].Events, 1)
	for _, d := range cal.Days[1:] {
		assert.Empty(t, d.Events)
	}
}

func TestCalendarService_TodayFollowsLocation(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*60*60)
	now := time.Date(2026, 5, 1, 3, 0, 0, 0, time.UTC)
	repo := &fakeEventRepo{}
	svc := newTestCalendarService(repo, loc, now)

	cal, err := svc.Calendar(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2026, time.April, 30), cal.Start)
	require.Len(t, repo.queries, 1)
	assert.Equal(t, domain.NewDate(2026, time.April, 30), repo.queries[0].Start)
}

func TestCalendarService_StoreError(t *testing.T) {
	svc := newTestCalendarService(&fakeEventRepo{queryErr: errBoom}, time.UTC, time.Now())
	_, err := svc.Calendar(context.Background(), "")
	require.ErrorIs(t, err, errBoom)
}
