package gcal

import (
	"testing"
	"time"

	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
)

func TestToDomainEvent_TimedEventWithStage(t *testing.T) {
	ev := &calendar.Event{
		Id:          "abc123",
		Summary:     "Kickoff (moved)",
		Description: "Moved to Tuesday",
		Location:    "Room 4",
		ColorId:     "7",
		Start:       &calendar.EventDateTime{DateTime: "2024-06-11T10:00:00+02:00"},
		End:         &calendar.EventDateTime{DateTime: "2024-06-11T10:45:00+02:00"},
		HangoutLink: "https://meet.google.com/abc-defg-hij",
		Attendees: []*calendar.EventAttendee{
			{Email: "ada@example.com"},
			{DisplayName: "Room 4"},
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{StageProperty: "kickoff"},
		},
		Created: "2024-06-01T08:00:00Z",
	}

	got, err := ToDomainEvent(ev, "emp-1", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "gcal:abc123", got.ID)
	assert.Equal(t, "emp-1", got.EmployeeID)
	assert.Equal(t, "kickoff", got.Stage())
	assert.True(t, time.Date(2024, 6, 11, 8, 0, 0, 0, time.UTC).Equal(got.Start))
	assert.Equal(t, 45*time.Minute, got.End.Sub(got.Start))
	assert.Equal(t, "#039be5", got.Color)
	assert.Equal(t, "google_meet", got.MeetingType)
	assert.Equal(t, "https://meet.google.com/abc-defg-hij", got.MeetingURL)
	assert.Equal(t, []string{"ada@example.com", "Room 4"}, got.Participants)
	assert.Equal(t, domain.SourceGoogle, got.Source)
	assert.Equal(t, domain.EventScheduled, got.Status)
	assert.Equal(t, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), got.CreatedAt)
}

func TestToDomainEvent_AllDayCancelled(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*3600)
	ev := &calendar.Event{
		Id:     "day",
		Status: "cancelled",
		Start:  &calendar.EventDateTime{Date: "2024-06-12"},
		End:    &calendar.EventDateTime{Date: "2024-06-13"},
	}

	got, err := ToDomainEvent(ev, "emp-1", berlin)
	require.NoError(t, err)
	assert.Equal(t, "(no title)", got.Title)
	assert.Equal(t, domain.EventCancelled, got.Status)
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, berlin), got.Start)
	assert.Equal(t, 24*time.Hour, got.End.Sub(got.Start))
	assert.False(t, got.HasStage())
}

func TestToDomainEvent_ConferenceEntryPoint(t *testing.T) {
	ev := &calendar.Event{
		Id:    "zoom",
		Start: &calendar.EventDateTime{DateTime: "2024-06-12T09:00:00Z"},
		End:   &calendar.EventDateTime{DateTime: "2024-06-12T09:30:00Z"},
		ConferenceData: &calendar.ConferenceData{
			ConferenceSolution: &calendar.ConferenceSolution{Name: "Zoom Meeting"},
			EntryPoints: []*calendar.EntryPoint{
				{EntryPointType: "phone", Uri: "tel:+1-555"},
				{EntryPointType: "video", Uri: "https://zoom.us/j/1"},
			},
		},
		ExtendedProperties: &calendar.EventExtendedProperties{Private: map[string]string{StageProperty: ""}},
	}

	got, err := ToDomainEvent(ev, "emp-1", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "Zoom Meeting", got.MeetingType)
	assert.Equal(t, "https://zoom.us/j/1", got.MeetingURL)
	assert.Nil(t, got.StageID, "empty stage property means no stage")
}

func TestToDomainEvent_MissingTimes(t *testing.T) {
	_, err := ToDomainEvent(&calendar.Event{Id: "x", Start: &calendar.EventDateTime{}}, "emp-1", time.UTC)
	assert.ErrorContains(t, err, "event x start")

	_, err = ToDomainEvent(&calendar.Event{Id: "y", Start: &calendar.EventDateTime{Date: "2024-06-12"}}, "emp-1", time.UTC)
	assert.ErrorContains(t, err, "event y end")
}
