package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"eventhub/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockEventRepository struct {
	events       map[string]*domain.Event
	windowEvents []*domain.Event
	increments   map[string]int
	doneIDs      []string
	canceledIDs  []string
	windowStart  time.Time
	windowEnd    time.Time
	err          error
	incrementErr error
	markDoneErr  error
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	event.ID = "event-created"
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Event
	for _, ev := range m.events {
		if ev.OwnerID == ownerID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockEventRepository) ListByTargetDateBetween(ctx context.Context, start, end time.Time) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.windowStart = start
	m.windowEnd = end
	return m.windowEvents, nil
}

func (m *mockEventRepository) IncrementMemberCount(ctx context.Context, id string) error {
	if m.incrementErr != nil {
		return m.incrementErr
	}
	if m.increments == nil {
		m.increments = map[string]int{}
	}
	m.increments[id]++
	return nil
}

func (m *mockEventRepository) MarkDone(ctx context.Context, id string) error {
	if m.markDoneErr != nil {
		return m.markDoneErr
	}
	m.doneIDs = append(m.doneIDs, id)
	return nil
}

func (m *mockEventRepository) MarkCanceled(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	m.canceledIDs = append(m.canceledIDs, id)
	return nil
}

type mockParticipantRepository struct {
	byID           map[string]*domain.Participant
	byEventAndUser map[string]*domain.Participant
	byEvent        map[string][]*domain.Participant
	roster         map[string][]*domain.ParticipantWithUser
	acceptedIDs    []string
	declinedIDs    []string
	attendedCalls  map[string][]bool
	created        []*domain.Participant
	err            error
}

func (m *mockParticipantRepository) Create(ctx context.Context, p *domain.Participant) error {
	if m.err != nil {
		return m.err
	}
	p.ID = "participant-created"
	m.created = append(m.created, p)
	return nil
}

func (m *mockParticipantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockParticipantRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Participant, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.byEventAndUser[eventID+":"+userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockParticipantRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byEvent[eventID], nil
}

func (m *mockParticipantRepository) ListWithUserByEventID(ctx context.Context, eventID string) ([]*domain.ParticipantWithUser, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.roster[eventID], nil
}

func (m *mockParticipantRepository) SetAccepted(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.acceptedIDs = append(m.acceptedIDs, id)
	return nil
}

func (m *mockParticipantRepository) SetDeclined(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.declinedIDs = append(m.declinedIDs, id)
	return nil
}

func (m *mockParticipantRepository) SetAttended(ctx context.Context, id string, attended bool) error {
	if m.err != nil {
		return m.err
	}
	if m.byID != nil {
		if _, ok := m.byID[id]; !ok {
			return domain.ErrNotFound
		}
	}
	if m.attendedCalls == nil {
		m.attendedCalls = map[string][]bool{}
	}
	m.attendedCalls[id] = append(m.attendedCalls[id], attended)
	return nil
}

type mockUserRepository struct {
	users     map[string]*domain.UserWithProfile
	byCred    map[string]*domain.User
	createErr error
}

func (m *mockUserRepository) Create(ctx context.Context, u *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	u.ID = "user-created"
	return nil
}

func (m *mockUserRepository) CreateProfile(ctx context.Context, p *domain.Profile) error {
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.UserWithProfile, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	if u, ok := m.byCred[email]; ok {
		return u, nil
	}
	if u, ok := m.byCred[phone]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type emittedNotification struct {
	recipientID string
	sender      *domain.UserWithProfile
	eventID     *string
	content     string
	typ         domain.NotificationType
}

type mockNotifier struct {
	mu      sync.Mutex
	emitted []emittedNotification
	deleted []string
	emitErr error
}

func (m *mockNotifier) Emit(ctx context.Context, recipientID string, sender *domain.UserWithProfile, eventID *string, content string, typ domain.NotificationType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emitErr != nil {
		return m.emitErr
	}
	m.emitted = append(m.emitted, emittedNotification{
		recipientID: recipientID,
		sender:      sender,
		eventID:     eventID,
		content:     content,
		typ:         typ,
	})
	return nil
}

func (m *mockNotifier) DeletePending(ctx context.Context, eventID, recipientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, eventID+":"+recipientID)
	return nil
}

func (m *mockNotifier) FindAll(ctx context.Context, recipientID string, params domain.PaginationParams) ([]*domain.Notification, int, error) {
	return nil, 0, nil
}

type mockNotificationRepository struct {
	created   []*domain.Notification
	deleted   []string
	list      []*domain.Notification
	total     int
	createErr error
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	n.ID = "notification-created"
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationRepository) ListByRecipientID(ctx context.Context, recipientID string, params domain.PaginationParams) ([]*domain.Notification, int, error) {
	return m.list, m.total, nil
}

func (m *mockNotificationRepository) DeletePendingDecision(ctx context.Context, eventID, recipientID string) error {
	m.deleted = append(m.deleted, eventID+":"+recipientID)
	return nil
}

type mockPusher struct {
	pushed  []domain.PushPayload
	pushErr error
}

func (m *mockPusher) PushToUser(userID string, payload domain.PushPayload) error {
	if m.pushErr != nil {
		return m.pushErr
	}
	m.pushed = append(m.pushed, payload)
	return nil
}

type mockAnnouncer struct {
	mu       sync.Mutex
	canceled []string
	upcoming []string
	err      error
}

func (m *mockAnnouncer) AnnounceCanceled(ctx context.Context, event *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.canceled = append(m.canceled, event.ID)
	return nil
}

func (m *mockAnnouncer) AnnounceUpcoming(ctx context.Context, event *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.upcoming = append(m.upcoming, event.ID)
	return nil
}

func (m *mockAnnouncer) upcomingIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.upcoming...)
}
