package listeners

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"workshop-system/internal/entities"
	"workshop-system/internal/events"
	"workshop-system/pkg/constants"
	apperrors "workshop-system/pkg/errors"
)

type sentMail struct {
	To      []string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) SendHTML(ctx context.Context, to []string, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (m *fakeMailer) all() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

type fakeUserRepo struct {
	users []entities.User
}

func (r *fakeUserRepo) GetUsers(ctx context.Context) ([]entities.User, error) { return r.users, nil }

func (r *fakeUserRepo) GetUsersByRoles(ctx context.Context, roles []string) ([]entities.User, error) {
	out := make([]entities.User, 0)
	for _, u := range r.users {
		for _, role := range roles {
			if u.Role.String() == role {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	return &user, nil
}

func (r *fakeUserRepo) UpdateUserRole(ctx context.Context, id uint64, role string) error { return nil }
func (r *fakeUserRepo) DeleteUser(ctx context.Context, id uint64) error                  { return nil }

type fakePrefsRepo struct {
	prefs map[uint64]*entities.NotificationPreferences
}

func (r *fakePrefsRepo) FindByUser(ctx context.Context, userID uint64) (*entities.NotificationPreferences, error) {
	p, ok := r.prefs[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakePrefsRepo) Upsert(ctx context.Context, prefs entities.NotificationPreferences) (*entities.NotificationPreferences, error) {
	if r.prefs == nil {
		r.prefs = make(map[uint64]*entities.NotificationPreferences)
	}
	r.prefs[prefs.UserID] = &prefs
	return &prefs, nil
}

func newListenerForTest(mailerSvc *fakeMailer, users []entities.User, prefs map[uint64]*entities.NotificationPreferences) *NotificationListener {
	return NewNotificationListener(
		mailerSvc,
		&fakeUserRepo{users: users},
		&fakePrefsRepo{prefs: prefs},
		zap.NewNop(),
	)
}

func readyEvent(workshop *entities.Workshop, actor *entities.User, txID *uuid.UUID, name string) events.EquipmentStatusChangedEvent {
	return events.EquipmentStatusChangedEvent{
		Equipment:  entities.Equipment{Name: name, Status: constants.EquipmentStatusReady},
		Workshop:   workshop,
		FromStatus: constants.EquipmentStatusOrdered,
		ToStatus:   constants.EquipmentStatusReady,
		Actor:      actor,
		TxID:       txID,
		ChangedAt:  time.Now(),
	}
}

func TestEquipmentNotification_SingleEventSentImmediately(t *testing.T) {
	mailerSvc := &fakeMailer{}
	admin := entities.User{ID: 1, Email: "admin@evenderech.co.il", Role: constants.RoleAdmin}
	actor := entities.User{ID: 2, Email: "warehouse@evenderech.co.il", Role: constants.RoleWarehouse}

	l := newListenerForTest(mailerSvc, []entities.User{admin, actor}, nil)
	workshop := &entities.Workshop{ID: 10, Title: "סדנת גיבוש"}

	err := l.handleEquipmentStatusChanged(context.Background(),
		readyEvent(workshop, &actor, nil, "חבלים (x4)"))
	require.NoError(t, err)

	sent := mailerSvc.all()
	require.Len(t, sent, 1, "без TxID письмо уходит сразу")
	assert.Equal(t, []string{admin.Email}, sent[0].To)
	assert.Contains(t, sent[0].Subject, "הציוד מוכן לאיסוף")
	assert.Contains(t, sent[0].Subject, "סדנת גיבוש")
	assert.Contains(t, sent[0].Body, "חבלים (x4)")
}

func TestEquipmentNotification_BatchEventsMergedIntoOneEmail(t *testing.T) {
	mailerSvc := &fakeMailer{}
	admin := entities.User{ID: 1, Email: "admin@evenderech.co.il", Role: constants.RoleAdmin}
	actor := entities.User{ID: 2, Email: "warehouse@evenderech.co.il", Role: constants.RoleWarehouse}

	l := newListenerForTest(mailerSvc, []entities.User{admin, actor}, nil)
	workshop := &entities.Workshop{ID: 10, Title: "סדנת גיבוש"}
	txID := uuid.New()

	for _, name := range []string{"חבלים (x4)", "דליים (x6)", "ביצים (x18)"} {
		require.NoError(t, l.handleEquipmentStatusChanged(context.Background(),
			readyEvent(workshop, &actor, &txID, name)))
	}

	assert.Empty(t, mailerSvc.all(), "группа ждёт окно склейки")

	// Вместо ожидания таймера сбрасываем группу вручную.
	l.flushGroup(eventGroupKey{WorkshopID: workshop.ID, TxID: txID.String()})

	sent := mailerSvc.all()
	require.Len(t, sent, 1, "вся группа - одно письмо")
	assert.Equal(t, 3, strings.Count(sent[0].Body, "<li>"))
	assert.Contains(t, sent[0].Body, "דליים (x6)")
}

func TestEquipmentNotification_ActorExcluded(t *testing.T) {
	mailerSvc := &fakeMailer{}
	admin := entities.User{ID: 1, Email: "admin@evenderech.co.il", Role: constants.RoleAdmin}

	l := newListenerForTest(mailerSvc, []entities.User{admin}, nil)

	// Админ сам сменил статус - письмо самому себе не шлём.
	err := l.handleEquipmentStatusChanged(context.Background(),
		readyEvent(&entities.Workshop{ID: 10, Title: "סדנה"}, &admin, nil, "חבלים"))
	require.NoError(t, err)
	assert.Empty(t, mailerSvc.all())
}

func TestEquipmentNotification_RespectsPreferences(t *testing.T) {
	mailerSvc := &fakeMailer{}
	admin := entities.User{ID: 1, Email: "admin@evenderech.co.il", Role: constants.RoleAdmin}
	actor := entities.User{ID: 2, Email: "warehouse@evenderech.co.il", Role: constants.RoleWarehouse}

	prefs := map[uint64]*entities.NotificationPreferences{
		1: {UserID: 1, OnEquipmentReady: false, OnEquipmentStatusChanged: true},
	}
	l := newListenerForTest(mailerSvc, []entities.User{admin, actor}, prefs)

	err := l.handleEquipmentStatusChanged(context.Background(),
		readyEvent(&entities.Workshop{ID: 10, Title: "סדנה"}, &actor, nil, "חבלים"))
	require.NoError(t, err)
	assert.Empty(t, mailerSvc.all(), "отключённый тумблер OnEquipmentReady глушит письмо")
}

func TestEquipmentNotification_WorkshopInstructorAlwaysIncluded(t *testing.T) {
	mailerSvc := &fakeMailer{}
	instructorID := uint64(4)
	instructor := entities.User{ID: instructorID, Email: "yossi@evenderech.co.il", Role: constants.RoleInstructor}
	actor := entities.User{ID: 2, Email: "warehouse@evenderech.co.il", Role: constants.RoleWarehouse}

	l := newListenerForTest(mailerSvc, []entities.User{instructor, actor}, nil)
	workshop := &entities.Workshop{ID: 10, Title: "סדנה", InstructorID: &instructorID}

	// Переход не в READY: роль instructor в выборку не входит,
	// но инструктор этого мастер-класса письмо всё равно получает.
	ev := readyEvent(workshop, &actor, nil, "חבלים")
	ev.ToStatus = constants.EquipmentStatusPickedUp
	ev.FromStatus = constants.EquipmentStatusReady

	require.NoError(t, l.handleEquipmentStatusChanged(context.Background(), ev))

	sent := mailerSvc.all()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{instructor.Email}, sent[0].To)
}

func TestProcessAssigned_EmailsInstructor(t *testing.T) {
	mailerSvc := &fakeMailer{}
	instructor := entities.User{ID: 4, Email: "yossi@evenderech.co.il", Role: constants.RoleInstructor}

	l := newListenerForTest(mailerSvc, []entities.User{instructor}, nil)

	err := l.handleProcessAssigned(context.Background(), events.ProcessAssignedEvent{
		Process:    entities.Process{ID: 1, Name: "גיבוש צוות - אינטל", ClientName: "אינטל ישראל"},
		Instructor: instructor,
	})
	require.NoError(t, err)

	sent := mailerSvc.all()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{instructor.Email}, sent[0].To)
	assert.Contains(t, sent[0].Subject, "שובצת לתהליך")
}

func TestWorkshopCreated_NotifiesBackOfficeRoles(t *testing.T) {
	mailerSvc := &fakeMailer{}
	users := []entities.User{
		{ID: 1, Email: "admin@evenderech.co.il", Role: constants.RoleAdmin},
		{ID: 2, Email: "office@evenderech.co.il", Role: constants.RoleOffice},
		{ID: 3, Email: "warehouse@evenderech.co.il", Role: constants.RoleWarehouse},
		{ID: 4, Email: "yossi@evenderech.co.il", Role: constants.RoleInstructor},
	}

	l := newListenerForTest(mailerSvc, users, nil)

	err := l.handleWorkshopCreated(context.Background(), events.WorkshopCreatedEvent{
		Workshop:       entities.Workshop{ID: 10, Title: "סדנת גיבוש"},
		EquipmentCount: 4,
	})
	require.NoError(t, err)

	sent := mailerSvc.all()
	require.Len(t, sent, 3, "инструкторы о новых бронях не уведомляются")
	for _, mail := range sent {
		assert.Contains(t, mail.Subject, "סדנה חדשה")
		assert.Contains(t, mail.Body, "הוזמנו 4 פריטי ציוד")
	}
}

func TestWorkshopUpdated_RespectsPreferenceToggle(t *testing.T) {
	mailerSvc := &fakeMailer{}
	users := []entities.User{
		{ID: 1, Email: "admin@evenderech.co.il", Role: constants.RoleAdmin},
		{ID: 2, Email: "office@evenderech.co.il", Role: constants.RoleOffice},
	}
	prefs := map[uint64]*entities.NotificationPreferences{
		2: {UserID: 2, OnWorkshopUpdated: false},
	}

	l := newListenerForTest(mailerSvc, users, prefs)

	err := l.handleWorkshopUpdated(context.Background(), events.WorkshopUpdatedEvent{
		Workshop: entities.Workshop{ID: 10, Title: "סדנת גיבוש"},
	})
	require.NoError(t, err)

	sent := mailerSvc.all()
	require.Len(t, sent, 1, "выключенная тема глушит письмо об изменении")
	assert.Equal(t, []string{"admin@evenderech.co.il"}, sent[0].To)
	assert.Contains(t, sent[0].Subject, "סדנה עודכנה")
}

func TestWorkshopUpdated_ActorExcluded(t *testing.T) {
	mailerSvc := &fakeMailer{}
	office := entities.User{ID: 2, Email: "office@evenderech.co.il", Role: constants.RoleOffice}

	l := newListenerForTest(mailerSvc, []entities.User{office}, nil)

	err := l.handleWorkshopUpdated(context.Background(), events.WorkshopUpdatedEvent{
		Workshop: entities.Workshop{ID: 10, Title: "סדנת גיבוש"},
		Actor:    &office,
	})
	require.NoError(t, err)

	assert.Empty(t, mailerSvc.all(), "автор изменения письмо не получает")
}
