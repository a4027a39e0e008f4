package listeners

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"workshop-system/internal/entities"
	"workshop-system/internal/events"
	"workshop-system/internal/repositories"
	"workshop-system/pkg/constants"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/eventbus"
	"workshop-system/pkg/mailer"
)

// Окно склейки batch-событий: всё с одним TxID, что пришло за это время,
// уходит одним письмом.
const groupFlushDelay = 2 * time.Second

type eventGroupKey struct {
	WorkshopID uint64
	TxID       string
}

type eventGroup struct {
	events []events.EquipmentStatusChangedEvent
	timer  *time.Timer
}

// NotificationListener слушает доменные события и рассылает email-уведомления
// с учётом ролей и личных настроек получателей. Ошибки доставки только
// логируются: уведомления не влияют на исход операций.
type NotificationListener struct {
	mailer    mailer.ServiceInterface
	userRepo  repositories.UserRepositoryInterface
	prefsRepo repositories.NotificationPreferencesRepositoryInterface
	logger    *zap.Logger
	groups    map[eventGroupKey]*eventGroup
	groupsMu  sync.Mutex
}

func NewNotificationListener(
	mailerService mailer.ServiceInterface,
	userRepo repositories.UserRepositoryInterface,
	prefsRepo repositories.NotificationPreferencesRepositoryInterface,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{
		mailer:    mailerService,
		userRepo:  userRepo,
		prefsRepo: prefsRepo,
		logger:    logger,
		groups:    make(map[eventGroupKey]*eventGroup),
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe("equipment.status.changed", l.handleEquipmentStatusChanged)
	bus.Subscribe("workshop.created", l.handleWorkshopCreated)
	bus.Subscribe("workshop.updated", l.handleWorkshopUpdated)
	bus.Subscribe("workshop.cancelled", l.handleWorkshopCancelled)
	bus.Subscribe("process.assigned", l.handleProcessAssigned)
	bus.Subscribe("report.approved", l.handleReportApproved)
	l.logger.Info("NotificationListener подписан на доменные события")
}

// handleEquipmentStatusChanged: одиночные переходы уходят сразу, события с
// TxID копятся в группе и отправляются одним письмом после паузы.
func (l *NotificationListener) handleEquipmentStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.EquipmentStatusChangedEvent)
	if !ok {
		return nil
	}

	if e.TxID == nil {
		l.sendEquipmentNotification(context.Background(), []events.EquipmentStatusChangedEvent{e})
		return nil
	}

	key := eventGroupKey{TxID: e.TxID.String()}
	if e.Workshop != nil {
		key.WorkshopID = e.Workshop.ID
	}

	l.groupsMu.Lock()
	defer l.groupsMu.Unlock()

	group, exists := l.groups[key]
	if !exists {
		group = &eventGroup{}
		l.groups[key] = group
		group.timer = time.AfterFunc(groupFlushDelay, func() {
			l.flushGroup(key)
		})
	}
	group.events = append(group.events, e)

	return nil
}

func (l *NotificationListener) flushGroup(key eventGroupKey) {
	l.groupsMu.Lock()
	group, exists := l.groups[key]
	if !exists {
		l.groupsMu.Unlock()
		return
	}
	delete(l.groups, key)
	l.groupsMu.Unlock()

	if len(group.events) == 0 {
		return
	}
	l.sendEquipmentNotification(context.Background(), group.events)
}

// sendEquipmentNotification шлёт письмо о смене статусов снаряжения.
// Когда всё готово к выдаче - адресаты администраторы и инструкторы,
// иначе администраторы и склад; инструктор мастер-класса получает письмо
// всегда. Автор изменения письмо не получает.
func (l *NotificationListener) sendEquipmentNotification(ctx context.Context, groupEvents []events.EquipmentStatusChangedEvent) {
	sort.Slice(groupEvents, func(i, j int) bool {
		return groupEvents[i].ChangedAt.Before(groupEvents[j].ChangedAt)
	})

	first := groupEvents[0]

	allReady := true
	for _, e := range groupEvents {
		if e.ToStatus != constants.EquipmentStatusReady {
			allReady = false
			break
		}
	}

	recipients, err := l.equipmentRecipients(ctx, first, allReady)
	if err != nil {
		l.logger.Error("не удалось определить получателей", zap.Error(err))
		return
	}

	subject := "עדכון סטטוס ציוד"
	if allReady {
		subject = "הציוד מוכן לאיסוף"
	}
	if first.Workshop != nil {
		subject = fmt.Sprintf("%s - %s", subject, first.Workshop.Title)
	}

	body := l.formatEquipmentEmail(groupEvents, allReady)

	for _, user := range recipients {
		if err := l.mailer.SendHTML(ctx, []string{user.Email}, subject, body); err != nil {
			l.logger.Error("письмо о статусе снаряжения не отправлено",
				zap.String("email", user.Email), zap.Error(err))
		}
	}
}

func (l *NotificationListener) equipmentRecipients(ctx context.Context, e events.EquipmentStatusChangedEvent, ready bool) ([]entities.User, error) {
	roles := []string{constants.RoleAdmin.String()}
	if ready {
		roles = append(roles, constants.RoleInstructor.String())
	} else {
		roles = append(roles, constants.RoleWarehouse.String())
	}

	users, err := l.userRepo.GetUsersByRoles(ctx, roles)
	if err != nil {
		return nil, err
	}

	// Инструктор мастер-класса получает письмо независимо от роли выборки.
	if e.Workshop != nil && e.Workshop.InstructorID != nil {
		if instructor, err := l.userRepo.FindUser(ctx, *e.Workshop.InstructorID); err == nil {
			users = append(users, *instructor)
		}
	}

	recipients := make([]entities.User, 0, len(users))
	seen := make(map[uint64]struct{})
	for _, user := range users {
		if _, dup := seen[user.ID]; dup {
			continue
		}
		seen[user.ID] = struct{}{}

		if e.Actor != nil && user.ID == e.Actor.ID {
			continue
		}
		if !l.wantsEquipmentEmail(ctx, user.ID, ready) {
			continue
		}
		recipients = append(recipients, user)
	}
	return recipients, nil
}

func (l *NotificationListener) wantsEquipmentEmail(ctx context.Context, userID uint64, ready bool) bool {
	prefs, err := l.prefsRepo.FindByUser(ctx, userID)
	if err != nil {
		// Нет записи - действуют значения по умолчанию (всё включено).
		if errors.Is(err, apperrors.ErrNotFound) {
			return true
		}
		l.logger.Warn("не удалось прочитать настройки уведомлений",
			zap.Uint64("userID", userID), zap.Error(err))
		return true
	}
	if ready {
		return prefs.OnEquipmentReady
	}
	return prefs.OnEquipmentStatusChanged
}

func (l *NotificationListener) formatEquipmentEmail(groupEvents []events.EquipmentStatusChangedEvent, allReady bool) string {
	first := groupEvents[0]

	var sb strings.Builder
	sb.WriteString(`<div dir="rtl" style="font-family: Arial, sans-serif;">`)

	if allReady {
		sb.WriteString("<h2>הציוד מוכן לאיסוף</h2>")
	} else {
		sb.WriteString("<h2>עדכון סטטוס ציוד</h2>")
	}

	if first.Workshop != nil {
		sb.WriteString(fmt.Sprintf("<p>סדנה: <strong>%s</strong>", first.Workshop.Title))
		if first.Workshop.ScheduledAt.Valid {
			sb.WriteString(fmt.Sprintf(" | תאריך: %s", first.Workshop.ScheduledAt.Time.Format("02/01/2006")))
		}
		sb.WriteString("</p>")
	}

	sb.WriteString("<ul>")
	for _, e := range groupEvents {
		sb.WriteString(fmt.Sprintf("<li>%s: %s &larr; %s</li>",
			e.Equipment.Name, e.ToStatus, e.FromStatus))
	}
	sb.WriteString("</ul>")

	if first.Actor != nil {
		sb.WriteString(fmt.Sprintf("<p>עודכן על ידי: %s</p>", first.Actor.Name))
	}

	sb.WriteString("<p>מערכת אבן דרך</p></div>")
	return sb.String()
}

func (l *NotificationListener) handleWorkshopCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.WorkshopCreatedEvent)
	if !ok {
		return nil
	}

	recipients, err := l.roleRecipients(ctx,
		[]string{constants.RoleAdmin.String(), constants.RoleOffice.String(), constants.RoleWarehouse.String()},
		e.Actor,
		func(p *entities.NotificationPreferences) bool { return p.OnWorkshopCreated })
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("סדנה חדשה: %s", e.Workshop.Title)
	var sb strings.Builder
	sb.WriteString(`<div dir="rtl" style="font-family: Arial, sans-serif;">`)
	sb.WriteString(fmt.Sprintf("<h2>נקבעה סדנה חדשה</h2><p><strong>%s</strong></p>", e.Workshop.Title))
	if e.Workshop.ScheduledAt.Valid {
		sb.WriteString(fmt.Sprintf("<p>תאריך: %s</p>", e.Workshop.ScheduledAt.Time.Format("02/01/2006 15:04")))
	}
	if e.Workshop.ClientName.Valid {
		sb.WriteString(fmt.Sprintf("<p>לקוח: %s</p>", e.Workshop.ClientName.String))
	}
	if e.EquipmentCount > 0 {
		sb.WriteString(fmt.Sprintf("<p>הוזמנו %d פריטי ציוד</p>", e.EquipmentCount))
	}
	sb.WriteString("<p>מערכת אבן דרך</p></div>")

	l.sendToAll(ctx, recipients, subject, sb.String())
	return nil
}

func (l *NotificationListener) handleWorkshopUpdated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.WorkshopUpdatedEvent)
	if !ok {
		return nil
	}

	recipients, err := l.roleRecipients(ctx,
		[]string{constants.RoleAdmin.String(), constants.RoleOffice.String(), constants.RoleWarehouse.String()},
		e.Actor,
		func(p *entities.NotificationPreferences) bool { return p.OnWorkshopUpdated })
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("סדנה עודכנה: %s", e.Workshop.Title)
	var sb strings.Builder
	sb.WriteString(`<div dir="rtl" style="font-family: Arial, sans-serif;">`)
	sb.WriteString(fmt.Sprintf("<h2>פרטי הסדנה עודכנו</h2><p><strong>%s</strong></p>", e.Workshop.Title))
	if e.Workshop.ScheduledAt.Valid {
		sb.WriteString(fmt.Sprintf("<p>תאריך: %s</p>", e.Workshop.ScheduledAt.Time.Format("02/01/2006 15:04")))
	}
	sb.WriteString(fmt.Sprintf("<p>סטטוס: %s</p>", e.Workshop.Status))
	sb.WriteString("<p>מערכת אבן דרך</p></div>")

	l.sendToAll(ctx, recipients, subject, sb.String())
	return nil
}

func (l *NotificationListener) handleWorkshopCancelled(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.WorkshopCancelledEvent)
	if !ok {
		return nil
	}

	recipients, err := l.roleRecipients(ctx,
		[]string{constants.RoleAdmin.String(), constants.RoleOffice.String(), constants.RoleWarehouse.String()},
		e.Actor,
		func(p *entities.NotificationPreferences) bool { return p.OnWorkshopCancelled })
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("סדנה בוטלה: %s", e.Workshop.Title)
	body := fmt.Sprintf(`<div dir="rtl" style="font-family: Arial, sans-serif;">
<h2>הסדנה בוטלה</h2><p><strong>%s</strong></p><p>מערכת אבן דרך</p></div>`, e.Workshop.Title)

	l.sendToAll(ctx, recipients, subject, body)
	return nil
}

func (l *NotificationListener) handleProcessAssigned(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.ProcessAssignedEvent)
	if !ok {
		return nil
	}

	if !l.wantsEmail(ctx, e.Instructor.ID, func(p *entities.NotificationPreferences) bool { return p.OnProcessAssigned }) {
		return nil
	}

	subject := fmt.Sprintf("שובצת לתהליך: %s", e.Process.Name)
	body := fmt.Sprintf(`<div dir="rtl" style="font-family: Arial, sans-serif;">
<h2>שובצת לתהליך חדש</h2>
<p>תהליך: <strong>%s</strong></p>
<p>לקוח: %s</p>
<p>מערכת אבן דרך</p></div>`, e.Process.Name, e.Process.ClientName)

	if err := l.mailer.SendHTML(ctx, []string{e.Instructor.Email}, subject, body); err != nil {
		l.logger.Error("письмо о назначении не отправлено",
			zap.String("email", e.Instructor.Email), zap.Error(err))
	}
	return nil
}

func (l *NotificationListener) handleReportApproved(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.ReportApprovedEvent)
	if !ok {
		return nil
	}

	if !l.wantsEmail(ctx, e.Instructor.ID, func(p *entities.NotificationPreferences) bool { return p.OnReportApproved }) {
		return nil
	}

	subject := fmt.Sprintf("הדוח החודשי %02d/%d אושר", e.Report.Month, e.Report.Year)
	body := fmt.Sprintf(`<div dir="rtl" style="font-family: Arial, sans-serif;">
<h2>הדוח החודשי שלך אושר</h2>
<p>תקופה: %02d/%d</p>
<p>סדנאות בדוח: %d</p>
<p>מערכת אבן דרך</p></div>`, e.Report.Month, e.Report.Year, e.Report.WorkshopsCount)

	if err := l.mailer.SendHTML(ctx, []string{e.Instructor.Email}, subject, body); err != nil {
		l.logger.Error("письмо об утверждении отчёта не отправлено",
			zap.String("email", e.Instructor.Email), zap.Error(err))
	}
	return nil
}

func (l *NotificationListener) roleRecipients(
	ctx context.Context,
	roles []string,
	actor *entities.User,
	enabled func(*entities.NotificationPreferences) bool,
) ([]entities.User, error) {
	users, err := l.userRepo.GetUsersByRoles(ctx, roles)
	if err != nil {
		return nil, err
	}

	recipients := make([]entities.User, 0, len(users))
	for _, user := range users {
		if actor != nil && user.ID == actor.ID {
			continue
		}
		if !l.wantsEmail(ctx, user.ID, enabled) {
			continue
		}
		recipients = append(recipients, user)
	}
	return recipients, nil
}

func (l *NotificationListener) wantsEmail(ctx context.Context, userID uint64, enabled func(*entities.NotificationPreferences) bool) bool {
	prefs, err := l.prefsRepo.FindByUser(ctx, userID)
	if err != nil {
		return true
	}
	return enabled(prefs)
}

func (l *NotificationListener) sendToAll(ctx context.Context, recipients []entities.User, subject, body string) {
	for _, user := range recipients {
		if err := l.mailer.SendHTML(ctx, []string{user.Email}, subject, body); err != nil {
			l.logger.Error("уведомление не отправлено",
				zap.String("email", user.Email), zap.Error(err))
		}
	}
}
