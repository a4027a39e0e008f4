package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"workshop-system/internal/entities"
	"workshop-system/internal/repositories"
	"workshop-system/pkg/constants"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/types"
)

// Фейки держат состояние в памяти и пишут вызовы в общий журнал,
// чтобы тесты могли проверять порядок операций внутри транзакций.

type callLog struct {
	calls []string
}

func (l *callLog) add(name string) {
	if l != nil {
		l.calls = append(l.calls, name)
	}
}

type fakeTxManager struct{}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeEquipmentRepo struct {
	items  map[uint64]*entities.Equipment
	events []entities.StatusEvent
	nextID uint64
	log    *callLog
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: make(map[uint64]*entities.Equipment)}
}

func (r *fakeEquipmentRepo) GetEquipmentList(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	out := make([]entities.Equipment, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeEquipmentRepo) GetEquipmentByWorkshop(ctx context.Context, workshopID uint64) ([]entities.Equipment, error) {
	out := make([]entities.Equipment, 0)
	for _, item := range r.items {
		if item.WorkshopID == workshopID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *fakeEquipmentRepo) CreateEquipment(ctx context.Context, q repositories.Querier, item entities.Equipment) (*entities.Equipment, error) {
	r.nextID++
	item.ID = r.nextID
	r.items[item.ID] = &item
	r.log.add("equipment.Create")
	clone := item
	return &clone, nil
}

func (r *fakeEquipmentRepo) UpdateEquipmentStatus(ctx context.Context, q repositories.Querier, id uint64, status constants.EquipmentStatus) error {
	item, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	item.Status = status
	return nil
}

func (r *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, item entities.Equipment) error {
	if _, ok := r.items[item.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.items[item.ID] = &item
	return nil
}

func (r *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, id uint64) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeEquipmentRepo) DeleteEquipmentByWorkshop(ctx context.Context, q repositories.Querier, workshopID uint64) error {
	r.log.add("equipment.DeleteByWorkshop")
	for id, item := range r.items {
		if item.WorkshopID == workshopID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *fakeEquipmentRepo) AppendStatusEvent(ctx context.Context, q repositories.Querier, event entities.StatusEvent) (*entities.StatusEvent, error) {
	event.ID = uint64(len(r.events) + 1)
	r.events = append(r.events, event)
	clone := event
	return &clone, nil
}

func (r *fakeEquipmentRepo) GetStatusEvents(ctx context.Context, equipmentID uint64) ([]entities.StatusEvent, error) {
	out := make([]entities.StatusEvent, 0)
	for _, ev := range r.events {
		if ev.EquipmentID == equipmentID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *fakeEquipmentRepo) CountByStatus(ctx context.Context) (map[string]uint64, error) {
	counts := make(map[string]uint64)
	for _, item := range r.items {
		counts[item.Status.String()]++
	}
	return counts, nil
}

type fakeWorkshopRepo struct {
	workshops map[uint64]*entities.Workshop
	nextID    uint64
	log       *callLog
}

func newFakeWorkshopRepo() *fakeWorkshopRepo {
	return &fakeWorkshopRepo{workshops: make(map[uint64]*entities.Workshop)}
}

func (r *fakeWorkshopRepo) GetWorkshops(ctx context.Context, filter types.Filter) ([]entities.Workshop, uint64, error) {
	out := make([]entities.Workshop, 0, len(r.workshops))
	for _, w := range r.workshops {
		out = append(out, *w)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeWorkshopRepo) GetWorkshopsByPeriod(ctx context.Context, year int, month int) ([]entities.Workshop, error) {
	out := make([]entities.Workshop, 0)
	for _, w := range r.workshops {
		if w.ScheduledAt.Valid && w.ScheduledAt.Time.Year() == year && int(w.ScheduledAt.Time.Month()) == month {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWorkshopRepo) FindWorkshop(ctx context.Context, id uint64) (*entities.Workshop, error) {
	w, ok := r.workshops[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *w
	return &clone, nil
}

func (r *fakeWorkshopRepo) CreateWorkshop(ctx context.Context, q repositories.Querier, workshop entities.Workshop) (*entities.Workshop, error) {
	r.nextID++
	workshop.ID = r.nextID
	r.workshops[workshop.ID] = &workshop
	r.log.add("workshop.Create")
	clone := workshop
	return &clone, nil
}

func (r *fakeWorkshopRepo) UpdateWorkshop(ctx context.Context, workshop entities.Workshop) error {
	if _, ok := r.workshops[workshop.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.workshops[workshop.ID] = &workshop
	return nil
}

func (r *fakeWorkshopRepo) UpdateWorkshopStatus(ctx context.Context, id uint64, status string) error {
	w, ok := r.workshops[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	w.Status = status
	return nil
}

func (r *fakeWorkshopRepo) UpdateChecklist(ctx context.Context, id uint64, checklist map[string]string) error {
	w, ok := r.workshops[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	w.Checklist = checklist
	return nil
}

func (r *fakeWorkshopRepo) DeleteWorkshop(ctx context.Context, q repositories.Querier, id uint64) error {
	if _, ok := r.workshops[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.workshops, id)
	r.log.add("workshop.Delete")
	return nil
}

func (r *fakeWorkshopRepo) CountByStatus(ctx context.Context) (map[string]uint64, error) {
	counts := make(map[string]uint64)
	for _, w := range r.workshops {
		counts[w.Status]++
	}
	return counts, nil
}

type fakeUserRepo struct {
	users map[uint64]*entities.User
}

func newFakeUserRepo(users ...entities.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint64]*entities.User)}
	for i := range users {
		u := users[i]
		r.users[u.ID] = &u
	}
	return r
}

func (r *fakeUserRepo) GetUsers(ctx context.Context) ([]entities.User, error) {
	out := make([]entities.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) GetUsersByRoles(ctx context.Context, roles []string) ([]entities.User, error) {
	out := make([]entities.User, 0)
	for _, u := range r.users {
		for _, role := range roles {
			if u.Role.String() == role {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	user.ID = uint64(len(r.users) + 1)
	r.users[user.ID] = &user
	clone := user
	return &clone, nil
}

func (r *fakeUserRepo) UpdateUserRole(ctx context.Context, id uint64, role string) error {
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Role = constants.UserRole(role)
	return nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id uint64) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// fakeCacheRepo - кеш в памяти без TTL; mutex нужен, потому что шина
// вызывает слушателей в отдельных горутинах.
type fakeCacheRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string)}
}

func (r *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		r.values[key] = string(v)
	default:
		r.values[key] = fmt.Sprintf("%v", v)
	}
	return nil
}

func (r *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	val, ok := r.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return val, nil
}

func (r *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range keys {
		delete(r.values, key)
	}
	return nil
}

func (r *fakeCacheRepo) Incr(ctx context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	fmt.Sscanf(r.values[key], "%d", &n)
	n++
	r.values[key] = fmt.Sprintf("%d", n)
	return n, nil
}

func (r *fakeCacheRepo) has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.values[key]
	return ok
}

type fakeProcessRepo struct {
	processes map[uint64]*entities.Process
}

func newFakeProcessRepo() *fakeProcessRepo {
	return &fakeProcessRepo{processes: make(map[uint64]*entities.Process)}
}

func (r *fakeProcessRepo) GetProcesses(ctx context.Context, filter types.Filter) ([]entities.Process, uint64, error) {
	out := make([]entities.Process, 0, len(r.processes))
	for _, p := range r.processes {
		out = append(out, *p)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeProcessRepo) FindProcess(ctx context.Context, id uint64) (*entities.Process, error) {
	p, ok := r.processes[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProcessRepo) CreateProcess(ctx context.Context, process entities.Process) (*entities.Process, error) {
	process.ID = uint64(len(r.processes) + 1)
	r.processes[process.ID] = &process
	clone := process
	return &clone, nil
}

func (r *fakeProcessRepo) UpdateProcess(ctx context.Context, process entities.Process) error {
	if _, ok := r.processes[process.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.processes[process.ID] = &process
	return nil
}

func (r *fakeProcessRepo) DeleteProcess(ctx context.Context, id uint64) error {
	if _, ok := r.processes[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.processes, id)
	return nil
}

func (r *fakeProcessRepo) Counts(ctx context.Context) (uint64, uint64, error) {
	var active uint64
	for _, p := range r.processes {
		if p.Status == constants.ProcessStatusActive {
			active++
		}
	}
	return uint64(len(r.processes)), active, nil
}

type fakePrefsRepo struct {
	prefs map[uint64]*entities.NotificationPreferences
}

func newFakePrefsRepo() *fakePrefsRepo {
	return &fakePrefsRepo{prefs: make(map[uint64]*entities.NotificationPreferences)}
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
	if prefs.ID == 0 {
		prefs.ID = uint64(len(r.prefs) + 1)
	}
	r.prefs[prefs.UserID] = &prefs
	clone := prefs
	return &clone, nil
}

type fakeSummaryRepo struct {
	summaries map[uint64]*entities.WorkshopSummary
	log       *callLog
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{summaries: make(map[uint64]*entities.WorkshopSummary)}
}

func (r *fakeSummaryRepo) FindByWorkshop(ctx context.Context, workshopID uint64) (*entities.WorkshopSummary, error) {
	s, ok := r.summaries[workshopID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *fakeSummaryRepo) CreateSummary(ctx context.Context, summary entities.WorkshopSummary) (*entities.WorkshopSummary, error) {
	summary.ID = uint64(len(r.summaries) + 1)
	r.summaries[summary.WorkshopID] = &summary
	clone := summary
	return &clone, nil
}

func (r *fakeSummaryRepo) DeleteByWorkshop(ctx context.Context, q repositories.Querier, workshopID uint64) error {
	delete(r.summaries, workshopID)
	r.log.add("summary.DeleteByWorkshop")
	return nil
}

// compile-time проверки соответствия интерфейсам
var (
	_ repositories.EquipmentRepositoryInterface               = (*fakeEquipmentRepo)(nil)
	_ repositories.WorkshopRepositoryInterface                = (*fakeWorkshopRepo)(nil)
	_ repositories.UserRepositoryInterface                    = (*fakeUserRepo)(nil)
	_ repositories.CacheRepositoryInterface                   = (*fakeCacheRepo)(nil)
	_ repositories.ProcessRepositoryInterface                 = (*fakeProcessRepo)(nil)
	_ repositories.NotificationPreferencesRepositoryInterface = (*fakePrefsRepo)(nil)
	_ repositories.WorkshopSummaryRepositoryInterface         = (*fakeSummaryRepo)(nil)
	_ repositories.TxManagerInterface                         = (*fakeTxManager)(nil)
)
