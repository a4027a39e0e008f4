package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/entities"
	"workshop-system/pkg/constants"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/eventbus"
	"workshop-system/pkg/utils"
)

func newEquipmentServiceForTest(equipmentRepo *fakeEquipmentRepo, workshopRepo *fakeWorkshopRepo, userRepo *fakeUserRepo) EquipmentServiceInterface {
	return NewEquipmentService(
		equipmentRepo,
		workshopRepo,
		userRepo,
		&fakeTxManager{},
		eventbus.New(zap.NewNop()),
		zap.NewNop(),
	)
}

func seedItem(repo *fakeEquipmentRepo, workshopID uint64, status constants.EquipmentStatus) uint64 {
	repo.nextID++
	id := repo.nextID
	repo.items[id] = &entities.Equipment{
		ID:         id,
		WorkshopID: workshopID,
		Name:       "חבלים (x4)",
		Status:     status,
	}
	return id
}

func TestAdvanceStatus_MovesToNextAndWritesJournal(t *testing.T) {
	equipmentRepo := newFakeEquipmentRepo()
	workshopRepo := newFakeWorkshopRepo()
	workshopRepo.workshops[1] = &entities.Workshop{ID: 1, Title: "סדנת גיבוש"}
	userRepo := newFakeUserRepo(entities.User{ID: 7, Name: "אחראי מחסן", Role: constants.RoleWarehouse})

	id := seedItem(equipmentRepo, 1, constants.EquipmentStatusOrdered)
	svc := newEquipmentServiceForTest(equipmentRepo, workshopRepo, userRepo)
	ctx := utils.WithUserID(context.Background(), 7)

	updated, err := svc.AdvanceStatus(ctx, id, nil)
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentStatusReady, updated.Status)
	assert.Equal(t, constants.EquipmentStatusReady, equipmentRepo.items[id].Status)

	require.Len(t, equipmentRepo.events, 1)
	ev := equipmentRepo.events[0]
	assert.Equal(t, id, ev.EquipmentID)
	assert.Equal(t, constants.EquipmentStatusOrdered, ev.FromStatus)
	assert.Equal(t, constants.EquipmentStatusReady, ev.ToStatus)
	assert.Equal(t, uint64(7), ev.ChangedBy)
	assert.Nil(t, ev.TxID)
}

func TestAdvanceStatus_TerminalStatusRejected(t *testing.T) {
	equipmentRepo := newFakeEquipmentRepo()
	workshopRepo := newFakeWorkshopRepo()
	userRepo := newFakeUserRepo(entities.User{ID: 7})

	id := seedItem(equipmentRepo, 1, constants.EquipmentStatusReturned)
	svc := newEquipmentServiceForTest(equipmentRepo, workshopRepo, userRepo)
	ctx := utils.WithUserID(context.Background(), 7)

	_, err := svc.AdvanceStatus(ctx, id, nil)
	assert.ErrorIs(t, err, apperrors.ErrNoNextStatus)
	assert.Empty(t, equipmentRepo.events, "из конечного статуса записей в журнале быть не должно")
}

func TestSetStatus_InvalidValueRejected(t *testing.T) {
	equipmentRepo := newFakeEquipmentRepo()
	svc := newEquipmentServiceForTest(equipmentRepo, newFakeWorkshopRepo(), newFakeUserRepo())
	ctx := utils.WithUserID(context.Background(), 7)

	_, err := svc.SetStatus(ctx, 1, constants.EquipmentStatus("LOST"), nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestSetStatus_SameStatusIsNoop(t *testing.T) {
	equipmentRepo := newFakeEquipmentRepo()
	workshopRepo := newFakeWorkshopRepo()
	userRepo := newFakeUserRepo(entities.User{ID: 7})

	id := seedItem(equipmentRepo, 1, constants.EquipmentStatusReady)
	svc := newEquipmentServiceForTest(equipmentRepo, workshopRepo, userRepo)
	ctx := utils.WithUserID(context.Background(), 7)

	updated, err := svc.SetStatus(ctx, id, constants.EquipmentStatusReady, nil)
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentStatusReady, updated.Status)
	assert.Empty(t, equipmentRepo.events, "повторная установка того же статуса не пишется в журнал")
}

func TestSetStatus_RequiresUserInContext(t *testing.T) {
	equipmentRepo := newFakeEquipmentRepo()
	id := seedItem(equipmentRepo, 1, constants.EquipmentStatusOrdered)
	svc := newEquipmentServiceForTest(equipmentRepo, newFakeWorkshopRepo(), newFakeUserRepo())

	_, err := svc.SetStatus(context.Background(), id, constants.EquipmentStatusReady, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestBatchSetStatus_IsolatesFailuresAndSharesTxID(t *testing.T) {
	equipmentRepo := newFakeEquipmentRepo()
	workshopRepo := newFakeWorkshopRepo()
	workshopRepo.workshops[1] = &entities.Workshop{ID: 1, Title: "סדנת גיבוש"}
	userRepo := newFakeUserRepo(entities.User{ID: 7})

	first := seedItem(equipmentRepo, 1, constants.EquipmentStatusOrdered)
	second := seedItem(equipmentRepo, 1, constants.EquipmentStatusOrdered)
	missing := uint64(999)

	svc := newEquipmentServiceForTest(equipmentRepo, workshopRepo, userRepo)
	ctx := utils.WithUserID(context.Background(), 7)

	results, err := svc.BatchSetStatus(ctx, dto.BatchUpdateStatusDTO{
		IDs:    []uint64{first, missing, second},
		Status: constants.EquipmentStatusReady.String(),
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Empty(t, results[0].Error)
	assert.NotEmpty(t, results[1].Error, "несуществующий элемент получает свою ошибку")
	assert.Empty(t, results[2].Error)

	assert.Equal(t, constants.EquipmentStatusReady, equipmentRepo.items[first].Status)
	assert.Equal(t, constants.EquipmentStatusReady, equipmentRepo.items[second].Status)

	require.Len(t, equipmentRepo.events, 2)
	require.NotNil(t, equipmentRepo.events[0].TxID)
	require.NotNil(t, equipmentRepo.events[1].TxID)
	assert.Equal(t, *equipmentRepo.events[0].TxID, *equipmentRepo.events[1].TxID,
		"события одного batch несут общий TxID")
}

func TestAdvanceStatus_FailingListenerDoesNotFailOperation(t *testing.T) {
	equipmentRepo := newFakeEquipmentRepo()
	workshopRepo := newFakeWorkshopRepo()
	workshopRepo.workshops[1] = &entities.Workshop{ID: 1, Title: "סדנה"}
	userRepo := newFakeUserRepo(entities.User{ID: 7})

	bus := eventbus.New(zap.NewNop())
	bus.Subscribe("equipment.status.changed", func(ctx context.Context, event eventbus.Event) error {
		return assert.AnError
	})

	id := seedItem(equipmentRepo, 1, constants.EquipmentStatusOrdered)
	svc := NewEquipmentService(equipmentRepo, workshopRepo, userRepo, &fakeTxManager{}, bus, zap.NewNop())
	ctx := utils.WithUserID(context.Background(), 7)

	updated, err := svc.AdvanceStatus(ctx, id, nil)
	require.NoError(t, err, "отказ слушателя не влияет на исход операции")
	assert.Equal(t, constants.EquipmentStatusReady, updated.Status)
}

func TestBatchSetStatus_EmptyIDsRejected(t *testing.T) {
	svc := newEquipmentServiceForTest(newFakeEquipmentRepo(), newFakeWorkshopRepo(), newFakeUserRepo())
	ctx := utils.WithUserID(context.Background(), 7)

	_, err := svc.BatchSetStatus(ctx, dto.BatchUpdateStatusDTO{Status: constants.EquipmentStatusReady.String()})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBatchSetStatus_InvalidStatusRejectedUpfront(t *testing.T) {
	svc := newEquipmentServiceForTest(newFakeEquipmentRepo(), newFakeWorkshopRepo(), newFakeUserRepo())
	ctx := utils.WithUserID(context.Background(), 7)

	_, err := svc.BatchSetStatus(ctx, dto.BatchUpdateStatusDTO{IDs: []uint64{1}, Status: "BROKEN"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestCreateEquipment_StartsOrdered(t *testing.T) {
	equipmentRepo := newFakeEquipmentRepo()
	workshopRepo := newFakeWorkshopRepo()
	workshopRepo.workshops[3] = &entities.Workshop{ID: 3, Title: "סדנת ODT"}

	svc := newEquipmentServiceForTest(equipmentRepo, workshopRepo, newFakeUserRepo())

	created, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		WorkshopID: 3,
		Name:       "אלונקה",
	})
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentStatusOrdered, created.Status)
}

func TestCreateEquipment_UnknownWorkshop(t *testing.T) {
	svc := newEquipmentServiceForTest(newFakeEquipmentRepo(), newFakeWorkshopRepo(), newFakeUserRepo())

	_, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{WorkshopID: 42, Name: "אלונקה"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
