package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"workshop-system/internal/catalog"
	"workshop-system/internal/dto"
	"workshop-system/internal/entities"
	"workshop-system/pkg/constants"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/eventbus"
	"workshop-system/pkg/utils"
)

func newWorkshopServiceForTest(
	workshopRepo *fakeWorkshopRepo,
	equipmentRepo *fakeEquipmentRepo,
	summaryRepo *fakeSummaryRepo,
	userRepo *fakeUserRepo,
) WorkshopServiceInterface {
	return NewWorkshopService(
		workshopRepo,
		equipmentRepo,
		summaryRepo,
		userRepo,
		catalog.New(),
		&fakeTxManager{},
		eventbus.New(zap.NewNop()),
		zap.NewNop(),
	)
}

func TestCreateWorkshop_MaterializesEquipmentFromCatalog(t *testing.T) {
	workshopRepo := newFakeWorkshopRepo()
	equipmentRepo := newFakeEquipmentRepo()
	svc := newWorkshopServiceForTest(workshopRepo, equipmentRepo, newFakeSummaryRepo(), newFakeUserRepo())

	// Упражнение 2 каталога (ג'אגלינג) - плоский список из четырех позиций,
	// все скалируемые по числу групп.
	created, err := svc.CreateWorkshop(context.Background(), dto.CreateWorkshopDTO{
		Title: "סדנת גיבוש - אינטל",
		SelectedExercises: []dto.SelectedExerciseDTO{
			{ExerciseID: 2, NumGroups: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, constants.WorkshopStatusPlanned, created.Status)

	items, err := equipmentRepo.GetEquipmentByWorkshop(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, items, 4)

	names := make(map[string]bool, len(items))
	for _, item := range items {
		names[item.Name] = true
		assert.Equal(t, constants.EquipmentStatusOrdered, item.Status)
	}
	assert.True(t, names["דליים (x6)"], "количество умножается на число групп: %v", names)
	assert.True(t, names["ביצים (x18)"])
}

func TestCreateWorkshop_TitleRequired(t *testing.T) {
	svc := newWorkshopServiceForTest(newFakeWorkshopRepo(), newFakeEquipmentRepo(), newFakeSummaryRepo(), newFakeUserRepo())

	_, err := svc.CreateWorkshop(context.Background(), dto.CreateWorkshopDTO{})
	require.Error(t, err)
}

func TestCreateWorkshop_UnknownExerciseCreatesNothing(t *testing.T) {
	workshopRepo := newFakeWorkshopRepo()
	equipmentRepo := newFakeEquipmentRepo()
	svc := newWorkshopServiceForTest(workshopRepo, equipmentRepo, newFakeSummaryRepo(), newFakeUserRepo())

	_, err := svc.CreateWorkshop(context.Background(), dto.CreateWorkshopDTO{
		Title: "סדנה שגויה",
		SelectedExercises: []dto.SelectedExerciseDTO{
			{ExerciseID: 999, NumGroups: 2},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, workshopRepo.workshops, "при ошибке каталога мастер-класс не создается")
	assert.Empty(t, equipmentRepo.items)
}

func TestDeleteWorkshop_CascadeOrder(t *testing.T) {
	log := &callLog{}
	workshopRepo := newFakeWorkshopRepo()
	workshopRepo.log = log
	equipmentRepo := newFakeEquipmentRepo()
	equipmentRepo.log = log
	summaryRepo := newFakeSummaryRepo()
	summaryRepo.log = log

	workshopRepo.workshops[5] = &entities.Workshop{ID: 5, Title: "סדנת ODT"}
	seedItem(equipmentRepo, 5, constants.EquipmentStatusOrdered)

	svc := newWorkshopServiceForTest(workshopRepo, equipmentRepo, summaryRepo, newFakeUserRepo())
	require.NoError(t, svc.DeleteWorkshop(context.Background(), 5))

	assert.Equal(t,
		[]string{"summary.DeleteByWorkshop", "equipment.DeleteByWorkshop", "workshop.Delete"},
		log.calls,
		"итоги и снаряжение удаляются раньше самой записи")
	assert.Empty(t, workshopRepo.workshops)
	assert.Empty(t, equipmentRepo.items)
}

func TestCreateSummary_CompletesWorkshop(t *testing.T) {
	workshopRepo := newFakeWorkshopRepo()
	workshopRepo.workshops[2] = &entities.Workshop{ID: 2, Title: "סדנת גיבוש", Status: constants.WorkshopStatusConfirmed}
	summaryRepo := newFakeSummaryRepo()

	svc := newWorkshopServiceForTest(workshopRepo, newFakeEquipmentRepo(), summaryRepo, newFakeUserRepo())
	ctx := utils.WithUserID(context.Background(), 4)

	summary, err := svc.CreateSummary(ctx, 2, dto.CreateWorkshopSummaryDTO{ParticipantsCount: 22})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), summary.WorkshopID)
	assert.Equal(t, constants.WorkshopStatusCompleted, workshopRepo.workshops[2].Status)
}

func TestUpdateWorkshop_CancelKeepsOtherFields(t *testing.T) {
	workshopRepo := newFakeWorkshopRepo()
	workshopRepo.workshops[3] = &entities.Workshop{
		ID:     3,
		Title:  "סדנת גיבוש",
		Status: constants.WorkshopStatusPlanned,
	}

	svc := newWorkshopServiceForTest(workshopRepo, newFakeEquipmentRepo(), newFakeSummaryRepo(), newFakeUserRepo())

	status := constants.WorkshopStatusCancelled
	updated, err := svc.UpdateWorkshop(context.Background(), 3, dto.UpdateWorkshopDTO{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, constants.WorkshopStatusCancelled, updated.Status)
	assert.Equal(t, "סדנת גיבוש", updated.Title)
}
