// Пакет catalog содержит статический каталог упражнений и чистую логику
// подсчёта необходимого снаряжения. Каталог загружается один раз при старте
// процесса и дальше только читается.
package catalog

import (
	apperrors "workshop-system/pkg/errors"
)

// EquipmentRequirement - позиция снаряжения в каталоге упражнения.
// Scalable означает, что количество умножается на число групп;
// нескалируемые позиции (например, секундомер) нужны в фиксированном количестве.
type EquipmentRequirement struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Scalable bool   `json:"scalable"`
}

// EquipmentTotal - итоговая строка манифеста: позиция и сколько штук заказать.
type EquipmentTotal struct {
	Item  string `json:"item"`
	Total int    `json:"total"`
}

type SubActivity struct {
	ID        uint64                 `json:"id"`
	Name      string                 `json:"name"`
	Equipment []EquipmentRequirement `json:"equipment"`
}

// Exercise - упражнение каталога: либо плоский список снаряжения,
// либо набор под-активностей, каждая со своим списком.
type Exercise struct {
	ID            uint64                 `json:"id"`
	Name          string                 `json:"name"`
	SubActivities []SubActivity          `json:"subActivities,omitempty"`
	Equipment     []EquipmentRequirement `json:"equipment,omitempty"`
	Options       []string               `json:"options,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
}

type Catalog struct {
	exercises []Exercise
	byID      map[uint64]*Exercise
}

// New строит каталог из статических данных (см. data.go).
func New() *Catalog {
	c := &Catalog{
		exercises: exercises,
		byID:      make(map[uint64]*Exercise, len(exercises)),
	}
	for i := range c.exercises {
		c.byID[c.exercises[i].ID] = &c.exercises[i]
	}
	return c
}

func (c *Catalog) Exercises() []Exercise {
	return c.exercises
}

func (c *Catalog) FindExercise(id uint64) (*Exercise, error) {
	ex, ok := c.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return ex, nil
}

// EquipmentForSelection собирает единый список требований для упражнения:
// плоский список как есть, под-активности - слиянием выбранных списков.
// Пустой subActivityIDs для составного упражнения означает "все под-активности".
func (c *Catalog) EquipmentForSelection(exerciseID uint64, subActivityIDs []uint64) ([]EquipmentRequirement, error) {
	ex, err := c.FindExercise(exerciseID)
	if err != nil {
		return nil, err
	}

	if len(ex.SubActivities) == 0 {
		return MergeEquipment([][]EquipmentRequirement{ex.Equipment}), nil
	}

	selected := make(map[uint64]bool, len(subActivityIDs))
	for _, id := range subActivityIDs {
		selected[id] = true
	}

	var lists [][]EquipmentRequirement
	for _, sa := range ex.SubActivities {
		if len(subActivityIDs) == 0 || selected[sa.ID] {
			lists = append(lists, sa.Equipment)
		}
	}
	if len(lists) == 0 {
		return nil, apperrors.NewInvalidInputError("упражнение %d: выбранные под-активности не найдены", exerciseID)
	}

	return MergeEquipment(lists), nil
}
