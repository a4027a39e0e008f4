package catalog

// MergeEquipment сворачивает несколько списков требований в один, с ключом по
// названию позиции. Правила слияния:
//   - обе записи скалируемые - количества складываются;
//   - хотя бы одна нескалируемая - берётся максимум количеств, результат
//     помечается нескалируемым (фиксированный реквизит не дублируют, но его
//     должно хватить на самый требовательный список).
//
// Порядок результата - порядок первого появления названия при обходе списков.
// Функция чистая: входные списки не изменяются.
func MergeEquipment(lists [][]EquipmentRequirement) []EquipmentRequirement {
	merged := make([]EquipmentRequirement, 0)
	index := make(map[string]int)

	for _, list := range lists {
		for _, req := range list {
			i, seen := index[req.Item]
			if !seen {
				index[req.Item] = len(merged)
				merged = append(merged, req)
				continue
			}

			existing := merged[i]
			if existing.Scalable && req.Scalable {
				existing.Quantity += req.Quantity
			} else {
				if req.Quantity > existing.Quantity {
					existing.Quantity = req.Quantity
				}
				existing.Scalable = false
			}
			merged[i] = existing
		}
	}

	return merged
}

// GetTotalEquipment считает итоговое количество по каждой позиции.
// numGroups меньше единицы трактуется как одна группа.
func GetTotalEquipment(requirements []EquipmentRequirement, numGroups int) []EquipmentTotal {
	if numGroups < 1 {
		numGroups = 1
	}

	totals := make([]EquipmentTotal, 0, len(requirements))
	for _, req := range requirements {
		total := req.Quantity
		if req.Scalable {
			total = req.Quantity * numGroups
		}
		totals = append(totals, EquipmentTotal{Item: req.Item, Total: total})
	}
	return totals
}
