package constants

// --- СТАТУСЫ ОБОРУДОВАНИЯ (Совпадает с enum в БД) ---

// EquipmentStatus - замкнутый набор статусов жизненного цикла оборудования.
// Написание значений фиксировано: фронтенд и БД используют те же строки.
type EquipmentStatus string

const (
	EquipmentStatusOrdered  EquipmentStatus = "ORDERED"
	EquipmentStatusReady    EquipmentStatus = "READY"
	EquipmentStatusPickedUp EquipmentStatus = "PICKED_UP"
	EquipmentStatusReturned EquipmentStatus = "RETURNED"
)

func (s EquipmentStatus) String() string {
	return string(s)
}

// EquipmentStatuses - все допустимые статусы в порядке жизненного цикла.
var EquipmentStatuses = []EquipmentStatus{
	EquipmentStatusOrdered,
	EquipmentStatusReady,
	EquipmentStatusPickedUp,
	EquipmentStatusReturned,
}

// nextEquipmentStatus - таблица переходов. RETURNED - конечный статус,
// перехода из него нет.
var nextEquipmentStatus = map[EquipmentStatus]EquipmentStatus{
	EquipmentStatusOrdered:  EquipmentStatusReady,
	EquipmentStatusReady:    EquipmentStatusPickedUp,
	EquipmentStatusPickedUp: EquipmentStatusReturned,
}

// IsValid проверяет, что значение входит в перечисление.
func (s EquipmentStatus) IsValid() bool {
	switch s {
	case EquipmentStatusOrdered, EquipmentStatusReady, EquipmentStatusPickedUp, EquipmentStatusReturned:
		return true
	}
	return false
}

// Next возвращает следующий статус по таблице переходов.
// ok == false означает, что статус конечный.
func (s EquipmentStatus) Next() (EquipmentStatus, bool) {
	next, ok := nextEquipmentStatus[s]
	return next, ok
}

// IsTerminal - конечный ли статус.
func (s EquipmentStatus) IsTerminal() bool {
	_, ok := nextEquipmentStatus[s]
	return !ok
}
