package permission

import (
	"github.com/google/uuid"

	"hejazi/internal/domain"
)

// KeyOf returns the resource key a stored row points at.
func KeyOf(row *domain.PermissionRow) (Key, bool) {
	switch {
	case row.SubSubServiceID != nil:
		return Key{Level: LevelSubSubService, ID: *row.SubSubServiceID}, true
	case row.SubServiceID != nil:
		return Key{Level: LevelSubService, ID: *row.SubServiceID}, true
	case row.ServiceID != nil:
		return Key{Level: LevelService, ID: *row.ServiceID}, true
	}
	return Key{}, false
}

// FromRows converts stored rows into an override map. Rows without a
// resource column are skipped.
func FromRows(rows []domain.PermissionRow) Overrides {
	o := make(Overrides, len(rows))
	for i := range rows {
		if k, ok := KeyOf(&rows[i]); ok {
			o[k] = rows[i].IsAllowed
		}
	}
	return o
}

// Row builds a storable row for key k.
func Row(tenantID, subjectID uuid.UUID, k Key, allowed bool) domain.PermissionRow {
	row := domain.PermissionRow{
		TenantID:  tenantID,
		SubjectID: subjectID,
		IsAllowed: allowed,
	}
	id := k.ID
	switch k.Level {
	case LevelService:
		row.ServiceID = &id
	case LevelSubService:
		row.SubServiceID = &id
	case LevelSubSubService:
		row.SubSubServiceID = &id
	}
	return row
}

// ToRows converts an override map into storable rows. With dropDenied set,
// false entries are omitted.
func ToRows(tenantID, subjectID uuid.UUID, o Overrides, dropDenied bool) []domain.PermissionRow {
	rows := make([]domain.PermissionRow, 0, len(o))
	for k, allowed := range o {
		if dropDenied && !allowed {
			continue
		}
		rows = append(rows, Row(tenantID, subjectID, k, allowed))
	}
	return rows
}
