// Package snapshot builds the immutable access-core snapshots out of storage.
// Everything the pure decision layer needs about a user (roles, membership,
// dues status, teaching assignments) is gathered here, in one place, so
// handlers and middleware never branch on raw rows themselves.
package snapshot

import (
	"gorm.io/gorm"

	"socios-app/internal/domain/access"
	"socios-app/internal/domain/cuotas"
	"socios-app/internal/domain/socios"
	"socios-app/internal/domain/usuarios"
)

// ForUsuario assembles the access snapshot for one user id. A missing user
// row is an error; a missing membership just leaves the snapshot without one.
func ForUsuario(db *gorm.DB, userID uint) (*access.User, error) {
	var u usuarios.Usuario
	if err := db.Preload("Roles").First(&u, userID).Error; err != nil {
		return nil, err
	}

	snap := &access.User{
		ID:    u.ID,
		Roles: access.NormalizeRoles(u.RoleNames()),
	}

	var info socios.SocioInfo
	err := db.Where("usuario_id = ?", u.ID).First(&info).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		// not a socio
	case err != nil:
		return nil, err
	default:
		upToDate, derr := DuesUpToDate(db, u.ID)
		if derr != nil {
			return nil, derr
		}
		snap.Membership = &access.Membership{
			State:        access.MembershipState(info.Estado),
			DisciplineID: info.DisciplinaID,
			CategoryID:   info.CategoriaID,
			DuesUpToDate: upToDate,
		}
	}

	if snap.Roles.Has(access.RoleProfesor) {
		ids, err := teachingDisciplines(db, u.ID)
		if err != nil {
			return nil, err
		}
		snap.TeachingDisciplineIDs = ids
	}

	return snap, nil
}

// DuesUpToDate reports whether the user has no outstanding cuotas (a cuota is
// outstanding until a completed pago covers it).
func DuesUpToDate(db *gorm.DB, userID uint) (bool, error) {
	var count int64
	err := db.Model(&cuotas.Cuota{}).
		Where("usuario_id = ?", userID).
		Where("id NOT IN (?)", db.Model(&cuotas.Pago{}).
			Select("cuota_id").
			Where("estado = ?", cuotas.PagoCompletado)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// PendingCuotas returns the user's outstanding dues, oldest period first.
func PendingCuotas(db *gorm.DB, userID uint) ([]cuotas.Cuota, error) {
	var pending []cuotas.Cuota
	err := db.
		Where("usuario_id = ?", userID).
		Where("id NOT IN (?)", db.Model(&cuotas.Pago{}).
			Select("cuota_id").
			Where("estado = ?", cuotas.PagoCompletado)).
		Order("periodo ASC").
		Find(&pending).Error
	return pending, err
}

func teachingDisciplines(db *gorm.DB, userID uint) ([]uint, error) {
	var ids []uint
	err := db.Table("categoria_entrenadores").
		Distinct("categorias.disciplina_id").
		Joins("JOIN categorias ON categorias.id = categoria_entrenadores.categoria_id").
		Where("categoria_entrenadores.entrenador_id = ?", userID).
		Pluck("categorias.disciplina_id", &ids).Error
	return ids, err
}

// TeachingCategories returns the category ids a profesor is assigned to.
func TeachingCategories(db *gorm.DB, userID uint) ([]uint, error) {
	var ids []uint
	err := db.Table("categoria_entrenadores").
		Where("entrenador_id = ?", userID).
		Pluck("categoria_id", &ids).Error
	return ids, err
}
