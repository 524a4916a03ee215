package usuarios

import (
	"gorm.io/gorm"

	"socios-app/internal/app/snapshot"
	"socios-app/internal/domain/access"
	"socios-app/internal/domain/cuotas"
	"socios-app/internal/domain/socios"
	"socios-app/internal/domain/usuarios"
)

func BuildUserDTO(u usuarios.Usuario) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		Nombre:       u.Nombre,
		Apellido:     u.Apellido,
		NroDocumento: u.NroDocumento,
		Telefono:     u.Telefono,
		FotoURL:      u.FotoURL,
		Roles:        u.RoleNames(),
	}
}

func BuildSocioDTO(db *gorm.DB, userID uint) (*SocioDTO, error) {
	var info socios.SocioInfo
	err := db.
		Preload("NivelSocio").
		Preload("Disciplina").
		Preload("Categoria").
		Where("usuario_id = ?", userID).
		First(&info).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	pending, err := snapshot.PendingCuotas(db, userID)
	if err != nil {
		return nil, err
	}

	dto := &SocioDTO{
		Estado:           info.Estado,
		AlDia:            len(pending) == 0,
		CuotasPendientes: BuildCuotasPendientes(pending),
	}
	if info.NivelSocio != nil {
		n := info.NivelSocio.Nivel
		dto.Nivel = &n
	}
	if info.Disciplina != nil {
		dto.Disciplina = &DisciplinaLite{ID: info.Disciplina.ID, Nombre: info.Disciplina.Nombre}
	}
	if info.Categoria != nil {
		dto.Categoria = &CategoriaLite{ID: info.Categoria.ID, Nombre: info.Categoria.Nombre}
	}
	return dto, nil
}

func BuildCuotasPendientes(pending []cuotas.Cuota) []CuotaPendiente {
	out := make([]CuotaPendiente, 0, len(pending))
	for _, cu := range pending {
		out = append(out, CuotaPendiente{
			ID:          cu.ID,
			Periodo:     cu.Periodo,
			Monto:       cu.Monto,
			Vencimiento: cu.Vencimiento,
		})
	}
	return out
}

func BuildAccessDTO(snap *access.User) AccessDTO {
	var m *access.Membership
	if snap != nil {
		m = snap.Membership
	}
	action := access.EligibleAction(m)
	return AccessDTO{
		EsSocio:  access.IsMember(snap),
		Activo:   access.IsActive(snap),
		ConDeuda: access.IsMember(snap) && access.HasDebt(snap),
		Accion: ActionDTO{
			Tipo:              string(action.Kind),
			RequiereDatosPago: action.RequiresPaymentDetails,
		},
	}
}
