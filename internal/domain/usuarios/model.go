package usuarios

import (
	"time"
)

type Usuario struct {
	ID              uint    `gorm:"primaryKey"`
	TipoDocumento   *string `gorm:"type:varchar(50)"`
	NroDocumento    *string `gorm:"type:varchar(50);uniqueIndex:idx_usuarios_nro_documento"`
	Nombre          string  `gorm:"not null"`
	Apellido        string  `gorm:"not null"`
	Email           string  `gorm:"not null;uniqueIndex:idx_usuarios_email"`
	Contrasena      *string
	AuthProvider    string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub       *string `gorm:"uniqueIndex:idx_usuarios_google_sub"`
	Telefono        *string `gorm:"type:varchar(50)"`
	FechaNacimiento *time.Time
	Direccion       *string
	Sexo            *string `gorm:"type:varchar(20)"`
	FotoURL         *string `gorm:"column:foto_url"`
	// QRToken identifies the member on the access-control kiosk.
	QRToken string `gorm:"column:qr_token;type:varchar(36);not null;uniqueIndex:idx_usuarios_qr_token"`
	Activo  bool   `gorm:"not null;default:true"`

	Roles []Rol `gorm:"many2many:usuario_roles"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NombreCompleto is the display name used on lists, the kiosk and the access log.
func (u Usuario) NombreCompleto() string {
	return u.Nombre + " " + u.Apellido
}

// RoleNames flattens the loaded roles for JWT claims and JSON payloads.
func (u Usuario) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Nombre)
	}
	return names
}

type Rol struct {
	ID          uint   `gorm:"primaryKey"`
	Nombre      string `gorm:"not null;uniqueIndex:idx_roles_nombre"`
	Descripcion *string
}

func (Rol) TableName() string { return "roles" }
