package database

import (
	"fmt"
	"log"
	"os"

	"socios-app/internal/domain/acceso"
	"socios-app/internal/domain/cuotas"
	"socios-app/internal/domain/disciplinas"
	"socios-app/internal/domain/entrenamientos"
	"socios-app/internal/domain/eventos"
	"socios-app/internal/domain/socios"
	"socios-app/internal/domain/usuarios"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// identity
		&usuarios.Usuario{},
		&usuarios.Rol{},

		// membership
		&socios.NivelSocio{},
		&socios.SocioInfo{},

		// catalog
		&disciplinas.Disciplina{},
		&disciplinas.Categoria{},
		&disciplinas.CategoriaEntrenador{},

		// training
		&entrenamientos.HorarioEntrenamiento{},
		&entrenamientos.SesionEntrenamiento{},
		&entrenamientos.AsistenciaEntrenamiento{},

		// events and dues
		&eventos.Evento{},
		&cuotas.Cuota{},
		&cuotas.Pago{},

		// access control
		&acceso.RegistroAcceso{},
	); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	seedRoles()

	fmt.Println("Connected and migrated successfully")
}

// seedRoles makes sure the five club roles exist; assignment endpoints only
// reference them, never create them.
func seedRoles() {
	for _, nombre := range []string{"socio", "admin", "profesor", "dirigente", "empleado"} {
		rol := usuarios.Rol{Nombre: nombre}
		if err := DB.Where(usuarios.Rol{Nombre: nombre}).FirstOrCreate(&rol).Error; err != nil {
			log.Fatal("Role seeding error:", err)
		}
	}
}
