package routes

import (
	accesoapi "socios-app/internal/api/acceso"
	adminapi "socios-app/internal/api/admin"
	authapi "socios-app/internal/api/auth"
	cuotasapi "socios-app/internal/api/cuotas"
	disciplinasapi "socios-app/internal/api/disciplinas"
	entrenamientosapi "socios-app/internal/api/entrenamientos"
	eventosapi "socios-app/internal/api/eventos"
	sociosapi "socios-app/internal/api/socios"
	stripewebhooks "socios-app/internal/api/stripewebhook"
	usuariosapi "socios-app/internal/api/usuarios"
	"socios-app/internal/app/http/middleware"

	"socios-app/internal/domain/access"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// The webhook verifies its own signature; it must see the raw body, so
	// it stays outside the sanitizer.
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// The kiosk runs unauthenticated on the club door device.
	r.POST("/acceso/validar", accesoapi.ValidarAcceso)

	public := r.Group("/")
	public.Use(middleware.SanitizeInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeInputMiddleware())

	auth.GET("/me", usuariosapi.GetCurrentUser)
	auth.PUT("/me", usuariosapi.UpdateMe)
	auth.GET("/me/credencial", usuariosapi.Credencial)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/disciplinas", disciplinasapi.ListDisciplinas)
	auth.GET("/disciplinas/:id/categorias", disciplinasapi.ListCategorias)
	auth.GET("/niveles-socio", sociosapi.ListNiveles)

	auth.GET("/eventos", eventosapi.ListEventos)
	auth.GET("/eventos/mis-viajes", eventosapi.MisViajes)
	auth.GET("/eventos/:id", eventosapi.GetEvento)
	auth.GET("/calendario", eventosapi.Calendario)

	auth.GET("/cuotas", cuotasapi.ListCuotas)

	// Non-members only: the join flow.
	nonMember := auth.Group("/")
	nonMember.Use(middleware.RequireNonMembership())
	nonMember.POST("/socios/hacerse-socio", sociosapi.HacerseSocio)

	// Members only
	member := auth.Group("/")
	member.Use(middleware.RequireMembership())
	member.PUT("/me/perfil-deportivo", usuariosapi.UpdatePerfilDeportivo)
	member.POST("/cuotas/checkout", cuotasapi.CreateCheckoutSession)

	// Coaching staff: profesores manage their own categories, management
	// roles everything. Fine-grained checks happen in the handlers.
	staff := auth.Group("/")
	staff.Use(middleware.RequireAnyRole(access.RoleProfesor, access.RoleAdmin, access.RoleDirigente))
	staff.GET("/categorias/:id/horarios", entrenamientosapi.ListHorarios)
	staff.POST("/categorias/:id/horarios", entrenamientosapi.CreateHorario)
	staff.DELETE("/horarios/:id", entrenamientosapi.DeactivateHorario)
	staff.POST("/categorias/:id/generar-sesiones", entrenamientosapi.GenerarSesiones)
	staff.GET("/categorias/:id/sesiones", entrenamientosapi.ListSesiones)
	staff.PUT("/sesiones/:id/estado", entrenamientosapi.UpdateSesionEstado)
	staff.POST("/sesiones/:id/asistencias", entrenamientosapi.RegistrarAsistencia)
	staff.GET("/sesiones/:id/hoja-asistencia", entrenamientosapi.HojaAsistencia)
	staff.GET("/categorias/:id/entrenadores", disciplinasapi.ListEntrenadores)

	// Management: membership lifecycle, catalog, billing, history.
	management := auth.Group("/")
	management.Use(middleware.RequireAnyRole(access.ManagementRoles...))
	management.GET("/usuarios", usuariosapi.ListUsuarios)
	management.GET("/usuarios/:id", usuariosapi.GetUsuario)
	management.GET("/socios", sociosapi.ListSocios)
	management.POST("/socios/:id/activar", sociosapi.ActivarSocio)
	management.POST("/socios/:id/inactivar", sociosapi.InactivarSocio)
	management.POST("/socios/:id/pagos", sociosapi.RegistrarPago)
	management.PUT("/socios/:id/nivel", sociosapi.AsignarNivel)
	management.POST("/cuotas", cuotasapi.CreateCuota)
	management.PUT("/cuotas/:id", cuotasapi.UpdateCuota)
	management.DELETE("/cuotas/:id", cuotasapi.DeleteCuota)
	management.POST("/cuotas/generar", cuotasapi.GenerarCuotas)
	management.POST("/eventos", eventosapi.CreateEvento)
	management.PUT("/eventos/:id", eventosapi.UpdateEvento)
	management.DELETE("/eventos/:id", eventosapi.DeleteEvento)
	management.GET("/acceso/historial", accesoapi.Historial)

	// Admin only
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.SanitizeInputMiddleware(), middleware.RequireAnyRole(access.RoleAdmin))
	admin.GET("/stats", adminapi.GetAdminStats)
	admin.GET("/roles", usuariosapi.ListRoles)
	admin.PUT("/usuarios/:id/roles", usuariosapi.AssignRoles)
	admin.DELETE("/usuarios/:id", usuariosapi.DeactivateUsuario)
	admin.POST("/disciplinas", disciplinasapi.CreateDisciplina)
	admin.PUT("/disciplinas/:id", disciplinasapi.UpdateDisciplina)
	admin.POST("/disciplinas/:id/categorias", disciplinasapi.CreateCategoria)
	admin.PUT("/categorias/:id/entrenadores", disciplinasapi.AsignarEntrenadores)
	admin.POST("/niveles-socio", sociosapi.CreateNivel)
}
