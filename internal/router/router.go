package router

import (
	"pointage/backend/foundation/web"
	"pointage/backend/internal/auth"
	"pointage/backend/internal/middleware"
	"pointage/backend/internal/pkg/repository/postgresql"

	"pointage/backend/internal/repository/postgres/cohort"
	"pointage/backend/internal/repository/postgres/department"
	"pointage/backend/internal/repository/postgres/journal"
	"pointage/backend/internal/repository/postgres/leave"
	"pointage/backend/internal/repository/postgres/punch"
	"pointage/backend/internal/repository/postgres/user"

	auth_controller "pointage/backend/internal/controller/http/v1/auth"
	cohort_controller "pointage/backend/internal/controller/http/v1/cohort"
	department_controller "pointage/backend/internal/controller/http/v1/department"
	journal_controller "pointage/backend/internal/controller/http/v1/journal"
	leave_controller "pointage/backend/internal/controller/http/v1/leave"
	punch_controller "pointage/backend/internal/controller/http/v1/punch"
	user_controller "pointage/backend/internal/controller/http/v1/user"

	"github.com/bsm/redislock"
)

type Router struct {
	*web.App
	postgresDB     *postgresql.Database
	locker         *redislock.Client
	port           string
	auth           *auth.Auth
	allowedOrigins []string
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	locker *redislock.Client,
	port string,
	auth *auth.Auth,
	allowedOrigins []string,
) *Router {
	return &Router{
		app,
		postgresDB,
		locker,
		port,
		auth,
		allowedOrigins,
	}
}

func (r Router) Init() error {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Cors(r.allowedOrigins))

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	punchPostgres := punch.NewRepository(r.postgresDB, r.locker)
	leavePostgres := leave.NewRepository(r.postgresDB)
	departmentPostgres := department.NewRepository(r.postgresDB)
	cohortPostgres := cohort.NewRepository(r.postgresDB)
	journalPostgres := journal.NewRepository(r.postgresDB)

	// controller
	authController := auth_controller.NewController(userPostgres)
	userController := user_controller.NewController(userPostgres)
	punchController := punch_controller.NewController(punchPostgres, userPostgres)
	leaveController := leave_controller.NewController(leavePostgres)
	departmentController := department_controller.NewController(departmentPostgres)
	cohortController := cohort_controller.NewController(cohortPostgres)
	journalController := journal_controller.NewController(journalPostgres)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	// #punch
	// Scan and verify-card are what the badge readers call; they carry no
	// user token, access control happens on the badge itself.
	r.Post("/api/v1/punch/scan", punchController.Scan)
	r.Post("/api/v1/punch/verify-card", userController.VerifyCard)

	r.Put("/api/v1/punch/:id/validate", punchController.Validate, middleware.Authenticate(r.auth, auth.RoleSupervisor, auth.RoleAdmin))
	r.Post("/api/v1/punch/generate-absences", punchController.GenerateAbsences, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/punch/list", punchController.GetPunchList, middleware.Authenticate(r.auth, auth.RoleSupervisor, auth.RoleAdmin))
	r.Get("/api/v1/punch/history", punchController.GetHistory, middleware.Authenticate(r.auth, auth.RoleSupervisor, auth.RoleAdmin))
	r.Put("/api/v1/punch/:id", punchController.UpdatePunch, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/punch/:id", punchController.DeletePunch, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #presence
	r.Get("/api/v1/presence/filter", punchController.FilterPresence, middleware.Authenticate(r.auth, auth.RoleSupervisor, auth.RoleAdmin))
	r.Get("/api/v1/presence/period", punchController.GetPresenceByPeriod, middleware.Authenticate(r.auth, auth.RoleSupervisor, auth.RoleAdmin))
	r.Get("/api/v1/presence/report", punchController.GetPresenceReport, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #leave
	r.Get("/api/v1/leave/list", leaveController.GetLeaveList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/leave/current", leaveController.GetCurrentLeaves, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/leave/create", leaveController.CreateLeave, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Put("/api/v1/leave/:id", leaveController.UpdateLeave, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/leave/:id", leaveController.DeleteLeave, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #user
	r.Get("/api/v1/user/list", userController.GetUserList, middleware.Authenticate(r.auth, auth.RoleSupervisor, auth.RoleAdmin))
	r.Get("/api/v1/user/export", userController.ExportUsers, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/user/:id", userController.GetUserDetailById, middleware.Authenticate(r.auth, auth.RoleSupervisor, auth.RoleAdmin))
	r.Get("/api/v1/user/:id/badge", userController.GetBadgeQr, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/user/create", userController.CreateUser, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/user/import", userController.ImportUsers, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/user/:id/assign-card", userController.AssignCard, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/user/:id/status", userController.SetUserStatus, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Put("/api/v1/user/:id", userController.UpdateUserAll, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/user/:id", userController.UpdateUserColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/user/:id", userController.DeleteUser, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #department
	r.Get("/api/v1/department/list", departmentController.GetDepartmentList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/department/:id", departmentController.GetDepartmentDetailById, middleware.Authenticate(r.auth))
	r.Post("/api/v1/department/create", departmentController.CreateDepartment, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Put("/api/v1/department/:id", departmentController.UpdateDepartmentAll, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/department/:id", departmentController.UpdateDepartmentColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/department/:id", departmentController.DeleteDepartment, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #cohort
	r.Get("/api/v1/cohort/list", cohortController.GetCohortList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/cohort/:id", cohortController.GetCohortDetailById, middleware.Authenticate(r.auth))
	r.Post("/api/v1/cohort/create", cohortController.CreateCohort, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Put("/api/v1/cohort/:id", cohortController.UpdateCohortAll, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/cohort/:id", cohortController.UpdateCohortColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/cohort/:id", cohortController.DeleteCohort, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #journal
	r.Get("/api/v1/journal/list", journalController.GetJournalList, middleware.Authenticate(r.auth, auth.RoleAdmin))

	return r.Run(r.port)
}
