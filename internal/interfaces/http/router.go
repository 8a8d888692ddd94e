package http

import (
	"github.com/gofiber/fiber/v2"
	appaudit "github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/application/auth"
	"github.com/tu-usuario/almacen-api/internal/application/bulkimport"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC      *usecase.CompanyUseCase
	ProductUC      *usecase.ProductUseCase
	AuthUC         *auth.AuthUseCase
	BulkImportUC   *bulkimport.UseCase
	BulkStatusUC   *bulkimport.StatusUseCase
	AuditQueryUC   *appaudit.QueryUseCase
	JWTSecret      string
	UploadMaxBytes int64
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), productHandler.Delete)

	// Bulk uploads (protegido; subir requiere admin o manager)
	uploads := protected.Group("/bulk-uploads")
	bulkHandler := NewBulkUploadHandler(deps.BulkImportUC, deps.BulkStatusUC, deps.UploadMaxBytes)
	uploads.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), bulkHandler.Upload)
	uploads.Get("/", bulkHandler.List)
	uploads.Get("/:id", bulkHandler.GetByID)

	// Audit log (protegido, solo lectura)
	auditGroup := protected.Group("/audit")
	auditHandler := NewAuditHandler(deps.AuditQueryUC)
	auditGroup.Get("/", auditHandler.List)
}
