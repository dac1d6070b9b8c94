package container

import (
	"database/sql"
	"fmt"

	auditLogRepo "github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/auditlog"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/catalog"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/holders"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/inventory/assets"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/inventory/assignments"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/inventory/checkouts"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/inventory/stocks"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/locations"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/orders"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/reports"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/repository"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/suppliers"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/users"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/auditlog"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/security"
)

type Container struct {
	Repository        *repository.Repository
	AuditLog          *auditlog.Auditlog
	LoginHandler      *security.LoginHandler
	OrderHandler      *orders.OrderHandler
	AssetHandler      *assets.AssetHandler
	StockHandler      *stocks.StockHandler
	AssignmentHandler *assignments.AssignmentHandler
	CheckoutHandler   *checkouts.CheckoutHandler
	CatalogHandler    *catalog.CatalogHandler
	LocationHandler   *locations.LocationHandler
	SupplierHandler   *suppliers.SupplierHandler
	HolderHandler     *holders.HolderHandler
	UserHandler       *users.UsersHandler
	ReportHandler     *reports.ReportHandler
	AuditLogHandler   *auditLogRepo.AuditLogHandler
}

func NewAppContainer(db *sql.DB, snowflakeNodeID int64) (*Container, error) {
	repo := repository.NewRepository(db)

	logRepo := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(logRepo)

	tagGenerator, err := assets.NewTagGenerator(snowflakeNodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tag generator: %w", err)
	}

	assetRepo := assets.NewRepository(repo)
	stockRepo := stocks.NewRepository(repo)
	assignmentRepo := assignments.NewRepository(repo)
	checkoutRepo := checkouts.NewRepository(repo)
	orderRepo := orders.NewRepository(repo)
	catalogRepo := catalog.NewRepository(repo)
	locationRepo := locations.NewRepository(repo)
	supplierRepo := suppliers.NewRepository(repo)
	holderRepo := holders.NewRepository(repo)
	userRepo := users.NewRepository(repo)

	fulfillment := orders.NewFulfillment(assetRepo, stockRepo, locationRepo, tagGenerator)
	orderService := orders.NewService(repo, orderRepo, fulfillment)
	assignmentService := assignments.NewService(repo, assignmentRepo, assetRepo)
	checkoutService := checkouts.NewService(repo, checkoutRepo, stockRepo)
	reportService := reports.NewService(assetRepo, stockRepo)

	return &Container{
		Repository:        repo,
		AuditLog:          auditLog,
		LoginHandler:      security.NewLoginHandler(repo),
		OrderHandler:      orders.NewHandler(orderService, auditLog),
		AssetHandler:      assets.NewAssetHandler(repo, assetRepo, auditLog),
		StockHandler:      stocks.NewStockHandler(repo, stockRepo, auditLog),
		AssignmentHandler: assignments.NewHandler(assignmentService, auditLog),
		CheckoutHandler:   checkouts.NewHandler(checkoutService, auditLog),
		CatalogHandler:    catalog.NewHandler(catalogRepo),
		LocationHandler:   locations.NewHandler(locationRepo),
		SupplierHandler:   suppliers.NewHandler(supplierRepo),
		HolderHandler:     holders.NewHandler(holderRepo),
		UserHandler:       users.NewHandler(userRepo),
		ReportHandler:     reports.NewHandler(reportService),
		AuditLogHandler:   auditLogRepo.NewHandler(logRepo),
	}, nil
}
