package reports

import (
	"fmt"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/inventory/assets"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/inventory/stocks"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/xuri/excelize/v2"
)

// ReportService renders the current inventory into an xlsx workbook with one
// sheet for assets and one for consumable stock.
type ReportService struct {
	assetRepo *assets.AssetsRepository
	stockRepo *stocks.StockRepository
}

func NewService(assetRepo *assets.AssetsRepository, stockRepo *stocks.StockRepository) *ReportService {
	return &ReportService{
		assetRepo: assetRepo,
		stockRepo: stockRepo,
	}
}

func (s *ReportService) BuildInventoryWorkbook() (*excelize.File, error) {
	assetList, err := s.assetRepo.GetAssetList()
	if err != nil {
		return nil, err
	}
	stockList, err := s.stockRepo.GetStocks()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	if err := s.writeAssetSheet(f, *assetList); err != nil {
		return nil, err
	}
	if err := s.writeStockSheet(f, *stockList); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *ReportService) writeAssetSheet(f *excelize.File, assetList []models.Asset) error {
	sheet := "Assets"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []string{"Tag", "Serial", "Model", "Manufacturer", "Status", "Location", "Supplier", "Purchase Date", "Cost"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, asset := range assetList {
		row := i + 2
		serial := ""
		if asset.Serial != nil {
			serial = *asset.Serial
		}
		supplier := ""
		if asset.Supplier != nil {
			supplier = asset.Supplier.Name
		}
		purchaseDate := ""
		if asset.PurchaseDate != nil {
			purchaseDate = asset.PurchaseDate.String()
		}
		cost := ""
		if asset.Cost != nil {
			cost = asset.Cost.String()
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), asset.Tag)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), serial)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), asset.Model.Name)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), asset.Model.Manufacturer)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), string(asset.Status))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), asset.Location.Name)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), supplier)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), purchaseDate)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), cost)
	}

	return nil
}

func (s *ReportService) writeStockSheet(f *excelize.File, stockList []models.ConsumableStock) error {
	sheet := "Stock"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headers := []string{"Model", "Unit", "Location", "Quantity", "Min Quantity", "Low Stock"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, stock := range stockList {
		row := i + 2
		lowStock := ""
		if stock.IsLow() {
			lowStock = string(stock.AlertSeverity())
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), stock.Model.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), stock.Model.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), stock.Location.Name)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), stock.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), stock.MinQuantity)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), lowStock)
	}

	return nil
}
