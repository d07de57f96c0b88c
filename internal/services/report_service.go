package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"maintenance-system/internal/repositories"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	ExportRequestsXLSX(ctx context.Context) (*bytes.Buffer, string, error)
}

type ReportService struct {
	maintenanceRepository repositories.MaintenanceRepositoryInterface
	logger                *zap.Logger
}

func NewReportService(maintenanceRepository repositories.MaintenanceRepositoryInterface, logger *zap.Logger) *ReportService {
	return &ReportService{maintenanceRepository: maintenanceRepository, logger: logger}
}

var reportHeaders = []string{"ID", "Name", "Description", "Priority", "State", "Equipment", "Technician", "Scheduled Date", "Created At"}

// ExportRequestsXLSX renders the full request collection into a workbook and
// returns the buffer plus a suggested file name.
func (s *ReportService) ExportRequestsXLSX(ctx context.Context) (*bytes.Buffer, string, error) {
	requests, err := s.maintenanceRepository.GetRequests(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Requests"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, "", err
	}

	for i, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", err
		}
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, r := range requests {
		scheduled := ""
		if r.ScheduledDate != nil {
			scheduled = r.ScheduledDate.Format("2006-01-02")
		}
		values := []interface{}{
			r.ID.String(),
			r.Name,
			r.Description,
			r.Priority.Label(),
			r.State.String(),
			r.DisplayEquipment(),
			r.TechnicianName,
			scheduled,
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "B", "C", 30)
	f.SetColWidth(sheet, "D", "I", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("failed to render report workbook", zap.Error(err))
		return nil, "", err
	}

	name := fmt.Sprintf("maintenance-requests-%s.xlsx", time.Now().Format("2006-01-02"))
	s.logger.Info("report generated", zap.Int("rows", len(requests)), zap.String("file", name))
	return buf, name, nil
}
