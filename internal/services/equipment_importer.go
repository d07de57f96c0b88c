package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"maintenance-system/internal/dto"
	apperrors "maintenance-system/pkg/errors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ImportResult summarizes one xlsx import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

type EquipmentImportServiceInterface interface {
	ImportFromXLSX(ctx context.Context, reader io.Reader) (*ImportResult, error)
}

// EquipmentImportService loads equipment rows from an uploaded spreadsheet.
// The header row is located by content, not position, because real sheets
// arrive with title rows and merged cells above the data.
type EquipmentImportService struct {
	equipmentService EquipmentServiceInterface
	logger           *zap.Logger
}

func NewEquipmentImportService(equipmentService EquipmentServiceInterface, logger *zap.Logger) *EquipmentImportService {
	return &EquipmentImportService{
		equipmentService: equipmentService,
		logger:           logger,
	}
}

func (s *EquipmentImportService) ImportFromXLSX(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("cannot open spreadsheet: %v", err)
	}
	defer f.Close()

	result := &ImportResult{}

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		nameIdx, codeIdx, locIdx, depIdx, headerRow := -1, -1, -1, -1, -1
		for rIdx, row := range rows {
			for cIdx, colName := range row {
				switch strings.ToLower(strings.TrimSpace(colName)) {
				case "name", "equipment":
					nameIdx = cIdx
				case "code", "serial", "serial number":
					codeIdx = cIdx
				case "location":
					locIdx = cIdx
				case "department":
					depIdx = cIdx
				}
			}
			if nameIdx >= 0 && codeIdx >= 0 {
				headerRow = rIdx
				break
			}
			nameIdx, codeIdx, locIdx, depIdx = -1, -1, -1, -1
		}
		if headerRow < 0 {
			continue
		}

		for _, row := range rows[headerRow+1:] {
			cell := func(idx int) string {
				if idx < 0 || idx >= len(row) {
					return ""
				}
				return strings.TrimSpace(row[idx])
			}

			name, code := cell(nameIdx), cell(codeIdx)
			if name == "" || code == "" {
				continue
			}

			payload := dto.CreateEquipmentDTO{
				Name:       name,
				Code:       code,
				Location:   orDefault(cell(locIdx), "Unknown"),
				Department: orDefault(cell(depIdx), "Unknown"),
			}

			if _, err := s.equipmentService.CreateEquipment(ctx, payload); err != nil {
				if errors.Is(err, apperrors.ErrAlreadyExists) {
					result.Skipped++
					continue
				}
				result.Errors = append(result.Errors, err.Error())
				continue
			}
			result.Imported++
		}
	}

	s.logger.Info("equipment import finished",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
