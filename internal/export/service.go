// Package export renders the stored cards as a spreadsheet download.
package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/cardexhq/cardex/constants"
	"github.com/cardexhq/cardex/internal/entity"
	"github.com/cardexhq/cardex/internal/repository"
)

const sheetName = "Cards"

type Service struct {
	repo   repository.CardRepository
	logger *slog.Logger
}

func NewService(repo repository.CardRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Workbook writes every stored card into an XLSX workbook, one row per card,
// columns in schema order.
func (s *Service) Workbook(ctx context.Context) (*bytes.Buffer, error) {
	holders, err := s.repo.ListHolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	header := make([]any, len(constants.CardColumns))
	for i, col := range constants.CardColumns {
		header[i] = constants.CardColumnLabels[col]
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, holder := range holders {
		card, err := s.repo.Get(ctx, holder)
		if err != nil {
			// a card deleted between list and read is not an export failure
			s.logger.Warn("skipping card during export", "card_holder", holder, "error", err)
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := cardRow(card)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	if err := f.SetColWidth(sheetName, "A", "J", 22); err != nil {
		return nil, fmt.Errorf("set column widths: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	s.logger.Info("cards exported", "rows", row-2)
	return buf, nil
}

func cardRow(c *entity.Card) []any {
	return []any{
		c.CompanyName, c.CardHolder, c.Designation, c.MobileNumber,
		c.Email, c.Website, c.Area, c.City, c.State, c.PinCode,
	}
}
