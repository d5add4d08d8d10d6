// Package export renders closed parking sessions into an XLSX workbook.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jaeyoung-oh/parkrate/internal/entity"
)

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

const sheet = "Sessions"

// SessionsXLSX returns a workbook of the given sessions. Open sessions
// appear with empty exit and fee cells; amounts only exist once billed.
func (s *Service) SessionsXLSX(lot *entity.ParkingLot, sessions []*entity.ParkingSession) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Plate",
		"Compact",
		"Entered",
		"Exited",
		"Duration (min)",
		"Fee",
		"Discounted Fee",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, sess := range sessions {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, sess.Plate)
		write(2, sess.CompactCar)
		write(3, sess.EnteredAt.Format(time.RFC3339))
		if sess.ExitedAt != nil {
			write(4, sess.ExitedAt.Format(time.RFC3339))
			write(5, int(sess.ExitedAt.Sub(sess.EnteredAt).Minutes()))
		}
		if sess.OriginalFee != nil {
			write(6, *sess.OriginalFee)
		}
		if sess.DiscountedFee != nil {
			write(7, *sess.DiscountedFee)
		}
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "C", "D", 24)
	_ = f.SetColWidth(sheet, "E", "G", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"lot_id", lot.ID.String(),
		"rows", len(sessions),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
