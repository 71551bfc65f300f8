package dashboard

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

const (
	bookingsSheet = "Réservations"
	summarySheet  = "Synthèse"
)

var bookingColumns = []string{
	"N°", "Service", "Client", "Type", "Début", "Fin", "Heure", "Durée",
	"Prix unitaire", "Sous-total", "Remise (%)", "Total", "Statut", "Paiement",
}

// BookingsReport writes an XLSX workbook of the bookings intersecting [from, to]:
// one row per booking plus a summary sheet
func (s *Service) BookingsReport(ctx context.Context, actor domain.Actor, from, to types.Date, w io.Writer) error {
	scope, err := scopeFor(actor)
	if err != nil {
		return err
	}
	if !from.Valid() || !to.Valid() || to.Before(from) {
		return fmt.Errorf("%w: from/to must be a valid date range", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.Find(ctx, domain.BookingsFilter{
		ProviderID:      scope.ProviderID,
		From:            &from,
		To:              &to,
		IncludeInactive: true,
	})
	if err != nil {
		s.logger.Error("BookingsReport: repository error: %v", err)
		return fmt.Errorf("%w: BookingsReport - repository error: %v", ErrInternal, err)
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := writeBookingsSheet(file, bookings); err != nil {
		return fmt.Errorf("%w: BookingsReport - bookings sheet: %v", ErrInternal, err)
	}
	if err := writeSummarySheet(file, bookings, from, to); err != nil {
		return fmt.Errorf("%w: BookingsReport - summary sheet: %v", ErrInternal, err)
	}
	if err := file.Write(w); err != nil {
		return fmt.Errorf("%w: BookingsReport - write: %v", ErrInternal, err)
	}

	s.logger.Info("BookingsReport: user=%d exported %d bookings from %s to %s", actor.UserID, len(bookings), from, to)
	return nil
}

func writeBookingsSheet(file *excelize.File, bookings []*domain.Booking) error {
	if err := file.SetSheetName("Sheet1", bookingsSheet); err != nil {
		return err
	}
	if err := writeRow(file, bookingsSheet, 1, toCells(bookingColumns)); err != nil {
		return err
	}
	if err := boldRow(file, bookingsSheet, 1, len(bookingColumns)); err != nil {
		return err
	}

	for i, b := range bookings {
		startTime := ""
		if b.IsHourly() {
			startTime = b.StartTime.String()
		}
		row := []interface{}{
			b.ID,
			b.ServiceName,
			b.UserID,
			string(b.Type),
			b.StartDate.String(),
			b.EndDate.String(),
			startTime,
			b.Price.Duration,
			b.Price.PricePerUnit,
			b.Price.Subtotal,
			b.Price.DiscountPercentage,
			b.Price.TotalPrice,
			string(b.Status),
			string(b.PaymentStatus),
		}
		if err := writeRow(file, bookingsSheet, i+2, row); err != nil {
			return err
		}
	}
	return file.SetColWidth(bookingsSheet, "A", "N", 16)
}

func writeSummarySheet(file *excelize.File, bookings []*domain.Booking, from, to types.Date) error {
	if _, err := file.NewSheet(summarySheet); err != nil {
		return err
	}

	byStatus := make(map[domain.BookingStatus]int)
	var revenue float64
	for _, b := range bookings {
		byStatus[b.Status]++
		if b.PaymentStatus.IsSettled() {
			revenue += b.Price.TotalPrice
		}
	}

	rows := [][]interface{}{
		{"Période", fmt.Sprintf("%s au %s", from, to)},
		{"Réservations", len(bookings)},
		{"Chiffre d'affaires encaissé (" + domain.DefaultCurrency + ")", revenue},
		{},
		{"Statut", "Nombre"},
	}
	for _, status := range domain.AllBookingStatuses {
		rows = append(rows, []interface{}{string(status), byStatus[status]})
	}

	for i, row := range rows {
		if err := writeRow(file, summarySheet, i+1, row); err != nil {
			return err
		}
	}
	if err := boldRow(file, summarySheet, 5, 2); err != nil {
		return err
	}
	return file.SetColWidth(summarySheet, "A", "B", 32)
}

func writeRow(file *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func boldRow(file *excelize.File, sheet string, row, columns int) error {
	style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	start, _ := excelize.CoordinatesToCellName(1, row)
	end, _ := excelize.CoordinatesToCellName(columns, row)
	return file.SetCellStyle(sheet, start, end, style)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
