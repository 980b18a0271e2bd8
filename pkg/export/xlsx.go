// Package export writes the local well list to an .xlsx workbook, for the
// "share my wells" flow that used to email a spreadsheet from the app.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"wellconnect/entities"
)

const sheet = "Wells"

var header = []any{
	"ID", "ESP ID", "Name", "Owner", "Location", "Water type", "Status",
	"Capacity", "Water level", "Consumption", "Fill ratio", "IP address", "Last refresh",
}

func Workbook(wells []entities.Well) (*excelize.File, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, w := range wells {
		refresh := ""
		if !w.LastRefreshTime.IsZero() {
			refresh = w.LastRefreshTime.Format("2006-01-02 15:04")
		}
		row := []any{
			w.ID, w.EspID, w.Name, w.Owner, w.Location, w.WaterType, w.Status,
			w.Capacity, w.WaterLevel, w.Consumption, w.FillRatio(), w.IPAddress, refresh,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WriteTo streams the workbook, e.g. into an HTTP response.
func WriteTo(wells []entities.Well, w io.Writer) error {
	f, err := Workbook(wells)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}
