package web

import (
	"github.com/umputun/crewbook/app/enums"
	"github.com/umputun/crewbook/app/worker"
)

// tableColumns is the number of columns in the workers table, delete action included
const tableColumns = 13

// tableView is the rendered state of the workers table
type tableView struct {
	Rows    []tableRow
	Count   int
	Columns int // colspan of the empty-state row
}

// tableRow is one worker in the table, cells are in column order
type tableRow struct {
	ID    string
	Kind  string
	Cells []string
}

// Empty reports whether the empty-state row should be shown instead of data rows
func (t tableView) Empty() bool { return len(t.Rows) == 0 }

// buildTable projects workers into table rows. Columns of a specialization the worker
// doesn't have are filled with the placeholder.
func buildTable(ws []worker.Worker, l labels) tableView {
	res := tableView{Rows: make([]tableRow, 0, len(ws)), Count: len(ws), Columns: tableColumns}
	for _, w := range ws {
		cells := []string{
			w.Kind.String(),
			w.FirstName,
			w.LastName,
			worker.FormatNumber(w.Age),
			yesNo(w.HasKids, l),
			w.HireDate,
		}

		if w.Kind == enums.KindPlumber && w.Plumber != nil {
			cells = append(cells, w.Plumber.Rank, w.Plumber.Specialty, yesNo(w.Plumber.NightShift, l))
		} else {
			cells = append(cells, l.Placeholder, l.Placeholder, l.Placeholder)
		}

		if w.Kind == enums.KindDriver && w.Driver != nil {
			cells = append(cells, w.Driver.LicenseCategory, worker.FormatNumber(w.Driver.ExperienceYears),
				w.Driver.VehicleType)
		} else {
			cells = append(cells, l.Placeholder, l.Placeholder, l.Placeholder)
		}

		res.Rows = append(res.Rows, tableRow{ID: w.ID, Kind: w.Kind.String(), Cells: cells})
	}
	return res
}

func yesNo(v bool, l labels) string {
	if v {
		return l.Yes
	}
	return l.No
}
