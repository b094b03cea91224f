package formatter

import "github.com/alexanderramin/adapta/internal/domain"

// FormatEmployeeList renders employees as a table.
func FormatEmployeeList(employees []*domain.Employee) string {
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{TruncID(e.ID), e.Name, orDash(e.Email), orDash(e.Position)})
	}
	return RenderTable([]string{"ID", "NAME", "EMAIL", "POSITION"}, rows)
}
