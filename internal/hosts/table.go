// ===== internal/hosts/table.go =====
package hosts

import "strings"

// Render joins rows into hosts file content: tab between columns, newline after every row
func Render(rows []Row) string {
	var b strings.Builder

	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}

	if len(rows) == 0 {
		return "\n"
	}
	return b.String()
}

// CountNamed returns how many rows map an address to at least one name
func CountNamed(rows []Row) int {
	n := 0
	for _, row := range rows {
		if len(row) > 1 {
			n++
		}
	}
	return n
}
