package out

import (
	"time"

	"studyhub/internal/modules/notification/domain"
	"studyhub/internal/platform/sheet"
)

const exportSheet = "Notifications"

type XLSXExporter struct{}

func (XLSXExporter) Export(path string, list []domain.Notification) error {
	rows := make([][]any, 0, len(list))
	for _, n := range list {
		rows = append(rows, []any{n.ID, string(n.Type), n.Message, n.CreatedAt.UTC().Format(time.RFC3339), n.Read})
	}
	return sheet.Write(path, sheet.Table{
		Name:   exportSheet,
		Header: []string{"ID", "Type", "Message", "Created", "Read"},
		Rows:   rows,
	})
}
