package spreadsheet

import (
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/helpers"
)

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(helpers.DateLayout)
}
