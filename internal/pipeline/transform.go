package pipeline

import (
	"time"

	"github.com/couchcryptid/parks-data-service/internal/domain"
)

// ParkTransformer implements Transformer with the domain parse, normalize,
// and derive steps.
type ParkTransformer struct {
	delimiter string
}

// NewTransformer creates a ParkTransformer. An empty delimiter means a comma.
func NewTransformer(delimiter string) *ParkTransformer {
	if delimiter == "" {
		delimiter = domain.DefaultDelimiter
	}
	return &ParkTransformer{delimiter: delimiter}
}

func (t *ParkTransformer) Transform(payload []byte, asOf time.Time) ([]domain.Park, domain.NormalizeReport) {
	rows := domain.ParseRows(string(payload), t.delimiter)
	parks, report := domain.Normalize(rows)
	return domain.DeriveAll(parks, asOf), report
}
