package ports

import (
	"context"

	"wellbeing/domain/survey"
)

// GridDecoder turns an uploaded file into a raw cell grid
type GridDecoder interface {
	Decode(ctx context.Context, filename string, data []byte) (survey.RawGrid, error)
}
