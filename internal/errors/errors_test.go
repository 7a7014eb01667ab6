package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"wellbeing/domain/core"
)

func TestWrapDerivesCodeFromSentinel(t *testing.T) {
	err := Wrap(fmt.Errorf("decode: %w", core.ErrEmptyDataset), "failed to analyse upload")

	assert.Equal(t, CodeEmptyDataset, GetCode(err))
	assert.True(t, stderrors.Is(err, core.ErrEmptyDataset))
	assert.Contains(t, err.Error(), "failed to analyse upload")
}

func TestWrapKeepsAppErrorCode(t *testing.T) {
	inner := NotFound("upload")
	err := Wrapf(inner, "lookup %s", "abc")

	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"empty dataset", core.ErrEmptyDataset, http.StatusBadRequest},
		{"unsupported", core.NewUnsupportedFormatError("a.pdf"), http.StatusBadRequest},
		{"too large", core.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"upload not found", core.ErrUploadNotFound, http.StatusNotFound},
		{"insights off", core.ErrInsightsUnavailable, http.StatusServiceUnavailable},
		{"upstream", ExternalServiceError("gemini", stderrors.New("boom")), http.StatusBadGateway},
		{"plain", stderrors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
