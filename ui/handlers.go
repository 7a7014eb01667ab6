package ui

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"wellbeing/adapters/excel"
	"wellbeing/app"
	"wellbeing/domain/core"
	"wellbeing/domain/survey"
	"wellbeing/internal/errors"
	"wellbeing/internal/profiling"
)

// multipartOverhead leaves room for form boundaries around the file itself
const multipartOverhead = 1 << 20

// UploadSummary is the upload view returned to clients
type UploadSummary struct {
	UploadID      string                  `json:"upload_id"`
	FileName      string                  `json:"file_name"`
	Schools       []survey.SchoolOverview `json:"schools"`
	SchoolCount   int                     `json:"school_count"`
	TotalStudents int                     `json:"total_students"`
	Message       string                  `json:"message,omitempty"`
}

// SchoolDetail is a school's metrics with its student records and score profile
type SchoolDetail struct {
	Metrics          survey.SchoolMetrics    `json:"metrics"`
	DominantCategory survey.StressCategory   `json:"dominant_category"`
	Profile          profiling.SchoolProfile `json:"profile"`
}

func summarize(a *app.Analysis) UploadSummary {
	schools := make([]survey.SchoolOverview, len(a.Schools))
	for i, m := range a.Schools {
		schools[i] = m.WithoutStudents().Overview()
	}
	summary := UploadSummary{
		UploadID:      a.ID.String(),
		FileName:      a.FileName,
		Schools:       schools,
		SchoolCount:   len(schools),
		TotalStudents: a.TotalStudents,
	}
	if len(schools) == 0 {
		summary.Message = "No data found in file"
	}
	return summary
}

func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("[Server] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"uploads":     s.store.Len(),
		"ai_insights": s.reports.InsightsEnabled(),
	})
}

// handleUpload scores an uploaded survey spreadsheet and keeps it for follow-up requests
func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes+multipartOverhead)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			s.respondError(c, s.tooLarge(maxErr.Limit))
			return
		}
		s.logger.Debug("[Server] No file uploaded: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Size > s.maxUploadBytes {
		s.respondError(c, s.tooLarge(header.Size))
		return
	}

	filename := header.Filename
	if !excel.IsSupported(filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only Excel (.xlsx, .xls) and CSV (.csv) files are allowed"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxUploadBytes+1))
	if err != nil {
		s.respondError(c, errors.Wrap(err, "failed to read upload"))
		return
	}
	if int64(len(data)) > s.maxUploadBytes {
		s.respondError(c, s.tooLarge(int64(len(data))))
		return
	}

	analysis, err := s.reports.Analyze(c.Request.Context(), filename, data)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.store.PutWithID(analysis.ID, analysis)

	c.JSON(http.StatusCreated, summarize(analysis))
}

func (s *Server) tooLarge(size int64) error {
	return fmt.Errorf("%w: %.1f MB exceeds the %.0f MB limit", core.ErrFileTooLarge,
		float64(size)/(1024*1024), float64(s.maxUploadBytes)/(1024*1024))
}

// lookup resolves the :id parameter to a stored analysis, answering the error itself
func (s *Server) lookup(c *gin.Context) (*app.Analysis, bool) {
	id, err := core.ParseUploadID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	analysis, err := s.store.Get(id)
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	return analysis, true
}

func (s *Server) handleGetUpload(c *gin.Context) {
	analysis, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, summarize(analysis))
}

func (s *Server) handleDeleteUpload(c *gin.Context) {
	id, err := core.ParseUploadID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.Delete(id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleGetSchool(c *gin.Context) {
	analysis, ok := s.lookup(c)
	if !ok {
		return
	}

	school := c.Param("school")
	metrics, err := analysis.School(school)
	if err != nil {
		s.respondError(c, err)
		return
	}
	profile, err := analysis.Profile(school)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SchoolDetail{
		Metrics:          metrics,
		DominantCategory: metrics.DominantCategory(),
		Profile:          profile,
	})
}

func (s *Server) handleSchoolInsights(c *gin.Context) {
	analysis, ok := s.lookup(c)
	if !ok {
		return
	}

	metrics, err := analysis.School(c.Param("school"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	report, err := s.reports.GenerateInsights(c.Request.Context(), metrics)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleAllInsights(c *gin.Context) {
	analysis, ok := s.lookup(c)
	if !ok {
		return
	}

	reports, err := s.reports.GenerateAll(c.Request.Context(), analysis.Schools)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upload_id": analysis.ID.String(), "reports": reports})
}
