package reports

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// GetEventsReport returns scheduled events with participant counts.
// With ?format=csv|excel|pdf the response is a file download, otherwise JSON.
func (h *Handler) GetEventsReport(c *gin.Context) {
	req := EventsReportRequest{
		Location: c.Query("location"),
		Format:   c.Query("format"),
	}

	var err error
	if req.StartDate, err = parseDateParam(c.Query("start_date")); err != nil {
		badRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	if req.EndDate, err = parseDateParam(c.Query("end_date")); err != nil {
		badRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	data, err := h.svc.EventsReport(c.Request.Context(), req)
	if err != nil {
		internalError(c, "Failed to build events report")
		return
	}

	if req.Format == "" {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Events report generated successfully!",
			"data":    data.Events,
		})
		return
	}

	h.sendFile(c, ReportTypeEvents, req.Format, data)
}

// GetUtilizationReport returns booked minutes per location
func (h *Handler) GetUtilizationReport(c *gin.Context) {
	start, err := parseDateParam(c.Query("start_date"))
	if err != nil {
		badRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := parseDateParam(c.Query("end_date"))
	if err != nil {
		badRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	data, err := h.svc.UtilizationReport(c.Request.Context(), start, end)
	if err != nil {
		internalError(c, "Failed to build utilization report")
		return
	}

	format := c.Query("format")
	if format == "" {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Utilization report generated successfully!",
			"data":    data.Utilization,
		})
		return
	}

	h.sendFile(c, ReportTypeUtilization, format, data)
}

func (h *Handler) sendFile(c *gin.Context, reportType, format string, data ReportData) {
	payload, filename, contentType, err := h.svc.Export(reportType, format, data)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}

func parseDateParam(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
}

func internalError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": msg})
}
