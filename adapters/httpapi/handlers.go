package httpapi

import (
	"io"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	ierrors "dataprofiler/internal/errors"
	"dataprofiler/internal/orchestrator"
)

const serviceVersion = "1.0.0"

func (s *Server) handleHealth(ctx *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	ctx.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"timestamp":       time.Now().UTC(),
		"uptime_seconds":  time.Since(startTime).Seconds(),
		"version":         serviceVersion,
		"environment":     s.cfg.Server.Env,
		"memory": gin.H{
			"allocBytes":      mem.Alloc,
			"totalAllocBytes": mem.TotalAlloc,
			"sysBytes":        mem.Sys,
			"numGC":           mem.NumGC,
		},
		"requestId": requestID(ctx),
	})
}

func (s *Server) handleProfileUsage(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"description": "Profiles a CSV payload: per-column statistics, a Pearson correlation matrix, and rule-derived insights.",
		"method":      "POST",
		"path":        "/api/profile",
		"body": gin.H{
			"csv": "string, required, 10 bytes to 50 MiB",
			"options": gin.H{
				"delimiter":      "string, default \",\"",
				"skipEmptyLines": "bool, default true",
				"enableSampling": "bool, default true",
				"sampleSize":     "number, default 5000",
				"fullAnalysis":   "bool, default false",
				"useCache":       "bool, default true",
			},
		},
		"requestId": requestID(ctx),
	})
}

type profileRequest struct {
	CSV     string                `json:"csv"`
	Options *profileOptionsPayload `json:"options"`
}

type profileOptionsPayload struct {
	Delimiter      *string `json:"delimiter"`
	SkipEmptyLines *bool   `json:"skipEmptyLines"`
	EnableSampling *bool   `json:"enableSampling"`
	SampleSize     *int    `json:"sampleSize"`
	FullAnalysis   *bool   `json:"fullAnalysis"`
	UseCache       *bool   `json:"useCache"`
}

func resolveOptions(p *profileOptionsPayload) orchestrator.ProfileOptions {
	opts := orchestrator.DefaultProfileOptions()
	if p == nil {
		return opts
	}
	if p.Delimiter != nil {
		opts.Delimiter = *p.Delimiter
	}
	if p.SkipEmptyLines != nil {
		opts.SkipEmptyLines = *p.SkipEmptyLines
	}
	if p.EnableSampling != nil {
		opts.EnableSampling = *p.EnableSampling
	}
	if p.SampleSize != nil {
		opts.SampleSize = *p.SampleSize
	}
	if p.FullAnalysis != nil {
		opts.FullAnalysis = *p.FullAnalysis
	}
	if p.UseCache != nil {
		opts.UseCache = *p.UseCache
	}
	return opts
}

func (s *Server) handleProfile(ctx *gin.Context) {
	var req profileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, ierrors.ValidationError("request body must be valid JSON matching {csv, options?}"))
		return
	}

	result, err := s.orch.Profile(ctx.Request.Context(), req.CSV, resolveOptions(req.Options))
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"requestId": requestID(ctx),
		"fromCache": result.FromCache,
		"data": gin.H{
			"summary":      result.Report.Summary,
			"columns":      result.Report.ColumnStats,
			"correlations": result.Report.Correlations,
			"insights":     result.Report.Insights,
			"metadata":     result.Report.Metadata,
		},
	})
}

func (s *Server) handleProfileXLSX(ctx *gin.Context) {
	data, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		writeError(ctx, ierrors.ValidationError("could not read request body"))
		return
	}

	opts := orchestrator.DefaultProfileOptions()
	result, err := s.orch.ProfileXLSX(ctx.Request.Context(), data, opts)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"requestId": requestID(ctx),
		"fromCache": result.FromCache,
		"data": gin.H{
			"summary":      result.Report.Summary,
			"columns":      result.Report.ColumnStats,
			"correlations": result.Report.Correlations,
			"insights":     result.Report.Insights,
			"metadata":     result.Report.Metadata,
		},
	})
}

type compareRequest struct {
	Dataset1 []map[string]interface{} `json:"dataset1"`
	Dataset2 []map[string]interface{} `json:"dataset2"`
	Options  *profileOptionsPayload    `json:"options"`
}

func (s *Server) handleCompare(ctx *gin.Context) {
	var req compareRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, ierrors.ValidationError("request body must be valid JSON matching {dataset1, dataset2, options?}"))
		return
	}

	report, p1, p2, err := s.orch.Compare(ctx.Request.Context(), req.Dataset1, req.Dataset2, resolveOptions(req.Options))
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"requestId": requestID(ctx),
		"data": gin.H{
			"comparison": report,
			"profile1":   p1,
			"profile2":   p2,
		},
	})
}

func writeError(ctx *gin.Context, err error) {
	status := ierrors.HTTPStatus(err)
	ctx.JSON(status, gin.H{
		"error":     err.Error(),
		"requestId": requestID(ctx),
	})
}
