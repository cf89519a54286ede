package handler

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/hirescope/hirescope/internal/dto"
	"github.com/hirescope/hirescope/internal/model"
	"github.com/hirescope/hirescope/internal/ratelimit"
	"github.com/hirescope/hirescope/internal/service"
	"github.com/hirescope/hirescope/internal/usecase"
	"github.com/hirescope/hirescope/internal/util"
)

type SearchHandler struct {
	scraper  *service.ScrapeService
	analyzer service.MatchAnalyzer
	searchUC *usecase.SearchUsecase
	matchUC  *usecase.MatchUsecase
	limiter  *ratelimit.Limiter
}

func NewSearchHandler(
	scraper *service.ScrapeService,
	analyzer service.MatchAnalyzer,
	searchUC *usecase.SearchUsecase,
	matchUC *usecase.MatchUsecase,
	limiter *ratelimit.Limiter,
) *SearchHandler {
	return &SearchHandler{
		scraper:  scraper,
		analyzer: analyzer,
		searchUC: searchUC,
		matchUC:  matchUC,
		limiter:  limiter,
	}
}

func (h *SearchHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Post("/jobs/search", h.JobBoardSearch)
	api.Post("/match", h.Match)
	api.Post("/search", h.Search)
	api.Post("/resume", h.Resume)
}

// JobBoardSearch proxies a single raw page fetch against the job board.
// It has its own quota independent of the server-wide limiter: the scarce
// resource here is the upstream's tolerance, not server capacity.
func (h *SearchHandler) JobBoardSearch(c *fiber.Ctx) error {
	if !h.limiter.Allow() {
		next := h.limiter.NextAllowedTime()
		wait := time.Until(next)
		if wait < 0 {
			wait = 0
		}
		c.Set("Retry-After", fmt.Sprintf("%d", int(wait.Seconds())+1))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":           "Rate limit exceeded",
			"nextAllowedTime": next.Format(time.RFC3339),
			"message":         "Too many scrape requests, slow down",
		})
	}

	var req dto.JobBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if strings.TrimSpace(req.Keywords) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "keywords is required",
		})
	}

	jobs, err := h.scraper.Search(c.Context(), service.FetchParams{
		Keywords:   req.Keywords,
		Location:   req.Location,
		Distance:   req.Distance,
		TimePosted: req.TimeFilter,
		Start:      req.Start,
	})
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "failed to fetch jobs from the job board",
		}, err)
	}

	var reset string
	if next := h.limiter.NextAllowedTime(); !next.IsZero() {
		reset = next.Format(time.RFC3339)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success fetch jobs",
		Data: fiber.Map{
			"jobs": jobs,
			"rateLimit": dto.RateLimitInfo{
				Remaining: h.limiter.Remaining(),
				Reset:     reset,
			},
		},
	})
}

// Match scores one posting against a resume. Unlike the orchestrated
// search, provider failures surface here so the caller can tell a broken
// configuration from a neutral score.
func (h *SearchHandler) Match(c *fiber.Ctx) error {
	var req dto.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.JobDetails.Title == "" || strings.TrimSpace(req.ResumeText) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "jobDetails and resumeText are required",
		})
	}

	match, err := h.analyzer.AnalyzeMatch(c.Context(), req.JobDetails.ToPosting(), req.ResumeText)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to analyze match",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success analyze match",
		Data:    match,
	})
}

// Search is the orchestrated pipeline: cached scrape plus, when a resume
// is supplied, match scoring with jobs re-ranked by score.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if strings.TrimSpace(req.Keywords) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "keywords is required",
		})
	}

	result, err := h.searchUC.Search(c.Context(), req.ToCriteria())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "search failed",
		}, err)
	}

	data := fiber.Map{
		"jobs":       result.Jobs,
		"totalFound": result.TotalFound,
		"cached":     result.Cached,
	}

	if strings.TrimSpace(req.ResumeText) != "" && len(result.Jobs) > 0 {
		matches := h.matchUC.ScoreAll(c.Context(), result.Jobs, req.ResumeText)
		data["jobs"] = rankByMatch(result.Jobs, matches)
		data["matches"] = matches
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success search jobs",
		Data:    data,
	})
}

// Resume accepts a PDF upload and returns its extracted text for use in
// subsequent match calls.
func (h *SearchHandler) Resume(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume file is required",
		}, err)
	}
	if file.Size > 5*1024*1024 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume file size is too large (max 5MB)",
		})
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "unsupported resume file type",
		})
	}

	savePath := filepath.Join("./uploads/resume/", uuid.NewString()+".pdf")
	if err := c.SaveFile(file, savePath); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot save resume file",
		}, err)
	}

	text, err := util.ExtractResumeText(savePath)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: "failed to extract resume text",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success extract resume",
		Data:    fiber.Map{"resumeText": text},
	})
}

// rankByMatch reorders jobs by descending match score. Unscored jobs (past
// the analysis cap) keep their relative order after the scored ones.
func rankByMatch(jobs []model.JobPosting, matches []model.JobMatch) []model.JobPosting {
	scores := make(map[string]int, len(matches))
	for _, m := range matches {
		scores[m.JobID] = m.Score
	}

	ranked := append([]model.JobPosting(nil), jobs...)
	sort.SliceStable(ranked, func(i, j int) bool {
		si, iok := scores[ranked[i].ID]
		sj, jok := scores[ranked[j].ID]
		if iok != jok {
			return iok
		}
		return si > sj
	})
	return ranked
}
