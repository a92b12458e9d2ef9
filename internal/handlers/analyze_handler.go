package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"ats-engine/internal/config"
	"ats-engine/internal/models"
	"ats-engine/internal/services"
)

type AnalyzeHandler struct {
	cfg          *config.Config
	orchestrator services.OrchestratorService
	sheets       services.SheetService
	extractor    services.ExtractorService
	storage      services.StorageService
}

func NewAnalyzeHandler(
	cfg *config.Config,
	orchestrator services.OrchestratorService,
	sheets services.SheetService,
	extractor services.ExtractorService,
	storage services.StorageService,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		cfg:          cfg,
		orchestrator: orchestrator,
		sheets:       sheets,
		extractor:    extractor,
		storage:      storage,
	}
}

// HandleAnalyze handles POST /analyze: a candidate sheet (CSV/XLSX) with
// resume links, scored against one or more job descriptions. Progress is
// streamed as server-sent events.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	jdTexts, err := h.resolveJDTexts(c.FormValue("jd_text"), form.File["jd_files"])
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if len(jdTexts) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Job description is required. Paste text or upload file(s).",
		})
	}

	sheetFiles, exists := form.File["candidate_file"]
	if !exists || len(sheetFiles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidate_file is required",
		})
	}

	sheetPath, err := h.storage.SaveUpload(sheetFiles[0])
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to read candidate file: %v", err),
		})
	}
	candidates, err := h.sheets.ParseCandidates(sheetPath)
	h.storage.Remove(sheetPath)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if len(candidates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no candidates with resume links found",
		})
	}

	keys := h.resolveKeys(c)
	return h.stream(c, candidates, jdTexts, keys)
}

// HandleAnalyzeDirect handles POST /analyze-direct: resumes uploaded as
// files, no download step. Candidate names are derived from file names until
// the LLM extracts a better one.
func (h *AnalyzeHandler) HandleAnalyzeDirect(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	jdTexts, err := h.resolveJDTexts(c.FormValue("jd_text"), form.File["jd_files"])
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if len(jdTexts) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Job description is required.",
		})
	}

	resumeFiles := form.File["resume_files"]
	if len(resumeFiles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one resume file is required.",
		})
	}

	var candidates []models.Candidate
	for _, file := range resumeFiles {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if ext != ".pdf" && ext != ".docx" && ext != ".doc" {
			continue
		}

		path, err := h.storage.SaveUpload(file)
		if err != nil {
			continue
		}

		candidates = append(candidates, models.Candidate{
			Name:     nameFromFilename(file.Filename),
			Source:   models.SourceFile,
			FilePath: path,
		})
	}

	if len(candidates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid resume files found (PDF/DOCX only).",
		})
	}

	keys := h.resolveKeys(c)
	return h.stream(c, candidates, jdTexts, keys)
}

// stream runs the batch inside a body stream writer, emitting each event as
// one SSE data line. All request state must be captured before this point;
// the fiber context is not valid inside the writer.
func (h *AnalyzeHandler) stream(c *fiber.Ctx, candidates []models.Candidate, jdTexts []string, keys services.ProviderKeys) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		emit := func(event models.StreamEvent) {
			payload, err := json.Marshal(event)
			if err != nil {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			w.Flush()
		}

		h.orchestrator.Run(context.Background(), candidates, jdTexts, keys, emit)
	}))

	return nil
}

// resolveJDTexts builds the JD list from pasted text plus uploaded files.
// Each file is extracted and discarded; files yielding no text are skipped.
func (h *AnalyzeHandler) resolveJDTexts(pasted string, jdFiles []*multipart.FileHeader) ([]string, error) {
	var jdTexts []string

	if trimmed := strings.TrimSpace(pasted); trimmed != "" {
		jdTexts = append(jdTexts, trimmed)
	}

	for _, file := range jdFiles {
		if file.Filename == "" {
			continue
		}

		path, err := h.storage.SaveUpload(file)
		if err != nil {
			return nil, fmt.Errorf("failed to save JD file %s: %w", file.Filename, err)
		}

		text := h.extractor.Extract(path)
		h.storage.Remove(path)

		if trimmed := strings.TrimSpace(text); trimmed != "" {
			jdTexts = append(jdTexts, trimmed)
		}
	}

	return jdTexts, nil
}

// resolveKeys prefers per-request key overrides, falling back to the
// configured defaults.
func (h *AnalyzeHandler) resolveKeys(c *fiber.Ctx) services.ProviderKeys {
	keys := services.ProviderKeys{
		OpenAI: h.cfg.LLM.OpenAIKey,
		Gemini: h.cfg.LLM.GeminiKey,
	}
	if override := c.FormValue("openai_key"); override != "" {
		keys.OpenAI = override
	}
	if override := c.FormValue("gemini_key"); override != "" {
		keys.Gemini = override
	}
	return keys
}

func nameFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return strings.TrimSpace(name)
}
