// Package api exposes the statement analyzer over HTTP: statement upload,
// analytics aggregates, transaction listing/search and CSV export.
package api

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-analyzer/internal/analytics"
	"github.com/insightdelivered/statement-analyzer/internal/categorizer"
	"github.com/insightdelivered/statement-analyzer/internal/models"
	"github.com/insightdelivered/statement-analyzer/internal/parser"
	"github.com/insightdelivered/statement-analyzer/internal/writer"
)

// TransactionStore is the persistence contract the handlers need. Uploads
// follow a clear-then-save protocol: the store is cleared only after a fully
// successful parse, so a failed upload never mutates persisted state.
type TransactionStore interface {
	Save(txns []models.Transaction) error
	GetAll() ([]models.Transaction, error)
	ClearAll() error
}

// Handler holds the HTTP handlers and their collaborators. Everything is
// injected so tests can swap the store.
type Handler struct {
	Parser      *parser.StatementParser
	Store       TransactionStore
	Categorizer *categorizer.Categorizer
	Log         zerolog.Logger
}

// New builds a Handler from its collaborators.
func New(p *parser.StatementParser, store TransactionStore, cat *categorizer.Categorizer, log zerolog.Logger) *Handler {
	return &Handler{Parser: p, Store: store, Categorizer: cat, Log: log}
}

// RegisterRoutes attaches all endpoints to the app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.HandleHealth)

	v1 := app.Group("/api/v1")
	v1.Post("/upload", h.HandleUpload)
	v1.Get("/transactions", h.HandleTransactions)
	v1.Get("/transactions/search", h.HandleSearch)
	v1.Get("/transactions/export", h.HandleExport)

	a := v1.Group("/analytics")
	a.Get("/summary", h.HandleSummary)
	a.Get("/spending", h.HandleSpending)
	a.Get("/trends", h.HandleTrends)
	a.Get("/merchants", h.HandleMerchants)
	a.Post("/reset", h.HandleReset)
}

// UploadResponse is the JSON response from the upload endpoint.
type UploadResponse struct {
	Success      bool                      `json:"success"`
	Error        string                    `json:"error,omitempty"`
	Transactions []models.Transaction      `json:"transactions"`
	Metadata     *models.StatementMetadata `json:"metadata,omitempty"`
	Count        int                       `json:"count"`
	SkippedRows  int                       `json:"skippedRows"`
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "engine": "fiber"})
}

// HandleUpload ingests one statement file. On success the previous dataset is
// cleared and replaced — single-tenant, single-active-statement semantics.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no file uploaded; use form field 'file'")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "could not open uploaded file")
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "could not read uploaded file")
	}

	filename := filepath.Base(fileHeader.Filename)
	result, err := h.Parser.Parse(content, filename)
	if err != nil {
		h.Log.Warn().Str("file", filename).Err(err).Msg("statement parse failed")
		return writeError(c, statusForParseError(err), err.Error()+": "+filename)
	}

	h.Categorizer.Apply(result.Transactions)

	// Reset on new upload: only one statement is active at a time.
	if err := h.Store.ClearAll(); err != nil {
		h.Log.Error().Err(err).Msg("clearing previous dataset failed")
		return writeError(c, fiber.StatusInternalServerError, "could not reset stored transactions")
	}
	if err := h.Store.Save(result.Transactions); err != nil {
		h.Log.Error().Err(err).Msg("saving transactions failed")
		return writeError(c, fiber.StatusInternalServerError, "could not save transactions")
	}

	h.Log.Info().
		Str("file", filename).
		Int("transactions", len(result.Transactions)).
		Int("skipped", len(result.Skipped)).
		Str("currency", result.Metadata.Currency).
		Msg("statement ingested")

	return c.JSON(UploadResponse{
		Success:      true,
		Transactions: result.Transactions,
		Metadata:     &result.Metadata,
		Count:        len(result.Transactions),
		SkippedRows:  len(result.Skipped),
	})
}

// HandleSummary returns the high-level totals, zeros when nothing is stored.
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	txns, err := h.Store.GetAll()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "could not load transactions")
	}
	return c.JSON(analytics.CalculateSummary(txns))
}

// HandleSpending returns the per-category debit breakdown.
func (h *Handler) HandleSpending(c *fiber.Ctx) error {
	txns, err := h.Store.GetAll()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "could not load transactions")
	}
	return c.JSON(analytics.CalculateCategoryBreakdown(txns))
}

// HandleTrends returns monthly income/expense aggregates, ascending by month.
func (h *Handler) HandleTrends(c *fiber.Ctx) error {
	txns, err := h.Store.GetAll()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "could not load transactions")
	}
	trends := analytics.CalculateMonthlyTrends(txns)
	if trends == nil {
		trends = []analytics.MonthlyTrend{}
	}
	return c.JSON(trends)
}

// HandleMerchants returns the top merchants by spend. Optional ?limit=N.
func (h *Handler) HandleMerchants(c *fiber.Ctx) error {
	txns, err := h.Store.GetAll()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "could not load transactions")
	}
	limit := c.QueryInt("limit", analytics.DefaultMerchantLimit)
	merchants := analytics.CalculateTopMerchants(txns, limit)
	if merchants == nil {
		merchants = []analytics.MerchantTotal{}
	}
	return c.JSON(merchants)
}

// HandleReset clears the stored dataset and answers with a zeroed summary.
func (h *Handler) HandleReset(c *fiber.Ctx) error {
	if err := h.Store.ClearAll(); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "could not reset stored transactions")
	}
	return c.JSON(analytics.CalculateSummary(nil))
}

// HandleTransactions lists all stored transactions, date-descending.
func (h *Handler) HandleTransactions(c *fiber.Ctx) error {
	txns, err := h.Store.GetAll()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "could not load transactions")
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	return c.JSON(txns)
}

// HandleSearch finds stored transactions by description keyword: exact
// normalized match first, substring fallback.
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	keyword := c.Query("q")
	if keyword == "" {
		return writeError(c, fiber.StatusBadRequest, "missing query parameter 'q'")
	}
	txns, err := h.Store.GetAll()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "could not load transactions")
	}
	matches := analytics.SearchTransactions(txns, keyword)
	if matches == nil {
		matches = []models.Transaction{}
	}
	return c.JSON(matches)
}

// HandleExport downloads the stored transactions as CSV.
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	txns, err := h.Store.GetAll()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "could not load transactions")
	}

	var buf bytes.Buffer
	w := &writer.CSVWriter{}
	if err := w.Write(&buf, txns, nil); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "could not generate csv")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
	return c.Send(buf.Bytes())
}

// statusForParseError maps the parse failure taxonomy onto HTTP statuses:
// unsupported input is the caller's mistake, everything structural is an
// unprocessable statement.
func statusForParseError(err error) int {
	if errors.Is(err, parser.ErrUnsupportedFormat) {
		return fiber.StatusBadRequest
	}
	var malformed *parser.MalformedTableError
	if errors.Is(err, parser.ErrEmptyInput) ||
		errors.Is(err, parser.ErrHeaderNotFound) ||
		errors.Is(err, parser.ErrDateColumnNotFound) ||
		errors.Is(err, parser.ErrNoTransactions) ||
		errors.As(err, &malformed) {
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(UploadResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
	})
}
