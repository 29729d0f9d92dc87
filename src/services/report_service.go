package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/salescope/src/apperrors"
	"github.com/username/salescope/src/database"
	"github.com/username/salescope/src/llm"
	"github.com/username/salescope/src/logger"
	"github.com/username/salescope/src/metrics"
	"github.com/username/salescope/src/models"
	"github.com/username/salescope/src/parsers"
	"github.com/username/salescope/src/processors"
	"github.com/username/salescope/src/prompt"
	"github.com/username/salescope/src/utils"
)

const (
	// Cache of upstream LLM answers keyed by prompt hash. Only the opaque
	// generated text is cached; per-request aggregates never are.
	ckLLMAnswer = "llm_answer_%s"
)

type reportServiceImpl struct {
	normalizer    *processors.RecordNormalizer
	aggregator    *processors.SalesAggregator
	promptBuilder *prompt.Builder
	generator     llm.TextGenerator
	answerCache   *cache.Cache
	cacheTTL      time.Duration
	registry      *metrics.Registry
}

func NewReportService(
	normalizer *processors.RecordNormalizer,
	aggregator *processors.SalesAggregator,
	promptBuilder *prompt.Builder,
	generator llm.TextGenerator,
	answerCache *cache.Cache,
	cacheTTL time.Duration,
	registry *metrics.Registry,
) ReportService {
	return &reportServiceImpl{
		normalizer:    normalizer,
		aggregator:    aggregator,
		promptBuilder: promptBuilder,
		generator:     generator,
		answerCache:   answerCache,
		cacheTTL:      cacheTTL,
		registry:      registry,
	}
}

func (s *reportServiceImpl) GenerateReportFromFile(ctx context.Context, file io.Reader, filename string) (*models.ReportBundle, error) {
	parser, err := parsers.GetParser(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	rows, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	return s.generate(ctx, rows, "upload:"+filename)
}

func (s *reportServiceImpl) GenerateReportFromSample(ctx context.Context) (*models.ReportBundle, error) {
	rows, err := database.FetchSalesRows()
	if err != nil {
		return nil, apperrors.InternalWrap(err, "failed to read sample dataset")
	}
	return s.generate(ctx, rows, "sample")
}

// generate runs the linear pipeline: normalize -> aggregate -> prompt ->
// LLM -> bundle. Any stage error short-circuits the rest; the caller gets a
// complete bundle or an error, never a partial one.
func (s *reportServiceImpl) generate(ctx context.Context, rows []models.RawRow, source string) (*models.ReportBundle, error) {
	overallStartTime := time.Now()
	logger.L.Info("GenerateReport START", "source", source, "rowCount", len(rows))

	if len(rows) == 0 {
		s.registry.ReportFailures.Inc()
		return nil, apperrors.Ingestion("no records obtained from the selected data source")
	}
	s.registry.RowsIngested.Add(float64(len(rows)))

	records := s.normalizer.Normalize(rows)
	summary, series := s.aggregator.Aggregate(records)

	promptText := s.promptBuilder.BuildReportPrompt(records, summary, series)

	report, err := s.askLLM(ctx, promptText)
	if err != nil {
		s.registry.ReportFailures.Inc()
		return nil, err
	}

	s.registry.ReportsGenerated.Inc()
	logger.L.Info("GenerateReport END", "source", source, "duration", time.Since(overallStartTime))

	return &models.ReportBundle{
		Report:         report,
		ChartData:      summary,
		TimeSeriesData: series,
	}, nil
}

func (s *reportServiceImpl) Chat(ctx context.Context, message string, summary models.ChartSummary) (string, error) {
	promptText := s.promptBuilder.BuildChatPrompt(message, summary)
	return s.askLLM(ctx, promptText)
}

// askLLM sends the prompt upstream, deduplicating identical prompts through
// the answer cache.
func (s *reportServiceImpl) askLLM(ctx context.Context, promptText string) (string, error) {
	cacheKey := fmt.Sprintf(ckLLMAnswer, utils.HashKey(promptText))
	if cached, found := s.answerCache.Get(cacheKey); found {
		logger.L.Info("Cache hit for LLM answer", "key", cacheKey)
		return cached.(string), nil
	}

	llmStart := time.Now()
	answer, err := s.generator.GenerateContent(ctx, promptText)
	s.registry.LLMRequestSec.Observe(time.Since(llmStart).Seconds())
	if err != nil {
		return "", err
	}

	s.answerCache.Set(cacheKey, answer, s.cacheTTL)
	return answer, nil
}
