// Package pipeline turns one pension document into a DocumentReport.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/ppiankov/pensionfacts/internal/cache"
	"github.com/ppiankov/pensionfacts/internal/category"
	"github.com/ppiankov/pensionfacts/internal/clean"
	"github.com/ppiankov/pensionfacts/internal/dates"
	"github.com/ppiankov/pensionfacts/internal/extract"
	"github.com/ppiankov/pensionfacts/internal/model"
	"github.com/ppiankov/pensionfacts/internal/normalize"
	"github.com/ppiankov/pensionfacts/internal/source"
	"github.com/ppiankov/pensionfacts/internal/title"
)

// Pipeline wires every extractor and normalizer from one configuration
type Pipeline struct {
	titles     *title.Parser
	assigner   *category.Assigner
	chooser    *source.Chooser
	cleaner    *clean.Cleaner
	mode       clean.Mode
	withText   bool
	classifier *dates.Classifier
	phrases    *extract.PhraseExtractor
	frequency  *normalize.FrequencyNormalizer
	places     *normalize.PlaceNormalizer
	acts       *normalize.ActRegistry
	dollars    *normalize.DollarConverter
	cache      cache.Cache
	cacheTTL   time.Duration
	configKey  string
	now        func() time.Time
}

// NewPipeline builds a pipeline from cfg. A nil cache disables memoization.
func NewPipeline(cfg *model.Config, c cache.Cache) *Pipeline {
	if c == nil {
		c = cache.Nop{}
	}
	tables := cfg.Tables

	return &Pipeline{
		titles:     title.NewParser(tables.FileTypeTokens),
		assigner:   category.NewAssigner(tables.Categories, tables.UnknownMarkers, tables.TitleStopwords),
		chooser:    source.NewChooser(cfg.Limits.MaxTextBytes),
		cleaner:    clean.NewCleaner(tables.OCRCorrections),
		mode:       clean.Mode(cfg.Cleaning.Mode),
		withText:   cfg.Cleaning.IncludeText,
		classifier: dates.NewClassifier(),
		phrases:    extract.NewPhraseExtractor(),
		frequency:  normalize.NewFrequencyNormalizer(tables.Frequencies),
		places:     normalize.NewPlaceNormalizer(tables.States),
		acts:       normalize.NewActRegistry(tables.KnownActs),
		dollars:    normalize.NewDollarConverter(tables.CPI, tables.CPITarget),
		cache:      c,
		cacheTTL:   cfg.Cache.MemoryTTL,
		configKey:  configFingerprint(cfg),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Process derives the full report for doc. Extraction itself cannot fail;
// the error is only ever the context's.
func (p *Pipeline) Process(ctx context.Context, doc model.Document) (*model.DocumentReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := p.cacheKey(doc)
	if raw, ok := p.cache.Get(key); ok {
		var report model.DocumentReport
		if err := json.Unmarshal(raw, &report); err == nil {
			slog.Debug("report cache hit", "naid", doc.NAID)
			return &report, nil
		}
		_ = p.cache.Delete(key)
	}

	report := p.build(doc)

	if raw, err := json.Marshal(report); err != nil {
		slog.Warn("marshal report for cache", "naid", doc.NAID, "error", err)
	} else if err := p.cache.Set(key, raw, p.cacheTTL); err != nil {
		slog.Warn("store report in cache", "naid", doc.NAID, "error", err)
	}

	return report, nil
}

func (p *Pipeline) build(doc model.Document) *model.DocumentReport {
	parsed := p.titles.Parse(doc.Title)
	group := title.Group(doc.Title)
	assignment := p.assigner.AssignForGroup(doc.Title, group)

	// Years come from the chosen text as is. The full cleaner joins lines,
	// which would glue a year to the next line's first word.
	text, textSource := p.chooser.Choose(doc.TranscriptionText, doc.OCRText)
	years := dates.Extract(text)
	sortYears(years)

	report := &model.DocumentReport{
		NAID:           doc.NAID,
		Title:          parsed,
		FileTypeGroup:  group,
		Categories:     assignment.Labels,
		CategoryReason: assignment.Reason,
		TextSource:     textSource,
		ExtractedDates: years,
		Dates:          p.classifier.Classify(text, years, parsed.Category),
		Amounts:        p.cleaner.ExtractAmounts(text),
		Allowances:     p.Allowances(doc.AllowancePhrase),
		ProcessedAt:    p.now(),
	}
	if p.withText {
		report.CleanedText = p.cleaner.Apply(p.mode, text)
	}
	return report
}

// Allowances extracts and normalizes every segment of an allowance phrase
func (p *Pipeline) Allowances(phrase string) []model.AllowanceReport {
	records := p.phrases.ExtractAll(phrase)
	out := make([]model.AllowanceReport, 0, len(records))
	for _, rec := range records {
		out = append(out, p.normalizeRecord(rec))
	}
	return out
}

func (p *Pipeline) normalizeRecord(rec model.ExtractedRecord) model.AllowanceReport {
	ar := model.AllowanceReport{Record: rec}

	freq := normalize.Null()
	if rec.PaymentFrequency != nil {
		freq = p.frequency.Normalize(string(*rec.PaymentFrequency))
	}
	ar.Frequency = freq.Ptr()
	ar.FrequencyOutcome = freq.Outcome.String()

	granted := normalize.Null()
	if rec.AwardGrantedPlace != nil {
		granted = p.places.Normalize(*rec.AwardGrantedPlace)
	}
	ar.GrantedState = granted.Ptr()
	ar.GrantedOutcome = granted.Outcome.String()

	if rec.AwardAllowanceAmount != nil && freq.IsCanonical() {
		if yearly, ok := normalize.YearlyAmount(*rec.AwardAllowanceAmount, freq.Value); ok {
			ar.YearlyAmount = &yearly
		}
	}

	if rec.ActDate == nil {
		return ar
	}
	iso, ok := normalize.ActDateISO(*rec.ActDate)
	if !ok {
		return ar
	}
	ar.ActDateISO = &iso
	if desc, ok := p.acts.Lookup(iso); ok {
		ar.KnownAct = &desc
	}
	if ar.YearlyAmount != nil {
		if present, ok := p.dollars.Convert(*ar.YearlyAmount, iso[:4]); ok {
			ar.PresentDayDollars = &present
		}
	}
	return ar
}

// cacheKey covers every input that changes the report
func (p *Pipeline) cacheKey(doc model.Document) string {
	return cache.CacheKey(p.configKey, doc.NAID, doc.Title, doc.TranscriptionText, doc.OCRText, doc.AllowancePhrase)
}

// configFingerprint hashes every setting that shapes a report
func configFingerprint(cfg *model.Config) string {
	tables, err := json.Marshal(cfg.Tables)
	if err != nil {
		// NaN in the CPI table; such a config never shares entries
		tables = []byte(fmt.Sprintf("unmarshalable %p", cfg))
	}
	return cache.CacheKey(
		string(tables),
		strconv.Itoa(cfg.Limits.MaxTextBytes),
		cfg.Cleaning.Mode,
		strconv.FormatBool(cfg.Cleaning.IncludeText),
	)
}

// sortYears orders four-digit year strings numerically
func sortYears(years []string) {
	sort.SliceStable(years, func(i, j int) bool {
		a, errA := strconv.Atoi(years[i])
		b, errB := strconv.Atoi(years[j])
		if errA != nil || errB != nil {
			return years[i] < years[j]
		}
		return a < b
	})
}

// ProcessAll runs Process over docs in order, stopping at the first error
func (p *Pipeline) ProcessAll(ctx context.Context, docs []model.Document) ([]*model.DocumentReport, error) {
	reports := make([]*model.DocumentReport, 0, len(docs))
	for i, doc := range docs {
		r, err := p.Process(ctx, doc)
		if err != nil {
			return reports, fmt.Errorf("document %d: %w", i, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
