package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pensionfacts/internal/category"
	"github.com/ppiankov/pensionfacts/internal/clean"
	"github.com/ppiankov/pensionfacts/internal/dates"
	"github.com/ppiankov/pensionfacts/internal/model"
	"github.com/ppiankov/pensionfacts/internal/normalize"
	"github.com/ppiankov/pensionfacts/internal/pipeline"
	"github.com/ppiankov/pensionfacts/internal/title"
)

var (
	cleanMode     string
	cleanAmounts  bool
	datesFileType string
	amountYear    string
)

var cleanCmd = &cobra.Command{
	Use:   "clean [text|-]",
	Short: "Clean OCR text",
	Long: `Clean repairs common OCR damage: misread glyphs, digit/letter
confusions, misspellings, quotes, punctuation spacing, words broken
across lines and whitespace.

Modes:
  full      every repair (default)
  minimal   glyphs, digit/letter confusions and whitespace only
  amounts   never rewrites digits inside numbers
  none      unchanged

Example:
  pensionfacts clean "Tbe said Jobn enlisted in 1776"
  pensionfacts clean --mode amounts --amounts < page.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		text, err := textArg(args)
		if err != nil {
			return err
		}

		mode := cleanMode
		if mode == "" {
			mode = cfg.Cleaning.Mode
		}
		cleaner := clean.NewCleaner(cfg.Tables.OCRCorrections)
		out := struct {
			Text    string         `json:"text"`
			Amounts *model.Amounts `json:"amounts,omitempty"`
		}{
			Text: cleaner.Apply(clean.Mode(mode), text),
		}
		if cleanAmounts {
			a := cleaner.ExtractAmounts(text)
			out.Amounts = &a
		}
		return printJSON(out)
	},
}

var titleCmd = &cobra.Command{
	Use:   "title <title>",
	Short: "Parse a document title",
	Long: `Title reads the file type, applicant and place from a title, groups
the file and assigns category tags.

Example:
  pensionfacts title "File W.12345, Jane Doe, Hartford, Conn."`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		raw, err := textArg(args)
		if err != nil {
			return err
		}
		tables := cfg.Tables

		group := title.Group(raw)
		assignment := category.NewAssigner(tables.Categories, tables.UnknownMarkers, tables.TitleStopwords).
			AssignForGroup(raw, group)

		return printJSON(struct {
			Title          model.TitleParseResult `json:"title"`
			FileTypeGroup  model.FileTypeGroup    `json:"file_type"`
			Categories     []string               `json:"categories"`
			CategoryReason string                 `json:"category_reason"`
		}{
			Title:          title.NewParser(tables.FileTypeTokens).Parse(raw),
			FileTypeGroup:  group,
			Categories:     assignment.Labels,
			CategoryReason: assignment.Reason,
		})
	},
}

var phraseCmd = &cobra.Command{
	Use:   "phrase [phrase|-]",
	Short: "Extract award details from an allowance phrase",
	Long: `Phrase splits an allowance phrase on "||" and extracts amount,
frequency, names, service details, act date and places from each
segment, then normalizes them.

Example:
  pensionfacts phrase "Inscribed on the Roll of Connecticut at the rate of 80 Dollars per annum"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		phrase, err := textArg(args)
		if err != nil {
			return err
		}
		return printJSON(pipeline.NewPipeline(cfg, nil).Allowances(phrase))
	},
}

var datesCmd = &cobra.Command{
	Use:   "dates [text|-]",
	Short: "Find and classify years",
	Long: `Dates finds every year between 1700 and 1900, numeric or spelled out,
and sorts each distinct year into application, service or other.

Example:
  pensionfacts dates "He enlisted in 1776 and personally appeared in 1832"
  pensionfacts dates --file-type OW < declaration.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := textArg(args)
		if err != nil {
			return err
		}
		years := dates.Extract(text)
		return printJSON(struct {
			ExtractedDates []string                 `json:"extracted_dates"`
			Dates          model.DateClassification `json:"dates"`
		}{
			ExtractedDates: years,
			Dates:          dates.Classify(text, years, model.FileTypeCategory(datesFileType)),
		})
	},
}

// normalized is the JSON shape for place and frequency lookups
type normalized struct {
	Input   string  `json:"input"`
	Value   *string `json:"value"`
	Outcome string  `json:"outcome"`
}

func normalizeAll(inputs []string, fn func(string) normalize.Result) []normalized {
	out := make([]normalized, 0, len(inputs))
	for _, in := range inputs {
		r := fn(in)
		out = append(out, normalized{Input: in, Value: r.Ptr(), Outcome: r.Outcome.String()})
	}
	return out
}

var placeCmd = &cobra.Command{
	Use:   "place <place>...",
	Short: "Normalize place names to states",
	Long: `Place maps each raw place to a canonical state name. Unrecognized
places come back unchanged with outcome "unmapped".

Example:
  pensionfacts place "Rochester N.Y." "State of Virginia" Timbuktu`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return printJSON(normalizeAll(args, normalize.NewPlaceNormalizer(cfg.Tables.States).Normalize))
	},
}

var frequencyCmd = &cobra.Command{
	Use:   "frequency <frequency>...",
	Short: "Normalize payment frequencies",
	Long: `Frequency maps each raw spelling to annual, semi-annual or monthly.

Example:
  pensionfacts frequency "per annum" "Semi-Anl." bogus`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return printJSON(normalizeAll(args, normalize.NewFrequencyNormalizer(cfg.Tables.Frequencies).Normalize))
	},
}

var amountCmd = &cobra.Command{
	Use:   "amount <amount> <frequency>",
	Short: "Convert an award to a yearly and present-day amount",
	Long: `Amount scales a per-payment amount to a yearly figure and, with
--year, expresses it in present-day dollars.

Example:
  pensionfacts amount 8 monthly --year 1832`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[0], err)
		}

		out := struct {
			Yearly  *float64 `json:"yearly_amount"`
			Present *float64 `json:"present_day_yearly_dollars,omitempty"`
		}{}
		freq := normalize.NewFrequencyNormalizer(cfg.Tables.Frequencies).Normalize(args[1])
		if yearly, ok := normalize.YearlyAmount(amount, freq.Value); ok {
			out.Yearly = &yearly
			if amountYear != "" {
				conv := normalize.NewDollarConverter(cfg.Tables.CPI, cfg.Tables.CPITarget)
				if present, ok := conv.Convert(yearly, amountYear); ok {
					out.Present = &present
				}
			}
		}
		return printJSON(out)
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanMode, "mode", "", "cleaning mode: full, minimal, amounts, none (default from config)")
	cleanCmd.Flags().BoolVar(&cleanAmounts, "amounts", false, "also list dollar and acre amounts")
	datesCmd.Flags().StringVar(&datesFileType, "file-type", "", "file type category from the title (S, R, W, T, BLW, OW)")
	amountCmd.Flags().StringVar(&amountYear, "year", "", "year of the award for present-day conversion")

	rootCmd.AddCommand(cleanCmd, titleCmd, phraseCmd, datesCmd, placeCmd, frequencyCmd, amountCmd)
}
