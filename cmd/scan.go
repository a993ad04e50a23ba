package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/llm"
	"github.com/aipalm/aipalm/internal/palm"
	"github.com/aipalm/aipalm/internal/store"
	"github.com/aipalm/aipalm/internal/wizard"
)

var scanCmd = &cobra.Command{
	Use:   "scan <image>...",
	Short: "Read one or more palm photos without the interactive app",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handVal, _ := cmd.Flags().GetString("hand")
		hand, err := wizard.ParseHand(handVal)
		if err != nil {
			return err
		}
		noSave, _ := cmd.Flags().GetBool("no-save")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		lang, _ := cmd.Flags().GetString("lang")
		if lang == "" {
			lang = e.cfg.Language
		}
		if !i18n.IsSupported(lang) {
			return fmt.Errorf("language %q is not supported", lang)
		}

		providers, err := e.providers(cmd.Context())
		if err != nil {
			return err
		}

		var repo store.ReadingRepo
		if !noSave {
			repo = e.store.ReadingRepo()
		}
		b := batch{
			analyzer: palm.NewService(providers.Vision, palm.DefaultConfig()),
			readings: repo,
			logger:   e.logger,
			hand:     hand,
			lang:     lang,
			limit:    e.cfg.Scan.Parallelism,
		}
		results, err := b.run(cmd.Context(), args)
		if err != nil {
			return err
		}

		failed := printResults(cmd.OutOrStdout(), results)
		if failed > 0 {
			return fmt.Errorf("%d of %d images could not be read", failed, len(results))
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().String("hand", "right", "Which hand the photos show: left or right")
	scanCmd.Flags().String("lang", "", "Language of the reading (default from config)")
	scanCmd.Flags().Bool("no-save", false, "Do not add readings to history")
}

// batch analyzes images concurrently with at most limit calls in flight.
type batch struct {
	analyzer palm.Analyzer
	readings store.ReadingRepo
	logger   *zap.Logger
	hand     wizard.Hand
	lang     string
	limit    int
}

type scanResult struct {
	Path    string
	Reading *palm.Reading
	Err     error
}

// run returns one result per path in input order. A failed image does not
// stop the others; only a storage failure aborts the batch.
func (b batch) run(ctx context.Context, paths []string) ([]scanResult, error) {
	results := make([]scanResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.limit, 1))

	for i, path := range paths {
		g.Go(func() error {
			results[i].Path = path
			img, err := palm.LoadImage(path)
			if err != nil {
				results[i].Err = err
				return nil
			}
			r, err := b.analyzer.Analyze(llm.WithCorrelation(ctx, path), img, b.lang)
			if err != nil {
				b.logger.Warn("scan failed", zap.String("path", path), zap.Error(err))
				results[i].Err = err
				return nil
			}
			results[i].Reading = r

			if b.readings == nil {
				return nil
			}
			rec := &store.ReadingRecord{
				Hand:       string(b.hand),
				Language:   b.lang,
				MediaType:  img.MediaType,
				ImageBytes: len(img.Data),
				HeartLine:  r.HeartLine,
				HeadLine:   r.HeadLine,
				LifeLine:   r.LifeLine,
				FateLine:   r.FateLine,
				Summary:    r.Summary,
			}
			if err := b.readings.Save(ctx, rec); err != nil {
				return fmt.Errorf("save reading for %s: %w", path, err)
			}
			b.logger.Info("reading saved", zap.String("path", path), zap.String("reading_id", rec.ID))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// printResults writes each reading and returns how many failed.
func printResults(w io.Writer, results []scanResult) int {
	sep := strings.Repeat("─", 60)
	failed := 0
	for _, res := range results {
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, res.Path)
		fmt.Fprintln(w, sep)
		if res.Err != nil {
			failed++
			fmt.Fprintf(w, "error: %v\n\n", res.Err)
			continue
		}
		r := res.Reading
		fmt.Fprintf(w, "Heart line:  %s\n", r.HeartLine)
		fmt.Fprintf(w, "Head line:   %s\n", r.HeadLine)
		fmt.Fprintf(w, "Life line:   %s\n", r.LifeLine)
		fmt.Fprintf(w, "Fate line:   %s\n", r.FateLine)
		fmt.Fprintf(w, "Summary:     %s\n\n", r.Summary)
	}
	return failed
}
