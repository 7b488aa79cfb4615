package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/coolbeans/formex/pkg/corpus"
	"github.com/coolbeans/formex/pkg/discover"
	"github.com/coolbeans/formex/pkg/download"
	"github.com/coolbeans/formex/pkg/formex"
	"github.com/coolbeans/formex/pkg/locations"
	"github.com/coolbeans/formex/pkg/tokenize"
	"github.com/coolbeans/formex/pkg/watch"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "formex",
		Short: "Official Journal corpus builder",
		Long: `Formex builds plain-text corpora from the Formex XML editions of the
Official Journal of the European Union.

It downloads the per-year archives from the EU open-data portal, parses
the metadata and body files, classifies each act, and exports the corpus
as full text plus a metadata table.`,
		Version: version,
	}

	rootCmd.AddCommand(downloadCmd())
	rootCmd.AddCommand(yearsCmd())
	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(tokensCmd())
	rootCmd.AddCommand(placesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func downloadCmd() *cobra.Command {
	var (
		dataRoot  string
		language  string
		yearFrom  int
		yearTo    int
		rateLimit time.Duration
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download journal editions from the EU open-data portal",
		Long: `Download the Formex archives for a language edition.

Each year arrives as one ZIP containing one ZIP per journal issue; both
levels are unpacked into the data directory. Already-downloaded years are
skipped.

Example:
  formex download --lang EN --from 2010 --to 2015`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := download.DefaultConfig()
			config.DataRoot = dataRoot
			config.RateLimit = rateLimit

			downloader, err := download.NewDownloader(config)
			if err != nil {
				return err
			}

			years, err := downloader.ListAvailableYears(language)
			if err != nil {
				return err
			}

			for _, year := range years {
				if (yearFrom > 0 && year < yearFrom) || (yearTo > 0 && year > yearTo) {
					continue
				}

				fmt.Printf("Downloading %s %d...\n", strings.ToUpper(language), year)
				result, err := downloader.DownloadYear(language, year)
				if err != nil {
					fmt.Fprintf(os.Stderr, "  failed: %v\n", err)
					continue
				}
				if result.Skipped {
					fmt.Printf("  already present, extracted to %s\n", result.ExtractedTo)
				} else {
					fmt.Printf("  %d bytes, extracted to %s\n", result.BytesWritten, result.ExtractedTo)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataRoot, "data", "data", "Data directory")
	cmd.Flags().StringVar(&language, "lang", "EN", "Journal language edition")
	cmd.Flags().IntVar(&yearFrom, "from", 0, "First year to download (0 = earliest)")
	cmd.Flags().IntVar(&yearTo, "to", 0, "Last year to download (0 = latest)")
	cmd.Flags().DurationVar(&rateLimit, "rate-limit", 3*time.Second, "Minimum interval between requests")
	return cmd
}

func yearsCmd() *cobra.Command {
	var (
		dataRoot string
		language string
	)

	cmd := &cobra.Command{
		Use:   "years",
		Short: "List the years available for a language edition",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := download.DefaultConfig()
			config.DataRoot = dataRoot

			downloader, err := download.NewDownloader(config)
			if err != nil {
				return err
			}

			years, err := downloader.ListAvailableYears(language)
			if err != nil {
				return err
			}

			downloaded := make(map[int]bool)
			for _, year := range downloader.Manifest().Years(strings.ToUpper(language)) {
				downloaded[year] = true
			}

			for _, year := range years {
				marker := " "
				if downloaded[year] {
					marker = "*"
				}
				fmt.Printf("%s %d\n", marker, year)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataRoot, "data", "data", "Data directory")
	cmd.Flags().StringVar(&language, "lang", "EN", "Journal language edition")
	return cmd
}

func buildCmd() *cobra.Command {
	var (
		dataRoot       string
		outputDir      string
		workers        int
		classifierPath string
		onlyDecisions  bool
		onlyCFSP       bool
		verbose        bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a plain-text corpus from downloaded journal files",
		Long: `Build a corpus from the metadata files below the data directory (or
listed in a manifest file) and export it as full text plus a metadata
table.

Example:
  formex build --data data/EN --out corpus --only-cfsp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metaPaths, err := discover.ListMetaFiles(dataRoot)
			if err != nil {
				return err
			}
			if len(metaPaths) == 0 {
				return fmt.Errorf("no metadata files found under %s", dataRoot)
			}
			fmt.Printf("Found %d metadata files\n", len(metaPaths))

			buildConfig := corpus.DefaultBuildConfig()
			buildConfig.Workers = workers
			if classifierPath != "" {
				classifierConfig, err := formex.LoadClassifierConfig(classifierPath)
				if err != nil {
					return err
				}
				buildConfig.Classifier = formex.NewClassifier(classifierConfig)
			}

			built, report, err := corpus.Build(discover.Pairs(metaPaths), buildConfig)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
			fmt.Printf("Built %d documents (%d failed, %d duplicates)\n",
				report.Succeeded, report.Failed, len(report.Duplicates))
			if verbose {
				for _, failure := range report.Failures {
					fmt.Fprintf(os.Stderr, "  %s: %v\n", failure.Path, failure.Err)
				}
			}

			if onlyDecisions {
				built.Filter(func(document *corpus.Document) bool {
					return document.Meta.Flags.Decision
				})
			}
			if onlyCFSP {
				built.Filter(func(document *corpus.Document) bool {
					return document.Meta.Flags.CFSP
				})
			}
			fmt.Printf("Exporting %d documents\n", built.Len())

			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			textPath := filepath.Join(outputDir, "all_txt.txt")
			textFile, err := os.Create(textPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", textPath, err)
			}
			if err := built.ExportFullText(textFile); err != nil {
				textFile.Close()
				return err
			}
			if err := textFile.Close(); err != nil {
				return err
			}

			statsPath := filepath.Join(outputDir, "stats.csv")
			statsFile, err := os.Create(statsPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", statsPath, err)
			}
			if err := built.ExportMetadataTable(statsFile); err != nil {
				statsFile.Close()
				return err
			}
			if err := statsFile.Close(); err != nil {
				return err
			}

			fmt.Printf("Wrote %s and %s\n", textPath, statsPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataRoot, "data", "data", "Data directory or manifest file")
	cmd.Flags().StringVar(&outputDir, "out", "corpus", "Output directory")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel parse workers (0 = one per CPU)")
	cmd.Flags().StringVar(&classifierPath, "classifier", "", "Classifier configuration (YAML)")
	cmd.Flags().BoolVar(&onlyDecisions, "only-decisions", false, "Keep only decisions")
	cmd.Flags().BoolVar(&onlyCFSP, "only-cfsp", false, "Keep only common foreign and security policy acts")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Print per-file failures")
	return cmd
}

func watchCmd() *cobra.Command {
	var (
		dataRoot string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the data directory and report new metadata files",
		Long: `Watch the data directory for new or rewritten metadata files and print
each settled batch. Useful while archives are being unpacked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			watcher, err := watch.New(watch.Config{
				Root:     dataRoot,
				Debounce: debounce,
				OnChange: func(paths []string) {
					fmt.Printf("%d changed files:\n", len(paths))
					for _, path := range paths {
						fmt.Printf("  %s\n", path)
					}
				},
			})
			if err != nil {
				return err
			}
			defer watcher.Close()

			fmt.Printf("Watching %s (Ctrl-C to stop)\n", dataRoot)
			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt)
			<-interrupt
			return nil
		},
	}

	cmd.Flags().StringVar(&dataRoot, "data", "data", "Data directory")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before reporting changes")
	return cmd
}

func tokensCmd() *cobra.Command {
	var (
		top       int
		stopwords bool
	)

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the most frequent word tokens of a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			options := tokenize.DefaultOptions()
			options.FilterStopwords = stopwords
			frequencies, err := tokenize.Frequencies(string(data), options)
			if err != nil {
				return err
			}

			type entry struct {
				word  string
				count int
			}
			entries := make([]entry, 0, len(frequencies))
			for word, count := range frequencies {
				entries = append(entries, entry{word, count})
			}
			sort.Slice(entries, func(i, j int) bool {
				if entries[i].count != entries[j].count {
					return entries[i].count > entries[j].count
				}
				return entries[i].word < entries[j].word
			})

			if top > len(entries) {
				top = len(entries)
			}
			for _, entry := range entries[:top] {
				fmt.Printf("%6d  %s\n", entry.count, entry.word)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 20, "Number of tokens to print")
	cmd.Flags().BoolVar(&stopwords, "filter-stopwords", true, "Drop common English function words")
	return cmd
}

func placesCmd() *cobra.Command {
	var gazetteerPath string

	cmd := &cobra.Command{
		Use:   "places [file]",
		Short: "Count geographic references in a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			gazetteer := locations.DefaultGazetteer()
			if gazetteerPath != "" {
				gazetteer, err = locations.LoadGazetteer(gazetteerPath)
				if err != nil {
					return err
				}
			}
			matcher, err := locations.NewMatcher(gazetteer)
			if err != nil {
				return err
			}

			counts := matcher.Count(string(data))
			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			sort.Slice(names, func(i, j int) bool {
				if counts[names[i]] != counts[names[j]] {
					return counts[names[i]] > counts[names[j]]
				}
				return names[i] < names[j]
			})

			for _, name := range names {
				fmt.Printf("%6d  %s\n", counts[name], name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&gazetteerPath, "gazetteer", "", "Gazetteer CSV (name,alias|alias)")
	return cmd
}
