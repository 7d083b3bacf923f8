package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/aurelia-dev/aurelia/internal/ingest"
	"github.com/aurelia-dev/aurelia/internal/storage"
)

var quietFlag bool

// IndexDirName is the per-repository directory holding the chunk database.
const IndexDirName = ".aurelia"

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Ingest a repository into classified files and source chunks",
	Long: `Index walks a repository, classifies every file, decomposes Python
sources into top-level chunks (module code, classes, functions), and
stores the result in <repo>/.aurelia/index.db.

Files that fail to parse are skipped with a warning; the rest of the
repository is still indexed.

Examples:
  # Index the current directory
  aurelia index

  # Index a specific repository
  aurelia index /path/to/repo

  # Index without a progress bar
  aurelia index --quiet
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runIndex(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling indexing...")
		cancel()
	}()

	repoPath := "."
	if len(args) == 1 {
		repoPath = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	walker, err := ingest.NewRepoWalker(repoPath, ingest.WithIgnoreGlobs(cfg.Paths.Ignore))
	if err != nil {
		return err
	}

	if !quietFlag {
		log.Printf("Walking repository %s...\n", walker.Root())
	}

	files, err := walker.Walk(ctx)
	if err != nil {
		return err
	}

	indexDir := filepath.Join(walker.Root(), IndexDirName)
	if err := os.MkdirAll(indexDir, 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	writer, err := storage.NewChunkWriter(filepath.Join(indexDir, "index.db"))
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := writer.ReplaceInventory(files); err != nil {
		return err
	}

	var parseFiles []ingest.FileInfo
	counts := map[ingest.FileClassification]int{}
	for _, f := range files {
		counts[f.Classification]++
		if f.Classification == ingest.ClassParse {
			parseFiles = append(parseFiles, f)
		}
	}

	var bar *progressbar.ProgressBar
	if !quietFlag && len(parseFiles) > 0 {
		bar = progressbar.NewOptions(len(parseFiles),
			progressbar.OptionSetDescription("Extracting chunks"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files/s"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)
	}

	extractor := ingest.NewExtractor()
	totalChunks := 0
	failedFiles := 0

	for _, f := range parseFiles {
		if err := ctx.Err(); err != nil {
			return err
		}

		source, err := os.ReadFile(f.AbsolutePath)
		if err != nil {
			log.Printf("Warning: failed to read %s: %v\n", f.RelativePath, err)
			failedFiles++
			continue
		}

		chunks, err := extractor.Extract(ctx, string(source))
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			// Parse failures are fatal for the file, not the run.
			log.Printf("Warning: failed to parse %s: %v\n", f.RelativePath, err)
			failedFiles++
			continue
		}

		if err := writer.WriteFileChunks(f.RelativePath, chunks); err != nil {
			return err
		}
		totalChunks += len(chunks)

		if bar != nil {
			bar.Add(1)
		}
	}

	if !quietFlag {
		fmt.Printf("Indexed %d files (%d parse, %d markdown, %d config, %d skip)\n",
			len(files), counts[ingest.ClassParse], counts[ingest.ClassMarkdown],
			counts[ingest.ClassConfig], counts[ingest.ClassSkip])
		fmt.Printf("Extracted %d chunks from %d Python files (%d failed)\n",
			totalChunks, len(parseFiles)-failedFiles, failedFiles)
	}
	return nil
}
