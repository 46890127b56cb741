package cmd

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/binfs/binfs/store"
	"github.com/binfs/binfs/vfs"
)

// maxSeedFilesPerDir caps how many files seed puts in one directory.
const (
	maxSeedFilesPerDir = 100
	// one year directory, 12 months and 365 days
	maxSeedFiles = (1 + 12 + 365) * maxSeedFilesPerDir
)

// NewSeedCmd creates and returns the seed subcommand for the binfs CLI.
// It writes a randomly generated document for testing.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a test document with a randomized directory structure",
		Long: `Generate a JSON document for testing binfs.

Files are spread over a YYYY/MM/DD directory structure, with most files at
the day level. Each file holds a single UUID line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := generateSeed(fileCount)
			if err != nil {
				return err
			}
			if err := store.Save(cmd.Context(), store.NewFile(outputPath), doc); err != nil {
				return err
			}
			if verbose {
				p := newPrinter(cmd.OutOrStdout())
				stats := doc.Root.Stats()
				p.ok("wrote %s", outputPath)
				p.field("Files", stats.Files)
				p.field("Directories", stats.Dirs)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to the output JSON file (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "n", 1000, "Number of files to generate")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func randInt(n int64) int64 {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		panic(err)
	}
	return v.Int64()
}

// generateSeed builds a document holding exactly count files.
func generateSeed(count int) (*vfs.Document, error) {
	if count < 0 || count > maxSeedFiles {
		return nil, fmt.Errorf("file count must be between 0 and %d, got %d", maxSeedFiles, count)
	}

	uuidPool := make([]string, 50)
	for i := range uuidPool {
		uuidPool[i] = uuid.New().String()
	}

	doc := vfs.NewDocument()
	dirFileCounts := make(map[*vfs.Dir]int)
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for created := 0; created < count; {
		fileTime := baseTime.AddDate(0, 0, int(randInt(365)))
		segs := []string{
			fmt.Sprintf("%04d", fileTime.Year()),
			fmt.Sprintf("%02d", fileTime.Month()),
			fmt.Sprintf("%02d", fileTime.Day()),
		}
		switch level := randInt(100); {
		case level < 10: // 10% at year level
			segs = segs[:1]
		case level < 25: // 15% at month level
			segs = segs[:2]
		}

		dir, err := ensureDir(doc.Root, segs)
		if err != nil {
			return nil, err
		}
		if dirFileCounts[dir] >= maxSeedFilesPerDir {
			continue
		}

		ext := ".json"
		if randInt(2) == 1 {
			ext = ".txt"
		}
		name := fmt.Sprintf("%08x%s", randInt(0xFFFFFFFF), ext)
		if _, exists := dir.Get(name); exists {
			continue
		}
		if _, err := dir.Create(name, uuidPool[randInt(int64(len(uuidPool)))]+"\n"); err != nil {
			return nil, err
		}
		dirFileCounts[dir]++
		created++
	}
	return doc, nil
}

// ensureDir walks segs below root, creating missing directories.
func ensureDir(root *vfs.Dir, segs []string) (*vfs.Dir, error) {
	cur := root
	for _, seg := range segs {
		next, err := cur.Dir(seg)
		if errors.Is(err, vfs.ErrNotExist) {
			next, err = cur.Mkdir(seg)
		}
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
