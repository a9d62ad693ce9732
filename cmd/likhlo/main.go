// Command likhlo is the maintenance entry point for the Likhlo local
// store: it opens the database, brings the schema up to date and exposes
// export, import and trash housekeeping.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/likhlo/likhlo/internal/config"
	"github.com/likhlo/likhlo/internal/db"
	"github.com/likhlo/likhlo/internal/export"
	"github.com/likhlo/likhlo/internal/logging"
	"github.com/likhlo/likhlo/internal/notes"
)

// Version is set at build time.
var Version = "0.1.0"

// app wires the composition root: the lazy store handle is created here
// and injected into everything that needs it.
type app struct {
	cfg   config.Config
	store *db.Lazy
	notes *notes.Service
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logging.Init(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	store := db.NewLazy(func() (*db.DB, error) {
		return db.Open(cfg.DataDir, cfg.DatabaseFile)
	})
	repo := db.NewRepository(store)
	return &app{
		cfg:   cfg,
		store: store,
		notes: notes.NewService(repo),
	}, nil
}

func (a *app) close() {
	a.store.Close()
}

func main() {
	cmd := &cli.Command{
		Name:    "likhlo",
		Usage:   "Local-first notes with folders, colors, tags and a soft-delete trash",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "likhlo.yaml",
				Sources: cli.EnvVars("LIKHLO_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show note and folder counts per partition",
				Action: runStats,
			},
			{
				Name:   "export",
				Usage:  "Write the bulk JSON export and one Markdown file per note",
				Action: runExport,
			},
			{
				Name:      "import",
				Usage:     "Create notes from Markdown files",
				ArgsUsage: "<file.md> [more.md ...]",
				Action:    runImport,
			},
			{
				Name:   "empty-trash",
				Usage:  "Permanently delete every trashed note",
				Action: runEmptyTrash,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logging.Error("command failed", err)
		os.Exit(1)
	}
}

func runStats(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd.String("config"))
	if err != nil {
		return err
	}
	defer a.close()

	active, err := a.notes.ActiveNotes()
	if err != nil {
		return err
	}
	archived, err := a.notes.ArchivedNotes()
	if err != nil {
		return err
	}
	trashed, err := a.notes.TrashedNotes()
	if err != nil {
		return err
	}
	folders, err := a.notes.Folders()
	if err != nil {
		return err
	}

	fmt.Printf("active:   %d\n", len(active))
	fmt.Printf("archived: %d\n", len(archived))
	fmt.Printf("trashed:  %d\n", len(trashed))
	fmt.Printf("folders:  %d\n", len(folders))
	return nil
}

func runExport(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd.String("config"))
	if err != nil {
		return err
	}
	defer a.close()

	svc := export.NewService(a.notes)
	bulk, err := svc.ExportAll(a.cfg.ExportDir)
	if err != nil {
		return err
	}
	files, err := svc.ExportMarkdownFiles(filepath.Join(a.cfg.ExportDir, "markdown"))
	if err != nil {
		return err
	}
	fmt.Printf("exported %d notes to %s (%d bytes) and %s\n",
		bulk.NoteCount, bulk.FilePath, bulk.SizeBytes, files.FilePath)
	return nil
}

func runImport(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("import needs at least one markdown file")
	}
	a, err := newApp(cmd.String("config"))
	if err != nil {
		return err
	}
	defer a.close()

	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		n, err := a.notes.ImportMarkdown(title, string(src))
		if err != nil {
			return err
		}
		fmt.Printf("imported %s as note %s\n", path, n.ID)
	}
	return nil
}

func runEmptyTrash(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd.String("config"))
	if err != nil {
		return err
	}
	defer a.close()

	count, err := a.notes.EmptyTrash()
	if err != nil {
		return err
	}
	fmt.Printf("permanently deleted %d notes\n", count)
	return nil
}
