package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlexG0311/sportzone/internal/config"
	"github.com/AlexG0311/sportzone/internal/printer"
	"github.com/AlexG0311/sportzone/internal/wizard"
)

//go:embed templates/*
var templatesFS embed.FS

// Paths created by Initialize, relative to the target directory.
var (
	ConfigFile = config.DefaultPath
	DraftFile  = filepath.Join("venues", "example", "draft.yml")
	EnvExample = ".env.example"
)

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Template    string
	Permissions os.FileMode
}

var files = []FileInfo{
	{Path: ConfigFile, Template: "templates/sportzone.yml.tmpl", Permissions: 0644},
	{Path: DraftFile, Template: "templates/draft.yml.tmpl", Permissions: 0644},
	{Path: EnvExample, Template: "templates/env.example.tmpl", Permissions: 0644},
}

// Initialize writes a starter sportzone.yml, an example venue draft and an
// .env.example into dir. Existing files are kept unless force is set.
func Initialize(dir string, force bool) error {
	if !force {
		if err := CheckExisting(dir); err != nil {
			return err
		}
	}

	for _, f := range files {
		content, err := templatesFS.ReadFile(f.Template)
		if err != nil {
			return fmt.Errorf("failed to read %s template: %w", f.Path, err)
		}

		target := filepath.Join(dir, f.Path)
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", f.Path, err)
		}
		if force {
			if _, err := os.Stat(target); err == nil {
				printer.Warning("Overwriting existing %s\n", filepath.ToSlash(f.Path))
			}
		}
		if err := os.WriteFile(target, content, f.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
	}

	return validateCreatedFiles(dir)
}

// validateCreatedFiles checks that the written templates load cleanly.
func validateCreatedFiles(dir string) error {
	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if err != nil {
		return fmt.Errorf("failed to read created %s: %w", ConfigFile, err)
	}
	cfg, err := config.Parse(data)
	if err != nil {
		return fmt.Errorf("created %s is not valid: %w", ConfigFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("created %s is not valid: %w", ConfigFile, err)
	}

	if _, err := wizard.LoadDraftFile(filepath.Join(dir, DraftFile)); err != nil {
		return fmt.Errorf("created %s is not valid: %w", DraftFile, err)
	}
	return nil
}

// PrintSuccess prints the success message with created files
func PrintSuccess() {
	printer.Success("Initialized SportZone workspace\n")
	printer.Println("\nCreated:")
	for _, f := range files {
		printer.Printf("  ✓ %s\n", filepath.ToSlash(f.Path))
	}
	printer.Println("\nNext steps:")
	printer.Println("  1. Copy .env.example to .env and keep .env out of version control")
	printer.Println("  2. Run 'sportzone login --email you@example.com'")
	printer.Printf("  3. Put a cover.jpg next to %s and run 'sportzone venue create --from-file %s'\n",
		filepath.ToSlash(DraftFile), filepath.ToSlash(DraftFile))
}
