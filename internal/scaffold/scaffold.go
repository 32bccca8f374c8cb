package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/modforge-labs/modforge/internal/modinfo"
)

const templatesDir = "templates/mod"

// Data holds all template variables available to mod skeleton templates.
type Data struct {
	Name            string // e.g., "planets"
	Title           string // Human-readable mod title
	Author          string // Mod author, may be empty
	Description     string // Short description
	Version         string // e.g., "0.1.0"
	FactorioVersion string // Target game version, e.g., "2.0"
	Date            string // Changelog date, YYYY-MM-DD
}

// Result holds the outcome of a skeleton generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewData creates template data with derived defaults for a mod name.
func NewData(name, author string) *Data {
	title := strings.ReplaceAll(name, "-", " ")
	title = strings.ReplaceAll(title, "_", " ")
	return &Data{
		Name:            name,
		Title:           cases.Title(language.English).String(title),
		Author:          author,
		Description:     fmt.Sprintf("The %s mod.", name),
		Version:         "0.1.0",
		FactorioVersion: "2.0",
		Date:            time.Now().Format("2006-01-02"),
	}
}

// Generate creates a new mod skeleton in outputDir from the embedded
// templates. It refuses a non-empty output directory and validates the
// generated info.json, reporting validation problems as warnings.
func Generate(data *Data, outputDir string) (*Result, error) {
	entries, err := fs.ReadDir(templateFS, templatesDir)
	if err != nil {
		return nil, fmt.Errorf("reading embedded templates: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Check for existing files to prevent accidental overwrites.
	existing, err := os.ReadDir(outputDir)
	if err == nil && len(existing) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	result := &Result{OutputDir: outputDir}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		tmplPath := templatesDir + "/" + entry.Name()
		tmplBytes, err := fs.ReadFile(templateFS, tmplPath)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
		}

		tmpl, err := template.New(entry.Name()).Parse(string(tmplBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", entry.Name(), err)
		}

		// Strip the .tmpl extension for the output filename.
		outName := strings.TrimSuffix(entry.Name(), ".tmpl")
		outPath := filepath.Join(outputDir, outName)
		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, outName)
	}

	// Validate the generated info.json.
	if _, err := modinfo.Load(outputDir); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("generated info.json did not validate: %v", err))
	}

	return result, nil
}
