package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/catalog"
	"github.com/shyamganesh19k-droid/FileExtractor/internal/exporter"
	"github.com/shyamganesh19k-droid/FileExtractor/internal/importer"
	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

var (
	outputDir       string
	projectID       string
	description     string
	projectTemplate string
	customerID      string
	branchID        string
	typeValue       string
	csvPath         string
	noRecord        bool
)

var transformCmd = &cobra.Command{
	Use:   "transform <file.xlsx>",
	Short: "Transform a workbook into the cleaned two-sheet workbook",
	Long: `Transform reads every sheet of a work-order workbook and writes
cleaned_<name>.xlsx with Work Order Details and Summary Details.

Project ID and description are filled from the Pricing Summary sheet when not given.`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	f := transformCmd.Flags()
	f.StringVarP(&outputDir, "output", "o", "", "output directory (default: next to the input file)")
	f.StringVar(&projectID, "project-id", "", "project id (default: from Pricing Summary)")
	f.StringVar(&description, "description", "", "project description (default: from Pricing Summary)")
	f.StringVar(&projectTemplate, "template", "", "project template id")
	f.StringVar(&customerID, "customer", "", "customer id")
	f.StringVar(&branchID, "branch", "", "branch id")
	f.StringVar(&typeValue, "type", "", "task type for Summary Details")
	f.StringVar(&csvPath, "csv", "", "also write Work Order Details rows to this CSV file")
	f.BoolVar(&noRecord, "no-record", false, "do not record the run in the database")
}

// readWorkbookArg 校验扩展名并读取文件
func readWorkbookArg(path string) ([]byte, error) {
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return nil, fmt.Errorf("%w: %s is not an .xlsx file", model.ErrInputRejected, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func runTransform(cmd *cobra.Command, args []string) error {
	input := args[0]
	data, err := readWorkbookArg(input)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	pass := model.Passthrough{
		ProjectID:       strings.TrimSpace(projectID),
		Description:     strings.TrimSpace(description),
		ProjectTemplate: strings.TrimSpace(projectTemplate),
		CustomerID:      strings.TrimSpace(customerID),
		BranchID:        strings.TrimSpace(branchID),
	}
	taskType := strings.TrimSpace(typeValue)
	if err := cat.Validate(pass.ProjectTemplate, pass.CustomerID, pass.BranchID, taskType); err != nil {
		return err
	}

	opts := []importer.Option{
		importer.WithSearchRows(cfg.Extract.MetadataSearchRows, cfg.Extract.SheetSearchRows),
	}
	if !noRecord {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		opts = append(opts, importer.WithRecorder(st))
	}
	coordinator := importer.NewCoordinator(logger, opts...)

	result, err := coordinator.Transform(cmd.Context(), importer.TransformOptions{
		Filename:    filepath.Base(input),
		Data:        data,
		Passthrough: pass,
		TypeValue:   taskType,
		Username:    "cli",
		AutoFill:    true,
		Progress: func(e importer.ProgressEvent) {
			logger.Debug("progress", "type", e.Type, "sheet", e.Sheet, "message", e.Message)
		},
	})
	if err != nil {
		return err
	}

	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outPath := filepath.Join(dir, result.Filename)
	if err := os.WriteFile(outPath, result.Output, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	if csvPath != "" {
		if err := writeCSV(csvPath, result.Lines); err != nil {
			return err
		}
	}

	if pass.ProjectID == "" {
		pass.ProjectID = result.ProjectInfo.ProjectID
	}
	if pass.Description == "" {
		pass.Description = result.ProjectInfo.Description
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderReport(outPath, pass, result))
	return nil
}

func writeCSV(path string, lines []model.LineItemRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := exporter.WriteLineItemsCSV(f, lines); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
