// Package main is the entry point for the pdfword CLI, which converts
// the first page of a PDF file into a Word document.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	pdfword "github.com/Priyanshi-Data-Art/PDF-WORD"
)

var rootCmd = &cobra.Command{
	Use:   "pdfword [source.pdf] [destination.docx]",
	Short: "Convert the first page of a PDF into a Word document",
	Long: `pdfword reads the first page of a PDF file and writes a Word document
that mirrors its layout: paragraph alignment and bold runs are preserved,
and ruled tables are rebuilt with their merged cells.

Table contents can additionally be exported to an Excel workbook with
--tables-xlsx.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	src := viper.GetString("source")
	dst := viper.GetString("destination")
	if len(args) > 0 {
		src = args[0]
	}
	if len(args) > 1 {
		dst = args[1]
	}

	opts := pdfword.DefaultOptions()
	opts.FontName = viper.GetString("font")
	opts.FontSize = viper.GetFloat64("size")
	opts.CenterTolerance = viper.GetFloat64("center-tol")
	opts.LineTolerance = viper.GetFloat64("line-tol")
	opts.TableTolerance = viper.GetFloat64("table-tol")
	opts.TablesXLSX = viper.GetString("tables-xlsx")
	if widths := viper.GetStringSlice("col-widths"); len(widths) > 0 {
		parsed := make([]float64, 0, len(widths))
		for _, w := range widths {
			var cm float64
			if _, err := fmt.Sscanf(w, "%g", &cm); err != nil {
				return fmt.Errorf("invalid column width %q: %w", w, err)
			}
			parsed = append(parsed, cm)
		}
		opts.ColumnWidthsCm = parsed
	}

	result, err := pdfword.Convert(src, dst, opts)
	if err != nil {
		return fmt.Errorf("converting %s: %w", src, err)
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "wrote %d paragraph(s) and %d table(s)\n",
			result.Paragraphs, result.Tables)
		if result.XLSXPath != "" {
			fmt.Fprintf(os.Stderr, "exported tables to %s\n", result.XLSXPath)
		}
	}
	fmt.Println(result.SavedPath)
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfword.yaml or ~/.config/pdfword/config.yaml)")

	flags := rootCmd.Flags()
	flags.String("source", "django_assignment.pdf", "source PDF when no positional argument is given")
	flags.String("destination", "word_doc.docx", "destination document when no positional argument is given")
	flags.String("font", "Times New Roman", "font applied to every run")
	flags.Float64("size", 11, "font size in points")
	flags.Float64("center-tol", 20, "distance from the page center within which a line counts as centered")
	flags.Float64("line-tol", 3, "vertical tolerance when grouping characters into lines")
	flags.Float64("table-tol", 2, "vertical tolerance when deciding a line belongs to a table")
	flags.StringSlice("col-widths", nil, "table column widths in centimeters")
	flags.String("tables-xlsx", "", "also export detected tables to this Excel workbook")
	flags.BoolP("verbose", "v", false, "print conversion details to stderr")

	for _, name := range []string{
		"source", "destination", "font", "size",
		"center-tol", "line-tol", "table-tol",
		"col-widths", "tables-xlsx", "verbose",
	} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfword")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfword"))
		}
	}

	viper.SetEnvPrefix("PDFWORD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
