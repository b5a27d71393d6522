// Command lawtab converts patent legislation documents into the
// ten-column row table and writes it as CSV.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/coolbeans/lawtab/pkg/assemble"
	"github.com/coolbeans/lawtab/pkg/dialect"
	"github.com/coolbeans/lawtab/pkg/htmllaw"
	"github.com/coolbeans/lawtab/pkg/legixml"
	"github.com/coolbeans/lawtab/pkg/rowset"
	"github.com/coolbeans/lawtab/pkg/textacq"
)

var rootCmd = &cobra.Command{
	Use:     "lawtab",
	Short:   "Structure patent legislation into a tabular form",
	Version: "0.3.0",
	Long: `lawtab reads patent statutes and treaties (text, PDF, RTF, HTML or
LEGI XML) and decomposes them into articles, paragraphs and items,
emitting one CSV row per leaf of the hierarchy.`,
}

func main() {
	rootCmd.AddCommand(structureCmd())
	rootCmd.AddCommand(splitCmd())
	rootCmd.AddCommand(hierarchyCmd())
	rootCmd.AddCommand(detectCmd())
	rootCmd.AddCommand(franceCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadTunables resolves the tunables for a command: the YAML file named
// by --config, or the defaults when the flag is empty.
func loadTunables(cmd *cobra.Command) (dialect.Tunables, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return dialect.DefaultTunables(), nil
	}
	return dialect.LoadTunables(path)
}

// writeRows writes the table to the --output path, or to stdout when
// the flag is empty.
func writeRows(cmd *cobra.Command, rows []rowset.Row) error {
	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		return rowset.WriteCSV(os.Stdout, rows)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()
	if err := rowset.WriteCSV(f, rows); err != nil {
		return err
	}
	fmt.Printf("Wrote %d rows to %s\n", len(rows), out)
	return nil
}

// htmlSites routes HTML sources to their site-specific parser. These
// pages carry the hierarchy in markup, so the text pipeline is skipped.
var htmlSites = map[string]func(r io.Reader) ([]rowset.Row, error){
	"eu":         htmllaw.ParseEU,
	"newzealand": htmllaw.ParseNewZealand,
	"germany":    htmllaw.ParseGermany,
	"russia":     htmllaw.ParseRussia,
	"taiwan":     htmllaw.ParseTaiwanEnglish,
	"china":      htmllaw.ParseChina,
}

// htmlRows parses an HTML source with the parser for the given site.
func htmlRows(path, site string) ([]rowset.Row, error) {
	if site == "" {
		site = dialect.DetectCountry(path)
	}
	parse, ok := htmlSites[site]
	if !ok {
		return nil, fmt.Errorf("no html parser for site %q (known: eu, newzealand, germany, russia, taiwan, china)", site)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return parse(f)
}

func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

func structureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "structure <file>",
		Short: "Run the full pipeline on a document and emit CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			startTime := time.Now()

			if isHTML(path) {
				site, _ := cmd.Flags().GetString("site")
				fmt.Print("  1. Parsing html source... ")
				rows, err := htmlRows(path, site)
				if err != nil {
					return err
				}
				fmt.Printf("done (%d rows)\n", len(rows))
				return writeRows(cmd, rows)
			}

			tun, err := loadTunables(cmd)
			if err != nil {
				return err
			}

			fmt.Print("  1. Extracting text... ")
			text, err := textacq.Read(path)
			if err != nil {
				return err
			}
			fmt.Printf("done (%d chars)\n", len(text))

			p := dialect.NewDefaultRegistry(tun).ForPath(path)
			fmt.Printf("  2. Structuring with the %s dialect... ", p.Name())
			rows := assemble.Structure(p, text, tun)
			fmt.Printf("done (%d rows)\n", len(rows))

			fmt.Printf("\nStructured in %v\n", time.Since(startTime))
			return writeRows(cmd, rows)
		},
	}
	cmd.Flags().StringP("output", "o", "", "output CSV path (default stdout)")
	cmd.Flags().StringP("config", "c", "", "YAML tunables file")
	cmd.Flags().String("site", "", "html site parser override (eu, newzealand, germany, russia, taiwan, china)")
	return cmd
}

func splitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <file>",
		Short: "List the article units of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tun, err := loadTunables(cmd)
			if err != nil {
				return err
			}
			text, err := textacq.Read(args[0])
			if err != nil {
				return err
			}

			p := dialect.NewDefaultRegistry(tun).ForPath(args[0])
			units := p.SplitArticles(text)
			fmt.Printf("%s dialect: %d articles\n", p.Name(), len(units))
			for _, u := range units {
				mark := ""
				if u.Deleted {
					mark = " (deleted)"
				}
				title := u.Title
				if title != "" {
					title = "  " + title
				}
				fmt.Printf("  %s%s%s  [%d chars]\n", u.ID, mark, title, len(u.Text))
			}
			return nil
		},
	}
	cmd.Flags().StringP("config", "c", "", "YAML tunables file")
	return cmd
}

func hierarchyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hierarchy <file>",
		Short: "List the structural headings of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tun, err := loadTunables(cmd)
			if err != nil {
				return err
			}
			text, err := textacq.Read(args[0])
			if err != nil {
				return err
			}

			p := dialect.NewDefaultRegistry(tun).ForPath(args[0])
			marks := p.DetectHierarchy(text)
			fmt.Printf("%s dialect: %d headings\n", p.Name(), len(marks))
			for _, m := range marks {
				fmt.Printf("  %-11s @%-8d %s\n", m.Type, m.Pos, m.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringP("config", "c", "", "YAML tunables file")
	return cmd
}

func detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file>",
		Short: "Report how a file path would be routed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			country := dialect.DetectCountry(path)
			if country == "" {
				country = "(unknown)"
			}
			p := dialect.NewDefaultRegistry(dialect.DefaultTunables()).ForPath(path)

			fmt.Printf("country:  %s\n", country)
			fmt.Printf("language: %s\n", dialect.DetectLanguage(path))
			fmt.Printf("format:   %s\n", dialect.DetectFormat(path))
			fmt.Printf("dialect:  %s\n", p.Name())
			return nil
		},
	}
}

func franceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "france <legi-dir>",
		Short: "Parse a French LEGI article tree and emit CSV",
		Long: `Parses the articles of a LEGI database extract (the directory that
contains article/LEGI/ARTI/...) into the row table. The L and R series
can be extracted separately with --filter.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			startTime := time.Now()

			fmt.Print("  1. Parsing LEGI articles... ")
			rows, err := legixml.Parse(args[0], filter)
			if err != nil {
				return err
			}
			fmt.Printf("done (%d rows)\n", len(rows))

			fmt.Printf("\nParsed in %v\n", time.Since(startTime))
			return writeRows(cmd, rows)
		},
	}
	cmd.Flags().StringP("output", "o", "", "output CSV path (default stdout)")
	cmd.Flags().String("filter", "", "article series filter: L or R (default all)")
	return cmd
}
