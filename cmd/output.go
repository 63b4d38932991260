package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/ghaggin/newsgate/internal/form"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

type printer struct {
	out io.Writer
	err io.Writer
}

func newPrinter(cmd *cobra.Command) *printer {
	return &printer{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
}

func (p *printer) success(format string, args ...any) {
	color.New(color.FgGreen).Fprint(p.out, "✓ ")
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) info(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) failure(msg string) {
	color.New(color.FgRed, color.Bold).Fprintf(p.err, "Erro: %s\n", msg)
}

// fields prints each failing form field on its own line.
func (p *printer) fields(errs form.Errors) {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		color.New(color.FgYellow).Fprintf(p.err, "  %s: ", name)
		fmt.Fprintln(p.err, errs[name])
	}
}

func (p *printer) table(header []string, rows [][]string) error {
	table := tablewriter.NewTable(p.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
