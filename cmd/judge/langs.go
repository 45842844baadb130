package main

import (
	"context"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v3"
)

func langsCommand() *cli.Command {
	return &cli.Command{
		Name:  "langs",
		Usage: "list the configured languages and check their toolchains",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"ID", "Name", "Compiled", "Toolchain", "Message"})
			for _, tag := range e.langs.Tags() {
				a, _ := e.langs.Get(tag)
				health, msg := "OKAY", ""
				if err := e.langs.CheckToolchain(tag); err != nil {
					health, msg = "ERROR", err.Error()
				}
				t.AppendRow(table.Row{a.Tag(), a.Name(), a.Compiles(), health, msg})
			}

			if e.noColor {
				t.SetStyle(table.StyleLight)
			} else {
				t.SetStyle(table.StyleColoredDark)
				t.SetColumnConfigs([]table.ColumnConfig{{
					Name:  "Toolchain",
					Align: text.AlignCenter,
					Transformer: text.Transformer(func(v any) string {
						if v == "OKAY" {
							return text.FgHiGreen.Sprint(v)
						}
						return text.FgHiRed.Sprint(v)
					}),
				}})
			}
			t.Render()
			return nil
		},
	}
}
