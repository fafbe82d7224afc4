package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/painel/painel/internal/config"
	"github.com/painel/painel/internal/domain/appointment"
	"github.com/painel/painel/internal/domain/outreach"
	"github.com/painel/painel/internal/domain/report"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the appointment view without starting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			specialties, _ := cmd.Flags().GetStringSlice("specialty")
			months, _ := cmd.Flags().GetInt("months")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			ctx := context.Background()
			store, cleanup, err := buildStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			engine := buildEngine(cfg, store, logger)
			snap, err := engine.Load(ctx)
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "csv":
				q := appointment.Query{Specialties: specialties}
				if from != "" {
					d, ok := appointment.ParseDate(from)
					if !ok {
						return fmt.Errorf("invalid --from date %q", from)
					}
					q.From = d
				}
				if to != "" {
					d, ok := appointment.ParseDate(to)
					if !ok {
						return fmt.Errorf("invalid --to date %q", to)
					}
					q.To = d
				}
				return report.WriteCSV(w, appointment.Filter(snap.Records, q))
			case "pdf":
				if len(specialties) != 1 {
					return fmt.Errorf("--format pdf requires exactly one --specialty")
				}
				if months <= 0 {
					months = cfg.OverdueMonths
				}
				summaries := outreach.SelectOverdue(snap.Records, specialties[0], months, time.Now())
				return outreach.WritePDF(w, summaries, specialties[0], months)
			default:
				return fmt.Errorf("--format must be csv or pdf, got %q", format)
			}
		},
	}

	cmd.Flags().String("format", "csv", "Export format: csv or pdf")
	cmd.Flags().String("out", "", "Output file (default stdout)")
	cmd.Flags().String("from", "", "Start date (inclusive)")
	cmd.Flags().String("to", "", "End date (inclusive)")
	cmd.Flags().StringSlice("specialty", nil, "Specialty filter (repeatable)")
	cmd.Flags().Int("months", 0, "Months without return for the pdf target list")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the backing store with sample appointment rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			store, cleanup, err := buildStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			header := []string{"CPF", "Nome", "Telefone", "Especialidade", "Medico", "Data", "Status"}
			rows := [][]string{
				{"11111111111", "Ana Souza", "(11) 99999-0001", "Cardiologia", "Dr. Almeida", "2024-01-15", ""},
				{"11111111111", "Ana Souza", "(11) 99999-0001", "Cardiologia", "Dr. Almeida", "2024-06-20", "Reagendou"},
				{"22222222222", "Bruno Lima", "(11) 99999-0002", "Dermatologia", "Dra. Braga", "2024-02-03", ""},
				{"33333333333", "Clara Nunes", "(21) 98888-0003", "Cardiologia", "Dr. Almeida", "2023-03-10", ""},
				{"44444444444", "Diego Alves", "(31) 97777-0004", "Ortopedia", "Dr. Castro", "2023-11-28", "Não atendeu (retornar contato)"},
			}
			if err := store.ReplaceAll(ctx, header, rows); err != nil {
				return err
			}
			fmt.Printf("Seeded %d appointment rows.\n", len(rows))
			return nil
		},
	}
}
