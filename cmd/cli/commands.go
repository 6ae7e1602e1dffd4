package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/goscheduler/internal/adapter/http/dto"
	"github.com/iho/goscheduler/internal/adapter/http/handler"
	"github.com/iho/goscheduler/internal/domain"
	"github.com/iho/goscheduler/internal/infrastructure/clock"
	"github.com/iho/goscheduler/internal/usecase"
)

func newScheduleCmd(opts *options) *cobra.Command {
	var req dto.ScheduleTransferRequest
	var amount string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule a transfer",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			req.Amount = decimal.NewNullDecimal(parsed)

			var resp dto.TransferResponse
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, "/api/v1/transfers", req, &resp); err != nil {
				return err
			}

			return printJSON(opts.out, resp)
		},
	}

	cmd.Flags().StringVar(&req.SourceAccount, "from", "", "Source account (10 digits)")
	cmd.Flags().StringVar(&req.TargetAccount, "to", "", "Target account (10 digits)")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.Flags().StringVar(&req.TransferDate, "date", "", "Transfer date (YYYY-MM-DD)")
	for _, name := range []string{"from", "to", "amount", "date"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scheduled transfers",
		RunE: func(cmd *cobra.Command, args []string) error {
			var transfers []dto.TransferResponse
			path := fmt.Sprintf("/api/v1/transfers?limit=%d&offset=%d", limit, offset)

			resp, err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, path, nil, &transfers)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(opts.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFROM\tTO\tAMOUNT\tFEE\tPOLICY\tTRANSFER DATE")
			for _, t := range transfers {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.SourceAccount, t.TargetAccount, t.Amount, t.Fee, t.FeePolicy, t.TransferDate)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(opts.out, "\n%d of %s transfers\n", len(transfers), resp.Header.Get(handler.TotalCountHeader))

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultPageSize, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	return cmd
}

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one scheduled transfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.TransferResponse
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/transfers/"+args[0], nil, &resp); err != nil {
				return err
			}

			return printJSON(opts.out, resp)
		},
	}
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a scheduled transfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodDelete, "/api/v1/transfers/"+args[0], nil, nil); err != nil {
				return err
			}

			fmt.Fprintf(opts.out, "deleted %s\n", args[0])
			return nil
		},
	}
}

func newClearCmd(opts *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every scheduled transfer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear transfers without --yes")
			}

			resp, err := newAPIClient(opts).do(cmd.Context(), http.MethodDelete, "/api/v1/transfers", nil, nil)
			if err != nil {
				return err
			}

			fmt.Fprintf(opts.out, "deleted %s transfers\n", resp.Header.Get("X-Deleted-Count"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion of all transfers")

	return cmd
}

func newQuoteCmd(opts *options) *cobra.Command {
	var amount, date, asOf string
	var local bool

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote the fee for a transfer scheduled today",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			req := dto.FeeQuoteRequest{Amount: decimal.NewNullDecimal(parsed), TransferDate: date}

			if !local {
				var resp dto.FeeQuoteResponse
				if _, err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, "/api/v1/fees/quote", req, &resp); err != nil {
					return err
				}
				return printJSON(opts.out, resp)
			}

			var clk usecase.Clock = clock.New(time.Local)
			if asOf != "" {
				day, err := domain.ParseDate(asOf)
				if err != nil {
					return fmt.Errorf("invalid --as-of %q: %w", asOf, err)
				}
				clk = clock.Fixed(day)
			}

			input, err := req.ToUseCaseInput()
			if err != nil {
				return err
			}

			quote, err := usecase.NewFeeUseCase(clk, nil).QuoteFee(cmd.Context(), input)
			if err != nil {
				return err
			}

			return printJSON(opts.out, dto.FeeQuoteFromUseCase(quote))
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.Flags().StringVar(&date, "date", "", "Transfer date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&local, "local", false, "Compute locally instead of calling the API")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Scheduling date for --local quotes (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newTiersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Print the fee tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTiers(opts.out, domain.FeePolicies())
		},
	}
}

func printTiers(w io.Writer, policies []domain.FeePolicy) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POLICY\tDAYS\tFEE")
	for _, p := range policies {
		r := p.Range()
		fmt.Fprintf(tw, "%s\t%d-%d\t%s\n", p.Name(), r.MinDays, r.MaxDays, p.Description())
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
