package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kdiomande/bankview/model"
)

func transferCommands(app *appInstance) *cobra.Command {
	var from, to, amount, description string

	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "transfer money to another account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" {
				selected, ok := app.session.SelectedAccount()
				if !ok {
					return fmt.Errorf("no account selected, pass --from")
				}
				from = selected.AccountNumber
			}

			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q", amount)
			}

			transaction, err := app.session.Transfer(cmd.Context(), from, to, value, description)
			if err != nil {
				return err
			}
			fmt.Printf("transferred %s from %s to %s\n", transaction.Amount.String(), transaction.SenderAccountNumber, transaction.ReceiverAccountNumber)
			return nil
		},
	}
	transferCmd.Flags().StringVar(&from, "from", "", "sender account number (defaults to the selected account)")
	transferCmd.Flags().StringVar(&to, "to", "", "receiver account number")
	transferCmd.Flags().StringVar(&amount, "amount", "", "amount to transfer")
	transferCmd.Flags().StringVar(&description, "description", "", "transfer description")
	_ = transferCmd.MarkFlagRequired("to")
	_ = transferCmd.MarkFlagRequired("amount")

	return transferCmd
}

func transferListCommand(app *appInstance) *cobra.Command {
	var direction string
	listCmd := &cobra.Command{
		Use:   "transfers [account-number]",
		Short: "list transfers for an account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountNumber := ""
			if len(args) == 1 {
				accountNumber = args[0]
			} else if selected, ok := app.session.SelectedAccount(); ok {
				accountNumber = selected.AccountNumber
			} else {
				return fmt.Errorf("no account selected, pass an account number")
			}

			var transactions []model.Transaction
			switch direction {
			case "sent":
				transactions = app.session.OutgoingTransfers(cmd.Context(), accountNumber)
			case "received":
				transactions = app.session.IncomingTransfers(cmd.Context(), accountNumber)
			default:
				transactions = app.session.TransfersForAccount(cmd.Context(), accountNumber)
			}

			if err := app.session.LastListError(); err != nil {
				fmt.Fprintln(os.Stderr, "warning: transfer list may be incomplete:", err)
			}
			printTransactions(transactions)
			return nil
		},
	}
	listCmd.Flags().StringVar(&direction, "direction", "all", "sent, received or all")

	return listCmd
}

func printTransactions(transactions []model.Transaction) {
	if len(transactions) == 0 {
		fmt.Println("no transactions")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FROM\tTO\tAMOUNT\tTYPE\tDATE\tDESCRIPTION\t")
	for _, t := range transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n", t.SenderAccountNumber, t.ReceiverAccountNumber, t.Amount.String(), t.Type, t.Timestamp, t.Description)
	}
	_ = w.Flush()
}
