package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kdiomande/bankview/model"
)

func accountCommands(app *appInstance) *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "list and manage owned accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := app.session.FetchAccounts(cmd.Context())
			if err != nil {
				return err
			}
			printAccounts(accounts, app)
			return nil
		},
	}

	selectCmd := &cobra.Command{
		Use:   "select <account-number>",
		Short: "put an account in focus for dashboard views",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := app.session.FetchAccounts(cmd.Context())
			if err != nil {
				return err
			}
			for _, account := range accounts {
				if account.AccountNumber == args[0] {
					app.session.SelectAccount(account)
					fmt.Printf("selected account %s\n", account.AccountNumber)
					return nil
				}
			}
			return fmt.Errorf("account %s is not one of your accounts", args[0])
		},
	}

	newCmd := &cobra.Command{
		Use:   "new",
		Short: "open a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := app.session.CreateAccount(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("opened account %s (%s)\n", account.AccountNumber, account.Currency)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <account-number>",
		Short: "show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := app.session.AccountByNumber(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printAccounts([]model.Account{account}, app)
			return nil
		},
	}

	accountsCmd.AddCommand(selectCmd, newCmd, showCmd)
	return accountsCmd
}

func depositCommand(app *appInstance) *cobra.Command {
	var accountNumber, amount, description string

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "deposit into an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if accountNumber == "" {
				selected, ok := app.session.SelectedAccount()
				if !ok {
					return fmt.Errorf("no account selected, pass --account")
				}
				accountNumber = selected.AccountNumber
			}

			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q", amount)
			}

			account, err := app.session.Deposit(cmd.Context(), accountNumber, value, description)
			if err != nil {
				return err
			}
			fmt.Printf("deposited %s %s, balance is now %s\n", value.String(), account.Currency, account.Balance.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&accountNumber, "account", "", "account number (defaults to the selected account)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to deposit")
	cmd.Flags().StringVar(&description, "description", "", "deposit description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func printAccounts(accounts []model.Account, app *appInstance) {
	selectedNumber := ""
	if selected, ok := app.session.SelectedAccount(); ok {
		selectedNumber = selected.AccountNumber
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tBALANCE\tCURRENCY\tOPENED\t")
	for _, account := range accounts {
		marker := ""
		if account.AccountNumber == selectedNumber {
			marker = " *"
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t\n", account.AccountNumber, marker, account.Balance.String(), account.Currency, account.OpeningDate)
	}
	_ = w.Flush()
}
