// Package cmd provides command-line interface commands for Murmur.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"murmur/config"
	"murmur/core"
	"murmur/service"
	"murmur/storage"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// CLI output formatters
var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
)

// Global flags for admin commands
var (
	outputJSON bool
	noColor    bool
	quiet      bool
)

// defaultTimeout bounds every CLI operation
const defaultTimeout = 30 * time.Second

// adminEnv bundles the dependencies an admin subcommand needs.
type adminEnv struct {
	AccountStorage *storage.SQLiteAccountStorage
	AccountService *service.AccountServiceImpl
	MessageService *service.MessageServiceImpl
}

// initAdminEnv initializes storage and services for a CLI invocation.
// The returned cleanup closes the database.
func initAdminEnv() (*adminEnv, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	sugar := logger.Sugar()

	sqlite, err := storage.NewSQLite(cfg.GetSQLitePath(), sugar)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize SQLite: %w", err)
	}

	accountStorage := storage.NewSQLiteAccountStorage(sqlite, sugar)
	messageStorage := storage.NewSQLiteMessageStorage(sqlite, sugar)
	accountService := service.NewAccountService(accountStorage, sugar)
	messageService := service.NewMessageService(messageStorage, accountService, sugar)

	cleanup := func() {
		sqlite.Close()
		_ = logger.Sync()
	}

	return &adminEnv{
		AccountStorage: accountStorage,
		AccountService: accountService,
		MessageService: messageService,
	}, cleanup, nil
}

// NewAdminCmd creates the root admin command with all subcommands.
func NewAdminCmd() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Administer the Murmur backend",
		Long: `Administer the Murmur backend directly against its database.

Covers account creation and inspection plus message listing and export,
without going through the HTTP API.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	adminCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output in JSON format")
	adminCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	adminCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress non-essential output")

	adminCmd.AddCommand(newAccountsCmd())
	adminCmd.AddCommand(newMessagesCmd())

	return adminCmd
}

// newAccountsCmd creates the 'accounts' command group
func newAccountsCmd() *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}

	accountsCmd.AddCommand(newAccountsCreateCmd())
	accountsCmd.AddCommand(newAccountsListCmd())

	return accountsCmd
}

// newAccountsCreateCmd creates the 'accounts create' subcommand
func newAccountsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <username> <password>",
		Short: "Register a new account",
		Long:  "Register a new account, applying the same validation rules as the HTTP API.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			env, cleanup, err := initAdminEnv()
			if err != nil {
				return err
			}
			defer cleanup()

			account, err := env.AccountService.Register(ctx, &core.Account{
				Username: args[0],
				Password: args[1],
			})
			if err != nil {
				errorColor.Fprintf(os.Stderr, "Failed to create account: %v\n", err)
				return err
			}

			if outputJSON {
				return outputAsJSON(account)
			}

			successColor.Printf("Account created\n")
			fmt.Printf("  ID:       %d\n", account.ID)
			fmt.Printf("  Username: %s\n", account.Username)
			return nil
		},
	}
}

// newAccountsListCmd creates the 'accounts list' subcommand
func newAccountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			env, cleanup, err := initAdminEnv()
			if err != nil {
				return err
			}
			defer cleanup()

			accounts, err := env.AccountStorage.ListAccounts(ctx)
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			if outputJSON {
				return outputAsJSON(redactAccounts(accounts))
			}

			renderAccountsTable(accounts)
			return nil
		},
	}
}

// newMessagesCmd creates the 'messages' command group
func newMessagesCmd() *cobra.Command {
	messagesCmd := &cobra.Command{
		Use:   "messages",
		Short: "Inspect and export messages",
	}

	messagesCmd.AddCommand(newMessagesListCmd())
	messagesCmd.AddCommand(newMessagesExportCmd())

	return messagesCmd
}

// newMessagesListCmd creates the 'messages list' subcommand
func newMessagesListCmd() *cobra.Command {
	var accountID int64

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List messages",
		Long:    "Display all messages in insertion order, optionally filtered by account.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			env, cleanup, err := initAdminEnv()
			if err != nil {
				return err
			}
			defer cleanup()

			var messages []core.Message
			if accountID > 0 {
				messages, err = env.MessageService.GetAllByAuthor(ctx, accountID)
			} else {
				messages, err = env.MessageService.GetAll(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list messages: %w", err)
			}

			if outputJSON {
				return outputAsJSON(messages)
			}

			renderMessagesTable(messages)
			return nil
		},
	}

	cmd.Flags().Int64Var(&accountID, "account", 0, "Only messages posted by this account ID")

	return cmd
}

// newMessagesExportCmd creates the 'messages export' subcommand
func newMessagesExportCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all messages to a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			env, cleanup, err := initAdminEnv()
			if err != nil {
				return err
			}
			defer cleanup()

			var s *spinner.Spinner
			if !quiet && !outputJSON {
				s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				s.Suffix = " Exporting messages..."
				s.Start()
			}

			messages, err := env.MessageService.GetAll(ctx)
			if err != nil {
				if s != nil {
					s.Stop()
				}
				return fmt.Errorf("failed to read messages: %w", err)
			}

			data, err := yaml.Marshal(exportDocument{
				ExportedAt: time.Now().UTC().Format(time.RFC3339),
				Count:      len(messages),
				Messages:   messages,
			})
			if err != nil {
				if s != nil {
					s.Stop()
				}
				return fmt.Errorf("failed to marshal messages: %w", err)
			}

			if err := os.WriteFile(outputFile, data, 0644); err != nil {
				if s != nil {
					s.Stop()
				}
				return fmt.Errorf("failed to write %s: %w", outputFile, err)
			}

			if s != nil {
				s.Stop()
			}
			if !quiet {
				successColor.Printf("Exported %d messages to %s\n", len(messages), outputFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "messages.yaml", "Destination file")

	return cmd
}

// exportDocument is the YAML export envelope
type exportDocument struct {
	ExportedAt string         `yaml:"exported_at"`
	Count      int            `yaml:"count"`
	Messages   []core.Message `yaml:"messages"`
}

// redactedAccount hides passwords in CLI output
type redactedAccount struct {
	ID       int64  `json:"account_id"`
	Username string `json:"username"`
}

func redactAccounts(accounts []core.Account) []redactedAccount {
	out := make([]redactedAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, redactedAccount{ID: a.ID, Username: a.Username})
	}
	return out
}

// renderAccountsTable prints accounts in a fixed-width table
func renderAccountsTable(accounts []core.Account) {
	if len(accounts) == 0 {
		warningColor.Println("No accounts found")
		return
	}

	headerColor.Printf("%-10s %s\n", "ID", "USERNAME")
	for _, a := range accounts {
		fmt.Printf("%-10d %s\n", a.ID, a.Username)
	}
	infoColor.Printf("\n%d account(s)\n", len(accounts))
}

// renderMessagesTable prints messages in a fixed-width table
func renderMessagesTable(messages []core.Message) {
	if len(messages) == 0 {
		warningColor.Println("No messages found")
		return
	}

	headerColor.Printf("%-10s %-10s %-12s %s\n", "ID", "POSTED_BY", "POSTED_AT", "TEXT")
	for _, m := range messages {
		text := m.Text
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		fmt.Printf("%-10d %-10d %-12d %s\n", m.ID, m.PostedBy, m.PostedAtEpoch, text)
	}
	infoColor.Printf("\n%d message(s)\n", len(messages))
}

// outputAsJSON writes data to stdout as indented JSON
func outputAsJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
