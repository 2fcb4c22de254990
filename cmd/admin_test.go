package cmd

import (
	"testing"

	"murmur/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewAdminCmd_CommandTree(t *testing.T) {
	adminCmd := NewAdminCmd()

	require.Equal(t, "admin", adminCmd.Use)

	var names []string
	for _, sub := range adminCmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "accounts")
	assert.Contains(t, names, "messages")
}

func TestNewAccountsCmd_Subcommands(t *testing.T) {
	accountsCmd := newAccountsCmd()

	var names []string
	for _, sub := range accountsCmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "create")
	assert.Contains(t, names, "list")
}

func TestNewMessagesCmd_Subcommands(t *testing.T) {
	messagesCmd := newMessagesCmd()

	var names []string
	for _, sub := range messagesCmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "export")
}

func TestAccountsCreate_RequiresTwoArgs(t *testing.T) {
	createCmd := newAccountsCreateCmd()

	err := createCmd.Args(createCmd, []string{"bob"})
	assert.Error(t, err)

	err = createCmd.Args(createCmd, []string{"bob", "pass1234"})
	assert.NoError(t, err)
}

func TestRedactAccounts_DropsPasswords(t *testing.T) {
	accounts := []core.Account{
		{ID: 1, Username: "bob", Password: "pass1234"},
		{ID: 2, Username: "ann", Password: "hunter22"},
	}

	redacted := redactAccounts(accounts)

	require.Len(t, redacted, 2)
	assert.Equal(t, int64(1), redacted[0].ID)
	assert.Equal(t, "bob", redacted[0].Username)
	assert.Equal(t, "ann", redacted[1].Username)
}

func TestExportDocument_YAMLRoundTrip(t *testing.T) {
	doc := exportDocument{
		ExportedAt: "2026-01-02T03:04:05Z",
		Count:      1,
		Messages: []core.Message{
			{ID: 1, PostedBy: 7, Text: "hello", PostedAtEpoch: 1700000000},
		},
	}

	data, err := yaml.Marshal(doc)
	require.NoError(t, err)

	var got exportDocument
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, 1, got.Count)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello", got.Messages[0].Text)
}
