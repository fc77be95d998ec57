package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	root := &cobra.Command{Use: "deskhive", Short: "Support desk client"}
	create := &cobra.Command{Use: "create", Short: "Create a ticket"}
	create.Flags().String("contact", "", "Contact info")
	hidden := &cobra.Command{Use: "secret", Hidden: true}
	root.AddCommand(create, hidden)
	AddHelpJSONFlag(root)

	doc := Describe(root)

	assert.Equal(t, "deskhive", doc.Name)
	assert.Equal(t, "Support desk client", doc.Description)
	require.Len(t, doc.Subcommands, 1)

	sub := doc.Subcommands[0]
	assert.Equal(t, "create", sub.Name)
	require.Len(t, sub.Flags, 1)
	assert.Equal(t, "contact", sub.Flags[0].Name)
	assert.Equal(t, "string", sub.Flags[0].Type)

	for _, f := range doc.Flags {
		assert.NotEqual(t, "help-json", f.Name)
		assert.NotEqual(t, "help", f.Name)
	}
}

func TestResolveCommand(t *testing.T) {
	root := &cobra.Command{Use: "deskhive"}
	kb := &cobra.Command{Use: "kb"}
	list := &cobra.Command{Use: "list", Aliases: []string{"ls"}}
	kb.AddCommand(list)
	root.AddCommand(kb)

	assert.Same(t, root, resolveCommand(root, nil))
	assert.Same(t, kb, resolveCommand(root, []string{"kb"}))
	assert.Same(t, list, resolveCommand(root, []string{"kb", "ls"}))
	assert.Same(t, root, resolveCommand(root, []string{"unknown", "list"}))
}
