package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minjae/job-coach/internal/assistant"
	"github.com/minjae/job-coach/internal/config"
	"github.com/minjae/job-coach/internal/llm"
)

var assistantCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Manage the remote coaching assistant",
}

var assistantShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted assistant id",
	RunE: func(_ *cobra.Command, _ []string) error {
		_, store, err := identityStore()
		if err != nil {
			return err
		}
		id, ok := store.Load()
		if !ok {
			fmt.Println("no assistant id persisted")
			return nil
		}
		fmt.Println(id)
		return nil
	},
}

var assistantCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new remote assistant and persist its id",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, store, err := identityStore()
		if err != nil {
			return err
		}
		id, err := store.Create(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var assistantDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the remote assistant and remove the persisted id",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, store, err := identityStore()
		if err != nil {
			return err
		}
		return store.Delete(cmd.Context())
	},
}

func init() {
	assistantCmd.AddCommand(assistantShowCmd, assistantCreateCmd, assistantDeleteCmd)
	rootCmd.AddCommand(assistantCmd)
}

func identityStore() (*config.Config, *assistant.IdentityStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	modelCfg := llm.DefaultConfig()
	client, err := llm.NewOpenAIClient(modelCfg, cfg.APIKey)
	if err != nil {
		return nil, nil, err
	}

	return cfg, assistant.NewIdentityStore(client, cfg.IdentityFile, modelCfg.AssistantName), nil
}
