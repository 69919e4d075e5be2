package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/habiliai/searchchat"
	"github.com/habiliai/searchchat/config"
	"github.com/habiliai/searchchat/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	serve := newServeCmd(flags)

	cmd := &cobra.Command{
		Use:   "searchchat",
		Short: "Chat with an agent that searches the web, arXiv, Wikipedia, Reddit and YouTube",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(".env"); err == nil {
				if err := godotenv.Load(); err != nil {
					return errors.Wrapf(err, "failed to load .env")
				}
			}
			return nil
		},
		RunE:         serve.RunE,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "Agent config file (YAML)")
	cmd.Flags().AddFlagSet(serve.Flags())
	cmd.AddCommand(serve, newChatCmd(flags))

	return cmd
}

func newApp(flags *rootFlags) (*searchchat.Runtime, error) {
	options := []searchchat.Option{}
	if flags.configFile != "" {
		agent, err := config.LoadAgentFromFile(flags.configFile)
		if err != nil {
			return nil, err
		}
		options = append(options, searchchat.WithAgent(agent))
	}

	runtime, err := searchchat.New(options...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to initialize searchchat")
	}

	agent := runtime.Agent()
	runtime.Logger().Debug("agent loaded", "name", agent.Name, "tools", agent.ToolNames())

	return runtime, nil
}

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		os.Exit(1)
	}
}
