package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pg "github.com/predictionguard/go-client"
)

func newFactualityCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "factuality <reference> <text>",
		Short: "Score how well text agrees with a reference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			resp, err := client.Factuality(cmd.Context(), pg.NewFactualityRequest(args[0], args[1]))
			if err != nil {
				return err
			}
			return opts.print(cmd, resp)
		},
	}
}

func newInjectionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "injection <prompt>",
		Short: "Estimate the probability of a prompt injection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			resp, err := client.Injection(cmd.Context(), pg.NewInjectionRequest(args[0], true))
			if err != nil {
				return err
			}
			return opts.print(cmd, resp)
		},
	}
}

func newPIICmd(opts *globalOptions) *cobra.Command {
	var (
		replace bool
		method  string
	)

	cmd := &cobra.Command{
		Use:   "pii <prompt>",
		Short: "Detect and replace personal information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := pg.ReplaceMethod(method)
			switch m {
			case pg.ReplaceRandom, pg.ReplaceMask, pg.ReplaceCategory, pg.ReplaceFake:
			default:
				return fmt.Errorf("invalid --method %q, want random, mask, category or fake", method)
			}

			client, err := opts.client()
			if err != nil {
				return err
			}
			resp, err := client.PII(cmd.Context(), pg.NewPIIRequest(args[0], replace, m))
			if err != nil {
				return err
			}
			return opts.print(cmd, resp)
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", true, "return the prompt with PII replaced")
	cmd.Flags().StringVar(&method, "method", string(pg.ReplaceRandom), "replacement method: random, mask, category or fake")
	return cmd
}

func newToxicityCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toxicity <text>",
		Short: "Score the toxicity of text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			resp, err := client.Toxicity(cmd.Context(), pg.NewToxicityRequest(args[0]))
			if err != nil {
				return err
			}
			return opts.print(cmd, resp)
		},
	}
}
