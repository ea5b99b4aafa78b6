package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	pg "github.com/predictionguard/go-client"
	"github.com/predictionguard/go-client/types"
)

func newModelsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "models [capability]",
		Short: "List available models",
		Long: fmt.Sprintf(`List the models served by Prediction Guard.

An optional capability restricts the list. Known capabilities: %s.`, capabilityList()),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var capability types.Capability
			if len(args) == 1 {
				capability = types.Capability(args[0])
			}

			client, err := opts.client()
			if err != nil {
				return err
			}
			resp, err := client.Models(cmd.Context(), capability)
			if err != nil {
				return err
			}
			return opts.print(cmd, resp.Data)
		},
	}
}

func capabilityList() string {
	names := make([]string, 0, len(types.AllCapabilities))
	for _, c := range types.AllCapabilities {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func newCompleteCmd(opts *globalOptions) *cobra.Command {
	var (
		model       string
		maxTokens   int
		temperature float64
	)

	cmd := &cobra.Command{
		Use:   "complete <prompt>",
		Short: "Generate a text completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			req := pg.NewCompletionRequest(pg.ParseModel(model), args[0]).
				WithMaxTokens(maxTokens).
				WithTemperature(temperature)

			resp, err := client.Completion(cmd.Context(), req)
			if err != nil {
				return err
			}
			return opts.print(cmd, resp)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", pg.ModelNeuralChat7B.String(), "model name")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 100, "maximum tokens to generate")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "sampling temperature")
	return cmd
}

func newEmbedCmd(opts *globalOptions) *cobra.Command {
	var (
		model    string
		image    string
		truncate string
	)

	cmd := &cobra.Command{
		Use:   "embed <text>...",
		Short: "Generate embeddings",
		Long: `Generate one embedding per text argument.

With --image the first input also carries the image. The image is optional:
if it cannot be downloaded a warning is logged and the text is embedded alone.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}

			var img string
			if image != "" {
				img = client.EncodeImageBestEffort(cmd.Context(), image)
			}

			req := pg.NewEmbeddingRequest(pg.ParseModel(model)).AddInput(args[0], img)
			for _, text := range args[1:] {
				req = req.AddInput(text, "")
			}

			switch strings.ToLower(truncate) {
			case "":
			case "left":
				req = req.WithTruncate(pg.TruncateLeft)
			case "right":
				req = req.WithTruncate(pg.TruncateRight)
			default:
				return fmt.Errorf("invalid --truncate %q, want left or right", truncate)
			}

			resp, err := client.Embedding(cmd.Context(), req)
			if err != nil {
				return err
			}
			return opts.print(cmd, resp)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", pg.ModelMultilingualE5LargeInstruct.String(), "model name")
	cmd.Flags().StringVar(&image, "image", "", "URL of an image to embed with the first text")
	cmd.Flags().StringVar(&truncate, "truncate", "", "truncate over-long inputs from the left or right")
	return cmd
}

func newTranslateCmd(opts *globalOptions) *cobra.Command {
	var (
		source     string
		target     string
		thirdParty bool
	)

	cmd := &cobra.Command{
		Use:   "translate <text>",
		Short: "Translate text",
		Long: `Translate text between languages given as ISO 639-3 codes,
for example eng, spa or fra.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			req := pg.NewTranslateRequest(args[0], pg.ParseLanguage(source), pg.ParseLanguage(target), thirdParty)

			resp, err := client.Translate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return opts.print(cmd, resp)
		},
	}

	cmd.Flags().StringVar(&source, "source", pg.LanguageEnglish.String(), "source language code")
	cmd.Flags().StringVar(&target, "target", pg.LanguageSpanish.String(), "target language code")
	cmd.Flags().BoolVar(&thirdParty, "third-party", false, "also consult third-party engines")
	return cmd
}

func newRerankCmd(opts *globalOptions) *cobra.Command {
	var (
		model           string
		returnDocuments bool
	)

	cmd := &cobra.Command{
		Use:   "rerank <query> <document>...",
		Short: "Order documents by relevance to a query",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			req := pg.NewRerankRequest(pg.ParseModel(model), args[0], args[1:], returnDocuments)

			resp, err := client.Rerank(cmd.Context(), req)
			if err != nil {
				return err
			}
			return opts.print(cmd, resp)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", pg.ModelBgeRerankerV2M3.String(), "model name")
	cmd.Flags().BoolVar(&returnDocuments, "return-documents", true, "include document text in results")
	return cmd
}

func newTokenizeCmd(opts *globalOptions) *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "tokenize <text>",
		Short: "Split text into model tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			resp, err := client.Tokenize(cmd.Context(), pg.NewTokenizeRequest(pg.ParseModel(model), args[0]))
			if err != nil {
				return err
			}
			return opts.print(cmd, resp)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", pg.ModelNeuralChat7BV33.String(), "model name")
	return cmd
}
