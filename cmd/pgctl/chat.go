package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	pg "github.com/predictionguard/go-client"
)

type chatOptions struct {
	model          string
	system         string
	maxTokens      int
	temperature    float64
	image          string
	imageType      string
	stream         bool
	async          bool
	blockInjection bool
	piiMethod      string
	factuality     bool
	toxicity       bool
}

func newChatCmd(opts *globalOptions) *cobra.Command {
	co := &chatOptions{}

	cmd := &cobra.Command{
		Use:   "chat <prompt>",
		Short: "Send a chat completion",
		Long: `Send a chat completion with one user message.

With --image the message carries the downloaded image and a vision model
should be selected. With --stream the reply is printed as it is generated;
--async does the same through a channel.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			if co.image != "" {
				return runVisionChat(cmd, opts, co, client, args[0])
			}

			req := co.textRequest(args[0])
			switch {
			case co.async:
				return runAsyncChat(cmd.Context(), cmd.OutOrStdout(), client, req)
			case co.stream:
				return runStreamChat(cmd.Context(), cmd.OutOrStdout(), client, req)
			}

			resp, err := client.Chat(cmd.Context(), req)
			if err != nil {
				return err
			}
			return opts.print(cmd, resp)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&co.model, "model", "m", pg.ModelHermes3Llama318B.String(), "model name")
	f.StringVar(&co.system, "system", "", "system message sent before the prompt")
	f.IntVar(&co.maxTokens, "max-tokens", 100, "maximum tokens to generate")
	f.Float64Var(&co.temperature, "temperature", 0, "sampling temperature")
	f.StringVar(&co.image, "image", "", "URL of an image to send with the prompt")
	f.StringVar(&co.imageType, "image-type", "image/jpeg", "MIME type of --image")
	f.BoolVar(&co.stream, "stream", false, "print the reply as it is generated")
	f.BoolVar(&co.async, "async", false, "stream through a channel; implies --stream")
	f.BoolVar(&co.blockInjection, "block-injection", false, "reject prompts that look like prompt injection")
	f.StringVar(&co.piiMethod, "pii", "", "replace PII in the prompt: random, mask, category or fake")
	f.BoolVar(&co.factuality, "factuality", false, "check the reply for factuality")
	f.BoolVar(&co.toxicity, "toxicity", false, "check the reply for toxicity")
	cmd.MarkFlagsMutuallyExclusive("image", "stream")
	cmd.MarkFlagsMutuallyExclusive("image", "async")

	return cmd
}

func (co *chatOptions) textRequest(prompt string) pg.ChatRequest[pg.Message] {
	req := pg.NewChatRequest[pg.Message](pg.ParseModel(co.model)).
		WithMaxTokens(co.maxTokens).
		WithTemperature(co.temperature)
	if co.system != "" {
		req = req.AddMessage(pg.NewMessage(pg.RoleSystem, co.system))
	}
	req = req.AddMessage(pg.NewMessage(pg.RoleUser, prompt))

	if co.blockInjection || co.piiMethod != "" {
		req = req.WithInput(co.blockInjection, co.piiOption())
	}
	if co.factuality || co.toxicity {
		req = req.WithOutput(co.factuality, co.toxicity)
	}
	return req
}

func (co *chatOptions) piiOption() *pg.PIIOption {
	if co.piiMethod == "" {
		return nil
	}
	return &pg.PIIOption{Mode: "replace", Method: pg.ReplaceMethod(strings.ToLower(co.piiMethod))}
}

func runVisionChat(cmd *cobra.Command, opts *globalOptions, co *chatOptions, client *pg.Client, prompt string) error {
	ctx := cmd.Context()

	img, err := client.EncodeImage(ctx, co.image)
	if err != nil {
		return err
	}

	req := pg.NewChatRequest[pg.VisionMessage](pg.ParseModel(co.model)).
		AddMessage(pg.NewVisionMessage(pg.RoleUser, prompt, pg.ImageDataURI(co.imageType, img))).
		WithMaxTokens(co.maxTokens).
		WithTemperature(co.temperature)

	resp, err := client.ChatVision(ctx, req)
	if err != nil {
		return err
	}
	return opts.print(cmd, resp)
}

var streamColor = color.New(color.FgCyan)

func runStreamChat(ctx context.Context, w io.Writer, client *pg.Client, req pg.ChatRequest[pg.Message]) error {
	_, err := client.ChatEvents(ctx, req, func(text string) {
		streamColor.Fprint(w, text)
	})
	fmt.Fprintln(w)
	return err
}

func runAsyncChat(ctx context.Context, w io.Writer, client *pg.Client, req pg.ChatRequest[pg.Message]) error {
	ch := make(chan string, 16)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := client.ChatEventsAsync(ctx, req, ch)
		return err
	})
	g.Go(func() error {
		for {
			select {
			case text := <-ch:
				if text == pg.StreamStop {
					fmt.Fprintln(w)
					return nil
				}
				streamColor.Fprint(w, text)
			case <-ctx.Done():
				return nil
			}
		}
	})
	return g.Wait()
}
