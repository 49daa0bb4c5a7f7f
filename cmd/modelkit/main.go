package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/sleepstars/modelkit/clients"
	"github.com/sleepstars/modelkit/internal/config"
	"github.com/sleepstars/modelkit/internal/logger"
	"github.com/sleepstars/modelkit/models"
)

type options struct {
	Config   string `long:"config" description:"Path to the client configuration file"`
	Model    string `long:"model" description:"Model identifier (overrides config)"`
	APIBase  string `long:"api-base" description:"API base URL (overrides config)"`
	Prompt   string `long:"prompt" required:"true" description:"Prompt (or chat message) to send"`
	Chat     bool   `long:"chat" description:"Send the prompt as a single-turn chat message"`
	Stream   bool   `long:"stream" description:"Stream the response"`
	LogLevel string `long:"log.level" default:"info" description:"Log level" choice:"debug" choice:"info" choice:"warn" choice:"error"`

	MaxTokens   *int     `long:"max-tokens" description:"Override the max_tokens default"`
	Temperature *float64 `long:"temperature" description:"Override the temperature default"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(os.Args[1:]); err != nil {
		if flagErr, ok := err.(*flags.Error); ok && flagErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var cfg *config.ClientConfig
	if opts.Config != "" {
		loaded, err := config.LoadConfig(opts.Config)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	} else {
		cfg = &config.ClientConfig{}
	}
	if opts.Model != "" {
		cfg.Model = opts.Model
	}
	if opts.APIBase != "" {
		cfg.APIBase = opts.APIBase
	}
	if cfg.Model == "" {
		fmt.Fprintln(os.Stderr, "a model is required (--model or config file)")
		os.Exit(1)
	}

	level := opts.LogLevel
	if cfg.Log.Level != "" && opts.LogLevel == "info" {
		level = cfg.Log.Level
	}
	logger.InitLogger(logger.ParseLevel(level), "modelkit", cfg.Log.File)

	client := clients.NewClient(cfg.APIKey, cfg.Model,
		clients.WithBaseURL(cfg.APIBase),
		clients.WithKeyFile(cfg.KeyFile),
		clients.WithDefaults(cfg.Defaults),
	)

	params := models.CompletionParams{
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}

	ctx := context.Background()
	var err error
	switch {
	case opts.Chat && opts.Stream:
		err = streamChat(ctx, client, opts.Prompt)
	case opts.Chat:
		err = runChat(ctx, client, opts.Prompt)
	case opts.Stream:
		err = streamCompletion(ctx, client, opts.Prompt, params)
	default:
		err = runCompletion(ctx, client, opts.Prompt, params)
	}
	if err != nil {
		logger.GetLogger().WithError(err).Error("request failed")
		os.Exit(1)
	}
}

func runCompletion(ctx context.Context, client *clients.Client, prompt string, params models.CompletionParams) error {
	completion, err := client.CompletePrompt(ctx, prompt, params)
	if err != nil {
		return err
	}
	for _, choice := range completion.Choices {
		fmt.Println(choice.Text)
	}
	return nil
}

func streamCompletion(ctx context.Context, client *clients.Client, prompt string, params models.CompletionParams) error {
	err := client.CompletePromptStreamFunc(ctx, prompt, params, func(index int, completion *models.Completion) error {
		for _, choice := range completion.Choices {
			fmt.Print(choice.Text)
		}
		return nil
	})
	fmt.Println()
	return err
}

func runChat(ctx context.Context, client *clients.Client, prompt string) error {
	chat, err := client.ChatComplete(ctx, []models.ChatMessage{{Role: "user", Content: prompt}})
	if err != nil {
		return err
	}
	for _, choice := range chat.Choices {
		fmt.Println(choice.Message.Content)
	}
	return nil
}

func streamChat(ctx context.Context, client *clients.Client, prompt string) error {
	messages := []models.ChatMessage{{Role: "user", Content: prompt}}
	err := client.ChatCompleteStreamFunc(ctx, messages, func(index int, chunk *models.ChatCompletionChunk) error {
		for _, choice := range chunk.Choices {
			fmt.Print(choice.Delta.Content)
		}
		return nil
	})
	fmt.Println()
	return err
}
