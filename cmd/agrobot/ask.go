package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Andrela2025/Agro-Conecta/internal/service"
)

func askCmd(opts *globalOptions) *cobra.Command {
	var showIntent bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer one question",
		Example: `  agrobot ask "¿cuál es el café más caro?"
  agrobot ask --name Ana hola`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			answer := a.Router.Answer(strings.Join(args, " "), opts.name)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, answer.Text)
			if showIntent {
				fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("(%s, %.2f)", answer.Intent, answer.Confidence)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showIntent, "show-intent", false, "print the detected intent and confidence")
	return cmd
}

func chatCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Ask questions interactively, one per line",
		Long:  `Read questions from standard input until EOF or "salir".`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Agro-Conecta"), mutedStyle.Render("(escribe \"salir\" para terminar)"))

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				if cmd.Context().Err() != nil {
					return nil
				}
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				switch strings.ToLower(line) {
				case "":
					continue
				case "salir", "exit", "quit":
					return nil
				}
				fmt.Fprintln(out, botStyle.Render(a.Router.Answer(line, opts.name).Text))
			}
		},
	}
}

func varietiesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "varieties",
		Short: "List coffee varieties with their producers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			varieties := a.Store.UniqueVarieties()
			if len(varieties) == 0 {
				fmt.Fprintln(out, service.EmptyDataAnswer("variedades"))
				return nil
			}
			for _, v := range varieties {
				fmt.Fprintln(out, titleStyle.Render(v))
				for _, p := range a.Store.ProducersFor(v) {
					fmt.Fprintln(out, "  "+p)
				}
			}
			return nil
		},
	}
}
