package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tldr-summary/internal/usecase/summary"
)

func newSummarizeCommand(s *session) *cobra.Command {
	var (
		prompt string
		url    string
		file   string
	)
	cmd := &cobra.Command{
		Use:   "summarize [text...]",
		Short: "Summarize an article",
		Long: `Summarize article text given as arguments, read from a file, read from
stdin (--file -), or fetched from a URL.

Examples:
  tldr summarize --url https://example.com/post
  tldr summarize --file article.txt --prompt "Summarize in one sentence."
  cat article.txt | tldr summarize --file -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")
			if file != "" {
				body, err := readContent(s.opts.In, file)
				if err != nil {
					return err
				}
				content = body
			}

			a, err := s.application(cmd.Context())
			if err != nil {
				return err
			}
			res, err := a.Service.Summarize(cmd.Context(), summary.SummarizeRequest{
				Instruction: prompt,
				Content:     content,
				URL:         url,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", summary.KindOf(err), err)
			}

			if s.jsonOutput {
				return s.printJSON(res)
			}
			s.printf("%s\n", res.HTML)
			return nil
		},
	}
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "summary instruction (default from TLDR_DEFAULT_PROMPT)")
	cmd.Flags().StringVarP(&url, "url", "u", "", "fetch the article from this URL")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the article from a file, or - for stdin")
	return cmd
}

func readContent(stdin io.Reader, file string) (string, error) {
	var (
		body []byte
		err  error
	)
	if file == "-" {
		body, err = io.ReadAll(stdin)
	} else {
		// #nosec G304 -- path is supplied by the operator on the command line
		body, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("read article: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", errors.New("read article: input is empty")
	}
	return string(body), nil
}
