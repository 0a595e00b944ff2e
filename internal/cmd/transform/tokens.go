package transform

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mlang-cli/internal/view"
	"github.com/open-cli-collective/mlang-cli/pkg/mlang"
)

const maxRawWidth = 60

type tokensOptions struct {
	commonOptions
}

type tokenJSON struct {
	Position int                `json:"position"`
	Type     string             `json:"type"`
	Name     string             `json:"name,omitempty"`
	Attrs    map[string]*string `json:"attrs,omitempty"`
	Raw      string             `json:"raw"`
}

// NewCmdTokens creates the tokens command.
func NewCmdTokens() *cobra.Command {
	opts := &tokensOptions{}

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Show how markup is tokenized",
		Long: `Print the token stream the marker passes work on: text runs, open and
close tags, and comment, script and style blocks that are never scanned
for markers.`,
		Example: `  # Show tokens as a table
  mlang tokens page.html

  # Full token details as JSON
  mlang tokens page.html -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.bind(cmd)
			return runTokens(fileArg(args, 0), opts)
		},
	}

	return cmd
}

func runTokens(file string, opts *tokensOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	renderer, err := opts.renderer(cfg)
	if err != nil {
		return err
	}

	input, err := opts.readInput(file)
	if err != nil {
		return err
	}

	tokens := mlang.Tokenize(input)
	renderer.Verbose("%d tokens in %d bytes", len(tokens), len(input))

	if renderer.Format() == view.FormatJSON {
		result := make([]tokenJSON, 0, len(tokens))
		for _, tok := range tokens {
			result = append(result, tokenJSON{
				Position: tok.Position,
				Type:     tok.Type.String(),
				Name:     tok.Name,
				Attrs:    tok.Attrs.Map(),
				Raw:      tok.Raw,
			})
		}
		return renderer.RenderJSON(result)
	}

	headers := []string{"POS", "TYPE", "NAME", "RAW"}
	var rows [][]string
	for _, tok := range tokens {
		rows = append(rows, []string{
			strconv.Itoa(tok.Position),
			tok.Type.String(),
			tok.Name,
			view.Truncate(strconv.Quote(tok.Raw), maxRawWidth),
		})
	}
	renderer.RenderTable(headers, rows)
	return nil
}
