package transform

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mlang-cli/internal/view"
	"github.com/open-cli-collective/mlang-cli/pkg/mlang"
)

type renderOptions struct {
	commonOptions
	markdown     *bool // nil means detect from the file extension
	fallbackSpan bool
	splitBlocks  bool
	page         bool
}

type renderResult struct {
	Markup  string `json:"markup"`
	Changed bool   `json:"changed"`
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}
	var markdown bool

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Highlight language markers for editing",
		Long: `Replace {mlang xx} and {mlang} markers with non-editable marker elements.

Markup is read from the file argument or stdin. Content that already
holds rendered markers is printed unchanged. Markdown input (--markdown or
a .md file) is converted to HTML first.`,
		Example: `  # Render a file
  mlang render page.html

  # Render from stdin
  echo '<p>{mlang de}Hallo{mlang}</p>' | mlang render

  # Write a standalone page with the highlight CSS
  mlang render page.md --page > preview.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.bind(cmd)
			if cmd.Flags().Changed("markdown") {
				opts.markdown = &markdown
			}
			return runRender(fileArg(args, 0), opts)
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Treat input as markdown (default: detect from file extension)")
	cmd.Flags().BoolVar(&opts.fallbackSpan, "fallback-span", false, "Migrate legacy <span class=\"multilang\"> elements to fallback markers")
	cmd.Flags().BoolVar(&opts.splitBlocks, "split-blocks", false, "Close language blocks at block element boundaries")
	cmd.Flags().BoolVar(&opts.page, "page", false, "Wrap the result in a standalone HTML page")

	return cmd
}

func runRender(file string, opts *renderOptions) error {
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

	useMarkdown := isMarkdownFile(file)
	if opts.markdown != nil {
		useMarkdown = *opts.markdown
	}
	if useMarkdown {
		input, err = mlang.FromMarkdown([]byte(input))
		if err != nil {
			return fmt.Errorf("failed to convert markdown: %w", err)
		}
		renderer.Verbose("converted markdown to %d bytes of HTML", len(input))
	}

	renderOpts := cfg.RenderOptions()
	if opts.fallbackSpan {
		renderOpts.FallbackSpan = true
	}
	if opts.splitBlocks {
		renderOpts.SplitAtBlocks = true
	}

	if mlang.IsRendered(input) {
		renderer.Verbose("input already holds rendered markers, leaving it unchanged")
	}
	output := mlang.Render(input, renderOpts)

	if opts.page {
		output, err = standalonePage(output, cfg.CSS())
		if err != nil {
			return err
		}
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(renderResult{Markup: output, Changed: output != input})
	}
	renderer.RenderMarkup(output)
	return nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
{{- if .CSS}}
<style>
{{.CSS}}
</style>
{{- end}}
</head>
<body>
{{.Body}}
</body>
</html>
`))

// standalonePage wraps rendered markup in an HTML document with the
// highlight CSS.
func standalonePage(body, css string) (string, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		CSS  template.CSS
		Body template.HTML
	}{
		CSS:  template.CSS(css),
		Body: template.HTML(body),
	})
	if err != nil {
		return "", fmt.Errorf("failed to build page: %w", err)
	}
	return buf.String(), nil
}
