package cli

import (
	"context"
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tagcloud/tagcloud/pkg/pipeline"
	"github.com/tagcloud/tagcloud/pkg/wordfreq"
)

// wordsFlags holds the command-line flags for the words command.
type wordsFlags struct {
	top           int
	minLength     int
	keepStopWords bool
	stopWords     []string
	keepNumbers   bool
	noCache       bool
	interactive   bool
	json          bool
}

// wordsCommand creates the words command.
func (c *CLI) wordsCommand() *cobra.Command {
	var flags wordsFlags

	cmd := &cobra.Command{
		Use:   "words FILE",
		Short: "Print the ranked word list of a text file",
		Long: `Words counts the words of a file the way render does and prints them by
rank. Use "-" to read from standard input.`,
		Example: `  tagcloud words --top 20 notes.txt
  tagcloud words --interactive talk.md
  tagcloud words --json - < README`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			flags.apply(cmd, &opts)
			if err := opts.ValidateForWords(); err != nil {
				return err
			}
			return c.runWords(cmd.Context(), args[0], flags, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flags.top, "top", "n", 0, "show at most this many words (default from max_words)")
	f.IntVar(&flags.minLength, "min-length", 0, "ignore words shorter than this")
	f.BoolVar(&flags.keepStopWords, "keep-stop-words", false, "keep common English words")
	f.StringSliceVar(&flags.stopWords, "stop-words", nil, "additional words to ignore")
	f.BoolVar(&flags.keepNumbers, "keep-numbers", false, "keep words made only of digits")
	f.BoolVar(&flags.noCache, "no-cache", false, "disable the local cache")
	f.BoolVarP(&flags.interactive, "interactive", "i", false, "browse the list interactively")
	f.BoolVar(&flags.json, "json", false, "print the list as JSON")
	cmd.MarkFlagsMutuallyExclusive("interactive", "json")

	return cmd
}

func (f *wordsFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	set := cmd.Flags().Changed
	if set("top") {
		opts.MaxWords = f.top
	}
	if set("min-length") {
		opts.MinLength = pipeline.MinLengthFor(f.minLength)
	}
	if set("keep-stop-words") {
		opts.KeepStopWords = f.keepStopWords
	}
	if set("stop-words") {
		opts.ExtraStopWords = append(opts.ExtraStopWords, f.stopWords...)
	}
	if set("keep-numbers") {
		opts.KeepNumbers = f.keepNumbers
	}
}

// WordsOutput is the JSON shape printed by "words --json".
type WordsOutput struct {
	Words  []wordfreq.WordCount `json:"words"`
	Unique int                  `json:"unique"`
}

func (c *CLI) runWords(ctx context.Context, input string, flags wordsFlags, opts pipeline.Options) error {
	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	data, err := readInput(input)
	if err != nil {
		return err
	}
	words, unique, hit, err := runner.CountWithCacheInfo(ctx, data, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return context.Canceled
	}

	switch {
	case flags.json:
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(WordsOutput{Words: words, Unique: unique})
	case flags.interactive:
		return browseWords(input, words)
	}

	if len(words) == 0 {
		printWarning("No words found in %s", input)
		return nil
	}
	fmt.Fprintln(c.out, wordTable(words, 0, len(words), nil).Render())
	printCountStats(len(words), unique, hit)
	return nil
}

func browseWords(input string, words []wordfreq.WordCount) error {
	m := NewWordListModel("Words in "+input, words)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	fm, ok := final.(WordListModel)
	if !ok || fm.Selected == nil {
		printDetail("No selection made")
		return nil
	}
	printInfo("%s %s", StyleHighlight.Render(fm.Selected.Text),
		StyleDim.Render(fmt.Sprintf("rank %d · frequency %d", fm.Cursor+1, fm.Selected.Frequency)))
	return nil
}
