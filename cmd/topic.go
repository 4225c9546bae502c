package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/fund"
	"github.com/etnz/fund/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `nav topic [-list] [<topic>...]

Show documentation for the given topics, the readme by default. Use '*' for
all topics.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "list the available topics")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := topicDoc(c.list, f.Args()...)
	if err != nil {
		return fail(err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

// topicDoc returns the markdown to show for the requested topics.
// Unknown topics are usage errors naming the available ones.
func topicDoc(list bool, topics ...string) (string, error) {
	all, err := docs.GetAllTopics()
	if err != nil {
		return "", fmt.Errorf("cannot list topics: %w", err)
	}
	if list {
		var b strings.Builder
		b.WriteString("# Topics\n\n")
		for _, topic := range all {
			fmt.Fprintf(&b, "- %s\n", topic)
		}
		return b.String(), nil
	}

	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	for _, topic := range topics {
		if topic != "*" && topic != "readme" && !slices.Contains(all, topic) {
			return "", fmt.Errorf("%w: unknown topic %q, available topics are %s", fund.ErrInvalidInput, topic, strings.Join(all, ", "))
		}
	}
	return docs.GetTopics(topics...)
}
