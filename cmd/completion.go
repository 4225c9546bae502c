package cmd

import (
	"flag"

	"github.com/etnz/fund/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors are the value predictors of flags, by name. Other flags predict nothing.
var flagPredictors = map[string]complete.Predictor{
	"config":    predict.Files("*"),
	"data":      predict.Dirs("*"),
	"log-level": predict.Set{"debug", "info", "warn", "error"},
	"o":         predict.Files("*"),
	"layout":    predict.Files("*.html"),
}

// Completion returns the shell completion of the nav command.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(flag.CommandLine),
	}
	var names predict.Set
	for _, e := range commands {
		fs := flag.NewFlagSet(e.cmd.Name(), flag.ContinueOnError)
		e.cmd.SetFlags(fs)
		root.Sub[e.cmd.Name()] = &complete.Command{Flags: predictFlags(fs)}
		names = append(names, e.cmd.Name())
	}
	root.Sub["help"] = &complete.Command{Args: names}
	root.Sub["commands"] = &complete.Command{}
	root.Sub["flags"] = &complete.Command{}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(topics)
	}
	return root
}

func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
