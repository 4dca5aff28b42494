package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
	"github.com/napalu/argbind"
	"github.com/napalu/argbind/convert"
	"github.com/napalu/argbind/types"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
	"golang.org/x/text/language"
)

type Channel string

const (
	Stable Channel = "stable"
	Beta   Channel = "beta"
)

type Release struct {
	_          argbind.Cmd       `argbind:"names:release|rel;desc:plan a release to a set of hosts"`
	Version    *semver.Version   `argbind:"names:-V|--version;desc:version to release"`
	Channel    Channel           `argbind:"names:-c|--channel;desc:stable or beta;default:stable"`
	Date       types.Date        `argbind:"names:-d|--date;desc:release date" pattern:"\\d{4}-\\d{2}-\\d{2}" rule:"YYYY-MM-DD"`
	Window     types.TimeOfDay   `argbind:"names:-w|--window;desc:start of the deploy window" pattern:"\\d{2}:\\d{2}" rule:"HH:MM"`
	Budget     decimal.Decimal   `argbind:"names:-b|--budget;desc:budget" pattern:"\\d+(\\.\\d{1,2})?" rule:"at most two decimals"`
	Labels     map[string]string `argbind:"names:-l|--labels;desc:labels, key=value,..."`
	DryRun     bool              `argbind:"names:-n|--dry-run;desc:print the plan only"`
	Describe   string            `argbind:"names:--describe;desc:print the schema" pattern:"json|yaml" rule:"json or yaml"`
	Completion string            `argbind:"names:--completion;desc:print a shell completion script" pattern:"bash|zsh|fish|powershell" rule:"bash, zsh, fish or powershell"`
	Help       bool              `argbind:"names:-h|--help;desc:show help"`
	Hosts      []string          `argbind:"kind:vars;desc:target hosts"`
}

func main() {
	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))

	lang := language.English
	if env := os.Getenv("ARGBIND_LANG"); env != "" {
		tag, err := language.Parse(env)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: ARGBIND_LANG: %v\n", err)
			os.Exit(1)
		}
		lang = tag
	}

	registry := convert.NewRegistry()
	convert.RegisterEnum(registry, map[string]Channel{"stable": Stable, "beta": Beta})

	binder, err := argbind.NewBinder[Release](argbind.WithRegistry(registry), argbind.WithLanguage(lang))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rel, err := binder.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprint(os.Stderr, color.RedString("Error: "))
		binder.PrintError(err)
		_ = binder.PrintHelp(os.Stderr)
		os.Exit(1)
	}

	if rel.Help || (rel.Version == nil && rel.Describe == "" && rel.Completion == "") {
		_ = binder.PrintHelp(nil)
		return
	}

	switch {
	case rel.Completion != "":
		var script string
		if script, err = binder.CompletionScript(rel.Completion, os.Args[0]); err == nil {
			fmt.Print(script)
		}
	case rel.Describe == "json":
		err = printDoc(binder.Schema().JSON())
	case rel.Describe == "yaml":
		err = printDoc(binder.Schema().YAML())
	default:
		printPlan(rel)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printDoc(data []byte, err error) error {
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)

	return err
}

func printPlan(rel *Release) {
	header := color.New(color.FgGreen, color.Bold)
	if rel.DryRun {
		header = color.New(color.FgYellow, color.Bold)
		header.Println("dry run")
	}

	header.Printf("release %s (%s)\n", rel.Version, rel.Channel)
	if !rel.Date.IsZero() {
		fmt.Printf("  date:   %s at %s\n", rel.Date, rel.Window)
	}
	if !rel.Budget.IsZero() {
		fmt.Printf("  budget: %s\n", rel.Budget.StringFixed(2))
	}
	if len(rel.Labels) > 0 {
		keys := make([]string, 0, len(rel.Labels))
		for k := range rel.Labels {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + rel.Labels[k]
		}
		fmt.Printf("  labels: %s\n", strings.Join(pairs, ", "))
	}
	if len(rel.Hosts) == 0 {
		fmt.Println(color.RedString("  no hosts given"))
		return
	}
	for _, h := range rel.Hosts {
		fmt.Printf("  -> %s\n", color.CyanString(h))
	}
}
