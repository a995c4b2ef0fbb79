package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	changelog "github.com/goliatone/go-changelog"
	"github.com/goliatone/go-changelog/pkg/model"
)

func main() {
	templatePath := flag.String("template", "changelog.tpl", "template file to render")
	releasePath := flag.String("release", "release.yaml", "release description (YAML or JSON)")
	groupsFlag := flag.String("groups", "", "comma-separated ordered group list for the grouped render path")
	output := flag.String("output", "", "output file (stdout if empty)")
	htmlOut := flag.Bool("html", false, "sanitize rendered output as HTML")
	promptVersion := flag.Bool("prompt-version", false, "prompt for a version when the release file has none")
	flag.Parse()

	templateText, err := os.ReadFile(*templatePath)
	if err != nil {
		log.Fatalf("Failed to read template: %v", err)
	}

	release, err := model.LoadRelease(*releasePath)
	if err != nil {
		log.Fatalf("Failed to load release: %v", err)
	}

	if *promptVersion && release.Version == "" {
		release.Version = askVersion()
	}

	rendered, err := changelog.Generate(string(templateText), release, buildOptions(*groupsFlag, *htmlOut)...)
	if err != nil {
		log.Fatalf("Failed to render changelog: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, rendered, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Changelog written to %s\n", *output)
	} else {
		fmt.Print(string(rendered))
	}
}

func buildOptions(groupsFlag string, htmlOut bool) []changelog.Option {
	var options []changelog.Option
	if groups := parseGroups(groupsFlag); groups != nil {
		options = append(options, changelog.WithGroups(groups))
	}
	if htmlOut {
		options = append(options, changelog.WithHTMLSanitizer())
	}
	return options
}

func parseGroups(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func askVersion() string {
	var version string
	prompt := &survey.Input{Message: "Release version:"}
	if err := survey.AskOne(prompt, &version); err != nil {
		log.Fatalf("Failed to read version: %v", err)
	}
	return strings.TrimSpace(version)
}
