package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gdlandscaping/sitegen/pkg/content"
)

func scaffoldCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Interactively scaffold a new service page record",
		Long:  "Prompts for the service and town, then writes a YAML record stub ready to be filled in and merged into the content registry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := askScaffold()
			if err != nil {
				return err
			}

			body, err := yaml.Marshal(stubDocument(answers))
			if err != nil {
				return fmt.Errorf("scaffold: marshal record: %w", err)
			}

			target := filepath.Join(dir, fmt.Sprintf("%s-%s-ct.yaml", answers.Service, answers.TownSlug))
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("scaffold: %s already exists, refusing to overwrite", target)
			} else if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("scaffold: stat %s: %w", target, err)
			}

			if err := os.WriteFile(target, body, 0o644); err != nil {
				return fmt.Errorf("scaffold: write %s: %w", target, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Record stub written to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory to write the record stub into")
	return cmd
}

type scaffoldAnswers struct {
	Service  string
	TownSlug string `survey:"townSlug"`
	TownName string `survey:"townName"`
	Packages bool
}

func askScaffold() (scaffoldAnswers, error) {
	services := make([]string, 0, len(content.ServiceTypes()))
	for _, service := range content.ServiceTypes() {
		services = append(services, string(service))
	}

	questions := []*survey.Question{
		{
			Name:   "service",
			Prompt: &survey.Select{Message: "Service:", Options: services},
		},
		{
			Name:     "townSlug",
			Prompt:   &survey.Input{Message: "Town slug (e.g. rocky-hill):"},
			Validate: validateSlug,
		},
		{
			Name:     "townName",
			Prompt:   &survey.Input{Message: "Town name (e.g. Rocky Hill):"},
			Validate: survey.Required,
		},
		{
			Name:   "packages",
			Prompt: &survey.Confirm{Message: "Does this page list pricing packages?"},
		},
	}

	var answers scaffoldAnswers
	if err := survey.Ask(questions, &answers); err != nil {
		return scaffoldAnswers{}, fmt.Errorf("scaffold: %w", err)
	}
	return answers, nil
}

func validateSlug(value any) error {
	slug, ok := value.(string)
	if !ok || slug == "" {
		return errors.New("slug is required")
	}
	for _, r := range slug {
		if r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			continue
		}
		return errors.New("use lowercase letters, digits, and hyphens only")
	}
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return errors.New("slug cannot start or end with a hyphen")
	}
	return nil
}

// recordDocument is the on-disk document shape the registry loader reads:
// the category tag plus the records list. The scaffold emits it so the stub
// can be dropped into data/services/ (or merged into the category file)
// without restructuring.
type recordDocument struct {
	Service content.ServiceType            `yaml:"service"`
	Records []content.ServiceContentRecord `yaml:"records"`
}

func stubDocument(answers scaffoldAnswers) recordDocument {
	return recordDocument{
		Service: content.ServiceType(answers.Service),
		Records: []content.ServiceContentRecord{stubRecord(answers)},
	}
}

func stubRecord(answers scaffoldAnswers) content.ServiceContentRecord {
	service := content.ServiceType(answers.Service)
	page := fmt.Sprintf("%s-%s-ct", answers.Service, answers.TownSlug)

	record := content.ServiceContentRecord{
		Service:  service,
		TownSlug: answers.TownSlug,
		TownName: answers.TownName,
		Hero: content.Hero{
			Title:    fmt.Sprintf("TODO headline for %s", answers.TownName),
			Subtitle: "TODO subtitle",
		},
		SEO: content.SEO{
			Title:        fmt.Sprintf("TODO | GD Landscaping %s CT", answers.TownName),
			Description:  "TODO meta description",
			CanonicalURL: "https://www.gdlandscapingllc.com/" + page,
		},
		Quote: content.QuoteConfig{
			Title:        "Request Your Free Quote",
			LocationName: answers.TownName,
			Source:       page,
		},
	}
	if answers.Packages {
		record.Packages = []content.Package{
			{ID: "basic", Name: "TODO package", Price: "$0", Features: []string{"TODO feature"}},
		}
	}
	return record
}
