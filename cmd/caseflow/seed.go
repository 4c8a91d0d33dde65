package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/caseflow/caseflow/pkg/cmd"
	"github.com/caseflow/caseflow/pkg/config"
	"github.com/caseflow/caseflow/pkg/log"
	"github.com/caseflow/caseflow/pkg/models"
	"github.com/caseflow/caseflow/pkg/registry"
	"github.com/caseflow/caseflow/pkg/services"
)

func runSeed(ctx context.Context, databaseURL, seedPath string) error {
	logger := log.WithModule("seed")

	seed, err := config.LoadSeedFile(seedPath)
	if err != nil {
		return err
	}

	persistence, err := cmd.NewPersistence(ctx, logger, databaseURL)
	if err != nil {
		return err
	}

	defer func() {
		if err := persistence.Close(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
		}
	}()

	reg := registry.NewRegistry(logger)
	templateService := services.NewTemplate(persistence)
	workflowService := services.NewWorkflow(persistence, reg, nil, logger)

	// Templates go first; workflows reference them by name.
	templateIDs := make(map[string]string, len(seed.Templates))

	for _, entry := range seed.Templates {
		created, err := templateService.Create(ctx, entry.Template())
		if err != nil {
			return fmt.Errorf("template %q: %w", entry.Name, err)
		}

		templateIDs[created.Name] = created.ID
		logger.InfoContext(ctx, "Imported template", "name", created.Name, "id", created.ID)
	}

	for _, entry := range seed.Workflows {
		created, err := workflowService.Create(ctx, entry.Workflow(templateIDs))
		if err != nil {
			return fmt.Errorf("workflow %q: %w", entry.Name, err)
		}

		logger.InfoContext(ctx, "Imported workflow", "name", created.Name, "id", created.ID)
	}

	logger.InfoContext(ctx, "Seed complete",
		"templates", len(seed.Templates), "workflows", len(seed.Workflows))

	return nil
}

func runValidate(ctx context.Context, seedPath string) error {
	logger := log.WithModule("validate")

	seed, err := config.LoadSeedFile(seedPath)
	if err != nil {
		return err
	}

	reg := registry.NewRegistry(logger)

	var problems []error

	for _, entry := range seed.Workflows {
		workflow := entry.Workflow(nil)

		if err := models.ValidateWorkflow(workflow); err != nil {
			problems = append(problems, fmt.Errorf("workflow %q: %w", entry.Name, err))

			continue
		}

		if !reg.KnownTriggerType(workflow.TriggerType) {
			problems = append(problems, fmt.Errorf("workflow %q: unknown trigger type %q", entry.Name, workflow.TriggerType))

			continue
		}

		if err := reg.ValidateTriggerConfig(workflow.TriggerType, workflow.TriggerConfig); err != nil {
			problems = append(problems, fmt.Errorf("workflow %q: %w", entry.Name, err))
		}
	}

	for _, entry := range seed.Templates {
		if entry.Name == "" {
			problems = append(problems, errors.New("template with empty name"))
		}
	}

	if len(problems) > 0 {
		for _, problem := range problems {
			logger.ErrorContext(ctx, "Validation failed", "error", problem)
		}

		return fmt.Errorf("%d invalid entries in %s", len(problems), seedPath)
	}

	logger.InfoContext(ctx, "Seed file is valid",
		"templates", len(seed.Templates), "workflows", len(seed.Workflows))

	return nil
}
