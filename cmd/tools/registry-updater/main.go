// cmd/tools/registry-updater/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"upkept-workers/pkg/registry"
)

var registryPath string

var rootCmd = &cobra.Command{
	Use:           "registry-updater",
	Short:         "Maintain the worker activity registry",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new activity to the registry",
	Example: `  registry-updater add --id notify-schedule --display-name "Notify Schedule" \
    --description "Emails the approved schedule" --category communication --task-type notify-schedule`,
	RunE: runAdd,
}

var updateCmd = &cobra.Command{
	Use:     "update",
	Short:   "Update one field of an existing activity",
	Example: "  registry-updater update --id discover-vendors --field status --value verified",
	RunE:    runUpdate,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the registry file",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.LoadRegistry(registryPath)
		if err != nil {
			return fmt.Errorf("load registry: %w", err)
		}
		if err := reg.Validate(); err != nil {
			return fmt.Errorf("registry validation failed: %w", err)
		}
		fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered activities",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.LoadRegistry(registryPath)
		if err != nil {
			return fmt.Errorf("load registry: %w", err)
		}
		for _, a := range reg.Activities {
			fmt.Printf("%-24s %-14s %-12s %s\n", a.TaskType, a.Category, a.ImplementationStatus, a.Timeout)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&registryPath, "path", "pkg/registry/activity-registry.json", "path to registry file")

	f := addCmd.Flags()
	f.String("id", "", "activity id (e.g. discover-vendors)")
	f.String("display-name", "", "display name")
	f.String("description", "", "description")
	f.String("category", "", "category (planning, session, approval, communication)")
	f.String("task-type", "", "Zeebe task type")
	f.String("version", "1.0.0", "activity version")
	f.String("status", registry.StatusPlanned, "implementation status (planned, in-progress, implemented, verified)")
	f.String("timeout", "10s", "job timeout")
	for _, name := range []string{"id", "display-name", "description", "category", "task-type"} {
		_ = addCmd.MarkFlagRequired(name)
	}

	u := updateCmd.Flags()
	u.String("id", "", "activity id to update")
	u.String("field", "", "field to update (status, version, displayName, description, category, timeout, retries)")
	u.String("value", "", "new value for the field")
	for _, name := range []string{"id", "field", "value"} {
		_ = updateCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(addCmd, updateCmd, validateCmd, listCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	str := func(name string) string {
		v, _ := f.GetString(name)
		return v
	}

	reg, err := registry.LoadRegistry(registryPath)
	if os.IsNotExist(err) {
		reg = &registry.ActivityRegistry{Version: "1.0.0"}
	} else if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}

	activity := registry.Activity{
		ID:                   str("id"),
		DisplayName:          str("display-name"),
		Description:          str("description"),
		Category:             str("category"),
		Version:              str("version"),
		TaskType:             str("task-type"),
		ImplementationStatus: str("status"),
		InputSchema:          map[string]interface{}{},
		OutputSchema:         map[string]interface{}{},
		ErrorCodes:           []string{"INVALID_JOB_INPUT"},
		Timeout:              str("timeout"),
		Workflows:            []string{},
		Tags:                 []string{},
	}
	if err := reg.Add(activity, time.Now()); err != nil {
		return err
	}
	if err := reg.Save(registryPath); err != nil {
		return err
	}
	fmt.Printf("Added activity: %s\n", activity.ID)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	id, _ := f.GetString("id")
	field, _ := f.GetString("field")
	value, _ := f.GetString("value")

	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	if err := reg.Update(id, field, value, time.Now()); err != nil {
		return err
	}
	if err := reg.Save(registryPath); err != nil {
		return err
	}
	fmt.Printf("Updated activity %s, field %s to %s\n", id, field, value)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
