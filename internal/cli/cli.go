package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/3cstudio/contentforge/internal/catalog"
	"github.com/3cstudio/contentforge/internal/clipboard"
	"github.com/3cstudio/contentforge/internal/errors"
	"github.com/3cstudio/contentforge/internal/models"
	"github.com/3cstudio/contentforge/internal/renderer"
	"github.com/3cstudio/contentforge/internal/service"
	"github.com/3cstudio/contentforge/internal/storage"
)

// CLI provides headless command-line interface functionality
type CLI struct {
	service      *service.Service
	errorHandler *errors.CLIErrorHandler
}

// NewCLI creates a new CLI instance
func NewCLI(svc *service.Service) *CLI {
	return &CLI{
		service:      svc,
		errorHandler: errors.NewCLIErrorHandler(os.Getenv("VERBOSE") == "true"),
	}
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	var err error
	switch command {
	case "platforms":
		err = c.listPlatforms(commandArgs)
	case "create", "new":
		err = c.createTemplate(commandArgs)
	case "list", "ls":
		err = c.listTemplates(commandArgs)
	case "search":
		err = c.searchTemplates(commandArgs)
	case "show", "get":
		err = c.showTemplate(commandArgs)
	case "validate":
		err = c.validateTemplate(commandArgs)
	case "preview":
		err = c.previewTemplate(commandArgs)
	case "delete", "rm":
		err = c.deleteTemplate(commandArgs)
	case "export":
		err = c.exportTemplate(commandArgs)
	case "import":
		err = c.importTemplate(commandArgs)
	case "forward":
		err = c.forwardTemplate(commandArgs)
	case "forwards":
		err = c.listForwards(commandArgs)
	case "suggest":
		err = c.suggestHashtags(commandArgs)
	case "labels":
		err = c.handleRegistry(c.service.Labels(), "label", commandArgs)
	case "audiences":
		err = c.handleRegistry(c.service.Audiences(), "audience", commandArgs)
	case "restore":
		err = c.restoreAutosave(commandArgs)
	case "help":
		err = c.printUsage()
	default:
		return fmt.Errorf("unknown command: %s. Use 'help' for usage information", command)
	}

	if err != nil && errors.IsAppError(err) {
		return c.errorHandler.HandleError(err)
	}
	return err
}

// listPlatforms prints the platform catalog
func (c *CLI) listPlatforms(args []string) error {
	format := parseFlag(args, "--format", "-f")

	defs := c.service.Catalog().List()
	switch format {
	case "json":
		keyed := make(map[string]*models.PlatformDefinition, len(defs))
		for _, def := range defs {
			keyed[def.Key] = def
		}
		return json.NewEncoder(os.Stdout).Encode(keyed)
	default:
		for _, def := range defs {
			fmt.Printf("%s - %s\n", def.Key, def.Name)
			for _, field := range def.Fields {
				limit, _ := def.CharacterLimit(field)
				fmt.Printf("  %-12s max %5d chars - %s\n",
					field, limit, catalog.FieldTip(field))
			}
			fmt.Printf("  hashtags     max %d, recommended %d\n",
				def.Hashtags.Max, def.Hashtags.Recommended)
			fmt.Printf("  features     %s\n\n", strings.Join(def.Features, ", "))
		}
	}
	return nil
}

// createTemplate builds a draft from flags, validates it and saves it
func (c *CLI) createTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("create requires a platform key (see 'platforms')")
	}
	platformKey := args[0]

	session := c.service.NewSession()
	defer session.Close()

	if err := session.StartDraft(platformKey); err != nil {
		return err
	}

	var name string
	allowInvalid := false
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--name", "-n":
			if i+1 < len(args) {
				name = args[i+1]
				i++
			}
		case "--set", "-s":
			if i+1 < len(args) {
				field, value, ok := strings.Cut(args[i+1], "=")
				if !ok {
					return fmt.Errorf("--set expects field=value, got %q", args[i+1])
				}
				if err := session.SetContentField(field, value); err != nil {
					return err
				}
				i++
			}
		case "--meta", "-m":
			if i+1 < len(args) {
				key, value, ok := strings.Cut(args[i+1], "=")
				if !ok {
					return fmt.Errorf("--meta expects key=value, got %q", args[i+1])
				}
				if err := session.SetMeta(key, value); err != nil {
					return err
				}
				i++
			}
		case "--tag", "-t":
			if i+1 < len(args) {
				if err := session.AddHashtag(args[i+1]); err != nil {
					return err
				}
				i++
			}
		case "--tone":
			if i+1 < len(args) {
				if err := session.SetTone(args[i+1]); err != nil {
					return err
				}
				i++
			}
		case "--type":
			if i+1 < len(args) {
				if err := session.SetContentType(args[i+1]); err != nil {
					return err
				}
				i++
			}
		case "--force":
			allowInvalid = true
		}
	}

	if name == "" {
		return errors.EmptyNameError()
	}

	if issues := session.Validate(); len(issues) > 0 {
		printIssues(issues)
		if !allowInvalid {
			return fmt.Errorf("draft is not valid; use --force to save anyway")
		}
	}

	snapshot, err := session.Snapshot()
	if err != nil {
		return err
	}
	id, err := c.service.SaveTemplate(name, snapshot)
	if err != nil {
		return err
	}
	fmt.Printf("Template %q saved as %s\n", name, id)
	return nil
}

// listTemplates lists all saved templates
func (c *CLI) listTemplates(args []string) error {
	format := parseFlag(args, "--format", "-f")
	return c.formatOutput(c.service.ListTemplates(), format)
}

// searchTemplates fuzzy-searches saved templates
func (c *CLI) searchTemplates(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("search requires a query")
	}
	format := parseFlag(args, "--format", "-f")
	query := strings.Join(stripFlags(args), " ")
	return c.formatOutput(c.service.SearchTemplates(query), format)
}

// showTemplate displays a saved template
func (c *CLI) showTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("show requires a template ID")
	}
	format := parseFlag(args, "--format", "-f")

	record, err := c.service.LoadTemplate(args[0])
	if err != nil {
		return err
	}
	return c.formatSingleTemplate(record, format)
}

// validateTemplate re-validates a saved template against the catalog
func (c *CLI) validateTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("validate requires a template ID")
	}

	session := c.service.NewSession()
	defer session.Close()

	record, err := c.service.LoadTemplateIntoSession(args[0], session)
	if err != nil {
		return err
	}

	issues := session.Validate()
	if len(issues) == 0 {
		fmt.Printf("Template %q is valid\n", record.Name)
		return nil
	}
	printIssues(issues)
	return fmt.Errorf("%d validation issue(s)", len(issues))
}

// previewTemplate renders a saved template as styled markdown
func (c *CLI) previewTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("preview requires a template ID")
	}

	record, err := c.service.LoadTemplate(args[0])
	if err != nil {
		return err
	}
	platform, _ := c.service.Catalog().Get(record.Platform)

	out, err := renderer.Terminal(&record.Data, platform, 80)
	if err != nil {
		// Fall back to the raw markdown when the terminal renderer fails
		out = renderer.Markdown(&record.Data, platform)
	}
	fmt.Print(out)
	return nil
}

// deleteTemplate removes a saved template
func (c *CLI) deleteTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("delete requires a template ID")
	}
	if err := c.service.DeleteTemplate(args[0]); err != nil {
		return err
	}
	fmt.Printf("Template %s deleted\n", args[0])
	return nil
}

// exportTemplate writes a saved template as a portable document
func (c *CLI) exportTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("export requires a template ID")
	}

	format := parseFlag(args, "--format", "-f")
	outputFile := parseFlag(args, "--output", "-o")
	toClipboard := hasFlag(args, "--copy")

	record, err := c.service.LoadTemplate(args[0])
	if err != nil {
		return err
	}

	data, filename, err := c.service.ExportTemplate(&record.Data, format)
	if err != nil {
		return err
	}

	if toClipboard {
		if err := clipboard.Copy(string(data)); err != nil {
			return fmt.Errorf("failed to copy export: %w", err)
		}
		fmt.Println("Export copied to clipboard")
		return nil
	}

	if outputFile == "" {
		outputFile = filename
	}
	if outputFile == "-" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported to %s\n", outputFile)
	return nil
}

// importTemplate reads an export document and saves it
func (c *CLI) importTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("import requires a file path")
	}
	name := parseFlag(args, "--name", "-n")
	if name == "" {
		return errors.EmptyNameError()
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	id, err := c.service.ImportTemplate(name, data)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %q as %s\n", name, id)
	return nil
}

// forwardTemplate routes a saved template to a team member's dashboard
func (c *CLI) forwardTemplate(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("forward requires a template ID and a team member (%s)",
			strings.Join(models.Senders(), ", "))
	}

	record, err := c.service.LoadTemplate(args[0])
	if err != nil {
		return err
	}

	fwd, err := c.service.ForwardTemplate(&record.Data, args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Template %q forwarded to %s (%s)\n", record.Name, fwd.AssignedTo, fwd.ID)
	return nil
}

// listForwards lists recorded dashboard hand-offs
func (c *CLI) listForwards(args []string) error {
	format := parseFlag(args, "--format", "-f")
	records := c.service.ListForwards()

	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(records)
	default:
		if len(records) == 0 {
			fmt.Println("No forwarded templates")
			return nil
		}
		for _, r := range records {
			fmt.Printf("%s  %s  %-8s %s\n",
				r.ID, r.ForwardedAt.Format("2006-01-02 15:04"), r.AssignedTo, r.Template.Platform)
		}
	}
	return nil
}

// suggestHashtags prints starter hashtags for a platform and theme
func (c *CLI) suggestHashtags(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("suggest requires a platform key and a theme")
	}

	def, err := c.service.Catalog().Get(args[0])
	if err != nil {
		return err
	}

	tags := catalog.SuggestHashtags(args[1], def.Hashtags.Recommended)
	if len(tags) == 0 {
		fmt.Printf("No suggestions for theme %q\n", args[1])
		return nil
	}
	for _, tag := range tags {
		fmt.Println("#" + tag)
	}
	return nil
}

// handleRegistry manages the label and audience registries
func (c *CLI) handleRegistry(reg *storage.Registry, name string, args []string) error {
	if len(args) == 0 || args[0] == "list" {
		for _, entry := range reg.List() {
			fmt.Println(entry)
		}
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("%ss add requires a value", name)
		}
		if err := reg.Add(strings.Join(args[1:], " ")); err != nil {
			return err
		}
		fmt.Printf("Added %s\n", name)
		return nil
	case "rm", "remove":
		if len(args) < 2 {
			return fmt.Errorf("%ss rm requires a value", name)
		}
		if err := reg.Remove(args[1]); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", name)
		return nil
	default:
		return fmt.Errorf("unknown %ss subcommand: %s", name, args[0])
	}
}

// restoreAutosave shows the autosaved draft, if one exists
func (c *CLI) restoreAutosave(args []string) error {
	session := c.service.NewSession()
	defer session.Close()

	if err := c.service.RestoreAutosave(session); err != nil {
		return err
	}

	snapshot, err := session.Snapshot()
	if err != nil {
		return err
	}
	platform, _ := c.service.Catalog().Get(snapshot.Platform)
	fmt.Print(renderer.Markdown(snapshot, platform))
	return nil
}

// formatOutput prints a template list in the requested format
func (c *CLI) formatOutput(records []models.SavedTemplate, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(records)
	case "ids":
		for _, r := range records {
			fmt.Println(r.ID)
		}
	case "table":
		fmt.Printf("%-36s %-24s %-12s %s\n", "ID", "Name", "Platform", "Created")
		fmt.Println(strings.Repeat("-", 90))
		for _, r := range records {
			name := r.Name
			if len(name) > 24 {
				name = name[:21] + "..."
			}
			fmt.Printf("%-36s %-24s %-12s %s\n",
				r.ID, name, r.Platform, r.Created.Format("2006-01-02"))
		}
	default:
		for _, r := range records {
			fmt.Printf("%s - %s\n", r.ID, r.Name)
			fmt.Printf("  %s\n", r.Description())
			fmt.Println()
		}
	}
	return nil
}

// formatSingleTemplate formats a single saved template for output
func (c *CLI) formatSingleTemplate(record *models.SavedTemplate, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(record)
	default:
		fmt.Printf("ID: %s\n", record.ID)
		fmt.Printf("Name: %s\n", record.Name)
		fmt.Printf("Platform: %s\n", record.Platform)
		fmt.Printf("Created: %s\n", record.Created.Format("2006-01-02 15:04"))
		for _, key := range append(models.MetaKeys(), models.MetaBrandVoice) {
			if value, ok := record.Data.Meta[key]; ok {
				fmt.Printf("%s: %s\n", renderer.FormatFieldName(key), value)
			}
		}
		platform, _ := c.service.Catalog().Get(record.Platform)
		for _, field := range record.Data.ContentFieldsInOrder(platform) {
			fmt.Printf("\n%s:\n%s\n", renderer.FormatFieldName(field), record.Data.Content[field])
		}
		if len(record.Data.Hashtags) > 0 {
			fmt.Printf("\nHashtags: #%s\n", strings.Join(record.Data.Hashtags, " #"))
		}
	}
	return nil
}

func printIssues(issues []models.ValidationIssue) {
	for _, issue := range issues {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", issue.Field, issue.Reason)
	}
}

// parseFlag returns the value following the first occurrence of either flag
// spelling.
func parseFlag(args []string, long, short string) string {
	for i, arg := range args {
		if (arg == long || arg == short) && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}

// stripFlags removes flags and their values from args, leaving positional
// words.
func stripFlags(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		if strings.HasPrefix(args[i], "-") {
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}
		out = append(out, args[i])
	}
	return out
}

func (c *CLI) printUsage() error {
	fmt.Println(`contentforge - Social content template engine

Usage: contentforge <command> [arguments]

Commands:
  platforms                     List available platforms, fields and limits
  create <platform> [flags]     Build and save a template
      --name <name>  --set field=value  --meta key=value  --tag <tag>
      --tone <tone>  --type <content-type>  --force
  list, ls                      List saved templates
  search <query>                Fuzzy-search saved templates
  show <id>                     Show a saved template
  validate <id>                 Re-validate a saved template
  preview <id>                  Render a styled preview
  delete, rm <id>               Delete a saved template
  export <id> [flags]           Export as a portable document
      --format json|yaml  --output <file|->  --copy
  import <file> --name <name>   Import an exported document
  forward <id> <member>         Hand a template to a team member's dashboard
  forwards                      List recorded hand-offs
  suggest <platform> <theme>    Print starter hashtags
  labels [list|add|rm]          Manage theme labels
  audiences [list|add|rm]       Manage audience segments
  restore                       Show the autosaved draft
  help                          Show this help

Most list commands accept --format json|table|ids.`)
	return nil
}
