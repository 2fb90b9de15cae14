package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/3cstudio/contentforge/internal/cli"
	"github.com/3cstudio/contentforge/internal/service"
	"github.com/3cstudio/contentforge/internal/ui"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`contentforge - Social media content template builder

USAGE:
    contentforge [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information

COMMANDS:
    (no command)       Start interactive TUI mode
    platforms          List available platforms
    create, new        Create a template from flags
    list, ls           List saved templates
    search <query>     Search saved templates
    get, show <id>     Show a saved template
    validate <id>      Validate a saved template
    preview <id>       Render a template as markdown
    delete, rm <id>    Delete a saved template
    export <id>        Export a template to a file
    import <file>      Import a previously exported template
    forward <id>       Forward a template to a team member
    forwards           List forwarded templates
    suggest <id>       Suggest hashtags for a template
    labels             Manage the content label registry
    audiences          Manage the target audience registry
    restore            Show the autosaved draft, if any
    help               Show CLI command help

EXAMPLES:
    contentforge                                        # Start interactive mode
    contentforge platforms                              # List platforms
    contentforge create instagram --name promo \
        --set caption="Launch day" --meta theme=promotion --tag launch
    contentforge list --format table                    # List templates
    contentforge search "launch"                        # Search templates
    contentforge export template_01J... --format yaml   # Export as YAML
    contentforge forward template_01J... anica          # Forward to a member
    contentforge labels add behind_the_scenes           # Register a label
    contentforge help <command>                         # Detailed help

STORAGE:
    Default directory: ~/.content-forge
    Override with: CONTENT_FORGE_DIR=<path>
`)
}

func main() {
	var showVersion bool
	var showHelp bool

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("contentforge version %s\n", version)
		os.Exit(0)
	}

	svc, err := service.NewService()
	if err != nil {
		fmt.Println(err)
		return
	}

	// Command line arguments mean CLI mode - execute and exit
	args := flag.Args()
	if len(args) > 0 {
		cliHandler := cli.NewCLI(svc)
		if err := cliHandler.ExecuteCommand(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// No arguments - start TUI mode
	if err := ui.Run(svc); err != nil {
		fmt.Println(err)
		return
	}
}
