package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mcncl/jsonpick/internal/config"
	"github.com/mcncl/jsonpick/internal/errors"
	"github.com/mcncl/jsonpick/internal/models"
	"github.com/mcncl/jsonpick/internal/navigator"
	"github.com/mcncl/jsonpick/internal/parser"
	"github.com/mcncl/jsonpick/internal/serializer"
)

// CLI defines the command-line interface
var CLI struct {
	Query       *string `help:"Dot-delimited field path to resolve before printing, e.g. \"a.b.c\". An empty value forces identity navigation." short:"q"`
	Input       string  `help:"Path to input JSON file. If not specified, reads one document per line from stdin." short:"i" type:"path"`
	Output      string  `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Mode        string  `help:"Output mode: minified or expanded." short:"m"`
	Expand      bool    `help:"Shorthand for --mode=expanded." short:"x"`
	Missing     string  `help:"Missing-path policy: error or null."`
	Config      string  `help:"Path to config file. Defaults to the nearest .jsonpick.yml." short:"c" type:"path"`
	Debug       bool    `help:"Enable debug logging." short:"d"`
	Version     bool    `help:"Show version information." short:"v"`
	Interactive bool    `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug bool
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	cliParser := kong.Must(&CLI,
		kong.Name("jsonpick"),
		kong.Description("A tool to pick fields out of JSON documents and reprint them minified or expanded"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	_, err := cliParser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("jsonpick version %s\n", Version)
		return
	}

	err = run(&Context{Debug: CLI.Debug})
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonpick --help\n")

		os.Exit(1)
	}
}

// pipeline bundles the configured stages applied to every document.
type pipeline struct {
	query      string
	navigator  *navigator.Navigator
	serializer *serializer.Serializer
	debug      bool
}

// newPipeline resolves configuration into a ready pipeline.
func newPipeline(ctx *Context) (*pipeline, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cliMode := CLI.Mode
	if CLI.Expand {
		cliMode = "expanded"
	}

	cfg, err := config.LoadConfigWithCLI(configPath, CLI.Query, cliMode, CLI.Missing)
	if err != nil {
		return nil, errors.NewInputError("failed to load configuration", err)
	}

	mode, err := cfg.OutputMode()
	if err != nil {
		return nil, errors.NewInputError("invalid output mode", err)
	}
	policy, err := cfg.MissingPolicy()
	if err != nil {
		return nil, errors.NewInputError("invalid missing-path policy", err)
	}

	if ctx.Debug {
		fmt.Fprintf(os.Stderr, "jsonpick: query=%q mode=%s config=%q\n", cfg.Query, mode, configPath)
	}

	return &pipeline{
		query:      cfg.Query,
		navigator:  navigator.NewNavigatorWithPolicy(policy),
		serializer: serializer.NewSerializer(mode),
		debug:      ctx.Debug,
	}, nil
}

// process runs one parsed document through navigation and serialization.
// The tree stays alive for the whole call, covering every reference
// navigation hands back.
func (p *pipeline) process(root *models.Value) (string, error) {
	result, err := p.navigator.Navigate(root, p.query)
	if err != nil {
		return "", err
	}
	return p.serializer.Serialize(result), nil
}

// processText parses one document's text and runs it through the pipeline.
func (p *pipeline) processText(text string) (string, error) {
	root, err := parser.ParseString(text)
	if err != nil {
		return "", err
	}
	return p.process(root)
}

// run executes the main program logic
func run(ctx *Context) error {
	p, err := newPipeline(ctx)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	// File input: the whole file is a single document.
	if CLI.Input != "" {
		root, err := parser.ParseFile(CLI.Input)
		if err != nil {
			return err
		}
		result, err := p.process(root)
		if err != nil {
			return err
		}
		return writeLine(out, result)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			text, err := readInteractiveInput()
			if err != nil {
				return err
			}
			result, err := p.processText(text)
			if err != nil {
				return err
			}
			return writeLine(out, result)
		}
		// No data provided on stdin and not in interactive mode
		return errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Piped stdin: one JSON document per line, each processed
	// independently so a bad line never stops the stream.
	return processLines(p, os.Stdin, out)
}

// processLines reads documents line by line, printing a diagnostic for
// each failed line and carrying on. It reports an error if any line
// failed, after the whole stream has been consumed.
func processLines(p *pipeline, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	failed := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result, err := p.processText(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
			failed++
			continue
		}
		if err := writeLine(out, result); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.NewInputError("failed to read from stdin", err)
	}
	if failed > 0 {
		return errors.NewInputError(fmt.Sprintf("%d input line(s) could not be processed", failed), nil)
	}
	return nil
}

// openOutput picks the destination stream for results.
func openOutput() (io.Writer, func(), error) {
	if CLI.Output == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(CLI.Output)
	if err != nil {
		return nil, nil, errors.NewOutputError(fmt.Sprintf("failed to create file '%s'", CLI.Output), err)
	}
	return file, func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing output file: %v\n", err)
		}
	}, nil
}

// writeLine writes one result followed by a newline.
func writeLine(out io.Writer, result string) error {
	if _, err := fmt.Fprintln(out, result); err != nil {
		return errors.NewOutputError("failed to write result", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "jsonpick Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	jsonData, err := collectInput(os.Stdin)
	if err != nil {
		return "", err
	}
	if len(jsonData) == 0 {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return jsonData, nil
}

// collectInput reads everything up to EOF (Ctrl+D). A final line
// without a trailing newline still belongs to the input: ReadString
// hands it back together with io.EOF.
func collectInput(in io.Reader) (string, error) {
	reader := bufio.NewReader(in)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			// End of input
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	return jsonBuilder.String(), nil
}
