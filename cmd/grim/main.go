package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"golang.org/x/text/language"

	grim "github.com/jupdike/grimjs-sub000"
)

const (
	appName     = "grim"
	historyFile = ".grim_history"
	historyEnv  = "GRIM_HISTORY"
	promptMain  = "grim> "
	promptCont  = "  ... "
)

var (
	banner   = fmt.Sprintf("Grim %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.", grim.Version)
	helpText = `REPL commands:
  :quit    Exit the REPL
  :env     List the module bindings
  :casts   List the registered cast edges
  :help    Show this text
Lines starting with Def, DefCast or DefMacroMatchRule are definitions;
anything else is evaluated.`
)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "eval":
		os.Exit(cmdEval(os.Args[2:]))
	case "canon":
		os.Exit(cmdCanon(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(grim.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Grim %s (built %s)

Usage:
  %s run [-v] [-precision n] <file.grim>    Load definitions, print each expression's value.
  %s eval [-v] [-precision n] <expr>        Evaluate one expression.
  %s canon <expr>                           Build an expression and print its canonical form.
  %s repl [-v]                              Start the REPL.
  %s version                                Print the compiled version.

`, grim.Version, grim.BuildDate, appName, appName, appName, appName, appName)
}

// commonFlags are shared by the evaluating subcommands.
type commonFlags struct {
	verbose   *bool
	precision *uint
	locale    *string
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		verbose:   fs.Bool("v", false, "log registration and evaluation traces to stderr"),
		precision: fs.Uint("precision", 0, "significant digits for decimal division (0 = default)"),
		locale:    fs.String("locale", "", "BCP 47 language tag for string ordering"),
	}
}

func (c commonFlags) options() ([]grim.Option, error) {
	level := slog.LevelWarn
	if *c.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	opts := []grim.Option{
		grim.WithLogger(logger),
		grim.WithDecimalPrecision(uint32(*c.precision)),
	}
	if *c.locale != "" {
		tag, err := language.Parse(*c.locale)
		if err != nil {
			return nil, fmt.Errorf("invalid -locale %q: %w", *c.locale, err)
		}
		opts = append(opts, grim.WithCollationLanguage(tag))
	}
	return opts, nil
}

func newInterpreter(c commonFlags) (*grim.Interpreter, bool) {
	opts, err := c.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return nil, false
	}
	ip, err := grim.NewInterpreter(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return nil, false
	}
	return ip, true
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run [-v] <file.grim>\n", appName)
		return 2
	}
	file := fs.Arg(0)
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}
	ip, ok := newInterpreter(cf)
	if !ok {
		return 1
	}
	vals, err := ip.RunSource(filepath.Base(file), string(src))
	for _, v := range vals {
		fmt.Println(grim.FormatValue(v))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// eval / canon
// -----------------------------------------------------------------------------

func cmdEval(args []string) int {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s eval [-v] <expr>\n", appName)
		return 2
	}
	ip, ok := newInterpreter(cf)
	if !ok {
		return 1
	}
	v, err := ip.EvalSource(strings.Join(fs.Args(), " "))
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	fmt.Println(grim.FormatValue(v))
	return 0
}

func cmdCanon(args []string) int {
	fs := flag.NewFlagSet("canon", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s canon <expr>\n", appName)
		return 2
	}
	src := strings.Join(fs.Args(), " ")
	m, err := grim.NewModule()
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	node, err := grim.ParseCanonicalNamed("<canon>", src)
	if err != nil {
		fmt.Fprintln(os.Stderr, grim.WrapErrorWithName(err, "<canon>", src).Error())
		return 1
	}
	v, err := m.FromAst(node)
	if err != nil {
		fmt.Fprintln(os.Stderr, grim.WrapErrorWithName(err, "<canon>", src).Error())
		return 1
	}
	fmt.Println(v.Canonical())
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func historyPath() string {
	if p := os.Getenv(historyEnv); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, historyFile)
}

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	ip, ok := newInterpreter(cf)
	if !ok {
		return 1
	}
	fmt.Println(banner)
	grim.EnableColor = true

	histPath := historyPath()
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if replCommand(ip, strings.ToLower(trimmed)) {
				return 0
			}
			continue
		}

		vals, err := ip.RunSource("<repl>", code)
		for _, v := range vals {
			fmt.Println(grim.FormatValue(v))
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
		}
	}
}

// replCommand runs a ':' command and reports whether the REPL should exit.
func replCommand(ip *grim.Interpreter, cmd string) bool {
	switch cmd {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Println(helpText)
	case ":env":
		for _, name := range ip.Module.Bindings() {
			v, _ := ip.Module.Resolve(name)
			fmt.Printf("%s = %s\n", name, v.Canonical())
		}
	case ":casts":
		for _, e := range ip.Module.Casts() {
			fmt.Printf("DefCast(%s, %s)\n", e.Wider, e.Narrower)
		}
	default:
		fmt.Println("unknown command. Type :help for commands.")
	}
	return false
}

// readByParseProbe keeps prompting while the accumulated input is an
// incomplete expression.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		_, perr := grim.ParseCanonicalInteractive(src)
		if perr != nil && grim.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
