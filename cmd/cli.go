package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fzft/go-chaintable/db"
	"github.com/fzft/go-chaintable/deps/linenoise"
	"github.com/fzft/go-chaintable/log"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"go.uber.org/zap"
)

var errQuit = errors.New("quit")

// maxLineSize bounds a single command line read from a non-terminal input.
const maxLineSize = 1 << 20

// Cli is an interactive shell over a string-keyed table.
type Cli struct {
	config *Config
	table  *db.HashTable[string, string]
	out    io.Writer
	prompt string
}

// NewCli creates a shell writing replies to out.
func NewCli(config *Config, out io.Writer) (*Cli, error) {
	table, err := db.NewHashTable[string, string](config.Capacity)
	if err != nil {
		return nil, err
	}
	cli := &Cli{config: config, table: table, out: out}
	cli.refreshPrompt()
	return cli, nil
}

func (cli *Cli) Version(gitSHA1, gitDirty string) string {
	version := "chaintable"
	// Add git commit and working tree status when available
	if isCommitHash(gitSHA1) {
		version = fmt.Sprintf("%s (git:%s", version, gitSHA1)
		if dirtyInt, err := strconv.ParseInt(gitDirty, 10, 64); err == nil && dirtyInt != 0 {
			version = fmt.Sprintf("%s-dirty", version)
		}
		version = fmt.Sprintf("%s)", version)
	}
	return version
}

// isCommitHash reports whether s is a hex commit id other than all zeros.
func isCommitHash(s string) bool {
	if s == "" || strings.Trim(s, "0") == "" {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// Run starts the shell on stdin, using line editing when it is a terminal.
func (cli *Cli) Run() error {
	if cli.config.Demo {
		return RunDemo(cli.out)
	}
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return cli.replTerminal()
	}
	return cli.Repl(os.Stdin)
}

// Repl executes one command per line of r until EOF or QUIT. Lines longer
// than maxLineSize are reported and skipped.
func (cli *Cli) Repl(r io.Reader) error {
	reader := bufio.NewReaderSize(r, maxLineSize)
	for {
		line, isPrefix, err := reader.ReadLine()
		if err != nil {
			return ignoreEOF(err)
		}
		if isPrefix {
			for isPrefix && err == nil {
				_, isPrefix, err = reader.ReadLine()
			}
			cli.replyError(fmt.Errorf("ERR line longer than %d bytes", maxLineSize))
			if err != nil {
				return ignoreEOF(err)
			}
			continue
		}
		if err := cli.Exec(splitArgs(string(line))); errors.Is(err, errQuit) {
			return nil
		}
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (cli *Cli) replTerminal() error {
	line := linenoise.New()
	defer line.Close()

	historyFile := cli.config.HistoryFile
	if historyFile != "" {
		if err := line.HistoryLoad(historyFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Logger.Warn("Failed to load history", zap.String("file", historyFile), zap.Error(err))
		}
	}

	for {
		input, err := line.Prompt(cli.prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		argv := splitArgs(input)
		if len(argv) == 0 {
			continue
		}
		line.AppendHistory(input)
		if historyFile != "" {
			if err := line.HistorySave(historyFile); err != nil {
				log.Logger.Debug("Failed to save history", zap.Error(err))
			}
		}

		if err := cli.Exec(argv); errors.Is(err, errQuit) {
			return nil
		}
	}
}

// Exec runs a single command and writes its reply. It returns the error the
// command produced, which has already been reported to the output.
func (cli *Cli) Exec(argv []string) error {
	if len(argv) == 0 {
		return nil
	}

	name := strings.ToUpper(argv[0])
	args := argv[1:]
	if name == "EXIT" {
		name = "QUIT"
	}

	doc, ok := lookupCommand(name)
	if !ok {
		return cli.replyError(fmt.Errorf("ERR unknown command '%s'", argv[0]))
	}
	if len(args) < doc.minArgs || (doc.maxArgs >= 0 && len(args) > doc.maxArgs) {
		return cli.replyError(fmt.Errorf("ERR wrong number of arguments for '%s' command", strings.ToLower(name)))
	}
	log.Logger.Debug("exec", zap.String("command", name), zap.Strings("args", args))

	switch name {
	case "SET":
		cli.table.Set(args[0], strings.Join(args[1:], " "))
		fmt.Fprintln(cli.out, "OK")
	case "GET":
		value, err := cli.table.Get(args[0])
		if err != nil {
			return cli.replyError(err)
		}
		fmt.Fprintf(cli.out, "%q\n", value)
	case "DEL":
		if err := cli.table.Delete(args[0]); err != nil {
			return cli.replyError(err)
		}
		fmt.Fprintln(cli.out, "(integer) 1")
	case "EXISTS":
		cli.replyBool(cli.table.Contains(args[0]))
	case "LEN":
		fmt.Fprintf(cli.out, "(integer) %d\n", cli.table.Len())
	case "KEYS":
		cli.replyList(quoteAll(cli.table.Keys()))
	case "VALUES":
		cli.replyList(quoteAll(cli.table.Values()))
	case "ITEMS":
		items := cli.table.Items()
		lines := make([]string, len(items))
		for i, item := range items {
			lines[i] = item.String()
		}
		cli.replyList(lines)
	case "INDEX":
		fmt.Fprintf(cli.out, "(integer) %d\n", cli.table.BucketIndex(args[0]))
	case "STATS":
		cli.replyStats()
	case "DUMP":
		fmt.Fprintln(cli.out, cli.table.String())
	case "DEMO":
		if err := RunDemo(cli.out); err != nil {
			return cli.replyError(err)
		}
	case "CLEAR":
		return linenoise.ClearScreen(cli.out)
	case "HELP":
		cli.replyHelp()
	case "QUIT":
		return errQuit
	}
	return nil
}

func (cli *Cli) replyError(err error) error {
	log.Logger.Debug("command failed", zap.Error(err))
	fmt.Fprintf(cli.out, "(error) %s\n", err)
	return err
}

func (cli *Cli) replyBool(b bool) {
	if b {
		fmt.Fprintln(cli.out, "(integer) 1")
	} else {
		fmt.Fprintln(cli.out, "(integer) 0")
	}
}

func (cli *Cli) replyList(lines []string) {
	if len(lines) == 0 {
		fmt.Fprintln(cli.out, "(empty array)")
		return
	}
	for i, line := range lines {
		fmt.Fprintf(cli.out, "%d) %s\n", i+1, line)
	}
}

func (cli *Cli) replyStats() {
	fmt.Fprintf(cli.out, "capacity: %s\n", humanize.Comma(int64(cli.table.Capacity())))
	fmt.Fprintf(cli.out, "entries: %s\n", humanize.Comma(int64(cli.table.Len())))
	fmt.Fprintf(cli.out, "load_factor: %.2f\n", cli.table.LoadFactor())
	lens := cli.table.BucketLens()
	parts := make([]string, len(lens))
	longest := 0
	for i, n := range lens {
		parts[i] = strconv.Itoa(n)
		if n > longest {
			longest = n
		}
	}
	fmt.Fprintf(cli.out, "chains: [%s]\n", strings.Join(parts, " "))
	fmt.Fprintf(cli.out, "longest_chain: %d\n", longest)
}

func (cli *Cli) replyHelp() {
	for _, doc := range commandTable {
		usage := doc.name
		if doc.params != "" {
			usage += " " + doc.params
		}
		fmt.Fprintf(cli.out, "  %-18s %s\n", usage, doc.summary)
	}
}

func (cli *Cli) refreshPrompt() {
	cli.prompt = fmt.Sprintf("chaintable[%d]> ", cli.config.Capacity)
}

func splitArgs(line string) []string {
	return strings.Fields(line)
}

func quoteAll(values []string) []string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return quoted
}
