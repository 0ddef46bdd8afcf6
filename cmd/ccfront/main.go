package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/tangzhangming/ccfront/internal/ast"
	"github.com/tangzhangming/ccfront/internal/config"
	cerrors "github.com/tangzhangming/ccfront/internal/errors"
	"github.com/tangzhangming/ccfront/internal/lexer"
	"github.com/tangzhangming/ccfront/internal/logging"
	"github.com/tangzhangming/ccfront/internal/lsp"
	"github.com/tangzhangming/ccfront/internal/nfa"
	"github.com/tangzhangming/ccfront/internal/parser"
)

const (
	Version = "0.1.0"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app 一次命令行调用的运行环境
type app struct {
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	logger *zap.Logger

	sources map[string]string // 已读入的源文件，报告诊断时不再重读
}

func run(args []string, stdout, stderr io.Writer) int {
	// 预扫描全局参数 --lang 或 -lang
	lang, args := preprocessArgs(args)

	wd, _ := os.Getwd()
	cfg, cfgPath, cfgErr := config.LoadFrom(wd)
	configLang := ""
	if cfgErr == nil && cfgPath != "" {
		configLang = cfg.Diagnostics.Lang
	}
	InitLanguage(lang, configLang)

	m := Msg()
	if cfgErr != nil {
		fmt.Fprintf(stderr, m.ErrConfig+"\n", cfgErr)
		return 1
	}

	logger, err := logging.New(cfg.Log.Level, stderr)
	if err != nil {
		fmt.Fprintf(stderr, m.ErrLogger+"\n", err)
		return 1
	}
	defer logger.Sync()
	if cfgPath != "" {
		logger.Debug("config loaded", zap.String("path", cfgPath))
	}

	a := &app{stdout: stdout, stderr: stderr, cfg: cfg, logger: logger, sources: make(map[string]string)}

	if len(args) < 1 {
		a.printUsage()
		return 0
	}

	command := args[0]
	switch command {
	case "tokens":
		return a.cmdTokens(args[1:])
	case "parse":
		return a.cmdParse(args[1:])
	case "check":
		return a.cmdCheck(args[1:])
	case "rules":
		return a.cmdRules(args[1:])
	case "init":
		return a.cmdInit(args[1:])
	case "version", "-v", "--version":
		a.cmdVersion()
		return 0
	case "help", "-h", "--help":
		a.printUsage()
		return 0
	default:
		fmt.Fprintf(stderr, m.ErrUnknownCmd+"\n\n", command)
		a.printUsage()
		return 1
	}
}

// preprocessArgs 预处理参数，提取全局 --lang 参数
func preprocessArgs(args []string) (string, []string) {
	var lang string
	var result []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--lang" || arg == "-lang":
			if i+1 < len(args) {
				lang = args[i+1]
				i++ // 跳过下一个参数
				continue
			}
		case strings.HasPrefix(arg, "--lang="):
			lang = strings.TrimPrefix(arg, "--lang=")
			continue
		case strings.HasPrefix(arg, "-lang="):
			lang = strings.TrimPrefix(arg, "-lang=")
			continue
		}
		result = append(result, arg)
	}
	return lang, result
}

func (a *app) printUsage() {
	m := Msg()
	w := a.stdout
	fmt.Fprintf(w, m.VersionTitle+"\n\n", Version)
	fmt.Fprintln(w, m.HelpUsage)
	fmt.Fprintln(w, "  ccfront [--lang en|zh] <command> [options] [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, m.HelpCommands)
	fmt.Fprintf(w, "  tokens <file>      %s\n", m.CmdTokens)
	fmt.Fprintf(w, "  parse <file>       %s\n", m.CmdParse)
	fmt.Fprintf(w, "  check <file>...    %s\n", m.CmdCheck)
	fmt.Fprintf(w, "  rules              %s\n", m.CmdRules)
	fmt.Fprintf(w, "  init               %s\n", m.CmdInit)
	fmt.Fprintf(w, "  version            %s\n", m.CmdVersion)
	fmt.Fprintf(w, "  help               %s\n", m.CmdHelp)
	fmt.Fprintln(w)
	fmt.Fprintln(w, m.HelpOptions)
	fmt.Fprintf(w, "  -rules <file>      %s\n", m.OptRules)
	fmt.Fprintf(w, "  -json              %s\n", m.OptJSON)
	fmt.Fprintf(w, "  -lsp               %s\n", m.OptLSP)
	fmt.Fprintf(w, "  --lang <en|zh>     %s\n", m.OptLang)
	fmt.Fprintln(w)
	fmt.Fprintln(w, m.HelpExamples)
	fmt.Fprintln(w, "  ccfront tokens main.c")
	fmt.Fprintln(w, "  ccfront parse -json main.c")
	fmt.Fprintln(w, "  ccfront check -lsp a.c b.c")
	fmt.Fprintln(w, "  ccfront rules -rules c.toml -dump")
}

// newFlagSet 创建子命令的参数集，-rules 是所有子命令共有的
func (a *app) newFlagSet(name, usage string) (*flag.FlagSet, *string) {
	m := Msg()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	rules := fs.String("rules", a.cfg.Lexer.Rules, m.OptRules)
	fs.Usage = func() {
		fmt.Fprintln(a.stderr, m.HelpUsage+" ccfront "+name+" [options] "+usage)
		fmt.Fprintln(a.stderr)
		fmt.Fprintln(a.stderr, m.HelpOptions)
		fs.PrintDefaults()
	}
	return fs, rules
}

// requireInput 检查是否给出了输入文件
func (a *app) requireInput(fs *flag.FlagSet) bool {
	if fs.NArg() > 0 {
		return true
	}
	fs.Usage()
	fmt.Fprintln(a.stderr)
	fmt.Fprintln(a.stderr, Msg().ErrNoInput)
	return false
}

// automaton 构造词法自动机，path 为空时使用内置 C 规则表
func (a *app) automaton(path string) (*nfa.Nfa, []nfa.Rule, error) {
	var (
		rules []nfa.Rule
		n     *nfa.Nfa
		err   error
	)
	if path == "" {
		rules = lexer.DefaultRules()
		n, err = lexer.DefaultAutomaton()
	} else {
		rules, err = lexer.LoadRules(path)
		if err == nil {
			n, err = lexer.BuildAutomaton(rules, path)
		}
	}
	if err != nil {
		return nil, nil, err
	}

	a.logger.Debug("rules loaded",
		zap.String("source", sourceName(path)),
		zap.Int("rules", len(rules)),
		zap.Int("states", n.StateCount()),
		zap.String("fingerprint", lexer.Fingerprint(rules)))
	return n, rules, nil
}

func sourceName(path string) string {
	if path == "" {
		return "<builtin>"
	}
	return path
}

// newLexer 读入 filename 并创建词法分析器，源代码缓存下来供报告诊断使用
func (a *app) newLexer(n *nfa.Nfa, filename string, opts ...lexer.Option) (*lexer.Lexer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf(Msg().ErrReadFile, err)
	}
	defer f.Close()

	opts = append([]lexer.Option{lexer.WithLogger(a.logger)}, opts...)
	l, err := lexer.NewFromReader(f, filename, n, opts...)
	if err != nil {
		return nil, fmt.Errorf(Msg().ErrReadFile, err)
	}
	a.sources[filename] = l.Source()
	return l, nil
}

// parseFile 解析一个源文件，返回语法树、警告与错误
//
// 自动机的匹配计数在每个文件开始前清零，日志中的计数只属于这个文件。
func (a *app) parseFile(n *nfa.Nfa, filename string) (*ast.TranslationUnit, []*cerrors.CompileError, error) {
	l, err := a.newLexer(n, filename)
	if err != nil {
		return nil, nil, err
	}
	n.ResetStats()
	p := parser.New(l, parser.WithLogger(a.logger))
	tu, err := p.Parse()
	a.logStats(n)
	return tu, p.Warnings(), err
}

func (a *app) logStats(n *nfa.Nfa) {
	snap := n.Stats()
	a.logger.Debug("automaton stats",
		zap.Int("states", snap.States),
		zap.Int("ranges", snap.Ranges),
		zap.Int64("matches", snap.Matches),
		zap.Int64("misses", snap.Misses),
		zap.Int64("steps", snap.Steps))
}

// report 把警告与错误以终端格式写到标准错误，返回是否有错误
func (a *app) report(err error, warnings ...*cerrors.CompileError) bool {
	f := cerrors.NewFormatter()
	f.Colors = a.cfg.Diagnostics.Color && cerrors.ColorsEnabled()

	r := cerrors.NewReporter(a.stderr)
	r.SetFormatter(f)
	for filename, source := range a.sources {
		r.SetSource(filename, source)
	}
	for _, w := range warnings {
		r.ReportWarning(w)
	}
	r.ReportAll(err)
	r.Summary()
	return r.HasErrors()
}

// cmdTokens 输出 token 序列
func (a *app) cmdTokens(args []string) int {
	m := Msg()
	fs, rules := a.newFlagSet("tokens", "<file>")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !a.requireInput(fs) {
		return 1
	}

	n, _, err := a.automaton(*rules)
	if err != nil {
		a.report(err)
		return 1
	}

	filename := fs.Arg(0)
	l, err := a.newLexer(n, filename, lexer.WithSkipWarnings())
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	tokens := l.ScanTokens()
	a.logStats(n)
	a.logger.Debug("tokens scanned", zap.Int("tokens", len(tokens)), zap.Int("skipped", l.Skipped()))

	fmt.Fprintln(a.stdout, "=== Tokens ===")
	for _, tok := range tokens {
		fmt.Fprintf(a.stdout, "  %s\n", tok)
	}
	fmt.Fprintf(a.stdout, "%s: %d\n", m.Tokens, len(tokens))

	if err := l.Err(); err != nil && a.report(err) {
		return 1
	}
	return 0
}

// cmdParse 解析并输出摘要或 JSON
func (a *app) cmdParse(args []string) int {
	m := Msg()
	fs, rules := a.newFlagSet("parse", "<file>")
	asJSON := fs.Bool("json", false, m.OptJSON)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !a.requireInput(fs) {
		return 1
	}

	n, _, err := a.automaton(*rules)
	if err != nil {
		a.report(err)
		return 1
	}

	filename := fs.Arg(0)
	tu, warnings, err := a.parseFile(n, filename)
	if err != nil {
		a.report(err, warnings...)
		return 1
	}
	if len(warnings) > 0 {
		a.report(nil, warnings...)
	}

	if *asJSON {
		data, err := ast.DumpJSON(tu)
		if err != nil {
			fmt.Fprintf(a.stderr, m.ErrWriteFile+"\n", err)
			return 1
		}
		a.stdout.Write(append(data, '\n'))
		return 0
	}

	var funcs, objects, types int
	for _, d := range tu.Decls {
		switch d.(type) {
		case *ast.FuncDecl:
			funcs++
		case *ast.ObjectDecl:
			objects++
		case *ast.TypeDecl:
			types++
		}
	}
	fmt.Fprintf(a.stdout, m.SuccessSyntaxOK+"\n", filename)
	fmt.Fprintf(a.stdout, "  %s: %d\n", m.Declarations, len(tu.Decls))
	fmt.Fprintf(a.stdout, "  %s: %d\n", m.Functions, funcs)
	fmt.Fprintf(a.stdout, "  %s: %d\n", m.Objects, objects)
	fmt.Fprintf(a.stdout, "  %s: %d\n", m.Types, types)
	return 0
}

// cmdCheck 检查多个文件，-lsp 时每个文件输出一条诊断通知
func (a *app) cmdCheck(args []string) int {
	m := Msg()
	fs, rules := a.newFlagSet("check", "<file>...")
	asLSP := fs.Bool("lsp", false, m.OptLSP)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !a.requireInput(fs) {
		return 1
	}

	n, _, err := a.automaton(*rules)
	if err != nil {
		a.report(err)
		return 1
	}

	status := 0
	for _, filename := range fs.Args() {
		_, warnings, err := a.parseFile(n, filename)
		if err != nil {
			status = 1
		}

		if *asLSP {
			params := lsp.Publish(filename, err, warnings...)
			if werr := lsp.WriteNotification(context.Background(), a.stdout, params); werr != nil {
				fmt.Fprintf(a.stderr, m.ErrWriteFile+"\n", werr)
				return 1
			}
			continue
		}
		if err != nil || len(warnings) > 0 {
			a.report(err, warnings...)
		}
		if err == nil {
			fmt.Fprintf(a.stdout, m.SuccessSyntaxOK+"\n", filename)
		}
	}
	return status
}

// cmdRules 以行格式输出规则表
func (a *app) cmdRules(args []string) int {
	m := Msg()
	fs, rules := a.newFlagSet("rules", "")
	output := fs.String("o", "", m.OptOutput)
	dump := fs.Bool("dump", false, m.OptDump)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	n, table, err := a.automaton(*rules)
	if err != nil {
		a.report(err)
		return 1
	}

	w := a.stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(a.stderr, m.ErrWriteFile+"\n", err)
			return 1
		}
		defer f.Close()
		w = f
	}

	fmt.Fprintf(w, m.RulesSummary+"\n", len(table), lexer.Fingerprint(table))
	if err := lexer.ExportRules(w, table); err != nil {
		fmt.Fprintf(a.stderr, m.ErrWriteFile+"\n", err)
		return 1
	}
	if *dump {
		if err := n.Dump(w); err != nil {
			fmt.Fprintf(a.stderr, m.ErrWriteFile+"\n", err)
			return 1
		}
	}
	return 0
}

// cmdVersion 显示版本信息
func (a *app) cmdVersion() {
	m := Msg()
	fmt.Fprintf(a.stdout, m.VersionTitle+"\n", Version)
	fmt.Fprintln(a.stdout, m.VersionDesc)
}
